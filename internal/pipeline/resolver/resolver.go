/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package resolver decides which data units a component needs in the current execution.
package resolver

import (
	"github.com/linkedpipes/executor/internal/pipeline/constants"
	"github.com/linkedpipes/executor/internal/pipeline/model"
)

// ResolverInterface reports whether the data unit of a component port is needed.
type ResolverInterface interface {
	IsPortUsed(componentIRI, portIRI string) (bool, error)
}

// Resolver answers data unit needs from the pipeline graph. It is stateless and safe for
// concurrent use.
type Resolver struct {
	pipeline *model.Pipeline
}

// New creates a resolver for the given pipeline.
func New(pipeline *model.Pipeline) *Resolver {
	return &Resolver{pipeline: pipeline}
}

// IsPortUsed reports whether the data unit of the port must be materialized in this execution.
//
// Executed components need all their data units and skipped components need none. For a mapped
// component an input port is never needed, and an output port is needed only when a data
// connection attached to it leads directly to an executed component. Components further than one
// connection away are not considered.
func (r *Resolver) IsPortUsed(componentIRI, portIRI string) (bool, error) {
	component, ok := r.pipeline.Component(componentIRI)
	if !ok {
		return false, constants.ErrorUnknownComponent.Withf("%s", componentIRI)
	}
	port, ok := component.Port(portIRI)
	if !ok {
		return false, constants.ErrorUnknownPort.Withf("%s on component %s", portIRI, componentIRI)
	}

	switch component.Mode {
	case model.ModeExecute:
		return true, nil
	case model.ModeSkip:
		return false, nil
	case model.ModeMap:
		if port.IsInput() {
			return false, nil
		}
		return r.feedsExecutedComponent(component.IRI, port.Binding), nil
	default:
		return false, constants.ErrorInvalidExecutionMode.Withf("%q on component %s", component.Mode, componentIRI)
	}
}

func (r *Resolver) feedsExecutedComponent(componentIRI, binding string) bool {
	for _, conn := range r.pipeline.Connections() {
		other, ok := conn.Touches(componentIRI, binding)
		if !ok {
			continue
		}
		if neighbour, found := r.pipeline.Component(other); found && neighbour.Mode == model.ModeExecute {
			return true
		}
	}
	return false
}
