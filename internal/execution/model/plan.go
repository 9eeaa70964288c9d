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

// Package model defines the execution plan, the execution record and its overview projection.
package model

import (
	pipelinemodel "github.com/linkedpipes/executor/internal/pipeline/model"
)

// DataUnitDescriptor describes one data unit of the current execution.
type DataUnitDescriptor struct {
	IRI          string
	ComponentIRI string
	Port         pipelinemodel.Port
	// LoadDirectory holds the content of a previous execution, empty when the unit starts empty.
	LoadDirectory string
}

// ExecutionComponent is a pipeline component together with the data units of its ports.
type ExecutionComponent struct {
	IRI           string
	Label         string
	Plugin        string
	Mode          pipelinemodel.ExecutionMode
	Configuration map[string]any
	DataUnits     []DataUnitDescriptor
}

// DataUnitIRIs returns the IRIs of the component data units in port order.
func (c *ExecutionComponent) DataUnitIRIs() []string {
	iris := make([]string, 0, len(c.DataUnits))
	for _, du := range c.DataUnits {
		iris = append(iris, du.IRI)
	}
	return iris
}

// Plan is the ordered list of components of one execution.
type Plan struct {
	PipelineIRI string
	Components  []ExecutionComponent
}

// DataUnits returns the descriptors of all data units in execution order.
func (p *Plan) DataUnits() []DataUnitDescriptor {
	var descriptors []DataUnitDescriptor
	for _, c := range p.Components {
		descriptors = append(descriptors, c.DataUnits...)
	}
	return descriptors
}

// CountMode returns the number of components with the given mode.
func (p *Plan) CountMode(mode pipelinemodel.ExecutionMode) int {
	count := 0
	for _, c := range p.Components {
		if c.Mode == mode {
			count++
		}
	}
	return count
}
