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

// Package model defines the in-memory pipeline graph: components, their ports and the connections
// between them.
package model

// ExecutionMode defines how a component takes part in an execution.
type ExecutionMode string

const (
	// ModeExecute runs the component.
	ModeExecute ExecutionMode = "EXECUTE"
	// ModeSkip neither runs the component nor produces its data.
	ModeSkip ExecutionMode = "SKIP"
	// ModeMap reuses the output of a previous execution without running the component.
	ModeMap ExecutionMode = "MAP"
)

// IsValid reports whether the mode is one of EXECUTE, SKIP and MAP.
func (m ExecutionMode) IsValid() bool {
	switch m {
	case ModeExecute, ModeSkip, ModeMap:
		return true
	}
	return false
}

// Direction defines whether a port consumes or produces data.
type Direction string

const (
	// DirectionInput marks a port receiving data from upstream components.
	DirectionInput Direction = "input"
	// DirectionOutput marks a port producing data for downstream components.
	DirectionOutput Direction = "output"
)

// Port is a named connection point of a component. The port IRI is also the IRI of the data unit
// created for it.
type Port struct {
	IRI           string
	Binding       string
	Direction     Direction
	SaveDebugData bool
}

// IsInput reports whether the port consumes data.
func (p *Port) IsInput() bool {
	return p.Direction == DirectionInput
}

// Component is a node of the pipeline graph.
type Component struct {
	IRI           string
	Label         string
	Plugin        string
	Mode          ExecutionMode
	Configuration map[string]any
	Ports         []Port
}

// Port returns the port with the given IRI.
func (c *Component) Port(iri string) (*Port, bool) {
	for i := range c.Ports {
		if c.Ports[i].IRI == iri {
			return &c.Ports[i], true
		}
	}
	return nil, false
}

// PortByBinding returns the port with the given binding.
func (c *Component) PortByBinding(binding string) (*Port, bool) {
	for i := range c.Ports {
		if c.Ports[i].Binding == binding {
			return &c.Ports[i], true
		}
	}
	return nil, false
}

// Connection is a directed edge between two component ports. Control connections only order
// execution and carry no data unit; their bindings are ignored.
type Connection struct {
	SourceComponent string
	SourceBinding   string
	TargetComponent string
	TargetBinding   string
	Control         bool
}

// IsDataConnection reports whether the connection carries a data unit.
func (c Connection) IsDataConnection() bool {
	return !c.Control
}

// Touches reports whether the connection is a data connection attached to the given component
// binding on either end, and returns the component on the other end.
func (c Connection) Touches(componentIRI, binding string) (string, bool) {
	if c.Control {
		return "", false
	}
	if c.SourceComponent == componentIRI && c.SourceBinding == binding {
		return c.TargetComponent, true
	}
	if c.TargetComponent == componentIRI && c.TargetBinding == binding {
		return c.SourceComponent, true
	}
	return "", false
}
