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

package model

import (
	"github.com/linkedpipes/executor/internal/pipeline/constants"
)

// Pipeline is an immutable pipeline graph. All methods are safe for concurrent use; returned
// components and ports must not be modified.
type Pipeline struct {
	iri         string
	components  []*Component
	byIRI       map[string]*Component
	connections []Connection
	order       []*Component
}

// PortRef identifies a port of a component.
type PortRef struct {
	ComponentIRI string
	PortIRI      string
}

// NewPipeline validates the graph and builds the pipeline. Components with an empty mode are
// executed. Any structural problem is reported as a malformed pipeline error.
func NewPipeline(iri string, components []Component, connections []Connection) (*Pipeline, error) {
	p := &Pipeline{
		iri:         iri,
		components:  make([]*Component, 0, len(components)),
		byIRI:       make(map[string]*Component, len(components)),
		connections: append([]Connection(nil), connections...),
	}

	portOwners := make(map[string]string)
	for i := range components {
		c := components[i]
		if c.IRI == "" {
			return nil, constants.ErrorMalformedPipeline.Withf("component at position %d has no IRI", i)
		}
		if _, exists := p.byIRI[c.IRI]; exists {
			return nil, constants.ErrorMalformedPipeline.Withf("duplicate component %s", c.IRI)
		}
		if c.Mode == "" {
			c.Mode = ModeExecute
		}
		c.Ports = append([]Port(nil), c.Ports...)
		if err := validatePorts(&c, portOwners); err != nil {
			return nil, err
		}
		p.components = append(p.components, &c)
		p.byIRI[c.IRI] = &c
	}

	for _, conn := range p.connections {
		if err := p.validateConnection(conn); err != nil {
			return nil, err
		}
	}

	order, err := p.sort()
	if err != nil {
		return nil, err
	}
	p.order = order
	return p, nil
}

func validatePorts(c *Component, portOwners map[string]string) error {
	bindings := make(map[string]struct{}, len(c.Ports))
	for _, port := range c.Ports {
		if port.IRI == "" || port.Binding == "" {
			return constants.ErrorMalformedPipeline.Withf("component %s declares a port without IRI or binding",
				c.IRI)
		}
		if owner, exists := portOwners[port.IRI]; exists {
			return constants.ErrorMalformedPipeline.Withf("port %s declared by both %s and %s",
				port.IRI, owner, c.IRI)
		}
		if _, exists := bindings[port.Binding]; exists {
			return constants.ErrorMalformedPipeline.Withf("component %s declares binding %s twice",
				c.IRI, port.Binding)
		}
		if port.Direction != DirectionInput && port.Direction != DirectionOutput {
			return constants.ErrorMalformedPipeline.Withf("port %s has invalid direction %q",
				port.IRI, port.Direction)
		}
		portOwners[port.IRI] = c.IRI
		bindings[port.Binding] = struct{}{}
	}
	return nil
}

func (p *Pipeline) validateConnection(conn Connection) error {
	source, ok := p.byIRI[conn.SourceComponent]
	if !ok {
		return constants.ErrorMalformedPipeline.Withf("connection references unknown source component %s",
			conn.SourceComponent)
	}
	target, ok := p.byIRI[conn.TargetComponent]
	if !ok {
		return constants.ErrorMalformedPipeline.Withf("connection references unknown target component %s",
			conn.TargetComponent)
	}
	if conn.Control {
		return nil
	}

	sourcePort, ok := source.PortByBinding(conn.SourceBinding)
	if !ok {
		return constants.ErrorMalformedPipeline.Withf("component %s has no binding %s",
			source.IRI, conn.SourceBinding)
	}
	targetPort, ok := target.PortByBinding(conn.TargetBinding)
	if !ok {
		return constants.ErrorMalformedPipeline.Withf("component %s has no binding %s",
			target.IRI, conn.TargetBinding)
	}
	if sourcePort.Direction != DirectionOutput || targetPort.Direction != DirectionInput {
		return constants.ErrorMalformedPipeline.Withf("connection %s/%s -> %s/%s must link an output to an input",
			source.IRI, conn.SourceBinding, target.IRI, conn.TargetBinding)
	}
	return nil
}

// sort orders the components so that every component follows all of its predecessors, keeping
// declaration order between independent components.
func (p *Pipeline) sort() ([]*Component, error) {
	index := make(map[string]int, len(p.components))
	for i, c := range p.components {
		index[c.IRI] = i
	}
	inDegree := make([]int, len(p.components))
	successors := make([][]int, len(p.components))
	for _, conn := range p.connections {
		from, to := index[conn.SourceComponent], index[conn.TargetComponent]
		successors[from] = append(successors[from], to)
		inDegree[to]++
	}

	order := make([]*Component, 0, len(p.components))
	done := make([]bool, len(p.components))
	for len(order) < len(p.components) {
		next := -1
		for i := range p.components {
			if !done[i] && inDegree[i] == 0 {
				next = i
				break
			}
		}
		if next < 0 {
			return nil, constants.ErrorMalformedPipeline.Withf("connections form a cycle among %d components",
				len(p.components)-len(order))
		}
		done[next] = true
		order = append(order, p.components[next])
		for _, s := range successors[next] {
			inDegree[s]--
		}
	}
	return order, nil
}

// IRI returns the pipeline identifier.
func (p *Pipeline) IRI() string {
	return p.iri
}

// Component returns the component with the given IRI.
func (p *Pipeline) Component(iri string) (*Component, bool) {
	c, ok := p.byIRI[iri]
	return c, ok
}

// Port returns the port with the given IRI declared by the given component.
func (p *Pipeline) Port(componentIRI, portIRI string) (*Port, bool) {
	c, ok := p.byIRI[componentIRI]
	if !ok {
		return nil, false
	}
	return c.Port(portIRI)
}

// Components returns the components in declaration order.
func (p *Pipeline) Components() []*Component {
	return append([]*Component(nil), p.components...)
}

// Connections returns the connections in declaration order.
func (p *Pipeline) Connections() []Connection {
	return append([]Connection(nil), p.connections...)
}

// TopologicalOrder returns the components ordered so that each follows its predecessors.
func (p *Pipeline) TopologicalOrder() []*Component {
	return append([]*Component(nil), p.order...)
}

// InputSources returns the output ports feeding the given input binding, in connection order.
func (p *Pipeline) InputSources(componentIRI, binding string) []PortRef {
	var refs []PortRef
	for _, conn := range p.connections {
		if conn.Control || conn.TargetComponent != componentIRI || conn.TargetBinding != binding {
			continue
		}
		source := p.byIRI[conn.SourceComponent]
		if port, ok := source.PortByBinding(conn.SourceBinding); ok {
			refs = append(refs, PortRef{ComponentIRI: source.IRI, PortIRI: port.IRI})
		}
	}
	return refs
}
