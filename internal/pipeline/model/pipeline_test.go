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
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/linkedpipes/executor/internal/system/error/executorerror"
)

type PipelineTestSuite struct {
	suite.Suite
}

func TestPipelineSuite(t *testing.T) {
	suite.Run(t, new(PipelineTestSuite))
}

func output(iri, binding string) Port {
	return Port{IRI: iri, Binding: binding, Direction: DirectionOutput}
}

func input(iri, binding string) Port {
	return Port{IRI: iri, Binding: binding, Direction: DirectionInput}
}

func (suite *PipelineTestSuite) chain() *Pipeline {
	p, err := NewPipeline("urn:pipeline", []Component{
		{IRI: "urn:c", Ports: []Port{input("urn:c/in", "in")}},
		{IRI: "urn:a", Mode: ModeMap, Ports: []Port{output("urn:a/out", "out")}},
		{IRI: "urn:b", Ports: []Port{input("urn:b/in", "in"), output("urn:b/out", "out")}},
	}, []Connection{
		{SourceComponent: "urn:a", SourceBinding: "out", TargetComponent: "urn:b", TargetBinding: "in"},
		{SourceComponent: "urn:b", SourceBinding: "out", TargetComponent: "urn:c", TargetBinding: "in"},
	})
	assert.NoError(suite.T(), err)
	return p
}

func (suite *PipelineTestSuite) TestLookups() {
	p := suite.chain()

	assert.Equal(suite.T(), "urn:pipeline", p.IRI())

	c, ok := p.Component("urn:b")
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), ModeExecute, c.Mode, "empty mode defaults to EXECUTE")

	port, ok := p.Port("urn:b", "urn:b/out")
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), "out", port.Binding)

	_, ok = p.Component("urn:missing")
	assert.False(suite.T(), ok)
	_, ok = p.Port("urn:b", "urn:a/out")
	assert.False(suite.T(), ok)
	_, ok = p.Port("urn:missing", "urn:b/out")
	assert.False(suite.T(), ok)

	assert.Len(suite.T(), p.Connections(), 2)
	assert.Equal(suite.T(), "urn:a", p.Connections()[0].SourceComponent)
}

func (suite *PipelineTestSuite) TestTopologicalOrder() {
	p := suite.chain()

	var order []string
	for _, c := range p.TopologicalOrder() {
		order = append(order, c.IRI)
	}
	assert.Equal(suite.T(), []string{"urn:a", "urn:b", "urn:c"}, order)

	var declared []string
	for _, c := range p.Components() {
		declared = append(declared, c.IRI)
	}
	assert.Equal(suite.T(), []string{"urn:c", "urn:a", "urn:b"}, declared)
}

func (suite *PipelineTestSuite) TestInputSources() {
	p := suite.chain()

	assert.Equal(suite.T(), []PortRef{{ComponentIRI: "urn:a", PortIRI: "urn:a/out"}},
		p.InputSources("urn:b", "in"))
	assert.Empty(suite.T(), p.InputSources("urn:a", "in"))
}

func (suite *PipelineTestSuite) TestInputIsCopied() {
	components := []Component{{IRI: "urn:a", Ports: []Port{output("urn:a/out", "out")}}}
	p, err := NewPipeline("urn:p", components, nil)
	assert.NoError(suite.T(), err)

	components[0].IRI = "urn:changed"
	components[0].Ports[0].Binding = "changed"

	c, ok := p.Component("urn:a")
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), "out", c.Ports[0].Binding)
}

func (suite *PipelineTestSuite) TestMalformedPipelines() {
	testCases := []struct {
		name        string
		components  []Component
		connections []Connection
	}{
		{
			name:       "EmptyComponentIRI",
			components: []Component{{IRI: ""}},
		},
		{
			name:       "DuplicateComponent",
			components: []Component{{IRI: "urn:a"}, {IRI: "urn:a"}},
		},
		{
			name: "DuplicatePortAcrossComponents",
			components: []Component{
				{IRI: "urn:a", Ports: []Port{output("urn:port", "out")}},
				{IRI: "urn:b", Ports: []Port{input("urn:port", "in")}},
			},
		},
		{
			name: "DuplicateBinding",
			components: []Component{
				{IRI: "urn:a", Ports: []Port{output("urn:a/1", "out"), output("urn:a/2", "out")}},
			},
		},
		{
			name:       "InvalidDirection",
			components: []Component{{IRI: "urn:a", Ports: []Port{{IRI: "urn:a/1", Binding: "x", Direction: "both"}}}},
		},
		{
			name:       "UnknownSourceComponent",
			components: []Component{{IRI: "urn:a", Ports: []Port{input("urn:a/in", "in")}}},
			connections: []Connection{
				{SourceComponent: "urn:x", SourceBinding: "out", TargetComponent: "urn:a", TargetBinding: "in"},
			},
		},
		{
			name:       "UnknownTargetComponent",
			components: []Component{{IRI: "urn:a", Ports: []Port{output("urn:a/out", "out")}}},
			connections: []Connection{
				{SourceComponent: "urn:a", SourceBinding: "out", TargetComponent: "urn:x", TargetBinding: "in"},
			},
		},
		{
			name: "UnknownBinding",
			components: []Component{
				{IRI: "urn:a", Ports: []Port{output("urn:a/out", "out")}},
				{IRI: "urn:b", Ports: []Port{input("urn:b/in", "in")}},
			},
			connections: []Connection{
				{SourceComponent: "urn:a", SourceBinding: "out", TargetComponent: "urn:b", TargetBinding: "other"},
			},
		},
		{
			name: "InputToInput",
			components: []Component{
				{IRI: "urn:a", Ports: []Port{input("urn:a/in", "in")}},
				{IRI: "urn:b", Ports: []Port{input("urn:b/in", "in")}},
			},
			connections: []Connection{
				{SourceComponent: "urn:a", SourceBinding: "in", TargetComponent: "urn:b", TargetBinding: "in"},
			},
		},
		{
			name:       "ControlCycle",
			components: []Component{{IRI: "urn:a"}, {IRI: "urn:b"}},
			connections: []Connection{
				{SourceComponent: "urn:a", TargetComponent: "urn:b", Control: true},
				{SourceComponent: "urn:b", TargetComponent: "urn:a", Control: true},
			},
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			p, err := NewPipeline("urn:p", tc.components, tc.connections)
			assert.Nil(suite.T(), p)
			assert.True(suite.T(), errors.Is(err, executorerror.OfKind(executorerror.MalformedPipeline)), "%v", err)
		})
	}
}

func (suite *PipelineTestSuite) TestControlConnectionIgnoresBindings() {
	p, err := NewPipeline("urn:p", []Component{{IRI: "urn:a"}, {IRI: "urn:b"}}, []Connection{
		{SourceComponent: "urn:b", TargetComponent: "urn:a", Control: true},
	})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "urn:b", p.TopologicalOrder()[0].IRI)
	assert.False(suite.T(), p.Connections()[0].IsDataConnection())
}

func (suite *PipelineTestSuite) TestConnectionTouches() {
	conn := Connection{SourceComponent: "urn:a", SourceBinding: "out", TargetComponent: "urn:b", TargetBinding: "in"}

	other, ok := conn.Touches("urn:a", "out")
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), "urn:b", other)

	other, ok = conn.Touches("urn:b", "in")
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), "urn:a", other)

	_, ok = conn.Touches("urn:a", "in")
	assert.False(suite.T(), ok)

	conn.Control = true
	_, ok = conn.Touches("urn:a", "out")
	assert.False(suite.T(), ok)
}

func (suite *PipelineTestSuite) TestConcurrentReads() {
	p := suite.chain()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_, _ = p.Component("urn:b")
				_ = p.Connections()
				_ = p.TopologicalOrder()
			}
		}()
	}
	wg.Wait()
}

func TestExecutionModeIsValid(t *testing.T) {
	assert.True(t, ModeExecute.IsValid())
	assert.True(t, ModeSkip.IsValid())
	assert.True(t, ModeMap.IsValid())
	assert.False(t, ExecutionMode("DEBUG").IsValid())
	assert.False(t, ExecutionMode("").IsValid())
}
