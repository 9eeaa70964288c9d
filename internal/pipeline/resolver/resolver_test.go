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

package resolver

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/linkedpipes/executor/internal/pipeline/model"
	"github.com/linkedpipes/executor/internal/system/error/executorerror"
)

type ResolverTestSuite struct {
	suite.Suite
}

func TestResolverSuite(t *testing.T) {
	suite.Run(t, new(ResolverTestSuite))
}

func port(iri, binding string, direction model.Direction) model.Port {
	return model.Port{IRI: iri, Binding: binding, Direction: direction}
}

func link(source, sourceBinding, target, targetBinding string) model.Connection {
	return model.Connection{
		SourceComponent: source, SourceBinding: sourceBinding,
		TargetComponent: target, TargetBinding: targetBinding,
	}
}

// build creates source -> middle -> sink where middle has one input and one output.
func (suite *ResolverTestSuite) build(source, middle, sink model.ExecutionMode,
	extra ...model.Connection) *Resolver {
	p, err := model.NewPipeline("urn:p", []model.Component{
		{IRI: "urn:source", Mode: source, Ports: []model.Port{port("urn:source/out", "out", model.DirectionOutput)}},
		{IRI: "urn:middle", Mode: middle, Ports: []model.Port{
			port("urn:middle/in", "in", model.DirectionInput),
			port("urn:middle/out", "out", model.DirectionOutput),
		}},
		{IRI: "urn:sink", Mode: sink, Ports: []model.Port{port("urn:sink/in", "in", model.DirectionInput)}},
	}, append([]model.Connection{
		link("urn:source", "out", "urn:middle", "in"),
		link("urn:middle", "out", "urn:sink", "in"),
	}, extra...))
	require.NoError(suite.T(), err)
	return New(p)
}

func (suite *ResolverTestSuite) used(r *Resolver, component, port string) bool {
	used, err := r.IsPortUsed(component, port)
	require.NoError(suite.T(), err)
	return used
}

func (suite *ResolverTestSuite) TestExecuteAlwaysUsed() {
	modes := []model.ExecutionMode{model.ModeExecute, model.ModeSkip, model.ModeMap}
	for _, neighbour := range modes {
		r := suite.build(neighbour, model.ModeExecute, neighbour)
		assert.True(suite.T(), suite.used(r, "urn:middle", "urn:middle/in"))
		assert.True(suite.T(), suite.used(r, "urn:middle", "urn:middle/out"))
	}
}

func (suite *ResolverTestSuite) TestSkipNeverUsed() {
	modes := []model.ExecutionMode{model.ModeExecute, model.ModeSkip, model.ModeMap}
	for _, neighbour := range modes {
		r := suite.build(neighbour, model.ModeSkip, neighbour)
		assert.False(suite.T(), suite.used(r, "urn:middle", "urn:middle/in"))
		assert.False(suite.T(), suite.used(r, "urn:middle", "urn:middle/out"))
	}
}

func (suite *ResolverTestSuite) TestMapOutputFeedingExecute() {
	p, err := model.NewPipeline("urn:p", []model.Component{
		{IRI: "urn:b", Mode: model.ModeMap, Ports: []model.Port{port("urn:b/p2", "p2", model.DirectionOutput)}},
		{IRI: "urn:a", Mode: model.ModeExecute, Ports: []model.Port{port("urn:a/p1", "p1", model.DirectionInput)}},
	}, []model.Connection{link("urn:b", "p2", "urn:a", "p1")})
	require.NoError(suite.T(), err)

	assert.True(suite.T(), suite.used(New(p), "urn:b", "urn:b/p2"))
}

func (suite *ResolverTestSuite) TestMapOutputFeedingOnlySkipOrMap() {
	assert.False(suite.T(), suite.used(suite.build(model.ModeSkip, model.ModeMap, model.ModeSkip),
		"urn:middle", "urn:middle/out"))
	assert.False(suite.T(), suite.used(suite.build(model.ModeMap, model.ModeMap, model.ModeMap),
		"urn:middle", "urn:middle/out"))
}

func (suite *ResolverTestSuite) TestMapInputNeverUsed() {
	r := suite.build(model.ModeExecute, model.ModeMap, model.ModeExecute)

	assert.False(suite.T(), suite.used(r, "urn:middle", "urn:middle/in"))
	assert.True(suite.T(), suite.used(r, "urn:middle", "urn:middle/out"))
}

func (suite *ResolverTestSuite) TestMapIsOneHopOnly() {
	// source(MAP) -> middle(MAP) -> sink(EXECUTE): only middle feeds the executed sink directly.
	r := suite.build(model.ModeMap, model.ModeMap, model.ModeExecute)

	assert.False(suite.T(), suite.used(r, "urn:source", "urn:source/out"))
	assert.True(suite.T(), suite.used(r, "urn:middle", "urn:middle/out"))
}

func (suite *ResolverTestSuite) TestControlConnectionsIgnored() {
	control := model.Connection{SourceComponent: "urn:middle", SourceBinding: "out",
		TargetComponent: "urn:extra", TargetBinding: "in", Control: true}
	p, err := model.NewPipeline("urn:p", []model.Component{
		{IRI: "urn:middle", Mode: model.ModeMap, Ports: []model.Port{port("urn:middle/out", "out", model.DirectionOutput)}},
		{IRI: "urn:extra", Mode: model.ModeExecute},
	}, []model.Connection{control})
	require.NoError(suite.T(), err)

	assert.False(suite.T(), suite.used(New(p), "urn:middle", "urn:middle/out"))
}

func (suite *ResolverTestSuite) TestUnknownComponentAndPort() {
	r := suite.build(model.ModeExecute, model.ModeMap, model.ModeExecute)

	_, err := r.IsPortUsed("urn:missing", "urn:middle/out")
	assert.True(suite.T(), errors.Is(err, executorerror.OfKind(executorerror.UnknownComponent)))

	_, err = r.IsPortUsed("urn:middle", "urn:sink/in")
	assert.True(suite.T(), errors.Is(err, executorerror.OfKind(executorerror.UnknownPort)))
}

func (suite *ResolverTestSuite) TestInvalidExecutionMode() {
	r := suite.build(model.ModeExecute, model.ExecutionMode("DEBUG"), model.ModeExecute)

	_, err := r.IsPortUsed("urn:middle", "urn:middle/out")
	assert.True(suite.T(), errors.Is(err, executorerror.OfKind(executorerror.InvalidExecutionMode)))
}
