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
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pipelinemodel "github.com/linkedpipes/executor/internal/pipeline/model"
)

func TestExecutionStatusOrdering(t *testing.T) {
	assert.Equal(t, StatusFailed, StatusCancelled.Max(StatusFailed))
	assert.Equal(t, StatusFailed, StatusFailed.Max(StatusFinished))
	assert.Equal(t, StatusRunning, StatusRunning.Max(StatusNotStarted))
	assert.False(t, StatusRunning.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.Equal(t, "http://etl.linkedpipes.com/resources/status/failed", StatusFailed.IRI())
	assert.Equal(t, "unknown", ExecutionStatus(9).String())
}

func TestExecutionStatusJSON(t *testing.T) {
	data, err := json.Marshal(StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, `"cancelled"`, string(data))

	var status ExecutionStatus
	require.NoError(t, json.Unmarshal([]byte(`"running"`), &status))
	assert.Equal(t, StatusRunning, status)

	assert.Error(t, json.Unmarshal([]byte(`"paused"`), &status))
}

func TestComponentStatusIsFinal(t *testing.T) {
	assert.False(t, ComponentPending.IsFinal())
	assert.False(t, ComponentRunning.IsFinal())
	assert.True(t, ComponentMapped.IsFinal())
	assert.True(t, ComponentFailed.IsFinal())
}

func TestRecordCloneIsDeep(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	record := ExecutionRecord{
		ID:      "exec-1",
		Started: &now,
		Components: []ComponentRecord{{
			IRI:       "urn:a",
			Status:    ComponentRunning,
			DataUnits: []DataUnitRecord{{IRI: "urn:a/out", Directory: "working/dataunit-1"}},
		}},
		Events: []EventRecord{{Sequence: 1, Type: "execution_begin"}},
	}

	clone := record.Clone()
	record.Components[0].Status = ComponentFailed
	record.Components[0].DataUnits[0].Directory = "changed"
	record.Events[0].Type = "changed"
	*record.Started = now.Add(time.Hour)

	assert.Equal(t, ComponentRunning, clone.Components[0].Status)
	assert.Equal(t, "working/dataunit-1", clone.Components[0].DataUnits[0].Directory)
	assert.Equal(t, "execution_begin", clone.Events[0].Type)
	assert.Equal(t, now, *clone.Started)

	dir, ok := clone.DataUnitDirectory("urn:a/out")
	assert.True(t, ok)
	assert.Equal(t, "working/dataunit-1", dir)
	_, ok = clone.DataUnitDirectory("urn:b/out")
	assert.False(t, ok)

	c, ok := clone.Component("urn:a")
	assert.True(t, ok)
	assert.Equal(t, "urn:a", c.IRI)
}

func TestOverviewDocument(t *testing.T) {
	started := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	overview := Overview{
		PipelineIRI:     "urn:pipeline",
		ExecutionIRI:    "http://localhost/resources/executions/exec-1",
		Started:         &started,
		Status:          StatusRunning,
		LastChange:      started.Add(time.Second),
		ProgressTotal:   3,
		ProgressCurrent: 1,
	}

	doc := overview.Document()
	assert.Equal(t, "http://localhost/resources/executions/exec-1/overview", doc.ID)
	assert.Equal(t, "urn:pipeline", doc.Pipeline.ID)
	assert.Equal(t, "2024-05-01T10:00:00.000Z", doc.ExecutionStarted)
	assert.Empty(t, doc.ExecutionFinished)
	assert.Equal(t, "2024-05-01T10:00:01.000Z", doc.LastChange)
	assert.Equal(t, StatusRunning.IRI(), doc.Status.ID)
	assert.Equal(t, 3, doc.PipelineProgress.Total)
	assert.Equal(t, 1, doc.PipelineProgress.Current)
	assert.Nil(t, doc.DirectorySize)

	data, err := json.Marshal(doc)
	require.NoError(t, err)
	var generic map[string]any
	require.NoError(t, json.Unmarshal(data, &generic))
	assert.NotContains(t, generic, "directorySize")
	assert.NotContains(t, generic, "executionFinished")
	assert.Contains(t, generic, "@context")

	size := int64(2048)
	overview.DirectorySize = &size
	doc = overview.Document()
	require.NotNil(t, doc.DirectorySize)
	assert.Equal(t, int64(2048), *doc.DirectorySize)
	assert.NotEmpty(t, doc.Context.DirectorySize)
}

func TestPlanHelpers(t *testing.T) {
	plan := Plan{Components: []ExecutionComponent{
		{IRI: "urn:a", Mode: pipelinemodel.ModeExecute, DataUnits: []DataUnitDescriptor{{IRI: "urn:a/out"}}},
		{IRI: "urn:b", Mode: pipelinemodel.ModeMap, DataUnits: []DataUnitDescriptor{{IRI: "urn:b/in"}, {IRI: "urn:b/out"}}},
		{IRI: "urn:c", Mode: pipelinemodel.ModeExecute},
	}}

	assert.Equal(t, 2, plan.CountMode(pipelinemodel.ModeExecute))
	assert.Len(t, plan.DataUnits(), 3)
	assert.Equal(t, []string{"urn:b/in", "urn:b/out"}, plan.Components[1].DataUnitIRIs())
}
