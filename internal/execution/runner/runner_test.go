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

package runner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/linkedpipes/executor/internal/component"
	"github.com/linkedpipes/executor/internal/execution/journal"
	"github.com/linkedpipes/executor/internal/execution/model"
	"github.com/linkedpipes/executor/internal/execution/plan"
	"github.com/linkedpipes/executor/internal/execution/resource"
	"github.com/linkedpipes/executor/internal/execution/store"
	pipelinemodel "github.com/linkedpipes/executor/internal/pipeline/model"
	"github.com/linkedpipes/executor/internal/system/metrics"
	"github.com/linkedpipes/executor/tests/mocks/journalmock"
)

type funcComponent func(ctx context.Context, c *component.Context) error

func (f funcComponent) Execute(ctx context.Context, c *component.Context) error {
	return f(ctx, c)
}

type failingObserver struct {
	beginErr error
	endErr   error
}

func (o *failingObserver) ExecutionBegin(context.Context, string) error { return o.beginErr }

func (o *failingObserver) ExecutionEnd(context.Context, model.ExecutionRecord) error { return o.endErr }

type RunnerTestSuite struct {
	suite.Suite
	executions string
	persister  *journalmock.MockPersister
	registry   *component.Registry
}

func TestRunnerSuite(t *testing.T) {
	suite.Run(t, new(RunnerTestSuite))
}

func (suite *RunnerTestSuite) SetupTest() {
	suite.executions = suite.T().TempDir()
	suite.persister = &journalmock.MockPersister{}
	suite.registry = component.NewDefaultRegistry()
	suite.registry.MustRegister("seed", func(map[string]any) (component.Component, error) {
		return funcComponent(func(_ context.Context, c *component.Context) error {
			instance, _ := c.DataUnits.Get("urn:source/out")
			return instance.(interface {
				Write(name string, data []byte) error
			}).Write("input.txt", []byte("payload"))
		}), nil
	})
}

func (suite *RunnerTestSuite) pipeline(sourcePlugin string, sourceMode, sinkMode pipelinemodel.ExecutionMode) *pipelinemodel.Pipeline {
	p, err := pipelinemodel.NewPipeline("urn:pipeline", []pipelinemodel.Component{
		{IRI: "urn:source", Plugin: sourcePlugin, Mode: sourceMode, Ports: []pipelinemodel.Port{
			{IRI: "urn:source/out", Binding: "FilesOutput", Direction: pipelinemodel.DirectionOutput, SaveDebugData: true},
		}},
		{IRI: "urn:sink", Plugin: component.CopyPlugin, Mode: sinkMode,
			Configuration: map[string]any{"prefix": "copied-"},
			Ports: []pipelinemodel.Port{
				{IRI: "urn:sink/in", Binding: "FilesInput", Direction: pipelinemodel.DirectionInput},
				{IRI: "urn:sink/out", Binding: "FilesOutput", Direction: pipelinemodel.DirectionOutput, SaveDebugData: true},
			}},
	}, []pipelinemodel.Connection{
		{SourceComponent: "urn:source", SourceBinding: "FilesOutput", TargetComponent: "urn:sink", TargetBinding: "FilesInput"},
	})
	require.NoError(suite.T(), err)
	return p
}

func (suite *RunnerTestSuite) newRunner(id string, p *pipelinemodel.Pipeline, opts ...Option) (*Runner, *journal.Journal,
	*resource.FileSystem) {
	fs := resource.NewFileSystem(filepath.Join(suite.executions, id), suite.executions)
	j := journal.New(id, "http://localhost/resources/executions/"+id, fs.Root(),
		journal.WithPersisters(store.NewFileStore(fs), suite.persister))
	opts = append([]Option{WithRegistry(suite.registry)}, opts...)
	return New(id, p, j, fs, opts...), j, fs
}

func (suite *RunnerTestSuite) TestSuccessfulExecution() {
	m := metrics.NewMetrics("test")
	r, j, fs := suite.newRunner("exec-1", suite.pipeline("seed", "", ""), WithMetrics(m))

	status := r.Run(context.Background())

	assert.Equal(suite.T(), model.StatusFinished, status)
	assert.Equal(suite.T(), []string{
		"execution_begin", "pipeline_loaded",
		"execute_begin", "execute_successful",
		"execute_begin", "execute_successful",
		"execution_end",
	}, suite.persister.EventTypes())
	overview := j.Overview()
	assert.Equal(suite.T(), 2, overview.ProgressTotal)
	assert.Equal(suite.T(), 2, overview.ProgressCurrent)
	require.NotNil(suite.T(), overview.DirectorySize)
	assert.Greater(suite.T(), *overview.DirectorySize, int64(0))

	record, err := store.LoadRecord(fs.ExecutionRecordFile())
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), model.StatusFinished, record.Status)
	sink, _ := record.Component("urn:sink")
	assert.Equal(suite.T(), model.ComponentSucceeded, sink.Status)
	dir, ok := record.DataUnitDirectory("urn:sink/out")
	require.True(suite.T(), ok)
	content, err := os.ReadFile(filepath.Join(resource.Resolve(fs.Root(), dir), "copied-input.txt"))
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "payload", string(content))

	_, err = os.Stat(fs.ExecutionOverviewFile())
	assert.NoError(suite.T(), err)
}

func (suite *RunnerTestSuite) TestComponentFailureStopsExecution() {
	suite.registry.MustRegister("broken", func(map[string]any) (component.Component, error) {
		return funcComponent(func(context.Context, *component.Context) error {
			return errors.New("source unavailable")
		}), nil
	})
	r, j, _ := suite.newRunner("exec-1", suite.pipeline("broken", "", ""))

	assert.Equal(suite.T(), model.StatusFailed, r.Run(context.Background()))

	assert.Equal(suite.T(), []string{
		"execution_begin", "pipeline_loaded", "execute_begin", "execute_failed", "execution_end",
	}, suite.persister.EventTypes())
	record := j.Record()
	source, _ := record.Component("urn:source")
	assert.Equal(suite.T(), model.ComponentFailed, source.Status)
	assert.Contains(suite.T(), source.Error, "source unavailable")
	sink, _ := record.Component("urn:sink")
	assert.Equal(suite.T(), model.ComponentPending, sink.Status)
	assert.Equal(suite.T(), 1, j.Overview().ProgressCurrent)
}

func (suite *RunnerTestSuite) TestPanicIsReportedAsFailure() {
	suite.registry.MustRegister("panicking", func(map[string]any) (component.Component, error) {
		return funcComponent(func(context.Context, *component.Context) error {
			panic("nil map")
		}), nil
	})
	r, j, _ := suite.newRunner("exec-1", suite.pipeline("panicking", "", ""))

	assert.Equal(suite.T(), model.StatusFailed, r.Run(context.Background()))
	assert.Contains(suite.T(), j.Record().Error, "component panicked: nil map")
}

func (suite *RunnerTestSuite) TestUnknownPlugin() {
	r, j, _ := suite.newRunner("exec-1", suite.pipeline("missing", "", ""))

	assert.Equal(suite.T(), model.StatusFailed, r.Run(context.Background()))
	assert.Equal(suite.T(), []string{
		"execution_begin", "pipeline_loaded", "cannot_create_executor", "components_loading_failed", "execution_end",
	}, suite.persister.EventTypes())
	sourceRecord := j.Record()
	source, _ := sourceRecord.Component("urn:source")
	assert.Equal(suite.T(), model.ComponentFailed, source.Status)
}

func (suite *RunnerTestSuite) TestCancelDuringComponent() {
	var r *Runner
	suite.registry.MustRegister("cancelling", func(map[string]any) (component.Component, error) {
		return funcComponent(func(_ context.Context, c *component.Context) error {
			r.Cancel()
			r.Cancel()
			if !c.Cancelled() {
				return errors.New("cancel not visible")
			}
			return nil
		}), nil
	})
	r, j, _ := suite.newRunner("exec-1", suite.pipeline("cancelling", "", ""))

	assert.Equal(suite.T(), model.StatusCancelled, r.Run(context.Background()))
	assert.Equal(suite.T(), []string{
		"execution_begin", "pipeline_loaded", "execute_begin", "cancel_requested", "execute_successful",
		"execution_end",
	}, suite.persister.EventTypes())
	assert.True(suite.T(), j.CancelRequested())
	sinkRecord := j.Record()
	sink, _ := sinkRecord.Component("urn:sink")
	assert.Equal(suite.T(), model.ComponentPending, sink.Status)
}

func (suite *RunnerTestSuite) TestCancelledContext() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r, _, _ := suite.newRunner("exec-1", suite.pipeline("seed", "", ""))

	assert.Equal(suite.T(), model.StatusCancelled, r.Run(ctx))
	assert.True(suite.T(), r.Cancelled())
}

func (suite *RunnerTestSuite) TestMapReusesPreviousExecution() {
	first, _, firstFS := suite.newRunner("exec-1", suite.pipeline("seed", "", ""))
	require.Equal(suite.T(), model.StatusFinished, first.Run(context.Background()))

	previous, err := plan.LoadPrevious(firstFS.Root())
	require.NoError(suite.T(), err)
	suite.persister = &journalmock.MockPersister{}
	second, j, fs := suite.newRunner("exec-2", suite.pipeline("seed", pipelinemodel.ModeMap, ""), WithPrevious(previous))

	assert.Equal(suite.T(), model.StatusFinished, second.Run(context.Background()))
	assert.Equal(suite.T(), []string{
		"execution_begin", "pipeline_loaded", "map_begin", "map_successful",
		"execute_begin", "execute_successful", "execution_end",
	}, suite.persister.EventTypes())

	record := j.Record()
	source, _ := record.Component("urn:source")
	assert.Equal(suite.T(), model.ComponentMapped, source.Status)
	assert.Equal(suite.T(), "saved", source.DataUnits[0].State)
	overview := j.Overview()
	assert.Equal(suite.T(), 1, overview.ProgressTotal)
	assert.Equal(suite.T(), 1, overview.ProgressCurrent)

	dir, ok := record.DataUnitDirectory("urn:sink/out")
	require.True(suite.T(), ok)
	_, err = os.Stat(filepath.Join(resource.Resolve(fs.Root(), dir), "copied-input.txt"))
	assert.NoError(suite.T(), err)
}

func (suite *RunnerTestSuite) TestMapComponentWithUnsavedInput() {
	first, firstJournal, firstFS := suite.newRunner("exec-1", suite.pipeline("seed", "", ""))
	require.Equal(suite.T(), model.StatusFinished, first.Run(context.Background()))
	previousOutRecord := firstJournal.Record()
	previousOut, ok := previousOutRecord.DataUnitDirectory("urn:sink/out")
	require.True(suite.T(), ok)

	previous, err := plan.LoadPrevious(firstFS.Root())
	require.NoError(suite.T(), err)
	suite.persister = &journalmock.MockPersister{}
	second, j, _ := suite.newRunner("exec-2", suite.pipeline("seed", "", pipelinemodel.ModeMap), WithPrevious(previous))

	assert.Equal(suite.T(), model.StatusFinished, second.Run(context.Background()))
	assert.Equal(suite.T(), []string{
		"execution_begin", "pipeline_loaded", "execute_begin", "execute_successful",
		"map_begin", "map_successful", "execution_end",
	}, suite.persister.EventTypes())

	sinkRecord := j.Record()
	sink, _ := sinkRecord.Component("urn:sink")
	assert.Equal(suite.T(), model.ComponentMapped, sink.Status)
	require.Len(suite.T(), sink.DataUnits, 2)
	assert.Equal(suite.T(), "mapped_by_reference", sink.DataUnits[0].State)
	assert.Empty(suite.T(), sink.DataUnits[0].Directory)
	assert.Equal(suite.T(), "mapped_by_reference", sink.DataUnits[1].State)
	dirRecord := j.Record()
	dir, ok := dirRecord.DataUnitDirectory("urn:sink/out")
	require.True(suite.T(), ok)
	assert.Equal(suite.T(), resource.Resolve(firstFS.Root(), previousOut), dir)
}

func (suite *RunnerTestSuite) TestMapWithoutPreviousExecution() {
	r, _, _ := suite.newRunner("exec-1", suite.pipeline("seed", pipelinemodel.ModeMap, ""))

	assert.Equal(suite.T(), model.StatusFailed, r.Run(context.Background()))
	assert.Equal(suite.T(), []string{"execution_begin", "pipeline_invalid", "execution_end"},
		suite.persister.EventTypes())
}

func (suite *RunnerTestSuite) TestSkippedComponents() {
	r, j, _ := suite.newRunner("exec-1", suite.pipeline("seed", "", pipelinemodel.ModeSkip))

	assert.Equal(suite.T(), model.StatusFinished, r.Run(context.Background()))
	sinkRecord := j.Record()
	sink, _ := sinkRecord.Component("urn:sink")
	assert.Equal(suite.T(), model.ComponentSkipped, sink.Status)
	assert.Equal(suite.T(), 1, j.Overview().ProgressTotal)
}

func (suite *RunnerTestSuite) TestObserverFailures() {
	observer := &failingObserver{beginErr: errors.New("begin"), endErr: errors.New("end")}
	r, _, _ := suite.newRunner("exec-1", suite.pipeline("seed", "", ""), WithObservers(observer))

	assert.Equal(suite.T(), model.StatusFailed, r.Run(context.Background()))
	types := suite.persister.EventTypes()
	assert.Equal(suite.T(), "observer_begin_failed", types[1])
	assert.Equal(suite.T(), "observer_end_failed", types[len(types)-2])
	// A failed observer stops scheduling.
	assert.NotContains(suite.T(), types, "execute_begin")
}

func (suite *RunnerTestSuite) TestMetricsObserverWritesFile() {
	m := metrics.NewMetrics("test")
	var logDir string
	r, _, fs := suite.newRunner("exec-1", suite.pipeline("seed", "", ""), WithMetrics(m))
	r.observers = append(r.observers, NewMetricsObserver(m, func() (string, error) {
		dir, err := fs.LogDirectory()
		logDir = dir
		return dir, err
	}))

	assert.Equal(suite.T(), model.StatusFinished, r.Run(context.Background()))
	content, err := os.ReadFile(filepath.Join(logDir, MetricsFileName))
	require.NoError(suite.T(), err)
	assert.Contains(suite.T(), string(content), "test_")
}
