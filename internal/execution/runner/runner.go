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

// Package runner drives one pipeline execution: it walks the plan in order, maps, skips or
// executes each component and reports every step to the execution journal.
package runner

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/linkedpipes/executor/internal/component"
	"github.com/linkedpipes/executor/internal/dataunit"
	"github.com/linkedpipes/executor/internal/dataunit/files"
	"github.com/linkedpipes/executor/internal/execution/constants"
	"github.com/linkedpipes/executor/internal/execution/journal"
	"github.com/linkedpipes/executor/internal/execution/model"
	"github.com/linkedpipes/executor/internal/execution/plan"
	"github.com/linkedpipes/executor/internal/execution/resource"
	pipelinemodel "github.com/linkedpipes/executor/internal/pipeline/model"
	"github.com/linkedpipes/executor/internal/pipeline/resolver"
	"github.com/linkedpipes/executor/internal/system/log"
	"github.com/linkedpipes/executor/internal/system/metrics"
)

// Observer is notified when the execution starts and ends. Failures are recorded in the journal
// and fail the execution.
type Observer interface {
	ExecutionBegin(ctx context.Context, executionID string) error
	ExecutionEnd(ctx context.Context, record model.ExecutionRecord) error
}

// Option configures a Runner.
type Option func(*Runner)

// WithRegistry sets the plugin registry. The built-in plugins are used by default.
func WithRegistry(registry *component.Registry) Option {
	return func(r *Runner) {
		r.registry = registry
	}
}

// WithInstanceSource replaces the files data unit source.
func WithInstanceSource(source dataunit.InstanceSource) Option {
	return func(r *Runner) {
		r.source = source
	}
}

// WithPrevious sets the execution mapped components reuse.
func WithPrevious(previous *plan.Previous) Option {
	return func(r *Runner) {
		r.previous = previous
	}
}

// WithMetrics records component and execution outcomes.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Runner) {
		r.metrics = m
	}
}

// WithObservers adds execution observers.
func WithObservers(observers ...Observer) Option {
	return func(r *Runner) {
		r.observers = append(r.observers, observers...)
	}
}

// Runner executes one pipeline once.
type Runner struct {
	executionID string
	pipeline    *pipelinemodel.Pipeline
	journal     *journal.Journal
	resources   resource.Resolver
	registry    *component.Registry
	source      dataunit.InstanceSource
	previous    *plan.Previous
	metrics     *metrics.Metrics
	observers   []Observer
	cancelled   atomic.Bool
	cancelOnce  sync.Once
	logger      *log.Logger
}

// New creates a runner for the pipeline. The journal receives every execution event.
func New(executionID string, p *pipelinemodel.Pipeline, j *journal.Journal, resources resource.Resolver,
	opts ...Option) *Runner {
	r := &Runner{
		executionID: executionID,
		pipeline:    p,
		journal:     j,
		resources:   resources,
		logger: log.GetLogger().With(log.String(log.LoggerKeyComponentName, "ExecutionRunner"),
			log.String(log.LoggerKeyExecutionID, executionID)),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.registry == nil {
		r.registry = component.NewDefaultRegistry()
	}
	if r.source == nil {
		r.source = files.NewSource(p, resources)
	}
	return r
}

// Cancel asks the execution to stop. The running component is not interrupted; no further
// component is started.
func (r *Runner) Cancel() {
	r.cancelOnce.Do(func() {
		r.cancelled.Store(true)
		r.logger.Info("Execution cancel requested")
		r.apply(journal.CancelRequested())
	})
}

// Cancelled reports whether Cancel was called.
func (r *Runner) Cancelled() bool {
	return r.cancelled.Load()
}

// Run executes the pipeline and returns the final status. Every started execution ends with the
// execution end event, and data units are closed whatever happens.
func (r *Runner) Run(ctx context.Context) model.ExecutionStatus {
	r.logger.Info("Execution started", log.String(log.LoggerKeyPipelineIRI, r.pipeline.IRI()))
	r.apply(journal.ExecutionBegin())

	for _, observer := range r.observers {
		if err := observer.ExecutionBegin(ctx, r.executionID); err != nil {
			r.apply(journal.ObserverBeginFailed(err))
		}
	}

	r.execute(ctx)

	record := r.journal.Record()
	for _, observer := range r.observers {
		if err := observer.ExecutionEnd(ctx, record); err != nil {
			r.apply(journal.ObserverEndFailed(err))
		}
	}
	r.apply(journal.ExecutionEnd())

	status := r.journal.Status()
	r.metrics.ObserveExecution(status.String())
	r.logger.Info("Execution finished", log.String("status", status.String()))
	return status
}

func (r *Runner) execute(ctx context.Context) {
	defer func() {
		if recovered := recover(); recovered != nil {
			r.apply(journal.UnhandledError(fmt.Errorf("execution panicked: %v", recovered)))
		}
	}()

	executionPlan, err := plan.Build(r.pipeline, r.previous)
	if err != nil {
		r.apply(journal.PipelineInvalid(err))
		return
	}
	r.apply(journal.PipelineLoaded(executionPlan))

	instances, ok := r.createComponents(executionPlan)
	if !ok {
		return
	}

	manager := dataunit.NewManager(resolver.New(r.pipeline), r.resources, dataunit.WithMetrics(r.metrics))
	defer r.closeDataUnits(manager)
	if err := manager.InitializeAll(r.source, executionPlan.DataUnits()); err != nil {
		r.apply(journal.DataUnitsLoadingFailed(err))
		return
	}

	for _, c := range executionPlan.Components {
		if ctx.Err() != nil {
			r.Cancel()
		}
		if r.Cancelled() || r.journal.Status() == model.StatusFailed {
			r.logger.Debug("Execution stopped before component", log.String(log.LoggerKeyComponentIRI, c.IRI))
			return
		}

		start := time.Now()
		var succeeded bool
		switch c.Mode {
		case pipelinemodel.ModeSkip:
			continue
		case pipelinemodel.ModeMap:
			succeeded = r.mapComponent(manager, c)
		case pipelinemodel.ModeExecute:
			succeeded = r.executeComponent(ctx, manager, c, instances[c.IRI])
		default:
			r.apply(journal.UnhandledError(fmt.Errorf("component %s has unsupported mode %s", c.IRI, c.Mode)))
			return
		}
		outcome := "failed"
		if succeeded {
			outcome = "succeeded"
		}
		r.metrics.ObserveComponent(string(c.Mode), outcome, time.Since(start))
	}
}

// createComponents instantiates the plugins of every executed component before anything runs.
func (r *Runner) createComponents(executionPlan *model.Plan) (map[string]component.Component, bool) {
	instances := make(map[string]component.Component)
	var errs []error
	for _, c := range executionPlan.Components {
		if c.Mode != pipelinemodel.ModeExecute {
			continue
		}
		instance, err := r.registry.Create(c.Plugin, c.Configuration)
		if err != nil {
			r.apply(journal.CannotCreateExecutor(c.IRI, err))
			errs = append(errs, err)
			continue
		}
		instances[c.IRI] = instance
	}
	if len(errs) > 0 {
		r.apply(journal.ComponentsLoadingFailed(errors.Join(errs...)))
		return nil, false
	}
	return instances, true
}

func (r *Runner) mapComponent(manager *dataunit.Manager, c model.ExecutionComponent) bool {
	r.apply(journal.MapBegin(c.IRI))
	if err := manager.RemapForComponent(c); err != nil {
		r.apply(journal.MapFailed(c.IRI, constants.ErrorMappingFailed.Withf("%s", c.IRI).Wrap(err)))
		return false
	}
	r.apply(journal.MapSuccessful(c.IRI, r.dataUnitRecords(manager, c)))
	return true
}

func (r *Runner) executeComponent(ctx context.Context, manager *dataunit.Manager, c model.ExecutionComponent,
	instance component.Component) bool {
	r.apply(journal.ExecuteBegin(c.IRI))
	dataUnits, err := manager.PrepareForComponent(c)
	if err != nil {
		r.apply(journal.ExecuteFailed(c.IRI, err, r.dataUnitRecords(manager, c)))
		return false
	}

	componentContext := component.NewContext(c.IRI, c.Configuration, dataUnits, r.resources, r.Cancelled)
	r.apply(journal.UserCodeBegin(c.IRI))
	if err := r.invoke(ctx, instance, componentContext); err != nil {
		r.apply(journal.UserCodeFailed(c.IRI, err))
		r.apply(journal.ExecuteFailed(c.IRI, constants.ErrorComponentFailed.Withf("%s", c.IRI).Wrap(err),
			r.dataUnitRecords(manager, c)))
		return false
	}
	r.apply(journal.UserCodeSuccessful(c.IRI))

	if err := manager.FinalizeForComponent(c); err != nil {
		r.apply(journal.CannotSaveDataUnit(c.IRI, "", err))
		r.apply(journal.ExecuteFailed(c.IRI, err, r.dataUnitRecords(manager, c)))
		return false
	}
	r.apply(journal.ExecuteSuccessful(c.IRI, r.dataUnitRecords(manager, c)))
	return true
}

// invoke runs the component code, turning a panic into an error.
func (r *Runner) invoke(ctx context.Context, instance component.Component, c *component.Context) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("component panicked: %v", recovered)
		}
	}()
	return instance.Execute(ctx, c)
}

func (r *Runner) dataUnitRecords(manager *dataunit.Manager, c model.ExecutionComponent) []model.DataUnitRecord {
	reports := manager.Snapshot(c)
	records := make([]model.DataUnitRecord, 0, len(reports))
	for _, report := range reports {
		record := model.DataUnitRecord{IRI: report.IRI, State: report.State.String()}
		if report.Directory != "" {
			record.Directory = r.relativize(report.Directory)
		}
		records = append(records, record)
	}
	return records
}

// relativize returns dir relative to the execution root, or the absolute path when dir lies
// outside of it.
func (r *Runner) relativize(dir string) string {
	rel, err := r.resources.Relativize(dir)
	if err != nil {
		abs, absErr := filepath.Abs(dir)
		if absErr != nil {
			return dir
		}
		return abs
	}
	return rel
}

func (r *Runner) closeDataUnits(manager *dataunit.Manager) {
	for _, err := range manager.CloseAll() {
		r.logger.Warn("Data unit was not closed cleanly", log.Error(err))
	}
}

func (r *Runner) apply(event journal.Event) {
	if err := r.journal.Apply(event); err != nil {
		r.logger.Error("Failed to apply execution event", log.String("event", event.Kind.String()),
			log.Error(err))
	}
}
