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

// Package journal records the lifecycle events of an execution and persists the execution record
// and its overview after every state changing event.
package journal

import (
	"sync"
	"time"

	"github.com/linkedpipes/executor/internal/execution/constants"
	"github.com/linkedpipes/executor/internal/execution/model"
	pipelinemodel "github.com/linkedpipes/executor/internal/pipeline/model"
	"github.com/linkedpipes/executor/internal/system/log"
	"github.com/linkedpipes/executor/internal/system/metrics"
	"github.com/linkedpipes/executor/internal/system/utils"
)

// Snapshot is a consistent copy of the journal state handed to persisters.
type Snapshot struct {
	Record   model.ExecutionRecord
	Overview model.Overview
	// Final is set for the snapshot taken at the end of the execution.
	Final bool
}

// Persister stores journal snapshots.
type Persister interface {
	Name() string
	Persist(snapshot Snapshot) error
}

// Option configures a Journal.
type Option func(*Journal)

// WithPersisters adds persisters, flushed in the given order.
func WithPersisters(persisters ...Persister) Option {
	return func(j *Journal) {
		j.persisters = append(j.persisters, persisters...)
	}
}

// WithClock replaces the wall clock.
func WithClock(clock func() time.Time) Option {
	return func(j *Journal) {
		j.clock = clock
	}
}

// WithMetrics records applied events and flushes in the given metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(j *Journal) {
		j.metrics = m
	}
}

// WithExecutionLogger mirrors every event into the execution log.
func WithExecutionLogger(logger *log.ExecutionLogger) Option {
	return func(j *Journal) {
		j.executionLog = logger
	}
}

// WithDirectorySize replaces the function measuring the execution directory at the end.
func WithDirectorySize(sizeOf func(root string) (int64, error)) Option {
	return func(j *Journal) {
		j.sizeOf = sizeOf
	}
}

// Journal applies execution events to the execution record and overview. Events are applied in
// a total order; each state changing event is flushed to all persisters before Apply returns.
type Journal struct {
	mu           sync.Mutex
	root         string
	record       model.ExecutionRecord
	overview     model.Overview
	counted      map[string]bool
	persisters   []Persister
	clock        func() time.Time
	sizeOf       func(root string) (int64, error)
	metrics      *metrics.Metrics
	executionLog *log.ExecutionLogger
	lastError    error
	logger       *log.Logger
}

// New creates a journal for the execution stored under root.
func New(executionID, executionIRI, root string, opts ...Option) *Journal {
	j := &Journal{
		root: root,
		record: model.ExecutionRecord{
			ID:         executionID,
			IRI:        executionIRI,
			Status:     model.StatusNotStarted,
			Components: []model.ComponentRecord{},
			Events:     []model.EventRecord{},
		},
		overview: model.Overview{
			ExecutionIRI: executionIRI,
			Status:       model.StatusNotStarted,
		},
		counted: make(map[string]bool),
		clock:   time.Now,
		sizeOf:  utils.DirectorySize,
		logger: log.GetLogger().With(log.String(log.LoggerKeyComponentName, "ExecutionJournal"),
			log.String(log.LoggerKeyExecutionID, executionID)),
	}
	for _, opt := range opts {
		opt(j)
	}
	now := j.clock()
	j.record.LastChange = now
	j.overview.LastChange = now
	return j
}

// Apply applies the event and, when it changes the record, flushes the journal. Failing
// persisters do not make Apply fail; see LastPersistenceError.
func (j *Journal) Apply(event Event) error {
	if !event.Kind.IsValid() {
		return constants.ErrorUnknownEventKind.Withf("%d", int(event.Kind))
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	j.metrics.ObserveEvent(event.Kind.String())
	j.mirror(event)
	if !event.Kind.IsStateChanging() {
		return nil
	}

	now := j.tick()
	if err := j.update(event, now); err != nil {
		return err
	}
	j.record.Events = append(j.record.Events, model.EventRecord{
		Sequence:  len(j.record.Events) + 1,
		Type:      event.Kind.String(),
		Component: event.ComponentIRI,
		Time:      now,
		Message:   errorMessage(event.Err),
	})
	j.overview.Status = j.record.Status
	j.flush(event.Kind == EventExecutionEnd)
	return nil
}

// update applies the kind specific changes.
func (j *Journal) update(event Event, now time.Time) error {
	var component *model.ComponentRecord
	if event.ComponentIRI != "" {
		c, ok := j.record.Component(event.ComponentIRI)
		if !ok {
			return constants.ErrorUnknownComponent.Withf("%s (%s)", event.ComponentIRI, event.Kind)
		}
		component = c
	}

	switch event.Kind {
	case EventExecutionBegin:
		j.raise(model.StatusRunning)
		started := now
		j.record.Started = &started
		j.overview.Started = &started
	case EventPipelineLoaded:
		j.loadPlan(event.Plan)
	case EventPipelineInvalid, EventComponentsLoadingFailed, EventDataUnitsLoadingFailed,
		EventObserverBeginFailed, EventObserverEndFailed, EventUnhandledError:
		j.fail(event.Err)
	case EventMapBegin, EventExecuteBegin:
		if component != nil {
			component.Status = model.ComponentRunning
			started := now
			component.Started = &started
		}
	case EventMapSuccessful:
		if component != nil {
			j.finishComponent(component, model.ComponentMapped, now, event)
		}
	case EventMapFailed:
		if component != nil {
			j.finishComponent(component, model.ComponentFailed, now, event)
		}
		j.fail(event.Err)
	case EventExecuteSuccessful:
		if component != nil {
			j.finishComponent(component, model.ComponentSucceeded, now, event)
			j.countProgress(component.IRI)
		}
	case EventExecuteFailed:
		if component != nil {
			j.finishComponent(component, model.ComponentFailed, now, event)
			j.countProgress(component.IRI)
		}
		j.fail(event.Err)
	case EventCannotSaveDataUnit, EventCannotCreateExecutor:
		if component != nil {
			component.Status = model.ComponentFailed
			if component.Error == "" {
				component.Error = errorMessage(event.Err)
			}
		}
		j.fail(event.Err)
	case EventCancelRequested:
		j.record.CancelRequested = true
		j.raise(model.StatusCancelled)
	case EventExecutionEnd:
		j.raise(model.StatusFinished)
		finished := now
		j.record.Finished = &finished
		j.overview.Finished = &finished
		j.measureDirectory()
	}
	return nil
}

func (j *Journal) loadPlan(plan *model.Plan) {
	if plan == nil {
		return
	}
	j.record.PipelineIRI = plan.PipelineIRI
	j.overview.PipelineIRI = plan.PipelineIRI
	j.overview.ProgressTotal = plan.CountMode(pipelinemodel.ModeExecute)

	components := make([]model.ComponentRecord, 0, len(plan.Components))
	for _, c := range plan.Components {
		status := model.ComponentPending
		if c.Mode == pipelinemodel.ModeSkip {
			status = model.ComponentSkipped
		}
		components = append(components, model.ComponentRecord{
			IRI:    c.IRI,
			Label:  c.Label,
			Mode:   string(c.Mode),
			Status: status,
		})
	}
	j.record.Components = components
}

func (j *Journal) finishComponent(component *model.ComponentRecord, status model.ComponentStatus,
	now time.Time, event Event) {
	component.Status = status
	finished := now
	component.Finished = &finished
	if event.Err != nil {
		component.Error = event.Err.Error()
	}
	if event.DataUnits != nil {
		component.DataUnits = append([]model.DataUnitRecord(nil), event.DataUnits...)
	}
}

// countProgress counts each component at most once.
func (j *Journal) countProgress(componentIRI string) {
	if j.counted[componentIRI] {
		return
	}
	j.counted[componentIRI] = true
	j.overview.ProgressCurrent++
}

func (j *Journal) fail(err error) {
	j.raise(model.StatusFailed)
	if j.record.Error == "" && err != nil {
		j.record.Error = err.Error()
	}
}

// raise moves the status up; it never moves down.
func (j *Journal) raise(status model.ExecutionStatus) {
	j.record.Status = j.record.Status.Max(status)
}

// tick returns the clock reading, never earlier than the previous change.
func (j *Journal) tick() time.Time {
	now := j.clock()
	if now.Before(j.record.LastChange) {
		now = j.record.LastChange
	}
	j.record.LastChange = now
	j.overview.LastChange = now
	return now
}

func (j *Journal) measureDirectory() {
	if j.root == "" || j.sizeOf == nil {
		return
	}
	size, err := j.sizeOf(j.root)
	if err != nil {
		j.logger.Warn("Failed to measure execution directory", log.String("root", j.root), log.Error(err))
		return
	}
	j.overview.DirectorySize = &size
}

func (j *Journal) flush(final bool) {
	snapshot := Snapshot{
		Record:   j.record.Clone(),
		Overview: j.overviewCopy(),
		Final:    final,
	}
	for _, persister := range j.persisters {
		start := time.Now()
		err := persister.Persist(snapshot)
		j.metrics.ObserveFlush(persister.Name(), time.Since(start), err)
		if err != nil {
			j.lastError = constants.ErrorPersistenceFailed.Withf("%s", persister.Name()).Wrap(err)
			j.logger.Error("Failed to persist execution", log.String("persister", persister.Name()),
				log.Error(err))
		}
	}
}

func (j *Journal) mirror(event Event) {
	if j.executionLog == nil && !j.logger.IsDebugEnabled() {
		return
	}
	fields := []log.Field{log.String("event", event.Kind.String())}
	if event.ComponentIRI != "" {
		fields = append(fields, log.String(log.LoggerKeyComponentIRI, event.ComponentIRI))
	}
	if event.DataUnitIRI != "" {
		fields = append(fields, log.String(log.LoggerKeyDataUnitIRI, event.DataUnitIRI))
	}
	if event.Err != nil {
		fields = append(fields, log.Error(event.Err))
	}
	j.logger.Debug("Execution event", fields...)
	if event.Err != nil {
		j.executionLog.Error("Execution event", fields...)
	} else {
		j.executionLog.Info("Execution event", fields...)
	}
}

func (j *Journal) overviewCopy() model.Overview {
	o := j.overview
	if o.Started != nil {
		started := *o.Started
		o.Started = &started
	}
	if o.Finished != nil {
		finished := *o.Finished
		o.Finished = &finished
	}
	if o.DirectorySize != nil {
		size := *o.DirectorySize
		o.DirectorySize = &size
	}
	return o
}

// Status returns the overall execution status.
func (j *Journal) Status() model.ExecutionStatus {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.record.Status
}

// CancelRequested reports whether a cancel request was recorded.
func (j *Journal) CancelRequested() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.record.CancelRequested
}

// Record returns a copy of the execution record.
func (j *Journal) Record() model.ExecutionRecord {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.record.Clone()
}

// Overview returns a copy of the execution overview.
func (j *Journal) Overview() model.Overview {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.overviewCopy()
}

// LastPersistenceError returns the most recent persistence failure, or nil.
func (j *Journal) LastPersistenceError() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.lastError
}

func errorMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
