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

package journal

import (
	"github.com/linkedpipes/executor/internal/execution/model"
)

// EventKind identifies an execution lifecycle event.
type EventKind int

const (
	// EventExecutionBegin is emitted once when the execution starts.
	EventExecutionBegin EventKind = iota
	// EventPipelineLoaded carries the execution plan once the pipeline is loaded.
	EventPipelineLoaded
	// EventPipelineInvalid reports a pipeline that cannot be executed.
	EventPipelineInvalid
	// EventComponentsLoadingFailed reports components that could not be instantiated.
	EventComponentsLoadingFailed
	// EventDataUnitsLoadingFailed reports data units that could not be instantiated.
	EventDataUnitsLoadingFailed
	// EventMapBegin is emitted before a component is mapped from a previous execution.
	EventMapBegin
	// EventMapFailed reports a component that could not be mapped.
	EventMapFailed
	// EventMapSuccessful reports a mapped component.
	EventMapSuccessful
	// EventExecuteBegin is emitted before a component is executed.
	EventExecuteBegin
	// EventExecuteFailed reports a component whose execution failed.
	EventExecuteFailed
	// EventExecuteSuccessful reports a component executed successfully.
	EventExecuteSuccessful
	// EventCannotSaveDataUnit reports a data unit that could not be saved.
	EventCannotSaveDataUnit
	// EventUserCodeBegin is emitted before the component code runs.
	EventUserCodeBegin
	// EventUserCodeFailed reports component code that returned an error.
	EventUserCodeFailed
	// EventUserCodeSuccessful reports component code that returned normally.
	EventUserCodeSuccessful
	// EventObserverBeginFailed reports a failure while preparing the execution observers.
	EventObserverBeginFailed
	// EventObserverEndFailed reports a failure while finishing the execution observers.
	EventObserverEndFailed
	// EventCancelRequested records a cancel request.
	EventCancelRequested
	// EventExecutionEnd is emitted once when the execution ends.
	EventExecutionEnd
	// EventCannotCreateExecutor reports a component whose executor could not be created.
	EventCannotCreateExecutor
	// EventUnhandledError reports an unexpected failure of the run driver.
	EventUnhandledError
)

var eventKindNames = []string{
	"execution_begin",
	"pipeline_loaded",
	"pipeline_invalid",
	"components_loading_failed",
	"data_units_loading_failed",
	"map_begin",
	"map_failed",
	"map_successful",
	"execute_begin",
	"execute_failed",
	"execute_successful",
	"cannot_save_data_unit",
	"user_code_begin",
	"user_code_failed",
	"user_code_successful",
	"observer_begin_failed",
	"observer_end_failed",
	"cancel_requested",
	"execution_end",
	"cannot_create_executor",
	"unhandled_error",
}

// String returns the event name.
func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventKindNames) {
		return "unknown"
	}
	return eventKindNames[k]
}

// IsValid reports whether the kind is a known event.
func (k EventKind) IsValid() bool {
	return k >= 0 && int(k) < len(eventKindNames)
}

// IsStateChanging reports whether applying the event changes the persisted record. Component
// code events are only logged.
func (k EventKind) IsStateChanging() bool {
	switch k {
	case EventUserCodeBegin, EventUserCodeFailed, EventUserCodeSuccessful:
		return false
	}
	return true
}

// Event is one execution lifecycle event. Which fields are set depends on the kind.
type Event struct {
	Kind         EventKind
	ComponentIRI string
	DataUnitIRI  string
	Plan         *model.Plan
	DataUnits    []model.DataUnitRecord
	Err          error
}

// ExecutionBegin creates an execution begin event.
func ExecutionBegin() Event {
	return Event{Kind: EventExecutionBegin}
}

// PipelineLoaded creates a pipeline loaded event for the plan.
func PipelineLoaded(plan *model.Plan) Event {
	return Event{Kind: EventPipelineLoaded, Plan: plan}
}

// PipelineInvalid creates a pipeline invalid event.
func PipelineInvalid(err error) Event {
	return Event{Kind: EventPipelineInvalid, Err: err}
}

// ComponentsLoadingFailed creates a components loading failed event.
func ComponentsLoadingFailed(err error) Event {
	return Event{Kind: EventComponentsLoadingFailed, Err: err}
}

// DataUnitsLoadingFailed creates a data units loading failed event.
func DataUnitsLoadingFailed(err error) Event {
	return Event{Kind: EventDataUnitsLoadingFailed, Err: err}
}

// MapBegin creates a map begin event.
func MapBegin(componentIRI string) Event {
	return Event{Kind: EventMapBegin, ComponentIRI: componentIRI}
}

// MapFailed creates a map failed event.
func MapFailed(componentIRI string, err error) Event {
	return Event{Kind: EventMapFailed, ComponentIRI: componentIRI, Err: err}
}

// MapSuccessful creates a map successful event with the final data unit locations.
func MapSuccessful(componentIRI string, dataUnits []model.DataUnitRecord) Event {
	return Event{Kind: EventMapSuccessful, ComponentIRI: componentIRI, DataUnits: dataUnits}
}

// ExecuteBegin creates an execute begin event.
func ExecuteBegin(componentIRI string) Event {
	return Event{Kind: EventExecuteBegin, ComponentIRI: componentIRI}
}

// ExecuteFailed creates an execute failed event.
func ExecuteFailed(componentIRI string, err error, dataUnits []model.DataUnitRecord) Event {
	return Event{Kind: EventExecuteFailed, ComponentIRI: componentIRI, Err: err, DataUnits: dataUnits}
}

// ExecuteSuccessful creates an execute successful event with the final data unit locations.
func ExecuteSuccessful(componentIRI string, dataUnits []model.DataUnitRecord) Event {
	return Event{Kind: EventExecuteSuccessful, ComponentIRI: componentIRI, DataUnits: dataUnits}
}

// CannotSaveDataUnit creates a cannot save data unit event.
func CannotSaveDataUnit(componentIRI, dataUnitIRI string, err error) Event {
	return Event{Kind: EventCannotSaveDataUnit, ComponentIRI: componentIRI, DataUnitIRI: dataUnitIRI, Err: err}
}

// UserCodeBegin creates a component code begin event.
func UserCodeBegin(componentIRI string) Event {
	return Event{Kind: EventUserCodeBegin, ComponentIRI: componentIRI}
}

// UserCodeFailed creates a component code failed event.
func UserCodeFailed(componentIRI string, err error) Event {
	return Event{Kind: EventUserCodeFailed, ComponentIRI: componentIRI, Err: err}
}

// UserCodeSuccessful creates a component code successful event.
func UserCodeSuccessful(componentIRI string) Event {
	return Event{Kind: EventUserCodeSuccessful, ComponentIRI: componentIRI}
}

// ObserverBeginFailed creates an observer begin failed event.
func ObserverBeginFailed(err error) Event {
	return Event{Kind: EventObserverBeginFailed, Err: err}
}

// ObserverEndFailed creates an observer end failed event.
func ObserverEndFailed(err error) Event {
	return Event{Kind: EventObserverEndFailed, Err: err}
}

// CancelRequested creates a cancel requested event.
func CancelRequested() Event {
	return Event{Kind: EventCancelRequested}
}

// ExecutionEnd creates an execution end event.
func ExecutionEnd() Event {
	return Event{Kind: EventExecutionEnd}
}

// CannotCreateExecutor creates a cannot create executor event.
func CannotCreateExecutor(componentIRI string, err error) Event {
	return Event{Kind: EventCannotCreateExecutor, ComponentIRI: componentIRI, Err: err}
}

// UnhandledError creates an unhandled error event.
func UnhandledError(err error) Event {
	return Event{Kind: EventUnhandledError, Err: err}
}
