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

// Package executorerror defines the error structures shared by the executor packages.
package executorerror

import (
	"errors"
	"fmt"
)

// ErrorKind classifies an executor error.
type ErrorKind string

const (
	// MalformedPipeline denotes a structural error in the pipeline graph.
	MalformedPipeline ErrorKind = "malformed_pipeline"
	// UnknownComponent denotes a lookup of a component that is not part of the pipeline.
	UnknownComponent ErrorKind = "unknown_component"
	// UnknownPort denotes a lookup of a port that is not declared by its component.
	UnknownPort ErrorKind = "unknown_port"
	// InvalidExecutionMode denotes a component with an execution mode outside EXECUTE, SKIP and MAP.
	InvalidExecutionMode ErrorKind = "invalid_execution_mode"
	// InstantiationFailed denotes a data unit that could not be constructed.
	InstantiationFailed ErrorKind = "instantiation_failed"
	// MissingDataUnit denotes a component referencing a data unit that was never declared.
	MissingDataUnit ErrorKind = "missing_data_unit"
	// InvalidDataUnitState denotes an illegal data unit lifecycle transition.
	InvalidDataUnitState ErrorKind = "invalid_data_unit_state"
	// PersistenceFailed denotes a failed write of the execution record or overview.
	PersistenceFailed ErrorKind = "persistence_failed"
	// ExecutionFailed denotes a component that failed to execute.
	ExecutionFailed ErrorKind = "execution_failed"
	// MappingFailed denotes a component whose previous output could not be mapped.
	MappingFailed ErrorKind = "mapping_failed"
	// InvalidConfiguration denotes an invalid executor or pipeline configuration.
	InvalidConfiguration ErrorKind = "invalid_configuration"
)

// ExecutorError is the error type returned by the executor core.
// Two executor errors match under errors.Is when they share the same Kind.
type ExecutorError struct {
	Code    string
	Kind    ErrorKind
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ExecutorError) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Code != "" {
		msg = e.Code + ": " + msg
	}
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *ExecutorError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is reports whether target is an executor error of the same kind.
func (e *ExecutorError) Is(target error) bool {
	var other *ExecutorError
	if !errors.As(target, &other) || e == nil || other == nil {
		return false
	}
	return e.Kind == other.Kind
}

// Withf returns a copy of the error with a formatted message appended to its description.
func (e ExecutorError) Withf(format string, args ...any) *ExecutorError {
	detail := fmt.Sprintf(format, args...)
	if e.Message == "" {
		e.Message = detail
	} else {
		e.Message = e.Message + ": " + detail
	}
	return &e
}

// Wrap returns a copy of the error carrying the given cause.
func (e ExecutorError) Wrap(cause error) *ExecutorError {
	e.Cause = cause
	return &e
}

// OfKind returns a bare error of the given kind, suitable as an errors.Is target.
func OfKind(kind ErrorKind) error {
	return &ExecutorError{Kind: kind}
}

// KindOf returns the kind of the first executor error in err's chain, or "" if there is none.
func KindOf(err error) ErrorKind {
	var execErr *ExecutorError
	if errors.As(err, &execErr) {
		return execErr.Kind
	}
	return ""
}
