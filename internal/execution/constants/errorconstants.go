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

// Package constants defines the error templates of the execution packages.
package constants

import "github.com/linkedpipes/executor/internal/system/error/executorerror"

// Client error structs

// ErrorUnknownEventKind is returned when the journal receives an event it does not know.
var ErrorUnknownEventKind = executorerror.ExecutorError{
	Code:    "EXE-60001",
	Kind:    executorerror.InvalidConfiguration,
	Message: "Unknown execution event",
}

// ErrorUnknownComponent is returned for an event about a component missing from the execution.
var ErrorUnknownComponent = executorerror.ExecutorError{
	Code:    "EXE-60002",
	Kind:    executorerror.UnknownComponent,
	Message: "Component is not part of the execution",
}

// ErrorMissingPreviousExecution is returned when a mapped component has no previous output.
var ErrorMissingPreviousExecution = executorerror.ExecutorError{
	Code:    "EXE-60003",
	Kind:    executorerror.MalformedPipeline,
	Message: "Mapped component has no previous execution output",
}

// ErrorUnknownPlugin is returned when no plugin is registered for a component.
var ErrorUnknownPlugin = executorerror.ExecutorError{
	Code:    "EXE-60004",
	Kind:    executorerror.InvalidConfiguration,
	Message: "Unknown component plugin",
}

// ErrorInvalidPluginConfiguration is returned when a plugin rejects its configuration.
var ErrorInvalidPluginConfiguration = executorerror.ExecutorError{
	Code:    "EXE-60005",
	Kind:    executorerror.InvalidConfiguration,
	Message: "Invalid component configuration",
}

// Server error structs

// ErrorPersistenceFailed is returned when the execution record or overview cannot be stored.
var ErrorPersistenceFailed = executorerror.ExecutorError{
	Code:    "EXE-65001",
	Kind:    executorerror.PersistenceFailed,
	Message: "Cannot persist execution",
}

// ErrorComponentFailed is returned when a component fails to execute.
var ErrorComponentFailed = executorerror.ExecutorError{
	Code:    "EXE-65002",
	Kind:    executorerror.ExecutionFailed,
	Message: "Component execution failed",
}

// ErrorMappingFailed is returned when a component cannot be mapped from a previous execution.
var ErrorMappingFailed = executorerror.ExecutorError{
	Code:    "EXE-65003",
	Kind:    executorerror.MappingFailed,
	Message: "Component mapping failed",
}

// ErrorExecutionFailed is returned by the runner when the execution did not finish successfully.
var ErrorExecutionFailed = executorerror.ExecutorError{
	Code:    "EXE-65004",
	Kind:    executorerror.ExecutionFailed,
	Message: "Execution did not finish",
}
