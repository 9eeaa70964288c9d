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

// Package constants defines the error templates of the pipeline packages.
package constants

import "github.com/linkedpipes/executor/internal/system/error/executorerror"

// ErrorMalformedPipeline is returned when the pipeline graph is structurally invalid.
var ErrorMalformedPipeline = executorerror.ExecutorError{
	Code:    "PPL-60001",
	Kind:    executorerror.MalformedPipeline,
	Message: "Malformed pipeline",
}

// ErrorUnknownComponent is returned when a component is not part of the pipeline.
var ErrorUnknownComponent = executorerror.ExecutorError{
	Code:    "PPL-60002",
	Kind:    executorerror.UnknownComponent,
	Message: "Unknown component",
}

// ErrorUnknownPort is returned when a port is not declared by its component.
var ErrorUnknownPort = executorerror.ExecutorError{
	Code:    "PPL-60003",
	Kind:    executorerror.UnknownPort,
	Message: "Unknown port",
}

// ErrorInvalidDefinition is returned when a pipeline definition cannot be read or decoded.
var ErrorInvalidDefinition = executorerror.ExecutorError{
	Code:    "PPL-60004",
	Kind:    executorerror.InvalidConfiguration,
	Message: "Invalid pipeline definition",
}

// ErrorInvalidExecutionMode is returned for a component mode other than EXECUTE, SKIP and MAP.
var ErrorInvalidExecutionMode = executorerror.ExecutorError{
	Code:    "PPL-65001",
	Kind:    executorerror.InvalidExecutionMode,
	Message: "Invalid execution mode",
}
