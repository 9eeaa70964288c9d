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

// Package constants defines the error templates of the data unit packages.
package constants

import "github.com/linkedpipes/executor/internal/system/error/executorerror"

// ErrorInstantiationFailed is returned when a data unit instance cannot be created.
var ErrorInstantiationFailed = executorerror.ExecutorError{
	Code:    "DU-65001",
	Kind:    executorerror.InstantiationFailed,
	Message: "Cannot instantiate data unit",
}

// ErrorMissingDataUnit is returned when a component references an undeclared data unit.
var ErrorMissingDataUnit = executorerror.ExecutorError{
	Code:    "DU-65002",
	Kind:    executorerror.MissingDataUnit,
	Message: "Missing data unit",
}

// ErrorInvalidDataUnitState is returned for an illegal data unit lifecycle transition.
var ErrorInvalidDataUnitState = executorerror.ExecutorError{
	Code:    "DU-65003",
	Kind:    executorerror.InvalidDataUnitState,
	Message: "Invalid data unit state",
}

// ErrorMissingLoadDirectory is returned when a mapped data unit has no previous content.
var ErrorMissingLoadDirectory = executorerror.ExecutorError{
	Code:    "DU-65004",
	Kind:    executorerror.MappingFailed,
	Message: "Missing load directory for mapped data unit",
}

// ErrorDataUnitOperationFailed is returned when a data unit fails to load, save or close.
var ErrorDataUnitOperationFailed = executorerror.ExecutorError{
	Code:    "DU-65005",
	Kind:    executorerror.ExecutionFailed,
	Message: "Data unit operation failed",
}

// ErrorRemapFailed is returned when the content of a previous execution cannot be carried over.
var ErrorRemapFailed = executorerror.ExecutorError{
	Code:    "DU-65006",
	Kind:    executorerror.MappingFailed,
	Message: "Cannot map data unit",
}
