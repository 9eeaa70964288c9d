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

// Package constants defines global constants used across the system module.
package constants

const (
	// LogLevelEnvironmentVariable is the environment variable name for the log level.
	LogLevelEnvironmentVariable = "EXECUTOR_LOG_LEVEL"
	// DefaultLogLevel is the default log level used if not specified.
	DefaultLogLevel = "info"
	// LogFormatEnvironmentVariable selects the process log format, text or json.
	LogFormatEnvironmentVariable = "EXECUTOR_LOG_FORMAT"
)

const (
	// HomeEnvironmentVariable is the environment variable name for the executor home directory.
	HomeEnvironmentVariable = "EXECUTOR_HOME"
	// DefaultConfigFile is the configuration file path relative to the executor home.
	DefaultConfigFile = "repository/conf/executor.yaml"
	// DefaultExecutionsDirectory is the executions directory relative to the executor home.
	DefaultExecutionsDirectory = "repository/executions"
)

// RuntimeDBName is the name of the database holding execution monitoring data.
const RuntimeDBName = "runtime"

// ExecutionIRIPrefix is prepended to execution identifiers to form execution IRIs.
const ExecutionIRIPrefix = "http://localhost/resources/executions/"
