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

package config

import (
	"errors"
	"sync"
)

// ExecutorRuntime holds the runtime configuration for the executor.
type ExecutorRuntime struct {
	ExecutorHome string `yaml:"executor_home"`
	Config       Config `yaml:"config"`
}

var (
	runtimeConfig *ExecutorRuntime
	once          sync.Once
)

// InitializeExecutorRuntime initializes the ExecutorRuntime configuration.
func InitializeExecutorRuntime(executorHome string, config *Config) error {
	if config == nil {
		return errors.New("config must not be nil")
	}
	once.Do(func() {
		runtimeConfig = &ExecutorRuntime{
			ExecutorHome: executorHome,
			Config:       *config,
		}
	})

	return nil
}

// GetExecutorRuntime returns the ExecutorRuntime configuration.
func GetExecutorRuntime() *ExecutorRuntime {
	if runtimeConfig == nil {
		panic("ExecutorRuntime is not initialized")
	}
	return runtimeConfig
}

// ResetExecutorRuntime resets the ExecutorRuntime.
// This should only be used in tests to reset the singleton state.
func ResetExecutorRuntime() {
	runtimeConfig = nil
	once = sync.Once{}
}
