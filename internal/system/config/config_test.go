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
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

const testResourceDir = "../../../tests/resources"

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (suite *ConfigTestSuite) getFilePath(filename string) string {
	return filepath.Join(testResourceDir, filename)
}

func (suite *ConfigTestSuite) TestLoadConfigValid() {
	config, err := LoadConfig(suite.getFilePath("executor.yaml"))

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), config)

	assert.Equal(suite.T(), "repository/executions", config.Executor.ExecutionsDirectory)
	assert.True(suite.T(), config.Executor.DebugLog)

	assert.Equal(suite.T(), "sqlite", config.Database.Runtime.Type)
	assert.Equal(suite.T(), "repository/database/runtime.db", config.Database.Runtime.Path)
	assert.Equal(suite.T(), 10, config.Database.Runtime.MaxOpenConns)

	assert.True(suite.T(), config.Journal.DatabaseEnabled)
	assert.False(suite.T(), config.Journal.ArchiveEnabled)

	assert.Equal(suite.T(), "localhost:9000", config.ObjectStore.Endpoint)
	assert.Equal(suite.T(), "executions", config.ObjectStore.Bucket)

	assert.True(suite.T(), config.Metrics.Enabled)
	assert.Equal(suite.T(), "executor", config.Metrics.Namespace)
}

func (suite *ConfigTestSuite) TestLoadConfigFileNotFound() {
	config, err := LoadConfig(suite.getFilePath("non_existent_config.yaml"))

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), config)
	assert.Contains(suite.T(), err.Error(), "no such file or directory")
}

func (suite *ConfigTestSuite) TestLoadConfigInvalidYAML() {
	config, err := LoadConfig(suite.getFilePath("invalid_executor.yaml"))

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), config)
}

func (suite *ConfigTestSuite) TestExecutorRuntimeLifecycle() {
	ResetExecutorRuntime()
	defer ResetExecutorRuntime()

	assert.Panics(suite.T(), func() { GetExecutorRuntime() })
	assert.Error(suite.T(), InitializeExecutorRuntime("/tmp/home", nil))

	cfg := &Config{Executor: ExecutorConfig{ExecutionsDirectory: "first"}}
	assert.NoError(suite.T(), InitializeExecutorRuntime("/tmp/home", cfg))

	// Subsequent initializations are ignored.
	other := &Config{Executor: ExecutorConfig{ExecutionsDirectory: "second"}}
	assert.NoError(suite.T(), InitializeExecutorRuntime("/tmp/other", other))

	runtime := GetExecutorRuntime()
	assert.Equal(suite.T(), "/tmp/home", runtime.ExecutorHome)
	assert.Equal(suite.T(), "first", runtime.Config.Executor.ExecutionsDirectory)
}
