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

package provider

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/linkedpipes/executor/internal/system/config"
	"github.com/linkedpipes/executor/internal/system/database/model"
)

type DBProviderTestSuite struct {
	suite.Suite
	home string
}

func TestDBProviderSuite(t *testing.T) {
	suite.Run(t, new(DBProviderTestSuite))
}

func (suite *DBProviderTestSuite) SetupTest() {
	suite.home = suite.T().TempDir()
	assert.NoError(suite.T(), os.MkdirAll(filepath.Join(suite.home, "database"), 0o755))

	config.ResetExecutorRuntime()
	cfg := &config.Config{
		Database: config.DatabaseConfig{
			Runtime: config.DataSource{
				Type: "sqlite",
				Name: "runtime",
				Path: "database/runtime.db",
			},
		},
	}
	assert.NoError(suite.T(), config.InitializeExecutorRuntime(suite.home, cfg))
}

func (suite *DBProviderTestSuite) TearDownTest() {
	config.ResetExecutorRuntime()
}

func (suite *DBProviderTestSuite) TestGetDBClientOpensAndReuses() {
	p := &DBProvider{}
	defer func() {
		_ = p.Close()
	}()

	first, err := p.GetDBClient("runtime")
	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), first)

	second, err := p.GetDBClient("runtime")
	assert.NoError(suite.T(), err)
	assert.Same(suite.T(), first, second)

	rows, err := first.Query(model.DBQuery{
		ID:    "test_tables",
		Query: "SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'EXECUTION_OVERVIEW'",
	})
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), rows, 1)
}

func (suite *DBProviderTestSuite) TestGetDBClientUnknownName() {
	p := &DBProvider{}

	c, err := p.GetDBClient("identity")

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), c)
}

func (suite *DBProviderTestSuite) TestGetDBConfig() {
	cfg, err := getDBConfig(config.DataSource{
		Type: "postgres", Hostname: "localhost", Port: 5432, Username: "lp", Password: "secret",
		Name: "runtime", SSLMode: "disable",
	}, suite.home)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "postgres", cfg.driverName)
	assert.Equal(suite.T(),
		"host=localhost port=5432 user=lp password=secret dbname=runtime sslmode=disable", cfg.dsn)

	cfg, err = getDBConfig(config.DataSource{Type: "sqlite", Path: "db/runtime.db", Options: "_pragma=busy_timeout(5000)"},
		"/opt/executor")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "/opt/executor/db/runtime.db?_pragma=busy_timeout(5000)", cfg.dsn)
	assert.Equal(suite.T(), "/opt/executor/db/runtime.db", cfg.file)

	cfg, err = getDBConfig(config.DataSource{Type: "sqlite", Path: "/var/lib/executor/runtime.db"}, "/opt/executor")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "/var/lib/executor/runtime.db", cfg.dsn)

	_, err = getDBConfig(config.DataSource{Type: "oracle"}, suite.home)
	assert.Error(suite.T(), err)
}

func (suite *DBProviderTestSuite) TestCloseWithoutClient() {
	p := &DBProvider{}
	assert.NoError(suite.T(), p.Close())
}
