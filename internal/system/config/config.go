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

// Package config provides structures and functions for loading and managing executor configurations.
package config

import (
	"os"
	"path/filepath"

	"github.com/linkedpipes/executor/internal/system/log"

	yaml "gopkg.in/yaml.v3"
)

// ExecutorConfig holds the execution storage configuration details.
type ExecutorConfig struct {
	ExecutionsDirectory string `yaml:"executions_directory"`
	DebugLog            bool   `yaml:"debug_log"`
}

// DataSource holds the individual database connection details.
type DataSource struct {
	Type            string `yaml:"type"`
	Hostname        string `yaml:"hostname"`
	Port            int    `yaml:"port"`
	Name            string `yaml:"name"`
	Username        string `yaml:"username"`
	Password        string `yaml:"password"`
	SSLMode         string `yaml:"sslmode"`
	Path            string `yaml:"path"`
	Options         string `yaml:"options"`
	MaxOpenConns    int    `yaml:"max_open_conns"`
	MaxIdleConns    int    `yaml:"max_idle_conns"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime"`
}

// DatabaseConfig holds the different database configuration details.
type DatabaseConfig struct {
	Runtime DataSource `yaml:"runtime"`
}

// JournalConfig holds the configuration of the execution journal persisters.
type JournalConfig struct {
	DatabaseEnabled bool `yaml:"database_enabled"`
	ArchiveEnabled  bool `yaml:"archive_enabled"`
}

// ObjectStoreConfig holds the object store connection details used to archive executions.
type ObjectStoreConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Region    string `yaml:"region"`
	Bucket    string `yaml:"bucket"`
	UseSSL    bool   `yaml:"use_ssl"`
}

// MetricsConfig holds the metrics configuration details.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace"`
}

// Config holds the complete configuration details of the executor.
type Config struct {
	Executor    ExecutorConfig    `yaml:"executor"`
	Database    DatabaseConfig    `yaml:"database"`
	Journal     JournalConfig     `yaml:"journal"`
	ObjectStore ObjectStoreConfig `yaml:"object_store"`
	Metrics     MetricsConfig     `yaml:"metrics"`
}

// LoadConfig loads the configurations from the specified YAML file.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	path = filepath.Clean(path)

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if ferr := file.Close(); ferr != nil {
			log.GetLogger().Error("Failed to close config file", log.Error(ferr))
		}
	}()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
