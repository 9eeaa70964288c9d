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

// Package provider provides functionality for managing database connections and clients.
package provider

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/linkedpipes/executor/internal/system/config"
	"github.com/linkedpipes/executor/internal/system/constants"
	"github.com/linkedpipes/executor/internal/system/database/client"
	"github.com/linkedpipes/executor/internal/system/database/migration"
	"github.com/linkedpipes/executor/internal/system/database/model"
	"github.com/linkedpipes/executor/internal/system/log"
)

// dbConfig represents the local database configuration.
type dbConfig struct {
	dsn        string
	driverName string
	// file is the database file of embedded databases.
	file string
}

// DBProviderInterface defines the interface for getting database clients.
type DBProviderInterface interface {
	GetDBClient(dbName string) (client.DBClientInterface, error)
	Close() error
}

// DBProvider is the implementation of DBProviderInterface.
type DBProvider struct {
	runtimeClient client.DBClientInterface
	runtimeMutex  sync.RWMutex
}

var (
	instance *DBProvider
	once     sync.Once
)

// GetDBProvider returns the instance of DBProvider.
func GetDBProvider() DBProviderInterface {
	once.Do(func() {
		instance = &DBProvider{}
	})
	return instance
}

// GetDBClient returns a database client based on the provided database name.
// The first call opens the connection pool and applies pending schema migrations.
func (d *DBProvider) GetDBClient(dbName string) (client.DBClientInterface, error) {
	if dbName != constants.RuntimeDBName {
		return nil, fmt.Errorf("unsupported database name: %s", dbName)
	}

	d.runtimeMutex.RLock()
	if d.runtimeClient != nil {
		c := d.runtimeClient
		d.runtimeMutex.RUnlock()
		return c, nil
	}
	d.runtimeMutex.RUnlock()

	d.runtimeMutex.Lock()
	defer d.runtimeMutex.Unlock()
	if d.runtimeClient != nil {
		return d.runtimeClient, nil
	}

	c, err := d.initializeClient(config.GetExecutorRuntime().Config.Database.Runtime)
	if err != nil {
		return nil, err
	}
	d.runtimeClient = c
	return c, nil
}

// initializeClient opens the database, verifies the connection and migrates the schema.
func (d *DBProvider) initializeClient(dataSource config.DataSource) (client.DBClientInterface, error) {
	dbConfig, err := getDBConfig(dataSource, config.GetExecutorRuntime().ExecutorHome)
	if err != nil {
		return nil, err
	}
	dbName := dataSource.Name
	if dbConfig.file != "" {
		if err := os.MkdirAll(filepath.Dir(dbConfig.file), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open(dbConfig.driverName, dbConfig.dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database %s: %w", dbName, err)
	}

	if dataSource.MaxOpenConns > 0 {
		db.SetMaxOpenConns(dataSource.MaxOpenConns)
	}
	if dataSource.MaxIdleConns > 0 {
		db.SetMaxIdleConns(dataSource.MaxIdleConns)
	}
	if dataSource.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(time.Duration(dataSource.ConnMaxLifetime) * time.Second)
	}

	if err := db.Ping(); err != nil {
		return nil, closeOnError(db, fmt.Errorf("failed to ping database %s: %w", dbName, err))
	}

	if dbConfig.driverName == model.DBTypeSQLite {
		if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
			return nil, closeOnError(db,
				fmt.Errorf("failed to enable foreign key constraints for %s: %w", dbName, err))
		}
	}

	if err := migration.Up(db, dbConfig.driverName); err != nil {
		return nil, closeOnError(db, err)
	}

	log.GetLogger().Debug("Runtime database ready", log.String("type", dbConfig.driverName))
	return client.NewDBClient(model.NewDB(db), dbConfig.driverName), nil
}

// getDBConfig returns the database configuration based on the provided data source.
func getDBConfig(dataSource config.DataSource, home string) (dbConfig, error) {
	switch dataSource.Type {
	case model.DBTypePostgres:
		return dbConfig{
			driverName: model.DBTypePostgres,
			dsn: fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
				dataSource.Hostname, dataSource.Port, dataSource.Username, dataSource.Password,
				dataSource.Name, dataSource.SSLMode),
		}, nil
	case model.DBTypeSQLite:
		options := dataSource.Options
		if options != "" && options[0] != '?' {
			options = "?" + options
		}
		file := dataSource.Path
		if !filepath.IsAbs(file) {
			file = filepath.Join(home, file)
		}
		return dbConfig{
			driverName: model.DBTypeSQLite,
			dsn:        file + options,
			file:       file,
		}, nil
	default:
		return dbConfig{}, fmt.Errorf("unsupported database type: %s", dataSource.Type)
	}
}

func closeOnError(db *sql.DB, err error) error {
	if closeErr := db.Close(); closeErr != nil {
		return fmt.Errorf("%w (close error: %w)", err, closeErr)
	}
	return err
}

// Close closes the runtime database connection if it was opened.
func (d *DBProvider) Close() error {
	d.runtimeMutex.Lock()
	defer d.runtimeMutex.Unlock()
	if d.runtimeClient == nil {
		return nil
	}
	err := d.runtimeClient.Close()
	d.runtimeClient = nil
	if err != nil {
		return fmt.Errorf("failed to close runtime client: %w", err)
	}
	return nil
}
