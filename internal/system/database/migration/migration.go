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

// Package migration applies the embedded schema migrations of the runtime database.
package migration

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/linkedpipes/executor/internal/system/database/model"
	"github.com/linkedpipes/executor/internal/system/log"
)

//go:embed scripts
var scripts embed.FS

// Up applies all pending migrations for the given database type.
// The database handle stays open; closing it is left to the caller.
func Up(db *sql.DB, dbType string) error {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "Migration"))

	source, err := iofs.New(scripts, "scripts/"+dbType)
	if err != nil {
		return fmt.Errorf("failed to load migration scripts for %s: %w", dbType, err)
	}

	driver, err := newDriver(db, dbType)
	if err != nil {
		return err
	}

	m, err := migrate.NewWithInstance("iofs", source, dbType, driver)
	if err != nil {
		return fmt.Errorf("failed to initialize migrations: %w", err)
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Debug("Runtime database schema is up to date", log.String("dbType", dbType))
			return nil
		}
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, _, err := m.Version()
	if err != nil {
		return fmt.Errorf("failed to read migration version: %w", err)
	}
	logger.Info("Applied runtime database migrations", log.String("dbType", dbType),
		log.Any("version", version))
	return nil
}

func newDriver(db *sql.DB, dbType string) (database.Driver, error) {
	switch dbType {
	case model.DBTypePostgres:
		return postgres.WithInstance(db, &postgres.Config{})
	case model.DBTypeSQLite:
		return sqlite.WithInstance(db, &sqlite.Config{})
	default:
		return nil, fmt.Errorf("unsupported database type for migrations: %s", dbType)
	}
}
