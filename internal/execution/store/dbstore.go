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

package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/linkedpipes/executor/internal/execution/journal"
	"github.com/linkedpipes/executor/internal/system/database/client"
	"github.com/linkedpipes/executor/internal/system/log"
)

// ErrOverviewNotFound is returned when no overview row exists for an execution.
var ErrOverviewNotFound = errors.New("execution overview not found")

// OverviewRow is the stored summary of an execution.
type OverviewRow struct {
	ExecutionID     string
	Status          string
	LastChange      string
	ProgressTotal   int64
	ProgressCurrent int64
	Document        string
}

// DBStore mirrors the journal into the runtime database. The overview row is upserted and events
// not stored yet are appended, both in one transaction. Events left by an earlier run with the same
// execution id are removed on the first persist.
type DBStore struct {
	mu        sync.Mutex
	client    client.DBClientInterface
	persisted int
	cleared   bool
	logger    *log.Logger
}

// NewDBStore creates a database store using the given client.
func NewDBStore(dbClient client.DBClientInterface) *DBStore {
	return &DBStore{
		client: dbClient,
		logger: log.GetLogger().With(log.String(log.LoggerKeyComponentName, "ExecutionDBStore")),
	}
}

// Name returns the persister name.
func (s *DBStore) Name() string {
	return "database"
}

// Persist stores the snapshot.
func (s *DBStore) Persist(snapshot journal.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := snapshot.Record
	overview := snapshot.Overview
	document, err := json.Marshal(overview.Document())
	if err != nil {
		return err
	}

	if !s.cleared {
		removed, err := s.client.Execute(QueryDeleteExecutionEvents, record.ID)
		if err != nil {
			return fmt.Errorf("failed to remove previous execution events: %w", err)
		}
		if removed > 0 {
			s.logger.Info("Removed events of an earlier run", log.String(log.LoggerKeyExecutionID, record.ID),
				log.Int("count", int(removed)))
		}
		s.cleared = true
	}

	tx, err := s.client.BeginTx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	var directorySize any
	if overview.DirectorySize != nil {
		directorySize = *overview.DirectorySize
	}
	_, err = tx.Exec(QueryUpsertExecutionOverview, record.ID, record.IRI, nullable(record.PipelineIRI),
		record.Status.String(), formatOptionalTime(record.Started), formatOptionalTime(record.Finished),
		formatTime(record.LastChange), overview.ProgressTotal, overview.ProgressCurrent, directorySize,
		string(document))
	if err != nil {
		return s.rollback(tx, fmt.Errorf("failed to store execution overview: %w", err))
	}

	start := s.persisted
	if start > len(record.Events) {
		start = len(record.Events)
	}
	for _, event := range record.Events[start:] {
		payload, err := json.Marshal(event)
		if err != nil {
			return s.rollback(tx, err)
		}
		_, err = tx.Exec(QueryInsertExecutionEvent, record.ID, event.Sequence, event.Type,
			nullable(event.Component), formatTime(event.Time), string(payload))
		if err != nil {
			return s.rollback(tx, fmt.Errorf("failed to store execution event %d: %w", event.Sequence, err))
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	s.persisted = len(record.Events)
	return nil
}

// GetOverview reads the stored overview row of an execution.
func (s *DBStore) GetOverview(executionID string) (*OverviewRow, error) {
	results, err := s.client.Query(QueryGetExecutionOverview, executionID)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	if len(results) == 0 {
		return nil, ErrOverviewNotFound
	}
	if len(results) != 1 {
		return nil, fmt.Errorf("unexpected number of results: %d", len(results))
	}
	return buildOverviewRow(results[0])
}

func (s *DBStore) rollback(tx interface{ Rollback() error }, err error) error {
	if rollbackErr := tx.Rollback(); rollbackErr != nil {
		s.logger.Error("Failed to rollback transaction", log.Error(rollbackErr))
		return errors.Join(err, rollbackErr)
	}
	return err
}

func buildOverviewRow(row map[string]any) (*OverviewRow, error) {
	executionID, ok := row["execution_id"].(string)
	if !ok {
		return nil, fmt.Errorf("failed to parse execution_id as string")
	}
	result := &OverviewRow{
		ExecutionID:     executionID,
		Status:          asString(row["status"]),
		LastChange:      asString(row["last_change"]),
		ProgressTotal:   asInt64(row["progress_total"]),
		ProgressCurrent: asInt64(row["progress_current"]),
		Document:        asString(row["document"]),
	}
	return result, nil
}

func asString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return ""
	}
}

func asInt64(value any) int64 {
	switch v := value.(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case float64:
		return int64(v)
	default:
		return 0
	}
}

func nullable(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func formatOptionalTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

var _ journal.Persister = (*DBStore)(nil)
