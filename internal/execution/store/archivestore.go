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
	"context"
	"fmt"
	"path"
	"time"

	"github.com/linkedpipes/executor/internal/execution/journal"
	"github.com/linkedpipes/executor/internal/system/objectstore"
)

// DefaultArchiveTimeout bounds the upload of one archived execution.
const DefaultArchiveTimeout = 30 * time.Second

// ArchiveStore uploads the final record and overview of an execution to an object store.
// Intermediate snapshots are ignored.
type ArchiveStore struct {
	store   objectstore.ObjectStoreInterface
	prefix  string
	timeout time.Duration
}

// NewArchiveStore creates an archive store placing objects under prefix.
func NewArchiveStore(store objectstore.ObjectStoreInterface, prefix string, timeout time.Duration) *ArchiveStore {
	if timeout <= 0 {
		timeout = DefaultArchiveTimeout
	}
	return &ArchiveStore{
		store:   store,
		prefix:  prefix,
		timeout: timeout,
	}
}

// Name returns the persister name.
func (s *ArchiveStore) Name() string {
	return "archive"
}

// Persist uploads the final snapshot.
func (s *ArchiveStore) Persist(snapshot journal.Snapshot) error {
	if !snapshot.Final {
		return nil
	}
	record, err := encodeRecord(&snapshot.Record)
	if err != nil {
		return err
	}
	overview, err := encodeOverview(&snapshot.Overview)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	base := path.Join(s.prefix, snapshot.Record.ID)
	if err := s.store.PutObject(ctx, path.Join(base, "execution.json"), record, recordContentType); err != nil {
		return fmt.Errorf("failed to archive execution record: %w", err)
	}
	if err := s.store.PutObject(ctx, path.Join(base, "execution", "overview.jsonld"), overview,
		overviewContentType); err != nil {
		return fmt.Errorf("failed to archive execution overview: %w", err)
	}
	return nil
}

var _ journal.Persister = (*ArchiveStore)(nil)
