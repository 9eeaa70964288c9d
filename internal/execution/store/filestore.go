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
	"github.com/linkedpipes/executor/internal/execution/journal"
	"github.com/linkedpipes/executor/internal/execution/resource"
	"github.com/linkedpipes/executor/internal/system/utils"
)

// FileStore writes the execution record and overview into the execution directory. Each file is
// replaced atomically.
type FileStore struct {
	recordFile   string
	overviewFile string
}

// NewFileStore creates a file store writing to the locations given by the resolver.
func NewFileStore(resolver resource.Resolver) *FileStore {
	return &FileStore{
		recordFile:   resolver.ExecutionRecordFile(),
		overviewFile: resolver.ExecutionOverviewFile(),
	}
}

// Name returns the persister name.
func (s *FileStore) Name() string {
	return "file"
}

// Persist writes the snapshot.
func (s *FileStore) Persist(snapshot journal.Snapshot) error {
	record, err := encodeRecord(&snapshot.Record)
	if err != nil {
		return err
	}
	overview, err := encodeOverview(&snapshot.Overview)
	if err != nil {
		return err
	}
	if err := utils.WriteFileAtomic(s.recordFile, record, 0o644); err != nil {
		return err
	}
	return utils.WriteFileAtomic(s.overviewFile, overview, 0o644)
}

var _ journal.Persister = (*FileStore)(nil)
