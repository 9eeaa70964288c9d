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

// Package store provides the persisters of the execution journal.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/linkedpipes/executor/internal/execution/model"
)

const (
	recordContentType   = "application/json"
	overviewContentType = "application/ld+json"
)

// LoadRecord reads an execution record written by FileStore.
func LoadRecord(path string) (*model.ExecutionRecord, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	var record model.ExecutionRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to parse execution record %s: %w", path, err)
	}
	return &record, nil
}

func encodeRecord(record *model.ExecutionRecord) ([]byte, error) {
	return json.MarshalIndent(record, "", "  ")
}

func encodeOverview(overview *model.Overview) ([]byte, error) {
	return json.MarshalIndent(overview.Document(), "", "  ")
}
