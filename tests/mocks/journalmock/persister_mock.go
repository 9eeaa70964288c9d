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

// Package journalmock provides a mock implementation of the journal persister for testing.
package journalmock

import (
	"sync"

	"github.com/linkedpipes/executor/internal/execution/journal"
)

// MockPersister is a mock implementation of the journal Persister.
type MockPersister struct {
	mu sync.Mutex

	// MockPersist defines the behavior for the Persist method.
	MockPersist func(snapshot journal.Snapshot) error

	// PersistCalls tracks the snapshots passed to Persist.
	PersistCalls []journal.Snapshot
}

// Name returns the persister name.
func (m *MockPersister) Name() string {
	return "mock"
}

// Persist mocks the Persist method of the Persister.
func (m *MockPersister) Persist(snapshot journal.Snapshot) error {
	m.mu.Lock()
	m.PersistCalls = append(m.PersistCalls, snapshot)
	m.mu.Unlock()

	if m.MockPersist != nil {
		return m.MockPersist(snapshot)
	}
	return nil
}

// Snapshots returns a copy of the persisted snapshots.
func (m *MockPersister) Snapshots() []journal.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]journal.Snapshot(nil), m.PersistCalls...)
}

// EventTypes returns the event types of the last persisted snapshot.
func (m *MockPersister) EventTypes() []string {
	snapshots := m.Snapshots()
	if len(snapshots) == 0 {
		return nil
	}
	events := snapshots[len(snapshots)-1].Record.Events
	types := make([]string, len(events))
	for i, event := range events {
		types[i] = event.Type
	}
	return types
}
