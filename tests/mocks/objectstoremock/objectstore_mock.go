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

// Package objectstoremock provides a mock implementation of the object store for testing.
package objectstoremock

import (
	"context"
	"sync"
)

// MockObjectStore is a mock implementation of the ObjectStoreInterface.
type MockObjectStore struct {
	mu sync.Mutex

	// MockPutObject defines the behavior for the PutObject method.
	MockPutObject func(ctx context.Context, key string, data []byte, contentType string) error

	// PutObjectCalls tracks the arguments passed to PutObject.
	PutObjectCalls []PutObjectCall
}

// PutObjectCall records one PutObject call.
type PutObjectCall struct {
	Key         string
	Data        []byte
	ContentType string
}

// PutObject mocks the PutObject method of the ObjectStoreInterface.
func (m *MockObjectStore) PutObject(ctx context.Context, key string, data []byte, contentType string) error {
	m.mu.Lock()
	m.PutObjectCalls = append(m.PutObjectCalls, PutObjectCall{key, append([]byte(nil), data...), contentType})
	m.mu.Unlock()

	if m.MockPutObject != nil {
		return m.MockPutObject(ctx, key, data, contentType)
	}
	return nil
}
