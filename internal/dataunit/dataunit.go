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

// Package dataunit manages the lifecycle of the data units exchanged between components.
package dataunit

import "sort"

// DataUnit is the view of a data unit handed to component code.
type DataUnit interface {
	IRI() string
}

// ManageableDataUnit is a data unit whose lifecycle is driven by the Manager.
type ManageableDataUnit interface {
	DataUnit
	// Initialize binds the data unit to the instances created for this execution.
	Initialize(instances DataUnits) error
	// InitializeFrom loads the content stored in dir by a previous execution.
	InitializeFrom(dir string) error
	// Save writes the content into dir.
	Save(dir string) error
	// Close releases the resources held by the data unit.
	Close() error
}

// InstanceSource creates data unit instances by IRI.
type InstanceSource interface {
	DataUnit(iri string) (ManageableDataUnit, error)
}

// WorkingDirectories provides fresh directories for saved data units.
type WorkingDirectories interface {
	WorkingDirectory(name string) string
}

// DataUnits is a read-only set of data units keyed by IRI.
type DataUnits interface {
	Get(iri string) (DataUnit, bool)
	IRIs() []string
}

// registry is the DataUnits implementation handed to components and data units.
type registry struct {
	units map[string]DataUnit
}

func newRegistry(size int) *registry {
	return &registry{units: make(map[string]DataUnit, size)}
}

// Get returns the data unit with the given IRI.
func (r *registry) Get(iri string) (DataUnit, bool) {
	du, ok := r.units[iri]
	return du, ok
}

// IRIs returns the IRIs of all data units in lexical order.
func (r *registry) IRIs() []string {
	iris := make([]string, 0, len(r.units))
	for iri := range r.units {
		iris = append(iris, iri)
	}
	sort.Strings(iris)
	return iris
}
