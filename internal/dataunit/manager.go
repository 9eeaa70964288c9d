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

package dataunit

import (
	"sync"

	"github.com/linkedpipes/executor/internal/dataunit/constants"
	"github.com/linkedpipes/executor/internal/execution/model"
	"github.com/linkedpipes/executor/internal/pipeline/resolver"
	"github.com/linkedpipes/executor/internal/system/log"
	"github.com/linkedpipes/executor/internal/system/metrics"
)

const dataUnitDirectoryName = "dataunit"

// DataUnitReport describes the state of one data unit of a component.
type DataUnitReport struct {
	IRI       string
	State     State
	Directory string
}

// Option configures a Manager.
type Option func(*Manager)

// WithMetrics records lifecycle transitions in the given metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(manager *Manager) {
		manager.metrics = m
	}
}

// Manager owns the data unit containers of one execution. Calls for the same component must be
// sequential; calls for different components may run concurrently.
type Manager struct {
	mu          sync.Mutex
	resolver    resolver.ResolverInterface
	directories WorkingDirectories
	containers  map[string]*Container
	order       []string
	instances   *registry
	metrics     *metrics.Metrics
	logger      *log.Logger
}

// NewManager creates a manager that consults the resolver when remapping and saves data units
// into directories obtained from directories.
func NewManager(r resolver.ResolverInterface, directories WorkingDirectories, opts ...Option) *Manager {
	m := &Manager{
		resolver:    r,
		directories: directories,
		containers:  make(map[string]*Container),
		instances:   newRegistry(0),
		logger:      log.GetLogger().With(log.String(log.LoggerKeyComponentName, "DataUnitManager")),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// InitializeAll creates one container per descriptor with an instance obtained from source. The
// first failure stops the initialization; containers created before it stay registered and are
// released by CloseAll.
func (m *Manager) InitializeAll(source InstanceSource, descriptors []model.DataUnitDescriptor) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, descriptor := range descriptors {
		if _, exists := m.containers[descriptor.IRI]; exists {
			return constants.ErrorInstantiationFailed.Withf("data unit %s declared twice", descriptor.IRI)
		}
		instance, err := source.DataUnit(descriptor.IRI)
		if err != nil {
			return constants.ErrorInstantiationFailed.Withf("%s", descriptor.IRI).Wrap(err)
		}
		if instance == nil {
			return constants.ErrorInstantiationFailed.Withf("source returned no instance for %s", descriptor.IRI)
		}
		m.containers[descriptor.IRI] = newContainer(descriptor, instance)
		m.order = append(m.order, descriptor.IRI)
		m.instances.units[descriptor.IRI] = instance
	}
	m.logger.Debug("Data units initialized", log.Int("count", len(m.containers)))
	return nil
}

// PrepareForComponent initializes the data units of the component, loading them from their load
// directory when one is set, and returns them keyed by IRI.
func (m *Manager) PrepareForComponent(component model.ExecutionComponent) (DataUnits, error) {
	containers, err := m.lookup(component)
	if err != nil {
		return nil, err
	}

	prepared := newRegistry(len(containers))
	for i, container := range containers {
		descriptor := component.DataUnits[i]
		if descriptor.LoadDirectory == "" {
			err = container.initializeLive(m.instances)
		} else {
			err = container.initializeFromDisk(descriptor.LoadDirectory)
		}
		if err != nil {
			return nil, err
		}
		m.observe(container)
		prepared.units[descriptor.IRI] = container.instance
	}
	return prepared, nil
}

// FinalizeForComponent saves the data units whose port asks for debug data to be kept.
func (m *Manager) FinalizeForComponent(component model.ExecutionComponent) error {
	containers, err := m.lookup(component)
	if err != nil {
		return err
	}

	for i, container := range containers {
		if !component.DataUnits[i].Port.SaveDebugData {
			continue
		}
		if err := container.save(m.directories.WorkingDirectory(dataUnitDirectoryName)); err != nil {
			return err
		}
		m.observe(container)
	}
	return nil
}

// RemapForComponent carries the data units of a mapped component over from the previous
// execution. Data units needed in this execution are loaded and saved, the others only keep a
// reference to the previous directory. Input ports may have no previous directory and are then
// mapped with an empty one. Load directories, resolver answers and container states are checked
// for every data unit before any of them changes state; a load or save failure may still leave the
// data units handled before it mapped or saved.
func (m *Manager) RemapForComponent(component model.ExecutionComponent) error {
	containers, err := m.lookup(component)
	if err != nil {
		return err
	}

	used := make([]bool, len(containers))
	for i, container := range containers {
		descriptor := component.DataUnits[i]
		if used[i], err = m.resolver.IsPortUsed(component.IRI, descriptor.Port.IRI); err != nil {
			return err
		}
		if descriptor.LoadDirectory == "" && (used[i] || !descriptor.Port.IsInput()) {
			return constants.ErrorMissingLoadDirectory.Withf("%s", descriptor.IRI)
		}
		if state := container.State(); state != Uninitialized {
			return constants.ErrorInvalidDataUnitState.Withf("cannot map %s in state %s", descriptor.IRI, state)
		}
	}

	for i, container := range containers {
		descriptor := component.DataUnits[i]
		if used[i] {
			if err := container.initializeFromDisk(descriptor.LoadDirectory); err != nil {
				return constants.ErrorRemapFailed.Withf("%s", descriptor.IRI).Wrap(err)
			}
			m.observe(container)
			if err := container.save(m.directories.WorkingDirectory(dataUnitDirectoryName)); err != nil {
				return constants.ErrorRemapFailed.Withf("%s", descriptor.IRI).Wrap(err)
			}
		} else if err := container.mapByReference(descriptor.LoadDirectory); err != nil {
			return constants.ErrorRemapFailed.Withf("%s", descriptor.IRI).Wrap(err)
		}
		m.observe(container)
	}
	return nil
}

// Snapshot reports the state of the data units of the component.
func (m *Manager) Snapshot(component model.ExecutionComponent) []DataUnitReport {
	m.mu.Lock()
	defer m.mu.Unlock()

	reports := make([]DataUnitReport, 0, len(component.DataUnits))
	for _, descriptor := range component.DataUnits {
		container, ok := m.containers[descriptor.IRI]
		if !ok {
			continue
		}
		reports = append(reports, DataUnitReport{
			IRI:       descriptor.IRI,
			State:     container.State(),
			Directory: container.Directory(),
		})
	}
	return reports
}

// CloseAll closes every container and returns the failures. Containers are closed even when
// closing another one fails; calling CloseAll again closes nothing.
func (m *Manager) CloseAll() []error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var errs []error
	for _, iri := range m.order {
		container := m.containers[iri]
		closed, err := container.close()
		if err != nil {
			m.logger.Error("Failed to close data unit", log.String(log.LoggerKeyDataUnitIRI, iri), log.Error(err))
			errs = append(errs, err)
		}
		if closed {
			m.observe(container)
		}
	}
	return errs
}

// lookup returns the containers of the component data units in declaration order.
func (m *Manager) lookup(component model.ExecutionComponent) ([]*Container, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	containers := make([]*Container, 0, len(component.DataUnits))
	for _, descriptor := range component.DataUnits {
		container, ok := m.containers[descriptor.IRI]
		if !ok {
			return nil, constants.ErrorMissingDataUnit.Withf("%s for %s", descriptor.IRI, component.IRI)
		}
		containers = append(containers, container)
	}
	return containers, nil
}

func (m *Manager) observe(container *Container) {
	m.metrics.ObserveDataUnit(container.State().String())
}
