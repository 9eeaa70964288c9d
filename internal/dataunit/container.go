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
)

// State is the lifecycle state of a data unit container.
type State int

const (
	// Uninitialized is the state of a container whose instance is not ready yet.
	Uninitialized State = iota
	// InitializedLive is the state of an instance bound to the instances of this execution.
	InitializedLive
	// InitializedFromDisk is the state of an instance loaded from a previous execution.
	InitializedFromDisk
	// Saved is the state of an instance whose content was written for this execution.
	Saved
	// MappedByReference is the state of a container pointing to a previous execution directory.
	MappedByReference
	// Closed is the state of a container whose instance was released.
	Closed
)

var stateNames = map[State]string{
	Uninitialized:       "uninitialized",
	InitializedLive:     "initialized_live",
	InitializedFromDisk: "initialized_from_disk",
	Saved:               "saved",
	MappedByReference:   "mapped_by_reference",
	Closed:              "closed",
}

// String returns the name of the state.
func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

func (s State) isInitialized() bool {
	return s == InitializedLive || s == InitializedFromDisk
}

// Container wraps one data unit instance and enforces its lifecycle.
type Container struct {
	mu         sync.Mutex
	descriptor model.DataUnitDescriptor
	instance   ManageableDataUnit
	state      State
	directory  string
}

func newContainer(descriptor model.DataUnitDescriptor, instance ManageableDataUnit) *Container {
	return &Container{descriptor: descriptor, instance: instance, state: Uninitialized}
}

// State returns the current state.
func (c *Container) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Directory returns the directory the content was saved to or mapped from.
func (c *Container) Directory() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.directory
}

func (c *Container) initializeLive(instances DataUnits) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.expect("initialize", Uninitialized); err != nil {
		return err
	}
	if err := c.instance.Initialize(instances); err != nil {
		return constants.ErrorDataUnitOperationFailed.Withf("initialize %s", c.descriptor.IRI).Wrap(err)
	}
	c.state = InitializedLive
	return nil
}

func (c *Container) initializeFromDisk(dir string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.expect("load", Uninitialized); err != nil {
		return err
	}
	if err := c.instance.InitializeFrom(dir); err != nil {
		return constants.ErrorDataUnitOperationFailed.Withf("load %s from %s", c.descriptor.IRI, dir).Wrap(err)
	}
	c.state = InitializedFromDisk
	return nil
}

func (c *Container) save(dir string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.state.isInitialized() {
		return c.invalid("save")
	}
	if err := c.instance.Save(dir); err != nil {
		return constants.ErrorDataUnitOperationFailed.Withf("save %s", c.descriptor.IRI).Wrap(err)
	}
	c.state = Saved
	c.directory = dir
	return nil
}

func (c *Container) mapByReference(dir string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.expect("map", Uninitialized); err != nil {
		return err
	}
	c.state = MappedByReference
	c.directory = dir
	return nil
}

// close releases the instance. Closing a closed container does nothing.
func (c *Container) close() (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Closed {
		return false, nil
	}
	c.state = Closed
	if err := c.instance.Close(); err != nil {
		return true, constants.ErrorDataUnitOperationFailed.Withf("close %s", c.descriptor.IRI).Wrap(err)
	}
	return true, nil
}

func (c *Container) expect(operation string, state State) error {
	if c.state != state {
		return c.invalid(operation)
	}
	return nil
}

func (c *Container) invalid(operation string) error {
	return constants.ErrorInvalidDataUnitState.Withf("cannot %s %s in state %s",
		operation, c.descriptor.IRI, c.state)
}
