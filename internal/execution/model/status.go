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

package model

import (
	"encoding/json"
	"fmt"
)

// StatusIRIPrefix is the namespace of the execution status resources.
const StatusIRIPrefix = "http://etl.linkedpipes.com/resources/status/"

// ExecutionStatus is the overall status of an execution. Statuses are ordered; an execution only
// ever moves to a higher status, so a failure outranks a cancellation and both outrank success.
type ExecutionStatus int

const (
	// StatusNotStarted is the status before the execution begins.
	StatusNotStarted ExecutionStatus = iota
	// StatusRunning is the status of an execution in progress.
	StatusRunning
	// StatusFinished is the status of an execution that completed successfully.
	StatusFinished
	// StatusCancelled is the status of an execution stopped on request.
	StatusCancelled
	// StatusFailed is the status of an execution that failed.
	StatusFailed
)

var executionStatusNames = []string{"queued", "running", "finished", "cancelled", "failed"}

// String returns the status name.
func (s ExecutionStatus) String() string {
	if s < 0 || int(s) >= len(executionStatusNames) {
		return "unknown"
	}
	return executionStatusNames[s]
}

// IRI returns the status resource IRI.
func (s ExecutionStatus) IRI() string {
	return StatusIRIPrefix + s.String()
}

// IsTerminal reports whether the execution has ended.
func (s ExecutionStatus) IsTerminal() bool {
	return s >= StatusFinished
}

// Max returns the higher of the two statuses.
func (s ExecutionStatus) Max(other ExecutionStatus) ExecutionStatus {
	if other > s {
		return other
	}
	return s
}

// MarshalJSON writes the status name.
func (s ExecutionStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON reads a status name.
func (s *ExecutionStatus) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for i, candidate := range executionStatusNames {
		if candidate == name {
			*s = ExecutionStatus(i)
			return nil
		}
	}
	return fmt.Errorf("unknown execution status %q", name)
}

// ComponentStatus is the status of one component within an execution.
type ComponentStatus string

const (
	// ComponentPending marks a component that has not started.
	ComponentPending ComponentStatus = "pending"
	// ComponentRunning marks a component being executed or mapped.
	ComponentRunning ComponentStatus = "running"
	// ComponentSucceeded marks a component executed successfully.
	ComponentSucceeded ComponentStatus = "succeeded"
	// ComponentFailed marks a component whose execution or mapping failed.
	ComponentFailed ComponentStatus = "failed"
	// ComponentMapped marks a component whose output was carried over from a previous execution.
	ComponentMapped ComponentStatus = "mapped"
	// ComponentSkipped marks a component excluded from the execution.
	ComponentSkipped ComponentStatus = "skipped"
)

// IsFinal reports whether the component will not change status again.
func (s ComponentStatus) IsFinal() bool {
	switch s {
	case ComponentSucceeded, ComponentFailed, ComponentMapped, ComponentSkipped:
		return true
	}
	return false
}
