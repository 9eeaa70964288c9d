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
	"time"
)

// DataUnitRecord describes where a data unit of a component ended up.
type DataUnitRecord struct {
	IRI   string `json:"iri"`
	State string `json:"state"`
	// Directory is relative to the execution root.
	Directory string `json:"directory,omitempty"`
}

// ComponentRecord is the journal entry of one component.
type ComponentRecord struct {
	IRI       string           `json:"iri"`
	Label     string           `json:"label,omitempty"`
	Mode      string           `json:"mode"`
	Status    ComponentStatus  `json:"status"`
	Started   *time.Time       `json:"started,omitempty"`
	Finished  *time.Time       `json:"finished,omitempty"`
	Error     string           `json:"error,omitempty"`
	DataUnits []DataUnitRecord `json:"dataUnits,omitempty"`
}

// EventRecord is one entry of the execution event log.
type EventRecord struct {
	Sequence  int       `json:"sequence"`
	Type      string    `json:"type"`
	Component string    `json:"component,omitempty"`
	Time      time.Time `json:"time"`
	Message   string    `json:"message,omitempty"`
}

// ExecutionRecord is the full journal of one execution.
type ExecutionRecord struct {
	ID              string            `json:"id"`
	IRI             string            `json:"iri"`
	PipelineIRI     string            `json:"pipeline,omitempty"`
	Status          ExecutionStatus   `json:"status"`
	Started         *time.Time        `json:"started,omitempty"`
	Finished        *time.Time        `json:"finished,omitempty"`
	LastChange      time.Time         `json:"lastChange"`
	CancelRequested bool              `json:"cancelRequested,omitempty"`
	Error           string            `json:"error,omitempty"`
	Components      []ComponentRecord `json:"components"`
	Events          []EventRecord     `json:"events"`
}

// Component returns the record of the component with the given IRI.
func (r *ExecutionRecord) Component(iri string) (*ComponentRecord, bool) {
	for i := range r.Components {
		if r.Components[i].IRI == iri {
			return &r.Components[i], true
		}
	}
	return nil, false
}

// DataUnitDirectory returns the directory recorded for the data unit with the given IRI.
func (r *ExecutionRecord) DataUnitDirectory(iri string) (string, bool) {
	for _, component := range r.Components {
		for _, du := range component.DataUnits {
			if du.IRI == iri && du.Directory != "" {
				return du.Directory, true
			}
		}
	}
	return "", false
}

// Clone returns a deep copy of the record.
func (r *ExecutionRecord) Clone() ExecutionRecord {
	clone := *r
	clone.Started = cloneTime(r.Started)
	clone.Finished = cloneTime(r.Finished)
	clone.Components = make([]ComponentRecord, len(r.Components))
	for i, c := range r.Components {
		c.Started = cloneTime(c.Started)
		c.Finished = cloneTime(c.Finished)
		c.DataUnits = append([]DataUnitRecord(nil), c.DataUnits...)
		clone.Components[i] = c
	}
	clone.Events = append([]EventRecord(nil), r.Events...)
	return clone
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
