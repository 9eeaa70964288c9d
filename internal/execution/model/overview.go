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

const (
	overviewVocabulary = "http://etl.linkedpipes.com/ontology/overview/"
	xsdDateTime        = "http://www.w3.org/2001/XMLSchema#dateTime"
)

// Overview is the lightweight progress summary of an execution.
type Overview struct {
	PipelineIRI     string
	ExecutionIRI    string
	Started         *time.Time
	Finished        *time.Time
	Status          ExecutionStatus
	LastChange      time.Time
	ProgressTotal   int
	ProgressCurrent int
	// DirectorySize is set once the execution has ended.
	DirectorySize *int64
}

// Reference is a JSON-LD node reference.
type Reference struct {
	ID string `json:"@id"`
}

// TypedTerm is a JSON-LD context term with a datatype.
type TypedTerm struct {
	ID   string `json:"@id"`
	Type string `json:"@type"`
}

// OverviewContext is the JSON-LD context of the overview document.
type OverviewContext struct {
	Pipeline          string    `json:"pipeline"`
	Execution         string    `json:"execution"`
	ExecutionStarted  TypedTerm `json:"executionStarted"`
	ExecutionFinished TypedTerm `json:"executionFinished"`
	Status            string    `json:"status"`
	LastChange        TypedTerm `json:"lastChange"`
	PipelineProgress  string    `json:"pipelineProgress"`
	Total             string    `json:"total"`
	Current           string    `json:"current"`
	DirectorySize     string    `json:"directorySize,omitempty"`
}

// Progress is the pipeline progress node of the overview document.
type Progress struct {
	ID      string `json:"@id"`
	Total   int    `json:"total"`
	Current int    `json:"current"`
}

// OverviewDocument is the persisted JSON-LD form of the overview.
type OverviewDocument struct {
	Context           OverviewContext `json:"@context"`
	ID                string          `json:"@id"`
	Pipeline          Reference       `json:"pipeline"`
	Execution         Reference       `json:"execution"`
	ExecutionStarted  string          `json:"executionStarted,omitempty"`
	ExecutionFinished string          `json:"executionFinished,omitempty"`
	Status            Reference       `json:"status"`
	LastChange        string          `json:"lastChange"`
	PipelineProgress  Progress        `json:"pipelineProgress"`
	DirectorySize     *int64          `json:"directorySize,omitempty"`
}

// Document renders the overview as a JSON-LD document.
func (o *Overview) Document() OverviewDocument {
	doc := OverviewDocument{
		Context: OverviewContext{
			Pipeline:          overviewVocabulary + "pipeline",
			Execution:         overviewVocabulary + "execution",
			ExecutionStarted:  TypedTerm{ID: overviewVocabulary + "start", Type: xsdDateTime},
			ExecutionFinished: TypedTerm{ID: overviewVocabulary + "end", Type: xsdDateTime},
			Status:            overviewVocabulary + "status",
			LastChange:        TypedTerm{ID: overviewVocabulary + "lastChange", Type: xsdDateTime},
			PipelineProgress:  overviewVocabulary + "pipelineProgress",
			Total:             overviewVocabulary + "total",
			Current:           overviewVocabulary + "current",
		},
		ID:         o.ExecutionIRI + "/overview",
		Pipeline:   Reference{ID: o.PipelineIRI},
		Execution:  Reference{ID: o.ExecutionIRI},
		Status:     Reference{ID: o.Status.IRI()},
		LastChange: formatTime(o.LastChange),
		PipelineProgress: Progress{
			ID:      o.ExecutionIRI + "/overview/executionProgress",
			Total:   o.ProgressTotal,
			Current: o.ProgressCurrent,
		},
	}
	if o.Started != nil {
		doc.ExecutionStarted = formatTime(*o.Started)
	}
	if o.Finished != nil {
		doc.ExecutionFinished = formatTime(*o.Finished)
	}
	if o.DirectorySize != nil {
		size := *o.DirectorySize
		doc.DirectorySize = &size
		doc.Context.DirectorySize = overviewVocabulary + "directorySize"
	}
	return doc
}

func formatTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}
