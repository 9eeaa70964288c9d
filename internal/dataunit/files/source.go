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

package files

import (
	"fmt"

	"github.com/linkedpipes/executor/internal/dataunit"
	pipelinemodel "github.com/linkedpipes/executor/internal/pipeline/model"
)

const workingDirectoryName = "files"

// Source creates files data units for the ports of a pipeline.
type Source struct {
	pipeline    *pipelinemodel.Pipeline
	directories dataunit.WorkingDirectories
	owners      map[string]*pipelinemodel.Component
}

// NewSource creates a source for the ports of the pipeline. Output data units get their
// directories from directories.
func NewSource(pipeline *pipelinemodel.Pipeline, directories dataunit.WorkingDirectories) *Source {
	owners := make(map[string]*pipelinemodel.Component)
	for _, component := range pipeline.Components() {
		for _, port := range component.Ports {
			owners[port.IRI] = component
		}
	}
	return &Source{pipeline: pipeline, directories: directories, owners: owners}
}

// DataUnit creates the data unit of the port with the given IRI.
func (s *Source) DataUnit(iri string) (dataunit.ManageableDataUnit, error) {
	component, ok := s.owners[iri]
	if !ok {
		return nil, fmt.Errorf("no port with IRI %s", iri)
	}
	port, _ := component.Port(iri)

	du := &DataUnit{
		iri:   iri,
		input: port.IsInput(),
		newDir: func() string {
			return s.directories.WorkingDirectory(workingDirectoryName)
		},
	}
	if du.input {
		for _, ref := range s.pipeline.InputSources(component.IRI, port.Binding) {
			du.sourceIRIs = append(du.sourceIRIs, ref.PortIRI)
		}
	}
	return du, nil
}
