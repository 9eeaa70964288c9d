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

// Package plan turns a pipeline into the ordered execution plan of one run.
package plan

import (
	"path/filepath"

	"github.com/linkedpipes/executor/internal/execution/constants"
	"github.com/linkedpipes/executor/internal/execution/model"
	"github.com/linkedpipes/executor/internal/execution/resource"
	"github.com/linkedpipes/executor/internal/execution/store"
	pipelinemodel "github.com/linkedpipes/executor/internal/pipeline/model"
	"github.com/linkedpipes/executor/internal/system/log"
)

// Previous is an earlier execution whose outputs mapped components reuse.
type Previous struct {
	Root   string
	Record *model.ExecutionRecord
}

// LoadPrevious reads the execution stored in root.
func LoadPrevious(root string) (*Previous, error) {
	root = filepath.Clean(root)
	fs := resource.NewFileSystem(root, filepath.Dir(root))
	record, err := store.LoadRecord(fs.ExecutionRecordFile())
	if err != nil {
		return nil, err
	}
	return &Previous{Root: root, Record: record}, nil
}

// Build creates the plan of the pipeline. Components follow the topological order of the pipeline
// and get one data unit per port. Data units of mapped components load from the directories the
// previous execution recorded for them.
func Build(p *pipelinemodel.Pipeline, previous *Previous) (*model.Plan, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "PlanBuilder"),
		log.String(log.LoggerKeyPipelineIRI, p.IRI()))
	if previous != nil && previous.Record != nil && previous.Record.PipelineIRI != "" &&
		previous.Record.PipelineIRI != p.IRI() {
		logger.Warn("Previous execution ran a different pipeline",
			log.String("previousPipeline", previous.Record.PipelineIRI))
	}

	order := p.TopologicalOrder()
	plan := &model.Plan{
		PipelineIRI: p.IRI(),
		Components:  make([]model.ExecutionComponent, 0, len(order)),
	}
	for _, c := range order {
		component := model.ExecutionComponent{
			IRI:           c.IRI,
			Label:         c.Label,
			Plugin:        c.Plugin,
			Mode:          c.Mode,
			Configuration: c.Configuration,
			DataUnits:     make([]model.DataUnitDescriptor, 0, len(c.Ports)),
		}
		for _, port := range c.Ports {
			descriptor := model.DataUnitDescriptor{
				IRI:          port.IRI,
				ComponentIRI: c.IRI,
				Port:         port,
			}
			if c.Mode == pipelinemodel.ModeMap {
				dir, err := previousDirectory(previous, c.IRI, port)
				if err != nil {
					return nil, err
				}
				descriptor.LoadDirectory = dir
			}
			component.DataUnits = append(component.DataUnits, descriptor)
		}
		plan.Components = append(plan.Components, component)
	}
	logger.Debug("Execution plan created", log.Int("components", len(plan.Components)),
		log.Int("executed", plan.CountMode(pipelinemodel.ModeExecute)))
	return plan, nil
}

// previousDirectory returns the directory the previous execution saved the port to. Input ports are
// saved only for debugging, so an input port without one gets no load directory.
func previousDirectory(previous *Previous, componentIRI string, port pipelinemodel.Port) (string, error) {
	if previous == nil || previous.Record == nil {
		return "", constants.ErrorMissingPreviousExecution.Withf("%s: no previous execution given", componentIRI)
	}
	component, ok := previous.Record.Component(componentIRI)
	if !ok {
		return "", constants.ErrorMissingPreviousExecution.Withf("%s: not part of the previous execution",
			componentIRI)
	}
	if component.Status != model.ComponentSucceeded && component.Status != model.ComponentMapped {
		return "", constants.ErrorMissingPreviousExecution.Withf("%s: ended as %s in the previous execution",
			componentIRI, component.Status)
	}
	dir, ok := previous.Record.DataUnitDirectory(port.IRI)
	if !ok {
		if port.IsInput() {
			return "", nil
		}
		return "", constants.ErrorMissingPreviousExecution.Withf("%s: data unit %s was not saved",
			componentIRI, port.IRI)
	}
	if filepath.IsAbs(dir) {
		return dir, nil
	}
	return resource.Resolve(previous.Root, dir), nil
}
