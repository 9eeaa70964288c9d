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

// Package loader reads pipeline definitions from YAML documents.
package loader

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	yaml "gopkg.in/yaml.v3"

	"github.com/linkedpipes/executor/internal/pipeline/constants"
	"github.com/linkedpipes/executor/internal/pipeline/model"
)

// Definition is the serialized form of a pipeline.
type Definition struct {
	IRI         string                 `yaml:"iri"`
	Components  []ComponentDefinition  `yaml:"components"`
	Connections []ConnectionDefinition `yaml:"connections"`
}

// ComponentDefinition is the serialized form of a component.
type ComponentDefinition struct {
	IRI           string           `yaml:"iri"`
	Label         string           `yaml:"label"`
	Plugin        string           `yaml:"plugin"`
	Mode          string           `yaml:"mode"`
	Configuration map[string]any   `yaml:"configuration"`
	Ports         []PortDefinition `yaml:"ports"`
}

// PortDefinition is the serialized form of a port.
type PortDefinition struct {
	IRI           string `yaml:"iri"`
	Binding       string `yaml:"binding"`
	Direction     string `yaml:"direction"`
	SaveDebugData bool   `yaml:"save_debug_data"`
}

// EndpointDefinition is one end of a serialized connection.
type EndpointDefinition struct {
	Component string `yaml:"component"`
	Binding   string `yaml:"binding"`
}

// ConnectionDefinition is the serialized form of a connection.
type ConnectionDefinition struct {
	Source  EndpointDefinition `yaml:"source"`
	Target  EndpointDefinition `yaml:"target"`
	Control bool               `yaml:"control"`
}

// LoadFile reads and builds the pipeline stored at path.
func LoadFile(path string, modeOverrides ...map[string]model.ExecutionMode) (*model.Pipeline, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, constants.ErrorInvalidDefinition.Wrap(err)
	}
	return Parse(data, modeOverrides...)
}

// Parse decodes a YAML pipeline definition and builds the pipeline graph. Mode overrides, keyed
// by component IRI, replace the modes stored in the definition.
func Parse(data []byte, modeOverrides ...map[string]model.ExecutionMode) (*model.Pipeline, error) {
	var definition Definition
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&definition); err != nil {
		return nil, constants.ErrorInvalidDefinition.Wrap(err)
	}
	return Build(definition, modeOverrides...)
}

// Build converts a decoded definition into a pipeline graph.
func Build(definition Definition, modeOverrides ...map[string]model.ExecutionMode) (*model.Pipeline, error) {
	components := make([]model.Component, 0, len(definition.Components))
	for _, cd := range definition.Components {
		mode, ok := ParseMode(cd.Mode)
		if !ok {
			return nil, constants.ErrorInvalidExecutionMode.Withf("%q on component %s", cd.Mode, cd.IRI)
		}
		for _, overrides := range modeOverrides {
			if override, ok := overrides[cd.IRI]; ok {
				mode = override
			}
		}
		if !mode.IsValid() {
			return nil, constants.ErrorInvalidExecutionMode.Withf("%q on component %s", mode, cd.IRI)
		}

		ports := make([]model.Port, 0, len(cd.Ports))
		for _, pd := range cd.Ports {
			ports = append(ports, model.Port{
				IRI:           pd.IRI,
				Binding:       pd.Binding,
				Direction:     model.Direction(strings.ToLower(pd.Direction)),
				SaveDebugData: pd.SaveDebugData,
			})
		}
		components = append(components, model.Component{
			IRI:           cd.IRI,
			Label:         cd.Label,
			Plugin:        cd.Plugin,
			Mode:          mode,
			Configuration: cd.Configuration,
			Ports:         ports,
		})
	}

	connections := make([]model.Connection, 0, len(definition.Connections))
	for _, conn := range definition.Connections {
		connections = append(connections, model.Connection{
			SourceComponent: conn.Source.Component,
			SourceBinding:   conn.Source.Binding,
			TargetComponent: conn.Target.Component,
			TargetBinding:   conn.Target.Binding,
			Control:         conn.Control,
		})
	}

	return model.NewPipeline(definition.IRI, components, connections)
}

// ParseMode parses a mode name case-insensitively. An empty value means EXECUTE.
func ParseMode(value string) (model.ExecutionMode, bool) {
	if value == "" {
		return model.ModeExecute, true
	}
	mode := model.ExecutionMode(strings.ToUpper(strings.TrimSpace(value)))
	return mode, mode.IsValid()
}
