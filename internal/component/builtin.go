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

package component

import (
	"context"
	"fmt"
	"path"

	"github.com/linkedpipes/executor/internal/dataunit/files"
	"github.com/linkedpipes/executor/internal/system/log"
)

const (
	// NoopPlugin does nothing.
	NoopPlugin = "noop"
	// CopyPlugin copies every input file into every output data unit.
	CopyPlugin = "copy"
)

type noop struct{}

// NewNoop creates a component that does nothing.
func NewNoop(map[string]any) (Component, error) {
	return noop{}, nil
}

func (noop) Execute(ctx context.Context, _ *Context) error {
	return ctx.Err()
}

type copyFiles struct {
	prefix string
}

// NewCopy creates a component copying files from its input data units into its output data
// units. The optional "prefix" configuration value is prepended to each copied file name.
func NewCopy(configuration map[string]any) (Component, error) {
	c := &copyFiles{}
	if value, ok := configuration["prefix"]; ok {
		prefix, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("prefix must be a string, got %T", value)
		}
		c.prefix = prefix
	}
	return c, nil
}

func (c *copyFiles) Execute(ctx context.Context, component *Context) error {
	var inputs, outputs []*files.DataUnit
	for _, iri := range component.DataUnits.IRIs() {
		instance, _ := component.DataUnits.Get(iri)
		unit, ok := instance.(*files.DataUnit)
		if !ok {
			return fmt.Errorf("data unit %s does not hold files", iri)
		}
		if unit.IsInput() {
			inputs = append(inputs, unit)
		} else {
			outputs = append(outputs, unit)
		}
	}

	copied := 0
	for _, input := range inputs {
		entries, err := input.Files()
		if err != nil {
			return err
		}
		for _, entry := range entries {
			if err := ctx.Err(); err != nil {
				return err
			}
			if component.Cancelled() {
				return context.Canceled
			}
			name := path.Join(path.Dir(entry.Name), c.prefix+path.Base(entry.Name))
			for _, output := range outputs {
				if err := output.Add(name, entry.Path); err != nil {
					return err
				}
			}
			copied++
		}
	}
	component.Logger.Debug("Files copied", log.Int("count", copied))
	return nil
}
