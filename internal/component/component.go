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

// Package component defines the contract of pipeline component plugins and the registry the
// executor creates them from.
package component

import (
	"context"
	"sort"
	"sync"

	"github.com/linkedpipes/executor/internal/dataunit"
	"github.com/linkedpipes/executor/internal/execution/constants"
	"github.com/linkedpipes/executor/internal/system/log"
)

// Component is the executable part of a pipeline component.
type Component interface {
	// Execute runs the component. Implementations should return early when ctx is done or
	// Context.Cancelled reports true.
	Execute(ctx context.Context, c *Context) error
}

// Factory creates a component from its configuration.
type Factory func(configuration map[string]any) (Component, error)

// Context is what a running component sees of the execution.
type Context struct {
	ComponentIRI  string
	Configuration map[string]any
	DataUnits     dataunit.DataUnits
	Logger        *log.Logger

	directories dataunit.WorkingDirectories
	cancelled   func() bool
}

// NewContext creates the context of one component run.
func NewContext(componentIRI string, configuration map[string]any, dataUnits dataunit.DataUnits,
	directories dataunit.WorkingDirectories, cancelled func() bool) *Context {
	return &Context{
		ComponentIRI:  componentIRI,
		Configuration: configuration,
		DataUnits:     dataUnits,
		Logger: log.GetLogger().With(log.String(log.LoggerKeyComponentName, "Component"),
			log.String(log.LoggerKeyComponentIRI, componentIRI)),
		directories: directories,
		cancelled:   cancelled,
	}
}

// WorkingDirectory returns a fresh directory path for the component's own use.
func (c *Context) WorkingDirectory(name string) string {
	return c.directories.WorkingDirectory(name)
}

// Cancelled reports whether the execution was asked to stop.
func (c *Context) Cancelled() bool {
	return c.cancelled != nil && c.cancelled()
}

// Registry maps plugin names to component factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// NewDefaultRegistry creates a registry holding the built-in plugins.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister(NoopPlugin, NewNoop)
	r.MustRegister(CopyPlugin, NewCopy)
	return r
}

// Register adds a factory. Registering the same plugin twice is an error.
func (r *Registry) Register(plugin string, factory Factory) error {
	if plugin == "" || factory == nil {
		return constants.ErrorUnknownPlugin.Withf("plugin name and factory are required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[plugin]; exists {
		return constants.ErrorInvalidPluginConfiguration.Withf("plugin %s is already registered", plugin)
	}
	r.factories[plugin] = factory
	return nil
}

// MustRegister is like Register but panics on failure.
func (r *Registry) MustRegister(plugin string, factory Factory) {
	if err := r.Register(plugin, factory); err != nil {
		panic(err)
	}
}

// Create instantiates the plugin with the given configuration.
func (r *Registry) Create(plugin string, configuration map[string]any) (Component, error) {
	r.mu.RLock()
	factory, ok := r.factories[plugin]
	r.mu.RUnlock()
	if !ok {
		return nil, constants.ErrorUnknownPlugin.Withf("%q", plugin)
	}
	component, err := factory(configuration)
	if err != nil {
		return nil, constants.ErrorInvalidPluginConfiguration.Withf("%s", plugin).Wrap(err)
	}
	return component, nil
}

// Plugins returns the registered plugin names in sorted order.
func (r *Registry) Plugins() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
