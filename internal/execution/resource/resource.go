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

// Package resource lays out the files and directories of a single execution.
package resource

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/linkedpipes/executor/internal/system/log"
)

const (
	workingDirectoryName    = "working"
	logDirectoryName        = "log"
	definitionDirectoryName = "definition"
	executionRecordName     = "execution.json"
	overviewDirectoryName   = "execution"
	overviewFileName        = "overview.jsonld"
	defaultDefinitionName   = "definition.yaml"
)

// Resolver resolves the locations used by an execution.
type Resolver interface {
	// WorkingDirectory returns a fresh, not yet used directory path for the given purpose.
	WorkingDirectory(name string) string
	// LogDirectory returns the log directory, creating it when missing.
	LogDirectory() (string, error)
	PipelineDefinitionFile() string
	ExecutionRecordFile() string
	ExecutionOverviewFile() string
	Root() string
	// Relativize returns path relative to the execution root. Paths outside the root are rejected.
	Relativize(path string) (string, error)
}

// FileSystem is a Resolver backed by an execution directory.
type FileSystem struct {
	mu             sync.Mutex
	root           string
	executionsRoot string
	counters       map[string]int
	logger         *log.Logger
}

// NewFileSystem creates a resolver for the execution stored in root. executionsRoot is the
// directory holding all executions and is used to locate other executions.
func NewFileSystem(root, executionsRoot string) *FileSystem {
	return &FileSystem{
		root:           filepath.Clean(root),
		executionsRoot: filepath.Clean(executionsRoot),
		counters:       make(map[string]int),
		logger:         log.GetLogger().With(log.String(log.LoggerKeyComponentName, "ResourceResolver")),
	}
}

// Root returns the execution root directory.
func (f *FileSystem) Root() string {
	return f.root
}

// WorkingDirectory returns root/working/<name>-<n>, skipping numbers already present on disk.
func (f *FileSystem) WorkingDirectory(name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()

	for {
		f.counters[name]++
		candidate := filepath.Join(f.root, workingDirectoryName, name+"-"+strconv.Itoa(f.counters[name]))
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}

// LogDirectory returns root/log.
func (f *FileSystem) LogDirectory() (string, error) {
	dir := filepath.Join(f.root, logDirectoryName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}
	return dir, nil
}

// PipelineDefinitionFile returns the pipeline definition inside root/definition. The file named
// definition.yaml wins; otherwise the first YAML file by name is used.
func (f *FileSystem) PipelineDefinitionFile() string {
	dir := filepath.Join(f.root, definitionDirectoryName)
	preferred := filepath.Join(dir, defaultDefinitionName)
	if _, err := os.Stat(preferred); err == nil {
		return preferred
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return preferred
	}
	var candidates []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext == ".yaml" || ext == ".yml" {
			candidates = append(candidates, entry.Name())
		}
	}
	if len(candidates) == 0 {
		return preferred
	}
	sort.Strings(candidates)
	if len(candidates) > 1 {
		f.logger.Warn("Multiple pipeline definitions found", log.String("selected", candidates[0]),
			log.Int("count", len(candidates)))
	}
	return filepath.Join(dir, candidates[0])
}

// ExecutionRecordFile returns root/execution.json.
func (f *FileSystem) ExecutionRecordFile() string {
	return filepath.Join(f.root, executionRecordName)
}

// ExecutionOverviewFile returns root/execution/overview.jsonld.
func (f *FileSystem) ExecutionOverviewFile() string {
	return filepath.Join(f.root, overviewDirectoryName, overviewFileName)
}

// Relativize returns path relative to the execution root, using forward slashes.
func (f *FileSystem) Relativize(path string) (string, error) {
	rel, err := filepath.Rel(f.root, filepath.Clean(path))
	if err != nil {
		return "", err
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %s is outside of the execution root %s", path, f.root)
	}
	return filepath.ToSlash(rel), nil
}

// ResolveExecutionPath resolves a path relative to the root of another execution.
func (f *FileSystem) ResolveExecutionPath(executionID, relative string) string {
	return Resolve(filepath.Join(f.executionsRoot, executionID), relative)
}

// Resolve joins a root relative path, as produced by Relativize, with root.
func Resolve(root, relative string) string {
	return filepath.Join(root, filepath.FromSlash(relative))
}
