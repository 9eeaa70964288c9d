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

// Package files provides a data unit holding a set of files in a directory.
package files

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/linkedpipes/executor/internal/dataunit"
	"github.com/linkedpipes/executor/internal/system/utils"
)

// File is one file of a data unit.
type File struct {
	// Name is the path relative to the data unit directory.
	Name string
	// Path is the absolute path of the file.
	Path string
}

// DataUnit stores files in a directory. An output data unit owns a writable directory; an input
// data unit reads the files of the output data units connected to it.
type DataUnit struct {
	iri        string
	input      bool
	sourceIRIs []string
	newDir     func() string

	directory string
	sources   []*DataUnit
	closed    bool
}

// IRI returns the data unit IRI.
func (d *DataUnit) IRI() string {
	return d.iri
}

// IsInput reports whether the data unit reads the output of upstream components.
func (d *DataUnit) IsInput() bool {
	return d.input
}

// Directory returns the directory holding the data unit content. It is empty for input data units
// bound to their sources.
func (d *DataUnit) Directory() string {
	return d.directory
}

// Initialize binds an input data unit to its sources, or creates an empty directory for an
// output data unit.
func (d *DataUnit) Initialize(instances dataunit.DataUnits) error {
	if !d.input {
		d.directory = d.newDir()
		return os.MkdirAll(d.directory, 0o755)
	}
	for _, iri := range d.sourceIRIs {
		instance, ok := instances.Get(iri)
		if !ok {
			return fmt.Errorf("source data unit %s is not available", iri)
		}
		source, ok := instance.(*DataUnit)
		if !ok {
			return fmt.Errorf("source data unit %s does not hold files", iri)
		}
		d.sources = append(d.sources, source)
	}
	return nil
}

// InitializeFrom uses the content stored in dir.
func (d *DataUnit) InitializeFrom(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	d.directory = dir
	return nil
}

// Save copies the content into dir, which then becomes the data unit directory.
func (d *DataUnit) Save(dir string) error {
	if d.closed {
		return errors.New("data unit is closed")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if d.directory != "" {
		if err := utils.CopyDirectory(d.directory, dir); err != nil {
			return err
		}
		d.directory = dir
		return nil
	}
	files, err := d.Files()
	if err != nil {
		return err
	}
	for _, file := range files {
		target := filepath.Join(dir, file.Name)
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		if err := utils.CopyFile(file.Path, target); err != nil {
			return err
		}
	}
	d.directory = dir
	d.sources = nil
	return nil
}

// Close marks the data unit as released.
func (d *DataUnit) Close() error {
	d.closed = true
	return nil
}

// Files lists the files of the data unit ordered by name.
func (d *DataUnit) Files() ([]File, error) {
	if d.closed {
		return nil, errors.New("data unit is closed")
	}
	if d.directory != "" {
		return listFiles(d.directory)
	}
	var files []File
	for _, source := range d.sources {
		sourceFiles, err := source.Files()
		if err != nil {
			return nil, err
		}
		files = append(files, sourceFiles...)
	}
	return files, nil
}

// Write stores data as a file with the given relative name.
func (d *DataUnit) Write(name string, data []byte) error {
	if d.input || d.directory == "" {
		return fmt.Errorf("data unit %s is not writable", d.iri)
	}
	target := filepath.Join(d.directory, filepath.Clean(name))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	return os.WriteFile(target, data, 0o644)
}

// Add copies the file at path into the data unit under the given relative name.
func (d *DataUnit) Add(name, path string) error {
	if d.input || d.directory == "" {
		return fmt.Errorf("data unit %s is not writable", d.iri)
	}
	target := filepath.Join(d.directory, filepath.Clean(name))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	return utils.CopyFile(path, target)
}

func listFiles(root string) ([]File, error) {
	var files []File
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.Type().IsRegular() {
			return nil
		}
		name, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, File{Name: filepath.ToSlash(name), Path: path})
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

var _ dataunit.ManageableDataUnit = (*DataUnit)(nil)
