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

package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type FileUtilTestSuite struct {
	suite.Suite
	dir string
}

func TestFileUtilSuite(t *testing.T) {
	suite.Run(t, new(FileUtilTestSuite))
}

func (suite *FileUtilTestSuite) SetupTest() {
	suite.dir = suite.T().TempDir()
}

func (suite *FileUtilTestSuite) TestWriteFileAtomicCreatesAndOverwrites() {
	path := filepath.Join(suite.dir, "nested", "overview.jsonld")

	assert.NoError(suite.T(), WriteFileAtomic(path, []byte("first"), 0o644))
	assert.NoError(suite.T(), WriteFileAtomic(path, []byte("second"), 0o644))

	content, err := os.ReadFile(path)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "second", string(content))

	entries, err := os.ReadDir(filepath.Dir(path))
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), entries, 1, "temporary files must not be left behind")
}

func (suite *FileUtilTestSuite) TestDirectorySize() {
	assert.NoError(suite.T(), os.MkdirAll(filepath.Join(suite.dir, "a", "b"), 0o755))
	assert.NoError(suite.T(), os.WriteFile(filepath.Join(suite.dir, "a", "one.txt"), []byte("12345"), 0o644))
	assert.NoError(suite.T(), os.WriteFile(filepath.Join(suite.dir, "a", "b", "two.txt"), []byte("123"), 0o644))

	size, err := DirectorySize(suite.dir)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(8), size)
}

func (suite *FileUtilTestSuite) TestDirectorySizeMissingRoot() {
	_, err := DirectorySize(filepath.Join(suite.dir, "missing"))
	assert.Error(suite.T(), err)
}

func (suite *FileUtilTestSuite) TestCopyDirectory() {
	src := filepath.Join(suite.dir, "src")
	dst := filepath.Join(suite.dir, "dst")
	assert.NoError(suite.T(), os.MkdirAll(filepath.Join(src, "sub"), 0o755))
	assert.NoError(suite.T(), os.WriteFile(filepath.Join(src, "sub", "data.ttl"), []byte("<a> <b> <c> ."), 0o644))

	assert.NoError(suite.T(), CopyDirectory(src, dst))

	content, err := os.ReadFile(filepath.Join(dst, "sub", "data.ttl"))
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "<a> <b> <c> .", string(content))
}

func (suite *FileUtilTestSuite) TestCopyFile() {
	src := filepath.Join(suite.dir, "src.txt")
	dst := filepath.Join(suite.dir, "dst.txt")
	assert.NoError(suite.T(), os.WriteFile(src, []byte("content"), 0o600))

	assert.NoError(suite.T(), CopyFile(src, dst))

	data, err := os.ReadFile(dst)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "content", string(data))
	_, err = os.Stat(dst + ".part")
	assert.True(suite.T(), os.IsNotExist(err))

	assert.Error(suite.T(), CopyFile(filepath.Join(suite.dir, "missing.txt"), dst))
}
