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

package log

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ExecutionLogFileName is the name of the debug log file created in an execution log directory.
const ExecutionLogFileName = "execution.log"

// ExecutionLogger writes the debug log of a single pipeline execution into the execution's
// log directory. A nil *ExecutionLogger discards everything.
type ExecutionLogger struct {
	internal *zap.Logger
	file     *os.File
}

// NewExecutionLogger creates an execution logger appending to execution.log inside dir.
func NewExecutionLogger(dir string) (*ExecutionLogger, error) {
	path := filepath.Join(filepath.Clean(dir), ExecutionLogFileName)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open execution log file %s: %w", path, err)
	}

	// Plain text encoder with human readable timestamps.
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(zapcore.Lock(file)),
		zapcore.DebugLevel,
	)

	return &ExecutionLogger{
		internal: zap.New(core),
		file:     file,
	}, nil
}

// Info logs an informational message to the execution log.
func (l *ExecutionLogger) Info(msg string, fields ...Field) {
	if l == nil {
		return
	}
	l.internal.Info(msg, toZapFields(fields)...)
}

// Debug logs a debug message to the execution log.
func (l *ExecutionLogger) Debug(msg string, fields ...Field) {
	if l == nil {
		return
	}
	l.internal.Debug(msg, toZapFields(fields)...)
}

// Error logs an error message to the execution log.
func (l *ExecutionLogger) Error(msg string, fields ...Field) {
	if l == nil {
		return
	}
	l.internal.Error(msg, toZapFields(fields)...)
}

// Close flushes buffered entries and closes the underlying file.
func (l *ExecutionLogger) Close() error {
	if l == nil {
		return nil
	}
	// Sync on a plain file can fail on some platforms for reasons unrelated to data loss.
	_ = l.internal.Sync()
	return l.file.Close()
}

func toZapFields(fields []Field) []zap.Field {
	out := make([]zap.Field, len(fields))
	for i, field := range fields {
		out[i] = zap.Any(field.Key, field.Value)
	}
	return out
}
