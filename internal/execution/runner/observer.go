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

package runner

import (
	"context"
	"path/filepath"

	"github.com/linkedpipes/executor/internal/execution/model"
	"github.com/linkedpipes/executor/internal/system/metrics"
)

// MetricsFileName is the name of the metrics file written into the execution log directory.
const MetricsFileName = "metrics.prom"

// MetricsObserver writes the execution metrics in the Prometheus text format when the execution
// ends.
type MetricsObserver struct {
	metrics *metrics.Metrics
	dir     func() (string, error)
}

// NewMetricsObserver creates an observer writing into the directory returned by dir.
func NewMetricsObserver(m *metrics.Metrics, dir func() (string, error)) *MetricsObserver {
	return &MetricsObserver{metrics: m, dir: dir}
}

// ExecutionBegin checks that the target directory is available.
func (o *MetricsObserver) ExecutionBegin(context.Context, string) error {
	_, err := o.dir()
	return err
}

// ExecutionEnd writes the metrics file.
func (o *MetricsObserver) ExecutionEnd(_ context.Context, _ model.ExecutionRecord) error {
	dir, err := o.dir()
	if err != nil {
		return err
	}
	return o.metrics.WriteTextfile(filepath.Join(dir, MetricsFileName))
}
