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

// Package metrics exposes the Prometheus collectors of the executor.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the executor collectors registered on a private registry.
type Metrics struct {
	registry            *prometheus.Registry
	eventsTotal         *prometheus.CounterVec
	persistenceFailures *prometheus.CounterVec
	flushDuration       *prometheus.HistogramVec
	componentDuration   *prometheus.HistogramVec
	executionsTotal     *prometheus.CounterVec
	dataUnitTransitions *prometheus.CounterVec
}

// NewMetrics creates the collectors under the given namespace.
func NewMetrics(namespace string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		eventsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "journal_events_total",
			Help:      "Number of execution events applied to the journal.",
		}, []string{"type"}),
		persistenceFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "journal_persistence_failures_total",
			Help:      "Number of failed journal flushes.",
		}, []string{"persister"}),
		flushDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "journal_flush_duration_seconds",
			Help:      "Duration of journal flushes.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"persister"}),
		componentDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "component_duration_seconds",
			Help:      "Duration of component executions.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"mode", "status"}),
		executionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "executions_total",
			Help:      "Number of finished executions by final status.",
		}, []string{"status"}),
		dataUnitTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "data_unit_transitions_total",
			Help:      "Number of data unit lifecycle transitions by target state.",
		}, []string{"state"}),
	}
	m.registry.MustRegister(m.eventsTotal, m.persistenceFailures, m.flushDuration,
		m.componentDuration, m.executionsTotal, m.dataUnitTransitions)
	return m
}

// Registry returns the registry holding the executor collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveEvent counts an applied journal event. A nil receiver is a no-op.
func (m *Metrics) ObserveEvent(eventType string) {
	if m == nil {
		return
	}
	m.eventsTotal.WithLabelValues(eventType).Inc()
}

// ObserveFlush records a journal flush for the named persister.
func (m *Metrics) ObserveFlush(persister string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.flushDuration.WithLabelValues(persister).Observe(duration.Seconds())
	if err != nil {
		m.persistenceFailures.WithLabelValues(persister).Inc()
	}
}

// ObserveComponent records the duration of a component run.
func (m *Metrics) ObserveComponent(mode, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.componentDuration.WithLabelValues(mode, status).Observe(duration.Seconds())
}

// ObserveExecution counts a finished execution.
func (m *Metrics) ObserveExecution(status string) {
	if m == nil {
		return
	}
	m.executionsTotal.WithLabelValues(status).Inc()
}

// ObserveDataUnit counts a data unit transition into the given state.
func (m *Metrics) ObserveDataUnit(state string) {
	if m == nil {
		return
	}
	m.dataUnitTransitions.WithLabelValues(state).Inc()
}

// WriteTextfile writes the current metric values to path in the text exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.registry)
}
