/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Tabula Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package metrics exposes Prometheus collectors for table renders.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the render collectors. A nil *Metrics records nothing.
type Metrics struct {
	renders  *prometheus.CounterVec
	failures *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tabula",
			Name:      "renders_total",
			Help:      "Number of table renders by table and format.",
		}, []string{"table", "format"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tabula",
			Name:      "render_failures_total",
			Help:      "Number of failed table renders by table.",
		}, []string{"table"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "tabula",
			Name:      "render_duration_seconds",
			Help:      "Time spent rendering a table.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"table", "format"}),
	}
	for _, c := range []prometheus.Collector{m.renders, m.failures, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ObserveRender records a successful render.
func (m *Metrics) ObserveRender(table, format string, d time.Duration) {
	if m == nil {
		return
	}
	m.renders.WithLabelValues(table, format).Inc()
	m.duration.WithLabelValues(table, format).Observe(d.Seconds())
}

// RenderFailed records a failed render.
func (m *Metrics) RenderFailed(table string) {
	if m == nil {
		return
	}
	m.failures.WithLabelValues(table).Inc()
}
