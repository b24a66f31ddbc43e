// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/AleutianAI/sumbench/services/bench/driver"
)

// ErrNoSamples is returned when there is nothing to export.
var ErrNoSamples = errors.New("no samples to export")

// Collectors holds the gauges for one run. Exposed so callers can register
// them with their own registry.
type Collectors struct {
	Duration *prometheus.GaugeVec
	Sum      *prometheus.GaugeVec
	Speedup  *prometheus.GaugeVec
}

// NewCollectors creates unregistered gauges labelled by method and size.
func NewCollectors() *Collectors {
	return &Collectors{
		Duration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "sumbench",
			Name:      "sample_duration_seconds",
			Help:      "Wall-clock duration of one summation sample.",
		}, []string{"method", "size"}),
		Sum: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "sumbench",
			Name:      "sum_result",
			Help:      "Value returned by the summation.",
		}, []string{"method", "size"}),
		Speedup: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "sumbench",
			Name:      "speedup_ratio",
			Help:      "Standard duration divided by optimized duration.",
		}, []string{"size"}),
	}
}

// Register adds the gauges to reg.
func (c *Collectors) Register(reg prometheus.Registerer) error {
	for _, col := range []prometheus.Collector{c.Duration, c.Sum, c.Speedup} {
		if err := reg.Register(col); err != nil {
			return err
		}
	}
	return nil
}

// Observe sets the gauges from timings.
func (c *Collectors) Observe(timings *driver.Timings) {
	for _, s := range timings.Samples {
		size := strconv.Itoa(s.Size)
		c.Duration.WithLabelValues(s.Method.String(), size).Set(s.Seconds())
		c.Sum.WithLabelValues(s.Method.String(), size).Set(float64(s.Sum))
	}
	for i, ratio := range timings.Speedups() {
		c.Speedup.WithLabelValues(strconv.Itoa(timings.Sizes[i])).Set(ratio)
	}
}

// WritePrometheusTextfile writes the run's gauges to path using a private
// registry. The parent directory is created if missing.
//
// Outputs:
//   - error: ErrNoSamples for an empty run, otherwise any registry or
//     filesystem error.
func WritePrometheusTextfile(path string, timings *driver.Timings) error {
	if timings == nil || len(timings.Samples) == 0 {
		return ErrNoSamples
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create metrics directory: %w", err)
	}

	reg := prometheus.NewRegistry()
	collectors := NewCollectors()
	if err := collectors.Register(reg); err != nil {
		return fmt.Errorf("register collectors: %w", err)
	}
	collectors.Observe(timings)

	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		return fmt.Errorf("write textfile: %w", err)
	}
	return nil
}
