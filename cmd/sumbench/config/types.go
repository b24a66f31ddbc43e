// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package config

import (
	"path/filepath"

	"github.com/AleutianAI/sumbench/services/bench/chart"
	"github.com/AleutianAI/sumbench/services/bench/driver"
)

// SumbenchConfig is the on-disk configuration. Every field is optional; the
// zero file yields DefaultConfig.
type SumbenchConfig struct {
	// Sizes are the input sizes timed, in order.
	Sizes []int `yaml:"sizes" validate:"required,min=1,strictly_increasing,dive,gte=0,lte=4294967296"`

	// VerifySums fails the run when the two approaches disagree on a sum.
	VerifySums bool `yaml:"verify_sums"`

	// OutputDir receives charts. A relative metrics textfile path is resolved
	// against it.
	OutputDir string `yaml:"output_dir" validate:"required"`

	Charts    ChartsConfig    `yaml:"charts"`
	Report    ReportConfig    `yaml:"report"`
	Logging   LoggingConfig   `yaml:"logging"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Influx    InfluxConfig    `yaml:"influx"`
}

type ChartsConfig struct {
	Enabled            bool    `yaml:"enabled"`
	Format             string  `yaml:"format" validate:"oneof=png svg pdf"`
	LogScaleX          bool    `yaml:"log_scale_x"`
	Seed               uint64  `yaml:"seed"`
	ScatterProbability float64 `yaml:"scatter_probability" validate:"gt=0,lte=1"`
}

type ReportConfig struct {
	// Format is "auto", "console" or "json".
	Format  string `yaml:"format" validate:"oneof=auto console json"`
	Verbose bool   `yaml:"verbose"`
}

type LoggingConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn warning error"`
	JSON  bool   `yaml:"json"`
	Dir   string `yaml:"dir,omitempty"` // e.g. ~/.sumbench/logs
}

type TelemetryConfig struct {
	// TraceExporter is "none", "stdout" or "otlp". Empty defers to
	// OTEL_TRACES_EXPORTER, then "none".
	TraceExporter string `yaml:"trace_exporter,omitempty" validate:"omitempty,oneof=none stdout otlp"`

	// OTLPEndpoint empty defers to OTEL_EXPORTER_OTLP_ENDPOINT, then localhost:4317.
	OTLPEndpoint string `yaml:"otlp_endpoint,omitempty"`
}

type MetricsConfig struct {
	// Textfile is a Prometheus textfile-collector path, relative to OutputDir
	// unless absolute. Empty disables it.
	Textfile string `yaml:"textfile,omitempty"`
}

// InfluxConfig is disabled unless URL is set.
type InfluxConfig struct {
	URL    string `yaml:"url,omitempty" validate:"omitempty,url"`
	Token  string `yaml:"token,omitempty"`
	Org    string `yaml:"org,omitempty" validate:"required_with=URL"`
	Bucket string `yaml:"bucket,omitempty" validate:"required_with=URL"`
}

// Enabled reports whether samples should be written to InfluxDB.
func (c InfluxConfig) Enabled() bool {
	return c.URL != ""
}

// MetricsPath returns the textfile path with a relative path joined to
// OutputDir, or "" when metrics are disabled.
func (c SumbenchConfig) MetricsPath() string {
	if c.Metrics.Textfile == "" || filepath.IsAbs(c.Metrics.Textfile) {
		return c.Metrics.Textfile
	}
	return filepath.Join(c.OutputDir, c.Metrics.Textfile)
}

// DefaultConfig returns the settings used when no file is given.
func DefaultConfig() SumbenchConfig {
	return SumbenchConfig{
		Sizes:      append([]int(nil), driver.DefaultSizes...),
		VerifySums: true,
		OutputDir:  ".",
		Charts: ChartsConfig{
			Enabled:            true,
			Format:             "png",
			ScatterProbability: chart.DefaultScatterProbability,
			Seed:               42,
		},
		Report: ReportConfig{
			Format: "auto",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
