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
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/AleutianAI/sumbench/services/bench/driver"
)

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}
	if len(cfg.Sizes) != len(driver.DefaultSizes) {
		t.Errorf("len(Sizes) = %d, want %d", len(cfg.Sizes), len(driver.DefaultSizes))
	}
	if !cfg.VerifySums {
		t.Error("VerifySums should default to true")
	}
	if cfg.Influx.Enabled() {
		t.Error("influx should be disabled by default")
	}
}

func TestDefaultConfig_SizesAreCopied(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Sizes[0] = -1
	if driver.DefaultSizes[0] == -1 {
		t.Fatal("DefaultConfig shares the DefaultSizes backing array")
	}
}

// TestWriteDefault verifies default config creation.
func TestWriteDefault(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), ".sumbench", "sumbench.yaml")

	if err := WriteDefault(configPath); err != nil {
		t.Fatalf("WriteDefault() failed: %v", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("failed to read config file: %v", err)
	}
	var cfg SumbenchConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("failed to parse config: %v", err)
	}
	if cfg.Charts.Format != "png" {
		t.Errorf("Charts.Format = %q, want %q", cfg.Charts.Format, "png")
	}
	if cfg.Telemetry.TraceExporter != "" {
		t.Errorf("Telemetry.TraceExporter = %q, want empty so OTEL_TRACES_EXPORTER applies", cfg.Telemetry.TraceExporter)
	}

	if err := WriteDefault(configPath); err == nil {
		t.Error("WriteDefault() over an existing file should fail")
	}
}

func TestLoad_EmptyPath(t *testing.T) {
	t.Setenv(EnvInfluxToken, "")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if cfg.Report.Format != "auto" {
		t.Errorf("Report.Format = %q, want auto", cfg.Report.Format)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	t.Setenv(EnvInfluxToken, "")
	path := filepath.Join(t.TempDir(), "sumbench.yaml")
	content := "sizes: [100, 1000]\ncharts:\n  format: svg\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cfg.Sizes) != 2 || cfg.Sizes[0] != 100 || cfg.Sizes[1] != 1000 {
		t.Errorf("Sizes = %v, want [100 1000]", cfg.Sizes)
	}
	if cfg.Charts.Format != "svg" {
		t.Errorf("Charts.Format = %q, want svg", cfg.Charts.Format)
	}
	if !cfg.Charts.Enabled {
		t.Error("Charts.Enabled lost its default")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
}

func TestLoad_InfluxTokenFromEnv(t *testing.T) {
	t.Setenv(EnvInfluxToken, "s3cret")
	path := filepath.Join(t.TempDir(), "sumbench.yaml")
	content := "influx:\n  url: http://localhost:8086\n  org: bench\n  bucket: runs\n  token: from-file\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Influx.Token != "s3cret" {
		t.Errorf("Influx.Token = %q, want value from %s", cfg.Influx.Token, EnvInfluxToken)
	}
	if !cfg.Influx.Enabled() {
		t.Error("influx should be enabled when url is set")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*SumbenchConfig)
		wantErr bool
	}{
		{"defaults", func(*SumbenchConfig) {}, false},
		{"single size", func(c *SumbenchConfig) { c.Sizes = []int{10} }, false},
		{"zero size", func(c *SumbenchConfig) { c.Sizes = []int{0, 1} }, false},
		{"max size", func(c *SumbenchConfig) { c.Sizes = []int{1 << 32} }, false},
		{"empty sizes", func(c *SumbenchConfig) { c.Sizes = nil }, true},
		{"not increasing", func(c *SumbenchConfig) { c.Sizes = []int{10, 5} }, true},
		{"repeated size", func(c *SumbenchConfig) { c.Sizes = []int{10, 10} }, true},
		{"negative size", func(c *SumbenchConfig) { c.Sizes = []int{-1, 10} }, true},
		{"size over max", func(c *SumbenchConfig) { c.Sizes = []int{1<<32 + 1} }, true},
		{"bad chart format", func(c *SumbenchConfig) { c.Charts.Format = "gif" }, true},
		{"bad report format", func(c *SumbenchConfig) { c.Report.Format = "xml" }, true},
		{"bad log level", func(c *SumbenchConfig) { c.Logging.Level = "loud" }, true},
		{"bad exporter", func(c *SumbenchConfig) { c.Telemetry.TraceExporter = "zipkin" }, true},
		{"otlp with default endpoint", func(c *SumbenchConfig) { c.Telemetry.TraceExporter = "otlp" }, false},
		{"exporter from environment", func(c *SumbenchConfig) { c.Telemetry.TraceExporter = "" }, false},
		{"scatter probability zero", func(c *SumbenchConfig) { c.Charts.ScatterProbability = 0 }, true},
		{"influx without bucket", func(c *SumbenchConfig) {
			c.Influx = InfluxConfig{URL: "http://localhost:8086", Org: "bench"}
		}, true},
		{"empty output dir", func(c *SumbenchConfig) { c.OutputDir = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestMetricsPath(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "bench.prom")
	tests := []struct {
		name      string
		outputDir string
		textfile  string
		want      string
	}{
		{"disabled", "out", "", ""},
		{"relative joins output dir", "out", "metrics/bench.prom", filepath.Join("out", "metrics", "bench.prom")},
		{"absolute kept", "out", abs, abs},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.OutputDir = tt.outputDir
			cfg.Metrics.Textfile = tt.textfile
			if got := cfg.MetricsPath(); got != tt.want {
				t.Errorf("MetricsPath() = %q, want %q", got, tt.want)
			}
		})
	}
}
