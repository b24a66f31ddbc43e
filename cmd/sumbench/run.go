// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/AleutianAI/sumbench/cmd/sumbench/config"
	"github.com/AleutianAI/sumbench/pkg/logging"
	"github.com/AleutianAI/sumbench/services/bench/chart"
	"github.com/AleutianAI/sumbench/services/bench/driver"
	"github.com/AleutianAI/sumbench/services/bench/export"
	"github.com/AleutianAI/sumbench/services/bench/report"
	"github.com/AleutianAI/sumbench/services/bench/telemetry"
)

// runExperiment times both approaches over cfg.Sizes, prints the report to
// out and writes the enabled artifacts.
//
// Description:
//
//	Steps, in order: start telemetry, run the driver, report, render charts,
//	write the Prometheus textfile, write to InfluxDB. The report, charts and
//	textfile are required outputs and abort on failure; the InfluxDB sink is
//	optional and only logs a warning. When InfluxDB is configured the log
//	entries are exported to it as well, flushed when the logger closes.
func runExperiment(ctx context.Context, cfg config.SumbenchConfig, out, errOut io.Writer) error {
	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return err
	}
	logCfg := logging.Config{
		Level:   level,
		LogDir:  cfg.Logging.Dir,
		Service: "sumbench",
		JSON:    cfg.Logging.JSON,
		Output:  errOut,
	}
	var exporterErr error
	if cfg.Influx.Enabled() {
		if exporter, err := export.NewInfluxLogExporter(influxConfig(cfg.Influx)); err == nil {
			logCfg.Exporter = exporter
		} else {
			exporterErr = err
		}
	}
	logger := logging.New(logCfg)
	defer func() {
		if err := logger.Close(); err != nil {
			fmt.Fprintf(errOut, "sumbench: close logger: %v\n", err)
		}
	}()
	if exporterErr != nil {
		logger.Warn("influxdb log export disabled", "error", exporterErr)
	}

	shutdown, err := telemetry.Init(ctx, telemetryConfig(cfg.Telemetry, errOut))
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Warn("telemetry shutdown failed", "error", err)
		}
	}()

	d := driver.New(
		driver.WithLogger(logger),
		driver.WithTracer(telemetry.Tracer()),
		driver.WithVerify(cfg.VerifySums),
	)
	timings, err := d.Run(ctx, cfg.Sizes)
	if err != nil {
		return fmt.Errorf("benchmark run: %w", err)
	}

	reporter, err := report.New(cfg.Report.Format, out, cfg.Report.Verbose)
	if err != nil {
		return err
	}
	if err := reporter.Report(timings); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if cfg.Charts.Enabled {
		renderer, err := chart.NewRenderer(chart.Options{
			Dir:                cfg.OutputDir,
			Format:             cfg.Charts.Format,
			LogScaleX:          cfg.Charts.LogScaleX,
			Seed:               cfg.Charts.Seed,
			ScatterProbability: cfg.Charts.ScatterProbability,
		}, logger)
		if err != nil {
			return err
		}
		if _, err := renderer.RenderAll(ctx, timings); err != nil {
			return fmt.Errorf("render charts: %w", err)
		}
	}

	if path := cfg.MetricsPath(); path != "" {
		if err := export.WritePrometheusTextfile(path, timings); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
		logger.Info("metrics written", "path", path)
	}

	if cfg.Influx.Enabled() {
		writeInflux(ctx, cfg.Influx, timings, logger)
	}
	return nil
}

// telemetryConfig layers the configured exporter and endpoint over the
// OTEL_* environment defaults. Empty settings keep the environment value.
func telemetryConfig(cfg config.TelemetryConfig, w io.Writer) telemetry.Config {
	tcfg := telemetry.DefaultConfig()
	tcfg.ServiceVersion = Version
	tcfg.Writer = w
	if cfg.TraceExporter != "" {
		tcfg.TraceExporter = cfg.TraceExporter
	}
	if cfg.OTLPEndpoint != "" {
		tcfg.OTLPEndpoint = cfg.OTLPEndpoint
	}
	return tcfg
}

func writeInflux(ctx context.Context, cfg config.InfluxConfig, timings *driver.Timings, logger *logging.Logger) {
	sink, err := export.NewInfluxSink(influxConfig(cfg))
	if err != nil {
		logger.Warn("influxdb sink disabled", "error", err)
		return
	}
	defer sink.Close()

	if err := sink.Write(ctx, timings); err != nil {
		logger.Warn("influxdb write failed", "url", cfg.URL, "error", err)
		return
	}
	logger.Info("samples written to influxdb", "bucket", cfg.Bucket, "points", len(timings.Samples))
}

func influxConfig(cfg config.InfluxConfig) export.InfluxConfig {
	return export.InfluxConfig{
		URL:    cfg.URL,
		Token:  cfg.Token,
		Org:    cfg.Org,
		Bucket: cfg.Bucket,
	}
}
