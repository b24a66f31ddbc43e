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
	"context"
	"fmt"
	"sync"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/AleutianAI/sumbench/pkg/logging"
)

// LogMeasurement is the InfluxDB measurement name for log entries.
const LogMeasurement = "sumbench_logs"

// InfluxLogExporter is a logging.LogExporter that buffers entries in memory
// and writes them to InfluxDB on Flush, so logging never waits on the
// network.
//
// Thread Safety: Safe for concurrent use.
type InfluxLogExporter struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	bucket   string

	mu     sync.Mutex
	points []*write.Point
}

// NewInfluxLogExporter creates an exporter for the bucket in cfg.
func NewInfluxLogExporter(cfg InfluxConfig) (*InfluxLogExporter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	client := influxdb2.NewClient(cfg.URL, cfg.Token)
	return &InfluxLogExporter{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
		bucket:   cfg.Bucket,
	}, nil
}

// Export converts entry into a point tagged with level and service. Entry
// attributes become fields next to "message".
func (e *InfluxLogExporter) Export(_ context.Context, entry logging.LogEntry) error {
	p := influxdb2.NewPointWithMeasurement(LogMeasurement).
		AddTag("level", entry.Level.String()).
		AddField("message", entry.Message).
		SetTime(entry.Timestamp)
	if entry.Service != "" {
		p.AddTag("service", entry.Service)
	}
	for k, v := range entry.Attrs {
		if k == "message" {
			continue
		}
		p.AddField(k, v)
	}

	e.mu.Lock()
	e.points = append(e.points, p)
	e.mu.Unlock()
	return nil
}

// Flush writes every buffered entry in one request.
func (e *InfluxLogExporter) Flush(ctx context.Context) error {
	e.mu.Lock()
	points := e.points
	e.points = nil
	e.mu.Unlock()

	if len(points) == 0 {
		return nil
	}
	if err := e.writeAPI.WritePoint(ctx, points...); err != nil {
		return fmt.Errorf("write logs to bucket %s: %w", e.bucket, err)
	}
	return nil
}

// Close releases the client. Entries not yet flushed are dropped.
func (e *InfluxLogExporter) Close() error {
	e.client.Close()
	return nil
}

var _ logging.LogExporter = (*InfluxLogExporter)(nil)
