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
	"errors"
	"fmt"
	"strconv"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/AleutianAI/sumbench/services/bench/driver"
)

// Measurement is the InfluxDB measurement name for samples.
const Measurement = "sumbench_samples"

// ErrInvalidInfluxConfig is returned when a required InfluxDB setting is missing.
var ErrInvalidInfluxConfig = errors.New("invalid influxdb configuration")

// InfluxConfig locates the InfluxDB bucket.
type InfluxConfig struct {
	URL    string
	Token  string
	Org    string
	Bucket string
}

// Validate checks that every field is set.
func (c InfluxConfig) Validate() error {
	switch {
	case c.URL == "":
		return fmt.Errorf("%w: url is required", ErrInvalidInfluxConfig)
	case c.Org == "":
		return fmt.Errorf("%w: org is required", ErrInvalidInfluxConfig)
	case c.Bucket == "":
		return fmt.Errorf("%w: bucket is required", ErrInvalidInfluxConfig)
	}
	return nil
}

// InfluxSink writes samples with the blocking write API.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	bucket   string
}

// NewInfluxSink creates a sink. No connection is made until Write.
func NewInfluxSink(cfg InfluxConfig) (*InfluxSink, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	client := influxdb2.NewClient(cfg.URL, cfg.Token)
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
		bucket:   cfg.Bucket,
	}, nil
}

// Points converts timings into InfluxDB points, one per sample. Sample i is
// stamped StartedAt + i microseconds so points of one run never collide.
func Points(timings *driver.Timings) []*write.Point {
	points := make([]*write.Point, 0, len(timings.Samples))
	for i, s := range timings.Samples {
		p := influxdb2.NewPointWithMeasurement(Measurement).
			AddTag("run_id", timings.RunID).
			AddTag("method", s.Method.String()).
			AddTag("size", strconv.Itoa(s.Size)).
			AddField("seconds", s.Seconds()).
			AddField("sum", s.Sum).
			SetTime(timings.StartedAt.Add(time.Duration(i) * time.Microsecond))
		points = append(points, p)
	}
	return points
}

// Write sends every sample of timings.
func (s *InfluxSink) Write(ctx context.Context, timings *driver.Timings) error {
	if timings == nil || len(timings.Samples) == 0 {
		return ErrNoSamples
	}
	if err := s.writeAPI.WritePoint(ctx, Points(timings)...); err != nil {
		return fmt.Errorf("write to bucket %s: %w", s.bucket, err)
	}
	return nil
}

// Close releases the client.
func (s *InfluxSink) Close() {
	s.client.Close()
}
