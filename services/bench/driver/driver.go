// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package driver

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/AleutianAI/sumbench/pkg/logging"
	"github.com/AleutianAI/sumbench/services/bench/workload"
)

// Driver runs the standard and optimized workloads over a size list.
type Driver struct {
	logger    *logging.Logger
	tracer    trace.Tracer
	clock     Clock
	verify    bool
	standard  workload.Workload
	optimized workload.Workload
	newRunID  func() string
}

// Option configures a Driver.
type Option func(*Driver)

// WithLogger sets the logger. Default: logging.Nop().
func WithLogger(logger *logging.Logger) Option {
	return func(d *Driver) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithTracer sets the tracer used for run and sample spans. Default: no-op.
func WithTracer(tracer trace.Tracer) Option {
	return func(d *Driver) {
		if tracer != nil {
			d.tracer = tracer
		}
	}
}

// WithClock replaces the wall clock. Used by tests.
func WithClock(clock Clock) Option {
	return func(d *Driver) {
		if clock != nil {
			d.clock = clock
		}
	}
}

// WithVerify enables or disables result verification. Default: enabled.
func WithVerify(verify bool) Option {
	return func(d *Driver) {
		d.verify = verify
	}
}

// WithWorkloads replaces the two workloads. Both must have a non-nil Sum.
func WithWorkloads(standard, optimized workload.Workload) Option {
	return func(d *Driver) {
		if standard.Sum != nil {
			d.standard = standard
		}
		if optimized.Sum != nil {
			d.optimized = optimized
		}
	}
}

// WithRunID fixes the run id instead of generating a UUID.
func WithRunID(id string) Option {
	return func(d *Driver) {
		if id != "" {
			d.newRunID = func() string { return id }
		}
	}
}

// New creates a Driver with the given options applied over the defaults.
func New(opts ...Option) *Driver {
	d := &Driver{
		logger:    logging.Nop(),
		tracer:    noop.NewTracerProvider().Tracer("sumbench/driver"),
		clock:     systemClock{},
		verify:    true,
		standard:  workload.Standard,
		optimized: workload.Optimized,
		newRunID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// ValidateSizes checks that sizes is non-empty, strictly increasing, and that
// every entry lies in [0, workload.MaxSize].
func ValidateSizes(sizes []int) error {
	if len(sizes) == 0 {
		return ErrNoSizes
	}
	for i, n := range sizes {
		if n < 0 || int64(n) > workload.MaxSize {
			return fmt.Errorf("%w: sizes[%d]=%d outside [0, %d]", ErrInvalidSize, i, n, workload.MaxSize)
		}
		if i > 0 && n <= sizes[i-1] {
			return fmt.Errorf("%w: sizes[%d]=%d does not exceed sizes[%d]=%d", ErrInvalidSize, i, n, i-1, sizes[i-1])
		}
	}
	return nil
}

// Run times both workloads once for every size, in order.
//
// Description:
//
//	For each size the standard workload is timed first and its duration
//	appended to StandardTimes; then the optimized workload is timed and
//	appended to OptimizedTimes. The context is checked between sizes; a
//	single workload invocation is never interrupted.
//
// Inputs:
//   - ctx: Context for cancellation. Must not be nil.
//   - sizes: Ordered input sizes. Copied; the caller may reuse the slice.
//
// Outputs:
//   - *Timings: The recorded samples. On error, the partial timings recorded
//     so far are returned alongside the error.
//   - error: ErrNoSizes, ErrInvalidSize, ErrResultMismatch, or ctx.Err().
func (d *Driver) Run(ctx context.Context, sizes []int) (*Timings, error) {
	if err := ValidateSizes(sizes); err != nil {
		return nil, err
	}

	timings := &Timings{
		RunID:          d.newRunID(),
		StartedAt:      d.clock.Now(),
		Sizes:          append([]int(nil), sizes...),
		StandardTimes:  make([]float64, 0, len(sizes)),
		OptimizedTimes: make([]float64, 0, len(sizes)),
		Samples:        make([]Sample, 0, 2*len(sizes)),
	}
	logger := d.logger.With("run_id", timings.RunID)

	ctx, span := d.tracer.Start(ctx, "sumbench.run", trace.WithAttributes(
		attribute.String("run_id", timings.RunID),
		attribute.Int("sizes", len(sizes)),
	))
	defer span.End()

	logger.Info("benchmark run started", "sizes", len(sizes), "verify", d.verify)

	for _, size := range sizes {
		if err := ctx.Err(); err != nil {
			span.SetStatus(codes.Error, err.Error())
			return timings, err
		}

		std := d.sample(ctx, d.standard, size)
		timings.StandardTimes = append(timings.StandardTimes, std.Seconds())

		opt := d.sample(ctx, d.optimized, size)
		timings.OptimizedTimes = append(timings.OptimizedTimes, opt.Seconds())

		timings.Samples = append(timings.Samples, std, opt)

		logger.Debug("size timed",
			"size", size,
			"standard_s", std.Seconds(),
			"optimized_s", opt.Seconds(),
		)

		if d.verify {
			if err := verifyPair(std, opt); err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				logger.Error("summation mismatch", "size", size, "error", err)
				return timings, err
			}
		}
	}

	stdLast, optLast, _ := timings.Last()
	logger.Info("benchmark run finished",
		"largest_size", timings.Sizes[len(timings.Sizes)-1],
		"standard_s", stdLast,
		"optimized_s", optLast,
	)
	return timings, nil
}

// sample times one workload invocation inside its own span.
func (d *Driver) sample(ctx context.Context, w workload.Workload, size int) Sample {
	_, span := d.tracer.Start(ctx, "sumbench.sample", trace.WithAttributes(
		attribute.String("method", w.Method.String()),
		attribute.Int("size", size),
	))
	defer span.End()

	start := d.clock.Now()
	sum := w.Sum(size)
	elapsed := d.clock.Since(start)
	if elapsed < 0 {
		elapsed = 0
	}

	span.SetAttributes(
		attribute.Int64("sum", sum),
		attribute.Float64("elapsed_s", elapsed.Seconds()),
	)
	return Sample{Method: w.Method, Size: size, Elapsed: elapsed, Sum: sum}
}

func verifyPair(std, opt Sample) error {
	want := workload.ExpectedSum(std.Size)
	if std.Sum != opt.Sum || std.Sum != want {
		return fmt.Errorf("%w: size=%d %s=%d %s=%d expected=%d",
			ErrResultMismatch, std.Size, std.Method, std.Sum, opt.Method, opt.Sum, want)
	}
	return nil
}
