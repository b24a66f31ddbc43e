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
	"errors"
	"time"

	"github.com/AleutianAI/sumbench/services/bench/workload"
)

// -----------------------------------------------------------------------------
// Errors
// -----------------------------------------------------------------------------

var (
	// ErrNoSizes indicates an empty size list.
	ErrNoSizes = errors.New("no input sizes")

	// ErrInvalidSize indicates a negative size or one whose sum overflows int64.
	ErrInvalidSize = errors.New("invalid input size")

	// ErrResultMismatch indicates the two workloads disagreed on a sum.
	ErrResultMismatch = errors.New("summation results disagree")
)

// DefaultSizes is the ordered list of input sizes timed by a default run.
var DefaultSizes = []int{100_000, 1_000_000, 5_000_000, 10_000_000, 20_000_000}

// -----------------------------------------------------------------------------
// Clock
// -----------------------------------------------------------------------------

// Clock measures elapsed wall-clock time.
type Clock interface {
	Now() time.Time
	Since(start time.Time) time.Duration
}

// systemClock uses the monotonic reading carried by time.Now.
type systemClock struct{}

func (systemClock) Now() time.Time                      { return time.Now() }
func (systemClock) Since(start time.Time) time.Duration { return time.Since(start) }

// -----------------------------------------------------------------------------
// Results
// -----------------------------------------------------------------------------

// Sample is one timed invocation of a workload.
type Sample struct {
	// Method identifies the workload.
	Method workload.Method `json:"method"`

	// Size is the n passed to the workload.
	Size int `json:"size"`

	// Elapsed is the measured wall-clock duration.
	Elapsed time.Duration `json:"elapsed_ns"`

	// Sum is the value the workload returned.
	Sum int64 `json:"sum"`
}

// Seconds returns Elapsed in seconds.
func (s Sample) Seconds() float64 {
	return s.Elapsed.Seconds()
}

// Timings holds the samples of one run.
//
// Sizes, StandardTimes and OptimizedTimes are parallel: index i of each time
// series belongs to Sizes[i]. Both series are appended in lockstep and have
// the same length as Sizes once Run returns without error.
type Timings struct {
	// RunID identifies the run in logs and exported metrics.
	RunID string `json:"run_id"`

	// StartedAt is when the first sample was taken.
	StartedAt time.Time `json:"started_at"`

	// Sizes is the ordered size list that was timed.
	Sizes []int `json:"sizes"`

	// StandardTimes holds the StandardSum samples in seconds.
	StandardTimes []float64 `json:"standard_times"`

	// OptimizedTimes holds the OptimizedSum samples in seconds.
	OptimizedTimes []float64 `json:"optimized_times"`

	// Samples holds every sample in execution order.
	Samples []Sample `json:"samples"`
}

// Len returns the number of completed (standard, optimized) pairs.
func (t *Timings) Len() int {
	if t == nil {
		return 0
	}
	return min(len(t.StandardTimes), len(t.OptimizedTimes))
}

// Last returns the timing pair recorded for the largest (last) size.
//
// Outputs:
//   - standard, optimized: Samples in seconds.
//   - ok: False if no pair has been recorded.
func (t *Timings) Last() (standard, optimized float64, ok bool) {
	n := t.Len()
	if n == 0 {
		return 0, 0, false
	}
	return t.StandardTimes[n-1], t.OptimizedTimes[n-1], true
}

// Speedups returns standard/optimized for every recorded pair. A pair whose
// optimized sample is zero yields 0.
func (t *Timings) Speedups() []float64 {
	n := t.Len()
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		if t.OptimizedTimes[i] > 0 {
			out[i] = t.StandardTimes[i] / t.OptimizedTimes[i]
		}
	}
	return out
}

// Consistent reports whether both series match the size list in length.
func (t *Timings) Consistent() bool {
	return t != nil &&
		len(t.StandardTimes) == len(t.Sizes) &&
		len(t.OptimizedTimes) == len(t.Sizes)
}
