// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package driver times the summation workloads over an ordered list of sizes.
//
// # Overview
//
//	sizes ──► for each size ──► StandardSum  ──► StandardTimes  (append)
//	                       └──► OptimizedSum ──► OptimizedTimes (append)
//
// Exactly one wall-clock sample is taken per (method, size) pair. There is
// no warm-up, no repetition and no outlier rejection, so individual samples
// are noisy; consumers should compare shapes, not absolute values.
//
// # Usage
//
//	d := driver.New(driver.WithLogger(logger))
//	timings, err := d.Run(ctx, driver.DefaultSizes)
//	if err != nil {
//	    return err
//	}
//	std, opt, _ := timings.Last()
//
// # Verification
//
// By default every sample pair is checked: both workloads must return the
// same value and that value must equal n*(n-1)/2. A mismatch aborts the run
// with ErrResultMismatch.
//
// # Thread Safety
//
// A Driver may be shared; Run keeps all state local to the call. The
// returned Timings must not be mutated concurrently.
package driver
