// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package workload provides the two summation kernels that sumbench times.
//
// # Overview
//
// Both kernels compute 0 + 1 + ... + (n-1). They differ only in memory layout:
//
//	┌───────────────────────────┐      ┌───────────────────────────┐
//	│       StandardSum         │      │       OptimizedSum        │
//	│                           │      │                           │
//	│  []any ──► *int64 (heap)  │      │  Int64Buffer (contiguous) │
//	│        ──► *int64 (heap)  │      │  [0|1|2|3|...|n-1]        │
//	│        ──► ...            │      │                           │
//	│  one type switch per item │      │  one reduction pass       │
//	└───────────────────────────┘      └───────────────────────────┘
//
// StandardSum stores every value behind its own interface header so that
// visiting the sequence chases a pointer per element. OptimizedSum stores the
// values adjacently and reduces them in a single tight loop.
//
// # Overflow
//
// Neither kernel checks for overflow. The sum of 0..n-1 fits in an int64 for
// every n <= MaxSize; callers that accept sizes from users must enforce that
// bound themselves.
//
// # Thread Safety
//
// All functions are stateless and safe for concurrent use.
package workload
