// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package workload

// MaxSize is the largest n for which the sum of 0..n-1 fits in an int64.
const MaxSize int64 = 1 << 32

// Method identifies a summation strategy.
type Method string

const (
	// MethodStandard is the boxed, element-by-element loop.
	MethodStandard Method = "standard"

	// MethodOptimized is the contiguous buffer reduction.
	MethodOptimized Method = "optimized"
)

// String returns the method name.
func (m Method) String() string {
	return string(m)
}

// Label returns the display label used in charts and reports.
func (m Method) Label() string {
	switch m {
	case MethodStandard:
		return "Standard Approach"
	case MethodOptimized:
		return "Optimized Approach"
	default:
		return string(m)
	}
}

// Func computes the sum of the integers 0..n-1.
type Func func(n int) int64

// Workload pairs a method with its kernel.
type Workload struct {
	Method Method
	Sum    Func
}

var (
	// Standard is the boxed loop workload.
	Standard = Workload{Method: MethodStandard, Sum: StandardSum}

	// Optimized is the contiguous buffer workload.
	Optimized = Workload{Method: MethodOptimized, Sum: OptimizedSum}
)

// StandardSum returns 0 + 1 + ... + (n-1) by materializing every integer in
// [0, n) as a separately boxed value and accumulating a running total in
// ascending order.
//
// Description:
//
//	The sequence is a []any. Values outside the runtime's small-integer cache
//	are heap allocated when boxed, so each visit dereferences a pointer to a
//	scattered location. Every element is visited exactly once; there is no
//	short-circuiting.
//
// Inputs:
//   - n: Number of elements. n <= 0 yields an empty sequence.
//
// Outputs:
//   - int64: The sum. 0 for n <= 1.
//
// Example:
//
//	StandardSum(100) // 4950
func StandardSum(n int) int64 {
	data := make([]any, 0, max(n, 0))
	for i := 0; i < n; i++ {
		data = append(data, int64(i))
	}

	var total int64
	for _, value := range data {
		total += value.(int64)
	}
	return total
}

// OptimizedSum returns the same sum as StandardSum by building a contiguous
// Int64Buffer and reducing it in one pass.
func OptimizedSum(n int) int64 {
	return Arange(n).Sum()
}

// ExpectedSum returns n*(n-1)/2 without intermediate overflow for any
// n <= MaxSize. It returns 0 for n <= 0.
func ExpectedSum(n int) int64 {
	if n <= 1 {
		return 0
	}
	a, b := int64(n), int64(n-1)
	if a%2 == 0 {
		return (a / 2) * b
	}
	return a * (b / 2)
}
