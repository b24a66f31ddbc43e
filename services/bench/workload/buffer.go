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

// Int64Buffer is a fixed-size block of adjacent int64 values.
//
// The zero value is an empty buffer. Buffers are not resized after
// construction.
type Int64Buffer struct {
	data []int64
}

// NewInt64Buffer allocates a zeroed buffer of length n. n <= 0 yields an
// empty buffer.
func NewInt64Buffer(n int) Int64Buffer {
	if n <= 0 {
		return Int64Buffer{}
	}
	return Int64Buffer{data: make([]int64, n)}
}

// Arange returns a buffer holding 0, 1, ..., n-1.
//
// Example:
//
//	Arange(4).Values() // [0 1 2 3]
func Arange(n int) Int64Buffer {
	buf := NewInt64Buffer(n)
	for i := range buf.data {
		buf.data[i] = int64(i)
	}
	return buf
}

// Len returns the number of elements.
func (b Int64Buffer) Len() int {
	return len(b.data)
}

// Values exposes the backing slice. Callers must not grow it.
func (b Int64Buffer) Values() []int64 {
	return b.data
}

// Sum reduces the buffer with a single sequential pass. Overflow wraps.
func (b Int64Buffer) Sum() int64 {
	var total int64
	for _, v := range b.data {
		total += v
	}
	return total
}
