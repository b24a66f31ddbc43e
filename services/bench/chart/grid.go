// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package chart

import (
	"math/rand/v2"
)

// Grid is a dense row-major matrix displayed as a heatmap. It implements
// plotter.GridXYZ with row 0 drawn at the top.
type Grid struct {
	rows, cols int
	data       []float64
}

// NewGrid returns a rows×cols grid filled with v. Non-positive dimensions
// yield an empty grid.
func NewGrid(rows, cols int, v float64) *Grid {
	if rows <= 0 || cols <= 0 {
		return &Grid{}
	}
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = v
	}
	return &Grid{rows: rows, cols: cols, data: data}
}

// ScatteredLayout returns a grid whose cells are 1 with probability p and 0
// otherwise. It stands in for the scattered placement of boxed values.
func ScatteredLayout(rows, cols int, p float64, rng *rand.Rand) *Grid {
	g := NewGrid(rows, cols, 0)
	for i := range g.data {
		if rng.Float64() < p {
			g.data[i] = 1
		}
	}
	return g
}

// ContiguousLayout returns a grid of ones: every cell occupied, adjacent.
func ContiguousLayout(rows, cols int) *Grid {
	return NewGrid(rows, cols, 1)
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// At returns the value at row r, column c.
func (g *Grid) At(r, c int) float64 { return g.data[r*g.cols+c] }

// Dims implements plotter.GridXYZ.
func (g *Grid) Dims() (c, r int) { return g.cols, g.rows }

// Z implements plotter.GridXYZ. Plot row r is grid row rows-1-r, so grid
// row 0 lands at the top.
func (g *Grid) Z(c, r int) float64 { return g.At(g.rows-1-r, c) }

// X implements plotter.GridXYZ.
func (g *Grid) X(c int) float64 { return float64(c) }

// Y implements plotter.GridXYZ.
func (g *Grid) Y(r int) float64 { return float64(r) }

// Mean returns the average cell value, 0 for an empty grid.
func (g *Grid) Mean() float64 {
	if len(g.data) == 0 {
		return 0
	}
	var sum float64
	for _, v := range g.data {
		sum += v
	}
	return sum / float64(len(g.data))
}
