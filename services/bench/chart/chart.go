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
	"context"
	"errors"
	"fmt"
	"image/color"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	_ "gonum.org/v1/plot/vg/vgimg"
	_ "gonum.org/v1/plot/vg/vgpdf"
	_ "gonum.org/v1/plot/vg/vgsvg"

	"github.com/AleutianAI/sumbench/pkg/logging"
	"github.com/AleutianAI/sumbench/services/bench/driver"
	"github.com/AleutianAI/sumbench/services/bench/workload"
)

// -----------------------------------------------------------------------------
// Errors
// -----------------------------------------------------------------------------

var (
	// ErrNoTimings is returned when there is nothing to plot or the timing
	// series do not line up with the size list.
	ErrNoTimings = errors.New("no timings to plot")

	// ErrUnsupportedFormat is returned for an image format other than png, svg or pdf.
	ErrUnsupportedFormat = errors.New("unsupported chart format")
)

// -----------------------------------------------------------------------------
// Chart constants
// -----------------------------------------------------------------------------

const (
	// LayoutRows and LayoutCols size the memory layout grids.
	LayoutRows = 10
	LayoutCols = 10

	// DefaultScatterProbability is the chance that a scattered cell is occupied.
	DefaultScatterProbability = 0.3

	executionTimeName = "execution_time"
	scalabilityName   = "scalability"
	memoryLayoutName  = "memory_layout"

	executionTimeTitle = "Performance Comparison: Standard vs. Optimized Approach"
	scalabilityTitle   = "Scalability of Standard vs. Optimized Approach"
	memoryLayoutTitle  = "Memory Access Patterns: Standard vs. Optimized Approach"
	scatteredTitle     = "Standard List (Scattered Memory)"
	contiguousTitle    = "Optimized Buffer (Contiguous Memory)"

	secondsLabel = "Execution Time (seconds)"
	sizeLabel    = "Data Size (Number of Elements)"
)

var (
	colorStandard  = color.RGBA{R: 0xff, A: 0xff}
	colorOptimized = color.RGBA{G: 0x80, A: 0xff}
	colorGrid      = color.Gray{Y: 0xb4}
)

// -----------------------------------------------------------------------------
// Renderer
// -----------------------------------------------------------------------------

// Options controls where and how charts are written.
type Options struct {
	// Dir is the output directory. Created if missing.
	Dir string

	// Format is the image format and file extension: png, svg or pdf.
	// Default: png
	Format string

	// LogScaleX draws the scalability chart with a logarithmic x axis.
	LogScaleX bool

	// Seed seeds the scattered layout grid.
	Seed uint64

	// ScatterProbability is P(cell == 1) for the scattered grid.
	// Default: DefaultScatterProbability
	ScatterProbability float64
}

// Renderer writes the three sumbench charts.
//
// Thread Safety: Safe for concurrent use; every call builds its own plots.
type Renderer struct {
	opts   Options
	logger *logging.Logger
}

// NewRenderer validates opts and returns a Renderer.
//
// Outputs:
//   - *Renderer: Ready to render.
//   - error: ErrUnsupportedFormat if opts.Format is not png, svg or pdf.
func NewRenderer(opts Options, logger *logging.Logger) (*Renderer, error) {
	opts.Format = strings.ToLower(strings.TrimPrefix(opts.Format, "."))
	if opts.Format == "" {
		opts.Format = "png"
	}
	switch opts.Format {
	case "png", "svg", "pdf":
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, opts.Format)
	}
	if opts.ScatterProbability <= 0 || opts.ScatterProbability > 1 {
		opts.ScatterProbability = DefaultScatterProbability
	}
	if opts.Dir == "" {
		opts.Dir = "."
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &Renderer{opts: opts, logger: logger}, nil
}

// RenderAll writes the execution-time, scalability and memory-layout charts
// concurrently.
//
// Outputs:
//   - []string: Written file paths in chart order.
//   - error: ErrNoTimings, a filesystem error, or a rendering error.
func (r *Renderer) RenderAll(ctx context.Context, timings *driver.Timings) ([]string, error) {
	if err := checkTimings(timings); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(r.opts.Dir, 0755); err != nil {
		return nil, fmt.Errorf("create chart directory: %w", err)
	}

	renders := []func() (string, error){
		func() (string, error) { return r.ExecutionTime(timings) },
		func() (string, error) { return r.Scalability(timings) },
		r.MemoryLayout,
	}
	paths := make([]string, len(renders))

	g, ctx := errgroup.WithContext(ctx)
	for i, render := range renders {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			path, err := render()
			if err != nil {
				return err
			}
			paths[i] = path
			r.logger.Info("chart written", "path", path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

// ExecutionTime writes the bar chart of the largest-size timing pair.
func (r *Renderer) ExecutionTime(timings *driver.Timings) (string, error) {
	p, err := ExecutionTimePlot(timings)
	if err != nil {
		return "", err
	}
	return r.save(p, executionTimeName, 8*vg.Inch, 5*vg.Inch)
}

// Scalability writes the line chart of both timing series against size.
func (r *Renderer) Scalability(timings *driver.Timings) (string, error) {
	p, err := ScalabilityPlot(timings, r.opts.LogScaleX)
	if err != nil {
		return "", err
	}
	return r.save(p, scalabilityName, 8*vg.Inch, 5*vg.Inch)
}

// MemoryLayout writes the two illustrative heatmaps side by side. The grids
// are unrelated to the measured timings.
func (r *Renderer) MemoryLayout() (string, error) {
	rng := rand.New(rand.NewPCG(r.opts.Seed, r.opts.Seed^0x9e3779b97f4a7c15))
	scattered := ScatteredLayout(LayoutRows, LayoutCols, r.opts.ScatterProbability, rng)
	contiguous := ContiguousLayout(LayoutRows, LayoutCols)

	left := HeatmapPlot(scattered, scatteredTitle)
	right := HeatmapPlot(contiguous, contiguousTitle)

	width, height := 10*vg.Inch, 4*vg.Inch
	canvas, err := draw.NewFormattedCanvas(width, height, r.opts.Format)
	if err != nil {
		return "", fmt.Errorf("create %s canvas: %w", r.opts.Format, err)
	}
	dc := draw.New(canvas)

	tiles := draw.Tiles{
		Rows:      1,
		Cols:      2,
		PadX:      vg.Millimeter * 6,
		PadTop:    vg.Points(30),
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
	}
	plots := [][]*plot.Plot{{left, right}}
	canvases := plot.Align(plots, tiles, dc)
	for j, p := range plots[0] {
		p.Draw(canvases[0][j])
	}

	sty := left.Title.TextStyle
	sty.Font.Size = vg.Points(14)
	sty.XAlign = text.XCenter
	sty.YAlign = text.YTop
	dc.FillText(sty, vg.Point{X: (dc.Min.X + dc.Max.X) / 2, Y: dc.Max.Y - vg.Points(6)}, memoryLayoutTitle)

	path := r.path(memoryLayoutName)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := canvas.WriteTo(f); err != nil {
		f.Close()
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	return path, nil
}

func (r *Renderer) path(name string) string {
	return filepath.Join(r.opts.Dir, name+"."+r.opts.Format)
}

func (r *Renderer) save(p *plot.Plot, name string, w, h vg.Length) (string, error) {
	path := r.path(name)
	if err := p.Save(w, h, path); err != nil {
		return "", fmt.Errorf("save %s: %w", path, err)
	}
	return path, nil
}

// -----------------------------------------------------------------------------
// Plot builders
// -----------------------------------------------------------------------------

// ExecutionTimePlot builds a two-bar chart of the last recorded timing pair.
func ExecutionTimePlot(timings *driver.Timings) (*plot.Plot, error) {
	if err := checkTimings(timings); err != nil {
		return nil, err
	}
	std, opt, _ := timings.Last()

	p := plot.New()
	p.Title.Text = executionTimeTitle
	p.Y.Label.Text = secondsLabel
	p.Y.Min = 0

	width := vg.Points(80)
	stdBar, err := plotter.NewBarChart(plotter.Values{std}, width)
	if err != nil {
		return nil, fmt.Errorf("standard bar: %w", err)
	}
	stdBar.Color = colorStandard
	stdBar.LineStyle.Width = 0

	optBar, err := plotter.NewBarChart(plotter.Values{opt}, width)
	if err != nil {
		return nil, fmt.Errorf("optimized bar: %w", err)
	}
	optBar.Color = colorOptimized
	optBar.LineStyle.Width = 0
	optBar.XMin = 1

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	grid.Horizontal.Color = colorGrid
	grid.Horizontal.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}

	p.Add(grid, stdBar, optBar)
	p.NominalX(workload.MethodStandard.Label(), workload.MethodOptimized.Label())
	return p, nil
}

// ScalabilityPlot builds the line chart of both timing series against the
// size list. A logarithmic x axis is used only when requested and every
// size is positive.
func ScalabilityPlot(timings *driver.Timings, logScaleX bool) (*plot.Plot, error) {
	if err := checkTimings(timings); err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = scalabilityTitle
	p.X.Label.Text = sizeLabel
	p.Y.Label.Text = secondsLabel
	p.Legend.Top = true
	p.Legend.Left = true

	if logScaleX && allPositive(timings.Sizes) {
		p.X.Scale = plot.LogScale{}
		p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	}

	grid := plotter.NewGrid()
	grid.Vertical.Color = colorGrid
	grid.Horizontal.Color = colorGrid
	p.Add(grid)

	series := []struct {
		method workload.Method
		times  []float64
		shape  draw.GlyphDrawer
		color  color.Color
	}{
		{workload.MethodStandard, timings.StandardTimes, draw.CircleGlyph{}, colorStandard},
		{workload.MethodOptimized, timings.OptimizedTimes, draw.SquareGlyph{}, colorOptimized},
	}
	for _, s := range series {
		xys := make(plotter.XYs, len(timings.Sizes))
		for i, size := range timings.Sizes {
			xys[i].X = float64(size)
			xys[i].Y = s.times[i]
		}
		line, points, err := plotter.NewLinePoints(xys)
		if err != nil {
			return nil, fmt.Errorf("%s series: %w", s.method, err)
		}
		line.Color = s.color
		points.Color = s.color
		points.Shape = s.shape
		points.Radius = vg.Points(3)

		p.Add(line, points)
		p.Legend.Add(s.method.Label(), line, points)
	}
	return p, nil
}

// HeatmapPlot builds an axis-free heatmap of g on a cool-warm palette
// spanning [0, 1].
func HeatmapPlot(g *Grid, title string) *plot.Plot {
	colors := moreland.SmoothBlueRed()
	colors.SetMin(0)
	colors.SetMax(1)

	hm := plotter.NewHeatMap(g, colors.Palette(255))
	hm.Min = 0
	hm.Max = 1

	p := plot.New()
	p.Title.Text = title
	p.Add(hm)
	p.HideAxes()
	return p
}

func checkTimings(timings *driver.Timings) error {
	if timings == nil || len(timings.Sizes) == 0 {
		return ErrNoTimings
	}
	if !timings.Consistent() {
		return fmt.Errorf("%w: %d sizes, %d standard, %d optimized", ErrNoTimings,
			len(timings.Sizes), len(timings.StandardTimes), len(timings.OptimizedTimes))
	}
	return nil
}

func allPositive(sizes []int) bool {
	for _, s := range sizes {
		if s <= 0 {
			return false
		}
	}
	return true
}
