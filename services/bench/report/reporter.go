// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package report prints a summary of a benchmark run.
//
// Two reporters are provided: ConsoleReporter renders an aligned table for
// humans and JSONReporter emits the Timings for machines. New selects one
// from a format name, with "auto" choosing by whether the writer is a
// terminal.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/AleutianAI/sumbench/services/bench/driver"
)

// ErrUnknownFormat is returned by New for an unrecognised format name.
var ErrUnknownFormat = errors.New("unknown report format")

// Format names accepted by New.
const (
	FormatAuto    = "auto"
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Reporter writes a summary of a run.
type Reporter interface {
	Report(timings *driver.Timings) error
}

// New returns the reporter for format, writing to w.
//
// Inputs:
//   - format: "auto", "console" or "json". Empty means auto.
//   - w: Destination. For auto, console is chosen when w is a terminal.
//   - verbose: Adds per-sample sums to console output, indents JSON.
func New(format string, w io.Writer, verbose bool) (Reporter, error) {
	switch strings.ToLower(format) {
	case "", FormatAuto:
		if IsTerminal(w) {
			return NewConsoleReporter(w, verbose), nil
		}
		return NewJSONReporter(w, verbose), nil
	case FormatConsole:
		return NewConsoleReporter(w, verbose), nil
	case FormatJSON:
		return NewJSONReporter(w, verbose), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// IsTerminal reports whether w is a terminal file descriptor.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// -----------------------------------------------------------------------------
// Console
// -----------------------------------------------------------------------------

var (
	colorTeal  = lipgloss.Color("#2CD7C7")
	colorSlate = lipgloss.Color("#2C4A54")
	colorRed   = lipgloss.Color("#E74C3C")
	colorGreen = lipgloss.Color("#27AE60")
)

// ConsoleReporter renders a styled table. Styling degrades to plain text
// when the writer does not support colour.
type ConsoleReporter struct {
	out     io.Writer
	verbose bool

	title    lipgloss.Style
	muted    lipgloss.Style
	header   lipgloss.Style
	standard lipgloss.Style
	faster   lipgloss.Style
}

// NewConsoleReporter creates a ConsoleReporter writing to out.
func NewConsoleReporter(out io.Writer, verbose bool) *ConsoleReporter {
	r := lipgloss.NewRenderer(out)
	return &ConsoleReporter{
		out:      out,
		verbose:  verbose,
		title:    r.NewStyle().Bold(true).Foreground(colorTeal),
		muted:    r.NewStyle().Foreground(colorSlate),
		header:   r.NewStyle().Bold(true),
		standard: r.NewStyle().Foreground(colorRed),
		faster:   r.NewStyle().Foreground(colorGreen),
	}
}

// Report writes the table.
func (c *ConsoleReporter) Report(timings *driver.Timings) error {
	if timings == nil || timings.Len() == 0 {
		return fmt.Errorf("report: %w", driver.ErrNoSizes)
	}

	var sb strings.Builder
	sb.WriteString(c.title.Render("Sum Benchmark: Standard vs. Optimized"))
	sb.WriteString("\n")
	sb.WriteString(c.muted.Render("run " + timings.RunID))
	sb.WriteString("\n\n")

	sb.WriteString(c.header.Render(fmt.Sprintf("%14s  %14s  %14s  %9s", "Size", "Standard (s)", "Optimized (s)", "Speedup")))
	sb.WriteString("\n")

	speedups := timings.Speedups()
	for i := 0; i < timings.Len(); i++ {
		sb.WriteString(fmt.Sprintf("%14s  ", formatCount(timings.Sizes[i])))
		sb.WriteString(c.standard.Render(fmt.Sprintf("%14.6f", timings.StandardTimes[i])))
		sb.WriteString("  ")
		sb.WriteString(c.faster.Render(fmt.Sprintf("%14.6f", timings.OptimizedTimes[i])))
		sb.WriteString(fmt.Sprintf("  %9s\n", formatSpeedup(speedups[i])))
	}

	if c.verbose {
		sb.WriteString("\n")
		sb.WriteString(c.header.Render("Samples:"))
		sb.WriteString("\n")
		for _, s := range timings.Samples {
			sb.WriteString(fmt.Sprintf("  %-9s  n=%-12s  sum=%-20d  %v\n",
				s.Method, formatCount(s.Size), s.Sum, s.Elapsed))
		}
	}

	std, opt, _ := timings.Last()
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Largest size %s: standard %.6fs, optimized %.6fs (%s)\n",
		formatCount(timings.Sizes[timings.Len()-1]), std, opt, formatSpeedup(speedups[len(speedups)-1])))
	sb.WriteString(c.muted.Render("Single untrimmed sample per size; expect run-to-run variance."))
	sb.WriteString("\n")

	_, err := io.WriteString(c.out, sb.String())
	return err
}

// -----------------------------------------------------------------------------
// JSON
// -----------------------------------------------------------------------------

// JSONReporter writes the Timings plus derived speedups as one JSON object.
type JSONReporter struct {
	out    io.Writer
	pretty bool
}

// NewJSONReporter creates a JSONReporter. pretty enables indentation.
func NewJSONReporter(out io.Writer, pretty bool) *JSONReporter {
	return &JSONReporter{out: out, pretty: pretty}
}

type jsonReport struct {
	*driver.Timings
	Speedups []float64 `json:"speedups"`
}

// Report encodes timings.
func (j *JSONReporter) Report(timings *driver.Timings) error {
	if timings == nil {
		return fmt.Errorf("report: %w", driver.ErrNoSizes)
	}
	enc := json.NewEncoder(j.out)
	if j.pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(jsonReport{Timings: timings, Speedups: timings.Speedups()})
}

// -----------------------------------------------------------------------------
// Formatting helpers
// -----------------------------------------------------------------------------

// countPrinter groups digits in thousands, e.g. 20,000,000.
var countPrinter = message.NewPrinter(language.English)

// formatCount renders n with thousands separators.
func formatCount(n int) string {
	return countPrinter.Sprintf("%d", n)
}

func formatSpeedup(x float64) string {
	if x <= 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.1fx", x)
}

var (
	_ Reporter = (*ConsoleReporter)(nil)
	_ Reporter = (*JSONReporter)(nil)
)
