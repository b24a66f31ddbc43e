// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/sumbench/cmd/sumbench/config"
)

// DefaultConfigPath is where "config init" writes when no path is given.
const DefaultConfigPath = "sumbench.yaml"

// cliFlags holds the persistent flag values. A flag overrides the loaded
// configuration only when it was set on the command line.
type cliFlags struct {
	configPath  string
	logLevel    string
	outputDir   string
	format      string
	noCharts    bool
	trace       string
	metricsFile string
	verbose     bool
}

// newRootCmd builds the command tree writing the report to out and logs to
// errOut.
func newRootCmd(out, errOut io.Writer) *cobra.Command {
	flags := &cliFlags{}

	runE := func(cmd *cobra.Command, args []string) error {
		cfg, err := flags.resolve(cmd)
		if err != nil {
			return err
		}
		return runExperiment(cmd.Context(), cfg, out, errOut)
	}

	rootCmd := &cobra.Command{
		Use:   "sumbench",
		Short: "Compare boxed-value and contiguous-buffer summation",
		Long: `sumbench sums the integers 0..n-1 two ways for each input size:
a standard approach over a sequence of boxed values and an optimized approach
over a contiguous int64 buffer. It prints a timing table and writes three
charts: execution time, scalability, and a memory-layout illustration.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runE,
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	bindFlags(rootCmd, flags)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the benchmark (same as the bare command)",
		Args:  cobra.NoArgs,
		RunE:  runE,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the sumbench configuration file",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default configuration to path (default " + DefaultConfigPath + ")",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := DefaultConfigPath
			if len(args) == 1 {
				path = args[0]
			}
			if err := config.WriteDefault(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote default configuration to %s\n", path)
			return nil
		},
	}
	configCmd.AddCommand(configInitCmd)

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the sumbench version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "sumbench %s\n", Version)
		},
	}

	rootCmd.AddCommand(runCmd, configCmd, versionCmd)
	return rootCmd
}

// bindFlags registers the persistent flags of cmd into f.
func bindFlags(cmd *cobra.Command, f *cliFlags) {
	pf := cmd.PersistentFlags()
	pf.StringVarP(&f.configPath, "config", "c", "", "path to a sumbench YAML config file")
	pf.StringVar(&f.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVarP(&f.outputDir, "output-dir", "o", ".", "directory for charts")
	pf.StringVar(&f.format, "format", "auto", "report format (auto, console, json)")
	pf.BoolVar(&f.noCharts, "no-charts", false, "skip chart rendering")
	pf.StringVar(&f.trace, "trace", "none", "trace exporter (none, stdout, otlp)")
	pf.StringVar(&f.metricsFile, "metrics-file", "", "write Prometheus textfile metrics to this path")
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "include per-sample sums in the report")
}

// resolve loads the config file and applies explicitly set flags on top.
func (f *cliFlags) resolve(cmd *cobra.Command) (config.SumbenchConfig, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return cfg, err
	}

	changed := cmd.Flags().Changed
	if changed("log-level") {
		cfg.Logging.Level = f.logLevel
	}
	if changed("output-dir") {
		cfg.OutputDir = f.outputDir
	}
	if changed("format") {
		cfg.Report.Format = f.format
	}
	if changed("no-charts") {
		cfg.Charts.Enabled = !f.noCharts
	}
	if changed("trace") {
		cfg.Telemetry.TraceExporter = f.trace
	}
	if changed("metrics-file") {
		cfg.Metrics.Textfile = f.metricsFile
	}
	if changed("verbose") {
		cfg.Report.Verbose = f.verbose
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
