// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Command sumbench times a boxed-value summation against a contiguous-buffer
// summation over a series of input sizes and charts the result.
//
// Usage:
//
//	sumbench                         # default sizes, report + charts in .
//	sumbench --config sumbench.yaml  # settings from a YAML file
//	sumbench config init             # write ./sumbench.yaml with defaults
//	sumbench --trace stdout --metrics-file bench.prom
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/AleutianAI/sumbench/pkg/logging"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		logging.Default().Error("sumbench failed", "error", err)
		stop()
		os.Exit(1)
	}
}
