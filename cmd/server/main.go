// Eventlens - Labeled Event and Image Viewer Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventlens

// Package main is the Eventlens command.
//
// Eventlens serves labeled event records from CSV files over a JSON API and
// mirrors the images those records reference from S3 into a local cache
// directory.
//
// # Commands
//
//	eventlens              same as "eventlens serve"
//	eventlens serve        run the HTTP API under the supervisor tree
//	eventlens files        list the CSV files in CSV_DIR
//	eventlens prefetch     download every image referenced by a CSV file
//
// # Configuration
//
// Configuration is loaded via Koanf v2 (highest priority wins):
//   - Environment variables (HTTP_PORT, CSV_DIR, IMAGE_CACHE_DIR, AWS_REGION, ...)
//   - Config file (config.yaml, or the path in CONFIG_PATH)
//   - Built-in defaults
//
// AWS credentials always come from the SDK default chain.
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the command context. The HTTP server stops
// accepting connections and waits up to 10 seconds for in-flight requests.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := 0
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		code = 1
	}
	stop()
	os.Exit(code)
}
