// Eventlens - Labeled Event and Image Viewer Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventlens

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomtom215/eventlens/internal/config"
	"github.com/tomtom215/eventlens/internal/logging"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "eventlens",
		Short: "Labeled event and image viewer backend",
		Long: "Eventlens serves labeled event records from CSV files over a JSON API " +
			"and caches the images they reference from S3.",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}

	root.AddCommand(
		newServeCmd(),
		newFilesCmd(),
		newPrefetchCmd(),
	)

	root.Version = Version
	root.SetVersionTemplate(fmt.Sprintf("eventlens %s\n", Version))

	return root
}

// bootstrap loads configuration and initializes the global logger. Every
// command calls it first.
func bootstrap() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		logging.Error().Err(err).Msg("Failed to load configuration")
		return nil, err
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	return cfg, nil
}
