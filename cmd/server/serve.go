// Eventlens - Labeled Event and Image Viewer Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventlens

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/eventlens/internal/api"
	"github.com/tomtom215/eventlens/internal/cache"
	"github.com/tomtom215/eventlens/internal/config"
	"github.com/tomtom215/eventlens/internal/fetcher"
	"github.com/tomtom215/eventlens/internal/logging"
	"github.com/tomtom215/eventlens/internal/records"
	"github.com/tomtom215/eventlens/internal/supervisor"
	"github.com/tomtom215/eventlens/internal/supervisor/services"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long:  "Load the first CSV file, then serve the JSON API and cached images until interrupted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	cfg, err := bootstrap()
	if err != nil {
		return err
	}

	logging.Info().
		Str("csv_dir", cfg.Data.Dir).
		Str("cache_dir", cfg.Cache.Dir).
		Str("region", cfg.S3.Region).
		Msg("Starting Eventlens")

	dir := cache.New(cfg.Cache.Dir)
	if err := dir.Ensure(); err != nil {
		logging.Error().Err(err).Msg("Failed to create image cache directory")
		return err
	}

	store := records.NewStore(records.NewSource(cfg.Data.Dir))
	if _, err := store.Load(ctx, ""); err != nil {
		// The API stays usable: files can be listed and loaded later.
		logging.Warn().Err(err).Msg("Initial dataset load failed, starting empty")
	}

	getter, err := fetcher.NewS3Getter(ctx, cfg.S3)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to initialize S3 client")
		return err
	}
	imageFetcher := fetcher.New(getter, dir, fetcher.OptionsFromConfig(cfg.Fetch))

	router := api.NewRouter(api.NewHandler(store, imageFetcher, dir, cfg), cfg)

	// No WriteTimeout: an image batch can legitimately take minutes.
	server := &http.Server{
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: shutdownTimeout + 5*time.Second,
	})
	if err != nil {
		logging.Error().Err(err).Msg("Failed to create supervisor tree")
		return err
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Addr(), shutdownTimeout))
	tree.AddDataService(services.NewCacheUsageService(dir, cfg.Cache.ScanInterval))

	logStartup(cfg, store)

	errCh := tree.ServeBackground(ctx)
	err = <-errCh
	if err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
		return err
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
	}

	logging.Info().Msg("Eventlens stopped")
	return nil
}

func logStartup(cfg *config.Config, store *records.Store) {
	base := cfg.BaseURL()
	endpoints := make([]string, 0, len(api.Endpoints))
	for _, e := range api.Endpoints {
		endpoints = append(endpoints, fmt.Sprintf("%s %s%s", e.Method, base, e.Path))
	}

	ds := store.Current()
	event := logging.Info().
		Str("url", base).
		Int("records", len(ds.Records)).
		Str("csv_dir", store.Source().Dir()).
		Str("cache_dir", cfg.Cache.Dir).
		Str("region", cfg.S3.Region).
		Strs("endpoints", endpoints)
	if ds.Loaded() {
		event = event.Str("file", ds.File)
	}
	event.Msg("Eventlens ready")
}
