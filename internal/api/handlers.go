// Eventlens - Labeled Event and Image Viewer Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventlens

// Package api serves the Eventlens HTTP API.
//
// Handler methods are split across files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_data.go: dataset endpoints (files, load-file, data, events, stats)
//   - handlers_images.go: image download and serving
//   - handlers_health.go: health check
//
// Every handler reads the active dataset once through records.Store.Current,
// so a concurrent reload never mixes records from two files in one response.
package api

import (
	"context"

	"github.com/tomtom215/eventlens/internal/cache"
	"github.com/tomtom215/eventlens/internal/config"
	"github.com/tomtom215/eventlens/internal/models"
	"github.com/tomtom215/eventlens/internal/records"
)

// ImageFetcher copies referenced images into the cache.
type ImageFetcher interface {
	FetchAll(ctx context.Context, refs []string) []models.FetchResult
	BreakerState() string
}

// Handler contains dependencies for API handlers.
type Handler struct {
	store   *records.Store
	fetcher ImageFetcher
	cache   *cache.Dir
	config  *config.Config
}

// NewHandler creates a Handler.
//
//	handler := api.NewHandler(store, fetcher.New(getter, dir, opts), dir, cfg)
//	router := api.NewRouter(handler, cfg)
//	srv := &http.Server{Addr: cfg.Addr(), Handler: router.SetupChi()}
func NewHandler(store *records.Store, fetcher ImageFetcher, dir *cache.Dir, cfg *config.Config) *Handler {
	return &Handler{
		store:   store,
		fetcher: fetcher,
		cache:   dir,
		config:  cfg,
	}
}

// currentFilePtr returns the active file name, or nil when nothing is loaded.
func currentFilePtr(ds *records.Dataset) *string {
	if !ds.Loaded() {
		return nil
	}
	name := ds.File
	return &name
}
