// Eventlens - Labeled Event and Image Viewer Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventlens

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/eventlens/internal/config"
	"github.com/tomtom215/eventlens/internal/middleware"
)

// slowRequestThreshold is the latency above which requests are logged at
// warn level.
const slowRequestThreshold = time.Second

// Endpoint describes one public route, used for the startup banner.
type Endpoint struct {
	Method string
	Path   string
}

// Endpoints lists the API routes in the order they are announced at startup.
var Endpoints = []Endpoint{
	{http.MethodGet, "/api/files"},
	{http.MethodGet, "/api/events"},
	{http.MethodGet, "/api/data/by-uuid/{uuid}"},
	{http.MethodPost, "/api/download-images"},
	{http.MethodGet, "/api/image/{filename}"},
	{http.MethodPost, "/api/load-file"},
	{http.MethodGet, "/api/data"},
	{http.MethodGet, "/api/stats"},
	{http.MethodGet, "/api/health"},
	{http.MethodGet, "/metrics"},
}

// Router wires handlers and middleware into a chi router.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a Router using the security settings from cfg.
func NewRouter(handler *Handler, cfg *config.Config) *Router {
	return &Router{
		handler:       handler,
		chiMiddleware: NewChiMiddleware(ChiMiddlewareConfigFromSecurity(cfg.Security)),
	}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// Applied to all routes, in order.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(Recoverer)
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.SlowRequests(slowRequestThreshold))
	r.Use(router.chiMiddleware.CORS()) // global so OPTIONS preflight is answered

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		respondError(w, req, http.StatusNotFound, ErrCodeNotFound, "Not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		respondError(w, req, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed", nil)
	})

	r.Handle("/metrics", promhttp.Handler())

	h := router.handler
	r.Route("/api", func(r chi.Router) {
		// JSON endpoints share one limiter; some return the whole dataset.
		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimit())

			r.Get("/health", h.Health)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Compression)

				r.Get("/files", h.Files)
				r.Post("/load-file", h.LoadFile)
				r.Get("/data", h.Data)
				r.Get("/data/by-uuid/{uuid}", h.DataByUUID)
				r.Get("/events", h.Events)
				r.Get("/stats", h.Stats)
				r.Post("/download-images", h.DownloadImages)
			})
		})

		// Not rate limited: a gallery page requests one image per thumbnail.
		// Served through http.ServeContent for Range and conditional requests.
		r.Get("/image/{filename}", h.Image)
	})

	return r
}
