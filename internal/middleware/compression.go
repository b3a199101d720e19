// Eventlens - Labeled Event and Image Viewer Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventlens

package middleware

import (
	"compress/flate"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// jsonCompressor only touches JSON bodies. Cached images are already
// compressed and must keep range support, so they pass through as-is.
var jsonCompressor = chimiddleware.NewCompressor(flate.DefaultCompression, "application/json")

// Compression gzips (or deflates) JSON responses for clients that accept it.
// Record arrays from /api/data compress roughly tenfold.
func Compression(next http.Handler) http.Handler {
	return jsonCompressor.Handler(next)
}
