// Eventlens - Labeled Event and Image Viewer Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventlens

package middleware

import (
	"net/http"
	"time"

	"github.com/tomtom215/eventlens/internal/logging"
)

// DefaultSlowRequestThreshold is used when SlowRequests gets a zero threshold.
const DefaultSlowRequestThreshold = time.Second

// SlowRequests logs every request slower than threshold at warn level and
// every other request at debug level. Download batches routinely take
// several seconds, so the threshold is configurable.
func SlowRequests(threshold time.Duration) func(http.Handler) http.Handler {
	if threshold <= 0 {
		threshold = DefaultSlowRequestThreshold
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapper := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapper, r)

			duration := time.Since(start)
			log := logging.Ctx(r.Context())
			event := log.Debug()
			if duration > threshold {
				event = log.Warn().Dur("threshold", threshold)
			}
			event.
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", wrapper.statusCode).
				Dur("duration", duration).
				Msg("HTTP request")
		})
	}
}
