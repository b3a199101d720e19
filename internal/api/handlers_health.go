// Eventlens - Labeled Event and Image Viewer Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventlens

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/eventlens/internal/models"
)

// healthTimeFormat is ISO 8601 with milliseconds, always in UTC.
const healthTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// Health reports liveness and the active dataset.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	ds := h.store.Current()
	respondJSON(w, http.StatusOK, models.HealthStatus{
		Status:      "OK",
		Records:     len(ds.Records),
		CurrentFile: currentFilePtr(ds),
		Timestamp:   time.Now().UTC().Format(healthTimeFormat),
		ObjectStore: h.fetcher.BreakerState(),
	})
}
