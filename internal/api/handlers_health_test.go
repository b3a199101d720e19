// Eventlens - Labeled Event and Image Viewer Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventlens

package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/tomtom215/eventlens/internal/config"
	"github.com/tomtom215/eventlens/internal/models"
	"github.com/tomtom215/eventlens/internal/records"
)

func TestHealth(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var h models.HealthStatus
	decodeBody(t, w, &h)
	if h.Status != "OK" || h.Records != 4 {
		t.Errorf("health = %+v", h)
	}
	if h.CurrentFile == nil || *h.CurrentFile != "events.csv" {
		t.Errorf("currentFile = %v", h.CurrentFile)
	}
	if h.ObjectStore != "closed" {
		t.Errorf("objectStore = %q, want closed", h.ObjectStore)
	}
	ts, err := time.Parse(time.RFC3339, h.Timestamp)
	if err != nil {
		t.Fatalf("timestamp %q: %v", h.Timestamp, err)
	}
	if time.Since(ts) > time.Minute {
		t.Errorf("timestamp %v is stale", ts)
	}
}

func TestHealth_NothingLoaded(t *testing.T) {
	t.Parallel()

	store := records.NewStore(records.NewSource(t.TempDir()))
	cfg := config.Defaults()
	env := &testEnv{router: NewRouter(NewHandler(store, &fakeFetcher{}, nil, cfg), cfg).SetupChi()}

	w := env.do(t, http.MethodGet, "/api/health", nil)
	var h models.HealthStatus
	decodeBody(t, w, &h)
	if h.Records != 0 || h.CurrentFile != nil {
		t.Errorf("health = %+v", h)
	}
}

func TestHealth_ObjectStoreState(t *testing.T) {
	t.Parallel()

	store := records.NewStore(records.NewSource(t.TempDir()))
	cfg := config.Defaults()
	fetcher := &fakeFetcher{state: "open"}
	env := &testEnv{router: NewRouter(NewHandler(store, fetcher, nil, cfg), cfg).SetupChi()}

	w := env.do(t, http.MethodGet, "/api/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 while the object store breaker is open", w.Code)
	}
	var h models.HealthStatus
	decodeBody(t, w, &h)
	if h.ObjectStore != "open" {
		t.Errorf("objectStore = %q, want open", h.ObjectStore)
	}
}
