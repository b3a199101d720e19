// Eventlens - Labeled Event and Image Viewer Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventlens

package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/eventlens/internal/cache"
	"github.com/tomtom215/eventlens/internal/config"
	"github.com/tomtom215/eventlens/internal/models"
	"github.com/tomtom215/eventlens/internal/records"
)

const testCSV = "uuid,ts,event_seq,full_s3_path,payload_timestamp,mark_summary,cls,coordinate_array,raw_payload,isroll\n" +
	"E2,2024-01-01 10:00:05,2,s3://bucket/a/img1.jpg,p,\"[{'detScore': 80}]\",car,,,False\n" +
	"E1,2024-01-01 10:00:02,1,s3://bucket/a/img2.jpg,p,\"[{'detScore': 91}]\",car,,,True\n" +
	"E2,2024-01-01 10:00:01,3,s3://bucket/a/img3.jpg,p,bad,bus,,,False\n" +
	"E3,2024-01-01 10:00:09,,s3://bucket/a/img4.jpg,p,,bus,,,False\n"

// fakeFetcher records the references it was asked for and fails those in
// failing.
type fakeFetcher struct {
	mu      sync.Mutex
	calls   [][]string
	failing map[string]bool
	state   string
}

func (f *fakeFetcher) BreakerState() string {
	if f.state == "" {
		return "closed"
	}
	return f.state
}

func (f *fakeFetcher) FetchAll(_ context.Context, refs []string) []models.FetchResult {
	f.mu.Lock()
	f.calls = append(f.calls, refs)
	f.mu.Unlock()

	out := make([]models.FetchResult, len(refs))
	for i, ref := range refs {
		if f.failing[ref] {
			out[i] = models.FetchResult{S3Path: ref, Error: "boom"}
			continue
		}
		out[i] = models.FetchResult{Success: true, S3Path: ref, Filename: filepath.Base(ref)}
	}
	return out
}

type testEnv struct {
	handler *Handler
	router  http.Handler
	store   *records.Store
	cache   *cache.Dir
	fetcher *fakeFetcher
	csvDir  string
	cfg     *config.Config
}

// newTestEnv builds a handler over a temp CSV directory holding events.csv
// (loaded) and other.csv.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	csvDir := t.TempDir()
	writeFile(t, csvDir, "events.csv", testCSV)
	writeFile(t, csvDir, "other.csv", "uuid,ts\nX,2024-02-01\n")

	dir := cache.New(t.TempDir())
	if err := dir.Ensure(); err != nil {
		t.Fatal(err)
	}

	store := records.NewStore(records.NewSource(csvDir))
	if _, err := store.Load(context.Background(), "events.csv"); err != nil {
		t.Fatal(err)
	}

	cfg := config.Defaults()
	cfg.Security.RateLimitDisabled = true

	f := &fakeFetcher{failing: map[string]bool{}}
	h := NewHandler(store, f, dir, cfg)
	return &testEnv{
		handler: h,
		router:  NewRouter(h, cfg).SetupChi(),
		store:   store,
		cache:   dir,
		fetcher: f,
		csvDir:  csvDir,
		cfg:     cfg,
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func (e *testEnv) do(t *testing.T, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}

func assertError(t *testing.T, w *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	if w.Code != status {
		t.Fatalf("status = %d, want %d (body %s)", w.Code, status, w.Body.String())
	}
	var resp models.ErrorResponse
	decodeBody(t, w, &resp)
	if resp.Code != code {
		t.Errorf("code = %q, want %q", resp.Code, code)
	}
	if resp.Error == "" {
		t.Error("error message is empty")
	}
}
