// Eventlens - Labeled Event and Image Viewer Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventlens

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/tomtom215/eventlens/internal/models"
)

func TestRootCmd_Subcommands(t *testing.T) {
	t.Parallel()

	root := newRootCmd()
	for _, name := range []string{"serve", "files", "prefetch"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered (err=%v)", name, err)
		}
	}
	if root.RunE == nil {
		t.Error("root command must default to serve")
	}

	prefetch, _, _ := root.Find([]string{"prefetch"})
	if prefetch.Flags().Lookup("file") == nil {
		t.Error("prefetch is missing --file")
	}
}

func TestDistinctPaths(t *testing.T) {
	t.Parallel()

	recs := []models.Record{
		{FullS3Path: "s3://b/a.jpg"},
		{FullS3Path: ""},
		{FullS3Path: "s3://b/c.jpg"},
		{FullS3Path: "s3://b/a.jpg"},
	}
	got := distinctPaths(recs)
	want := []string{"s3://b/a.jpg", "s3://b/c.jpg"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("distinctPaths() = %v, want %v", got, want)
	}
	if got := distinctPaths(nil); len(got) != 0 {
		t.Errorf("distinctPaths(nil) = %v", got)
	}
}

func TestReportPrefetch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		results []models.FetchResult
		summary string
		wantErr bool
	}{
		{
			name: "all succeed",
			results: []models.FetchResult{
				{Success: true, S3Path: "s3://b/a.jpg"},
				{Success: true, S3Path: "s3://b/c.jpg", Cached: true},
			},
			summary: "events.csv: 2 images, 1 downloaded, 1 already cached, 0 failed",
		},
		{
			name: "one failure",
			results: []models.FetchResult{
				{Success: true, S3Path: "s3://b/a.jpg"},
				{Success: false, S3Path: "s3://b/x.jpg", Error: "object not found"},
			},
			summary: "events.csv: 2 images, 1 downloaded, 0 already cached, 1 failed",
			wantErr: true,
		},
		{
			name:    "nothing to fetch",
			summary: "events.csv: 0 images, 0 downloaded, 0 already cached, 0 failed",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			err := reportPrefetch(&buf, "events.csv", tt.results)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !strings.Contains(buf.String(), tt.summary) {
				t.Errorf("output %q does not contain %q", buf.String(), tt.summary)
			}
			if tt.wantErr && !strings.Contains(buf.String(), "FAIL s3://b/x.jpg: object not found") {
				t.Errorf("failure line missing from %q", buf.String())
			}
		})
	}
}

// Not parallel: configuration comes from the environment.
func TestFilesCmd(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.csv", "a.CSV", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("uuid\n"), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	t.Setenv("CSV_DIR", dir)
	t.Setenv("LOG_LEVEL", "error")

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"files"})

	if err := root.Execute(); err != nil {
		t.Fatalf("files: %v", err)
	}
	if got, want := out.String(), "a.CSV\nb.csv\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}
