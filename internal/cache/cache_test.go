// Eventlens - Labeled Event and Image Viewer Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventlens

package cache

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// failingReader returns some bytes and then an error.
type failingReader struct {
	data []byte
	done bool
}

func (r *failingReader) Read(p []byte) (int, error) {
	if r.done {
		return 0, errors.New("connection reset")
	}
	r.done = true
	return copy(p, r.data), nil
}

func newDir(t *testing.T) *Dir {
	t.Helper()
	d := New(filepath.Join(t.TempDir(), "images_cache"))
	if err := d.Ensure(); err != nil {
		t.Fatalf("Ensure() error = %v", err)
	}
	return d
}

func TestEnsure_CreatesAndIsIdempotent(t *testing.T) {
	t.Parallel()

	root := filepath.Join(t.TempDir(), "a", "b")
	d := New(root)
	for i := 0; i < 2; i++ {
		if err := d.Ensure(); err != nil {
			t.Fatalf("Ensure() #%d error = %v", i, err)
		}
	}
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		t.Fatalf("cache dir not created: %v", err)
	}
	if d.Root() != root {
		t.Errorf("Root() = %q, want %q", d.Root(), root)
	}
}

func TestPath(t *testing.T) {
	t.Parallel()

	d := New("/var/cache/eventlens")
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{"frame.jpg", "/var/cache/eventlens/frame.jpg", false},
		{"..", "", true},
		{"../secret", "", true},
		{"a/b.jpg", "", true},
		{"", "", true},
		{tempPrefix + "123", "", true},
	}

	for _, tt := range tests {
		got, err := d.Path(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("Path(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, ErrInvalidName) {
			t.Errorf("Path(%q) error = %v, want ErrInvalidName", tt.name, err)
		}
		if got != tt.want {
			t.Errorf("Path(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestStoreAndOpen(t *testing.T) {
	t.Parallel()

	d := newDir(t)
	if d.Exists("frame.jpg") {
		t.Fatal("Exists() before Store should be false")
	}

	n, err := d.Store("frame.jpg", strings.NewReader("jpegbytes"))
	if err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	if n != int64(len("jpegbytes")) {
		t.Errorf("Store() wrote %d bytes, want %d", n, len("jpegbytes"))
	}
	if !d.Exists("frame.jpg") {
		t.Fatal("Exists() after Store should be true")
	}

	f, info, err := d.Open("frame.jpg")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer f.Close()
	body, _ := io.ReadAll(f)
	if string(body) != "jpegbytes" || info.Size() != 9 {
		t.Errorf("Open() = %q (%d bytes)", body, info.Size())
	}
	if info.Mode().Perm() != 0o644 {
		t.Errorf("mode = %v, want 0644", info.Mode().Perm())
	}
}

func TestStore_FailureLeavesNoFile(t *testing.T) {
	t.Parallel()

	d := newDir(t)
	_, err := d.Store("partial.jpg", &failingReader{data: []byte("half")})
	if err == nil {
		t.Fatal("Store() expected error from failing reader")
	}
	if d.Exists("partial.jpg") {
		t.Error("failed Store must not leave the target file")
	}

	entries, err := os.ReadDir(d.Root())
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("cache dir should be empty after failure, found %d entries", len(entries))
	}
}

func TestStore_InvalidName(t *testing.T) {
	t.Parallel()

	d := newDir(t)
	if _, err := d.Store("../escape.jpg", strings.NewReader("x")); !errors.Is(err, ErrInvalidName) {
		t.Errorf("Store() error = %v, want ErrInvalidName", err)
	}
}

func TestOpen_NotFound(t *testing.T) {
	t.Parallel()

	d := newDir(t)
	if err := os.Mkdir(filepath.Join(d.Root(), "subdir"), 0o755); err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"missing.jpg", "subdir", "../cache_test.go", ""} {
		if _, _, err := d.Open(name); !errors.Is(err, ErrNotFound) {
			t.Errorf("Open(%q) error = %v, want ErrNotFound", name, err)
		}
	}
}

func TestUsage(t *testing.T) {
	t.Parallel()

	d := newDir(t)
	for name, body := range map[string]string{"a.jpg": "aaaa", "b.jpg": "bb"} {
		if _, err := d.Store(name, strings.NewReader(body)); err != nil {
			t.Fatal(err)
		}
	}
	// an abandoned temp file and a directory are not counted
	if err := os.WriteFile(filepath.Join(d.Root(), tempPrefix+"999"), []byte("zzzzzz"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(d.Root(), "nested"), 0o755); err != nil {
		t.Fatal(err)
	}

	files, size, err := d.Usage()
	if err != nil {
		t.Fatalf("Usage() error = %v", err)
	}
	if files != 2 || size != 6 {
		t.Errorf("Usage() = %d files / %d bytes, want 2 / 6", files, size)
	}
}

func TestUsage_MissingDir(t *testing.T) {
	t.Parallel()

	d := New(filepath.Join(t.TempDir(), "never-created"))
	if _, _, err := d.Usage(); err == nil {
		t.Error("Usage() on missing dir should fail")
	}
}
