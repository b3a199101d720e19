// Eventlens - Labeled Event and Image Viewer Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventlens

// Package cache manages the flat on-disk image cache.
//
// Files are named by the final segment of their object store key and are
// never updated or evicted: existence is the only consistency check. Writes
// go to a hidden temp file in the same directory and are renamed into place,
// so readers never observe a partial image.
//
//	dir := cache.New(cfg.Cache.Dir)
//	if err := dir.Ensure(); err != nil { ... }
//	n, err := dir.Store("frame_0001.jpg", body)
//	f, info, err := dir.Open("frame_0001.jpg")
package cache

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tomtom215/eventlens/internal/validation"
)

var (
	// ErrNotFound is returned when no cached file has the requested name.
	ErrNotFound = errors.New("cached file not found")

	// ErrInvalidName is returned for names that are not a single plain path
	// segment, or that collide with in-progress temp files.
	ErrInvalidName = errors.New("invalid cache file name")
)

// tempPrefix marks in-progress downloads. Names with this prefix are never
// served and are skipped by Usage.
const tempPrefix = ".eventlens-"

// Dir is a cache directory. It is safe for concurrent use.
type Dir struct {
	root string
}

// New returns a Dir rooted at root. The directory is not created until Ensure.
func New(root string) *Dir {
	return &Dir{root: root}
}

// Root returns the directory path.
func (d *Dir) Root() string {
	return d.root
}

// Ensure creates the cache directory if it does not exist.
func (d *Dir) Ensure() error {
	if err := os.MkdirAll(d.root, 0o755); err != nil {
		return fmt.Errorf("create cache dir %s: %w", d.root, err)
	}
	return nil
}

// ValidName reports whether name can be stored in or served from the cache.
func ValidName(name string) bool {
	return validation.IsBasename(name) && !strings.HasPrefix(name, tempPrefix)
}

// Path returns the absolute location of name inside the cache.
func (d *Dir) Path(name string) (string, error) {
	if !ValidName(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return filepath.Join(d.root, name), nil
}

// Exists reports whether a regular file called name is cached.
func (d *Dir) Exists(name string) bool {
	path, err := d.Path(name)
	if err != nil {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Open opens a cached file for reading. Missing files, directories and
// invalid names all report ErrNotFound so callers can map it to a 404.
func (d *Dir) Open(name string) (*os.File, fs.FileInfo, error) {
	path, err := d.Path(name)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, nil, fmt.Errorf("open cached file %s: %w", name, err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, nil, fmt.Errorf("stat cached file %s: %w", name, err)
	}
	if !info.Mode().IsRegular() {
		_ = f.Close()
		return nil, nil, fmt.Errorf("%w: %s is not a regular file", ErrNotFound, name)
	}
	return f, info, nil
}

// Store copies r into the cache under name and returns the number of bytes
// written. The file only becomes visible once fully written; on any error the
// temp file is removed and no file called name is created.
func (d *Dir) Store(name string, r io.Reader) (n int64, err error) {
	path, err := d.Path(name)
	if err != nil {
		return 0, err
	}

	tmp, err := os.CreateTemp(d.root, tempPrefix+"*")
	if err != nil {
		return 0, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	n, err = io.Copy(tmp, r)
	if err != nil {
		return n, fmt.Errorf("write %s: %w", name, err)
	}
	if err = tmp.Close(); err != nil {
		return n, fmt.Errorf("close %s: %w", name, err)
	}
	// CreateTemp uses 0600; cached images are world readable like the
	// rest of the directory.
	if err = os.Chmod(tmpPath, 0o644); err != nil {
		return n, fmt.Errorf("chmod %s: %w", name, err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return n, fmt.Errorf("rename %s: %w", name, err)
	}
	return n, nil
}

// Usage counts cached files and their total size. Temp files and
// subdirectories are ignored.
func (d *Dir) Usage() (files int, bytes int64, err error) {
	entries, err := os.ReadDir(d.root)
	if err != nil {
		return 0, 0, fmt.Errorf("read cache dir: %w", err)
	}
	for _, e := range entries {
		if !e.Type().IsRegular() || strings.HasPrefix(e.Name(), tempPrefix) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			// removed between ReadDir and Info
			continue
		}
		files++
		bytes += info.Size()
	}
	return files, bytes, nil
}
