// Eventlens - Labeled Event and Image Viewer Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventlens

package records

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var (
	// ErrSourceDirMissing is returned when the CSV directory does not exist.
	ErrSourceDirMissing = errors.New("CSV directory not found")

	// ErrNoSourceFiles is returned when the CSV directory has no .csv files.
	ErrNoSourceFiles = errors.New("no CSV files found in csv directory")

	// ErrFileNotFound is returned when a selector does not name a listed file.
	ErrFileNotFound = errors.New("CSV file not found")
)

// IsNotFound reports whether err is one of the not-found conditions of this
// package.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrSourceDirMissing) ||
		errors.Is(err, ErrNoSourceFiles) ||
		errors.Is(err, ErrFileNotFound)
}

// Source is a directory of CSV files.
type Source struct {
	dir string
}

// NewSource returns a Source reading from dir.
func NewSource(dir string) *Source {
	return &Source{dir: dir}
}

// Dir returns the source directory.
func (s *Source) Dir() string {
	return s.dir
}

// List returns the names of all regular files in the directory with a .csv
// extension (any case), sorted by name.
func (s *Source) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceDirMissing, s.dir)
		}
		return nil, fmt.Errorf("read CSV directory %s: %w", s.dir, err)
	}

	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			continue
		}
		files = append(files, e.Name())
	}
	sort.Strings(files)
	return files, nil
}

// Resolve maps a selector to a listed file name. An empty selector picks the
// first file. Only exact names from List are accepted, which rules out any
// path traversal.
func (s *Source) Resolve(selector string) (string, error) {
	files, err := s.List()
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", ErrNoSourceFiles
	}
	if selector == "" {
		return files[0], nil
	}
	for _, f := range files {
		if f == selector {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrFileNotFound, selector)
}

// open opens a file previously returned by Resolve.
func (s *Source) open(name string) (*os.File, error) {
	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, name)
		}
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	return f, nil
}
