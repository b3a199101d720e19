// Eventlens - Labeled Event and Image Viewer Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventlens

/*
Package records owns the in-memory dataset parsed from one CSV file.

A Store holds exactly one Dataset at a time. Loading a file parses it fully
before publishing, and publication is a single atomic pointer swap, so a
reader either sees the previous dataset or the new one and never a mix of
file name and records from different loads:

	store := records.NewStore(records.NewSource(cfg.Data.Dir))
	if _, err := store.Load(ctx, ""); err != nil {
		logging.Warn().Err(err).Msg("Starting with an empty dataset")
	}
	ds := store.Current()

Loads are serialized; reads never block.
*/
package records

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tomtom215/eventlens/internal/logging"
	"github.com/tomtom215/eventlens/internal/metrics"
	"github.com/tomtom215/eventlens/internal/models"
)

// Dataset is an immutable snapshot of one loaded file. Callers must not
// modify Records.
type Dataset struct {
	File     string
	Records  []models.Record
	LoadedAt time.Time
}

// Loaded reports whether the dataset came from a file.
func (d *Dataset) Loaded() bool {
	return d.File != ""
}

var emptyDataset = &Dataset{Records: []models.Record{}}

// Store holds the active dataset.
type Store struct {
	source  *Source
	current atomic.Pointer[Dataset]
	loadMu  sync.Mutex
}

// NewStore returns a Store with an empty dataset.
func NewStore(source *Source) *Store {
	s := &Store{source: source}
	s.current.Store(emptyDataset)
	return s
}

// Source returns the store's CSV source.
func (s *Store) Source() *Source {
	return s.source
}

// Load parses the file named by selector and makes it the active dataset.
// An empty selector loads the first listed file. On error the previous
// dataset stays active.
func (s *Store) Load(ctx context.Context, selector string) (*Dataset, error) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	start := time.Now()
	ds, err := s.load(ctx, selector)
	metrics.RecordDatasetLoad(time.Since(start), recordCount(ds), err)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).
			Str("dir", s.source.Dir()).
			Str("selector", selector).
			Msg("Dataset load failed")
		return nil, err
	}

	s.current.Store(ds)
	logging.Ctx(ctx).Info().
		Str("file", ds.File).
		Int("records", len(ds.Records)).
		Dur("duration", time.Since(start)).
		Msg("Dataset loaded")
	return ds, nil
}

func (s *Store) load(ctx context.Context, selector string) (*Dataset, error) {
	name, err := s.source.Resolve(selector)
	if err != nil {
		return nil, err
	}

	f, err := s.source.open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	recs, err := ParseRecords(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	return &Dataset{File: name, Records: recs, LoadedAt: time.Now()}, nil
}

func recordCount(ds *Dataset) int {
	if ds == nil {
		return 0
	}
	return len(ds.Records)
}

// Current returns the active dataset. It is never nil.
func (s *Store) Current() *Dataset {
	return s.current.Load()
}

// Records returns the active records.
func (s *Store) Records() []models.Record {
	return s.Current().Records
}

// CurrentFile returns the active file name and whether one is loaded.
func (s *Store) CurrentFile() (string, bool) {
	ds := s.Current()
	return ds.File, ds.Loaded()
}
