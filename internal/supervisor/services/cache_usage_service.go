// Eventlens - Labeled Event and Image Viewer Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventlens

package services

import (
	"context"
	"time"

	"github.com/tomtom215/eventlens/internal/logging"
	"github.com/tomtom215/eventlens/internal/metrics"
)

// UsageReporter reports the number and total size of cached files.
// Satisfied by *cache.Dir.
type UsageReporter interface {
	Usage() (files int, bytes int64, err error)
}

// CacheUsageService periodically measures the image cache and publishes the
// result as gauges. The cache has no eviction, so these gauges are the way
// to notice it growing.
type CacheUsageService struct {
	cache    UsageReporter
	interval time.Duration
	name     string
}

// NewCacheUsageService scans cache every interval. A non-positive interval
// means five minutes.
func NewCacheUsageService(cache UsageReporter, interval time.Duration) *CacheUsageService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &CacheUsageService{cache: cache, interval: interval, name: "cache-usage"}
}

// Serve implements suture.Service. It scans once immediately and then on
// every tick. Scan errors are logged and do not stop the service.
func (s *CacheUsageService) Serve(ctx context.Context) error {
	s.scan()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.scan()
		}
	}
}

func (s *CacheUsageService) scan() {
	files, bytes, err := s.cache.Usage()
	if err != nil {
		logging.Warn().Err(err).Msg("Image cache scan failed")
		return
	}
	metrics.RecordCacheUsage(files, bytes)
	logging.Debug().Int("files", files).Int64("bytes", bytes).Msg("Image cache scanned")
}

// String implements fmt.Stringer.
func (s *CacheUsageService) String() string {
	return s.name
}
