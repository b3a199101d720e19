// Eventlens - Labeled Event and Image Viewer Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventlens

package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/tomtom215/eventlens/internal/logging"
)

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateS3(); err != nil {
		return err
	}
	if err := c.validateFetch(); err != nil {
		return err
	}
	if err := c.validateAPI(); err != nil {
		return err
	}
	if err := c.validateRateLimits(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Data.Dir == "" {
		return fmt.Errorf("CSV_DIR is required")
	}
	if c.Cache.Dir == "" {
		return fmt.Errorf("IMAGE_CACHE_DIR is required")
	}
	if c.Cache.MaxAge < 0 {
		return fmt.Errorf("IMAGE_CACHE_MAX_AGE must not be negative")
	}
	if c.Cache.ScanInterval <= 0 {
		return fmt.Errorf("CACHE_SCAN_INTERVAL must be positive")
	}
	return nil
}

func (c *Config) validateS3() error {
	if c.S3.Region == "" {
		return fmt.Errorf("AWS_REGION is required")
	}
	if c.S3.Endpoint == "" {
		return nil
	}
	u, err := url.Parse(c.S3.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("S3_ENDPOINT must be an http(s) URL, got %q", c.S3.Endpoint)
	}
	return nil
}

// Fetch bounds
const (
	minFetchBatchSize = 1
	maxFetchBatchSize = 64
)

func (c *Config) validateFetch() error {
	if c.Fetch.BatchSize < minFetchBatchSize || c.Fetch.BatchSize > maxFetchBatchSize {
		return fmt.Errorf("FETCH_BATCH_SIZE must be between %d and %d", minFetchBatchSize, maxFetchBatchSize)
	}
	if c.Fetch.BatchPause < 0 {
		return fmt.Errorf("FETCH_BATCH_PAUSE must not be negative")
	}
	if c.Fetch.ItemTimeout <= 0 {
		return fmt.Errorf("FETCH_ITEM_TIMEOUT must be positive")
	}
	if c.Fetch.RequestsPerSecond < 0 {
		return fmt.Errorf("FETCH_REQUESTS_PER_SECOND must not be negative")
	}
	return nil
}

func (c *Config) validateAPI() error {
	if c.API.DefaultPageSize < 1 {
		return fmt.Errorf("API_DEFAULT_PAGE_SIZE must be at least 1")
	}
	if c.API.MaxPageSize < c.API.DefaultPageSize {
		return fmt.Errorf("API_MAX_PAGE_SIZE must be >= API_DEFAULT_PAGE_SIZE")
	}
	return nil
}

// Rate limit constants
const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error, disabled")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// HasWildcardCORS reports whether any origin is allowed.
func (c *Config) HasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}
