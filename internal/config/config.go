// Eventlens - Labeled Event and Image Viewer Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventlens

// Package config loads Eventlens configuration.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: built-in values matching the historical deployment
//  2. Config File: optional YAML file (CONFIG_PATH, config.yaml, config.yml,
//     /etc/eventlens/config.yaml)
//  3. Environment Variables: an explicit mapping table, see envTransformFunc
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	store := records.NewStore(records.NewSource(cfg.Data.Dir))
package config

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Data     DataConfig     `koanf:"data"`
	Cache    CacheConfig    `koanf:"cache"`
	S3       S3Config       `koanf:"s3"`
	Fetch    FetchConfig    `koanf:"fetch"`
	API      APIConfig      `koanf:"api"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`

	// PublicURL is only used in the startup banner. Empty means derived from
	// host and port.
	PublicURL string `koanf:"public_url"`
}

// DataConfig locates the CSV source files.
type DataConfig struct {
	Dir string `koanf:"dir"`
}

// CacheConfig controls the local image cache directory.
type CacheConfig struct {
	Dir          string        `koanf:"dir"`
	MaxAge       time.Duration `koanf:"max_age"`       // Cache-Control max-age for served images
	ScanInterval time.Duration `koanf:"scan_interval"` // how often cache size gauges are refreshed
}

// S3Config configures the object store client. Credentials always come from
// the AWS default chain.
type S3Config struct {
	Region       string `koanf:"region"`
	Endpoint     string `koanf:"endpoint"`       // S3-compatible stores (MinIO, LocalStack)
	UsePathStyle bool   `koanf:"use_path_style"` // required by most S3-compatible stores
}

// FetchConfig tunes the batched image fetcher.
type FetchConfig struct {
	BatchSize         int           `koanf:"batch_size"`
	BatchPause        time.Duration `koanf:"batch_pause"`
	ItemTimeout       time.Duration `koanf:"item_timeout"`
	RequestsPerSecond float64       `koanf:"requests_per_second"` // 0 = unlimited
	BreakerEnabled    bool          `koanf:"breaker_enabled"`
}

// APIConfig holds pagination limits.
type APIConfig struct {
	DefaultPageSize int `koanf:"default_page_size"`
	MaxPageSize     int `koanf:"max_page_size"`
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig mirrors logging.Config.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Addr returns the host:port the HTTP server listens on.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// BaseURL returns the URL printed at startup.
func (c *Config) BaseURL() string {
	if c.Server.PublicURL != "" {
		return c.Server.PublicURL
	}
	host := c.Server.Host
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return fmt.Sprintf("http://%s", net.JoinHostPort(host, strconv.Itoa(c.Server.Port)))
}

// Load reads configuration from defaults, an optional config file and the
// environment, then validates it.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
