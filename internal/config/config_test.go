// Eventlens - Labeled Event and Image Viewer Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventlens

package config

import "testing"

func TestConfigAddr(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	if got := cfg.Addr(); got != "0.0.0.0:8089" {
		t.Errorf("Addr() = %q, want 0.0.0.0:8089", got)
	}

	cfg.Server.Host = "::1"
	if got := cfg.Addr(); got != "[::1]:8089" {
		t.Errorf("Addr() = %q, want [::1]:8089", got)
	}
}

func TestConfigBaseURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		host      string
		publicURL string
		want      string
	}{
		{"wildcard host", "0.0.0.0", "", "http://localhost:8089"},
		{"explicit host", "10.0.0.5", "", "http://10.0.0.5:8089"},
		{"public url wins", "0.0.0.0", "https://events.example", "https://events.example"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := defaultConfig()
			cfg.Server.Host = tt.host
			cfg.Server.PublicURL = tt.publicURL
			if got := cfg.BaseURL(); got != tt.want {
				t.Errorf("BaseURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHasWildcardCORS(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	if !cfg.HasWildcardCORS() {
		t.Error("default CORS origins should be a wildcard")
	}
	cfg.Security.CORSOrigins = []string{"https://viewer.example"}
	if cfg.HasWildcardCORS() {
		t.Error("explicit origin list is not a wildcard")
	}
}

func TestValidateFetch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"negative pause", func(c *Config) { c.Fetch.BatchPause = -1 }, true},
		{"zero item timeout", func(c *Config) { c.Fetch.ItemTimeout = 0 }, true},
		{"negative rps", func(c *Config) { c.Fetch.RequestsPerSecond = -1 }, true},
		{"batch too large", func(c *Config) { c.Fetch.BatchSize = maxFetchBatchSize + 1 }, true},
		{"empty region", func(c *Config) { c.S3.Region = "" }, true},
		{"empty csv dir", func(c *Config) { c.Data.Dir = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
