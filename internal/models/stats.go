// Eventlens - Labeled Event and Image Viewer Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventlens

package models

// TimeRange holds the first and last record timestamps in file order. Both
// are nil for an empty dataset.
type TimeRange struct {
	Start *string `json:"start"`
	End   *string `json:"end"`
}

// Stats is the dataset summary served by /api/stats.
type Stats struct {
	TotalRecords    int       `json:"totalRecords"`
	CurrentFile     *string   `json:"currentFile"`
	TimeRange       TimeRange `json:"timeRange"`
	AverageDetScore int       `json:"averageDetScore"`
}

// HealthStatus is the /api/health response.
type HealthStatus struct {
	Status      string  `json:"status"`
	Records     int     `json:"records"`
	CurrentFile *string `json:"currentFile"`
	Timestamp   string  `json:"timestamp"`   // RFC3339 with milliseconds, UTC
	ObjectStore string  `json:"objectStore"` // breaker state: closed, half-open, open or disabled
}
