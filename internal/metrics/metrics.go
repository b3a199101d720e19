// Eventlens - Labeled Event and Image Viewer Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventlens

// Package metrics holds the Prometheus collectors for Eventlens. All
// collectors register on the default registry and are exposed at /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Fetch outcomes used as the "outcome" label.
const (
	OutcomeCached     = "cached"
	OutcomeDownloaded = "downloaded"
	OutcomeFailed     = "failed"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventlens_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "eventlens_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "eventlens_api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventlens_api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Dataset Metrics
	DatasetLoadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "eventlens_dataset_load_duration_seconds",
			Help:    "Time to read and parse a CSV source file",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	DatasetLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventlens_dataset_loads_total",
			Help: "Dataset load attempts by result",
		},
		[]string{"result"}, // "success", "failure"
	)

	DatasetRecords = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "eventlens_dataset_records",
			Help: "Number of records in the active dataset",
		},
	)

	DatasetLastLoad = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "eventlens_dataset_last_load_timestamp_seconds",
			Help: "Unix time of the last successful dataset load",
		},
	)

	// Image Fetch Metrics
	ImageFetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventlens_image_fetch_total",
			Help: "Image fetch results by outcome",
		},
		[]string{"outcome"},
	)

	ImageFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "eventlens_image_fetch_duration_seconds",
			Help:    "Duration of object store downloads in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	ImageFetchBytes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "eventlens_image_fetch_bytes_total",
			Help: "Bytes written to the image cache",
		},
	)

	ImageFetchInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "eventlens_image_fetch_in_flight",
			Help: "Object store downloads currently running",
		},
	)

	ImageServeTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventlens_image_serve_total",
			Help: "Image endpoint lookups by result",
		},
		[]string{"result"}, // "hit", "miss"
	)

	ImageCacheFiles = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "eventlens_image_cache_files",
			Help: "Number of files in the image cache at the last scan",
		},
	)

	ImageCacheBytes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "eventlens_image_cache_bytes",
			Help: "Total size of the image cache in bytes at the last scan",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "eventlens_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventlens_circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "eventlens_circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventlens_circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit counts a request rejected by the rate limiter.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordDatasetLoad records one load attempt. The records gauge only moves on
// success because a failed load leaves the previous dataset active.
func RecordDatasetLoad(duration time.Duration, records int, err error) {
	DatasetLoadDuration.Observe(duration.Seconds())
	if err != nil {
		DatasetLoadsTotal.WithLabelValues("failure").Inc()
		return
	}
	DatasetLoadsTotal.WithLabelValues("success").Inc()
	DatasetRecords.Set(float64(records))
	DatasetLastLoad.Set(float64(time.Now().Unix()))
}

// RecordImageFetch records one per-item fetch result. Duration and bytes are
// only observed for real downloads.
func RecordImageFetch(outcome string, duration time.Duration, bytes int64) {
	ImageFetchTotal.WithLabelValues(outcome).Inc()
	if outcome != OutcomeDownloaded {
		return
	}
	ImageFetchDuration.Observe(duration.Seconds())
	ImageFetchBytes.Add(float64(bytes))
}

// TrackFetchInFlight tracks running object store downloads
func TrackFetchInFlight(inc bool) {
	if inc {
		ImageFetchInFlight.Inc()
	} else {
		ImageFetchInFlight.Dec()
	}
}

// RecordImageServe records an image endpoint lookup.
func RecordImageServe(found bool) {
	if found {
		ImageServeTotal.WithLabelValues("hit").Inc()
		return
	}
	ImageServeTotal.WithLabelValues("miss").Inc()
}

// RecordCacheUsage publishes the result of an image cache scan.
func RecordCacheUsage(files int, bytes int64) {
	ImageCacheFiles.Set(float64(files))
	ImageCacheBytes.Set(float64(bytes))
}
