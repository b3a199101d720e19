// Eventlens - Labeled Event and Image Viewer Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventlens

// Package testinfra starts containers for integration tests.
//
// Everything here is behind the integration build tag:
//
//	go test -tags integration ./internal/fetcher/...
//
// # MinIO Container
//
// MinIOContainer runs an S3-compatible store so the S3 client can be tested
// against a real wire protocol:
//
//	minio := testinfra.StartMinIO(t)
//	cfg := config.S3Config{Region: minio.Region, Endpoint: minio.Endpoint, UsePathStyle: true}
//
// Tests are skipped when no container provider is healthy. The first run pulls the
// image and needs network access.
package testinfra
