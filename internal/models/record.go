// Eventlens - Labeled Event and Image Viewer Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventlens

// Package models defines the records, aggregates and API bodies exchanged
// between the Eventlens packages and the viewer frontend. JSON field names
// are part of the frontend contract and must not change.
package models

// Record is one CSV row. Records are immutable once loaded; handlers share
// the same slice across requests.
type Record struct {
	UUID             string `json:"uuid"`
	Timestamp        string `json:"ts"`
	EventSeq         *int64 `json:"event_seq"` // nil when the source value is not an integer; serialized as null
	FullS3Path       string `json:"full_s3_path"`
	PayloadTimestamp string `json:"payload_timestamp"`
	MarkSummary      string `json:"mark_summary"`
	Class            string `json:"cls"`
	CoordinateArray  string `json:"coordinate_array"`
	RawPayload       string `json:"raw_payload"`
	IsRoll           bool   `json:"isroll"`
}

// HasSeq reports whether the record carries a valid sequence number.
func (r *Record) HasSeq() bool {
	return r.EventSeq != nil
}

// Seq returns the sequence number, or 0 when invalid.
func (r *Record) Seq() int64 {
	if r.EventSeq == nil {
		return 0
	}
	return *r.EventSeq
}

// EventGroup summarizes all records that share a UUID.
type EventGroup struct {
	UUID      string `json:"uuid"`
	EventSeq  *int64 `json:"event_seq"` // first record's sequence number
	Count     int    `json:"count"`
	FirstTime string `json:"firstTime"`
	LastTime  string `json:"lastTime"`
	IsRoll    bool   `json:"isroll"` // true if any member record is a roll
}

// HasSeq reports whether the group's first record has a valid sequence number.
func (g *EventGroup) HasSeq() bool {
	return g.EventSeq != nil
}

// Seq returns the group's sequence number, or 0 when invalid.
func (g *EventGroup) Seq() int64 {
	if g.EventSeq == nil {
		return 0
	}
	return *g.EventSeq
}

// FetchResult is the per-reference outcome of an image fetch batch.
// Filename, LocalPath and Cached are set on success, Error on failure.
type FetchResult struct {
	Success   bool   `json:"success"`
	S3Path    string `json:"s3Path"`
	Filename  string `json:"filename,omitempty"`
	LocalPath string `json:"localPath,omitempty"`
	Cached    bool   `json:"cached"`
	Error     string `json:"error,omitempty"`
}
