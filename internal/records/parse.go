// Eventlens - Labeled Event and Image Viewer Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventlens

package records

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"unicode"

	"github.com/tomtom215/eventlens/internal/models"
)

// Column names recognized in the header row.
const (
	colUUID             = "uuid"
	colTimestamp        = "ts"
	colEventSeq         = "event_seq"
	colFullS3Path       = "full_s3_path"
	colPayloadTimestamp = "payload_timestamp"
	colMarkSummary      = "mark_summary"
	colClass            = "cls"
	colCoordinateArray  = "coordinate_array"
	colRawPayload       = "raw_payload"
	colIsRoll           = "isroll"
)

// rollLiteral is the only value of the isroll column that means true.
const rollLiteral = "True"

// ctxCheckEvery is how many rows are parsed between context checks.
const ctxCheckEvery = 1024

const utf8BOM = "\uFEFF"

// ParseRecords reads a CSV document with a header row. Unknown columns are
// ignored, missing columns yield empty strings and rows may have any number
// of fields. An empty document yields no records.
func ParseRecords(ctx context.Context, r io.Reader) ([]models.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return []models.Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read CSV header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		index[strings.TrimSpace(name)] = i
	}

	records := make([]models.Record, 0, 1024)
	for n := 0; ; n++ {
		if n%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read CSV row %d: %w", n+2, err)
		}

		field := func(name string) string {
			if i, ok := index[name]; ok && i < len(row) {
				return row[i]
			}
			return ""
		}

		records = append(records, models.Record{
			UUID:             field(colUUID),
			Timestamp:        field(colTimestamp),
			EventSeq:         ParseLeadingInt(field(colEventSeq)),
			FullS3Path:       field(colFullS3Path),
			PayloadTimestamp: field(colPayloadTimestamp),
			MarkSummary:      field(colMarkSummary),
			Class:            field(colClass),
			CoordinateArray:  field(colCoordinateArray),
			RawPayload:       field(colRawPayload),
			IsRoll:           field(colIsRoll) == rollLiteral,
		})
	}
	return records, nil
}

// ParseLeadingInt parses the integer prefix of s the way JavaScript's
// parseInt does with no radix: leading whitespace is skipped, an optional
// sign and an optional 0x prefix are accepted, and parsing stops at the first
// non-digit. It returns nil when no digits are found. Values outside the
// int64 range saturate at math.MaxInt64 or math.MinInt64, keeping the sign
// and ordering of the oversized number.
//
//	"12"    -> 12
//	" -7px" -> -7
//	"0x1A"  -> 26
//	"3.9"   -> 3
//	"1e30"  -> 1
//	"abc"   -> nil
func ParseLeadingInt(s string) *int64 {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}

	base := uint64(10)
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		base = 16
		s = s[2:]
	}

	var (
		v      uint64
		digits int
	)
	for i := 0; i < len(s); i++ {
		d, ok := digitValue(s[i], base)
		if !ok {
			break
		}
		digits++
		if v > (math.MaxUint64-d)/base {
			v = math.MaxUint64
			continue
		}
		v = v*base + d
	}
	if digits == 0 {
		return nil
	}

	var out int64
	switch {
	case neg && v > uint64(math.MaxInt64):
		out = math.MinInt64
	case neg:
		out = -int64(v)
	case v > math.MaxInt64:
		out = math.MaxInt64
	default:
		out = int64(v)
	}
	return &out
}

func digitValue(c byte, base uint64) (uint64, bool) {
	var d uint64
	switch {
	case c >= '0' && c <= '9':
		d = uint64(c - '0')
	case c >= 'a' && c <= 'f':
		d = uint64(c-'a') + 10
	case c >= 'A' && c <= 'F':
		d = uint64(c-'A') + 10
	default:
		return 0, false
	}
	return d, d < base
}
