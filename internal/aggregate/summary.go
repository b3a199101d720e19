// Eventlens - Labeled Event and Image Viewer Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventlens

package aggregate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// ErrUnparsableSummary is returned when a mark summary is not a JSON array,
// even after quote substitution.
var ErrUnparsableSummary = errors.New("unparsable mark summary")

// ParseSummary decodes a mark summary. Summaries are written with Python
// style single quotes, so every ' is replaced with " before decoding.
//
// Known limitations of the substitution: an apostrophe inside a string
// value breaks the document, and Python literals (True, False, None) are
// not JSON. Such summaries return ErrUnparsableSummary and are skipped by
// AverageScore.
func ParseSummary(s string) ([]json.RawMessage, error) {
	var items []json.RawMessage
	if err := json.Unmarshal([]byte(strings.ReplaceAll(s, "'", `"`)), &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparsableSummary, err)
	}
	return items, nil
}

// DetScore returns the numeric detScore of the first summary element.
func DetScore(summary string) (float64, bool) {
	items, err := ParseSummary(summary)
	if err != nil || len(items) == 0 {
		return 0, false
	}

	var first struct {
		DetScore any `json:"detScore"`
	}
	if err := json.Unmarshal(items[0], &first); err != nil {
		return 0, false
	}
	score, ok := first.DetScore.(float64)
	return score, ok
}
