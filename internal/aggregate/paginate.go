// Eventlens - Labeled Event and Image Viewer Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventlens

package aggregate

import "github.com/tomtom215/eventlens/internal/models"

// Paginate returns the 1-based page of recs with limit entries per page.
// Pages past the end are empty. page and limit must be positive.
func Paginate(recs []models.Record, page, limit int) models.RecordPage {
	count := len(recs)
	total := count / limit
	if count%limit != 0 {
		total++
	}

	// Compare page numbers before multiplying so huge pages cannot wrap.
	start := count
	if page-1 < total {
		start = (page - 1) * limit
	}
	end := start + min(limit, count-start)

	return models.RecordPage{
		Data: recs[start:end:end],
		Pagination: models.Pagination{
			Current: page,
			Total:   total,
			Count:   count,
			Limit:   limit,
		},
	}
}
