// Eventlens - Labeled Event and Image Viewer Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventlens

// Package aggregate derives event groups, orderings and summary statistics
// from loaded records. Every function is pure and safe to call concurrently
// on a shared record slice; inputs are never modified.
package aggregate

import (
	"cmp"
	"math"
	"slices"

	"github.com/tomtom215/eventlens/internal/models"
)

// GroupByIdentifier collapses records sharing a UUID into one group per
// UUID, in first-seen order. A group keeps the first record's sequence
// number and the union of the roll flags.
func GroupByIdentifier(recs []models.Record) []models.EventGroup {
	index := make(map[string]int)
	groups := make([]models.EventGroup, 0)

	for i := range recs {
		r := &recs[i]
		gi, ok := index[r.UUID]
		if !ok {
			gi = len(groups)
			index[r.UUID] = gi
			groups = append(groups, models.EventGroup{
				UUID:      r.UUID,
				EventSeq:  r.EventSeq,
				FirstTime: r.Timestamp,
				LastTime:  r.Timestamp,
			})
		}

		g := &groups[gi]
		g.Count++
		g.IsRoll = g.IsRoll || r.IsRoll
		if compareTime(r.Timestamp, g.FirstTime) < 0 {
			g.FirstTime = r.Timestamp
		}
		if compareTime(r.Timestamp, g.LastTime) > 0 {
			g.LastTime = r.Timestamp
		}
	}
	return groups
}

// SortGroupsBySeq sorts groups by ascending sequence number in place.
// Groups without a valid number go last; ties keep their order.
func SortGroupsBySeq(groups []models.EventGroup) {
	slices.SortStableFunc(groups, func(a, b models.EventGroup) int {
		return compareSeq(&a, &b)
	})
}

// SortChronological returns a copy of recs ordered by ascending timestamp,
// with ties broken by ascending sequence number.
func SortChronological(recs []models.Record) []models.Record {
	out := slices.Clone(recs)
	slices.SortStableFunc(out, func(a, b models.Record) int {
		if c := compareTime(a.Timestamp, b.Timestamp); c != 0 {
			return c
		}
		return compareSeq(&a, &b)
	})
	return out
}

type sequenced interface {
	HasSeq() bool
	Seq() int64
}

func compareSeq(a, b sequenced) int {
	switch {
	case !a.HasSeq() && !b.HasSeq():
		return 0
	case !a.HasSeq():
		return 1
	case !b.HasSeq():
		return -1
	default:
		return cmp.Compare(a.Seq(), b.Seq())
	}
}

// FilterByUUID returns the records with the given UUID in file order.
func FilterByUUID(recs []models.Record, uuid string) []models.Record {
	out := make([]models.Record, 0)
	for i := range recs {
		if recs[i].UUID == uuid {
			out = append(out, recs[i])
		}
	}
	return out
}

// AverageScore returns the mean detection score over records whose summary
// yields one, rounded half up. It is 0 when no record has a score.
func AverageScore(recs []models.Record) int {
	var (
		total float64
		n     int
	)
	for i := range recs {
		score, ok := DetScore(recs[i].MarkSummary)
		if !ok {
			continue
		}
		total += score
		n++
	}
	if n == 0 {
		return 0
	}
	return int(math.Floor(total/float64(n) + 0.5))
}

// TimeRange returns the timestamps of the first and last records in file
// order, or nils for an empty slice.
func TimeRange(recs []models.Record) models.TimeRange {
	if len(recs) == 0 {
		return models.TimeRange{}
	}
	start := recs[0].Timestamp
	end := recs[len(recs)-1].Timestamp
	return models.TimeRange{Start: &start, End: &end}
}

// Stats builds the dataset summary. file is empty when nothing is loaded.
func Stats(recs []models.Record, file string) models.Stats {
	s := models.Stats{
		TotalRecords:    len(recs),
		TimeRange:       TimeRange(recs),
		AverageDetScore: AverageScore(recs),
	}
	if file != "" {
		s.CurrentFile = &file
	}
	return s
}
