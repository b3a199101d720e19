// Eventlens - Labeled Event and Image Viewer Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventlens

package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/eventlens/internal/aggregate"
	"github.com/tomtom215/eventlens/internal/logging"
	"github.com/tomtom215/eventlens/internal/models"
	"github.com/tomtom215/eventlens/internal/records"
	"github.com/tomtom215/eventlens/internal/validation"
)

// Files lists the CSV files available for loading.
//
// A missing source directory is reported as an empty list so the viewer can
// still render.
func (h *Handler) Files(w http.ResponseWriter, r *http.Request) {
	files, err := h.store.Source().List()
	if err != nil {
		if !errors.Is(err, records.ErrSourceDirMissing) {
			respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "Failed to list CSV files", err)
			return
		}
		logging.Ctx(r.Context()).Warn().Err(err).Msg("CSV directory missing")
		files = []string{}
	}

	respondJSON(w, http.StatusOK, models.FilesResponse{
		Files:       files,
		CurrentFile: currentFilePtr(h.store.Current()),
	})
}

// LoadFile replaces the active dataset with the named CSV file.
func (h *Handler) LoadFile(w http.ResponseWriter, r *http.Request) {
	var req models.LoadFileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "Invalid request body", err)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		apiErr := verr.ToAPIError()
		respondError(w, r, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	ds, err := h.store.Load(r.Context(), req.Filename)
	if err != nil {
		status, code := errorStatus(err)
		message := "Failed to load file"
		if status == http.StatusNotFound {
			message = err.Error()
		}
		respondError(w, r, status, code, message, err)
		return
	}

	respondJSON(w, http.StatusOK, models.LoadFileResponse{
		Success:     true,
		Message:     fmt.Sprintf("Successfully loaded %s", ds.File),
		Records:     len(ds.Records),
		CurrentFile: ds.File,
	})
}

// Data returns every record of the active dataset.
func (h *Handler) Data(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, h.store.Records())
}

// DataByUUID returns one page of the records sharing a UUID, oldest first.
func (h *Handler) DataByUUID(w http.ResponseWriter, r *http.Request) {
	params, err := h.pageParams(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation, err.Error(), nil)
		return
	}

	matches := aggregate.FilterByUUID(h.store.Records(), chi.URLParam(r, "uuid"))
	sorted := aggregate.SortChronological(matches)
	respondJSON(w, http.StatusOK, aggregate.Paginate(sorted, params.Page, params.Limit))
}

// pageParams reads page and limit. Missing values take their defaults;
// anything that is not an integer in range is an error.
func (h *Handler) pageParams(r *http.Request) (models.PageParams, error) {
	params := models.PageParams{Page: 1, Limit: h.config.API.DefaultPageSize}

	query := r.URL.Query()
	for _, p := range []struct {
		name string
		dst  *int
	}{
		{"page", &params.Page},
		{"limit", &params.Limit},
	} {
		raw := query.Get(p.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return params, fmt.Errorf("%s must be an integer", p.name)
		}
		*p.dst = n
	}

	if verr := validation.ValidateStruct(&params); verr != nil {
		return params, errors.New(verr.ToAPIError().Message)
	}
	if params.Limit > h.config.API.MaxPageSize {
		return params, fmt.Errorf("limit must be at most %d", h.config.API.MaxPageSize)
	}
	return params, nil
}

// Events returns one summary per UUID, ordered by sequence number.
func (h *Handler) Events(w http.ResponseWriter, _ *http.Request) {
	groups := aggregate.GroupByIdentifier(h.store.Records())
	aggregate.SortGroupsBySeq(groups)
	respondJSON(w, http.StatusOK, models.EventsResponse{Events: groups, Total: len(groups)})
}

// Stats returns the dataset summary.
func (h *Handler) Stats(w http.ResponseWriter, _ *http.Request) {
	ds := h.store.Current()
	respondJSON(w, http.StatusOK, aggregate.Stats(ds.Records, ds.File))
}
