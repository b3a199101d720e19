// Eventlens - Labeled Event and Image Viewer Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventlens

package api

import (
	"fmt"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/eventlens/internal/metrics"
	"github.com/tomtom215/eventlens/internal/models"
	"github.com/tomtom215/eventlens/internal/validation"
)

const defaultImageType = "image/jpeg"

// DownloadImages fetches the requested object references into the image
// cache. The response is 200 even when items fail; per item outcomes are in
// results, in request order.
func (h *Handler) DownloadImages(w http.ResponseWriter, r *http.Request) {
	var req models.DownloadImagesRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "Invalid request body", err)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		apiErr := verr.ToAPIError()
		respondError(w, r, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	results := h.fetcher.FetchAll(r.Context(), req.S3Paths)

	resp := models.DownloadImagesResponse{Success: true, Results: results}
	for i := range results {
		if results[i].Success {
			resp.Downloaded++
		} else {
			resp.Failed++
		}
	}
	respondJSON(w, http.StatusOK, resp)
}

// Image serves a cached image by file name.
func (h *Handler) Image(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "filename")

	f, info, err := h.cache.Open(name)
	if err != nil {
		metrics.RecordImageServe(false)
		status, code := errorStatus(err)
		message := "Image not found"
		if status != http.StatusNotFound {
			message = "Failed to read image"
		}
		respondError(w, r, status, code, message, err)
		return
	}
	defer f.Close()
	metrics.RecordImageServe(true)

	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = defaultImageType
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(h.config.Cache.MaxAge.Seconds())))

	http.ServeContent(w, r, name, info.ModTime(), f)
}
