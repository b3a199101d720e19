// Eventlens - Labeled Event and Image Viewer Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventlens

package models

// ErrorResponse is written for every 4xx/5xx response.
//
//	{"error": "Image not found", "code": "NOT_FOUND"}
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// FilesResponse lists the CSV sources and the active one.
type FilesResponse struct {
	Files       []string `json:"files"`
	CurrentFile *string  `json:"currentFile"`
}

// LoadFileRequest selects the CSV source to load.
type LoadFileRequest struct {
	Filename string `json:"filename" validate:"required,basename,max=255"`
}

// LoadFileResponse reports a successful reload.
type LoadFileResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	Records     int    `json:"records"`
	CurrentFile string `json:"currentFile"`
}

// PageParams are the query parameters of paginated endpoints.
type PageParams struct {
	Page  int `json:"page" validate:"min=1"`
	Limit int `json:"limit" validate:"min=1"`
}

// Pagination describes one page. Total is the number of pages.
type Pagination struct {
	Current int `json:"current"`
	Total   int `json:"total"`
	Count   int `json:"count"`
	Limit   int `json:"limit"`
}

// RecordPage is one page of records for a single UUID.
type RecordPage struct {
	Data       []Record   `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// EventsResponse lists event groups ordered by sequence number.
type EventsResponse struct {
	Events []EventGroup `json:"events"`
	Total  int          `json:"total"`
}

// DownloadImagesRequest lists object references to fetch into the cache.
type DownloadImagesRequest struct {
	S3Paths []string `json:"s3Paths" validate:"required,min=1,max=10000"`
}

// DownloadImagesResponse reports a fetch batch. Success is always true; per
// item outcomes are in Results, in request order.
type DownloadImagesResponse struct {
	Success    bool          `json:"success"`
	Downloaded int           `json:"downloaded"`
	Failed     int           `json:"failed"`
	Results    []FetchResult `json:"results"`
}
