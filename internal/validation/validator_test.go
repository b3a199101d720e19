// Eventlens - Labeled Event and Image Viewer Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventlens

package validation

import (
	"strings"
	"testing"
)

func TestGetValidator_Singleton(t *testing.T) {
	t.Parallel()

	v1 := GetValidator()
	v2 := GetValidator()
	if v1 == nil {
		t.Fatal("GetValidator() should not return nil")
	}
	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}
}

type loadRequest struct {
	Filename string `json:"filename" validate:"required,basename,max=255"`
}

type downloadRequest struct {
	S3Paths []string `json:"s3Paths" validate:"required,min=1,max=3"`
}

type pageRequest struct {
	Page  int `json:"page" validate:"min=1"`
	Limit int `json:"limit" validate:"min=1,max=1000"`
}

func TestValidateStruct(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     interface{}
		wantField string
		wantTag   string
	}{
		{"valid filename", &loadRequest{Filename: "events.csv"}, "", ""},
		{"missing filename", &loadRequest{}, "filename", "required"},
		{"traversal filename", &loadRequest{Filename: "../etc/passwd"}, "filename", "basename"},
		{"dot filename", &loadRequest{Filename: ".."}, "filename", "basename"},
		{"valid paths", &downloadRequest{S3Paths: []string{"s3://b/k.jpg"}}, "", ""},
		{"nil paths", &downloadRequest{}, "s3Paths", "required"},
		{"empty paths", &downloadRequest{S3Paths: []string{}}, "s3Paths", "min"},
		{"too many paths", &downloadRequest{S3Paths: []string{"a", "b", "c", "d"}}, "s3Paths", "max"},
		{"valid page", &pageRequest{Page: 1, Limit: 10}, "", ""},
		{"zero page", &pageRequest{Page: 0, Limit: 10}, "page", "min"},
		{"limit too large", &pageRequest{Page: 1, Limit: 1001}, "limit", "max"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			verr := ValidateStruct(tt.input)
			if tt.wantField == "" {
				if verr != nil {
					t.Fatalf("ValidateStruct() = %v, want nil", verr)
				}
				return
			}
			if verr == nil {
				t.Fatalf("ValidateStruct() = nil, want error on %s", tt.wantField)
			}
			errs := verr.Errors()
			if len(errs) != 1 {
				t.Fatalf("got %d errors, want 1: %v", len(errs), verr)
			}
			if errs[0].Field() != tt.wantField || errs[0].Tag() != tt.wantTag {
				t.Errorf("error = %s/%s, want %s/%s", errs[0].Field(), errs[0].Tag(), tt.wantField, tt.wantTag)
			}
		})
	}
}

func TestTranslateMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input interface{}
		want  string
	}{
		{&loadRequest{}, "filename is required"},
		{&loadRequest{Filename: "a/b.csv"}, "filename must be a plain file name"},
		{&downloadRequest{S3Paths: []string{}}, "s3Paths must be at least 1 items"},
		{&pageRequest{Page: 1, Limit: 5000}, "limit must be at most 1000"},
		{&loadRequest{Filename: strings.Repeat("a", 256)}, "filename must be at most 255 characters"},
	}

	for _, tt := range tests {
		verr := ValidateStruct(tt.input)
		if verr == nil {
			t.Fatalf("ValidateStruct(%+v) = nil, want error", tt.input)
		}
		if got := verr.Error(); got != tt.want {
			t.Errorf("message = %q, want %q", got, tt.want)
		}
	}
}

func TestToAPIError(t *testing.T) {
	t.Parallel()

	verr := ValidateStruct(&pageRequest{Page: 0, Limit: 0})
	if verr == nil {
		t.Fatal("expected validation errors")
	}
	apiErr := verr.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %q, want VALIDATION_ERROR", apiErr.Code)
	}
	if !strings.Contains(apiErr.Message, "page") || !strings.Contains(apiErr.Message, "limit") {
		t.Errorf("Message = %q, want both fields listed", apiErr.Message)
	}

	empty := (&RequestValidationError{}).ToAPIError()
	if empty.Message != "Validation failed" {
		t.Errorf("empty Message = %q", empty.Message)
	}
}

func TestIsBasename(t *testing.T) {
	t.Parallel()

	valid := []string{"a.jpg", "frame_0001.JPG", "..hidden", "x..y"}
	invalid := []string{"", ".", "..", "a/b.jpg", `a\b.jpg`, "a\x00b"}

	for _, s := range valid {
		if !IsBasename(s) {
			t.Errorf("IsBasename(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsBasename(s) {
			t.Errorf("IsBasename(%q) = true, want false", s)
		}
	}
}
