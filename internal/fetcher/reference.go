// Eventlens - Labeled Event and Image Viewer Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventlens

package fetcher

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tomtom215/eventlens/internal/cache"
)

// ErrInvalidReference is returned for object references that do not have the
// form scheme://bucket/key or whose key does not end in a usable file name.
var ErrInvalidReference = errors.New("invalid object reference")

// Reference is a parsed object reference.
type Reference struct {
	Raw      string
	Scheme   string
	Bucket   string
	Key      string
	Filename string // last key segment; also the cache file name
}

// ParseReference splits scheme://bucket/key/parts into its components.
//
//	ParseReference("s3://photos/2024/01/cam1.jpg")
//	// Bucket "photos", Key "2024/01/cam1.jpg", Filename "cam1.jpg"
func ParseReference(ref string) (Reference, error) {
	scheme, rest, ok := strings.Cut(ref, "://")
	if !ok || scheme == "" {
		return Reference{}, fmt.Errorf("%w: %q has no scheme", ErrInvalidReference, ref)
	}

	bucket, key, _ := strings.Cut(rest, "/")
	if bucket == "" {
		return Reference{}, fmt.Errorf("%w: %q has no bucket", ErrInvalidReference, ref)
	}
	if key == "" {
		return Reference{}, fmt.Errorf("%w: %q has no key", ErrInvalidReference, ref)
	}

	filename := key[strings.LastIndex(key, "/")+1:]
	if !cache.ValidName(filename) {
		return Reference{}, fmt.Errorf("%w: %q does not end in a file name", ErrInvalidReference, ref)
	}

	return Reference{
		Raw:      ref,
		Scheme:   scheme,
		Bucket:   bucket,
		Key:      key,
		Filename: filename,
	}, nil
}
