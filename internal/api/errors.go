// Coursegraph - Course Metadata Authoring and Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursegraph

package api

import "errors"

var (
	// ErrMissingParameter indicates a required query parameter is absent.
	ErrMissingParameter = errors.New("missing required parameter")

	// ErrBodyTooLarge indicates the request body exceeded maxBodyBytes.
	ErrBodyTooLarge = errors.New("request body too large")
)
