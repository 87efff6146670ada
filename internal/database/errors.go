// Coursegraph - Course Metadata Authoring and Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursegraph

package database

import "errors"

var (
	// ErrUnavailable is returned while the circuit breaker rejects calls.
	ErrUnavailable = errors.New("neo4j unavailable")

	// ErrNotFound is returned when a requested node does not exist.
	ErrNotFound = errors.New("not found")

	// ErrMissingTitle is returned when a submission has no course title.
	ErrMissingTitle = errors.New("course title is required")
)
