// Coursegraph - Course Metadata Authoring and Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursegraph

/*
Package middleware provides chi-compatible HTTP middleware shared by the
HTML interface and the JSON API.

  - RequestID: accepts or generates an X-Request-ID and stores it, together
    with a fresh correlation ID, in the logging context.
  - AccessLog: one structured log line per request.
  - PrometheusMetrics: request count, latency and in-flight gauge, labelled
    by the matched chi route pattern so course IRIs in paths do not explode
    label cardinality.

Typical stack:

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog)
	r.Use(middleware.PrometheusMetrics)
*/
package middleware
