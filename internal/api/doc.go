// Coursegraph - Course Metadata Authoring and Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursegraph

/*
Package api provides the chi router and the JSON API of Coursegraph.

The router owns the global middleware stack (request ID, real IP, access
log, panic recovery, CORS, Prometheus instrumentation) and mounts:

  - /status: knowledge graph and Neo4j status report, unwrapped
  - /api/v1/status: the same report in the response envelope
  - /api/v1/health/live, /api/v1/health/ready: liveness and readiness
  - /api/v1/auth/register, /api/v1/auth/login: accounts and JWT issue
  - /api/v1/catalog/...: read-only knowledge graph catalog
  - /api/v1/courses/...: authenticated submissions and Neo4j search
  - /api/v1/account/activity: the caller's own audit trail
  - /metrics: Prometheus exposition

Every other path is served by the HTML interface from package web.

Responses use a common envelope:

	{"success": true, "data": {...}, "meta": {"request_id": "...", "timestamp": "..."}}
	{"success": false, "error": {"code": "NOT_FOUND", "message": "...", "request_id": "..."}}

Usage:

	handler := api.NewHandler(api.HandlerConfig{Config: cfg, Catalog: catalog, Store: store})
	router := api.NewRouter(handler, api.NewChiMiddlewareFromConfig(&cfg.Security), tokens, webHandler)
	srv := &http.Server{Handler: router.SetupChi()}
*/
package api
