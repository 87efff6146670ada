// Coursegraph - Course Metadata Authoring and Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursegraph

/*
Package services adapts Coursegraph components to suture's Serve pattern.

HTTPServerService turns the blocking ListenAndServe/Shutdown pair of an
*http.Server into a context-driven service with a bounded graceful shutdown.

SessionCleanupService periodically removes expired login sessions from the
configured auth.SessionStore and keeps the sessions_active gauge current.

SchemaService installs the Neo4j uniqueness constraints, retrying while the
database is down, and then exits without being restarted.

All of them implement fmt.Stringer so supervisor events name them.
*/
package services
