// Coursegraph - Course Metadata Authoring and Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursegraph

/*
Package main is the entry point for the Coursegraph server.

Coursegraph lets course authors describe a course with a guided form, store
the description in Neo4j, and discover related courses in an RDF knowledge
graph of existing course metadata.

# Startup

 1. Configuration: koanf v2 (defaults, optional config.yaml, environment)
 2. Logging: zerolog, with an slog adapter for the supervisor
 3. Knowledge graph: N-Triples file parsed into memory; a missing or broken
    file is logged and the catalog starts empty
 4. Neo4j: driver and a startup ping; when unreachable the server still
    starts, write features answer 503 until Neo4j is up, and the schema
    constraints are installed by a retrying supervisor service
 5. Sessions and tokens: memory or BadgerDB session store, HS256 bearer
    tokens
 6. HTTP: chi router with the HTML pages, /api/v1 and /metrics
 7. Audit trail: in-memory store fed by an asynchronous logger
 8. Supervisor tree: session cleanup, audit logger and the HTTP server

# Configuration

Common environment variables:

	HTTP_PORT, HTTP_HOST            listen address (default 0.0.0.0:5000)
	RDF_FILE                        N-Triples knowledge graph
	NEO4J_URI, NEO4J_USER, NEO4J_PASSWORD
	SESSION_SECRET                  token signing key (required in production)
	SESSION_STORE                   memory or badger
	AUDIT_ENABLED, AUDIT_RETENTION  security audit trail
	LOG_LEVEL, LOG_FORMAT

# Signals

SIGINT and SIGTERM cancel the root context. The supervisor then stops the
HTTP server with a bounded graceful shutdown, after which the Neo4j driver
and session store are closed.
*/
package main
