// Coursegraph - Course Metadata Authoring and Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursegraph

// Package testinfra starts throwaway service containers for integration
// tests using testcontainers-go. All helpers are behind the integration
// build tag:
//
//	go test -tags integration ./internal/database/...
//
// Tests skip themselves when Docker is not reachable. An external Neo4j can
// be used instead of a container by setting NEO4J_TEST_URI (and optionally
// NEO4J_TEST_USER and NEO4J_TEST_PASSWORD).
package testinfra
