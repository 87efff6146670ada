// Coursegraph - Course Metadata Authoring and Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursegraph

//go:build integration

package testinfra

import (
	"context"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/log"
	tcneo4j "github.com/testcontainers/testcontainers-go/modules/neo4j"
)

const (
	neo4jImage    = "neo4j:5.15.0"
	neo4jPassword = "testpassword"
)

// SkipIfNoDocker skips the test if Docker is not available.
func SkipIfNoDocker(t *testing.T) {
	t.Helper()

	if !IsDockerAvailable() {
		t.Skip("Skipping test: Docker not available")
	}
}

// IsDockerAvailable checks if Docker daemon is running and accessible.
func IsDockerAvailable() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, "docker", "info")
	return cmd.Run() == nil
}

// Neo4jEndpoint is how a test reaches its Neo4j instance.
type Neo4jEndpoint struct {
	URI      string
	Username string
	Password string
}

// StartNeo4j returns a Neo4j endpoint for the test. NEO4J_TEST_URI selects
// an external server; otherwise a container is started and terminated in
// t.Cleanup.
func StartNeo4j(t *testing.T) Neo4jEndpoint {
	t.Helper()

	if uri := os.Getenv("NEO4J_TEST_URI"); uri != "" {
		return Neo4jEndpoint{
			URI:      uri,
			Username: envOr("NEO4J_TEST_USER", "neo4j"),
			Password: envOr("NEO4J_TEST_PASSWORD", "password"),
		}
	}

	if testing.Short() {
		t.Skip("Skipping container test in short mode")
	}
	SkipIfNoDocker(t)

	ctx := context.Background()
	container, err := tcneo4j.Run(ctx, neo4jImage,
		tcneo4j.WithAdminPassword(neo4jPassword),
		testcontainers.WithLogger(log.TestLogger(t)),
	)
	if err != nil {
		t.Fatalf("failed to start neo4j container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: failed to terminate container: %v", err)
		}
	})

	uri, err := container.BoltUrl(ctx)
	if err != nil {
		t.Fatalf("failed to get bolt url: %v", err)
	}
	return Neo4jEndpoint{URI: uri, Username: "neo4j", Password: neo4jPassword}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
