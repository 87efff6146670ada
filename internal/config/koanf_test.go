// Coursegraph - Course Metadata Authoring and Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursegraph

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 5000 {
		t.Errorf("Server.Port = %d, want 5000", cfg.Server.Port)
	}
	if cfg.Neo4j.URI != "bolt://localhost:7687" {
		t.Errorf("Neo4j.URI = %q, want bolt://localhost:7687", cfg.Neo4j.URI)
	}
	if cfg.Neo4j.Username != "neo4j" {
		t.Errorf("Neo4j.Username = %q, want neo4j", cfg.Neo4j.Username)
	}
	if cfg.Knowledge.RDFFile != "mapping_rules/output.nt" {
		t.Errorf("Knowledge.RDFFile = %q, want mapping_rules/output.nt", cfg.Knowledge.RDFFile)
	}
	if cfg.Knowledge.SimilarityThreshold != 0.4 {
		t.Errorf("Knowledge.SimilarityThreshold = %v, want 0.4", cfg.Knowledge.SimilarityThreshold)
	}
	if cfg.Knowledge.SearchLimit != 10 {
		t.Errorf("Knowledge.SearchLimit = %d, want 10", cfg.Knowledge.SearchLimit)
	}
	if cfg.Security.SessionStore != "memory" {
		t.Errorf("Security.SessionStore = %q, want memory", cfg.Security.SessionStore)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"NEO4J_URI":        "neo4j.uri",
		"NEO4J_USER":       "neo4j.username",
		"NEO4J_PASSWORD":   "neo4j.password",
		"PORT":             "server.port",
		"HTTP_PORT":        "server.port",
		"RDF_FILE":         "knowledge.rdf_file",
		"SEARCH_THRESHOLD": "knowledge.similarity_threshold",
		"FLASK_SECRET_KEY": "security.session_secret",
		"CORS_ORIGINS":     "security.cors_origins",
		"LOG_LEVEL":        "logging.level",
		"AUDIT_RETENTION":  "audit.retention",
		"HOME":             "",
		"PATH":             "",
	}

	for in, want := range tests {
		if got := envTransformFunc(in); got != want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLoadWithKoanf_EnvOverrides(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("NEO4J_URI", "neo4j://graph.internal:7687")
	t.Setenv("NEO4J_PASSWORD", "s3cret")
	t.Setenv("PORT", "8080")
	t.Setenv("SEARCH_LIMIT", "25")
	t.Setenv("SESSION_TIMEOUT", "2h")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("AUDIT_ENABLED", "false")
	t.Setenv("AUDIT_RETENTION", "720h")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Neo4j.URI != "neo4j://graph.internal:7687" {
		t.Errorf("Neo4j.URI = %q", cfg.Neo4j.URI)
	}
	if !cfg.Neo4jConfigured() {
		t.Error("expected Neo4jConfigured() to be true")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Knowledge.SearchLimit != 25 {
		t.Errorf("Knowledge.SearchLimit = %d, want 25", cfg.Knowledge.SearchLimit)
	}
	if cfg.Security.SessionTimeout != 2*time.Hour {
		t.Errorf("Security.SessionTimeout = %v, want 2h", cfg.Security.SessionTimeout)
	}
	if len(cfg.Security.CORSOrigins) != 2 || cfg.Security.CORSOrigins[1] != "https://b.example" {
		t.Errorf("Security.CORSOrigins = %v", cfg.Security.CORSOrigins)
	}
	if cfg.Audit.Enabled || cfg.Audit.Retention != 720*time.Hour {
		t.Errorf("Audit = %+v, want disabled with 720h retention", cfg.Audit)
	}
}

func TestLoadWithKoanf_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 9000
knowledge:
  rdf_file: /srv/courses.nt
  similarity_threshold: 0.5
logging:
  format: console
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Knowledge.RDFFile != "/srv/courses.nt" {
		t.Errorf("Knowledge.RDFFile = %q", cfg.Knowledge.RDFFile)
	}
	if cfg.Knowledge.SimilarityThreshold != 0.5 {
		t.Errorf("Knowledge.SimilarityThreshold = %v, want 0.5", cfg.Knowledge.SimilarityThreshold)
	}
	// env wins over file
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want json", cfg.Logging.Format)
	}
	if cfg.Neo4jConfigured() {
		t.Error("expected Neo4jConfigured() to be false without a password")
	}
}
