// Coursegraph - Course Metadata Authoring and Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursegraph

package config

import (
	"strings"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, "HTTP_PORT"},
		{"bad environment", func(c *Config) { c.Server.Environment = "qa" }, "ENVIRONMENT"},
		{"bad neo4j scheme", func(c *Config) { c.Neo4j.URI = "http://localhost:7474" }, "unsupported scheme"},
		{"neo4j missing scheme", func(c *Config) { c.Neo4j.URI = "localhost:7687" }, "NEO4J_URI"},
		{"threshold above one", func(c *Config) { c.Knowledge.SimilarityThreshold = 1.5 }, "SEARCH_THRESHOLD"},
		{"threshold zero", func(c *Config) { c.Knowledge.SimilarityThreshold = 0 }, "SEARCH_THRESHOLD"},
		{"threshold negative", func(c *Config) { c.Knowledge.SimilarityThreshold = -0.1 }, "SEARCH_THRESHOLD"},
		{"threshold one", func(c *Config) { c.Knowledge.SimilarityThreshold = 1 }, ""},
		{"limit zero", func(c *Config) { c.Knowledge.SearchLimit = 0 }, "SEARCH_LIMIT"},
		{"negative audit retention", func(c *Config) { c.Audit.Retention = -time.Second }, "AUDIT_RETENTION"},
		{"unknown session store", func(c *Config) { c.Security.SessionStore = "redis" }, "SESSION_STORE"},
		{"badger without path", func(c *Config) {
			c.Security.SessionStore = "badger"
			c.Security.SessionStorePath = ""
		}, "SESSION_STORE_PATH"},
		{"rate limit disabled ignores zero", func(c *Config) {
			c.Security.RateLimitDisabled = true
			c.Security.RateLimitReqs = 0
		}, ""},
		{"production without secret", func(c *Config) { c.Server.Environment = "production" }, "SESSION_SECRET is required"},
		{"production short secret", func(c *Config) {
			c.Server.Environment = "production"
			c.Security.SessionSecret = "short"
		}, "at least 32"},
		{"production long secret", func(c *Config) {
			c.Server.Environment = "production"
			c.Security.SessionSecret = strings.Repeat("x", 32)
		}, ""},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
		{"audit buffer zero", func(c *Config) { c.Audit.BufferSize = 0 }, "AUDIT_BUFFER_SIZE"},
		{"audit max events zero", func(c *Config) { c.Audit.MaxEvents = 0 }, "AUDIT_MAX_EVENTS"},
		{"audit disabled ignores sizes", func(c *Config) {
			c.Audit.Enabled = false
			c.Audit.BufferSize = 0
			c.Audit.MaxEvents = 0
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestShouldWarnAboutCORS(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	if cfg.ShouldWarnAboutCORS() {
		t.Error("development should not warn")
	}
	cfg.Server.Environment = "staging"
	if !cfg.ShouldWarnAboutCORS() {
		t.Error("wildcard origin in staging should warn")
	}
	cfg.Security.CORSOrigins = []string{"https://courses.example"}
	if cfg.ShouldWarnAboutCORS() {
		t.Error("explicit origin should not warn")
	}
}
