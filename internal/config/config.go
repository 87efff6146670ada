// Coursegraph - Course Metadata Authoring and Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursegraph

// Package config loads Coursegraph configuration from built-in defaults, an
// optional YAML file and environment variables (highest priority).
//
// Environment variables keep the names used by earlier deployments
// (NEO4J_URI, NEO4J_USER, NEO4J_PASSWORD, PORT) and are mapped onto the
// nested koanf structure, e.g. NEO4J_URI -> neo4j.uri, RDF_FILE ->
// knowledge.rdf_file.
package config

import (
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Neo4j     Neo4jConfig     `koanf:"neo4j"`
	Knowledge KnowledgeConfig `koanf:"knowledge"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
	Audit     AuditConfig     `koanf:"audit"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // development, staging, production
}

// Neo4jConfig holds the graph database connection settings.
type Neo4jConfig struct {
	URI            string        `koanf:"uri"`
	Username       string        `koanf:"username"`
	Password       string        `koanf:"password"`
	Database       string        `koanf:"database"` // empty = server default database
	ConnectTimeout time.Duration `koanf:"connect_timeout"`
	QueryTimeout   time.Duration `koanf:"query_timeout"`

	// Circuit breaker around every Neo4j call
	BreakerMaxFailures uint32        `koanf:"breaker_max_failures"`
	BreakerTimeout     time.Duration `koanf:"breaker_timeout"`
}

// KnowledgeConfig holds the RDF knowledge graph settings.
type KnowledgeConfig struct {
	RDFFile             string  `koanf:"rdf_file"`
	SimilarityThreshold float64 `koanf:"similarity_threshold"`
	SearchLimit         int     `koanf:"search_limit"`
}

// SecurityConfig holds authentication and HTTP hardening settings
type SecurityConfig struct {
	// SessionSecret signs API bearer tokens.
	SessionSecret  string        `koanf:"session_secret"`
	SessionTimeout time.Duration `koanf:"session_timeout"`
	TokenTTL       time.Duration `koanf:"token_ttl"`
	CookieSecure   bool          `koanf:"cookie_secure"`

	// SessionStore specifies the session storage backend: "memory" or "badger"
	SessionStore     string        `koanf:"session_store"`
	SessionStorePath string        `koanf:"session_store_path"`
	SessionCleanup   time.Duration `koanf:"session_cleanup_interval"`

	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// AuditConfig holds the security audit trail settings.
type AuditConfig struct {
	Enabled     bool          `koanf:"enabled"`
	LogToStdout bool          `koanf:"log_to_stdout"`
	BufferSize  int           `koanf:"buffer_size"`
	MaxEvents   int           `koanf:"max_events"` // in-memory store capacity
	Retention   time.Duration `koanf:"retention"`
}

// Load loads configuration using the layered koanf sources.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// Neo4jConfigured reports whether a complete set of Neo4j credentials is present.
func (c *Config) Neo4jConfigured() bool {
	return c.Neo4j.URI != "" && c.Neo4j.Username != "" && c.Neo4j.Password != ""
}
