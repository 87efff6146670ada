// Coursegraph - Course Metadata Authoring and Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursegraph

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/coursegraph/config.yaml",
	"/etc/coursegraph/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            5000,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Neo4j: Neo4jConfig{
			URI:                "bolt://localhost:7687",
			Username:           "neo4j",
			Password:           "",
			Database:           "",
			ConnectTimeout:     3 * time.Second,
			QueryTimeout:       10 * time.Second,
			BreakerMaxFailures: 5,
			BreakerTimeout:     30 * time.Second,
		},
		Knowledge: KnowledgeConfig{
			RDFFile:             "mapping_rules/output.nt",
			SimilarityThreshold: 0.4,
			SearchLimit:         10,
		},
		Security: SecurityConfig{
			SessionSecret:     "",
			SessionTimeout:    24 * time.Hour,
			TokenTTL:          24 * time.Hour,
			CookieSecure:      false,
			SessionStore:      "memory",
			SessionStorePath:  "data/sessions",
			SessionCleanup:    10 * time.Minute,
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Audit: AuditConfig{
			Enabled:     true,
			LogToStdout: false,
			BufferSize:  1000,
			MaxEvents:   10000,
			Retention:   90 * 24 * time.Hour,
		},
	}
}

// LoadWithKoanf loads configuration with layered sources:
//  1. Defaults
//  2. Optional YAML config file
//  3. Environment variables
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are parsed as comma-separated lists when set from env.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

var envMappings = map[string]string{
	// Server
	"port":                  "server.port",
	"http_port":             "server.port",
	"http_host":             "server.host",
	"http_timeout":          "server.timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"environment":           "server.environment",

	// Neo4j
	"neo4j_uri":                  "neo4j.uri",
	"neo4j_user":                 "neo4j.username",
	"neo4j_password":             "neo4j.password",
	"neo4j_database":             "neo4j.database",
	"neo4j_connect_timeout":      "neo4j.connect_timeout",
	"neo4j_query_timeout":        "neo4j.query_timeout",
	"neo4j_breaker_max_failures": "neo4j.breaker_max_failures",
	"neo4j_breaker_timeout":      "neo4j.breaker_timeout",

	// Knowledge graph
	"rdf_file":         "knowledge.rdf_file",
	"search_threshold": "knowledge.similarity_threshold",
	"search_limit":     "knowledge.search_limit",

	// Security
	"session_secret":           "security.session_secret",
	"flask_secret_key":         "security.session_secret",
	"session_timeout":          "security.session_timeout",
	"token_ttl":                "security.token_ttl",
	"cookie_secure":            "security.cookie_secure",
	"session_store":            "security.session_store",
	"session_store_path":       "security.session_store_path",
	"session_cleanup_interval": "security.session_cleanup_interval",
	"rate_limit_requests":      "security.rate_limit_reqs",
	"rate_limit_window":        "security.rate_limit_window",
	"disable_rate_limit":       "security.rate_limit_disabled",
	"cors_origins":             "security.cors_origins",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Audit
	"audit_enabled":       "audit.enabled",
	"audit_log_to_stdout": "audit.log_to_stdout",
	"audit_buffer_size":   "audit.buffer_size",
	"audit_max_events":    "audit.max_events",
	"audit_retention":     "audit.retention",
}

// envTransformFunc maps environment variable names to koanf paths.
// Unmapped variables return "" and are skipped.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
