// Coursegraph - Course Metadata Authoring and Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursegraph

package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/coursegraph/internal/api"
	"github.com/tomtom215/coursegraph/internal/audit"
	"github.com/tomtom215/coursegraph/internal/auth"
	"github.com/tomtom215/coursegraph/internal/config"
	"github.com/tomtom215/coursegraph/internal/database"
	"github.com/tomtom215/coursegraph/internal/knowledge"
	"github.com/tomtom215/coursegraph/internal/logging"
	"github.com/tomtom215/coursegraph/internal/supervisor"
	"github.com/tomtom215/coursegraph/internal/supervisor/services"
	"github.com/tomtom215/coursegraph/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})
	logging.Info().
		Str("environment", cfg.Server.Environment).
		Str("rdf_file", cfg.Knowledge.RDFFile).
		Bool("neo4j_configured", cfg.Neo4jConfigured()).
		Str("session_store", cfg.Security.SessionStore).
		Msg("Starting Coursegraph")

	catalog := loadCatalog(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := openStore(ctx, cfg)
	defer func() {
		if store == nil {
			return
		}
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer closeCancel()
		if err := store.Close(closeCtx); err != nil {
			logging.Error().Err(err).Msg("Error closing Neo4j driver")
		}
	}()

	factory, err := auth.NewSessionStoreFactory(auth.SessionStoreType(cfg.Security.SessionStore), cfg.Security.SessionStorePath)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize session store")
	}
	defer func() {
		if err := factory.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing session store")
		}
	}()
	sessionStore := factory.CreateStore()

	sessionCfg := auth.DefaultSessionMiddlewareConfig()
	sessionCfg.SessionTTL = cfg.Security.SessionTimeout
	sessionCfg.CookieSecure = cfg.Security.CookieSecure
	sessions := auth.NewSessionMiddleware(sessionStore, sessionCfg)

	jwtManager, err := auth.NewJWTManager(signingSecret(cfg), cfg.Security.TokenTTL)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize token signing")
	}

	// Interfaces stay nil when Neo4j is not configured so handlers answer 503.
	var (
		accounts *auth.Accounts
		apiStore api.CourseStore
		webStore web.CourseStore
	)
	if store != nil {
		accounts = auth.NewAccounts(store)
		apiStore = store
		webStore = store
	}

	auditLog := newAuditLogger(cfg)

	webHandler, err := web.New(web.Config{
		Catalog:      catalog,
		Store:        webStore,
		Accounts:     accounts,
		Sessions:     sessions,
		Audit:        auditLog,
		CookieSecure: cfg.Security.CookieSecure,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load page templates")
	}

	handler := api.NewHandler(api.HandlerConfig{
		Config:   cfg,
		Catalog:  catalog,
		Store:    apiStore,
		Accounts: accounts,
		JWT:      jwtManager,
		Audit:    auditLog,
	})
	router := api.NewRouter(
		handler,
		api.NewChiMiddlewareFromConfig(&cfg.Security),
		auth.NewTokenMiddleware(jwtManager, sessions),
		webHandler,
	)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}
	tree.AddDataService(services.NewSessionCleanupService(sessionStore, cfg.Security.SessionCleanup))
	if store != nil {
		tree.AddDataService(services.NewSchemaService(store, 0))
	}
	if auditLog != nil {
		tree.AddDataService(auditLog)
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	errCh := tree.ServeBackground(ctx)
	select {
	case <-ctx.Done():
		logging.Info().Msg("Waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Coursegraph stopped")
}

// loadCatalog parses the knowledge graph. Failures leave an empty catalog
// so the authoring features keep working.
func loadCatalog(cfg *config.Config) *knowledge.Catalog {
	opts := knowledge.Options{
		SimilarityThreshold: cfg.Knowledge.SimilarityThreshold,
		SearchLimit:         cfg.Knowledge.SearchLimit,
	}
	graph, err := knowledge.LoadFile(cfg.Knowledge.RDFFile)
	if err != nil {
		logging.Warn().Err(err).Str("rdf_file", cfg.Knowledge.RDFFile).
			Msg("Knowledge graph not loaded; catalog and search are disabled")
		return knowledge.NewCatalog(nil, opts)
	}

	catalog := knowledge.NewCatalog(graph, opts)
	logging.Info().
		Int("triples", catalog.TripleCount()).
		Int("courses", catalog.CourseCount()).
		Msg("Knowledge graph loaded")
	return catalog
}

// newAuditLogger returns nil when auditing is disabled; handlers treat a
// nil logger as a no-op.
func newAuditLogger(cfg *config.Config) *audit.Logger {
	if !cfg.Audit.Enabled {
		logging.Info().Msg("Audit trail disabled")
		return nil
	}
	auditCfg := audit.DefaultConfig()
	auditCfg.BufferSize = cfg.Audit.BufferSize
	auditCfg.Retention = cfg.Audit.Retention
	auditCfg.LogToStdout = cfg.Audit.LogToStdout
	return audit.NewLogger(audit.NewMemoryStore(cfg.Audit.MaxEvents), auditCfg)
}

// openStore creates the Neo4j store. It returns nil only when Neo4j is not
// configured or the driver cannot be built; an unreachable server is logged
// and left to the circuit breaker so the store recovers when Neo4j comes up.
func openStore(ctx context.Context, cfg *config.Config) *database.Store {
	if !cfg.Neo4jConfigured() {
		logging.Warn().Msg("Neo4j credentials not configured; accounts and course storage are disabled")
		return nil
	}

	store, err := database.New(&cfg.Neo4j)
	if err != nil {
		logging.Warn().Err(err).Msg("Failed to create Neo4j driver")
		return nil
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Neo4j.ConnectTimeout)
	defer cancel()
	if err := store.Ping(pingCtx); err != nil {
		logging.Warn().Err(err).Str("uri", cfg.Neo4j.URI).Msg("Neo4j unreachable at startup; requests will fail until it is up")
		return store
	}

	logging.Info().Str("uri", cfg.Neo4j.URI).Msg("Connected to Neo4j")
	return store
}

// signingSecret returns the configured secret, or a per-process random one
// outside production. Config validation rejects an empty secret in
// production.
func signingSecret(cfg *config.Config) string {
	if cfg.Security.SessionSecret != "" {
		return cfg.Security.SessionSecret
	}
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		logging.Fatal().Err(err).Msg("Failed to generate signing secret")
	}
	logging.Warn().Msg("SESSION_SECRET not set; using a random secret, tokens will not survive a restart")
	return hex.EncodeToString(buf)
}
