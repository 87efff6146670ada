// Coursegraph - Course Metadata Authoring and Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursegraph

package api

import (
	"context"
	"time"

	"github.com/tomtom215/coursegraph/internal/audit"
	"github.com/tomtom215/coursegraph/internal/auth"
	"github.com/tomtom215/coursegraph/internal/config"
	"github.com/tomtom215/coursegraph/internal/knowledge"
	"github.com/tomtom215/coursegraph/internal/models"
)

// CourseStore is the Neo4j functionality used by the API.
type CourseStore interface {
	Ping(ctx context.Context) error
	StoreCourse(ctx context.Context, username string, sub *models.CourseSubmission) error
	SearchSimilarCourses(ctx context.Context, title string) ([]models.StoredCourseMatch, error)
	FindComplementaryContent(ctx context.Context, title string, existing []string) ([]models.ResourceLink, error)
}

// HandlerConfig wires the API handler's dependencies. Store, Accounts and
// JWT are nil when Neo4j or token signing is unavailable; the affected
// endpoints then answer 503.
type HandlerConfig struct {
	Config   *config.Config
	Catalog  *knowledge.Catalog
	Store    CourseStore
	Accounts *auth.Accounts
	JWT      *auth.JWTManager
	Audit    *audit.Logger
}

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers_health.go: status, liveness and readiness
//   - handlers_auth.go: registration and token issue
//   - handlers_catalog.go: knowledge graph catalog
//   - handlers_courses.go: submissions and Neo4j search
type Handler struct {
	config    *config.Config
	catalog   *knowledge.Catalog
	store     CourseStore
	accounts  *auth.Accounts
	jwt       *auth.JWTManager
	audit     *audit.Logger
	startTime time.Time
}

// NewHandler creates a new API handler.
func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{
		config:    cfg.Config,
		catalog:   cfg.Catalog,
		store:     cfg.Store,
		accounts:  cfg.Accounts,
		jwt:       cfg.JWT,
		audit:     cfg.Audit,
		startTime: time.Now(),
	}
}
