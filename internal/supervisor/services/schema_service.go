// Coursegraph - Course Metadata Authoring and Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursegraph

package services

import (
	"context"
	"time"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/coursegraph/internal/logging"
)

const defaultSchemaRetryInterval = 30 * time.Second

// SchemaEnsurer is satisfied by *database.Store.
type SchemaEnsurer interface {
	EnsureSchema(ctx context.Context) error
}

// SchemaService installs the Neo4j constraints, retrying until the
// database is reachable. It stops for good after the first success.
type SchemaService struct {
	store    SchemaEnsurer
	interval time.Duration
	name     string
}

// NewSchemaService retries every interval (30s when non-positive).
func NewSchemaService(store SchemaEnsurer, interval time.Duration) *SchemaService {
	if interval <= 0 {
		interval = defaultSchemaRetryInterval
	}
	return &SchemaService{
		store:    store,
		interval: interval,
		name:     "neo4j-schema",
	}
}

// Serve implements suture.Service. It returns suture.ErrDoNotRestart once
// the schema is in place.
func (s *SchemaService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for attempt := 1; ; attempt++ {
		err := s.store.EnsureSchema(ctx)
		if err == nil {
			logging.Info().Int("attempt", attempt).Msg("Neo4j schema ensured")
			return suture.ErrDoNotRestart
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		logging.Warn().Err(err).Str("service", s.name).Int("attempt", attempt).
			Dur("retry_in", s.interval).Msg("Neo4j schema not ensured, will retry")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// String implements fmt.Stringer.
func (s *SchemaService) String() string {
	return s.name
}
