// Coursegraph - Course Metadata Authoring and Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursegraph

package services

import (
	"context"
	"time"

	"github.com/tomtom215/coursegraph/internal/logging"
	"github.com/tomtom215/coursegraph/internal/metrics"
)

const defaultCleanupInterval = 10 * time.Minute

// SessionSweeper is satisfied by every auth.SessionStore.
type SessionSweeper interface {
	CleanupExpired(ctx context.Context) (int, error)
	Count(ctx context.Context) (int, error)
}

// SessionCleanupService removes expired sessions on a fixed interval.
// Sweep errors are logged and retried on the next tick rather than
// returned, so a flaky store never trips the supervisor backoff.
type SessionCleanupService struct {
	store    SessionSweeper
	interval time.Duration
	name     string
}

// NewSessionCleanupService sweeps store every interval (10m when
// non-positive).
func NewSessionCleanupService(store SessionSweeper, interval time.Duration) *SessionCleanupService {
	if interval <= 0 {
		interval = defaultCleanupInterval
	}
	return &SessionCleanupService{
		store:    store,
		interval: interval,
		name:     "session-cleanup",
	}
}

// Serve implements suture.Service. It sweeps once immediately, then on
// every tick until ctx is canceled.
func (s *SessionCleanupService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *SessionCleanupService) sweep(ctx context.Context) {
	removed, err := s.store.CleanupExpired(ctx)
	if err != nil {
		if ctx.Err() == nil {
			logging.Warn().Err(err).Str("service", s.name).Msg("Session cleanup failed")
		}
		return
	}
	if removed > 0 {
		metrics.SessionsExpired.Add(float64(removed))
		logging.Debug().Int("removed", removed).Msg("Expired sessions removed")
	}

	active, err := s.store.Count(ctx)
	if err != nil {
		logging.Warn().Err(err).Str("service", s.name).Msg("Session count failed")
		return
	}
	metrics.SessionsActive.Set(float64(active))
}

// String implements fmt.Stringer.
func (s *SessionCleanupService) String() string {
	return s.name
}
