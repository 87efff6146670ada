// Coursegraph - Course Metadata Authoring and Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursegraph

// Package database persists users and course submissions in Neo4j.
//
// A single long-lived driver is shared by all requests. Every call goes
// through a circuit breaker so an unreachable database fails fast with
// ErrUnavailable instead of holding requests for the full connect timeout.
// Course submissions are written in one managed write transaction.
package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	neo4jconfig "github.com/neo4j/neo4j-go-driver/v5/neo4j/config"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/coursegraph/internal/config"
	"github.com/tomtom215/coursegraph/internal/logging"
	"github.com/tomtom215/coursegraph/internal/metrics"
)

const breakerName = "neo4j"

// statement is one parameterized Cypher statement.
type statement struct {
	cypher string
	params map[string]any
}

// runner executes Cypher. The driver-backed implementation is used in
// production; tests substitute a fake.
type runner interface {
	// query runs a single auto-committed statement and returns all records.
	query(ctx context.Context, cypher string, params map[string]any) ([]*neo4j.Record, error)
	// write runs all statements in order inside one write transaction.
	write(ctx context.Context, stmts []statement) error
	close(ctx context.Context) error
}

// Store is the Neo4j-backed persistence layer.
type Store struct {
	runner       runner
	cb           *gobreaker.CircuitBreaker[any]
	queryTimeout time.Duration
}

// New creates a Store with a driver for cfg. No connection is opened until
// the first call; use Ping to check reachability.
func New(cfg *config.Neo4jConfig) (*Store, error) {
	driver, err := neo4j.NewDriverWithContext(
		cfg.URI,
		neo4j.BasicAuth(cfg.Username, cfg.Password, ""),
		func(c *neo4jconfig.Config) {
			if cfg.ConnectTimeout > 0 {
				c.SocketConnectTimeout = cfg.ConnectTimeout
				c.ConnectionAcquisitionTimeout = cfg.ConnectTimeout
			}
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Neo4j driver: %w", err)
	}
	return newStore(&driverRunner{driver: driver, database: cfg.Database}, cfg), nil
}

func newStore(r runner, cfg *config.Neo4jConfig) *Store {
	maxFailures := cfg.BreakerMaxFailures
	if maxFailures == 0 {
		maxFailures = 5
	}

	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).
				Msg("[CIRCUIT BREAKER] State transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})

	return &Store{runner: r, cb: cb, queryTimeout: cfg.QueryTimeout}
}

// Close releases the driver.
func (s *Store) Close(ctx context.Context) error {
	return s.runner.close(ctx)
}

// Ping checks that the database answers a trivial query.
func (s *Store) Ping(ctx context.Context) error {
	_, err := s.query(ctx, "ping", pingCypher, nil)
	return err
}

// EnsureSchema creates the uniqueness constraints the MERGE keys rely on.
// Each constraint runs in its own transaction.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, cypher := range schemaCypher {
		if _, err := s.query(ctx, "ensure_schema", cypher, nil); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}

func (s *Store) query(ctx context.Context, op, cypher string, params map[string]any) ([]*neo4j.Record, error) {
	result, err := s.execute(ctx, op, func(ctx context.Context) (any, error) {
		return s.runner.query(ctx, cypher, params)
	})
	if err != nil {
		return nil, err
	}
	records, ok := result.([]*neo4j.Record)
	if !ok {
		return nil, fmt.Errorf("neo4j %s: unexpected result type %T", op, result)
	}
	return records, nil
}

func (s *Store) write(ctx context.Context, op string, stmts []statement) error {
	_, err := s.execute(ctx, op, func(ctx context.Context) (any, error) {
		return nil, s.runner.write(ctx, stmts)
	})
	return err
}

// execute runs fn through the circuit breaker with the query timeout applied
// and records metrics. Breaker rejections and driver connectivity failures
// are reported as ErrUnavailable.
func (s *Store) execute(ctx context.Context, op string, fn func(context.Context) (any, error)) (any, error) {
	if s.queryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.queryTimeout)
		defer cancel()
	}

	start := time.Now()
	result, err := s.cb.Execute(func() (any, error) {
		return fn(ctx)
	})
	metrics.RecordNeo4jQuery(op, time.Since(start), err)

	switch {
	case err == nil:
		metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "success").Inc()
		return result, nil
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "rejected").Inc()
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	default:
		metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "failure").Inc()
		logging.Ctx(ctx).Warn().Err(err).Str("operation", op).Msg("Neo4j call failed")
		if isConnectivityError(err) {
			return nil, fmt.Errorf("%w: neo4j %s: %w", ErrUnavailable, op, err)
		}
		return nil, fmt.Errorf("neo4j %s: %w", op, err)
	}
}

// isConnectivityError also looks inside the retry limit error that managed
// transactions return once the driver gives up reconnecting.
func isConnectivityError(err error) bool {
	var connErr *neo4j.ConnectivityError
	if errors.As(err, &connErr) {
		return true
	}
	var limit *neo4j.TransactionExecutionLimit
	if errors.As(err, &limit) {
		for _, cause := range limit.Errors {
			if isConnectivityError(cause) {
				return true
			}
		}
	}
	return false
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

// driverRunner runs Cypher through a neo4j.DriverWithContext.
type driverRunner struct {
	driver   neo4j.DriverWithContext
	database string
}

func (d *driverRunner) query(ctx context.Context, cypher string, params map[string]any) ([]*neo4j.Record, error) {
	var opts []neo4j.ExecuteQueryConfigurationOption
	if d.database != "" {
		opts = append(opts, neo4j.ExecuteQueryWithDatabase(d.database))
	}
	result, err := neo4j.ExecuteQuery(ctx, d.driver, cypher, params, neo4j.EagerResultTransformer, opts...)
	if err != nil {
		return nil, err
	}
	return result.Records, nil
}

func (d *driverRunner) write(ctx context.Context, stmts []statement) error {
	session := d.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: d.database,
	})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		for _, stmt := range stmts {
			result, err := tx.Run(ctx, stmt.cypher, stmt.params)
			if err != nil {
				return nil, err
			}
			if _, err := result.Consume(ctx); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	return err
}

func (d *driverRunner) close(ctx context.Context) error {
	return d.driver.Close(ctx)
}
