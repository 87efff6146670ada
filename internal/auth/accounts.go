// Coursegraph - Course Metadata Authoring and Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursegraph

package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/tomtom215/coursegraph/internal/logging"
	"github.com/tomtom215/coursegraph/internal/metrics"
)

var (
	// ErrMissingCredentials is returned when username or password is empty.
	ErrMissingCredentials = errors.New("username and password are required")

	// ErrUserExists is returned when registering a taken username.
	ErrUserExists = errors.New("username already exists")

	// ErrInvalidCredentials is returned for an unknown user or a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// UserStore persists user accounts.
type UserStore interface {
	// CreateUser stores a user unless the username is taken; created is
	// false for an existing username.
	CreateUser(ctx context.Context, username, email, passwordHash string) (created bool, err error)
	// PasswordHash returns the stored hash; ok is false for unknown users.
	PasswordHash(ctx context.Context, username string) (hash string, ok bool, err error)
}

// Accounts registers and authenticates users.
type Accounts struct {
	store UserStore
}

// NewAccounts creates an Accounts service over store.
func NewAccounts(store UserStore) *Accounts {
	return &Accounts{store: store}
}

// Register creates a user. Username and password are required; the email
// is optional.
func (a *Accounts) Register(ctx context.Context, username, email, password string) error {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || password == "" {
		return ErrMissingCredentials
	}

	hash, err := HashPassword(password)
	if err != nil {
		return err
	}

	created, err := a.store.CreateUser(ctx, username, email, hash)
	if err != nil {
		metrics.RecordAuthAttempt("register", false)
		return err
	}
	if !created {
		metrics.RecordAuthAttempt("register", false)
		return ErrUserExists
	}

	metrics.RecordAuthAttempt("register", true)
	logging.Ctx(ctx).Info().Str("username", username).Msg("User registered")
	return nil
}

// Authenticate checks a username/password pair and returns the canonical
// username. Unknown users and wrong passwords both yield
// ErrInvalidCredentials.
func (a *Accounts) Authenticate(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		metrics.RecordAuthAttempt("login", false)
		return "", ErrInvalidCredentials
	}

	hash, ok, err := a.store.PasswordHash(ctx, username)
	if err != nil {
		metrics.RecordAuthAttempt("login", false)
		return "", err
	}
	if !ok || !CheckPassword(hash, password) {
		metrics.RecordAuthAttempt("login", false)
		logging.Ctx(ctx).Warn().Str("username", username).Msg("Failed login attempt")
		return "", ErrInvalidCredentials
	}

	metrics.RecordAuthAttempt("login", true)
	return username, nil
}
