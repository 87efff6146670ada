// Coursegraph - Course Metadata Authoring and Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursegraph

package database

import (
	"context"

	"github.com/tomtom215/coursegraph/internal/models"
)

// CreateUser stores a new user. An existing username is left untouched and
// reported with created=false.
func (s *Store) CreateUser(ctx context.Context, username, email, passwordHash string) (bool, error) {
	records, err := s.query(ctx, "create_user", createUserCypher, map[string]any{
		"username":      username,
		"email":         email,
		"password_hash": passwordHash,
	})
	if err != nil {
		return false, err
	}
	if len(records) == 0 {
		return false, nil
	}
	return boolValue(records[0], "created"), nil
}

// GetUser returns the public fields of a user or ErrNotFound.
func (s *Store) GetUser(ctx context.Context, username string) (*models.User, error) {
	records, err := s.query(ctx, "get_user", getUserCypher, map[string]any{"username": username})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNotFound
	}
	return &models.User{
		Username: stringValue(records[0], "username"),
		Email:    stringValue(records[0], "email"),
	}, nil
}

// PasswordHash returns the stored bcrypt hash of a user. ok is false when
// the user does not exist or has no hash.
func (s *Store) PasswordHash(ctx context.Context, username string) (hash string, ok bool, err error) {
	records, err := s.query(ctx, "password_hash", passwordHashCypher, map[string]any{"username": username})
	if err != nil {
		return "", false, err
	}
	if len(records) == 0 {
		return "", false, nil
	}
	hash = stringValue(records[0], "password_hash")
	return hash, hash != "", nil
}
