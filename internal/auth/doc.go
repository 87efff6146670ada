// Coursegraph - Course Metadata Authoring and Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursegraph

// Package auth provides user accounts, browser sessions and API tokens.
//
// Passwords are hashed with bcrypt and stored through a UserStore (the
// Neo4j store in production). Browser users hold an opaque session ID in a
// cookie backed by a SessionStore (in-memory or BadgerDB). API clients send
// a JWT bearer token obtained from the login endpoint; the API also accepts
// a valid browser session.
//
// Both middlewares place a *Subject in the request context:
//
//	subject := auth.SubjectFromContext(r.Context())
//	if subject == nil {
//	    // anonymous
//	}
package auth
