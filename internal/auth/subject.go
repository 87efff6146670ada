// Coursegraph - Course Metadata Authoring and Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursegraph

package auth

import "context"

// Authentication methods recorded on a Subject.
const (
	MethodSession = "session"
	MethodToken   = "token"
)

// Subject is the authenticated user of a request.
type Subject struct {
	Username  string
	Method    string
	SessionID string // set for MethodSession
}

type contextKey int

const subjectContextKey contextKey = iota

// ContextWithSubject returns a copy of ctx carrying s.
func ContextWithSubject(ctx context.Context, s *Subject) context.Context {
	return context.WithValue(ctx, subjectContextKey, s)
}

// SubjectFromContext returns the authenticated subject or nil.
func SubjectFromContext(ctx context.Context) *Subject {
	s, _ := ctx.Value(subjectContextKey).(*Subject)
	return s
}

// UsernameFromContext returns the authenticated username or "".
func UsernameFromContext(ctx context.Context) string {
	if s := SubjectFromContext(ctx); s != nil {
		return s.Username
	}
	return ""
}
