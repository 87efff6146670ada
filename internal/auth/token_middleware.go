// Coursegraph - Course Metadata Authoring and Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursegraph

package auth

import (
	"net/http"
	"strings"

	"github.com/tomtom215/coursegraph/internal/logging"
)

// TokenMiddleware authenticates API requests by JWT bearer token, falling
// back to the browser session cookie.
type TokenMiddleware struct {
	jwt      *JWTManager
	sessions *SessionMiddleware

	// Unauthorized writes the response for RequireAuth rejections.
	Unauthorized http.HandlerFunc
}

// NewTokenMiddleware creates a TokenMiddleware. sessions may be nil.
func NewTokenMiddleware(jwt *JWTManager, sessions *SessionMiddleware) *TokenMiddleware {
	return &TokenMiddleware{
		jwt:      jwt,
		sessions: sessions,
		Unauthorized: func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "Unauthorized: authentication required", http.StatusUnauthorized)
		},
	}
}

// Authenticate attaches a Subject when the request carries a valid bearer
// token or session. An invalid bearer token does not fall back to the
// session.
func (m *TokenMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if subject := m.subject(r); subject != nil {
			r = r.WithContext(ContextWithSubject(r.Context(), subject))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAuth rejects requests without an authenticated Subject.
func (m *TokenMiddleware) RequireAuth(next http.Handler) http.Handler {
	return m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if SubjectFromContext(r.Context()) == nil {
			m.Unauthorized(w, r)
			return
		}
		next.ServeHTTP(w, r)
	}))
}

func (m *TokenMiddleware) subject(r *http.Request) *Subject {
	if s := SubjectFromContext(r.Context()); s != nil {
		return s
	}

	if token, ok := bearerToken(r); ok {
		claims, err := m.jwt.ValidateToken(token)
		if err != nil {
			logging.Ctx(r.Context()).Debug().Err(err).Msg("Rejected bearer token")
			return nil
		}
		return &Subject{Username: claims.Username, Method: MethodToken}
	}

	if m.sessions != nil {
		return m.sessions.SubjectFromRequest(r)
	}
	return nil
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
