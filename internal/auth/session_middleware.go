// Coursegraph - Course Metadata Authoring and Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursegraph

package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/coursegraph/internal/logging"
)

// SessionMiddlewareConfig holds configuration for the session middleware.
type SessionMiddlewareConfig struct {
	CookieName     string
	SessionTTL     time.Duration
	SlidingSession bool // extend expiry on every authenticated request
	CookiePath     string
	CookieSecure   bool
	CookieSameSite http.SameSite
}

// DefaultSessionMiddlewareConfig returns sensible defaults.
func DefaultSessionMiddlewareConfig() *SessionMiddlewareConfig {
	return &SessionMiddlewareConfig{
		CookieName:     "coursegraph_session",
		SessionTTL:     24 * time.Hour,
		SlidingSession: true,
		CookiePath:     "/",
		CookieSecure:   false,
		CookieSameSite: http.SameSiteLaxMode,
	}
}

// SessionMiddleware provides cookie session authentication.
type SessionMiddleware struct {
	store  SessionStore
	config *SessionMiddlewareConfig
}

// NewSessionMiddleware creates a new session middleware.
func NewSessionMiddleware(store SessionStore, config *SessionMiddlewareConfig) *SessionMiddleware {
	if config == nil {
		config = DefaultSessionMiddlewareConfig()
	}
	return &SessionMiddleware{store: store, config: config}
}

// Store returns the backing session store.
func (m *SessionMiddleware) Store() SessionStore {
	return m.store
}

// Authenticate attaches the session Subject to the request context when
// the cookie names a live session. Requests without one continue
// anonymously.
func (m *SessionMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if subject := m.SubjectFromRequest(r); subject != nil {
			r = r.WithContext(ContextWithSubject(r.Context(), subject))
		}
		next.ServeHTTP(w, r)
	})
}

// SubjectFromRequest resolves the session cookie to a Subject, or nil.
func (m *SessionMiddleware) SubjectFromRequest(r *http.Request) *Subject {
	sessionID := m.sessionID(r)
	if sessionID == "" {
		return nil
	}

	session, err := m.store.Get(r.Context(), sessionID)
	if err != nil {
		if !errors.Is(err, ErrSessionNotFound) && !errors.Is(err, ErrSessionExpired) {
			logging.Ctx(r.Context()).Error().Err(err).Msg("Session lookup error")
		}
		return nil
	}

	if m.config.SlidingSession {
		newExpiry := time.Now().Add(m.config.SessionTTL)
		if err := m.store.Touch(r.Context(), sessionID, newExpiry); err != nil {
			logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to touch session")
		}
	}
	return session.ToSubject()
}

func (m *SessionMiddleware) sessionID(r *http.Request) string {
	cookie, err := r.Cookie(m.config.CookieName)
	if err == nil {
		return cookie.Value
	}
	return ""
}

// Login starts a session for username and sets the cookie. Any session the
// request already carried is deleted first.
func (m *SessionMiddleware) Login(ctx context.Context, w http.ResponseWriter, r *http.Request, username string) (*Session, error) {
	if old := m.sessionID(r); old != "" {
		if err := m.store.Delete(ctx, old); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Msg("Failed to delete previous session")
		}
	}

	session := NewSession(username, m.config.SessionTTL)
	if err := m.store.Create(ctx, session); err != nil {
		return nil, err
	}
	m.SetSessionCookie(w, session.ID)
	return session, nil
}

// Logout deletes the request's session and clears the cookie.
func (m *SessionMiddleware) Logout(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	defer m.ClearSessionCookie(w)
	if id := m.sessionID(r); id != "" {
		return m.store.Delete(ctx, id)
	}
	return nil
}

// SetSessionCookie sets the session cookie on the response.
func (m *SessionMiddleware) SetSessionCookie(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.config.CookieName,
		Value:    sessionID,
		Path:     m.config.CookiePath,
		MaxAge:   int(m.config.SessionTTL.Seconds()),
		Secure:   m.config.CookieSecure,
		HttpOnly: true,
		SameSite: m.config.CookieSameSite,
	})
}

// ClearSessionCookie clears the session cookie.
func (m *SessionMiddleware) ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.config.CookieName,
		Value:    "",
		Path:     m.config.CookiePath,
		MaxAge:   -1,
		Secure:   m.config.CookieSecure,
		HttpOnly: true,
		SameSite: m.config.CookieSameSite,
	})
}
