// Coursegraph - Course Metadata Authoring and Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursegraph

package web

import (
	"context"
	"encoding/base64"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/coursegraph/internal/logging"
)

// Flash categories, matching the Bootstrap alert classes used by the layout.
const (
	categorySuccess = "success"
	categoryInfo    = "info"
	categoryWarning = "warning"
	categoryDanger  = "danger"
)

const flashCookieName = "coursegraph_flash"

// Flash is a one-time message shown on the next rendered page.
type Flash struct {
	Category string `json:"c"`
	Message  string `json:"m"`
}

// flashState holds the flashes of one request: those carried in by the
// cookie plus those added while handling it.
type flashState struct {
	incoming []Flash
	pending  []Flash
}

type flashKey struct{}

// withFlashes decodes the flash cookie into the request context.
func withFlashes(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		state := &flashState{incoming: readFlashCookie(r)}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), flashKey{}, state)))
	})
}

func flashes(r *http.Request) *flashState {
	if s, ok := r.Context().Value(flashKey{}).(*flashState); ok {
		return s
	}
	return &flashState{}
}

// addFlash queues a message for the next rendered page.
func addFlash(r *http.Request, category, message string) {
	s := flashes(r)
	s.pending = append(s.pending, Flash{Category: category, Message: message})
}

func (s *flashState) all() []Flash {
	out := make([]Flash, 0, len(s.incoming)+len(s.pending))
	out = append(out, s.incoming...)
	return append(out, s.pending...)
}

func readFlashCookie(r *http.Request) []Flash {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}
	var out []Flash
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}

// carryFlashes stores every unseen flash in the cookie for the next request.
func (h *Handler) carryFlashes(w http.ResponseWriter, r *http.Request) {
	all := flashes(r).all()
	if len(all) == 0 {
		return
	}
	data, err := json.Marshal(all)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to encode flash messages")
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString(data),
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// consumeFlashes returns every flash for display and clears the cookie.
func (h *Handler) consumeFlashes(w http.ResponseWriter, r *http.Request) []Flash {
	s := flashes(r)
	if len(s.incoming) > 0 {
		http.SetCookie(w, &http.Cookie{
			Name:     flashCookieName,
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   h.cookieSecure,
			SameSite: http.SameSiteLaxMode,
		})
	}
	all := s.all()
	s.incoming, s.pending = nil, nil
	return all
}

// redirect carries pending flashes and sends a 302.
func (h *Handler) redirect(w http.ResponseWriter, r *http.Request, url string) {
	h.carryFlashes(w, r)
	http.Redirect(w, r, url, http.StatusFound)
}
