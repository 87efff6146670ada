// Coursegraph - Course Metadata Authoring and Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursegraph

package web

import (
	"errors"
	"net/http"

	"github.com/tomtom215/coursegraph/internal/audit"
	"github.com/tomtom215/coursegraph/internal/auth"
	"github.com/tomtom215/coursegraph/internal/logging"
)

const (
	msgAccountsUnavailable = "User accounts are unavailable: the database is not reachable"
	channelWeb             = "web"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	username := r.PostFormValue("username")
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	if h.accounts == nil {
		addFlash(r, categoryDanger, msgAccountsUnavailable)
		h.redirect(w, r, "/register")
		return
	}

	err := h.accounts.Register(r.Context(), username, email, password)
	if !errors.Is(err, auth.ErrMissingCredentials) {
		h.audit.LogRegistration(r.Context(), username, err, audit.SourceFromRequest(r, channelWeb))
	}
	switch {
	case err == nil:
		addFlash(r, categorySuccess, "Registration complete. Please log in.")
		h.redirect(w, r, "/login")
	case errors.Is(err, auth.ErrMissingCredentials):
		addFlash(r, categoryDanger, "Username and password required")
		h.redirect(w, r, "/register")
	case errors.Is(err, auth.ErrUserExists):
		addFlash(r, categoryDanger, "Username already taken")
		h.redirect(w, r, "/register")
	default:
		logging.Ctx(r.Context()).Error().Err(err).Msg("Registration failed")
		addFlash(r, categoryDanger, "Registration failed, please try again later")
		h.redirect(w, r, "/register")
	}
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	if h.accounts == nil {
		addFlash(r, categoryDanger, msgAccountsUnavailable)
		h.redirect(w, r, "/login")
		return
	}

	attempted := r.PostFormValue("username")
	username, err := h.accounts.Authenticate(r.Context(), attempted, r.PostFormValue("password"))
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			h.audit.LogAuthFailure(r.Context(), attempted, "invalid credentials", audit.SourceFromRequest(r, channelWeb))
		} else {
			logging.Ctx(r.Context()).Error().Err(err).Msg("Login failed")
		}
		addFlash(r, categoryDanger, "Invalid credentials")
		h.redirect(w, r, "/login")
		return
	}

	if _, err := h.sessions.Login(r.Context(), w, r, username); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to create session")
		addFlash(r, categoryDanger, "Login failed, please try again later")
		h.redirect(w, r, "/login")
		return
	}

	h.audit.LogAuthSuccess(r.Context(), username, auth.MethodSession, audit.SourceFromRequest(r, channelWeb))
	addFlash(r, categorySuccess, "Logged in successfully")
	h.redirect(w, r, "/")
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	username := auth.UsernameFromContext(r.Context())
	if err := h.sessions.Logout(r.Context(), w, r); err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("Failed to delete session")
	}
	if username != "" {
		h.audit.LogLogout(r.Context(), username, audit.SourceFromRequest(r, channelWeb))
	}
	addFlash(r, categoryInfo, "Logged out")
	h.redirect(w, r, "/")
}
