// Coursegraph - Course Metadata Authoring and Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursegraph

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/coursegraph/internal/audit"
	"github.com/tomtom215/coursegraph/internal/auth"
	"github.com/tomtom215/coursegraph/internal/logging"
	"github.com/tomtom215/coursegraph/internal/models"
	"github.com/tomtom215/coursegraph/internal/validation"
)

const channelAPI = "api"

// Register creates a user account.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.accounts == nil {
		rw.ServiceUnavailable("User accounts are unavailable")
		return
	}

	var req models.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		rw.ValidationError(verr)
		return
	}

	err := h.accounts.Register(r.Context(), req.Username, req.Email, req.Password)
	if !errors.Is(err, auth.ErrMissingCredentials) {
		h.audit.LogRegistration(r.Context(), req.Username, err, audit.SourceFromRequest(r, channelAPI))
	}
	switch {
	case err == nil:
		rw.Created(models.User{Username: req.Username, Email: req.Email})
	case errors.Is(err, auth.ErrMissingCredentials):
		rw.BadRequest("Username and password required")
	case errors.Is(err, auth.ErrUserExists):
		rw.Conflict("Username already taken")
	default:
		h.storeError(rw, err)
	}
}

// Login checks credentials and issues a bearer token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.accounts == nil || h.jwt == nil {
		rw.ServiceUnavailable("User accounts are unavailable")
		return
	}

	var req models.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		rw.ValidationError(verr)
		return
	}

	username, err := h.accounts.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			h.audit.LogAuthFailure(r.Context(), req.Username, "invalid credentials", audit.SourceFromRequest(r, channelAPI))
			rw.Unauthorized("Invalid credentials")
			return
		}
		h.storeError(rw, err)
		return
	}

	token, expiresAt, err := h.jwt.GenerateToken(username)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to sign token")
		rw.InternalError("Failed to issue token")
		return
	}

	h.audit.LogAuthSuccess(r.Context(), username, auth.MethodToken, audit.SourceFromRequest(r, channelAPI))
	rw.Success(models.TokenResponse{
		Token:     token,
		Username:  username,
		ExpiresAt: expiresAt.Unix(),
	})
}
