// Coursegraph - Course Metadata Authoring and Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursegraph

package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/tomtom215/coursegraph/internal/audit"
	"github.com/tomtom215/coursegraph/internal/auth"
	"github.com/tomtom215/coursegraph/internal/database"
	"github.com/tomtom215/coursegraph/internal/logging"
	"github.com/tomtom215/coursegraph/internal/metrics"
	"github.com/tomtom215/coursegraph/internal/models"
	"github.com/tomtom215/coursegraph/internal/validation"
)

const msgStoreUnavailable = "Neo4j is not available"

// SubmitCourse stores a course submission for the authenticated user. The
// title is required; every other missing field is reported, not rejected.
func (h *Handler) SubmitCourse(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var sub models.CourseSubmission
	if err := decodeJSON(w, r, &sub); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	sub.Course.Title = strings.TrimSpace(sub.Course.Title)
	if verr := validation.ValidateStruct(&sub); verr != nil {
		rw.ValidationError(verr)
		return
	}
	if h.store == nil {
		rw.ServiceUnavailable(msgStoreUnavailable)
		return
	}

	missing := validation.MissingFields(&sub)
	username := auth.UsernameFromContext(r.Context())
	err := h.store.StoreCourse(r.Context(), username, &sub)
	metrics.RecordSubmission("api", len(missing), err)
	h.audit.LogCourseSubmission(r.Context(), username, sub.Course.Title, len(missing), err, audit.SourceFromRequest(r, channelAPI))
	if err != nil {
		if errors.Is(err, database.ErrMissingTitle) {
			rw.BadRequest("course title is required")
			return
		}
		h.storeError(rw, err)
		return
	}

	logging.Ctx(r.Context()).Info().
		Str("title", sub.Course.Title).
		Str("username", username).
		Int("missing_fields", len(missing)).
		Msg("Course stored")

	rw.Created(models.SubmissionResult{
		Title:         sub.Course.Title,
		Stored:        true,
		MissingFields: missing,
	})
}

// SimilarCourses searches stored submissions whose title contains the
// query.
func (h *Handler) SimilarCourses(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	title, err := requireParam(r, "title")
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if h.store == nil {
		rw.ServiceUnavailable(msgStoreUnavailable)
		return
	}

	matches, err := h.store.SearchSimilarCourses(r.Context(), title)
	if err != nil {
		h.storeError(rw, err)
		return
	}
	rw.Success(matches)
}

// ComplementaryContent lists resources of similar stored courses that are
// not in the exclude list.
func (h *Handler) ComplementaryContent(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	title, err := requireParam(r, "title")
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if h.store == nil {
		rw.ServiceUnavailable(msgStoreUnavailable)
		return
	}

	links, err := h.store.FindComplementaryContent(r.Context(), title, getListParam(r, "exclude"))
	if err != nil {
		h.storeError(rw, err)
		return
	}
	rw.Success(links)
}

// storeError maps Neo4j failures to 503 when the circuit is open and 500
// otherwise.
func (h *Handler) storeError(rw *ResponseWriter, err error) {
	if errors.Is(err, database.ErrUnavailable) {
		logging.Ctx(rw.r.Context()).Warn().Err(err).Msg("Neo4j unavailable")
		rw.ServiceUnavailable(msgStoreUnavailable)
		return
	}
	rw.DatabaseError(err)
}
