// Coursegraph - Course Metadata Authoring and Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursegraph

package api

import (
	"net/http"
	"strings"

	"github.com/tomtom215/coursegraph/internal/validation"
)

// CatalogCourses lists knowledge graph courses sorted by name, one page at
// a time.
func (h *Handler) CatalogCourses(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	req := CatalogPageRequest{
		Limit:  getIntParam(r, "limit", defaultPageLimit),
		Offset: getIntParam(r, "offset", 0),
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		rw.ValidationError(verr)
		return
	}

	all := h.catalog.ListCourses()
	start := min(req.Offset, len(all))
	end := min(start+req.Limit, len(all))
	page := all[start:end]

	rw.SuccessWithPagination(page, &PaginationMeta{
		Total:   len(all),
		Count:   len(page),
		Offset:  req.Offset,
		Limit:   req.Limit,
		HasMore: end < len(all),
	})
}

// CatalogCourseDetail returns one course by IRI or name.
func (h *Handler) CatalogCourseDetail(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	id, err := requireParam(r, "id")
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	detail, ok := h.catalog.CourseDetail(id)
	if !ok {
		rw.NotFound("Course not found in the knowledge graph")
		return
	}
	rw.Success(detail)
}

// CatalogSearch ranks courses by title, or by description when no title
// is given.
func (h *Handler) CatalogSearch(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	q := r.URL.Query()
	req := CatalogSearchRequest{
		Title:       strings.TrimSpace(q.Get("title")),
		Description: strings.TrimSpace(q.Get("description")),
		Limit:       getIntParam(r, "limit", 0),
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		rw.ValidationError(verr)
		return
	}
	if req.Title == "" && req.Description == "" {
		rw.BadRequest("title or description is required")
		return
	}
	if !h.catalog.Loaded() {
		rw.ServiceUnavailable("Knowledge graph is not loaded")
		return
	}

	rw.Success(h.catalog.SearchSimilar(req.Title, req.Description, req.Limit))
}
