// Coursegraph - Course Metadata Authoring and Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursegraph

package api

import (
	"net/http"

	"github.com/tomtom215/coursegraph/internal/audit"
	"github.com/tomtom215/coursegraph/internal/auth"
	"github.com/tomtom215/coursegraph/internal/validation"
)

// AccountActivity returns the caller's own audit trail, newest first.
func (h *Handler) AccountActivity(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	req := CatalogPageRequest{
		Limit:  getIntParam(r, "limit", defaultPageLimit),
		Offset: getIntParam(r, "offset", 0),
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		rw.ValidationError(verr)
		return
	}

	filter := audit.QueryFilter{ActorID: auth.UsernameFromContext(r.Context())}
	total, err := h.audit.Count(r.Context(), filter)
	if err != nil {
		rw.InternalError("Failed to read account activity")
		return
	}
	filter.Limit, filter.Offset = req.Limit, req.Offset
	events, err := h.audit.Query(r.Context(), filter)
	if err != nil {
		rw.InternalError("Failed to read account activity")
		return
	}

	rw.SuccessWithPagination(events, &PaginationMeta{
		Total:   int(total),
		Count:   len(events),
		Offset:  req.Offset,
		Limit:   req.Limit,
		HasMore: int64(req.Offset+len(events)) < total,
	})
}
