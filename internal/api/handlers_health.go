// Coursegraph - Course Metadata Authoring and Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursegraph

package api

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/tomtom215/coursegraph/internal/models"
)

// statusPingTimeout bounds the Neo4j check of the status endpoint.
const statusPingTimeout = 2 * time.Second

// Status reports the knowledge graph and Neo4j state inside the API
// envelope. It always answers 200; the status field is "ok" when the RDF
// file exists.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(h.statusReport(r.Context()))
}

// LegacyStatus serves the same report as Status at the top level of the
// body, the shape existing /status health checks read.
func (h *Handler) LegacyStatus(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).writeJSON(http.StatusOK, h.statusReport(r.Context()))
}

func (h *Handler) statusReport(ctx context.Context) models.StatusReport {
	report := models.StatusReport{
		Status: models.StatusDegraded,
		RDF: models.RDFStatus{
			TripleCount: h.catalog.TripleCount(),
			CourseCount: h.catalog.CourseCount(),
		},
	}

	if h.config != nil {
		report.RDF.File = h.config.Knowledge.RDFFile
		if info, err := os.Stat(report.RDF.File); err == nil && !info.IsDir() {
			report.RDF.FileExists = true
			report.Status = models.StatusOK
		}
		report.Neo4j.Configured = h.config.Neo4jConfigured()
	}

	if h.store == nil {
		if report.Neo4j.Configured {
			report.Neo4j.Error = "not connected"
		}
		return report
	}

	pingCtx, cancel := context.WithTimeout(ctx, statusPingTimeout)
	defer cancel()
	if err := h.store.Ping(pingCtx); err != nil {
		report.Neo4j.Error = err.Error()
	} else {
		report.Neo4j.Connected = true
	}
	return report
}

// HealthLive answers 200 while the process is running.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady answers 200 when the knowledge graph is loaded and 503
// otherwise. Neo4j is reported but does not gate readiness; the catalog
// stays usable without it.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ready := h.catalog.Loaded()
	status := http.StatusOK
	if !ready {
		status = http.StatusServiceUnavailable
	}
	NewResponseWriter(w, r).Status(status, map[string]interface{}{
		"ready":            ready,
		"knowledge_loaded": ready,
		"neo4j_available":  h.store != nil,
	})
}
