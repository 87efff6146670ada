// Coursegraph - Course Metadata Authoring and Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursegraph

package metrics

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordNeo4jQuery_ErrorTruncation(t *testing.T) {
	long := errors.New(strings.Repeat("x", 80))
	RecordNeo4jQuery("store_course", time.Millisecond, long)

	got := testutil.ToFloat64(Neo4jQueryErrors.WithLabelValues("store_course", strings.Repeat("x", 50)))
	if got != 1 {
		t.Errorf("expected truncated error label to be counted once, got %v", got)
	}
}

func TestRecordNeo4jQuery_Success(t *testing.T) {
	before := testutil.CollectAndCount(Neo4jQueryErrors)
	RecordNeo4jQuery("get_user", 2*time.Millisecond, nil)
	if after := testutil.CollectAndCount(Neo4jQueryErrors); after != before {
		t.Errorf("successful query should not add error series: %d -> %d", before, after)
	}
}

func TestRecordSubmission(t *testing.T) {
	stored := CourseSubmissions.WithLabelValues("web", "stored")
	failed := CourseSubmissions.WithLabelValues("web", "failed")
	s0, f0 := testutil.ToFloat64(stored), testutil.ToFloat64(failed)

	RecordSubmission("web", 3, nil)
	RecordSubmission("web", 0, errors.New("neo4j down"))

	if got := testutil.ToFloat64(stored) - s0; got != 1 {
		t.Errorf("stored delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(failed) - f0; got != 1 {
		t.Errorf("failed delta = %v, want 1", got)
	}
}

func TestRecordAuthAttempt(t *testing.T) {
	c := AuthAttempts.WithLabelValues("login", "false")
	before := testutil.ToFloat64(c)
	RecordAuthAttempt("login", false)
	if got := testutil.ToFloat64(c) - before; got != 1 {
		t.Errorf("login failure delta = %v, want 1", got)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	TrackActiveRequest(true)
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests) - before; got != 1 {
		t.Errorf("active requests delta = %v, want 1", got)
	}
	TrackActiveRequest(false)
}

func TestRecordCatalogSearch(t *testing.T) {
	RecordCatalogSearch(3*time.Millisecond, 4)
	if n := testutil.CollectAndCount(CatalogSearchDuration); n != 1 {
		t.Errorf("expected one histogram series, got %d", n)
	}
}
