// Coursegraph - Course Metadata Authoring and Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursegraph

package audit

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/coursegraph/internal/logging"
)

var _ suture.Service = (*Logger)(nil)

// serveUntilDrained runs l.Serve, cancels it and waits for it to drain.
func serveUntilDrained(t *testing.T, l *Logger) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Serve(ctx) }()
	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return")
	}
}

func TestLogger_HelpersPersistEvents(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore(0)
	l := NewLogger(store, nil)

	ctx := logging.ContextWithRequestID(context.Background(), "req-7")
	src := Source{IPAddress: "192.0.2.1", Channel: "web"}
	l.LogRegistration(ctx, "alice", nil, src)
	l.LogAuthFailure(ctx, "alice", "invalid credentials", src)
	l.LogAuthSuccess(ctx, "alice", "session", src)
	l.LogCourseSubmission(ctx, "alice", "Graph Databases", 3, nil, src)
	l.LogLogout(ctx, "alice", src)
	serveUntilDrained(t, l)

	events, err := l.Query(context.Background(), QueryFilter{ActorID: "alice"})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	wantTypes := []EventType{
		EventTypeLogout, EventTypeCourseSubmitted, EventTypeAuthSuccess,
		EventTypeAuthFailure, EventTypeUserCreated,
	}
	if len(events) != len(wantTypes) {
		t.Fatalf("got %d events, want %d", len(events), len(wantTypes))
	}
	for i, want := range wantTypes {
		e := events[i]
		if e.Type != want {
			t.Errorf("events[%d].Type = %s, want %s", i, e.Type, want)
		}
		if e.ID == "" || e.Timestamp.IsZero() || e.RequestID != "req-7" {
			t.Errorf("events[%d] missing id, timestamp or request id: %+v", i, e)
		}
	}

	failure := events[3]
	if failure.Outcome != OutcomeFailure || failure.Severity != SeverityWarning {
		t.Errorf("failure event = %+v", failure)
	}
	submitted := events[1]
	if submitted.Target == nil || submitted.Target.ID != "alice:Graph Databases" {
		t.Errorf("submission target = %+v", submitted.Target)
	}
	if string(submitted.Metadata) != `{"missing_fields":3}` {
		t.Errorf("submission metadata = %s", submitted.Metadata)
	}
}

func TestLogger_FailedRegistration(t *testing.T) {
	t.Parallel()

	l := NewLogger(NewMemoryStore(0), nil)
	l.LogRegistration(context.Background(), "bob", errors.New("username already exists"), Source{})
	serveUntilDrained(t, l)

	events, _ := l.Query(context.Background(), QueryFilter{Outcomes: []Outcome{OutcomeFailure}})
	if len(events) != 1 || !strings.Contains(events[0].Description, "already exists") {
		t.Errorf("events = %+v", events)
	}
}

func TestLogger_Filtering(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		config *Config
		want   int64
	}{
		{"disabled", &Config{Enabled: false}, 0},
		{"warning threshold drops info", &Config{Enabled: true, LogLevel: SeverityWarning}, 1},
		{"info threshold keeps all", &Config{Enabled: true, LogLevel: SeverityInfo}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			l := NewLogger(NewMemoryStore(0), tt.config)
			l.LogAuthSuccess(context.Background(), "alice", "jwt", Source{})
			l.LogAuthFailure(context.Background(), "alice", "bad password", Source{})
			serveUntilDrained(t, l)

			n, _ := l.Count(context.Background(), QueryFilter{})
			if n != tt.want {
				t.Errorf("Count() = %d, want %d", n, tt.want)
			}
		})
	}
}

func TestLogger_FullBufferDrops(t *testing.T) {
	t.Parallel()

	l := NewLogger(NewMemoryStore(0), &Config{Enabled: true, BufferSize: 1})
	l.LogAuthSuccess(context.Background(), "alice", "jwt", Source{})
	l.LogAuthSuccess(context.Background(), "alice", "jwt", Source{})

	if l.Dropped() != 1 {
		t.Errorf("Dropped() = %d, want 1", l.Dropped())
	}
}

func TestLogger_Retention(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore(0)
	old := &Event{ID: "old", Timestamp: time.Now().Add(-48 * time.Hour)}
	fresh := &Event{ID: "fresh", Timestamp: time.Now()}
	_ = store.Save(context.Background(), old)
	_ = store.Save(context.Background(), fresh)

	l := NewLogger(store, &Config{Enabled: true, Retention: 24 * time.Hour})
	l.applyRetention(context.Background())

	if store.Len() != 1 {
		t.Errorf("Len() = %d, want 1 after retention", store.Len())
	}
}

func TestLogger_NilIsNoop(t *testing.T) {
	t.Parallel()

	var l *Logger
	l.LogAuthSuccess(context.Background(), "alice", "jwt", Source{})
	events, err := l.Query(context.Background(), QueryFilter{})
	if err != nil || events == nil || len(events) != 0 {
		t.Errorf("Query() = %v, %v", events, err)
	}
	if l.Dropped() != 0 {
		t.Error("nil logger reported drops")
	}
}

func TestSourceFromRequest(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest("POST", "/login", nil)
	r.RemoteAddr = "198.51.100.4:5123"
	r.Header.Set("User-Agent", "curl/8.0")

	src := SourceFromRequest(r, "api")
	if src.IPAddress != "198.51.100.4" || src.UserAgent != "curl/8.0" || src.Channel != "api" {
		t.Errorf("SourceFromRequest() = %+v", src)
	}
}
