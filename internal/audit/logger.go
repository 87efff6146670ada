// Coursegraph - Course Metadata Authoring and Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursegraph

package audit

import (
	"context"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/coursegraph/internal/logging"
)

// Config holds audit logger settings.
type Config struct {
	Enabled         bool
	LogLevel        Severity
	Retention       time.Duration
	CleanupInterval time.Duration
	BufferSize      int
	LogToStdout     bool
}

// DefaultConfig returns the production defaults.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		LogLevel:        SeverityInfo,
		Retention:       90 * 24 * time.Hour,
		CleanupInterval: 24 * time.Hour,
		BufferSize:      1000,
		LogToStdout:     false,
	}
}

// Logger queues audit events and writes them to a Store. A nil *Logger is
// valid and discards everything.
type Logger struct {
	config  *Config
	store   Store
	events  chan *Event
	dropped atomic.Int64
}

// NewLogger creates a logger over store. Events are only persisted while
// Serve runs.
func NewLogger(store Store, config *Config) *Logger {
	if config == nil {
		config = DefaultConfig()
	}
	if config.BufferSize <= 0 {
		config.BufferSize = DefaultConfig().BufferSize
	}
	return &Logger{
		config: config,
		store:  store,
		events: make(chan *Event, config.BufferSize),
	}
}

// Log queues event without blocking. A full buffer drops the event.
func (l *Logger) Log(event *Event) {
	if l == nil || !l.config.Enabled {
		return
	}
	if severityOrder[event.Severity] < severityOrder[l.config.LogLevel] {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	select {
	case l.events <- event:
	default:
		l.dropped.Add(1)
		logging.Warn().Str("event_id", event.ID).Str("type", string(event.Type)).
			Msg("Audit event buffer full, dropping event")
	}
}

// Dropped returns the number of events lost to a full buffer.
func (l *Logger) Dropped() int64 {
	if l == nil {
		return 0
	}
	return l.dropped.Load()
}

// Serve writes queued events and applies retention until ctx is canceled,
// then drains the queue. It implements suture.Service.
func (l *Logger) Serve(ctx context.Context) error {
	interval := l.config.CleanupInterval
	if interval <= 0 {
		interval = DefaultConfig().CleanupInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			for {
				select {
				case event := <-l.events:
					l.write(event)
				default:
					return ctx.Err()
				}
			}
		case event := <-l.events:
			l.write(event)
		case <-ticker.C:
			l.applyRetention(ctx)
		}
	}
}

// String implements fmt.Stringer.
func (l *Logger) String() string {
	return "audit-logger"
}

func (l *Logger) write(event *Event) {
	if l.config.LogToStdout {
		if data, err := json.Marshal(event); err == nil {
			logging.Info().RawJSON("event", data).Msg("Audit event")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := l.store.Save(ctx, event); err != nil {
		logging.Error().Err(err).Str("event_id", event.ID).Msg("Failed to save audit event")
	}
}

func (l *Logger) applyRetention(ctx context.Context) {
	if l.config.Retention <= 0 {
		return
	}
	deleted, err := l.store.Delete(ctx, time.Now().Add(-l.config.Retention))
	if err != nil {
		logging.Error().Err(err).Msg("Audit retention cleanup failed")
		return
	}
	if deleted > 0 {
		logging.Info().Int64("deleted", deleted).Msg("Audit retention cleanup")
	}
}

// Query reads events from the store. A nil logger returns no events.
func (l *Logger) Query(ctx context.Context, filter QueryFilter) ([]Event, error) {
	if l == nil {
		return []Event{}, nil
	}
	return l.store.Query(ctx, filter)
}

// Count counts matching events.
func (l *Logger) Count(ctx context.Context, filter QueryFilter) (int64, error) {
	if l == nil {
		return 0, nil
	}
	return l.store.Count(ctx, filter)
}

func newEvent(ctx context.Context, typ EventType, outcome Outcome, username string, src Source) *Event {
	sev := SeverityInfo
	if outcome == OutcomeFailure {
		sev = SeverityWarning
	}
	return &Event{
		Type:      typ,
		Severity:  sev,
		Outcome:   outcome,
		Actor:     Actor{ID: username, Type: "user"},
		Source:    src,
		RequestID: logging.RequestIDFromContext(ctx),
	}
}

// LogAuthSuccess records a successful login. method is auth.MethodSession or auth.MethodToken.
func (l *Logger) LogAuthSuccess(ctx context.Context, username, method string, src Source) {
	e := newEvent(ctx, EventTypeAuthSuccess, OutcomeSuccess, username, src)
	e.Actor.AuthMethod = method
	e.Action = "login"
	e.Description = "User logged in"
	l.Log(e)
}

// LogAuthFailure records a rejected login for the attempted username.
func (l *Logger) LogAuthFailure(ctx context.Context, username, reason string, src Source) {
	e := newEvent(ctx, EventTypeAuthFailure, OutcomeFailure, username, src)
	e.Action = "login"
	e.Description = "Login rejected: " + reason
	l.Log(e)
}

// LogLogout records the end of a browser session.
func (l *Logger) LogLogout(ctx context.Context, username string, src Source) {
	e := newEvent(ctx, EventTypeLogout, OutcomeSuccess, username, src)
	e.Actor.AuthMethod = "session"
	e.Action = "logout"
	e.Description = "User logged out"
	l.Log(e)
}

// LogRegistration records an account registration attempt.
func (l *Logger) LogRegistration(ctx context.Context, username string, err error, src Source) {
	outcome, desc := OutcomeSuccess, "Account created"
	if err != nil {
		outcome, desc = OutcomeFailure, "Registration rejected: "+err.Error()
	}
	e := newEvent(ctx, EventTypeUserCreated, outcome, username, src)
	e.Action = "register"
	e.Description = desc
	e.Target = &Target{ID: username, Type: "user", Name: username}
	l.Log(e)
}

// LogCourseSubmission records a course description being stored.
func (l *Logger) LogCourseSubmission(ctx context.Context, username, title string, missingFields int, err error, src Source) {
	outcome, desc := OutcomeSuccess, "Course stored"
	if err != nil {
		outcome, desc = OutcomeFailure, "Course submission failed: "+err.Error()
	}
	e := newEvent(ctx, EventTypeCourseSubmitted, outcome, username, src)
	e.Action = "submit_course"
	e.Description = desc
	e.Target = &Target{ID: username + ":" + title, Type: "course", Name: title}
	e.Metadata = mustJSON(map[string]int{"missing_fields": missingFields})
	l.Log(e)
}

func mustJSON(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		return json.RawMessage("{}")
	}
	return data
}

// SourceFromRequest describes the client of r. RemoteAddr is expected to
// already hold the client address (chi's RealIP middleware runs first).
func SourceFromRequest(r *http.Request, channel string) Source {
	ip := r.RemoteAddr
	if host, _, err := net.SplitHostPort(ip); err == nil {
		ip = host
	}
	return Source{
		IPAddress: ip,
		UserAgent: r.UserAgent(),
		Channel:   channel,
	}
}
