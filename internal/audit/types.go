// Coursegraph - Course Metadata Authoring and Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursegraph

// Package audit records security-relevant account and authoring events:
// logins, failed logins, registrations, logouts and course submissions.
//
// Events are queued by Logger.Log and written by Logger.Serve, which runs
// under the supervisor tree. Each user can read back their own trail
// through the account activity endpoint.
package audit

import (
	"context"
	"time"

	"github.com/goccy/go-json"
)

// EventType categorizes an audit event.
type EventType string

const (
	EventTypeAuthSuccess     EventType = "auth.success"
	EventTypeAuthFailure     EventType = "auth.failure"
	EventTypeLogout          EventType = "auth.logout"
	EventTypeUserCreated     EventType = "user.created"
	EventTypeCourseSubmitted EventType = "course.submitted"
)

// Severity of an audit event.
type Severity string

const (
	SeverityDebug    Severity = "debug"
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityError    Severity = "error"
	SeverityCritical Severity = "critical"
)

var severityOrder = map[Severity]int{
	SeverityDebug:    0,
	SeverityInfo:     1,
	SeverityWarning:  2,
	SeverityError:    3,
	SeverityCritical: 4,
}

// Outcome of the audited action.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
)

// Event is a single audit record.
type Event struct {
	ID          string          `json:"id"`
	Timestamp   time.Time       `json:"timestamp"`
	Type        EventType       `json:"type"`
	Severity    Severity        `json:"severity"`
	Outcome     Outcome         `json:"outcome"`
	Actor       Actor           `json:"actor"`
	Target      *Target         `json:"target,omitempty"`
	Source      Source          `json:"source"`
	Action      string          `json:"action"`
	Description string          `json:"description"`
	Metadata    json.RawMessage `json:"metadata,omitempty"`
	RequestID   string          `json:"request_id,omitempty"`
}

// Actor performed the action. For failed logins ID is the attempted
// username.
type Actor struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	AuthMethod string `json:"auth_method,omitempty"`
}

// Target is the resource acted upon.
type Target struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Name string `json:"name,omitempty"`
}

// Source describes where the request came from.
type Source struct {
	IPAddress string `json:"ip_address"`
	UserAgent string `json:"user_agent,omitempty"`
	Channel   string `json:"channel"` // "web" or "api"
}

// Store persists audit events.
type Store interface {
	Save(ctx context.Context, event *Event) error
	Query(ctx context.Context, filter QueryFilter) ([]Event, error)
	Count(ctx context.Context, filter QueryFilter) (int64, error)
	Delete(ctx context.Context, olderThan time.Time) (int64, error)
}

// QueryFilter selects events. Zero fields match everything.
type QueryFilter struct {
	Types     []EventType
	Outcomes  []Outcome
	ActorID   string
	StartTime *time.Time
	EndTime   *time.Time
	Limit     int
	Offset    int
}
