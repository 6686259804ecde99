// Package calendar materializes contract deliverables as calendar events,
// idempotently: re-syncing the same deliverable set creates nothing new.
package calendar

import (
	"context"
	"time"
)

// Deliverable is one dated obligation extracted by the creator pipeline.
type Deliverable struct {
	Summary     string `json:"summary"`
	Description string `json:"description"`
	StartDate   string `json:"start_date"`
	StartTime   string `json:"start_time,omitempty"`
	Timezone    string `json:"timezone,omitempty"`
	UserEmail   string `json:"user_email"`
}

// Event mirrors the Google Calendar v3 event resource, limited to the
// fields this service reads and writes.
type Event struct {
	ID                 string              `json:"id,omitempty"`
	Summary            string              `json:"summary"`
	Description        string              `json:"description,omitempty"`
	Start              *EventDateTime      `json:"start,omitempty"`
	End                *EventDateTime      `json:"end,omitempty"`
	Attendees          []Attendee          `json:"attendees,omitempty"`
	Reminders          *Reminders          `json:"reminders,omitempty"`
	ExtendedProperties *ExtendedProperties `json:"extendedProperties,omitempty"`
	HTMLLink           string              `json:"htmlLink,omitempty"`
}

type EventDateTime struct {
	DateTime string `json:"dateTime,omitempty"`
	TimeZone string `json:"timeZone,omitempty"`
}

type Attendee struct {
	Email string `json:"email"`
}

type Reminders struct {
	UseDefault bool `json:"useDefault"`
}

type ExtendedProperties struct {
	Private map[string]string `json:"private,omitempty"`
}

// API is the calendar transport consumed by the Synchronizer. The real
// implementation talks to Google Calendar; tests substitute a fake.
type API interface {
	ListEvents(ctx context.Context, timeMin, timeMax time.Time, query string) ([]Event, error)
	InsertEvent(ctx context.Context, event *Event) (*Event, error)
}

// Outcome classifies what happened to a single deliverable.
type Outcome string

const (
	OutcomeCreated Outcome = "created"
	OutcomeExists  Outcome = "exists"
	OutcomeSkipped Outcome = "skipped"
	OutcomeError   Outcome = "error"
)

// Result is the per-record outcome of one sync attempt.
type Result struct {
	Title   string
	Outcome Outcome
	Detail  string
}

// Summary aggregates a whole batch.
type Summary struct {
	Created int
	Exists  int
	Skipped int
	Errored int
	Results []Result
}
