package calendar

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"legal-agent-be/internal/pkg/logger"
)

const (
	// Deliverables without an explicit time land at 09:00 local.
	defaultHour     = 9
	defaultTimezone = "America/Los_Angeles"
	eventDuration   = time.Hour
	titlePrefix     = "📋 "
	// Private extended property carrying the idempotency key.
	dedupKeyProperty = "deliverableKey"
	// Short query substring keeps the search call cheap.
	maxQueryLen = 24
)

type Synchronizer struct {
	api    API
	logger logger.ILogger
}

func NewSynchronizer(api API, log logger.ILogger) *Synchronizer {
	return &Synchronizer{api: api, logger: log}
}

// Sync processes every deliverable independently: one record's failure never
// aborts the rest of the batch.
func (s *Synchronizer) Sync(ctx context.Context, deliverables []Deliverable) *Summary {
	summary := &Summary{}
	for _, d := range deliverables {
		result := s.syncOne(ctx, d)
		summary.Results = append(summary.Results, result)
		switch result.Outcome {
		case OutcomeCreated:
			summary.Created++
		case OutcomeExists:
			summary.Exists++
		case OutcomeSkipped:
			summary.Skipped++
		case OutcomeError:
			summary.Errored++
		}
		s.logger.Info("calendar", "deliverable processed", map[string]interface{}{
			"title":   result.Title,
			"outcome": string(result.Outcome),
			"detail":  result.Detail,
		})
	}
	return summary
}

func (s *Synchronizer) syncOne(ctx context.Context, d Deliverable) Result {
	title := strings.TrimSpace(d.Summary)
	if title == "" {
		return Result{Title: "(untitled)", Outcome: OutcomeSkipped, Detail: "missing summary"}
	}
	if strings.TrimSpace(d.StartDate) == "" {
		return Result{Title: title, Outcome: OutcomeSkipped, Detail: "missing start date"}
	}

	start, tzName, err := anchorTime(d)
	if err != nil {
		return Result{Title: title, Outcome: OutcomeSkipped, Detail: err.Error()}
	}

	// Search window: one day before to two days after the anchor date.
	dayStart := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	timeMin := dayStart.AddDate(0, 0, -1)
	timeMax := dayStart.AddDate(0, 0, 2)

	existing, err := s.api.ListEvents(ctx, timeMin, timeMax, querySubstring(title))
	if err != nil {
		return Result{Title: title, Outcome: OutcomeError, Detail: fmt.Sprintf("list events for %q: %v", title, err)}
	}

	key := DedupKey(title, d.StartDate)
	marker := strings.ToLower(titlePrefix + title)
	for _, ev := range existing {
		if ev.ExtendedProperties != nil && ev.ExtendedProperties.Private[dedupKeyProperty] == key {
			return Result{Title: title, Outcome: OutcomeExists, Detail: "matched idempotency key"}
		}
		if strings.Contains(strings.ToLower(ev.Summary), marker) {
			return Result{Title: title, Outcome: OutcomeExists, Detail: "matched existing title in window"}
		}
	}

	event := &Event{
		Summary:     titlePrefix + title,
		Description: "Contract Deliverable\n\n" + d.Description,
		Start:       &EventDateTime{DateTime: start.Format(time.RFC3339), TimeZone: tzName},
		End:         &EventDateTime{DateTime: start.Add(eventDuration).Format(time.RFC3339), TimeZone: tzName},
		Reminders:   &Reminders{UseDefault: true},
		ExtendedProperties: &ExtendedProperties{
			Private: map[string]string{dedupKeyProperty: key},
		},
	}
	if d.UserEmail != "" {
		event.Attendees = []Attendee{{Email: d.UserEmail}}
	}

	created, err := s.api.InsertEvent(ctx, event)
	if err != nil {
		return Result{Title: title, Outcome: OutcomeError, Detail: fmt.Sprintf("create event for %q: %v", title, err)}
	}

	detail := "event created"
	if created != nil && created.HTMLLink != "" {
		detail = "event created: " + created.HTMLLink
	}
	return Result{Title: title, Outcome: OutcomeCreated, Detail: detail}
}

// anchorTime resolves the deliverable's start instant. Explicit time and
// zone are honored; otherwise 09:00 in the reference zone.
func anchorTime(d Deliverable) (time.Time, string, error) {
	tzName := defaultTimezone
	if d.Timezone != "" {
		tzName = d.Timezone
	}
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("unknown timezone %q", tzName)
	}

	date, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(d.StartDate), loc)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("unparseable start date %q", d.StartDate)
	}

	hour, minute := defaultHour, 0
	if d.StartTime != "" {
		t, err := time.Parse("15:04", strings.TrimSpace(d.StartTime))
		if err != nil {
			return time.Time{}, "", fmt.Errorf("unparseable start time %q", d.StartTime)
		}
		hour, minute = t.Hour(), t.Minute()
	}

	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, loc), tzName, nil
}

// DedupKey is a stable identity for a deliverable: hash of the normalized
// title plus the due date.
func DedupKey(summary, startDate string) string {
	normalized := strings.ToLower(strings.TrimSpace(summary)) + "|" + strings.TrimSpace(startDate)
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}

// Line renders the aggregate as the single human-readable sentence appended
// to the upload response.
func (s *Summary) Line() string {
	return fmt.Sprintf("Calendar sync: %d created, %d already existed.", s.Created, s.Exists)
}

func querySubstring(title string) string {
	runes := []rune(title)
	if len(runes) > maxQueryLen {
		return string(runes[:maxQueryLen])
	}
	return title
}
