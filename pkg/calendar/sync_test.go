package calendar

import (
	"context"
	"errors"
	"testing"
	"time"

	"legal-agent-be/internal/pkg/logger"
)

// fakeAPI keeps inserted events in memory and answers list calls from them.
type fakeAPI struct {
	events  []Event
	listErr error
	inserts int
}

func (f *fakeAPI) ListEvents(ctx context.Context, timeMin, timeMax time.Time, query string) ([]Event, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.events, nil
}

func (f *fakeAPI) InsertEvent(ctx context.Context, event *Event) (*Event, error) {
	f.inserts++
	stored := *event
	stored.ID = "evt-1"
	stored.HTMLLink = "https://calendar.example/evt-1"
	f.events = append(f.events, stored)
	return &stored, nil
}

func newTestSync(api API) *Synchronizer {
	return NewSynchronizer(api, logger.NewNopLogger())
}

func TestSyncCreatesEventWithDefaults(t *testing.T) {
	api := &fakeAPI{}
	summary := newTestSync(api).Sync(context.Background(), []Deliverable{
		{
			Summary:     "Instagram Post",
			Description: "One sponsored post",
			StartDate:   "2026-09-15",
			UserEmail:   "creator@example.com",
		},
	})

	if summary.Created != 1 || summary.Exists != 0 {
		t.Fatalf("summary = %+v, want 1 created", summary)
	}
	if api.inserts != 1 {
		t.Fatalf("inserts = %d, want 1", api.inserts)
	}

	ev := api.events[0]
	if ev.Summary != "📋 Instagram Post" {
		t.Errorf("Summary = %q", ev.Summary)
	}
	if ev.Start.TimeZone != "America/Los_Angeles" {
		t.Errorf("TimeZone = %q", ev.Start.TimeZone)
	}

	start, err := time.Parse(time.RFC3339, ev.Start.DateTime)
	if err != nil {
		t.Fatalf("bad start: %v", err)
	}
	if start.Hour() != 9 || start.Minute() != 0 {
		t.Errorf("start = %v, want 09:00 local", start)
	}
	end, _ := time.Parse(time.RFC3339, ev.End.DateTime)
	if end.Sub(start) != time.Hour {
		t.Errorf("duration = %v, want 1h", end.Sub(start))
	}

	if len(ev.Attendees) != 1 || ev.Attendees[0].Email != "creator@example.com" {
		t.Errorf("Attendees = %+v", ev.Attendees)
	}
	if ev.Reminders == nil || !ev.Reminders.UseDefault {
		t.Error("default reminders not requested")
	}
	if ev.ExtendedProperties.Private[dedupKeyProperty] != DedupKey("Instagram Post", "2026-09-15") {
		t.Error("idempotency key not stamped on the event")
	}
}

func TestSyncHonorsExplicitTimeAndZone(t *testing.T) {
	api := &fakeAPI{}
	newTestSync(api).Sync(context.Background(), []Deliverable{
		{Summary: "Kickoff call", StartDate: "2026-09-15", StartTime: "14:30", Timezone: "Europe/Berlin"},
	})

	ev := api.events[0]
	if ev.Start.TimeZone != "Europe/Berlin" {
		t.Errorf("TimeZone = %q", ev.Start.TimeZone)
	}
	start, _ := time.Parse(time.RFC3339, ev.Start.DateTime)
	if start.Hour() != 14 || start.Minute() != 30 {
		t.Errorf("start = %v, want 14:30 local", start)
	}
}

func TestSyncMatchesIdempotencyKey(t *testing.T) {
	api := &fakeAPI{events: []Event{{
		Summary: "Renamed by the user",
		ExtendedProperties: &ExtendedProperties{
			Private: map[string]string{dedupKeyProperty: DedupKey("Instagram Post", "2026-09-15")},
		},
	}}}

	summary := newTestSync(api).Sync(context.Background(), []Deliverable{
		{Summary: "Instagram Post", StartDate: "2026-09-15"},
	})

	if summary.Exists != 1 || api.inserts != 0 {
		t.Errorf("summary = %+v, inserts = %d; want exists without insert", summary, api.inserts)
	}
}

func TestSyncFallsBackToTitleMatch(t *testing.T) {
	// Event created by an older build: marker title, no key property.
	api := &fakeAPI{events: []Event{{Summary: "📋 Instagram Post"}}}

	summary := newTestSync(api).Sync(context.Background(), []Deliverable{
		{Summary: "instagram post", StartDate: "2026-09-15"},
	})

	if summary.Exists != 1 || api.inserts != 0 {
		t.Errorf("summary = %+v, inserts = %d; want title match without insert", summary, api.inserts)
	}
}

func TestSyncSecondRunIsIdempotent(t *testing.T) {
	api := &fakeAPI{}
	deliverables := []Deliverable{
		{Summary: "Instagram Post", StartDate: "2026-09-15"},
		{Summary: "YouTube Video", StartDate: "2026-09-20"},
	}
	sync := newTestSync(api)

	first := sync.Sync(context.Background(), deliverables)
	if first.Created != 2 {
		t.Fatalf("first run: %+v, want 2 created", first)
	}

	second := sync.Sync(context.Background(), deliverables)
	if second.Created != 0 || second.Exists != 2 {
		t.Errorf("second run: %+v, want 2 exists", second)
	}
	if api.inserts != 2 {
		t.Errorf("inserts = %d, want 2 total", api.inserts)
	}
}

func TestSyncSkipsIncompleteRecords(t *testing.T) {
	api := &fakeAPI{}
	summary := newTestSync(api).Sync(context.Background(), []Deliverable{
		{Summary: "", StartDate: "2026-09-15"},
		{Summary: "No date at all"},
		{Summary: "Bad date", StartDate: "next tuesday"},
	})

	if summary.Skipped != 3 || api.inserts != 0 {
		t.Errorf("summary = %+v, inserts = %d; want 3 skipped", summary, api.inserts)
	}
}

func TestSyncIsolatesRecordFailures(t *testing.T) {
	api := &fakeAPI{listErr: errors.New("calendar unreachable")}
	summary := newTestSync(api).Sync(context.Background(), []Deliverable{
		{Summary: "First", StartDate: "2026-09-15"},
		{Summary: "Second", StartDate: "2026-09-16"},
	})

	if summary.Errored != 2 {
		t.Errorf("summary = %+v, want both records errored", summary)
	}
	if len(summary.Results) != 2 {
		t.Errorf("Results = %d, want 2", len(summary.Results))
	}
}

func TestSummaryLine(t *testing.T) {
	s := &Summary{Created: 2, Exists: 1}
	want := "Calendar sync: 2 created, 1 already existed."
	if got := s.Line(); got != want {
		t.Errorf("Line() = %q, want %q", got, want)
	}
}

func TestDedupKeyNormalizes(t *testing.T) {
	if DedupKey("  Instagram Post ", "2026-09-15") != DedupKey("instagram post", "2026-09-15") {
		t.Error("key should ignore case and surrounding whitespace")
	}
	if DedupKey("Instagram Post", "2026-09-15") == DedupKey("Instagram Post", "2026-09-16") {
		t.Error("key must differ across dates")
	}
}
