package main

import (
	"context"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"

	"legal-agent-be/internal/pkg/logger"
	"legal-agent-be/pkg/calendar"
)

// Smoke test for the Google Calendar integration. Inserts a throwaway
// event for tomorrow, then syncs the same deliverable again to prove
// the second pass reports it as already existing.
func main() {
	color.Cyan("🚀 Google Calendar Sync Smoke Test\n")

	godotenv.Load()
	tokenJSON := os.Getenv("GOOGLE_CALENDAR_TOKEN_JSON")
	if tokenJSON == "" {
		color.Red("GOOGLE_CALENDAR_TOKEN_JSON is not set")
		os.Exit(1)
	}
	userEmail := os.Getenv("SENDER_EMAIL")
	if userEmail == "" {
		color.Red("SENDER_EMAIL is not set (used as the test attendee)")
		os.Exit(1)
	}

	ctx := context.Background()
	api, err := calendar.NewGoogleAPI(ctx, tokenJSON)
	if err != nil {
		color.Red("Failed to build calendar client: %v", err)
		os.Exit(1)
	}

	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	deliverable := calendar.Deliverable{
		Summary:     "Test Event (delete me)",
		Description: "Inserted by cmd/test_calendar. Safe to delete.",
		StartDate:   tomorrow,
		UserEmail:   userEmail,
	}

	sync := calendar.NewSynchronizer(api, logger.NewNopLogger())

	color.Yellow("\n[1] First sync (expect: created)")
	report(sync.Sync(ctx, []calendar.Deliverable{deliverable}))

	color.Yellow("\n[2] Second sync (expect: already existed)")
	report(sync.Sync(ctx, []calendar.Deliverable{deliverable}))

	color.Cyan("\nDone. Remember to delete the test event from the calendar.")
}

func report(summary *calendar.Summary) {
	for _, r := range summary.Results {
		switch r.Outcome {
		case calendar.OutcomeCreated:
			color.Green("  ✔ %s: created (%s)", r.Title, r.Detail)
		case calendar.OutcomeExists:
			color.Green("  ✔ %s: already existed", r.Title)
		case calendar.OutcomeSkipped:
			color.Yellow("  ~ %s: skipped (%s)", r.Title, r.Detail)
		default:
			color.Red("  ✘ %s: %s", r.Title, r.Detail)
		}
	}
	color.White("  %s", summary.Line())
}
