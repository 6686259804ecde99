package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	eventsEndpoint = "https://www.googleapis.com/calendar/v3/calendars/primary/events"
	calendarScope  = "https://www.googleapis.com/auth/calendar"
)

// ErrNotConfigured reports a missing calendar token blob. Callers degrade to
// a "not configured" outcome instead of failing the run.
var ErrNotConfigured = errors.New("google calendar not configured")

// GoogleAPI talks to the Calendar v3 REST surface with an OAuth2 client
// refreshed from a stored authorized-user token.
type GoogleAPI struct {
	httpClient *http.Client
	endpoint   string
}

var _ API = &GoogleAPI{}

// authorizedUserToken is the JSON blob Google's auth flow stores for a user.
type authorizedUserToken struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	RefreshToken string `json:"refresh_token"`
	AccessToken  string `json:"token"`
	Expiry       string `json:"expiry"`
}

// NewGoogleAPI builds a calendar client from the token blob supplied via
// environment configuration. An empty blob means the feature is off.
func NewGoogleAPI(ctx context.Context, tokenJSON string) (*GoogleAPI, error) {
	if tokenJSON == "" {
		return nil, ErrNotConfigured
	}

	var stored authorizedUserToken
	if err := json.Unmarshal([]byte(tokenJSON), &stored); err != nil {
		return nil, fmt.Errorf("invalid calendar token blob: %w", err)
	}
	if stored.RefreshToken == "" {
		return nil, fmt.Errorf("calendar token blob has no refresh token")
	}

	conf := &oauth2.Config{
		ClientID:     stored.ClientID,
		ClientSecret: stored.ClientSecret,
		Scopes:       []string{calendarScope},
		Endpoint:     google.Endpoint,
	}

	token := &oauth2.Token{
		AccessToken:  stored.AccessToken,
		RefreshToken: stored.RefreshToken,
	}
	if stored.Expiry != "" {
		if exp, err := time.Parse(time.RFC3339, stored.Expiry); err == nil {
			token.Expiry = exp
		}
	}

	return &GoogleAPI{
		httpClient: conf.Client(ctx, token),
		endpoint:   eventsEndpoint,
	}, nil
}

func (g *GoogleAPI) ListEvents(ctx context.Context, timeMin, timeMax time.Time, query string) ([]Event, error) {
	params := url.Values{}
	params.Set("timeMin", timeMin.Format(time.RFC3339))
	params.Set("timeMax", timeMax.Format(time.RFC3339))
	params.Set("singleEvents", "true")
	params.Set("orderBy", "startTime")
	if query != "" {
		params.Set("q", query)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create list request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("calendar list returned status %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Items []Event `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode event list: %w", err)
	}
	return result.Items, nil
}

func (g *GoogleAPI) InsertEvent(ctx context.Context, event *Event) (*Event, error) {
	jsonBody, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}

	// sendUpdates=all delivers the invitation to attendees.
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint+"?sendUpdates=all", bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create insert request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("calendar insert returned status %d: %s", resp.StatusCode, string(body))
	}

	var created Event
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("decode created event: %w", err)
	}
	return &created, nil
}
