package websearch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func stubServer(t *testing.T, hits *int, response searchResponse) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*hits++

		var req searchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if req.APIKey != "test-key" {
			t.Errorf("api_key = %q", req.APIKey)
		}
		if req.SearchDepth != "advanced" || req.MaxResults != 5 || !req.IncludeAnswer {
			t.Errorf("unexpected search params: %+v", req)
		}

		json.NewEncoder(w).Encode(response)
	}))
}

func TestSearchFormatsDigest(t *testing.T) {
	hits := 0
	resp := searchResponse{Answer: "Acme is a mid-size agency."}
	resp.Results = []struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Content string `json:"content"`
	}{
		{Title: "Acme profile", URL: "https://a.example", Content: "Founded in 2001."},
		{Title: "Second", URL: "https://b.example", Content: "More detail."},
		{Title: "Third", URL: "https://c.example", Content: "Even more."},
		{Title: "Fourth", URL: "https://d.example", Content: "Should be cut."},
	}
	srv := stubServer(t, &hits, resp)
	defer srv.Close()

	client := NewClientWithEndpoint("test-key", srv.URL)
	digest, err := client.Search(context.Background(), "acme agency")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if !strings.HasPrefix(digest, "**Summary:** Acme is a mid-size agency.") {
		t.Errorf("digest missing answer line: %q", digest)
	}
	if !strings.Contains(digest, "Acme profile: Founded in 2001. (https://a.example)") {
		t.Errorf("digest missing snippet: %q", digest)
	}
	// Top three results only.
	if strings.Contains(digest, "Fourth") {
		t.Errorf("digest includes a fourth result: %q", digest)
	}
}

func TestSearchCachesRepeatedQueries(t *testing.T) {
	hits := 0
	srv := stubServer(t, &hits, searchResponse{Answer: "cached answer"})
	defer srv.Close()

	client := NewClientWithEndpoint("test-key", srv.URL)
	first, err := client.Search(context.Background(), "same query")
	if err != nil {
		t.Fatal(err)
	}
	second, err := client.Search(context.Background(), "same query")
	if err != nil {
		t.Fatal(err)
	}

	if hits != 1 {
		t.Errorf("server hit %d times, want 1", hits)
	}
	if first != second {
		t.Errorf("cached result differs: %q vs %q", first, second)
	}
}

func TestSearchRequiresAPIKey(t *testing.T) {
	client := NewClient("")
	if _, err := client.Search(context.Background(), "anything"); err == nil {
		t.Error("expected an error without an API key")
	}
}

func TestSearchSurfacesHTTPErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusPaymentRequired)
	}))
	defer srv.Close()

	client := NewClientWithEndpoint("test-key", srv.URL)
	_, err := client.Search(context.Background(), "anything")
	if err == nil || !strings.Contains(err.Error(), "402") {
		t.Errorf("error = %v, want status 402 surfaced", err)
	}
}

func TestFormatDigestEmptyResponse(t *testing.T) {
	got := formatDigest(&searchResponse{})
	if got != "No summary available, please refine the query." {
		t.Errorf("formatDigest() = %q", got)
	}
}
