// Package websearch wraps the Tavily search API for the research step.
package websearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
)

const defaultEndpoint = "https://api.tavily.com/search"

type Client struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
	cache      *cache.Cache
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:   apiKey,
		endpoint: defaultEndpoint,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		// Identical queries within a run window come back from memory.
		cache: cache.New(30*time.Minute, 10*time.Minute),
	}
}

// NewClientWithEndpoint is used by tests to point at a stub server.
func NewClientWithEndpoint(apiKey, endpoint string) *Client {
	c := NewClient(apiKey)
	c.endpoint = endpoint
	return c
}

type searchRequest struct {
	APIKey        string `json:"api_key"`
	Query         string `json:"query"`
	SearchDepth   string `json:"search_depth"`
	MaxResults    int    `json:"max_results"`
	IncludeAnswer bool   `json:"include_answer"`
}

type searchResponse struct {
	Answer  string `json:"answer"`
	Results []struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Content string `json:"content"`
	} `json:"results"`
}

// Search queries Tavily and returns a short formatted digest: the synthesized
// answer (when present) followed by the top three snippets.
func (c *Client) Search(ctx context.Context, query string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("missing Tavily API key")
	}

	if hit, found := c.cache.Get(query); found {
		return hit.(string), nil
	}

	payload := searchRequest{
		APIKey:        c.apiKey,
		Query:         query,
		SearchDepth:   "advanced",
		MaxResults:    5,
		IncludeAnswer: true,
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("create search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("search returned status %d: %s", resp.StatusCode, string(body))
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode search response: %w", err)
	}

	digest := formatDigest(&result)
	c.cache.Set(query, digest, cache.DefaultExpiration)
	return digest, nil
}

func formatDigest(result *searchResponse) string {
	var parts []string
	if result.Answer != "" {
		parts = append(parts, fmt.Sprintf("**Summary:** %s", result.Answer))
	}
	for i, res := range result.Results {
		if i >= 3 {
			break
		}
		snippet := res.Content
		if len(snippet) > 200 {
			snippet = snippet[:200] + "..."
		}
		parts = append(parts, fmt.Sprintf("- %s: %s (%s)", res.Title, snippet, res.URL))
	}
	if len(parts) == 0 {
		return "No summary available, please refine the query."
	}
	return strings.Join(parts, "\n")
}

// --- pipeline.Tool implementation ---

func (c *Client) Name() string { return "web_search" }

func (c *Client) Description() string {
	return "Searches the web and returns a concise digest of the top results."
}

func (c *Client) Run(ctx context.Context, input string) (string, error) {
	return c.Search(ctx, input)
}
