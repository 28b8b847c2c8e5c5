// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/meshintel/compscout/internal/httputil"
	"github.com/meshintel/compscout/pkg/types"
)

// serpAPIBase is the SerpAPI search endpoint. Declared as a var so tests
// can substitute an httptest server.
var serpAPIBase = "https://serpapi.com/search.json"

// SerpAPIBackend queries SerpAPI's Google results endpoint.
type SerpAPIBackend struct {
	Client *http.Client
}

// Name returns the backend identifier.
func (b *SerpAPIBackend) Name() string { return "serpapi" }

// Search issues one query and returns candidates in organic-result order.
func (b *SerpAPIBackend) Search(ctx context.Context, query string, cfg types.SearchConfig) ([]types.Candidate, error) {
	if query == "" {
		return nil, fmt.Errorf("empty search query")
	}

	engine := cfg.Engine
	if engine == "" {
		engine = "google"
	}
	num := cfg.MaxResults
	if num <= 0 {
		num = 10
	}

	params := url.Values{
		"engine":  {engine},
		"q":       {query},
		"num":     {strconv.Itoa(num)},
		"api_key": {cfg.APIKey},
	}
	reqURL := serpAPIBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, b.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("search API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search API returned HTTP %d", resp.StatusCode)
	}

	var sr serpResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing search response: %w", err)
	}

	var candidates []types.Candidate
	for _, r := range sr.OrganicResults {
		if r.Title == "" {
			continue
		}
		candidates = append(candidates, types.Candidate{
			Name:    r.Title,
			URL:     r.Link,
			Snippet: r.Snippet,
			Source:  b.Name(),
		})
	}
	return candidates, nil
}

// SerpAPI JSON structures.
type serpResponse struct {
	OrganicResults []serpResult `json:"organic_results"`
}

type serpResult struct {
	Position int    `json:"position"`
	Title    string `json:"title"`
	Link     string `json:"link"`
	Snippet  string `json:"snippet"`
}
