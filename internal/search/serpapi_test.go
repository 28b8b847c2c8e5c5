// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/meshintel/compscout/pkg/types"
)

func TestSerpAPIBackendSearch(t *testing.T) {
	var gotQuery map[string]string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = map[string]string{
			"engine":  q.Get("engine"),
			"q":       q.Get("q"),
			"num":     q.Get("num"),
			"api_key": q.Get("api_key"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"organic_results": [
				{"position": 1, "title": "Linear - Issue tracking", "link": "https://linear.app", "snippet": "Purpose-built tool."},
				{"position": 2, "title": "", "link": "https://skip.me", "snippet": "no title"},
				{"position": 3, "title": "Jira", "link": "https://atlassian.com/jira", "snippet": "Agile boards."}
			]
		}`))
	}))
	defer ts.Close()

	old := serpAPIBase
	serpAPIBase = ts.URL
	defer func() { serpAPIBase = old }()

	cfg := testCfg()
	cfg.APIKey = "sk-test"
	b := &SerpAPIBackend{Client: ts.Client()}

	got, err := b.Search(context.Background(), "Acme competitors", cfg)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if gotQuery["engine"] != "google" {
		t.Errorf("engine = %q, want google", gotQuery["engine"])
	}
	if gotQuery["q"] != "Acme competitors" {
		t.Errorf("q = %q", gotQuery["q"])
	}
	if gotQuery["api_key"] != "sk-test" {
		t.Errorf("api_key = %q", gotQuery["api_key"])
	}

	if len(got) != 2 {
		t.Fatalf("len(got) = %d, want 2 (untitled result skipped)", len(got))
	}
	want := types.Candidate{
		Name:    "Linear - Issue tracking",
		URL:     "https://linear.app",
		Snippet: "Purpose-built tool.",
		Source:  "serpapi",
	}
	if got[0] != want {
		t.Errorf("got[0] = %+v, want %+v", got[0], want)
	}
}

func TestSerpAPIBackendHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer ts.Close()

	old := serpAPIBase
	serpAPIBase = ts.URL
	defer func() { serpAPIBase = old }()

	b := &SerpAPIBackend{Client: ts.Client()}
	_, err := b.Search(context.Background(), "Acme competitors", testCfg())
	if err == nil {
		t.Fatal("Search() error = nil, want HTTP error")
	}
}

func TestSerpAPIBackendEmptyQuery(t *testing.T) {
	b := &SerpAPIBackend{Client: http.DefaultClient}
	_, err := b.Search(context.Background(), "", testCfg())
	if err == nil {
		t.Fatal("Search() error = nil, want error for empty query")
	}
}

func TestSerpAPIBackendMalformedResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer ts.Close()

	old := serpAPIBase
	serpAPIBase = ts.URL
	defer func() { serpAPIBase = old }()

	b := &SerpAPIBackend{Client: ts.Client()}
	_, err := b.Search(context.Background(), "Acme competitors", testCfg())
	if err == nil {
		t.Fatal("Search() error = nil, want parse error")
	}
}
