// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the compscout pipeline.
package types

// Candidate represents a provisional competitor identified by the search
// stage. Candidates are consumed once by the comparison stage and are not
// persisted.
type Candidate struct {
	// Name is the competitor name derived from the result title.
	Name string `json:"name" yaml:"name"`

	// URL is the landing page the search provider returned.
	URL string `json:"url" yaml:"url"`

	// Snippet is the raw source snippet from the search result.
	Snippet string `json:"snippet" yaml:"snippet"`

	// Source identifies which backend found this candidate (e.g. "serpapi").
	Source string `json:"source" yaml:"source"`
}
