// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search queries a web-search provider and normalizes raw results
// into candidate competitor records.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/meshintel/compscout/pkg/types"
)

// Backend issues one query to a single search provider. Each provider
// implements this interface so tests can supply a fake.
type Backend interface {
	Name() string
	Search(ctx context.Context, query string, cfg types.SearchConfig) ([]types.Candidate, error)
}

// Collect queries the backend for competitors of the named product and
// returns candidates in provider ranking order, deduplicated by normalized
// name. Results naming the target product itself are dropped. The list is
// capped at cfg.MaxResults.
func Collect(ctx context.Context, b Backend, product, niche string, cfg types.SearchConfig) ([]types.Candidate, error) {
	if strings.TrimSpace(product) == "" {
		return nil, fmt.Errorf("product name is empty: %w", types.ErrValidation)
	}

	query := product + " competitors"
	if niche != "" {
		query = fmt.Sprintf("%s %s competitors", product, niche)
	}

	raw, err := b.Search(ctx, query, cfg)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w: %w", b.Name(), types.ErrUpstreamUnavailable, err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 6
	}

	seen := map[string]bool{normalizeName(product): true}
	var candidates []types.Candidate
	for _, c := range raw {
		c.Name = cleanTitle(c.Name)
		key := normalizeName(c.Name)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		candidates = append(candidates, c)
		if len(candidates) >= maxResults {
			break
		}
	}
	return candidates, nil
}

// Description returns a one-line description of the product, taken from the
// first non-empty snippet for a descriptive query. Lookup failures fall back
// to a canned description; the comparison prompt degrades gracefully.
func Description(ctx context.Context, b Backend, product, niche string, cfg types.SearchConfig) string {
	query := product + " tool description"
	if niche != "" {
		query = fmt.Sprintf("%s %s tool description", product, niche)
	}

	raw, err := b.Search(ctx, query, cfg)
	if err == nil {
		for _, c := range raw {
			if s := strings.TrimSpace(c.Snippet); s != "" {
				return s
			}
		}
	}

	if niche != "" {
		return fmt.Sprintf("%s in the %s space.", product, niche)
	}
	return product + " (no description available)."
}

// titleSeparators split a search result title into the site or product name
// and the trailing tagline.
var titleSeparators = []string{" - ", " – ", " — ", " | ", ": "}

// cleanTitle derives a competitor name from a search result title by cutting
// at the first separator and trimming whitespace.
func cleanTitle(title string) string {
	name := strings.TrimSpace(title)
	cut := len(name)
	for _, sep := range titleSeparators {
		if idx := strings.Index(name, sep); idx > 0 && idx < cut {
			cut = idx
		}
	}
	return strings.TrimSpace(name[:cut])
}

// normalizeName returns a lowercased, punctuation-stripped key used to
// deduplicate candidates by name.
func normalizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// FormatTable writes candidates as a human-readable table to w.
func FormatTable(candidates []types.Candidate, w io.Writer) {
	if len(candidates) == 0 {
		fmt.Fprintln(w, "No candidates found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-30s  %-40s  %s\n", "Rank", "Name", "URL", "Source")
	fmt.Fprintln(w, strings.Repeat("-", 90))

	for i, c := range candidates {
		name := c.Name
		if len(name) > 30 {
			name = name[:27] + "..."
		}
		url := c.URL
		if len(url) > 40 {
			url = url[:37] + "..."
		}
		fmt.Fprintf(w, "%-4d  %-30s  %-40s  %s\n", i+1, name, url, c.Source)
	}
	fmt.Fprintf(w, "\n%d candidates\n", len(candidates))
}

// FormatJSON writes candidates as indented JSON to w.
func FormatJSON(candidates []types.Candidate, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(candidates)
}
