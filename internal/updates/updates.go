// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package updates collects recent changelog entries for named competitors
// and summarizes them into a digest. Entries come from search snippets
// first; when those run short, the competitor's own changelog pages are
// probed directly.
package updates

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/meshintel/compscout/internal/compare"
	"github.com/meshintel/compscout/internal/search"
	"github.com/meshintel/compscout/pkg/types"
)

// changelogPaths are the well-known release-notes locations probed when
// search snippets alone are not enough.
var changelogPaths = []string{"/changelog", "/release-notes", "/releases", "/updates"}

// minItemLength filters out navigation crumbs and other short list items
// scraped from changelog pages.
const minItemLength = 20

// DefaultMaxItems bounds the entries collected per competitor.
const DefaultMaxItems = 5

// Fetcher collects raw update entries for one competitor.
type Fetcher struct {
	// Search finds changelog snippets and the competitor's domain.
	Search search.Backend

	// Client fetches changelog pages directly. nil means http.DefaultClient.
	Client *http.Client

	// Cfg carries the search provider settings.
	Cfg types.SearchConfig
}

// Fetch returns up to maxItems update entries for the competitor. Scrape
// failures on individual pages are skipped; only a failing search query is
// an error.
func (f *Fetcher) Fetch(ctx context.Context, competitor string, maxItems int) (types.UpdateDigest, error) {
	if maxItems <= 0 {
		maxItems = DefaultMaxItems
	}
	digest := types.UpdateDigest{Competitor: competitor}

	raw, err := f.Search.Search(ctx, competitor+" changelog", f.Cfg)
	if err != nil {
		return digest, fmt.Errorf("searching updates for %q: %w: %w", competitor, types.ErrUpstreamUnavailable, err)
	}

	var base string
	for _, c := range raw {
		if base == "" {
			base = baseOf(c.URL)
		}
		if s := strings.TrimSpace(c.Snippet); s != "" {
			digest.Items = append(digest.Items, types.UpdateItem{SourceURL: c.URL, Text: s})
		}
		if len(digest.Items) >= maxItems {
			return digest, nil
		}
	}

	if base == "" {
		return digest, nil
	}

	for _, path := range changelogPaths {
		pageURL := base + path
		items, err := f.scrapeChangelog(ctx, pageURL, maxItems-len(digest.Items))
		if err != nil {
			continue
		}
		digest.Items = append(digest.Items, items...)
		if len(digest.Items) >= maxItems {
			break
		}
	}
	return digest, nil
}

// scrapeChangelog fetches one page and extracts list-item texts.
func (f *Fetcher) scrapeChangelog(ctx context.Context, pageURL string, max int) ([]types.UpdateItem, error) {
	if max <= 0 {
		return nil, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.Cfg.UserAgent)

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, pageURL)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}

	var items []types.UpdateItem
	doc.Find("li").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strings.Join(strings.Fields(s.Text()), " ")
		if len(text) > minItemLength {
			items = append(items, types.UpdateItem{SourceURL: pageURL, Text: text})
		}
		return len(items) < max
	})
	return items, nil
}

// baseOf reduces a result URL to scheme://host, or "" if it does not parse.
func baseOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return ""
	}
	scheme := u.Scheme
	if scheme == "" {
		scheme = "https"
	}
	return scheme + "://" + u.Host
}

// Collect fetches and summarizes a digest per competitor, in input order.
func Collect(ctx context.Context, f *Fetcher, ai compare.AIBackend, competitors []string, cfg types.CompareConfig, maxItems int, w io.Writer) ([]types.UpdateDigest, error) {
	digests := make([]types.UpdateDigest, 0, len(competitors))
	for _, name := range competitors {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		fmt.Fprintf(w, "fetching updates for %s\n", name)
		digest, err := f.Fetch(ctx, name, maxItems)
		if err != nil {
			return nil, err
		}
		if err := compare.Summarize(ctx, ai, &digest, cfg); err != nil {
			return nil, err
		}
		digests = append(digests, digest)
	}
	return digests, nil
}
