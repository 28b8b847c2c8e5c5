// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package compare turns candidate competitors into structured comparisons
// by prompting a hosted text-generation API and parsing the response
// against a fixed set of section markers.
package compare

import (
	"context"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/meshintel/compscout/pkg/types"
)

// AIBackend abstracts the text-generation API so tests can supply a mock.
// Complete sends one prompt and returns the raw response text.
type AIBackend interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// All compares the target product against each candidate, one request per
// candidate, and returns comparisons in candidate order. A network failure
// or an empty response fails the run; a response missing section markers
// does not, it just yields empty lists for those sections.
func All(ctx context.Context, backend AIBackend, target, description string, candidates []types.Candidate, cfg types.CompareConfig, w io.Writer) ([]types.Comparison, error) {
	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}

	comparisons := make([]types.Comparison, 0, len(candidates))
	for _, c := range candidates {
		prompt, err := renderComparisonPrompt(target, description, c, cfg.Aspects)
		if err != nil {
			return nil, err
		}

		fmt.Fprintf(w, "comparing %s\n", c.Name)

		text, err := completeWithRetry(ctx, backend, prompt, maxRetries)
		if err != nil {
			return nil, fmt.Errorf("comparing %q: %w: %w", c.Name, types.ErrUpstreamUnavailable, err)
		}

		comparisons = append(comparisons, ParseComparison(target, c.Name, text))
	}
	return comparisons, nil
}

// Summarize fills digest.Summary with a model-written paragraph over the
// digest's update items. A digest with no items gets a canned summary and
// no API call is made.
func Summarize(ctx context.Context, backend AIBackend, digest *types.UpdateDigest, cfg types.CompareConfig) error {
	if len(digest.Items) == 0 {
		digest.Summary = fmt.Sprintf("No recent updates found for %s.", digest.Competitor)
		return nil
	}

	prompt, err := RenderUpdatesPrompt(*digest)
	if err != nil {
		return err
	}

	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}

	text, err := completeWithRetry(ctx, backend, prompt, maxRetries)
	if err != nil {
		return fmt.Errorf("summarizing %q: %w: %w", digest.Competitor, types.ErrUpstreamUnavailable, err)
	}
	digest.Summary = text
	return nil
}

// backoffBase controls the base duration for exponential backoff. Tests
// override this to avoid real sleeps.
var backoffBase = time.Second

// completeWithRetry calls the backend with exponential backoff.
func completeWithRetry(ctx context.Context, backend AIBackend, prompt string, maxRetries int) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * backoffBase
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}

		text, err := backend.Complete(ctx, prompt)
		if err == nil {
			return text, nil
		}
		lastErr = err
	}
	return "", fmt.Errorf("after %d retries: %w", maxRetries, lastErr)
}
