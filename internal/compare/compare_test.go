// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compare

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/meshintel/compscout/pkg/types"
)

func init() {
	// Use a tiny base delay so retry tests finish quickly.
	backoffBase = time.Millisecond
}

// mockAI returns canned text per prompt, optionally failing the first
// failures calls.
type mockAI struct {
	text     func(prompt string) string
	err      error
	failures int
	calls    int
}

func (m *mockAI) Complete(_ context.Context, prompt string) (string, error) {
	m.calls++
	if m.failures > 0 {
		m.failures--
		return "", errors.New("transient failure")
	}
	if m.err != nil {
		return "", m.err
	}
	if m.text != nil {
		return m.text(prompt), nil
	}
	return "Strengths:\n- something\n", nil
}

func compareCfg() types.CompareConfig {
	return types.CompareConfig{
		AIConfig: types.AIConfig{Model: "test-model", MaxRetries: 2},
	}
}

func TestAllOneComparisonPerCandidateInOrder(t *testing.T) {
	ai := &mockAI{text: func(prompt string) string {
		// Echo a strength derived from the competitor in the prompt so
		// each comparison is distinguishable.
		switch {
		case strings.Contains(prompt, "Competitor: Rival A"):
			return "Strengths:\n- from A\n"
		case strings.Contains(prompt, "Competitor: Rival B"):
			return "Strengths:\n- from B\n"
		}
		return ""
	}}

	candidates := []types.Candidate{
		{Name: "Rival A", Snippet: "snippet a"},
		{Name: "Rival B", Snippet: "snippet b"},
	}

	got, err := All(context.Background(), ai, "Acme", "Acme is a widget platform.", candidates, compareCfg(), io.Discard)
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len(got) = %d, want 2", len(got))
	}
	if got[0].CompetitorName != "Rival A" || got[1].CompetitorName != "Rival B" {
		t.Errorf("order not preserved: %q, %q", got[0].CompetitorName, got[1].CompetitorName)
	}
	if got[0].Strengths[0] != "from A" || got[1].Strengths[0] != "from B" {
		t.Errorf("comparisons mixed up: %+v", got)
	}
}

func TestAllMarkerlessResponseStillSucceeds(t *testing.T) {
	ai := &mockAI{text: func(string) string {
		return "The model produced prose without any recognizable sections."
	}}

	candidates := []types.Candidate{{Name: "Rival A"}, {Name: "Rival B"}}
	got, err := All(context.Background(), ai, "Acme", "desc", candidates, compareCfg(), io.Discard)
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	for _, c := range got {
		if len(c.Strengths)+len(c.Weaknesses)+len(c.UseCases)+len(c.Improvements) != 0 {
			t.Errorf("expected empty lists for %s, got %+v", c.CompetitorName, c)
		}
	}
}

func TestAllBackendFailure(t *testing.T) {
	ai := &mockAI{err: errors.New("connection reset")}

	_, err := All(context.Background(), ai, "Acme", "desc", []types.Candidate{{Name: "Rival"}}, compareCfg(), io.Discard)
	if !errors.Is(err, types.ErrUpstreamUnavailable) {
		t.Errorf("err = %v, want ErrUpstreamUnavailable", err)
	}
	// 1 initial + 2 retries.
	if ai.calls != 3 {
		t.Errorf("calls = %d, want 3", ai.calls)
	}
}

func TestAllRetriesThenSucceeds(t *testing.T) {
	ai := &mockAI{failures: 2}

	got, err := All(context.Background(), ai, "Acme", "desc", []types.Candidate{{Name: "Rival"}}, compareCfg(), io.Discard)
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len(got) = %d, want 1", len(got))
	}
	if ai.calls != 3 {
		t.Errorf("calls = %d, want 3", ai.calls)
	}
}

func TestAllEmptyCandidates(t *testing.T) {
	ai := &mockAI{}
	got, err := All(context.Background(), ai, "Acme", "desc", nil, compareCfg(), io.Discard)
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("len(got) = %d, want 0", len(got))
	}
	if ai.calls != 0 {
		t.Errorf("backend called %d times for zero candidates", ai.calls)
	}
}

func TestSummarizeEmptyDigest(t *testing.T) {
	ai := &mockAI{}
	digest := types.UpdateDigest{Competitor: "Rival"}

	if err := Summarize(context.Background(), ai, &digest, compareCfg()); err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if digest.Summary != "No recent updates found for Rival." {
		t.Errorf("Summary = %q", digest.Summary)
	}
	if ai.calls != 0 {
		t.Errorf("backend called for empty digest")
	}
}

func TestSummarizeFillsSummary(t *testing.T) {
	ai := &mockAI{text: func(prompt string) string {
		if !strings.Contains(prompt, "shipped dark mode") {
			return fmt.Sprintf("prompt missing entry: %s", prompt)
		}
		return "Rival shipped dark mode recently."
	}}
	digest := types.UpdateDigest{
		Competitor: "Rival",
		Items:      []types.UpdateItem{{SourceURL: "https://rival.app/changelog", Text: "shipped dark mode"}},
	}

	if err := Summarize(context.Background(), ai, &digest, compareCfg()); err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if digest.Summary != "Rival shipped dark mode recently." {
		t.Errorf("Summary = %q", digest.Summary)
	}
}
