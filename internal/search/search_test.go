package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/meshintel/compscout/pkg/types"
)

// --- mock backend ---

type mockBackend struct {
	name       string
	candidates []types.Candidate
	err        error
	calls      int
}

func (m *mockBackend) Name() string { return m.name }

func (m *mockBackend) Search(_ context.Context, _ string, _ types.SearchConfig) ([]types.Candidate, error) {
	m.calls++
	return m.candidates, m.err
}

func testCfg() types.SearchConfig {
	return types.SearchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   10 * time.Second,
			UserAgent: "test/0.1",
		},
		MaxResults: 6,
	}
}

// --- Collect ---

func TestCollectDeduplicatesByName(t *testing.T) {
	b := &mockBackend{name: "mock", candidates: []types.Candidate{
		{Name: "Linear - Issue tracking", URL: "https://linear.app"},
		{Name: "Jira | Atlassian", URL: "https://atlassian.com/jira"},
		{Name: "Linear", URL: "https://linear.app/features"},
		{Name: "LINEAR!", URL: "https://example.com"},
	}}

	got, err := Collect(context.Background(), b, "Acme", "", testCfg())
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len(got) = %d, want 2", len(got))
	}
	if got[0].Name != "Linear" || got[1].Name != "Jira" {
		t.Errorf("names = %q, %q, want Linear, Jira", got[0].Name, got[1].Name)
	}
}

func TestCollectPreservesProviderOrder(t *testing.T) {
	b := &mockBackend{name: "mock", candidates: []types.Candidate{
		{Name: "Charlie"},
		{Name: "Alpha"},
		{Name: "Bravo"},
	}}

	got, err := Collect(context.Background(), b, "Acme", "", testCfg())
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	want := []string{"Charlie", "Alpha", "Bravo"}
	for i, name := range want {
		if got[i].Name != name {
			t.Errorf("got[%d].Name = %q, want %q", i, got[i].Name, name)
		}
	}
}

func TestCollectDropsTargetProduct(t *testing.T) {
	b := &mockBackend{name: "mock", candidates: []types.Candidate{
		{Name: "Acme - the original"},
		{Name: "Rival"},
	}}

	got, err := Collect(context.Background(), b, "Acme", "", testCfg())
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if len(got) != 1 || got[0].Name != "Rival" {
		t.Errorf("got = %+v, want just Rival", got)
	}
}

func TestCollectCapsAtMaxResults(t *testing.T) {
	var candidates []types.Candidate
	for _, name := range []string{"A", "B", "C", "D", "E"} {
		candidates = append(candidates, types.Candidate{Name: name})
	}
	b := &mockBackend{name: "mock", candidates: candidates}

	cfg := testCfg()
	cfg.MaxResults = 3
	got, err := Collect(context.Background(), b, "Acme", "", cfg)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if len(got) != 3 {
		t.Errorf("len(got) = %d, want 3", len(got))
	}
}

func TestCollectEmptyProduct(t *testing.T) {
	b := &mockBackend{name: "mock"}

	_, err := Collect(context.Background(), b, "  ", "", testCfg())
	if !errors.Is(err, types.ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
	if b.calls != 0 {
		t.Errorf("backend called %d times, want 0", b.calls)
	}
}

func TestCollectBackendFailure(t *testing.T) {
	b := &mockBackend{name: "mock", err: errors.New("connection refused")}

	_, err := Collect(context.Background(), b, "Acme", "", testCfg())
	if !errors.Is(err, types.ErrUpstreamUnavailable) {
		t.Errorf("err = %v, want ErrUpstreamUnavailable", err)
	}
}

// --- Description ---

func TestDescriptionFirstSnippetWins(t *testing.T) {
	b := &mockBackend{name: "mock", candidates: []types.Candidate{
		{Name: "First", Snippet: "   "},
		{Name: "Second", Snippet: "Acme is a widget platform."},
		{Name: "Third", Snippet: "ignored"},
	}}

	got := Description(context.Background(), b, "Acme", "", testCfg())
	if got != "Acme is a widget platform." {
		t.Errorf("Description() = %q", got)
	}
}

func TestDescriptionFallback(t *testing.T) {
	tests := []struct {
		name  string
		niche string
		err   error
		want  string
	}{
		{"backend error with niche", "devtools", errors.New("boom"), "Acme in the devtools space."},
		{"no snippets no niche", "", nil, "Acme (no description available)."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &mockBackend{name: "mock", err: tt.err}
			if got := Description(context.Background(), b, "Acme", tt.niche, testCfg()); got != tt.want {
				t.Errorf("Description() = %q, want %q", got, tt.want)
			}
		})
	}
}

// --- title cleanup ---

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Linear - Plan and build products", "Linear"},
		{"Jira | Atlassian", "Jira"},
		{"Notion: your connected workspace", "Notion"},
		{"Asana – Manage your team's work", "Asana"},
		{"Plain Name", "Plain Name"},
		{"  padded  ", "padded"},
	}
	for _, tt := range tests {
		if got := cleanTitle(tt.title); got != tt.want {
			t.Errorf("cleanTitle(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Linear", "linear"},
		{"LINEAR!", "linear"},
		{"Monday.com", "mondaycom"},
		{"  Two   Words ", "two words"},
	}
	for _, tt := range tests {
		if got := normalizeName(tt.name); got != tt.want {
			t.Errorf("normalizeName(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
