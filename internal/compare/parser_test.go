// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compare

import (
	"reflect"
	"testing"

	"github.com/meshintel/compscout/pkg/types"
)

const fullResponse = `Here is the comparison you asked for.

Strengths:
- Faster sync engine
- Larger template library

Weaknesses:
- No self-hosted option
- Steeper pricing at scale

Use Cases:
- Distributed product teams
- Roadmap planning

Improvements:
- Add offline mode
- Simplify billing tiers
`

func TestParseComparisonFullText(t *testing.T) {
	got := ParseComparison("Acme", "Rival", fullResponse)

	want := types.Comparison{
		TargetName:     "Acme",
		CompetitorName: "Rival",
		Strengths:      []string{"Faster sync engine", "Larger template library"},
		Weaknesses:     []string{"No self-hosted option", "Steeper pricing at scale"},
		UseCases:       []string{"Distributed product teams", "Roadmap planning"},
		Improvements:   []string{"Add offline mode", "Simplify billing tiers"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseComparison() = %+v, want %+v", got, want)
	}
}

func TestParseComparisonDeterministic(t *testing.T) {
	first := ParseComparison("Acme", "Rival", fullResponse)
	second := ParseComparison("Acme", "Rival", fullResponse)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("two parses of the same text differ:\n%+v\n%+v", first, second)
	}
}

func TestParseComparisonMissingMarkers(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"no markers at all", "The model rambled about something unrelated.\nNo sections here."},
		{"empty text", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseComparison("Acme", "Rival", tt.text)
			if len(got.Strengths)+len(got.Weaknesses)+len(got.UseCases)+len(got.Improvements) != 0 {
				t.Errorf("expected all lists empty, got %+v", got)
			}
			if got.TargetName != "Acme" || got.CompetitorName != "Rival" {
				t.Errorf("names not carried through: %+v", got)
			}
		})
	}
}

func TestParseComparisonPartialMarkers(t *testing.T) {
	text := "Strengths:\n- Only strength\n\nImprovements:\n- Only improvement\n"
	got := ParseComparison("Acme", "Rival", text)

	if !reflect.DeepEqual(got.Strengths, []string{"Only strength"}) {
		t.Errorf("Strengths = %v", got.Strengths)
	}
	if !reflect.DeepEqual(got.Improvements, []string{"Only improvement"}) {
		t.Errorf("Improvements = %v", got.Improvements)
	}
	if got.Weaknesses != nil || got.UseCases != nil {
		t.Errorf("expected missing sections empty, got %+v", got)
	}
}

func TestParseComparisonMarkdownDecoration(t *testing.T) {
	text := `## **Strengths:**
* Bold bullet
1. Numbered bullet

### Weaknesses
2) Another style
`
	got := ParseComparison("Acme", "Rival", text)

	if !reflect.DeepEqual(got.Strengths, []string{"Bold bullet", "Numbered bullet"}) {
		t.Errorf("Strengths = %v", got.Strengths)
	}
	if !reflect.DeepEqual(got.Weaknesses, []string{"Another style"}) {
		t.Errorf("Weaknesses = %v", got.Weaknesses)
	}
}

func TestParseComparisonInlineContent(t *testing.T) {
	text := "Strengths: fast and reliable\nWeaknesses: pricey"
	got := ParseComparison("Acme", "Rival", text)

	if !reflect.DeepEqual(got.Strengths, []string{"fast and reliable"}) {
		t.Errorf("Strengths = %v", got.Strengths)
	}
	if !reflect.DeepEqual(got.Weaknesses, []string{"pricey"}) {
		t.Errorf("Weaknesses = %v", got.Weaknesses)
	}
}

func TestParseComparisonAlternateHeadings(t *testing.T) {
	text := "Best Use Cases:\n- Solo founders\n\nImprovements Needed:\n- Better docs\n"
	got := ParseComparison("Acme", "Rival", text)

	if !reflect.DeepEqual(got.UseCases, []string{"Solo founders"}) {
		t.Errorf("UseCases = %v", got.UseCases)
	}
	if !reflect.DeepEqual(got.Improvements, []string{"Better docs"}) {
		t.Errorf("Improvements = %v", got.Improvements)
	}
}

func TestParseComparisonSkipsEchoedInstructions(t *testing.T) {
	text := "Strengths:\n(where the competitor is stronger than the target)\n- Real item\n"
	got := ParseComparison("Acme", "Rival", text)

	if !reflect.DeepEqual(got.Strengths, []string{"Real item"}) {
		t.Errorf("Strengths = %v", got.Strengths)
	}
}

func TestParseComparisonIgnoresPreamble(t *testing.T) {
	text := "Sure! Comparing the two products now.\n- stray bullet before any marker\nStrengths:\n- Kept\n"
	got := ParseComparison("Acme", "Rival", text)

	if !reflect.DeepEqual(got.Strengths, []string{"Kept"}) {
		t.Errorf("Strengths = %v", got.Strengths)
	}
}
