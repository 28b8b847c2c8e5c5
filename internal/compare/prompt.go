// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compare

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/meshintel/compscout/pkg/types"
)

// defaultAspects is the comparison dimension set used when the caller
// selects none.
var defaultAspects = []string{"Features", "Pricing", "User Interface"}

// comparisonPromptTmpl is the prompt sent to the text-generation API for each
// competitor. The four section markers match what the response parser expects.
var comparisonPromptTmpl = template.Must(template.New("comparison").Parse(`Compare the following two products.

Target product: {{.Target}}
Target description: {{.Description}}

Competitor: {{.Competitor}}
{{- if .Snippet}}
Competitor snippet: {{.Snippet}}
{{- end}}

Aspects to consider: {{.Aspects}}

Write exactly four sections, each starting with the marker shown, each
containing a bulleted list (one "-" bullet per line):

Strengths:
(where the competitor is stronger than the target)

Weaknesses:
(where the competitor is weaker than the target)

Use Cases:
(scenarios the competitor is best suited for)

Improvements:
(changes the target product needs to close the gap)

Do not add any other sections or commentary.`))

// comparisonPromptData feeds comparisonPromptTmpl.
type comparisonPromptData struct {
	Target      string
	Description string
	Competitor  string
	Snippet     string
	Aspects     string
}

// renderComparisonPrompt builds the per-competitor prompt.
func renderComparisonPrompt(target, description string, c types.Candidate, aspects []string) (string, error) {
	if len(aspects) == 0 {
		aspects = defaultAspects
	}
	var buf bytes.Buffer
	err := comparisonPromptTmpl.Execute(&buf, comparisonPromptData{
		Target:      target,
		Description: description,
		Competitor:  c.Name,
		Snippet:     c.Snippet,
		Aspects:     strings.Join(aspects, ", "),
	})
	if err != nil {
		return "", fmt.Errorf("rendering comparison prompt: %w", err)
	}
	return buf.String(), nil
}

// updatesPromptTmpl summarizes scraped changelog entries for one competitor.
var updatesPromptTmpl = template.Must(template.New("updates").Parse(`Summarize the recent product updates for {{.Competitor}} in a short paragraph.

Entries:
{{- range .Items}}
- {{.Text}} (source: {{.SourceURL}})
{{- end}}

Mention only what the entries support. Plain prose, no headings.`))

// RenderUpdatesPrompt builds the summary prompt for a competitor's update
// digest.
func RenderUpdatesPrompt(digest types.UpdateDigest) (string, error) {
	var buf bytes.Buffer
	if err := updatesPromptTmpl.Execute(&buf, digest); err != nil {
		return "", fmt.Errorf("rendering updates prompt: %w", err)
	}
	return buf.String(), nil
}
