// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compare

import (
	"regexp"
	"strings"

	"github.com/meshintel/compscout/pkg/types"
)

// Section markers recognized in model output. Matching is case-insensitive
// and tolerates Markdown heading and bold decoration around the marker.
const (
	markerStrengths    = "strengths"
	markerWeaknesses   = "weaknesses"
	markerUseCases     = "use cases"
	markerImprovements = "improvements"
)

// bulletPrefix matches a numbered list prefix like "1." or "2)".
var bulletPrefix = regexp.MustCompile(`^\d+[.)]\s*`)

// ParseComparison extracts the four labeled lists from free-form model text.
// It is a pure function over the text: the same input always yields the same
// result. A missing marker leaves the corresponding list empty; parsing
// never fails. Lines before the first recognized marker are ignored.
func ParseComparison(target, competitor, text string) types.Comparison {
	c := types.Comparison{TargetName: target, CompetitorName: competitor}

	var current *[]string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if marker, rest, ok := matchMarker(trimmed); ok {
			switch marker {
			case markerStrengths:
				current = &c.Strengths
			case markerWeaknesses:
				current = &c.Weaknesses
			case markerUseCases:
				current = &c.UseCases
			case markerImprovements:
				current = &c.Improvements
			}
			if item := cleanItem(rest); item != "" {
				*current = append(*current, item)
			}
			continue
		}

		if current == nil {
			continue
		}
		if item := cleanItem(trimmed); item != "" {
			*current = append(*current, item)
		}
	}
	return c
}

// matchMarker reports whether the line opens one of the four fixed sections.
// On a match it returns the canonical marker and any content trailing the
// colon on the same line.
func matchMarker(line string) (marker, rest string, ok bool) {
	head := line
	if idx := strings.Index(line, ":"); idx >= 0 {
		head = line[:idx]
		rest = strings.TrimSpace(line[idx+1:])
	}

	head = strings.ToLower(head)
	head = strings.Trim(head, "#*_ \t")
	head = bulletPrefix.ReplaceAllString(head, "")
	head = strings.TrimSpace(head)

	switch head {
	case markerStrengths:
		return markerStrengths, rest, true
	case markerWeaknesses:
		return markerWeaknesses, rest, true
	case markerUseCases, "best use cases", "recommended use cases":
		return markerUseCases, rest, true
	case markerImprovements, "improvements needed", "improvement areas":
		return markerImprovements, rest, true
	}
	return "", "", false
}

// cleanItem strips bullet and emphasis decoration from a list line.
func cleanItem(line string) string {
	s := strings.TrimSpace(line)
	s = strings.TrimLeft(s, "-*+•– \t")
	s = bulletPrefix.ReplaceAllString(s, "")
	s = strings.Trim(s, "* ")
	// Parenthetical instructions echoed back from the prompt are not items.
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		return ""
	}
	return strings.TrimSpace(s)
}
