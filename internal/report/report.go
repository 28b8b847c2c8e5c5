// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders structured comparisons into a paginated PDF
// document.
package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/meshintel/compscout/pkg/types"
)

// labeledList is one of the four lists inside a competitor section.
type labeledList struct {
	label string
	items []string
}

// section is one competitor's block in the rendered report.
type section struct {
	heading string
	note    string
	lists   []labeledList
}

// Render produces the competitor report PDF: a title page, one section per
// comparison in input order, and a closing summary line. Zero comparisons
// render a placeholder section rather than failing.
func Render(target string, comparisons []types.Comparison) (*types.ReportDocument, error) {
	title := "Competitor Report: " + target
	summary := fmt.Sprintf("Compared %d competitors for %s.", len(comparisons), target)
	if len(comparisons) == 0 {
		summary = fmt.Sprintf("No competitors were identified for %s.", target)
	}
	return render(title, summary, buildSections(comparisons))
}

// RenderUpdates produces the competitor updates digest PDF, one section per
// digest in input order.
func RenderUpdates(digests []types.UpdateDigest) (*types.ReportDocument, error) {
	title := "Competitor Updates Digest"
	summary := fmt.Sprintf("Covered %d competitors.", len(digests))
	if len(digests) == 0 {
		summary = "No competitors were supplied."
	}
	return render(title, summary, buildUpdateSections(digests))
}

// buildSections maps comparisons onto report sections, preserving input
// order. Empty input yields the placeholder section.
func buildSections(comparisons []types.Comparison) []section {
	if len(comparisons) == 0 {
		return []section{{
			heading: "No data",
			note:    "No competitors were identified for this run.",
		}}
	}

	sections := make([]section, 0, len(comparisons))
	for _, c := range comparisons {
		sections = append(sections, section{
			heading: c.CompetitorName,
			lists: []labeledList{
				{label: "Strengths", items: c.Strengths},
				{label: "Weaknesses", items: c.Weaknesses},
				{label: "Use Cases", items: c.UseCases},
				{label: "Improvements", items: c.Improvements},
			},
		})
	}
	return sections
}

// buildUpdateSections maps update digests onto report sections.
func buildUpdateSections(digests []types.UpdateDigest) []section {
	if len(digests) == 0 {
		return []section{{
			heading: "No data",
			note:    "No competitors were supplied for this digest.",
		}}
	}

	sections := make([]section, 0, len(digests))
	for _, d := range digests {
		items := make([]string, 0, len(d.Items))
		for _, it := range d.Items {
			items = append(items, fmt.Sprintf("%s (source: %s)", it.Text, it.SourceURL))
		}
		sections = append(sections, section{
			heading: d.Competitor,
			note:    d.Summary,
			lists:   []labeledList{{label: "Entries", items: items}},
		})
	}
	return sections
}

// render lays out the document. All construction errors surface as ErrRender.
func render(title, summary string, sections []section) (*types.ReportDocument, error) {
	generatedAt := time.Now().UTC()

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	// Title page.
	pdf.AddPage()
	pdf.Ln(70)
	pdf.SetFont("Helvetica", "B", 24)
	pdf.MultiCell(0, 12, tr(title), "", "C", false)
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 8, "Generated "+generatedAt.Format("2006-01-02 15:04 MST"), "", 1, "C", false, 0, "")

	for _, sec := range sections {
		pdf.AddPage()
		pdf.SetFont("Helvetica", "B", 16)
		pdf.MultiCell(0, 9, tr(sec.heading), "", "L", false)
		if sec.note != "" {
			pdf.Ln(2)
			pdf.SetFont("Helvetica", "", 11)
			pdf.MultiCell(0, 6, tr(sec.note), "", "L", false)
		}
		for _, list := range sec.lists {
			pdf.Ln(4)
			pdf.SetFont("Helvetica", "B", 12)
			pdf.CellFormat(0, 7, tr(list.label), "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 11)
			if len(list.items) == 0 {
				pdf.MultiCell(0, 6, "None identified.", "", "L", false)
				continue
			}
			for _, item := range list.items {
				pdf.MultiCell(0, 6, tr("- "+item), "", "L", false)
			}
		}
	}

	// Closing summary.
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "I", 11)
	pdf.MultiCell(0, 6, tr(summary), "", "L", false)

	if pdf.Err() {
		return nil, fmt.Errorf("building report pages: %w: %v", types.ErrRender, pdf.Error())
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing report: %w: %w", types.ErrRender, err)
	}

	return &types.ReportDocument{
		Title:       title,
		GeneratedAt: generatedAt,
		Bytes:       buf.Bytes(),
	}, nil
}
