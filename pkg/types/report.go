// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ReportDocument is a rendered report: an opaque PDF byte stream plus the
// title and generation timestamp. It is handed by reference to the delivery
// stage and not retained afterward.
type ReportDocument struct {
	// Title is the document title, also embedded in the PDF metadata.
	Title string `json:"title" yaml:"title"`

	// GeneratedAt is the UTC time the document was rendered.
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`

	// Bytes is the rendered PDF.
	Bytes []byte `json:"-" yaml:"-"`
}

// UpdateItem is one scraped or searched changelog entry for a competitor.
type UpdateItem struct {
	// SourceURL is where the entry was found.
	SourceURL string `json:"source_url" yaml:"source_url"`

	// Text is the entry text.
	Text string `json:"text" yaml:"text"`
}

// UpdateDigest collects recent update entries for one competitor together
// with a model-written summary.
type UpdateDigest struct {
	// Competitor is the competitor name the digest covers.
	Competitor string `json:"competitor" yaml:"competitor"`

	// Items are the raw update entries, newest-first as discovered.
	Items []UpdateItem `json:"items" yaml:"items"`

	// Summary is the generated prose summary of Items.
	Summary string `json:"summary" yaml:"summary"`
}
