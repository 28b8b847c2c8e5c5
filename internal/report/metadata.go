// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"os"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/meshintel/compscout/pkg/types"
)

// Metadata is the YAML sidecar written next to a locally saved report.
type Metadata struct {
	Title       string    `yaml:"title"`
	Target      string    `yaml:"target,omitempty"`
	Competitors int       `yaml:"competitors"`
	GeneratedAt time.Time `yaml:"generated_at"`
	SizeBytes   int       `yaml:"size_bytes"`
}

// Save writes the document to pdfPath and a metadata sidecar to the same
// path with the .pdf suffix replaced by .yaml.
func Save(doc *types.ReportDocument, target string, competitors int, pdfPath string) error {
	if err := os.WriteFile(pdfPath, doc.Bytes, 0o644); err != nil {
		return fmt.Errorf("saving report: %w", err)
	}

	meta := Metadata{
		Title:       doc.Title,
		Target:      target,
		Competitors: competitors,
		GeneratedAt: doc.GeneratedAt,
		SizeBytes:   len(doc.Bytes),
	}
	data, err := yaml.Marshal(meta)
	if err != nil {
		return fmt.Errorf("marshaling report metadata: %w", err)
	}
	return os.WriteFile(sidecarPath(pdfPath), data, 0o644)
}

// sidecarPath derives the metadata path from the PDF path.
func sidecarPath(pdfPath string) string {
	return strings.TrimSuffix(pdfPath, ".pdf") + ".yaml"
}
