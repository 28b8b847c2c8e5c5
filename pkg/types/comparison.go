// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Comparison is the structured result of comparing the target product
// against one competitor. Instances are immutable after parsing and are
// discarded once rendered.
type Comparison struct {
	// TargetName is the product the report was requested for.
	TargetName string `json:"target_name" yaml:"target_name"`

	// CompetitorName is the competitor this comparison covers.
	CompetitorName string `json:"competitor_name" yaml:"competitor_name"`

	// Strengths lists where the competitor is ahead of the target.
	Strengths []string `json:"strengths" yaml:"strengths"`

	// Weaknesses lists where the competitor falls short.
	Weaknesses []string `json:"weaknesses" yaml:"weaknesses"`

	// UseCases lists scenarios the competitor is best suited for.
	UseCases []string `json:"use_cases" yaml:"use_cases"`

	// Improvements lists changes the target product needs to close the gap.
	Improvements []string `json:"improvements" yaml:"improvements"`
}
