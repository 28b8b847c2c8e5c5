// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline orchestrates one report run as a strictly linear
// sequence: search, compare, render, deliver. A failure at any stage
// terminates the run with the stage named in the error; there is no retry
// loop and no branching beyond the comparison stage's per-field
// degradation.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/meshintel/compscout/internal/compare"
	"github.com/meshintel/compscout/internal/deliver"
	"github.com/meshintel/compscout/internal/report"
	"github.com/meshintel/compscout/internal/search"
	"github.com/meshintel/compscout/pkg/types"
)

// Stage names a pipeline phase for error reporting.
type Stage string

const (
	StageValidate Stage = "validate"
	StageSearch   Stage = "search"
	StageCompare  Stage = "compare"
	StageRender   Stage = "render"
	StageDeliver  Stage = "deliver"
)

// Request describes one report run.
type Request struct {
	// Product is the target product or company name. Required.
	Product string

	// Niche optionally narrows search queries and the analyst prompt.
	Niche string

	// Recipient is the address the report is mailed to. Empty skips
	// delivery (local-only run); OutputPath must then be set.
	Recipient string

	// Aspects overrides the configured comparison aspects for this run.
	Aspects []string

	// OutputPath, when set, saves the rendered PDF and a metadata sidecar
	// locally before delivery.
	OutputPath string
}

// Deps are the external collaborators one run needs. Each is an interface
// so tests can run the whole pipeline against fakes.
type Deps struct {
	Search     search.Backend
	AI         compare.AIBackend
	Dispatcher deliver.Dispatcher
}

// Result summarizes a completed run.
type Result struct {
	Candidates  []types.Candidate
	Comparisons []types.Comparison
	Document    *types.ReportDocument
	DeliveredAt time.Time
}

// Run executes one full pipeline run. Each stage blocks until done; a
// rendered-but-undelivered report is a full-run failure, never a partial
// success.
func Run(ctx context.Context, deps Deps, req Request, cfg types.PipelineConfig, w io.Writer) (*Result, error) {
	// Validate before any network call.
	if strings.TrimSpace(req.Product) == "" {
		return nil, stageErr(StageValidate, fmt.Errorf("product name is empty: %w", types.ErrValidation))
	}
	if req.Recipient == "" && req.OutputPath == "" {
		return nil, stageErr(StageValidate, fmt.Errorf("recipient or output path is required: %w", types.ErrValidation))
	}
	if req.Recipient != "" {
		if err := deliver.ValidateAddress(req.Recipient); err != nil {
			return nil, stageErr(StageValidate, err)
		}
	}

	compareCfg := cfg.Compare
	if len(req.Aspects) > 0 {
		compareCfg.Aspects = req.Aspects
	}

	candidates, err := search.Collect(ctx, deps.Search, req.Product, req.Niche, cfg.Search)
	if err != nil {
		return nil, stageErr(StageSearch, err)
	}
	description := search.Description(ctx, deps.Search, req.Product, req.Niche, cfg.Search)
	fmt.Fprintf(w, "search: %d candidates\n", len(candidates))

	comparisons, err := compare.All(ctx, deps.AI, req.Product, description, candidates, compareCfg, w)
	if err != nil {
		return nil, stageErr(StageCompare, err)
	}

	doc, err := report.Render(req.Product, comparisons)
	if err != nil {
		return nil, stageErr(StageRender, err)
	}
	fmt.Fprintf(w, "render: %s (%d bytes)\n", doc.Title, len(doc.Bytes))

	if req.OutputPath != "" {
		if err := report.Save(doc, req.Product, len(comparisons), req.OutputPath); err != nil {
			return nil, stageErr(StageRender, fmt.Errorf("%w: %w", types.ErrRender, err))
		}
		fmt.Fprintf(w, "render: saved %s\n", req.OutputPath)
	}

	result := &Result{
		Candidates:  candidates,
		Comparisons: comparisons,
		Document:    doc,
	}

	if req.Recipient != "" {
		deliveredAt, err := deps.Dispatcher.Send(ctx, doc, req.Recipient)
		if err != nil {
			return nil, stageErr(StageDeliver, err)
		}
		result.DeliveredAt = deliveredAt
		fmt.Fprintf(w, "deliver: sent to %s at %s\n", req.Recipient, deliveredAt.Format(time.RFC3339))
	}

	return result, nil
}

// stageErr tags an error with the stage that produced it.
func stageErr(stage Stage, err error) error {
	return fmt.Errorf("%s stage: %w", stage, err)
}
