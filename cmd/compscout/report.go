package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/meshintel/compscout/internal/compare"
	"github.com/meshintel/compscout/internal/deliver"
	"github.com/meshintel/compscout/internal/pipeline"
	"github.com/meshintel/compscout/internal/search"
	"github.com/meshintel/compscout/internal/track"
	"github.com/meshintel/compscout/pkg/types"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run one competitor report: search, compare, render, deliver",
	Long: `Report executes one full pipeline run for a product: discover
competitors through the search provider, compare each against the product
via the text-generation API, render a PDF report, and email it to the
recipient. With --output the PDF is also saved locally; with --subscribe
the (recipient, product) pair is registered for recurring runs.`,
	RunE: runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	product, _ := cmd.Flags().GetString("product")
	niche, _ := cmd.Flags().GetString("niche")
	recipient, _ := cmd.Flags().GetString("recipient")
	aspects, _ := cmd.Flags().GetStringSlice("aspects")
	limit, _ := cmd.Flags().GetInt("limit")
	subscribe, _ := cmd.Flags().GetBool("subscribe")
	output, _ := cmd.Flags().GetString("output")

	cfg := pipelineConfig()
	if limit > 0 {
		cfg.Search.MaxResults = limit
	}

	req := pipeline.Request{
		Product:    product,
		Niche:      niche,
		Recipient:  recipient,
		Aspects:    aspects,
		OutputPath: output,
	}

	ctx := context.Background()
	result, err := pipeline.Run(ctx, pipelineDeps(cfg), req, cfg, os.Stdout)
	if err != nil {
		return err
	}

	if subscribe && recipient != "" {
		registry, err := track.Open(cfg.Tracking)
		if err != nil {
			return err
		}
		defer registry.Close()
		if err := registry.Subscribe(ctx, recipient, product); err != nil {
			return err
		}
		if err := registry.MarkRun(ctx, recipient, product, time.Now()); err != nil {
			return err
		}
		cmd.Printf("subscribed %s to %s\n", recipient, product)
	}

	cmd.Printf("report complete: %d competitors\n", len(result.Comparisons))
	return nil
}

// pipelineDeps builds the production collaborators for one run.
// Generation calls run much longer than search calls, so the AI backend
// gets its own client with a wider timeout.
func pipelineDeps(cfg types.PipelineConfig) pipeline.Deps {
	return pipeline.Deps{
		Search: &search.SerpAPIBackend{
			Client: &http.Client{Timeout: cfg.Search.Timeout},
		},
		AI: &compare.OpenRouterBackend{
			APIKey: cfg.Compare.APIKey,
			Model:  cfg.Compare.Model,
			Client: &http.Client{Timeout: 2 * time.Minute},
		},
		Dispatcher: deliver.NewSMTPDispatcher(cfg.Delivery),
	}
}

func init() {
	reportCmd.Flags().String("product", "", "target product or company name (required)")
	reportCmd.Flags().String("niche", "", "niche/industry of the product")
	reportCmd.Flags().String("recipient", "", "email address the report is sent to")
	reportCmd.Flags().StringSlice("aspects", nil, "comparison aspects (default: features, pricing, user interface)")
	reportCmd.Flags().Int("limit", 0, "maximum number of competitors (default 6)")
	reportCmd.Flags().Bool("subscribe", false, "register the recipient for recurring reports on this product")
	reportCmd.Flags().String("output", "", "also save the rendered PDF to this path")

	rootCmd.AddCommand(reportCmd)
}
