package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/meshintel/compscout/internal/compare"
	"github.com/meshintel/compscout/internal/deliver"
	"github.com/meshintel/compscout/internal/report"
	"github.com/meshintel/compscout/internal/search"
	"github.com/meshintel/compscout/internal/updates"
)

var updatesCmd = &cobra.Command{
	Use:   "updates",
	Short: "Build a digest of competitors' recent changelog entries",
	Long: `Updates searches for each competitor's recent changelog entries,
falling back to scraping well-known release-notes pages on the competitor's
own domain, summarizes the entries via the text-generation API, and renders
the digest as a PDF. The digest can be saved locally, emailed, or both.`,
	RunE: runUpdates,
}

func runUpdates(cmd *cobra.Command, args []string) error {
	competitors, _ := cmd.Flags().GetStringSlice("competitors")
	recipient, _ := cmd.Flags().GetString("recipient")
	output, _ := cmd.Flags().GetString("output")
	maxItems, _ := cmd.Flags().GetInt("max-items")

	if len(competitors) == 0 {
		return cmd.Help()
	}
	if recipient != "" {
		if err := deliver.ValidateAddress(recipient); err != nil {
			return err
		}
	}

	cfg := pipelineConfig()
	client := &http.Client{Timeout: cfg.Search.Timeout}
	fetcher := &updates.Fetcher{
		Search: &search.SerpAPIBackend{Client: client},
		Client: client,
		Cfg:    cfg.Search,
	}
	ai := &compare.OpenRouterBackend{
		APIKey: cfg.Compare.APIKey,
		Model:  cfg.Compare.Model,
		Client: &http.Client{Timeout: 2 * time.Minute},
	}

	ctx := context.Background()
	digests, err := updates.Collect(ctx, fetcher, ai, competitors, cfg.Compare, maxItems, os.Stdout)
	if err != nil {
		return err
	}

	doc, err := report.RenderUpdates(digests)
	if err != nil {
		return err
	}
	cmd.Printf("rendered %s (%d bytes)\n", doc.Title, len(doc.Bytes))

	if output != "" {
		if err := report.Save(doc, "", len(digests), output); err != nil {
			return err
		}
		cmd.Printf("saved %s\n", output)
	}

	if recipient != "" {
		dispatcher := deliver.NewSMTPDispatcher(cfg.Delivery)
		deliveredAt, err := dispatcher.Send(ctx, doc, recipient)
		if err != nil {
			return err
		}
		cmd.Printf("sent to %s at %s\n", recipient, deliveredAt.Format(time.RFC3339))
	}
	return nil
}

func init() {
	updatesCmd.Flags().StringSlice("competitors", nil, "competitor names (required)")
	updatesCmd.Flags().String("recipient", "", "email address the digest is sent to")
	updatesCmd.Flags().String("output", "", "save the rendered PDF to this path")
	updatesCmd.Flags().Int("max-items", updates.DefaultMaxItems, "maximum update entries per competitor")

	rootCmd.AddCommand(updatesCmd)
}
