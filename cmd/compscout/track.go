package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/meshintel/compscout/internal/pipeline"
	"github.com/meshintel/compscout/internal/track"
)

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Manage recurring report subscriptions",
	Long: `Track manages durable (recipient, product) subscriptions in a local
SQLite database. Subscribed pairs become due once per cadence interval
(weekly by default); run-due executes a full report run for each due pair.`,
}

// --- subscribe subcommand ---

var trackSubscribeCmd = &cobra.Command{
	Use:   "subscribe",
	Short: "Register a recipient for recurring reports on a product",
	RunE:  runTrackSubscribe,
}

func runTrackSubscribe(cmd *cobra.Command, args []string) error {
	email, _ := cmd.Flags().GetString("email")
	product, _ := cmd.Flags().GetString("product")

	registry, err := track.Open(trackingConfig())
	if err != nil {
		return err
	}
	defer registry.Close()

	if err := registry.Subscribe(context.Background(), email, product); err != nil {
		return err
	}
	cmd.Printf("subscribed %s to %s\n", email, product)
	return nil
}

// --- unsubscribe subcommand ---

var trackUnsubscribeCmd = &cobra.Command{
	Use:   "unsubscribe",
	Short: "Remove a recurring report subscription",
	RunE:  runTrackUnsubscribe,
}

func runTrackUnsubscribe(cmd *cobra.Command, args []string) error {
	email, _ := cmd.Flags().GetString("email")
	product, _ := cmd.Flags().GetString("product")

	registry, err := track.Open(trackingConfig())
	if err != nil {
		return err
	}
	defer registry.Close()

	if err := registry.Unsubscribe(context.Background(), email, product); err != nil {
		return err
	}
	cmd.Printf("unsubscribed %s from %s\n", email, product)
	return nil
}

// --- due subcommand ---

var trackDueCmd = &cobra.Command{
	Use:   "due",
	Short: "List subscriptions due for a new run",
	RunE:  runTrackDue,
}

func runTrackDue(cmd *cobra.Command, args []string) error {
	registry, err := track.Open(trackingConfig())
	if err != nil {
		return err
	}
	defer registry.Close()

	subs, err := registry.ListDue(context.Background(), time.Now())
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(subs)
	}

	if len(subs) == 0 {
		cmd.Println("No subscriptions due.")
		return nil
	}
	for _, sub := range subs {
		lastRun := "never"
		if !sub.LastRunAt.IsZero() {
			lastRun = sub.LastRunAt.Format(time.RFC3339)
		}
		cmd.Printf("%s  %s  (last run: %s)\n", sub.UserEmail, sub.Product, lastRun)
	}
	return nil
}

// --- run-due subcommand ---

var trackRunDueCmd = &cobra.Command{
	Use:   "run-due",
	Short: "Execute a report run for every due subscription",
	Long: `Run-due lists due subscriptions and executes one full pipeline run
for each. A run that fails leaves its subscription due; successful runs are
marked so the pair is not due again until the next cadence interval. Each
delivered report is also archived under the configured report output
directory.`,
	RunE: runTrackRunDue,
}

func runTrackRunDue(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig()

	registry, err := track.Open(cfg.Tracking)
	if err != nil {
		return err
	}
	defer registry.Close()

	ctx := context.Background()
	subs, err := registry.ListDue(ctx, time.Now())
	if err != nil {
		return err
	}
	if len(subs) == 0 {
		cmd.Println("No subscriptions due.")
		return nil
	}

	if err := os.MkdirAll(cfg.Report.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating report output directory: %w", err)
	}

	deps := pipelineDeps(cfg)
	var failed []string
	for _, sub := range subs {
		cmd.Printf("running %s for %s\n", sub.Product, sub.UserEmail)

		req := pipeline.Request{
			Product:    sub.Product,
			Recipient:  sub.UserEmail,
			OutputPath: archivePath(cfg.Report.OutputDir, sub.Product),
		}
		if _, err := pipeline.Run(ctx, deps, req, cfg, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "warning: run failed for %s/%s: %v\n", sub.UserEmail, sub.Product, err)
			failed = append(failed, sub.UserEmail+"/"+sub.Product)
			continue
		}
		if err := registry.MarkRun(ctx, sub.UserEmail, sub.Product, time.Now()); err != nil {
			return err
		}
	}

	if len(failed) > 0 {
		return fmt.Errorf("%d of %d runs failed: %s", len(failed), len(subs), strings.Join(failed, ", "))
	}
	cmd.Printf("%d runs completed\n", len(subs))
	return nil
}

// archivePath names the saved copy of a recurring report.
func archivePath(dir, product string) string {
	slug := strings.ToLower(strings.Join(strings.Fields(product), "-"))
	return filepath.Join(dir, fmt.Sprintf("%s-%s.pdf", slug, time.Now().UTC().Format("2006-01-02")))
}

func init() {
	for _, c := range []*cobra.Command{trackSubscribeCmd, trackUnsubscribeCmd} {
		c.Flags().String("email", "", "recipient email address (required)")
		c.Flags().String("product", "", "tracked product name (required)")
	}
	trackDueCmd.Flags().Bool("json", false, "output due subscriptions as JSON")

	trackCmd.AddCommand(trackSubscribeCmd)
	trackCmd.AddCommand(trackUnsubscribeCmd)
	trackCmd.AddCommand(trackDueCmd)
	trackCmd.AddCommand(trackRunDueCmd)

	rootCmd.AddCommand(trackCmd)
}
