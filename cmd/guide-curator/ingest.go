// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/guide-curator/internal/fetch"
	"github.com/pdiddy/guide-curator/internal/ingest"
	"github.com/pdiddy/guide-curator/internal/sources"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Fetch every registered source and store new content items",
	Long: `Ingest fetches all sources from the registry concurrently, parses RSS,
Atom or JSON API payloads, normalizes entries into content items and stores
them. Items already stored (same content hash) are ignored, so re-running
ingest is safe. A failing source is reported and does not stop the others.`,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().String("sources", "", "source registry JSON file (overrides sources.file)")
	ingestCmd.Flags().Int("concurrency", 0, "sources fetched at once (overrides ingest.concurrency)")
	viper.BindPFlag("ingest.concurrency", ingestCmd.Flags().Lookup("concurrency"))

	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if f, _ := cmd.Flags().GetString("sources"); f != "" {
		cfg.Sources.File = f
	}
	srcs, err := sources.Load(cfg.Sources.File, logger)
	if err != nil {
		return err
	}
	if len(srcs) == 0 {
		return fmt.Errorf("no usable sources in %s", cfg.Sources.File)
	}

	s, release, err := openWriter()
	if err != nil {
		return err
	}
	defer release()

	client := fetch.New(fetch.Options{
		HTTP:           &http.Client{Timeout: cfg.Fetch.Timeout},
		UserAgent:      cfg.Fetch.UserAgent,
		MaxAttempts:    cfg.Fetch.MaxAttempts,
		InitialBackoff: cfg.Fetch.InitialBackoff,
		MaxBytes:       cfg.Fetch.MaxBytes,
		Logger:         logger,
	})
	runner := ingest.New(ingest.Options{
		Fetcher:     client,
		Store:       s,
		Secrets:     loadedSecrets,
		Concurrency: cfg.Ingest.Concurrency,
		Logger:      logger,
		Out:         os.Stdout,
	})

	summary, err := runner.Run(context.Background(), srcs)
	fmt.Fprintf(os.Stdout, "\n%d source(s), %d failed; %d entries, %d normalized, %d removed in batch; %d inserted, %d already stored\n",
		summary.Sources, summary.FailedSources, summary.Entries, summary.Normalized,
		summary.BatchRemoved, summary.Inserted, summary.Ignored)
	if err != nil {
		return fmt.Errorf("storing content items: %w", err)
	}
	if summary.HasFailures() {
		return fmt.Errorf("%d source(s) failed", summary.FailedSources)
	}
	return nil
}
