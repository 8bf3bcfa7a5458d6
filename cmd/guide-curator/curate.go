// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/guide-curator/internal/curate"
	"github.com/pdiddy/guide-curator/internal/quality"
)

var curateCmd = &cobra.Command{
	Use:   "curate",
	Short: "Turn unprocessed content items into pending draft guides",
	Long: `Curate pulls a batch of unprocessed items, scores each for relevance,
quality and practicality, and either records a skip or builds a draft. Drafts
that closely match an existing pending or published guide are recorded as
duplicates. Items that fail stay unprocessed for the next pass.

--passes repeats the pass until that many have run or no items remain.`,
	RunE: runCurate,
}

func init() {
	curateCmd.Flags().Int("batch-size", 0, "items pulled per pass (overrides curation.batch_size)")
	curateCmd.Flags().Int("passes", 1, "number of passes to run")
	viper.BindPFlag("curation.batch_size", curateCmd.Flags().Lookup("batch-size"))

	rootCmd.AddCommand(curateCmd)
}

func runCurate(cmd *cobra.Command, args []string) error {
	passes, _ := cmd.Flags().GetInt("passes")
	if passes < 1 {
		return fmt.Errorf("--passes must be at least 1")
	}

	s, release, err := openWriter()
	if err != nil {
		return err
	}
	defer release()

	runner := curate.NewRunner(curate.RunnerOptions{
		Store:      s,
		Curator:    curate.New(curate.Options{CurateThreshold: cfg.Curation.CurateThreshold}),
		Scorer:     quality.New(quality.DefaultVocabulary()),
		Engine:     newEngine(),
		Thresholds: &cfg.Similarity.GuideThresholds,
		BatchSize:  cfg.Curation.BatchSize,
		Logger:     logger,
		Out:        os.Stdout,
	})

	var total curate.PassSummary
	for p := 0; p < passes; p++ {
		summary, err := runner.RunOnce(context.Background())
		if err != nil {
			return err
		}
		total.Pulled += summary.Pulled
		total.Curated += summary.Curated
		total.Skipped += summary.Skipped
		total.Duplicates += summary.Duplicates
		total.Failed += summary.Failed
		if summary.Pulled == 0 {
			break
		}
	}

	fmt.Fprintf(os.Stdout, "\n%d pulled: %d curated, %d skipped, %d duplicate, %d failed\n",
		total.Pulled, total.Curated, total.Skipped, total.Duplicates, total.Failed)
	if total.HasFailures() {
		return fmt.Errorf("%d item(s) failed curation", total.Failed)
	}
	return nil
}
