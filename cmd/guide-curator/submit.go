// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pdiddy/guide-curator/internal/quality"
	"github.com/pdiddy/guide-curator/internal/submission"
)

var submitCmd = &cobra.Command{
	Use:   "submit FILE",
	Short: "Grade a guide submission and store it for review",
	Long: `Submit reads a guide from a YAML file (title, description, steps,
examples, tools, category), grades it with the quality rubric and checks it
against pending submissions in the same category. A likely duplicate is held
back with a warning; --force stores it anyway.

--score-only prints the grade without storing anything.`,
	Args: cobra.ExactArgs(1),
	RunE: runSubmit,
}

func init() {
	submitCmd.Flags().String("category", "", "submission category (overrides the file)")
	submitCmd.Flags().Bool("force", false, "store the submission even if it looks like a duplicate")
	submitCmd.Flags().Bool("score-only", false, "print the quality grade only")
	submitCmd.Flags().Bool("json", false, "print the result as JSON")

	rootCmd.AddCommand(submitCmd)
}

func runSubmit(cmd *cobra.Command, args []string) error {
	req, err := submission.LoadFile(args[0])
	if err != nil {
		return err
	}
	if c, _ := cmd.Flags().GetString("category"); c != "" {
		req.Category = c
	}
	req.Force, _ = cmd.Flags().GetBool("force")
	scoreOnly, _ := cmd.Flags().GetBool("score-only")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	if scoreOnly {
		q := quality.New(quality.DefaultVocabulary()).Score(req.Submission)
		if jsonOutput {
			return printJSON(q)
		}
		printQuality(q)
		return nil
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	v := submission.New(submission.Options{
		Store:      s,
		Engine:     newEngine(),
		Thresholds: &cfg.Similarity.SubmissionThresholds,
		Logger:     logger,
	})
	resp, err := v.Validate(context.Background(), req)
	if err != nil {
		return err
	}

	if jsonOutput {
		if err := printJSON(resp); err != nil {
			return err
		}
	} else {
		printQuality(resp.Quality)
		if resp.Accepted {
			fmt.Printf("\naccepted: draft %s (%s)\n", resp.DraftID, resp.Slug)
		} else {
			fmt.Printf("\nwarning: %s\n", resp.Warning)
			rows := make([][]string, 0, len(resp.Matches))
			for _, m := range resp.Matches {
				rows = append(rows, []string{m.ExistingID, clip(m.ExistingTitle, 60), strconv.Itoa(m.OverallSimilarity) + "%"})
			}
			fmt.Println(renderTable([]string{"ID", "Title", "Similarity"}, rows, []columnAlignment{alignLeft, alignLeft, alignRight}))
		}
	}
	if !resp.Accepted {
		return fmt.Errorf("submission held as a likely duplicate; rerun with --force to store it")
	}
	return nil
}

func printQuality(q quality.Result) {
	b := q.Breakdown
	rows := [][]string{
		{"Text length", strconv.Itoa(b.TextLength), strconv.Itoa(quality.MaxTextLength)},
		{"Steps", strconv.Itoa(b.Steps), strconv.Itoa(quality.MaxSteps)},
		{"Examples", strconv.Itoa(b.HasExamples), strconv.Itoa(quality.MaxExamples)},
		{"Tools", strconv.Itoa(b.Tools), strconv.Itoa(quality.MaxTools)},
		{"Structure", strconv.Itoa(b.Structure), strconv.Itoa(quality.MaxStructure)},
		{"Density", strconv.Itoa(b.Density), strconv.Itoa(quality.MaxDensity)},
		{"Title", strconv.Itoa(b.TitleQuality), strconv.Itoa(quality.MaxTitleQuality)},
	}
	fmt.Println(renderTable([]string{"Axis", "Score", "Max"}, rows, []columnAlignment{alignLeft, alignRight, alignRight}))
	fmt.Printf("Total: %d/100 (%s)\n", q.Total, q.Category)
	for _, s := range q.Suggestions {
		fmt.Printf("  - %s\n", s)
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
