// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/guide-curator/internal/store"
	"github.com/pdiddy/guide-curator/pkg/types"
)

var draftsCmd = &cobra.Command{
	Use:   "drafts",
	Short: "Review draft guides (list, export)",
}

// --- list subcommand ---

var draftsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List drafts, optionally filtered by status",
	RunE:  runDraftsList,
}

func runDraftsList(cmd *cobra.Command, args []string) error {
	drafts, err := loadDrafts(cmd)
	if err != nil {
		return err
	}
	if len(drafts) == 0 {
		fmt.Println("No drafts found.")
		return nil
	}

	rows := make([][]string, 0, len(drafts))
	for _, d := range drafts {
		rows = append(rows, []string{
			d.ID, d.Slug, string(d.Status), string(d.Origin), string(d.RiskLevel),
			strconv.Itoa(d.QualityScore), clip(d.Title, 50),
		})
	}
	fmt.Println(renderTable(
		[]string{"ID", "Slug", "Status", "Origin", "Risk", "Quality", "Title"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
	))
	fmt.Printf("%d draft(s)\n", len(drafts))
	return nil
}

// --- export subcommand ---

var draftsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export drafts to a YAML file",
	Long: `Export writes drafts (all, or those with --status) to a YAML file for
review outside the tool.`,
	RunE: runDraftsExport,
}

func runDraftsExport(cmd *cobra.Command, args []string) error {
	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		return fmt.Errorf("--out is required")
	}

	drafts, err := loadDrafts(cmd)
	if err != nil {
		return err
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating %s: %w", out, err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(map[string]any{"drafts": drafts}); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	fmt.Printf("exported %d draft(s) to %s\n", len(drafts), out)
	return nil
}

func loadDrafts(cmd *cobra.Command) ([]types.DraftDocument, error) {
	status, _ := cmd.Flags().GetString("status")
	switch types.DraftStatus(status) {
	case "", types.StatusPending, types.StatusPublished, types.StatusArchived:
	default:
		return nil, fmt.Errorf("unknown status %q: use pending, published or archived", status)
	}

	s, err := openStore()
	if err != nil {
		return nil, err
	}
	defer s.Close()
	return s.ListDrafts(context.Background(), types.DraftStatus(status))
}

// --- publish / archive ---

var publishCmd = &cobra.Command{
	Use:   "publish ID",
	Short: "Publish a pending draft",
	Long: `Publish moves a pending draft to published and makes its slug final.
If another live draft took the slug meanwhile, a -2, -3 suffix is added.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return transition(args[0], (*store.Store).Publish, "published")
	},
}

var archiveCmd = &cobra.Command{
	Use:   "archive ID",
	Short: "Archive a pending or published draft",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return transition(args[0], (*store.Store).Archive, "archived")
	},
}

func transition(id string, move func(*store.Store, context.Context, string) (types.DraftDocument, error), verb string) error {
	s, release, err := openWriter()
	if err != nil {
		return err
	}
	defer release()

	d, err := move(s, context.Background(), id)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %s (%s)\n", verb, d.Title, d.Slug)
	return nil
}

func init() {
	draftsListCmd.Flags().String("status", "", "filter by status: pending, published, archived")
	draftsExportCmd.Flags().String("status", "", "filter by status: pending, published, archived")
	draftsExportCmd.Flags().String("out", "", "output YAML file")

	draftsCmd.AddCommand(draftsListCmd, draftsExportCmd)
	rootCmd.AddCommand(draftsCmd, publishCmd, archiveCmd)
}
