// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/guide-curator/internal/sources"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the registered sources",
	Long: `Sources loads the source registry and prints every usable descriptor.
Malformed entries are reported as warnings and left out. Poll frequency is
informational; scheduling ingest runs is up to the caller.`,
	RunE: runSources,
}

func init() {
	sourcesCmd.Flags().String("sources", "", "source registry JSON file (overrides sources.file)")

	rootCmd.AddCommand(sourcesCmd)
}

func runSources(cmd *cobra.Command, args []string) error {
	if f, _ := cmd.Flags().GetString("sources"); f != "" {
		cfg.Sources.File = f
	}
	srcs, err := sources.Load(cfg.Sources.File, logger)
	if err != nil {
		return err
	}
	if len(srcs) == 0 {
		fmt.Println("No sources registered.")
		return nil
	}

	rows := make([][]string, 0, len(srcs))
	for _, s := range srcs {
		auth := ""
		if s.AuthSecret != "" {
			auth = s.AuthSecret
			if _, ok := loadedSecrets[s.AuthSecret]; !ok {
				auth += " (missing)"
			}
		}
		rows = append(rows, []string{
			s.ID, string(s.ProtocolType), string(s.EvidenceTier), s.TrustCategory, s.PollFrequency, auth, clip(s.URL, 60),
		})
	}
	fmt.Println(renderTable([]string{"ID", "Protocol", "Tier", "Trust", "Poll", "Auth", "URL"}, rows, nil))
	fmt.Printf("%d source(s)\n", len(srcs))
	return nil
}
