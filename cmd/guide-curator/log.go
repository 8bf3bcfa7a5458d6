// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show recent curation outcomes",
	RunE:  runLog,
}

func init() {
	logCmd.Flags().Int("limit", 20, "number of outcomes to show")

	rootCmd.AddCommand(logCmd)
}

func runLog(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	entries, err := s.CurationLog(context.Background(), limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No curation outcomes yet.")
		return nil
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.CreatedAt.Local().Format(time.DateTime),
			strconv.FormatInt(e.ContentItemID, 10),
			string(e.Outcome),
			e.DraftID,
			clip(e.Reason, 60),
		})
	}
	fmt.Println(renderTable(
		[]string{"When", "Item", "Outcome", "Draft", "Reason"},
		rows,
		[]columnAlignment{alignLeft, alignRight},
	))
	return nil
}
