// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the guide-curator build version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), versionString(version, debug.ReadBuildInfo))
	},
}

// versionString prefers the ldflags version and falls back to the module
// version recorded by go install.
func versionString(ldflags string, buildInfo func() (*debug.BuildInfo, bool)) string {
	v := ldflags
	if v == "" || v == "dev" {
		if info, ok := buildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
			v = info.Main.Version
		}
	}
	if v == "" {
		v = "dev"
	}
	return "guide-curator " + v
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
