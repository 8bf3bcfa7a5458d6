// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the guide-curator CLI.
// Ingestion, curation and submission validation are subcommands; the HTTP
// API is served by `guide-curator serve`.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/guide-curator/internal/config"
	"github.com/pdiddy/guide-curator/internal/logging"
	"github.com/pdiddy/guide-curator/internal/secrets"
	"github.com/pdiddy/guide-curator/internal/similarity"
	"github.com/pdiddy/guide-curator/internal/store"
	"github.com/pdiddy/guide-curator/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// cfg is loaded once before any subcommand runs.
	cfg types.PipelineConfig

	logger *zap.Logger

	// loadedSecrets holds source credentials loaded from .secrets/ at startup.
	loadedSecrets map[string]string
)

// rootCmd is the base command for the guide-curator CLI.
var rootCmd = &cobra.Command{
	Use:   "guide-curator",
	Short: "Ingest, deduplicate and curate practical AI guides",
	Long: `guide-curator pulls external feeds into a local SQLite store, detects
exact and near-duplicate content, scores items for editorial worth and turns
the best ones into draft guides for human review.

User submissions are graded with the same quality rubric and checked against
pending submissions in their category before they are stored.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}

		c, err := config.Load(viper.GetViper())
		if err != nil {
			return err
		}
		cfg = c

		l, err := logging.New(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
		if err != nil {
			return err
		}
		logger = l

		s, err := secrets.Load(secrets.DefaultDir, logger)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			logger.Debug("loaded secrets", zap.Strings("names", keys))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			logger.Sync()
		}
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./guide-curator.yaml or ~/.config/guide-curator/guide-curator.yaml)")
	rootCmd.PersistentFlags().String("db", "", "SQLite database path (overrides store.path)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	viper.BindPFlag("store.path", rootCmd.PersistentFlags().Lookup("db"))
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")

	var configDir string
	if home, err := os.UserHomeDir(); err == nil {
		configDir = filepath.Join(home, ".config", config.Name)
	}
	config.Configure(viper.GetViper(), cfgFile, configDir)
}

// openStore opens the configured database.
func openStore() (*store.Store, error) {
	return store.Open(cfg.Store, logger)
}

// openWriter takes the writer lock and opens the store. The returned
// function releases both.
func openWriter() (*store.Store, func(), error) {
	lock, err := store.LockWriter(cfg.Store.Path)
	if err != nil {
		return nil, nil, err
	}
	s, err := openStore()
	if err != nil {
		lock.Unlock()
		return nil, nil, err
	}
	return s, func() {
		s.Close()
		lock.Unlock()
	}, nil
}

// newEngine builds the similarity engine from configuration.
func newEngine() *similarity.Engine {
	return similarity.New(similarity.Options{
		Weights:    cfg.Similarity.Weights,
		MaxMatches: cfg.Similarity.MaxMatches,
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
