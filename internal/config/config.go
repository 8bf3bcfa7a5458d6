// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config loads the pipeline configuration through viper: defaults,
// then the config file, then GUIDE_CURATOR_* environment variables, then
// bound command flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/guide-curator/internal/logging"
	"github.com/pdiddy/guide-curator/pkg/types"
)

// Name is the config file base name and EnvPrefix the environment prefix.
const (
	Name      = "guide-curator"
	EnvPrefix = "GUIDE_CURATOR"
)

// Defaults returns the built-in configuration.
func Defaults() types.PipelineConfig {
	return types.PipelineConfig{
		Log:     types.LogConfig{Level: "info", Format: logging.FormatAuto},
		Store:   types.StoreConfig{Path: "data/guides.db"},
		Sources: types.SourcesConfig{File: "sources.json"},
		Fetch: types.FetchConfig{
			Timeout:        30 * time.Second,
			UserAgent:      "guide-curator/0.1",
			MaxAttempts:    3,
			InitialBackoff: 750 * time.Millisecond,
			MaxBytes:       10 << 20,
		},
		Ingest:   types.IngestConfig{Concurrency: 4},
		Curation: types.CurationConfig{BatchSize: 5, CurateThreshold: 7},
		Similarity: types.SimilarityConfig{
			Weights:              types.Weights{Title: 0.5, Description: 0.3, Keyword: 0.2},
			SubmissionThresholds: types.Thresholds{Title: 85, Description: 75, Keyword: 65, Overall: 80},
			GuideThresholds:      types.Thresholds{Title: 80, Description: 70, Keyword: 60, Overall: 75},
			MaxMatches:           5,
		},
		Serve: types.ServeConfig{Addr: ":8080"},
	}
}

// SetDefaults registers every default key on v so that environment
// variables resolve even when no config file sets the key.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("store.path", d.Store.Path)
	v.SetDefault("sources.file", d.Sources.File)
	v.SetDefault("fetch.timeout", d.Fetch.Timeout)
	v.SetDefault("fetch.user_agent", d.Fetch.UserAgent)
	v.SetDefault("fetch.max_attempts", d.Fetch.MaxAttempts)
	v.SetDefault("fetch.initial_backoff", d.Fetch.InitialBackoff)
	v.SetDefault("fetch.max_bytes", d.Fetch.MaxBytes)
	v.SetDefault("ingest.concurrency", d.Ingest.Concurrency)
	v.SetDefault("curation.batch_size", d.Curation.BatchSize)
	v.SetDefault("curation.curate_threshold", d.Curation.CurateThreshold)
	v.SetDefault("similarity.weights.title", d.Similarity.Weights.Title)
	v.SetDefault("similarity.weights.description", d.Similarity.Weights.Description)
	v.SetDefault("similarity.weights.keyword", d.Similarity.Weights.Keyword)
	setThresholds(v, "similarity.submission_thresholds", d.Similarity.SubmissionThresholds)
	setThresholds(v, "similarity.guide_thresholds", d.Similarity.GuideThresholds)
	v.SetDefault("similarity.max_matches", d.Similarity.MaxMatches)
	v.SetDefault("serve.addr", d.Serve.Addr)
}

func setThresholds(v *viper.Viper, prefix string, th types.Thresholds) {
	v.SetDefault(prefix+".title", th.Title)
	v.SetDefault(prefix+".description", th.Description)
	v.SetDefault(prefix+".keyword", th.Keyword)
	v.SetDefault(prefix+".overall", th.Overall)
}

// Configure points v at the config file and environment. An empty cfgFile
// searches ./guide-curator.yaml and configDir.
func Configure(v *viper.Viper, cfgFile, configDir string) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(Name)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if configDir != "" {
			v.AddConfigPath(configDir)
		}
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load applies defaults, unmarshals v and validates the result. A missing
// config file is not an error; a malformed one is.
func Load(v *viper.Viper) (types.PipelineConfig, error) {
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return types.PipelineConfig{}, fmt.Errorf("reading config %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var cfg types.PipelineConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return types.PipelineConfig{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return types.PipelineConfig{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func Validate(cfg types.PipelineConfig) error {
	var errs []error
	if _, err := logging.ParseLevel(cfg.Log.Level); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(cfg.Log.Format) {
	case "", logging.FormatAuto, logging.FormatConsole, logging.FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("log.format %q must be auto, console or json", cfg.Log.Format))
	}
	if cfg.Store.Path == "" {
		errs = append(errs, errors.New("store.path is required"))
	}
	if cfg.Fetch.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("fetch.max_attempts %d must be at least 1", cfg.Fetch.MaxAttempts))
	}
	if cfg.Fetch.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("fetch.timeout %s must be positive", cfg.Fetch.Timeout))
	}
	if cfg.Ingest.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("ingest.concurrency %d must be at least 1", cfg.Ingest.Concurrency))
	}
	if cfg.Curation.BatchSize < 1 {
		errs = append(errs, fmt.Errorf("curation.batch_size %d must be at least 1", cfg.Curation.BatchSize))
	}
	if t := cfg.Curation.CurateThreshold; t < 1 || t > 10 {
		errs = append(errs, fmt.Errorf("curation.curate_threshold %g must be within 1..10", t))
	}

	w := cfg.Similarity.Weights
	if w.Title < 0 || w.Description < 0 || w.Keyword < 0 || w.Title+w.Description+w.Keyword == 0 {
		errs = append(errs, errors.New("similarity.weights must be non-negative and not all zero"))
	}
	errs = append(errs,
		validateThresholds("similarity.submission_thresholds", cfg.Similarity.SubmissionThresholds),
		validateThresholds("similarity.guide_thresholds", cfg.Similarity.GuideThresholds),
	)
	if cfg.Similarity.MaxMatches < 1 {
		errs = append(errs, fmt.Errorf("similarity.max_matches %d must be at least 1", cfg.Similarity.MaxMatches))
	}
	return errors.Join(errs...)
}

func validateThresholds(key string, th types.Thresholds) error {
	for name, v := range map[string]int{
		"title": th.Title, "description": th.Description, "keyword": th.Keyword, "overall": th.Overall,
	} {
		if v < 0 || v > 100 {
			return fmt.Errorf("%s.%s %d must be within 0..100", key, name, v)
		}
	}
	return nil
}
