package types

import "time"

// LogConfig selects the log level and encoder.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is console, json or auto (console on a terminal, json otherwise).
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// StoreConfig locates the SQLite database.
type StoreConfig struct {
	// Path is the database file (e.g. "data/guides.db").
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// SourcesConfig locates the source registry.
type SourcesConfig struct {
	// File is the JSON document holding the sources array.
	File string `json:"file" yaml:"file" mapstructure:"file"`
}

// FetchConfig holds HTTP settings for the fetcher.
type FetchConfig struct {
	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is sent with every request (e.g. "guide-curator/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`

	// MaxAttempts bounds retries per source (default 3).
	MaxAttempts int `json:"max_attempts" yaml:"max_attempts" mapstructure:"max_attempts"`

	// InitialBackoff is multiplied by the attempt number between retries
	// (default 750ms).
	InitialBackoff time.Duration `json:"initial_backoff" yaml:"initial_backoff" mapstructure:"initial_backoff"`

	// MaxBytes caps the response body size.
	MaxBytes int64 `json:"max_bytes" yaml:"max_bytes" mapstructure:"max_bytes"`
}

// IngestConfig holds settings for the ingestion run.
type IngestConfig struct {
	// Concurrency bounds how many sources are fetched at once (default 4).
	Concurrency int `json:"concurrency" yaml:"concurrency" mapstructure:"concurrency"`
}

// CurationConfig holds settings for the curation pass.
type CurationConfig struct {
	// BatchSize is the number of unprocessed items pulled per pass (default 5).
	BatchSize int `json:"batch_size" yaml:"batch_size" mapstructure:"batch_size"`

	// CurateThreshold is the minimum mean of relevance, quality and
	// practicality for a "curate" recommendation (default 7).
	CurateThreshold float64 `json:"curate_threshold" yaml:"curate_threshold" mapstructure:"curate_threshold"`
}

// SimilarityConfig exposes the empirically chosen similarity constants.
type SimilarityConfig struct {
	Weights              Weights    `json:"weights" yaml:"weights" mapstructure:"weights"`
	SubmissionThresholds Thresholds `json:"submission_thresholds" yaml:"submission_thresholds" mapstructure:"submission_thresholds"`
	GuideThresholds      Thresholds `json:"guide_thresholds" yaml:"guide_thresholds" mapstructure:"guide_thresholds"`

	// MaxMatches caps the matches returned by duplicate detection (default 5).
	MaxMatches int `json:"max_matches" yaml:"max_matches" mapstructure:"max_matches"`
}

// ServeConfig holds settings for the HTTP API.
type ServeConfig struct {
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Log        LogConfig        `json:"log" yaml:"log" mapstructure:"log"`
	Store      StoreConfig      `json:"store" yaml:"store" mapstructure:"store"`
	Sources    SourcesConfig    `json:"sources" yaml:"sources" mapstructure:"sources"`
	Fetch      FetchConfig      `json:"fetch" yaml:"fetch" mapstructure:"fetch"`
	Ingest     IngestConfig     `json:"ingest" yaml:"ingest" mapstructure:"ingest"`
	Curation   CurationConfig   `json:"curation" yaml:"curation" mapstructure:"curation"`
	Similarity SimilarityConfig `json:"similarity" yaml:"similarity" mapstructure:"similarity"`
	Serve      ServeConfig      `json:"serve" yaml:"serve" mapstructure:"serve"`
}
