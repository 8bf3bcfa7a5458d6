// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sources loads the source registry: a JSON document holding the
// feeds to ingest.
package sources

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/guide-curator/pkg/types"
)

// registry is the on-disk shape. Entries stay raw so one malformed entry
// does not fail the whole file.
type registry struct {
	Sources []json.RawMessage `json:"sources"`
}

// Load reads the registry at path. A missing file or invalid top-level
// JSON is an error. Malformed or incomplete entries are logged and
// skipped.
func Load(path string, logger *zap.Logger) ([]types.SourceDescriptor, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading source registry %s: %w", path, err)
	}
	return Parse(data, logger)
}

// Parse decodes a registry document.
func Parse(data []byte, logger *zap.Logger) ([]types.SourceDescriptor, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var reg registry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("decoding source registry: %w", err)
	}

	out := []types.SourceDescriptor{}
	seen := map[string]bool{}
	for i, raw := range reg.Sources {
		var src types.SourceDescriptor
		if err := json.Unmarshal(raw, &src); err != nil {
			logger.Warn("skipping malformed source", zap.Int("index", i), zap.Error(err))
			continue
		}
		src = trim(src)
		if err := Validate(src); err != nil {
			logger.Warn("skipping invalid source", zap.Int("index", i), zap.String("id", src.ID), zap.Error(err))
			continue
		}
		if seen[src.ID] {
			logger.Warn("skipping duplicate source id", zap.Int("index", i), zap.String("id", src.ID))
			continue
		}
		seen[src.ID] = true
		out = append(out, src)
	}
	return out, nil
}

// Validate checks the fields every descriptor needs.
func Validate(src types.SourceDescriptor) error {
	var errs []error
	if src.ID == "" {
		errs = append(errs, errors.New("id is required"))
	}
	if !src.ProtocolType.Valid() {
		errs = append(errs, fmt.Errorf("unknown protocolType %q", src.ProtocolType))
	}
	if !src.EvidenceTier.Valid() {
		errs = append(errs, fmt.Errorf("unknown evidenceTier %q", src.EvidenceTier))
	}
	if err := validateURL(src.URL); err != nil {
		errs = append(errs, err)
	}
	if src.PollFrequency != "" {
		if _, err := time.ParseDuration(src.PollFrequency); err != nil {
			errs = append(errs, fmt.Errorf("pollFrequency %q: %w", src.PollFrequency, err))
		}
	}
	return errors.Join(errs...)
}

func validateURL(raw string) error {
	if raw == "" {
		return errors.New("url is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("url %q: %w", raw, err)
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		if u.Host == "" {
			return fmt.Errorf("url %q has no host", raw)
		}
		return nil
	case "file":
		return nil
	default:
		return fmt.Errorf("url %q must be http(s) or file://", raw)
	}
}

func trim(src types.SourceDescriptor) types.SourceDescriptor {
	src.ID = strings.TrimSpace(src.ID)
	src.URL = strings.TrimSpace(src.URL)
	src.TrustCategory = strings.TrimSpace(src.TrustCategory)
	src.PollFrequency = strings.TrimSpace(src.PollFrequency)
	src.AuthSecret = strings.TrimSpace(src.AuthSecret)
	return src
}
