// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ingest runs the ingestion stage: fetch, parse and normalize
// every source concurrently, then deduplicate the merged batch and upsert
// it into the store.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/guide-curator/internal/dedupe"
	"github.com/pdiddy/guide-curator/internal/feed"
	"github.com/pdiddy/guide-curator/internal/fetch"
	"github.com/pdiddy/guide-curator/internal/normalize"
	"github.com/pdiddy/guide-curator/internal/secrets"
	"github.com/pdiddy/guide-curator/pkg/types"
)

// DefaultConcurrency bounds how many sources are fetched at once.
const DefaultConcurrency = 4

// Fetcher retrieves a raw payload.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string, headers map[string]string) (fetch.Result, error)
}

// Store receives normalized items.
type Store interface {
	UpsertContentItem(ctx context.Context, item types.ContentItem) (bool, error)
}

// SourceFailure records a source that produced no items.
type SourceFailure struct {
	SourceID string
	Err      error
}

// Summary holds the outcome of an ingestion run.
type Summary struct {
	Sources       int
	FailedSources int
	Entries       int
	Normalized    int
	BatchRemoved  int
	Inserted      int
	Ignored       int
	Failures      []SourceFailure
}

// HasFailures reports whether any source failed.
func (s Summary) HasFailures() bool {
	return s.FailedSources > 0
}

// Options configures a Runner.
type Options struct {
	Fetcher     Fetcher
	Store       Store
	Secrets     map[string]string
	Concurrency int
	Logger      *zap.Logger

	// Out receives one progress line per source.
	Out io.Writer
}

// Runner executes ingestion runs.
type Runner struct {
	fetcher     Fetcher
	store       Store
	secrets     map[string]string
	concurrency int
	log         *zap.Logger
	out         io.Writer
}

// New builds a Runner.
func New(opts Options) *Runner {
	r := &Runner{
		fetcher:     opts.Fetcher,
		store:       opts.Store,
		secrets:     opts.Secrets,
		concurrency: opts.Concurrency,
		log:         opts.Logger,
		out:         opts.Out,
	}
	if r.concurrency <= 0 {
		r.concurrency = DefaultConcurrency
	}
	if r.log == nil {
		r.log = zap.NewNop()
	}
	if r.out == nil {
		r.out = io.Discard
	}
	return r
}

type sourceResult struct {
	entries int
	items   []types.ContentItem
	err     error
}

// Run ingests sources. A failing source is logged and recorded in the
// summary without affecting the others. Store write errors are joined and
// returned after every item has been tried.
func (r *Runner) Run(ctx context.Context, sources []types.SourceDescriptor) (Summary, error) {
	results := make([]sourceResult, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			results[i] = r.ingestSource(gctx, src)
			return nil
		})
	}
	g.Wait()
	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}

	summary := Summary{Sources: len(sources)}
	var merged []types.ContentItem
	for i, res := range results {
		src := sources[i]
		if res.err != nil {
			summary.FailedSources++
			summary.Failures = append(summary.Failures, SourceFailure{SourceID: src.ID, Err: res.err})
			r.log.Warn("source failed", zap.String("source", src.ID), zap.String("url", src.URL), zap.Error(res.err))
			fmt.Fprintf(r.out, "failed:   %s (%v)\n", src.ID, res.err)
			continue
		}
		summary.Entries += res.entries
		summary.Normalized += len(res.items)
		merged = append(merged, res.items...)
		fmt.Fprintf(r.out, "fetched:  %s (%d entries, %d items)\n", src.ID, res.entries, len(res.items))
	}

	kept, removed := dedupe.Batch(merged)
	summary.BatchRemoved = removed

	var errs []error
	for _, item := range kept {
		inserted, err := r.store.UpsertContentItem(ctx, item)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if inserted {
			summary.Inserted++
		} else {
			summary.Ignored++
		}
	}

	r.log.Info("ingestion complete",
		zap.Int("sources", summary.Sources),
		zap.Int("failed_sources", summary.FailedSources),
		zap.Int("entries", summary.Entries),
		zap.Int("normalized", summary.Normalized),
		zap.Int("batch_removed", summary.BatchRemoved),
		zap.Int("inserted", summary.Inserted),
		zap.Int("ignored", summary.Ignored),
		zap.Int("write_errors", len(errs)),
	)
	return summary, errors.Join(errs...)
}

// ingestSource runs fetch, parse and normalize for one source in order.
func (r *Runner) ingestSource(ctx context.Context, src types.SourceDescriptor) sourceResult {
	headers, err := secrets.AuthHeaders(r.secrets, src.AuthSecret)
	if err != nil {
		return sourceResult{err: fmt.Errorf("auth for %s: %w", src.ID, err)}
	}

	res, err := r.fetcher.Fetch(ctx, src.URL, headers)
	if err != nil {
		return sourceResult{err: err}
	}
	r.log.Debug("source fetched", zap.String("source", src.ID), zap.Int("bytes", len(res.Body)), zap.Int("attempts", res.Attempts))

	entries := feed.ForProtocol(src.ProtocolType)(string(res.Body))
	return sourceResult{
		entries: len(entries),
		items:   normalize.Normalize(src, entries),
	}
}
