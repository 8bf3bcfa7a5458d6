// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package curate

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/pdiddy/guide-curator/internal/quality"
	"github.com/pdiddy/guide-curator/internal/similarity"
	"github.com/pdiddy/guide-curator/pkg/types"
)

// DefaultBatchSize is the number of unprocessed items pulled per pass.
const DefaultBatchSize = 5

// Store is the persistence the curation pass needs. Each Record and Save
// call marks the item processed in the same transaction that logs the
// outcome.
type Store interface {
	UnprocessedItems(ctx context.Context, limit int) ([]types.ContentItem, error)
	GuideCorpus(ctx context.Context) ([]types.DraftDocument, error)
	RecordSkip(ctx context.Context, out types.CurationOutcome) error
	RecordDuplicate(ctx context.Context, out types.CurationOutcome) error
	SaveCuratedDraft(ctx context.Context, d *types.DraftDocument, out types.CurationOutcome) error
}

// PassSummary holds the outcome of one curation pass.
type PassSummary struct {
	Pulled     int
	Curated    int
	Skipped    int
	Duplicates int
	Failed     int
}

// HasFailures reports whether any item failed and stays unprocessed.
func (s PassSummary) HasFailures() bool {
	return s.Failed > 0
}

// RunnerOptions configures a Runner. Nil components use defaults.
type RunnerOptions struct {
	Store      Store
	Curator    *Curator
	Scorer     *quality.Scorer
	Engine     *similarity.Engine
	Thresholds *types.Thresholds
	BatchSize  int
	Logger     *zap.Logger

	// Out receives one progress line per item.
	Out io.Writer
}

// Runner executes curation passes.
type Runner struct {
	store      Store
	curator    *Curator
	scorer     *quality.Scorer
	engine     *similarity.Engine
	thresholds types.Thresholds
	batchSize  int
	log        *zap.Logger
	out        io.Writer
}

// NewRunner builds a Runner. Duplicate checks use GuideThresholds unless
// opts.Thresholds is set.
func NewRunner(opts RunnerOptions) *Runner {
	r := &Runner{
		store:      opts.Store,
		curator:    opts.Curator,
		scorer:     opts.Scorer,
		engine:     opts.Engine,
		thresholds: similarity.GuideThresholds,
		batchSize:  opts.BatchSize,
		log:        opts.Logger,
		out:        opts.Out,
	}
	if r.curator == nil {
		r.curator = New(Options{})
	}
	if r.scorer == nil {
		r.scorer = quality.New(quality.DefaultVocabulary())
	}
	if r.engine == nil {
		r.engine = similarity.New(similarity.DefaultOptions())
	}
	if opts.Thresholds != nil {
		r.thresholds = *opts.Thresholds
	}
	if r.batchSize <= 0 {
		r.batchSize = DefaultBatchSize
	}
	if r.log == nil {
		r.log = zap.NewNop()
	}
	if r.out == nil {
		r.out = io.Discard
	}
	return r
}

// RunOnce curates one batch of unprocessed items. Per-item errors are
// logged and counted; the item stays unprocessed for the next pass. Only a
// failure to load the batch is returned.
func (r *Runner) RunOnce(ctx context.Context) (PassSummary, error) {
	items, err := r.store.UnprocessedItems(ctx, r.batchSize)
	if err != nil {
		return PassSummary{}, fmt.Errorf("loading unprocessed items: %w", err)
	}

	summary := PassSummary{Pulled: len(items)}
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		outcome, err := r.curateItem(ctx, item)
		if err != nil {
			summary.Failed++
			r.log.Error("curating item", zap.Int64("item_id", item.ID), zap.String("title", item.Title), zap.Error(err))
			fmt.Fprintf(r.out, "failed:    %s (%v)\n", item.Title, err)
			continue
		}

		switch outcome.Outcome {
		case types.OutcomeCurated:
			summary.Curated++
			fmt.Fprintf(r.out, "curated:   %s\n", item.Title)
		case types.OutcomeDuplicate:
			summary.Duplicates++
			fmt.Fprintf(r.out, "duplicate: %s (%s)\n", item.Title, outcome.Reason)
		default:
			summary.Skipped++
			fmt.Fprintf(r.out, "skipped:   %s (%s)\n", item.Title, outcome.Reason)
		}
	}

	r.log.Info("curation pass complete",
		zap.Int("pulled", summary.Pulled),
		zap.Int("curated", summary.Curated),
		zap.Int("skipped", summary.Skipped),
		zap.Int("duplicates", summary.Duplicates),
		zap.Int("failed", summary.Failed),
	)
	return summary, nil
}

func (r *Runner) curateItem(ctx context.Context, item types.ContentItem) (types.CurationOutcome, error) {
	ev, err := r.curator.Evaluate(item)
	if err != nil {
		return types.CurationOutcome{}, fmt.Errorf("evaluating item %d: %w", item.ID, err)
	}

	out := types.CurationOutcome{ContentItemID: item.ID, Scores: ev.Scores()}

	if ev.Recommendation != RecommendCurate {
		out.Outcome = types.OutcomeSkipped
		out.Reason = fmt.Sprintf("mean score %.1f below %g", ev.Mean(), r.curator.Threshold())
		if err := r.store.RecordSkip(ctx, out); err != nil {
			return out, fmt.Errorf("recording skip for item %d: %w", item.ID, err)
		}
		return out, nil
	}

	draft := BuildDraft(item, ev)
	q := r.scorer.Score(quality.Submission{
		Title:       draft.Title,
		Description: draft.Summary,
		Steps:       draft.Steps,
		Examples:    draft.Examples,
		Tools:       draft.Tools,
	})
	draft.QualityScore = q.Total
	draft.QualityCategory = q.Category
	out.Scores["quality_score"] = q.Total

	corpus, err := r.store.GuideCorpus(ctx)
	if err != nil {
		return out, fmt.Errorf("loading guide corpus: %w", err)
	}
	det := r.engine.DetectDuplicates(DocumentOf(draft), Documents(corpus), r.thresholds)
	if det.IsDuplicate {
		best := det.Matches[0]
		out.Outcome = types.OutcomeDuplicate
		out.Reason = fmt.Sprintf("near-duplicate of %q (%d%%)", best.ExistingTitle, best.OverallSimilarity)
		if err := r.store.RecordDuplicate(ctx, out); err != nil {
			return out, fmt.Errorf("recording duplicate for item %d: %w", item.ID, err)
		}
		return out, nil
	}

	out.Outcome = types.OutcomeCurated
	if err := r.store.SaveCuratedDraft(ctx, &draft, out); err != nil {
		return out, fmt.Errorf("saving draft for item %d: %w", item.ID, err)
	}
	out.DraftID = draft.ID
	r.log.Debug("draft saved", zap.String("draft_id", draft.ID), zap.String("slug", draft.Slug))
	return out, nil
}

// DocumentOf is the similarity view of a draft.
func DocumentOf(d types.DraftDocument) similarity.Document {
	return similarity.Document{ID: d.ID, Title: d.Title, Description: d.Summary}
}

// Documents maps drafts onto similarity documents.
func Documents(drafts []types.DraftDocument) []similarity.Document {
	docs := make([]similarity.Document, 0, len(drafts))
	for _, d := range drafts {
		docs = append(docs, DocumentOf(d))
	}
	return docs
}
