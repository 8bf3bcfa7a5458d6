// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package curate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/pdiddy/guide-curator/pkg/types"
)

type fakeStore struct {
	items  []types.ContentItem
	corpus []types.DraftDocument

	limit      int
	skips      []types.CurationOutcome
	duplicates []types.CurationOutcome
	saved      []types.DraftDocument
	outcomes   []types.CurationOutcome

	unprocessedErr error
	skipErr        error
}

func (f *fakeStore) UnprocessedItems(_ context.Context, limit int) ([]types.ContentItem, error) {
	f.limit = limit
	if f.unprocessedErr != nil {
		return nil, f.unprocessedErr
	}
	return f.items, nil
}

func (f *fakeStore) GuideCorpus(context.Context) ([]types.DraftDocument, error) {
	return append([]types.DraftDocument(nil), f.corpus...), nil
}

func (f *fakeStore) RecordSkip(_ context.Context, out types.CurationOutcome) error {
	if f.skipErr != nil {
		return f.skipErr
	}
	f.skips = append(f.skips, out)
	return nil
}

func (f *fakeStore) RecordDuplicate(_ context.Context, out types.CurationOutcome) error {
	f.duplicates = append(f.duplicates, out)
	return nil
}

func (f *fakeStore) SaveCuratedDraft(_ context.Context, d *types.DraftDocument, out types.CurationOutcome) error {
	d.ID = fmt.Sprintf("draft-%d", len(f.saved)+1)
	out.DraftID = d.ID
	f.saved = append(f.saved, *d)
	f.outcomes = append(f.outcomes, out)
	f.corpus = append(f.corpus, *d)
	return nil
}

func duplicateItem() types.ContentItem {
	return types.ContentItem{
		ID:            3,
		SourceID:      "ki-portal",
		TrustCategory: "official",
		EvidenceTier:  types.TierA,
		Title:         "Kundenanfragen mit ChatGPT beantworten: Anleitung",
		URL:           "https://example.com/anfragen",
		Summary: strings.TrimSpace(strings.Repeat(
			"Jedes Unternehmen kann mit dieser Vorlage Schritt für Schritt Kundenanfragen schneller beantworten. ", 4)),
	}
}

func TestRunOnce(t *testing.T) {
	dup := duplicateItem()
	unusable := types.ContentItem{ID: 4, Title: "Ohne URL"}
	store := &fakeStore{
		items: []types.ContentItem{strongItem(), weakItem(), dup, unusable},
		corpus: []types.DraftDocument{{
			ID:      "existing-1",
			Title:   dup.Title,
			Summary: dup.Summary,
			Status:  types.StatusPublished,
		}},
	}
	var out bytes.Buffer

	r := NewRunner(RunnerOptions{Store: store, BatchSize: 7, Logger: zaptest.NewLogger(t), Out: &out})
	summary, err := r.RunOnce(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 7, store.limit)
	assert.Equal(t, PassSummary{Pulled: 4, Curated: 1, Skipped: 1, Duplicates: 1, Failed: 1}, summary)
	assert.True(t, summary.HasFailures())

	require.Len(t, store.saved, 1)
	saved := store.saved[0]
	assert.Equal(t, strongItem().Title, saved.Title)
	assert.Equal(t, types.StatusPending, saved.Status)
	assert.Positive(t, saved.QualityScore)
	assert.NotEmpty(t, saved.QualityCategory)
	require.Len(t, store.outcomes, 1)
	assert.Equal(t, types.OutcomeCurated, store.outcomes[0].Outcome)
	assert.Equal(t, int64(1), store.outcomes[0].ContentItemID)
	assert.Equal(t, saved.QualityScore, store.outcomes[0].Scores["quality_score"])

	require.Len(t, store.skips, 1)
	assert.Equal(t, int64(2), store.skips[0].ContentItemID)
	assert.Equal(t, types.OutcomeSkipped, store.skips[0].Outcome)
	assert.Equal(t, "mean score 3.0 below 7", store.skips[0].Reason)
	assert.Equal(t, 3, store.skips[0].Scores["relevance"])

	require.Len(t, store.duplicates, 1)
	assert.Equal(t, int64(3), store.duplicates[0].ContentItemID)
	assert.Equal(t, types.OutcomeDuplicate, store.duplicates[0].Outcome)
	assert.Contains(t, store.duplicates[0].Reason, "near-duplicate of")
	assert.Contains(t, store.duplicates[0].Reason, dup.Title)

	lines := out.String()
	assert.Contains(t, lines, "curated:   "+strongItem().Title)
	assert.Contains(t, lines, "skipped:   "+weakItem().Title)
	assert.Contains(t, lines, "duplicate: "+dup.Title)
	assert.Contains(t, lines, "failed:    Ohne URL")
}

func TestRunOnceContinuesAfterStoreError(t *testing.T) {
	store := &fakeStore{
		items:   []types.ContentItem{weakItem(), strongItem()},
		skipErr: errors.New("disk full"),
	}
	r := NewRunner(RunnerOptions{Store: store, Logger: zaptest.NewLogger(t)})

	summary, err := r.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 1, summary.Curated)
	assert.Equal(t, DefaultBatchSize, store.limit)
}

func TestRunOnceLoadError(t *testing.T) {
	store := &fakeStore{unprocessedErr: errors.New("locked")}
	_, err := NewRunner(RunnerOptions{Store: store}).RunOnce(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading unprocessed items")
}

func TestRunOnceHonoursCancellation(t *testing.T) {
	store := &fakeStore{items: []types.ContentItem{strongItem()}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRunner(RunnerOptions{Store: store}).RunOnce(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, store.saved)
}
