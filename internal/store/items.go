// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/pdiddy/guide-curator/pkg/types"
)

var itemColumns = []string{
	"id", "source_id", "source_type", "trust_category", "evidence_tier",
	"title", "url", "published_at", "content_hash", "summary", "tags",
	"raw_payload", "processed", "is_duplicate", "created_at",
}

// UpsertContentItem inserts item unless its content hash is already
// stored. It reports whether a row was written.
func (s *Store) UpsertContentItem(ctx context.Context, item types.ContentItem) (bool, error) {
	tags := item.Tags
	if tags == nil {
		tags = []string{}
	}
	raw := item.RawPayload
	if raw == nil {
		raw = map[string]string{}
	}

	res, err := exec(ctx, s.db, sq.Insert("content_items").
		Columns(
			"source_id", "source_type", "trust_category", "evidence_tier",
			"title", "url", "published_at", "content_hash", "summary",
			"tags", "raw_payload", "processed", "is_duplicate", "created_at",
		).
		Values(
			item.SourceID, string(item.SourceType), item.TrustCategory, string(item.EvidenceTier),
			item.Title, item.URL, formatTimePtr(item.PublishedAt), item.ContentHash, item.Summary,
			marshalJSON(tags), marshalJSON(raw), boolInt(item.Processed), boolInt(item.IsDuplicate),
			formatTime(s.now()),
		).
		Suffix("ON CONFLICT(content_hash) DO NOTHING"))
	if err != nil {
		return false, fmt.Errorf("upserting content item %s: %w", item.ContentHash, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("upserting content item %s: %w", item.ContentHash, err)
	}
	return n == 1, nil
}

// UnprocessedItems returns up to limit items awaiting curation, oldest
// first.
func (s *Store) UnprocessedItems(ctx context.Context, limit int) ([]types.ContentItem, error) {
	b := sq.Select(itemColumns...).
		From("content_items").
		Where(sq.Eq{"processed": 0}).
		OrderBy("id")
	if limit > 0 {
		b = b.Limit(uint64(limit))
	}
	return s.listItems(ctx, b)
}

// GetContentItem returns one item by ID.
func (s *Store) GetContentItem(ctx context.Context, id int64) (types.ContentItem, error) {
	items, err := s.listItems(ctx, sq.Select(itemColumns...).From("content_items").Where(sq.Eq{"id": id}))
	if err != nil {
		return types.ContentItem{}, err
	}
	if len(items) == 0 {
		return types.ContentItem{}, fmt.Errorf("content item %d: %w", id, ErrNotFound)
	}
	return items[0], nil
}

// CountContentItems returns the number of stored items.
func (s *Store) CountContentItems(ctx context.Context) (int, error) {
	row, err := queryRow(ctx, s.db, sq.Select("count(*)").From("content_items"))
	if err != nil {
		return 0, err
	}
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("counting content items: %w", err)
	}
	return n, nil
}

func (s *Store) listItems(ctx context.Context, b sq.SelectBuilder) ([]types.ContentItem, error) {
	rows, err := query(ctx, s.db, b)
	if err != nil {
		return nil, fmt.Errorf("querying content items: %w", err)
	}
	defer rows.Close()

	items := []types.ContentItem{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating content items: %w", err)
	}
	return items, nil
}

func scanItem(rows *sql.Rows) (types.ContentItem, error) {
	var (
		it                 types.ContentItem
		sourceType, tier   string
		published          sql.NullString
		tags, raw, created string
		processed, isDup   int
	)
	if err := rows.Scan(
		&it.ID, &it.SourceID, &sourceType, &it.TrustCategory, &tier,
		&it.Title, &it.URL, &published, &it.ContentHash, &it.Summary, &tags,
		&raw, &processed, &isDup, &created,
	); err != nil {
		return it, fmt.Errorf("scanning content item: %w", err)
	}

	it.SourceType = types.ProtocolType(sourceType)
	it.EvidenceTier = types.EvidenceTier(tier)
	it.PublishedAt = parseTimePtr(published)
	it.Processed = processed == 1
	it.IsDuplicate = isDup == 1
	it.CreatedAt = parseTime(created)
	if err := unmarshalJSON(tags, &it.Tags); err != nil {
		return it, fmt.Errorf("decoding tags of item %d: %w", it.ID, err)
	}
	if err := unmarshalJSON(raw, &it.RawPayload); err != nil {
		return it, fmt.Errorf("decoding raw payload of item %d: %w", it.ID, err)
	}
	return it, nil
}

// RecordSkip marks an item processed and logs a skipped outcome.
func (s *Store) RecordSkip(ctx context.Context, out types.CurationOutcome) error {
	out.Outcome = types.OutcomeSkipped
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if err := s.markProcessed(ctx, tx, out.ContentItemID, false); err != nil {
			return err
		}
		return s.insertOutcome(ctx, tx, out)
	})
}

// RecordDuplicate marks an item processed and duplicate and logs the
// outcome.
func (s *Store) RecordDuplicate(ctx context.Context, out types.CurationOutcome) error {
	out.Outcome = types.OutcomeDuplicate
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if err := s.markProcessed(ctx, tx, out.ContentItemID, true); err != nil {
			return err
		}
		return s.insertOutcome(ctx, tx, out)
	})
}

// SaveCuratedDraft inserts d, marks its item processed and logs the
// outcome in one transaction. It assigns d.ID and d.Slug.
func (s *Store) SaveCuratedDraft(ctx context.Context, d *types.DraftDocument, out types.CurationOutcome) error {
	out.Outcome = types.OutcomeCurated
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if err := s.markProcessed(ctx, tx, out.ContentItemID, false); err != nil {
			return err
		}
		if err := s.insertDraft(ctx, tx, d); err != nil {
			return err
		}
		out.DraftID = d.ID
		return s.insertOutcome(ctx, tx, out)
	})
}

// markProcessed flips processed on an unprocessed item. An item that is
// missing or already processed is an error, so no item is curated twice.
func (s *Store) markProcessed(ctx context.Context, tx *sql.Tx, id int64, duplicate bool) error {
	set := sq.Update("content_items").Set("processed", 1).Where(sq.Eq{"id": id, "processed": 0})
	if duplicate {
		set = set.Set("is_duplicate", 1)
	}
	res, err := exec(ctx, tx, set)
	if err != nil {
		return fmt.Errorf("marking item %d processed: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("marking item %d processed: %w", id, err)
	}
	if n == 1 {
		return nil
	}

	row, err := queryRow(ctx, tx, sq.Select("count(*)").From("content_items").Where(sq.Eq{"id": id}))
	if err != nil {
		return err
	}
	var exists int
	if err := row.Scan(&exists); err != nil {
		return fmt.Errorf("checking item %d: %w", id, err)
	}
	if exists == 0 {
		return fmt.Errorf("content item %d: %w", id, ErrNotFound)
	}
	return fmt.Errorf("content item %d: %w", id, ErrAlreadyProcessed)
}

func (s *Store) insertOutcome(ctx context.Context, tx *sql.Tx, out types.CurationOutcome) error {
	scores := out.Scores
	if scores == nil {
		scores = map[string]int{}
	}
	var draftID any
	if out.DraftID != "" {
		draftID = out.DraftID
	}
	_, err := exec(ctx, tx, sq.Insert("curation_log").
		Columns("content_item_id", "outcome", "reason", "draft_id", "scores", "created_at").
		Values(out.ContentItemID, string(out.Outcome), out.Reason, draftID, marshalJSON(scores), formatTime(s.now())))
	if err != nil {
		return fmt.Errorf("logging outcome for item %d: %w", out.ContentItemID, err)
	}
	return nil
}

// CurationLog returns the most recent outcomes, newest first.
func (s *Store) CurationLog(ctx context.Context, limit int) ([]types.CurationOutcome, error) {
	b := sq.Select("content_item_id", "outcome", "reason", "draft_id", "scores", "created_at").
		From("curation_log").
		OrderBy("id DESC")
	if limit > 0 {
		b = b.Limit(uint64(limit))
	}
	rows, err := query(ctx, s.db, b)
	if err != nil {
		return nil, fmt.Errorf("querying curation log: %w", err)
	}
	defer rows.Close()

	log := []types.CurationOutcome{}
	for rows.Next() {
		var (
			out              types.CurationOutcome
			outcome, created string
			scores           string
			draftID          sql.NullString
		)
		if err := rows.Scan(&out.ContentItemID, &outcome, &out.Reason, &draftID, &scores, &created); err != nil {
			return nil, fmt.Errorf("scanning curation log: %w", err)
		}
		out.Outcome = types.CurationOutcomeKind(outcome)
		out.DraftID = draftID.String
		out.CreatedAt = parseTime(created)
		if err := unmarshalJSON(scores, &out.Scores); err != nil {
			return nil, fmt.Errorf("decoding scores: %w", err)
		}
		log = append(log, out)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating curation log: %w", err)
	}
	return log, nil
}
