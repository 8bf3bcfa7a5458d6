// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"go.uber.org/zap"

	"github.com/pdiddy/guide-curator/internal/slug"
	"github.com/pdiddy/guide-curator/pkg/types"
)

var draftColumns = []string{
	"id", "title", "summary", "steps", "examples", "role", "industries", "tools",
	"evidence_tier", "risk_level", "quality_score", "quality_category", "sources",
	"status", "slug", "category", "origin", "content_item_id",
	"created_at", "updated_at", "published_at",
}

// liveStatuses share one slug namespace.
var liveStatuses = []string{string(types.StatusPending), string(types.StatusPublished)}

// InsertDraft stores a new draft. It assigns an ID when empty, defaults the
// status to pending and picks a slug that is free among live drafts.
func (s *Store) InsertDraft(ctx context.Context, d *types.DraftDocument) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		return s.insertDraft(ctx, tx, d)
	})
}

func (s *Store) insertDraft(ctx context.Context, tx *sql.Tx, d *types.DraftDocument) error {
	if d.ID == "" {
		id, err := s.newID()
		if err != nil {
			return fmt.Errorf("generating draft id: %w", err)
		}
		d.ID = id
	}
	if d.Status == "" {
		d.Status = types.StatusPending
	}
	if d.Origin == "" {
		d.Origin = types.OriginCuration
	}
	if d.RiskLevel == "" {
		d.RiskLevel = types.RiskLow
	}

	base := d.Slug
	if base == "" {
		base = slug.Make(d.Title)
	}
	free, err := s.freeSlug(ctx, tx, base, d.ID)
	if err != nil {
		return err
	}
	d.Slug = free

	now := s.now()
	d.CreatedAt, d.UpdatedAt = now, now

	var itemID any
	if d.ContentItemID != 0 {
		itemID = d.ContentItemID
	}

	_, err = exec(ctx, tx, sq.Insert("drafts").
		Columns(draftColumns...).
		Values(
			d.ID, d.Title, d.Summary, marshalJSON(orEmpty(d.Steps)), marshalJSON(orEmpty(d.Examples)),
			d.Role, marshalJSON(orEmpty(d.Industries)), marshalJSON(orEmpty(d.Tools)),
			string(d.EvidenceTier), string(d.RiskLevel), d.QualityScore, string(d.QualityCategory),
			marshalJSON(orEmptySources(d.Sources)), string(d.Status), d.Slug, d.Category, string(d.Origin),
			itemID, formatTime(d.CreatedAt), formatTime(d.UpdatedAt), formatTimePtr(d.PublishedAt),
		))
	if err != nil {
		return fmt.Errorf("inserting draft %s: %w", d.ID, err)
	}
	s.log.Debug("draft inserted", zap.String("id", d.ID), zap.String("slug", d.Slug))
	return nil
}

// freeSlug returns base, or base-2, base-3, ... whichever is not taken by
// another live draft.
func (s *Store) freeSlug(ctx context.Context, tx *sql.Tx, base, selfID string) (string, error) {
	for n := 1; ; n++ {
		candidate := base
		if n > 1 {
			candidate = slug.WithSuffix(base, n)
		}

		row, err := queryRow(ctx, tx, sq.Select("count(*)").
			From("drafts").
			Where(sq.Eq{"slug": candidate, "status": liveStatuses}).
			Where(sq.NotEq{"id": selfID}))
		if err != nil {
			return "", err
		}
		var taken int
		if err := row.Scan(&taken); err != nil {
			return "", fmt.Errorf("checking slug %s: %w", candidate, err)
		}
		if taken == 0 {
			return candidate, nil
		}
	}
}

// GetDraft returns one draft by ID.
func (s *Store) GetDraft(ctx context.Context, id string) (types.DraftDocument, error) {
	return s.getDraft(ctx, s.db, id)
}

func (s *Store) getDraft(ctx context.Context, e execer, id string) (types.DraftDocument, error) {
	drafts, err := s.listDrafts(ctx, e, sq.Select(draftColumns...).From("drafts").Where(sq.Eq{"id": id}))
	if err != nil {
		return types.DraftDocument{}, err
	}
	if len(drafts) == 0 {
		return types.DraftDocument{}, fmt.Errorf("draft %s: %w", id, ErrNotFound)
	}
	return drafts[0], nil
}

// ListDrafts returns drafts with the given status, or all drafts when
// status is empty, oldest first.
func (s *Store) ListDrafts(ctx context.Context, status types.DraftStatus) ([]types.DraftDocument, error) {
	b := sq.Select(draftColumns...).From("drafts").OrderBy("created_at", "id")
	if status != "" {
		b = b.Where(sq.Eq{"status": string(status)})
	}
	return s.listDrafts(ctx, s.db, b)
}

// GuideCorpus returns every pending and published draft, the corpus new
// drafts are checked against.
func (s *Store) GuideCorpus(ctx context.Context) ([]types.DraftDocument, error) {
	return s.listDrafts(ctx, s.db, sq.Select(draftColumns...).
		From("drafts").
		Where(sq.Eq{"status": liveStatuses}).
		OrderBy("created_at", "id"))
}

// PendingSubmissions returns pending user submissions in category.
func (s *Store) PendingSubmissions(ctx context.Context, category string) ([]types.DraftDocument, error) {
	return s.listDrafts(ctx, s.db, sq.Select(draftColumns...).
		From("drafts").
		Where(sq.Eq{
			"status":   string(types.StatusPending),
			"origin":   string(types.OriginSubmission),
			"category": category,
		}).
		OrderBy("created_at", "id"))
}

// Publish moves a pending draft to published. The slug is re-checked
// against other live drafts and suffixed if needed.
func (s *Store) Publish(ctx context.Context, id string) (types.DraftDocument, error) {
	var d types.DraftDocument
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		var err error
		d, err = s.getDraft(ctx, tx, id)
		if err != nil {
			return err
		}
		if d.Status != types.StatusPending {
			return fmt.Errorf("publishing draft %s from %s: %w", id, d.Status, ErrInvalidTransition)
		}

		final, err := s.freeSlug(ctx, tx, d.Slug, d.ID)
		if err != nil {
			return err
		}
		now := s.now()
		d.Slug = final
		d.Status = types.StatusPublished
		d.UpdatedAt = now
		d.PublishedAt = &now

		_, err = exec(ctx, tx, sq.Update("drafts").
			Set("status", string(d.Status)).
			Set("slug", d.Slug).
			Set("updated_at", formatTime(now)).
			Set("published_at", formatTime(now)).
			Where(sq.Eq{"id": id}))
		if err != nil {
			return fmt.Errorf("publishing draft %s: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return types.DraftDocument{}, err
	}
	return d, nil
}

// Archive retires a pending or published draft. Archived drafts leave the
// slug namespace but are never deleted.
func (s *Store) Archive(ctx context.Context, id string) (types.DraftDocument, error) {
	var d types.DraftDocument
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		var err error
		d, err = s.getDraft(ctx, tx, id)
		if err != nil {
			return err
		}
		if d.Status == types.StatusArchived {
			return fmt.Errorf("archiving draft %s: %w", id, ErrInvalidTransition)
		}

		now := s.now()
		d.Status = types.StatusArchived
		d.UpdatedAt = now
		_, err = exec(ctx, tx, sq.Update("drafts").
			Set("status", string(d.Status)).
			Set("updated_at", formatTime(now)).
			Where(sq.Eq{"id": id}))
		if err != nil {
			return fmt.Errorf("archiving draft %s: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return types.DraftDocument{}, err
	}
	return d, nil
}

func (s *Store) listDrafts(ctx context.Context, e execer, b sq.SelectBuilder) ([]types.DraftDocument, error) {
	rows, err := query(ctx, e, b)
	if err != nil {
		return nil, fmt.Errorf("querying drafts: %w", err)
	}
	defer rows.Close()

	drafts := []types.DraftDocument{}
	for rows.Next() {
		d, err := scanDraft(rows)
		if err != nil {
			return nil, err
		}
		drafts = append(drafts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating drafts: %w", err)
	}
	return drafts, nil
}

func scanDraft(rows *sql.Rows) (types.DraftDocument, error) {
	var (
		d                                 types.DraftDocument
		steps, examples, industries, tool string
		tier, risk, category, status      string
		sources, origin, created, updated string
		itemID                            sql.NullInt64
		published                         sql.NullString
	)
	if err := rows.Scan(
		&d.ID, &d.Title, &d.Summary, &steps, &examples, &d.Role, &industries, &tool,
		&tier, &risk, &d.QualityScore, &category, &sources,
		&status, &d.Slug, &d.Category, &origin, &itemID,
		&created, &updated, &published,
	); err != nil {
		return d, fmt.Errorf("scanning draft: %w", err)
	}

	d.EvidenceTier = types.EvidenceTier(tier)
	d.RiskLevel = types.RiskLevel(risk)
	d.QualityCategory = types.QualityCategory(category)
	d.Status = types.DraftStatus(status)
	d.Origin = types.DraftOrigin(origin)
	d.ContentItemID = itemID.Int64
	d.CreatedAt = parseTime(created)
	d.UpdatedAt = parseTime(updated)
	d.PublishedAt = parseTimePtr(published)

	for _, f := range []struct {
		raw string
		dst any
	}{
		{steps, &d.Steps},
		{examples, &d.Examples},
		{industries, &d.Industries},
		{tool, &d.Tools},
		{sources, &d.Sources},
	} {
		if err := unmarshalJSON(f.raw, f.dst); err != nil {
			return d, fmt.Errorf("decoding draft %s: %w", d.ID, err)
		}
	}
	return d, nil
}

func orEmpty(xs []string) []string {
	if xs == nil {
		return []string{}
	}
	return xs
}

func orEmptySources(xs []types.DraftSource) []types.DraftSource {
	if xs == nil {
		return []types.DraftSource{}
	}
	return xs
}
