// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package submission validates user-submitted guides: it grades them with
// the quality rubric, checks them against pending submissions in the same
// category and stores accepted ones as pending drafts.
package submission

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/guide-curator/internal/curate"
	"github.com/pdiddy/guide-curator/internal/quality"
	"github.com/pdiddy/guide-curator/internal/similarity"
	"github.com/pdiddy/guide-curator/pkg/types"
)

// ErrInvalid marks a request that cannot be validated at all.
var ErrInvalid = errors.New("invalid submission")

// Length limits on compared fields. Edit distance is quadratic in length.
const (
	MaxTitleRunes       = 300
	MaxDescriptionRunes = 5000
)

// Store is the persistence the validator needs.
type Store interface {
	PendingSubmissions(ctx context.Context, category string) ([]types.DraftDocument, error)
	InsertDraft(ctx context.Context, d *types.DraftDocument) error
}

// Request is one submission. Force skips the duplicate warning for this
// call only; it is never stored.
type Request struct {
	quality.Submission `yaml:",inline"`

	Category string `json:"category" yaml:"category"`
	Force    bool   `json:"force,omitempty" yaml:"-"`
}

// Response is the validation verdict.
type Response struct {
	Accepted bool           `json:"accepted"`
	DraftID  string         `json:"draftId,omitempty"`
	Slug     string         `json:"slug,omitempty"`
	Quality  quality.Result `json:"quality"`

	// Warning and Matches are set when the submission was held back as a
	// likely duplicate.
	Warning           string                  `json:"warning,omitempty"`
	Matches           []types.SimilarityMatch `json:"matches,omitempty"`
	HighestSimilarity int                     `json:"highestSimilarity"`
}

// Options configures a Validator. Nil components use defaults.
type Options struct {
	Store      Store
	Scorer     *quality.Scorer
	Engine     *similarity.Engine
	Thresholds *types.Thresholds
	Logger     *zap.Logger
}

// Validator runs submissions through scoring and duplicate detection.
type Validator struct {
	store      Store
	scorer     *quality.Scorer
	engine     *similarity.Engine
	thresholds types.Thresholds
	log        *zap.Logger
}

// New builds a Validator. Duplicate checks use SubmissionThresholds unless
// opts.Thresholds is set.
func New(opts Options) *Validator {
	v := &Validator{
		store:      opts.Store,
		scorer:     opts.Scorer,
		engine:     opts.Engine,
		thresholds: similarity.SubmissionThresholds,
		log:        opts.Logger,
	}
	if v.scorer == nil {
		v.scorer = quality.New(quality.DefaultVocabulary())
	}
	if v.engine == nil {
		v.engine = similarity.New(similarity.DefaultOptions())
	}
	if opts.Thresholds != nil {
		v.thresholds = *opts.Thresholds
	}
	if v.log == nil {
		v.log = zap.NewNop()
	}
	return v
}

// Score grades a submission without touching the store.
func (v *Validator) Score(sub quality.Submission) quality.Result {
	return v.scorer.Score(sub)
}

// Validate grades req and compares it with the pending submissions of its
// category. A likely duplicate is returned unaccepted with a warning unless
// req.Force is set; anything else is stored as a pending draft.
func (v *Validator) Validate(ctx context.Context, req Request) (Response, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Category = strings.TrimSpace(req.Category)
	if req.Title == "" {
		return Response{}, fmt.Errorf("%w: title is required", ErrInvalid)
	}
	if req.Category == "" {
		return Response{}, fmt.Errorf("%w: category is required", ErrInvalid)
	}
	if n := utf8.RuneCountInString(req.Title); n > MaxTitleRunes {
		return Response{}, fmt.Errorf("%w: title has %d characters, limit is %d", ErrInvalid, n, MaxTitleRunes)
	}
	if n := utf8.RuneCountInString(req.Description); n > MaxDescriptionRunes {
		return Response{}, fmt.Errorf("%w: description has %d characters, limit is %d", ErrInvalid, n, MaxDescriptionRunes)
	}

	resp := Response{Quality: v.scorer.Score(req.Submission)}

	pending, err := v.store.PendingSubmissions(ctx, req.Category)
	if err != nil {
		return Response{}, fmt.Errorf("loading pending submissions in %s: %w", req.Category, err)
	}
	det := v.engine.DetectDuplicates(
		similarity.Document{Title: req.Title, Description: req.Description},
		curate.Documents(pending),
		v.thresholds,
	)
	resp.Matches = det.Matches
	resp.HighestSimilarity = det.HighestSimilarity

	if det.IsDuplicate && !req.Force {
		best := det.Matches[0]
		resp.Warning = fmt.Sprintf("a similar submission is already pending review: %q (%d%% similar)",
			best.ExistingTitle, best.OverallSimilarity)
		v.log.Info("submission held as duplicate",
			zap.String("title", req.Title),
			zap.String("category", req.Category),
			zap.String("existing_id", best.ExistingID),
			zap.Int("similarity", best.OverallSimilarity),
		)
		return resp, nil
	}

	d := draftOf(req, resp.Quality)
	if err := v.store.InsertDraft(ctx, &d); err != nil {
		return Response{}, fmt.Errorf("saving submission %q: %w", req.Title, err)
	}
	resp.Accepted = true
	resp.DraftID = d.ID
	resp.Slug = d.Slug
	v.log.Info("submission accepted",
		zap.String("draft_id", d.ID),
		zap.String("category", req.Category),
		zap.Int("quality", resp.Quality.Total),
		zap.Bool("forced", req.Force && det.IsDuplicate),
	)
	return resp, nil
}

func draftOf(req Request, q quality.Result) types.DraftDocument {
	return types.DraftDocument{
		Title:           req.Title,
		Summary:         strings.TrimSpace(req.Description),
		Steps:           nonEmpty(req.Steps),
		Examples:        nonEmpty(req.Examples),
		Industries:      []string{},
		Tools:           nonEmpty(req.Tools),
		RiskLevel:       types.RiskLow,
		QualityScore:    q.Total,
		QualityCategory: q.Category,
		Sources:         []types.DraftSource{{Label: types.SubmissionSourceLabel}},
		Status:          types.StatusPending,
		Category:        req.Category,
		Origin:          types.OriginSubmission,
	}
}

func nonEmpty(xs []string) []string {
	out := []string{}
	for _, x := range xs {
		if s := strings.TrimSpace(x); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// LoadFile reads a submission from a YAML file.
func LoadFile(path string) (Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Request{}, fmt.Errorf("reading submission %s: %w", path, err)
	}
	var req Request
	if err := yaml.Unmarshal(data, &req); err != nil {
		return Request{}, fmt.Errorf("parsing submission %s: %w", path, err)
	}
	return req, nil
}
