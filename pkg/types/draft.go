// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// RiskLevel grades the editorial risk of a guide.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// QualityCategory is the banded form of a 0-100 quality score.
type QualityCategory string

const (
	QualityExcellent QualityCategory = "excellent"
	QualityGood      QualityCategory = "good"
	QualityFair      QualityCategory = "fair"
	QualityPoor      QualityCategory = "poor"
)

// DraftStatus tracks a draft through review.
type DraftStatus string

const (
	StatusPending   DraftStatus = "pending"
	StatusPublished DraftStatus = "published"
	StatusArchived  DraftStatus = "archived"
)

// DraftOrigin records which path created a draft.
type DraftOrigin string

const (
	OriginCuration   DraftOrigin = "curation"
	OriginSubmission DraftOrigin = "submission"
)

// SubmissionSourceLabel is the provenance label of user-submitted drafts.
const SubmissionSourceLabel = "user submission"

// DraftSource records where a draft came from.
type DraftSource struct {
	ContentItemID int64  `json:"content_item_id,omitempty" yaml:"content_item_id,omitempty"`
	URL           string `json:"url,omitempty" yaml:"url,omitempty"`
	Label         string `json:"label,omitempty" yaml:"label,omitempty"`
}

// DraftDocument is a human-reviewable guide candidate produced by curation
// or by a user submission.
type DraftDocument struct {
	ID       string   `json:"id" yaml:"id"`
	Title    string   `json:"title" yaml:"title"`
	Summary  string   `json:"summary" yaml:"summary"`
	Steps    []string `json:"steps" yaml:"steps"`
	Examples []string `json:"examples" yaml:"examples"`

	// Role is empty when no role vocabulary matched.
	Role       string   `json:"role,omitempty" yaml:"role,omitempty"`
	Industries []string `json:"industries" yaml:"industries"`
	Tools      []string `json:"tools" yaml:"tools"`

	EvidenceTier    EvidenceTier    `json:"evidence_tier" yaml:"evidence_tier"`
	RiskLevel       RiskLevel       `json:"risk_level" yaml:"risk_level"`
	QualityScore    int             `json:"quality_score" yaml:"quality_score"`
	QualityCategory QualityCategory `json:"quality_category" yaml:"quality_category"`

	Sources []DraftSource `json:"sources" yaml:"sources"`
	Status  DraftStatus   `json:"status" yaml:"status"`

	// Slug is unique among pending and published drafts.
	Slug string `json:"slug" yaml:"slug"`

	// Category is the declared category of a submission; curated drafts
	// leave it empty.
	Category      string      `json:"category,omitempty" yaml:"category,omitempty"`
	Origin        DraftOrigin `json:"origin" yaml:"origin"`
	ContentItemID int64       `json:"content_item_id,omitempty" yaml:"content_item_id,omitempty"`

	CreatedAt   time.Time  `json:"created_at" yaml:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" yaml:"updated_at"`
	PublishedAt *time.Time `json:"published_at,omitempty" yaml:"published_at,omitempty"`
}

// CurationOutcomeKind is the decision recorded for a content item.
type CurationOutcomeKind string

const (
	OutcomeCurated   CurationOutcomeKind = "curated"
	OutcomeSkipped   CurationOutcomeKind = "skipped"
	OutcomeDuplicate CurationOutcomeKind = "duplicate"
)

// CurationOutcome is one curation_log row.
type CurationOutcome struct {
	ContentItemID int64               `json:"content_item_id" yaml:"content_item_id"`
	Outcome       CurationOutcomeKind `json:"outcome" yaml:"outcome"`
	Reason        string              `json:"reason,omitempty" yaml:"reason,omitempty"`
	DraftID       string              `json:"draft_id,omitempty" yaml:"draft_id,omitempty"`
	Scores        map[string]int      `json:"scores,omitempty" yaml:"scores,omitempty"`
	CreatedAt     time.Time           `json:"created_at" yaml:"created_at"`
}
