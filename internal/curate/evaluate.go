// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package curate decides which content items become guide drafts.
//
// Scoring is table-driven: each score is a RuleSet of (predicate, delta)
// pairs evaluated in one loop. Entity and risk extraction match a fixed
// Vocabulary. Evaluate and BuildDraft are pure; Runner drives a batch pass
// against the store.
//
// Keyword matching has no negation handling: "keine Sicherheitslücke"
// still matches the security vocabulary and grades as high risk.
package curate

import (
	"errors"
	"strings"

	"github.com/pdiddy/guide-curator/pkg/types"
)

// ErrUnusableItem is returned for items without a title or URL.
var ErrUnusableItem = errors.New("content item has no title or url")

// DefaultCurateThreshold is the minimum mean score for a curate decision.
const DefaultCurateThreshold = 7.0

// Recommendation is the curator's decision.
type Recommendation string

const (
	RecommendCurate Recommendation = "curate"
	RecommendSkip   Recommendation = "skip"
)

// Evaluation is the curator's verdict on one item.
type Evaluation struct {
	Relevance      int `json:"relevance"`
	Quality        int `json:"quality"`
	Practicality   int `json:"practicality"`
	DSGVORelevance int `json:"dsgvoRelevance"`

	Recommendation      Recommendation  `json:"recommendation"`
	SuggestedRole       string          `json:"suggestedRole,omitempty"`
	SuggestedTools      []string        `json:"suggestedTools"`
	SuggestedIndustries []string        `json:"suggestedIndustries"`
	RiskLevel           types.RiskLevel `json:"riskLevel"`
}

// Mean is the average of relevance, quality and practicality.
func (e Evaluation) Mean() float64 {
	return float64(e.Relevance+e.Quality+e.Practicality) / 3
}

// Scores returns the numeric scores keyed for the curation log.
func (e Evaluation) Scores() map[string]int {
	return map[string]int{
		"relevance":    e.Relevance,
		"quality":      e.Quality,
		"practicality": e.Practicality,
		"dsgvo":        e.DSGVORelevance,
	}
}

// Options configures a Curator. Zero fields use the defaults.
type Options struct {
	Vocabulary      *Vocabulary
	RuleSets        *RuleSets
	CurateThreshold float64
}

// Curator evaluates items against injected rules and vocabulary.
type Curator struct {
	vocab     Vocabulary
	rules     RuleSets
	threshold float64
}

// New returns a Curator.
func New(opts Options) *Curator {
	c := &Curator{
		vocab:     DefaultVocabulary(),
		rules:     DefaultRuleSets(),
		threshold: DefaultCurateThreshold,
	}
	if opts.Vocabulary != nil {
		c.vocab = *opts.Vocabulary
	}
	if opts.RuleSets != nil {
		c.rules = *opts.RuleSets
	}
	if opts.CurateThreshold > 0 {
		c.threshold = opts.CurateThreshold
	}
	return c
}

// Threshold returns the mean score needed for a curate recommendation.
func (c *Curator) Threshold() float64 {
	return c.threshold
}

// Evaluate scores item and extracts role, tools, industries and risk.
func (c *Curator) Evaluate(item types.ContentItem) (Evaluation, error) {
	if strings.TrimSpace(item.Title) == "" || strings.TrimSpace(item.URL) == "" {
		return Evaluation{}, ErrUnusableItem
	}

	ev := Evaluation{
		Relevance:           c.rules.Relevance.Score(item),
		Quality:             c.rules.Quality.Score(item),
		Practicality:        c.rules.Practicality.Score(item),
		DSGVORelevance:      c.rules.DSGVO.Score(item),
		SuggestedTools:      matchAll(c.vocab.Tools, item),
		SuggestedIndustries: matchAll(c.vocab.Industries, item),
		RiskLevel:           c.risk(item),
	}
	if roles := matchAll(c.vocab.Roles, item); len(roles) > 0 {
		ev.SuggestedRole = roles[0]
	}

	ev.Recommendation = RecommendSkip
	if ev.Mean() >= c.threshold {
		ev.Recommendation = RecommendCurate
	}
	return ev, nil
}

func (c *Curator) risk(item types.ContentItem) types.RiskLevel {
	text := itemText(item)
	for _, re := range c.vocab.HighRisk {
		if re.MatchString(text) {
			return types.RiskHigh
		}
	}
	for _, re := range c.vocab.MediumRisk {
		if re.MatchString(text) {
			return types.RiskMedium
		}
	}
	return types.RiskLow
}

func matchAll(terms []Term, item types.ContentItem) []string {
	text := itemText(item)
	out := []string{}
	for _, t := range terms {
		if t.Pattern.MatchString(text) {
			out = append(out, t.Name)
		}
	}
	return out
}
