// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// SimilarityMatch compares one candidate against one existing document.
// All similarities are integer percentages in [0,100]. Matches are never
// persisted or cached because the corpus changes between calls.
type SimilarityMatch struct {
	CandidateID           string `json:"candidate_id,omitempty"`
	ExistingID            string `json:"existing_id"`
	ExistingTitle         string `json:"existing_title"`
	TitleSimilarity       int    `json:"title_similarity"`
	DescriptionSimilarity int    `json:"description_similarity"`
	KeywordSimilarity     int    `json:"keyword_similarity"`
	OverallSimilarity     int    `json:"overall_similarity"`
}

// Thresholds holds the per-metric duplicate gates, in percent.
type Thresholds struct {
	Title       int `json:"title" yaml:"title" mapstructure:"title"`
	Description int `json:"description" yaml:"description" mapstructure:"description"`
	Keyword     int `json:"keyword" yaml:"keyword" mapstructure:"keyword"`
	Overall     int `json:"overall" yaml:"overall" mapstructure:"overall"`
}

// Weights blends title, description and keyword similarity into the
// overall score.
type Weights struct {
	Title       float64 `json:"title" yaml:"title" mapstructure:"title"`
	Description float64 `json:"description" yaml:"description" mapstructure:"description"`
	Keyword     float64 `json:"keyword" yaml:"keyword" mapstructure:"keyword"`
}
