// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package similarity compares short documents by edit distance and keyword
// overlap, and flags near-duplicates against a corpus.
//
// The same engine serves two call sites with different threshold profiles:
// user submissions are checked against pending submissions of their own
// category with SubmissionThresholds, and curated drafts are checked
// against the whole draft and published corpus with GuideThresholds.
// The engine holds only immutable configuration and is safe for
// concurrent use.
package similarity

import (
	"math"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pdiddy/guide-curator/pkg/types"
)

// Threshold profiles.
var (
	SubmissionThresholds = types.Thresholds{Title: 85, Description: 75, Keyword: 65, Overall: 80}
	GuideThresholds      = types.Thresholds{Title: 80, Description: 70, Keyword: 60, Overall: 75}
)

// DefaultWeights blends title, description and keyword similarity.
var DefaultWeights = types.Weights{Title: 0.5, Description: 0.3, Keyword: 0.2}

// Options configures an Engine.
type Options struct {
	// StopWords are dropped from keyword sets. Matching is on the
	// lowercased token.
	StopWords []string

	// MaxKeywords truncates the keyword list (default 10).
	MaxKeywords int

	// MinKeywordLen is the shortest token kept, in runes (default 3).
	MinKeywordLen int

	// MaxMatches caps the matches returned by DetectDuplicates (default 5).
	MaxMatches int

	Weights types.Weights
}

// DefaultOptions returns the German and English stop words and the
// 0.5/0.3/0.2 weighting.
func DefaultOptions() Options {
	return Options{
		StopWords:     slices.Clone(defaultStopWords),
		MaxKeywords:   10,
		MinKeywordLen: 3,
		MaxMatches:    5,
		Weights:       DefaultWeights,
	}
}

// Document is the comparable view of a draft or submission.
type Document struct {
	ID          string
	Title       string
	Description string
}

// Detection is the result of checking a candidate against a corpus.
type Detection struct {
	// Matches are sorted by overall similarity, highest first, ties
	// broken by existing ID.
	Matches           []types.SimilarityMatch
	HighestSimilarity int
	IsDuplicate       bool
}

// Engine computes similarities with a fixed vocabulary and weighting.
type Engine struct {
	stopWords     map[string]struct{}
	maxKeywords   int
	minKeywordLen int
	maxMatches    int
	weights       types.Weights
}

// New builds an Engine. Zero-valued options fall back to DefaultOptions.
func New(opts Options) *Engine {
	def := DefaultOptions()
	if opts.StopWords == nil {
		opts.StopWords = def.StopWords
	}
	if opts.MaxKeywords <= 0 {
		opts.MaxKeywords = def.MaxKeywords
	}
	if opts.MinKeywordLen <= 0 {
		opts.MinKeywordLen = def.MinKeywordLen
	}
	if opts.MaxMatches <= 0 {
		opts.MaxMatches = def.MaxMatches
	}
	if opts.Weights == (types.Weights{}) {
		opts.Weights = def.Weights
	}

	stop := make(map[string]struct{}, len(opts.StopWords))
	for _, w := range opts.StopWords {
		stop[strings.ToLower(w)] = struct{}{}
	}
	return &Engine{
		stopWords:     stop,
		maxKeywords:   opts.MaxKeywords,
		minKeywordLen: opts.MinKeywordLen,
		maxMatches:    opts.MaxMatches,
		weights:       opts.Weights,
	}
}

// EditDistance is the Levenshtein distance between a and b, compared
// case-insensitively rune by rune. It keeps two rows of the table.
func EditDistance(a, b string) int {
	ra := []rune(strings.ToLower(a))
	rb := []rune(strings.ToLower(b))
	if len(rb) > len(ra) {
		ra, rb = rb, ra
	}

	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}

// Similarity is the edit-distance similarity of a and b in percent.
// Two empty strings are identical; an empty and a non-empty string share
// nothing.
func Similarity(a, b string) int {
	la := utf8.RuneCountInString(a)
	lb := utf8.RuneCountInString(b)
	switch {
	case la == 0 && lb == 0:
		return 100
	case la == 0 || lb == 0:
		return 0
	case strings.EqualFold(a, b):
		return 100
	}

	maxLen := max(la, lb)
	dist := EditDistance(a, b)
	return percent(float64(maxLen-dist) / float64(maxLen))
}

// ExtractKeywords lowercases text, removes everything but letters and
// whitespace, and returns the first tokens that are long enough and not
// stop words. Repeats are kept; set semantics apply in KeywordSimilarity.
func (e *Engine) ExtractKeywords(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, strings.ToLower(text))

	keywords := []string{}
	for _, tok := range strings.Fields(cleaned) {
		if utf8.RuneCountInString(tok) < e.minKeywordLen {
			continue
		}
		if _, stop := e.stopWords[tok]; stop {
			continue
		}
		keywords = append(keywords, tok)
		if len(keywords) == e.maxKeywords {
			break
		}
	}
	return keywords
}

// KeywordSimilarity is the Jaccard overlap of the keyword sets of a and b
// in percent.
func (e *Engine) KeywordSimilarity(a, b string) int {
	return jaccard(e.ExtractKeywords(a), e.ExtractKeywords(b))
}

// Composite scores candidate against existing on every metric.
func (e *Engine) Composite(candidate, existing Document) types.SimilarityMatch {
	title := Similarity(candidate.Title, existing.Title)
	desc := Similarity(candidate.Description, existing.Description)
	kw := e.KeywordSimilarity(
		candidate.Title+" "+candidate.Description,
		existing.Title+" "+existing.Description,
	)

	overall := math.Round(float64(title)*e.weights.Title +
		float64(desc)*e.weights.Description +
		float64(kw)*e.weights.Keyword)

	return types.SimilarityMatch{
		CandidateID:           candidate.ID,
		ExistingID:            existing.ID,
		ExistingTitle:         existing.Title,
		TitleSimilarity:       title,
		DescriptionSimilarity: desc,
		KeywordSimilarity:     kw,
		OverallSimilarity:     int(overall),
	}
}

// DetectDuplicates compares candidate with every corpus member. A member
// matches when any single metric reaches its threshold. The candidate is a
// duplicate when the best overall similarity reaches th.Overall.
func (e *Engine) DetectDuplicates(candidate Document, corpus []Document, th types.Thresholds) Detection {
	matches := []types.SimilarityMatch{}
	for _, doc := range corpus {
		if candidate.ID != "" && doc.ID == candidate.ID {
			continue
		}
		m := e.Composite(candidate, doc)
		if m.TitleSimilarity >= th.Title ||
			m.DescriptionSimilarity >= th.Description ||
			m.KeywordSimilarity >= th.Keyword ||
			m.OverallSimilarity >= th.Overall {
			matches = append(matches, m)
		}
	}

	slices.SortStableFunc(matches, func(a, b types.SimilarityMatch) int {
		if a.OverallSimilarity != b.OverallSimilarity {
			return b.OverallSimilarity - a.OverallSimilarity
		}
		return strings.Compare(a.ExistingID, b.ExistingID)
	})
	if len(matches) > e.maxMatches {
		matches = matches[:e.maxMatches]
	}

	det := Detection{Matches: matches}
	if len(matches) > 0 {
		det.HighestSimilarity = matches[0].OverallSimilarity
	}
	det.IsDuplicate = len(matches) > 0 && det.HighestSimilarity >= th.Overall
	return det
}

func jaccard(a, b []string) int {
	switch {
	case len(a) == 0 && len(b) == 0:
		return 100
	case len(a) == 0 || len(b) == 0:
		return 0
	}

	set := make(map[string]bool, len(a))
	for _, k := range a {
		set[k] = true
	}
	union := len(set)
	inter := 0
	counted := make(map[string]bool, len(b))
	for _, k := range b {
		if counted[k] {
			continue
		}
		counted[k] = true
		if set[k] {
			inter++
		} else {
			union++
		}
	}
	return percent(float64(inter) / float64(union))
}

func percent(ratio float64) int {
	return int(math.Round(ratio * 100))
}
