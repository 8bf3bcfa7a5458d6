// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package curate

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/guide-curator/pkg/types"
)

func TestRuleSetScoreClamps(t *testing.T) {
	always := func(types.ContentItem) bool { return true }
	never := func(types.ContentItem) bool { return false }

	tests := []struct {
		name string
		rs   RuleSet
		want int
	}{
		{"base only", RuleSet{Base: 4}, 4},
		{"adds matched deltas", RuleSet{Base: 4, Rules: []Rule{{"a", always, 2}, {"b", never, 3}, {"c", always, 1}}}, 7},
		{"caps at ten", RuleSet{Base: 8, Rules: []Rule{{"a", always, 5}}}, 10},
		{"floors at one", RuleSet{Base: 2, Rules: []Rule{{"a", always, -5}}}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rs.Score(types.ContentItem{}))
		})
	}
}

func TestRuleSetMatched(t *testing.T) {
	rs := RuleSet{Base: 1, Rules: []Rule{
		{"tier-a", TierIs(types.TierA), 1},
		{"tier-b", TierIs(types.TierB), 1},
		{"official", TrustIs("official"), 1},
	}}
	assert.Equal(t, []string{"tier-a", "official"}, rs.Matched(types.ContentItem{EvidenceTier: types.TierA, TrustCategory: "Official"}))
	assert.Empty(t, rs.Matched(types.ContentItem{EvidenceTier: types.TierC}))
}

func TestPredicates(t *testing.T) {
	item := types.ContentItem{
		Title:         "Prompt-Vorlagen",
		Summary:       "abcdef",
		Tags:          []string{"automatisierung"},
		EvidenceTier:  types.TierB,
		TrustCategory: "news",
	}

	assert.True(t, TextMatches(regexp.MustCompile(`(?i)vorlage`))(item), "title")
	assert.True(t, TextMatches(regexp.MustCompile(`abc`))(item), "summary")
	assert.True(t, TextMatches(regexp.MustCompile(`automatisierung`))(item), "tags")
	assert.False(t, TextMatches(regexp.MustCompile(`xyz`))(item))

	assert.True(t, TierIs(types.TierB)(item))
	assert.False(t, TierIs(types.TierA)(item))

	assert.True(t, TrustIs("NEWS")(item))
	assert.False(t, TrustIs("official")(item))

	assert.True(t, SummaryLongerThan(5)(item))
	assert.False(t, SummaryLongerThan(6)(item))
}

func TestDefaultRuleSetsStayInRange(t *testing.T) {
	rs := DefaultRuleSets()
	items := []types.ContentItem{
		{},
		strongItem(),
		weakItem(),
		{Title: "Unglaublich krass: Geheimtipp", Summary: "Paper Forschung Research Benchmark"},
	}
	for _, item := range items {
		for _, set := range []RuleSet{rs.Relevance, rs.Quality, rs.Practicality, rs.DSGVO} {
			score := set.Score(item)
			assert.GreaterOrEqual(t, score, MinScore)
			assert.LessOrEqual(t, score, MaxScore)
		}
	}
}
