// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package curate

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/guide-curator/pkg/types"
)

func strongItem() types.ContentItem {
	return types.ContentItem{
		ID:            1,
		SourceID:      "ki-portal",
		TrustCategory: "official",
		EvidenceTier:  types.TierA,
		Title:         "Anleitung: Rechnungen mit ChatGPT automatisieren",
		URL:           "https://example.com/rechnungen",
		Summary: strings.TrimSpace(strings.Repeat(
			"Dieses Unternehmen zeigt jeden Schritt mit einer Vorlage für die monatliche Rechnungsstellung. ", 4)),
		Tags: []string{"official"},
	}
}

func weakItem() types.ContentItem {
	return types.ContentItem{
		ID:            2,
		SourceID:      "news",
		TrustCategory: "news",
		EvidenceTier:  types.TierC,
		Title:         "Neue Studie zu Sprachmodellen",
		URL:           "https://example.com/studie",
		Summary:       "Forscher veröffentlichen ein Paper über Benchmark-Ergebnisse.",
		Tags:          []string{"news"},
	}
}

func TestEvaluateStrongItem(t *testing.T) {
	ev, err := New(Options{}).Evaluate(strongItem())
	require.NoError(t, err)

	assert.Equal(t, 10, ev.Relevance)
	assert.Equal(t, 10, ev.Quality)
	assert.Equal(t, 10, ev.Practicality)
	assert.Equal(t, 1, ev.DSGVORelevance)
	assert.Equal(t, RecommendCurate, ev.Recommendation)
	assert.Equal(t, "Buchhaltung", ev.SuggestedRole)
	assert.Equal(t, []string{"ChatGPT"}, ev.SuggestedTools)
	assert.Equal(t, []string{}, ev.SuggestedIndustries)
	assert.Equal(t, types.RiskLow, ev.RiskLevel)
}

func TestEvaluateWeakItem(t *testing.T) {
	ev, err := New(Options{}).Evaluate(weakItem())
	require.NoError(t, err)

	assert.Equal(t, 3, ev.Relevance)
	assert.Equal(t, 5, ev.Quality)
	assert.Equal(t, 1, ev.Practicality)
	assert.InDelta(t, 3.0, ev.Mean(), 1e-9)
	assert.Equal(t, RecommendSkip, ev.Recommendation)
	assert.Empty(t, ev.SuggestedRole)
}

func TestEvaluateUnusableItem(t *testing.T) {
	c := New(Options{})

	item := strongItem()
	item.URL = ""
	_, err := c.Evaluate(item)
	assert.ErrorIs(t, err, ErrUnusableItem)

	item = strongItem()
	item.Title = "  "
	_, err = c.Evaluate(item)
	assert.ErrorIs(t, err, ErrUnusableItem)
}

func TestEvaluateRiskLevels(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  types.RiskLevel
	}{
		{"security keyword", "Sicherheitslücke in Chatbot entdeckt", types.RiskHigh},
		{"negation still matches", "Update: keine Sicherheitslücke gefunden", types.RiskHigh},
		{"compliance keyword", "DSGVO-konforme Nutzung von Chatbots", types.RiskMedium},
		{"security wins over compliance", "Datenleck trotz DSGVO", types.RiskHigh},
		{"neither", "Texte schneller schreiben", types.RiskLow},
	}
	c := New(Options{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := c.Evaluate(types.ContentItem{Title: tt.title, URL: "https://x.test"})
			require.NoError(t, err)
			assert.Equal(t, tt.want, ev.RiskLevel)
		})
	}
}

func TestEvaluateEntityExtraction(t *testing.T) {
	item := types.ContentItem{
		Title:   "Marketing und Vertrieb im Handwerk",
		URL:     "https://x.test",
		Summary: "Mit Claude und ChatGPT Texte für Logistik und Einzelhandel erstellen.",
	}
	ev, err := New(Options{}).Evaluate(item)
	require.NoError(t, err)

	assert.Equal(t, "Marketing", ev.SuggestedRole, "first matching role wins")
	assert.Equal(t, []string{"ChatGPT", "Claude"}, ev.SuggestedTools, "vocabulary order")
	assert.Equal(t, []string{"Handwerk", "Einzelhandel", "Logistik"}, ev.SuggestedIndustries)
}

func TestEvaluateDSGVOScore(t *testing.T) {
	item := types.ContentItem{
		Title:   "Datenschutz beim Einsatz von KI",
		URL:     "https://x.test",
		Summary: "Was die DSGVO und der AI Act für Auftragsverarbeitung bedeuten.",
	}
	ev, err := New(Options{}).Evaluate(item)
	require.NoError(t, err)
	assert.Equal(t, 10, ev.DSGVORelevance)
	assert.Equal(t, types.RiskMedium, ev.RiskLevel)
}

func TestEvaluateWithInjectedRulesAndVocabulary(t *testing.T) {
	always := func(types.ContentItem) bool { return true }
	rules := RuleSets{
		Relevance:    RuleSet{Base: 4, Rules: []Rule{{Name: "bonus", When: always, Delta: 1}}},
		Quality:      RuleSet{Base: 5},
		Practicality: RuleSet{Base: 6},
		DSGVO:        RuleSet{Base: 2},
	}
	vocab := Vocabulary{
		Tools: []Term{{Name: "Tabellen", Pattern: regexp.MustCompile(`(?i)excel`)}},
	}

	c := New(Options{RuleSets: &rules, Vocabulary: &vocab, CurateThreshold: 5})
	ev, err := c.Evaluate(types.ContentItem{Title: "Excel mit Copilot", URL: "https://x.test"})
	require.NoError(t, err)

	assert.Equal(t, 5, ev.Relevance)
	assert.Equal(t, 5, ev.Quality)
	assert.Equal(t, 6, ev.Practicality)
	assert.Equal(t, 2, ev.DSGVORelevance)
	assert.Equal(t, RecommendCurate, ev.Recommendation)
	assert.Equal(t, []string{"Tabellen"}, ev.SuggestedTools)
	assert.Equal(t, types.RiskLow, ev.RiskLevel)
	assert.InDelta(t, 5.0, c.Threshold(), 1e-9)
}

func TestEvaluationScores(t *testing.T) {
	ev := Evaluation{Relevance: 7, Quality: 8, Practicality: 6, DSGVORelevance: 2}
	assert.Equal(t, map[string]int{"relevance": 7, "quality": 8, "practicality": 6, "dsgvo": 2}, ev.Scores())
	assert.InDelta(t, 7.0, ev.Mean(), 1e-9)
}
