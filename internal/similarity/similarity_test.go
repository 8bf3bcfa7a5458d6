// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package similarity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/guide-curator/pkg/types"
)

func TestEditDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"Rechnung", "rechnung", 0},
		{"größe", "grösse", 2},
		{"flaw", "lawn", 2},
	}
	for _, tt := range tests {
		t.Run(tt.a+"|"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, EditDistance(tt.a, tt.b))
		})
	}
}

func TestEditDistanceSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"kitten", "sitting"},
		{"Automatisiere Rechnungen mit KI", "Automatisiere Rechnungen mit KI!"},
		{"Übersicht", "uebersicht"},
		{"", "leer"},
		{"ChatGPT im Vertrieb", "Claude im Einkauf"},
	}
	for _, p := range pairs {
		assert.Equal(t, EditDistance(p[0], p[1]), EditDistance(p[1], p[0]), "%q vs %q", p[0], p[1])
	}
}

func TestEditDistanceLongInputs(t *testing.T) {
	a := strings.Repeat("a", 3000)
	b := strings.Repeat("a", 2990) + strings.Repeat("b", 10)
	assert.Equal(t, 10, EditDistance(a, b))
	assert.Equal(t, 10, EditDistance(b, a))
	assert.Equal(t, 1000, EditDistance(a, a[:2000]))
}

func TestSimilarityIdentities(t *testing.T) {
	for _, s := range []string{"a", "Automatisiere Rechnungen", "Größe ändern", "KI"} {
		assert.Equal(t, 100, Similarity(s, s), s)
	}
	assert.Equal(t, 100, Similarity("", ""))
	assert.Equal(t, 0, Similarity("", "nicht leer"))
	assert.Equal(t, 0, Similarity("nicht leer", ""))
	assert.Equal(t, 100, Similarity("Hallo Welt", "hALLO wELT"))
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 57, Similarity("kitten", "sitting"))
	assert.Equal(t, 97, Similarity("Automatisiere Rechnungen mit KI", "Automatisiere Rechnungen mit KI!"))
	assert.Equal(t, 0, Similarity("abc", "xyz"))
}

func TestExtractKeywords(t *testing.T) {
	e := New(DefaultOptions())

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"stop words and short tokens", "Automatisiere Rechnungen mit KI!", []string{"automatisiere", "rechnungen"}},
		{"umlauts survive, digits and hyphens stripped", "Prüfe Verträge für Datenschutz-Risiken 2025", []string{"prüfe", "verträge", "datenschutzrisiken"}},
		{"english stop words", "How to write the perfect prompt", []string{"write", "perfect", "prompt"}},
		{"repeated tokens kept", "Daten daten DATEN Analyse", []string{"daten", "daten", "daten", "analyse"}},
		{"empty", "", []string{}},
		{"only punctuation", "!!! ??? 123", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.ExtractKeywords(tt.text))
		})
	}
}

func TestExtractKeywordsTruncatesToTen(t *testing.T) {
	e := New(DefaultOptions())
	got := e.ExtractKeywords("alpha bravo charlie delta echo foxtrot golf hotel india juliett kilo lima")
	assert.Equal(t, []string{
		"alpha", "bravo", "charlie", "delta", "echo",
		"foxtrot", "golf", "hotel", "india", "juliett",
	}, got)
}

func TestExtractKeywordsTruncationCountsRepeats(t *testing.T) {
	e := New(DefaultOptions())
	text := strings.Repeat("rechnung ", 10) + "angebot"

	got := e.ExtractKeywords(text)
	require.Len(t, got, 10)
	for _, kw := range got {
		assert.Equal(t, "rechnung", kw)
	}
	assert.Equal(t, 0, e.KeywordSimilarity(text, "angebot"), "angebot falls past the tenth token")
	assert.Equal(t, 100, e.KeywordSimilarity(text, "rechnung"))
}

func TestKeywordSimilarity(t *testing.T) {
	e := New(DefaultOptions())
	assert.Equal(t, 50, e.KeywordSimilarity("daten analyse bericht", "daten analyse tabelle"))
	assert.Equal(t, 100, e.KeywordSimilarity("", ""))
	assert.Equal(t, 100, e.KeywordSimilarity("ki", "zu"), "both keyword sets empty")
	assert.Equal(t, 0, e.KeywordSimilarity("daten", ""))
	assert.Equal(t, 0, e.KeywordSimilarity("daten", "prompt"))
	assert.Equal(t, 100, e.KeywordSimilarity("Daten Analyse", "analyse, daten!"))
}

func TestCustomOptions(t *testing.T) {
	e := New(Options{StopWords: []string{"Rechnungen"}, MaxKeywords: 1})
	assert.Equal(t, []string{"automatisiere"}, e.ExtractKeywords("Automatisiere Rechnungen Belege"))

	titleOnly := New(Options{Weights: types.Weights{Title: 1}})
	m := titleOnly.Composite(
		Document{Title: "kitten", Description: "eins"},
		Document{Title: "sitting", Description: "zwei"},
	)
	assert.Equal(t, 57, m.OverallSimilarity)
}

func TestCompositeFillsMatch(t *testing.T) {
	e := New(DefaultOptions())
	m := e.Composite(
		Document{ID: "cand", Title: "Automatisiere Rechnungen mit KI", Description: "Belege automatisch erfassen."},
		Document{ID: "ex", Title: "Automatisiere Rechnungen mit KI!", Description: "Belege automatisch erfassen."},
	)
	assert.Equal(t, "cand", m.CandidateID)
	assert.Equal(t, "ex", m.ExistingID)
	assert.Equal(t, "Automatisiere Rechnungen mit KI!", m.ExistingTitle)
	assert.Equal(t, 97, m.TitleSimilarity)
	assert.Equal(t, 100, m.DescriptionSimilarity)
	assert.Equal(t, 100, m.KeywordSimilarity)
	assert.Equal(t, 99, m.OverallSimilarity)
}

func TestDetectDuplicatesPunctuationOnly(t *testing.T) {
	e := New(DefaultOptions())
	candidate := Document{ID: "new", Title: "Automatisiere Rechnungen mit KI", Description: "Eingangsrechnungen mit KI erfassen und vorkontieren."}
	corpus := []Document{
		{ID: "old", Title: "Automatisiere Rechnungen mit KI!", Description: "Eingangsrechnungen mit KI erfassen und vorkontieren."},
	}

	for name, th := range map[string]types.Thresholds{
		"submission": SubmissionThresholds,
		"guide":      GuideThresholds,
	} {
		t.Run(name, func(t *testing.T) {
			det := e.DetectDuplicates(candidate, corpus, th)
			require.Len(t, det.Matches, 1)
			assert.GreaterOrEqual(t, det.Matches[0].TitleSimilarity, 95)
			assert.True(t, det.IsDuplicate)
			assert.Equal(t, det.Matches[0].OverallSimilarity, det.HighestSimilarity)
		})
	}
}

func TestDetectDuplicatesDisjunctiveGate(t *testing.T) {
	e := New(DefaultOptions())
	candidate := Document{
		ID:          "new",
		Title:       "Meeting-Protokolle mit KI erstellen",
		Description: "Aufnahme transkribieren, Kernpunkte extrahieren und Aufgaben verteilen.",
	}
	corpus := []Document{{
		ID:          "old",
		Title:       "Meeting-Protokolle mit KI erstellen",
		Description: "Ein völlig anderer Text über Buchhaltung im Handwerk.",
	}}

	det := e.DetectDuplicates(candidate, corpus, GuideThresholds)
	require.Len(t, det.Matches, 1, "title alone passes the gate")
	assert.Equal(t, 100, det.Matches[0].TitleSimilarity)
	assert.Less(t, det.HighestSimilarity, GuideThresholds.Overall)
	assert.False(t, det.IsDuplicate)
}

func TestDetectDuplicatesNoMatch(t *testing.T) {
	e := New(DefaultOptions())
	candidate := Document{ID: "new", Title: "Rechnungen automatisieren", Description: "Belege per Mail einsammeln und buchen."}
	corpus := []Document{
		{ID: "a", Title: "Social-Media-Posts planen", Description: "Redaktionsplan für Instagram mit Vorlagen."},
	}

	det := e.DetectDuplicates(candidate, corpus, SubmissionThresholds)
	assert.NotNil(t, det.Matches)
	assert.Empty(t, det.Matches)
	assert.Zero(t, det.HighestSimilarity)
	assert.False(t, det.IsDuplicate)
}

func TestDetectDuplicatesSortsCapsAndSkipsSelf(t *testing.T) {
	e := New(DefaultOptions())
	candidate := Document{ID: "self", Title: "Angebote mit KI schreiben", Description: "Vorlage nutzen."}

	corpus := []Document{candidate}
	for _, id := range []string{"g", "f", "e", "d", "c", "b", "a"} {
		corpus = append(corpus, Document{ID: id, Title: candidate.Title, Description: candidate.Description})
	}

	det := e.DetectDuplicates(candidate, corpus, GuideThresholds)
	require.Len(t, det.Matches, 5)
	ids := make([]string, 0, len(det.Matches))
	for _, m := range det.Matches {
		ids = append(ids, m.ExistingID)
		assert.Equal(t, "self", m.CandidateID)
	}
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, ids)
	assert.Equal(t, 100, det.HighestSimilarity)
	assert.True(t, det.IsDuplicate)
}

func TestDetectDuplicatesOrdersByOverall(t *testing.T) {
	e := New(DefaultOptions())
	candidate := Document{ID: "new", Title: "Automatisiere Rechnungen mit KI", Description: "Belege erfassen."}
	corpus := []Document{
		{ID: "a", Title: "Automatisiere Rechnungen mit KI!", Description: "Belege erfassen und buchen."},
		{ID: "b", Title: "Automatisiere Rechnungen mit KI", Description: "Belege erfassen."},
	}

	det := e.DetectDuplicates(candidate, corpus, GuideThresholds)
	require.Len(t, det.Matches, 2)
	assert.Equal(t, "b", det.Matches[0].ExistingID)
	assert.GreaterOrEqual(t, det.Matches[0].OverallSimilarity, det.Matches[1].OverallSimilarity)
}
