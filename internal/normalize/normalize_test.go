// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/guide-curator/pkg/types"
)

var testSource = types.SourceDescriptor{
	ID:            "heise-ki",
	ProtocolType:  types.ProtocolFeed,
	URL:           "https://example.com/feed",
	TrustCategory: "news",
	EvidenceTier:  types.TierB,
}

func TestNormalize(t *testing.T) {
	entries := []types.RawEntry{
		{
			Title:       "  Automatisiere Rechnungen mit KI ",
			Link:        "https://example.com/a",
			Description: "Kurz",
			Content:     "<p>Schritt&nbsp;1:\n<b>Belege</b> scannen</p><p>Schritt 2</p>",
			PubDate:     "Mon, 06 Jan 2025 10:00:00 +0100",
			GUID:        "a-1",
			Categories:  []string{"Automatisierung", "NEWS", "automatisierung"},
		},
		{Title: "Ohne Link", Description: "x"},
		{Link: "https://example.com/ohne-titel"},
	}

	items := Normalize(testSource, entries)
	require.Len(t, items, 1)

	it := items[0]
	assert.Equal(t, "heise-ki", it.SourceID)
	assert.Equal(t, types.ProtocolFeed, it.SourceType)
	assert.Equal(t, "news", it.TrustCategory)
	assert.Equal(t, types.TierB, it.EvidenceTier)
	assert.Equal(t, "Automatisiere Rechnungen mit KI", it.Title)
	assert.Equal(t, "https://example.com/a", it.URL)
	assert.Equal(t, "Schritt 1: Belege scannen Schritt 2", it.Summary)
	assert.Equal(t, []string{"news", "Automatisierung"}, it.Tags)
	require.NotNil(t, it.PublishedAt)
	assert.Equal(t, time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC), *it.PublishedAt)
	assert.Equal(t, ContentHash("heise-ki", "https://example.com/a", "a-1", "Automatisiere Rechnungen mit KI"), it.ContentHash)
	assert.Equal(t, "a-1", it.RawPayload[types.RawGUID])
	assert.False(t, it.Processed)
	assert.False(t, it.IsDuplicate)
}

func TestNormalizeDateFallbackAndNil(t *testing.T) {
	items := Normalize(testSource, []types.RawEntry{
		{Title: "A", Link: "https://a.test", PubDate: "gestern", Updated: "2025-02-01T08:00:00Z"},
		{Title: "B", Link: "https://b.test", PubDate: "nonsense"},
		{Title: "C", Link: "https://c.test"},
	})
	require.Len(t, items, 3)

	require.NotNil(t, items[0].PublishedAt)
	assert.Equal(t, time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC), *items[0].PublishedAt)
	assert.Nil(t, items[1].PublishedAt)
	assert.Nil(t, items[2].PublishedAt)
	assert.Empty(t, items[2].Summary)
}

func TestNormalizePicksRicherBody(t *testing.T) {
	items := Normalize(testSource, []types.RawEntry{
		{Title: "A", Link: "https://a.test", Description: "<p>Eine deutlich längere Beschreibung</p>", Content: "kurz"},
	})
	require.Len(t, items, 1)
	assert.Equal(t, "Eine deutlich längere Beschreibung", items[0].Summary)
}

func TestContentHashDeterministic(t *testing.T) {
	a := ContentHash("src", "https://x.test/1", "g1", "Titel")
	b := ContentHash("src", "https://x.test/1", "g1", "Titel")
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
}

func TestContentHashChangesWithEachField(t *testing.T) {
	base := ContentHash("src", "https://x.test/1", "g1", "Titel")
	variants := map[string]string{
		"sourceID": ContentHash("src2", "https://x.test/1", "g1", "Titel"),
		"url":      ContentHash("src", "https://x.test/2", "g1", "Titel"),
		"guid":     ContentHash("src", "https://x.test/1", "g2", "Titel"),
		"title":    ContentHash("src", "https://x.test/1", "g1", "Titel!"),
	}
	seen := map[string]string{base: "base"}
	for field, h := range variants {
		assert.NotEqual(t, base, h, "changing %s must change the hash", field)
		_, dup := seen[h]
		assert.False(t, dup, "collision for %s", field)
		seen[h] = field
	}
}

func TestNormalizeHashIgnoresMutableFields(t *testing.T) {
	e1 := types.RawEntry{Title: "T", Link: "https://x.test", GUID: "g", PubDate: "Mon, 06 Jan 2025 10:00:00 +0100", Description: "alt"}
	e2 := e1
	e2.PubDate = "Tue, 07 Jan 2025 10:00:00 +0100"
	e2.Description = "neu"

	a := Normalize(testSource, []types.RawEntry{e1})
	b := Normalize(testSource, []types.RawEntry{e2})
	assert.Equal(t, a[0].ContentHash, b[0].ContentHash)
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"plain   text\n\n here", "plain text here"},
		{"<p>a</p><p>b</p>", "a b"},
		{"<script>alert(1)</script>Text", "Text"},
		{"Fish &amp; Chips &quot;heute&quot;", `Fish & Chips "heute"`},
		{"<ul><li>Eins</li><li>Zwei</li></ul>", "Eins Zwei"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, StripHTML(tt.in))
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want *time.Time
	}{
		{"", nil},
		{"not a date", nil},
		{"2025-03-01", ptr(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))},
		{"2025-03-01T10:30:00+01:00", ptr(time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC))},
		{"Sat, 1 Mar 2025 10:30:00 +0000", ptr(time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC))},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParseDate(tt.in)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, tt.want.Equal(*got), "got %v", got)
		})
	}
}

func ptr(t time.Time) *time.Time { return &t }
