// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize maps raw feed entries onto canonical content items.
// It is pure: no network, no store, no clock beyond what the entry carries.
package normalize

import (
	"crypto/sha256"
	"encoding/hex"
	"html"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/pdiddy/guide-curator/pkg/types"
)

// hashSeparator joins the identity fields hashed into ContentHash.
const hashSeparator = "::"

// stripPolicy removes every tag and keeps text content.
var stripPolicy = bluemonday.StrictPolicy()

// dateLayouts are tried in order; RSS dates first, then Atom/ISO forms.
var dateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	"2 Jan 2006 15:04:05 -0700",
	time.RFC822Z,
	time.RFC822,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Normalize converts entries from one source into content items. Entries
// lacking a title or a URL are excluded.
func Normalize(src types.SourceDescriptor, entries []types.RawEntry) []types.ContentItem {
	items := make([]types.ContentItem, 0, len(entries))
	for _, e := range entries {
		title := strings.TrimSpace(e.Title)
		link := strings.TrimSpace(e.Link)
		if title == "" || link == "" {
			continue
		}

		published := ParseDate(e.PubDate)
		if published == nil {
			published = ParseDate(e.Updated)
		}

		items = append(items, types.ContentItem{
			SourceID:      src.ID,
			SourceType:    src.ProtocolType,
			TrustCategory: src.TrustCategory,
			EvidenceTier:  src.EvidenceTier,
			Title:         title,
			URL:           link,
			PublishedAt:   published,
			ContentHash:   ContentHash(src.ID, link, e.GUID, title),
			Summary:       StripHTML(richer(e.Content, e.Description)),
			Tags:          mergeTags(src.TrustCategory, e.Categories),
			RawPayload:    rawPayload(e),
		})
	}
	return items
}

// ContentHash is the hex SHA-256 of sourceID::url::guid::title.
func ContentHash(sourceID, url, guid, title string) string {
	sum := sha256.Sum256([]byte(strings.Join([]string{sourceID, url, guid, title}, hashSeparator)))
	return hex.EncodeToString(sum[:])
}

// StripHTML removes tags, decodes entities and collapses whitespace.
func StripHTML(s string) string {
	if s == "" {
		return ""
	}
	// Block-level boundaries would otherwise glue words together.
	s = strings.NewReplacer("<", " <", ">", "> ").Replace(s)
	text := html.UnescapeString(stripPolicy.Sanitize(s))
	return strings.Join(strings.Fields(text), " ")
}

// ParseDate parses a feed date. Unparsable or empty input returns nil.
func ParseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

// richer returns the longer of content and description.
func richer(content, description string) string {
	if len(strings.TrimSpace(content)) >= len(strings.TrimSpace(description)) {
		return content
	}
	return description
}

// mergeTags unions the trust category with feed categories,
// case-insensitively, keeping the first spelling seen.
func mergeTags(trust string, categories []string) []string {
	seen := make(map[string]bool)
	tags := []string{}
	for _, t := range append([]string{trust}, categories...) {
		t = strings.TrimSpace(t)
		key := strings.ToLower(t)
		if t == "" || seen[key] {
			continue
		}
		seen[key] = true
		tags = append(tags, t)
	}
	return tags
}

func rawPayload(e types.RawEntry) map[string]string {
	raw := map[string]string{}
	for k, v := range map[string]string{
		types.RawGUID:        e.GUID,
		types.RawPubDate:     e.PubDate,
		types.RawUpdated:     e.Updated,
		types.RawDescription: e.Description,
		types.RawContent:     e.Content,
	} {
		if v != "" {
			raw[k] = v
		}
	}
	return raw
}
