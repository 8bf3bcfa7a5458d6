// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package feed extracts entries from RSS and Atom payloads, and from JSON
// API responses, into loosely-typed RawEntry values.
//
// The XML path does not require well-formed markup: each <item> or <entry>
// block is located with a regular expression and fields are pulled out with
// tag-scoped patterns. Malformed input yields fewer entries, never an error.
package feed

import (
	"html"
	"regexp"
	"strings"

	"github.com/pdiddy/guide-curator/pkg/types"
)

var (
	itemPattern  = regexp.MustCompile(`(?is)<item\b[^>]*>(.*?)</item\s*>`)
	entryPattern = regexp.MustCompile(`(?is)<entry\b[^>]*>(.*?)</entry\s*>`)

	cdataPattern     = regexp.MustCompile(`(?s)<!\[CDATA\[(.*?)\]\]>`)
	categoryPattern  = regexp.MustCompile(`(?is)<category\b([^>]*?)(?:/>|>(.*?)</category\s*>)`)
	linkTagPattern   = regexp.MustCompile(`(?is)<link\b([^>]*?)(?:/>|>(.*?)</link\s*>)`)
	termAttrPattern  = regexp.MustCompile(`(?is)\bterm\s*=\s*["']([^"']*)["']`)
	hrefAttrPattern  = regexp.MustCompile(`(?is)\bhref\s*=\s*["']([^"']*)["']`)
	relAttrPattern   = regexp.MustCompile(`(?is)\brel\s*=\s*["']([^"']*)["']`)
	fieldPatterns    = map[string]*regexp.Regexp{}
	fieldPatternKeys = []string{
		"title", "description", "summary", "content:encoded", "content",
		"pubDate", "published", "updated", "guid", "id",
	}
)

func init() {
	for _, tag := range fieldPatternKeys {
		fieldPatterns[tag] = regexp.MustCompile(`(?is)<` + regexp.QuoteMeta(tag) + `\b[^>]*>(.*?)</` + regexp.QuoteMeta(tag) + `\s*>`)
	}
}

// Parse extracts RSS <item> and Atom <entry> blocks from raw markup.
// Entries with neither a title nor a link are dropped.
func Parse(raw string) []types.RawEntry {
	entries := []types.RawEntry{}
	if strings.TrimSpace(raw) == "" {
		return entries
	}

	for _, m := range itemPattern.FindAllStringSubmatch(raw, -1) {
		if e, ok := parseBlock(m[1]); ok {
			entries = append(entries, e)
		}
	}
	for _, m := range entryPattern.FindAllStringSubmatch(raw, -1) {
		if e, ok := parseBlock(m[1]); ok {
			entries = append(entries, e)
		}
	}
	return entries
}

// ForProtocol returns the parser for a source protocol.
func ForProtocol(p types.ProtocolType) func(string) []types.RawEntry {
	if p == types.ProtocolJSONAPI {
		return ParseJSON
	}
	return Parse
}

func parseBlock(block string) (types.RawEntry, bool) {
	e := types.RawEntry{
		Title:       field(block, "title"),
		Link:        link(block),
		Description: firstField(block, "description", "summary"),
		Content:     firstField(block, "content:encoded", "content"),
		PubDate:     firstField(block, "pubDate", "published"),
		Updated:     field(block, "updated"),
		GUID:        firstField(block, "guid", "id"),
		Categories:  categories(block),
	}
	if e.Title == "" && e.Link == "" {
		return types.RawEntry{}, false
	}
	return e, true
}

func field(block, tag string) string {
	m := fieldPatterns[tag].FindStringSubmatch(block)
	if m == nil {
		return ""
	}
	return clean(m[1])
}

func firstField(block string, tags ...string) string {
	for _, tag := range tags {
		if v := field(block, tag); v != "" {
			return v
		}
	}
	return ""
}

// link reads an RSS <link>text</link> or an Atom <link href=""/>,
// preferring rel="alternate" or a link without rel.
func link(block string) string {
	var fallback string
	for _, m := range linkTagPattern.FindAllStringSubmatch(block, -1) {
		attrs, body := m[1], m[2]
		if text := clean(body); text != "" {
			return text
		}
		href := attr(hrefAttrPattern, attrs)
		if href == "" {
			continue
		}
		rel := strings.ToLower(attr(relAttrPattern, attrs))
		if rel == "" || rel == "alternate" {
			return href
		}
		if fallback == "" {
			fallback = href
		}
	}
	return fallback
}

func categories(block string) []string {
	var out []string
	for _, m := range categoryPattern.FindAllStringSubmatch(block, -1) {
		v := clean(m[2])
		if v == "" {
			v = attr(termAttrPattern, m[1])
		}
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func attr(p *regexp.Regexp, attrs string) string {
	m := p.FindStringSubmatch(attrs)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(m[1]))
}

// clean unwraps CDATA sections, decodes entities and trims.
func clean(s string) string {
	s = cdataPattern.ReplaceAllString(s, "$1")
	return strings.TrimSpace(html.UnescapeString(s))
}
