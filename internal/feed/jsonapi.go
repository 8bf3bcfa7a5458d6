// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package feed

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pdiddy/guide-curator/pkg/types"
)

// envelopeKeys are the object keys searched for the entry array, in order.
var envelopeKeys = []string{"items", "data", "articles", "entries"}

// ParseJSON decodes a JSON API payload: either a top-level array of
// objects or an object holding one under items, data, articles or entries.
// Invalid JSON yields an empty list. Entries with neither a title nor a
// link are dropped.
func ParseJSON(raw string) []types.RawEntry {
	entries := []types.RawEntry{}

	objects := decodeObjects(raw)
	for _, obj := range objects {
		e := types.RawEntry{
			Title:       str(obj, "title"),
			Link:        str(obj, "url", "link"),
			Description: str(obj, "summary", "description"),
			Content:     str(obj, "content", "body"),
			PubDate:     str(obj, "published_at", "publishedAt", "pubDate", "date"),
			Updated:     str(obj, "updated_at", "updatedAt", "updated"),
			GUID:        str(obj, "id", "guid"),
			Categories:  strList(obj, "tags", "categories"),
		}
		if e.Title == "" && e.Link == "" {
			continue
		}
		entries = append(entries, e)
	}
	return entries
}

func decodeObjects(raw string) []map[string]any {
	var top any
	if err := json.Unmarshal([]byte(raw), &top); err != nil {
		return nil
	}

	var list []any
	switch v := top.(type) {
	case []any:
		list = v
	case map[string]any:
		for _, key := range envelopeKeys {
			if arr, ok := v[key].([]any); ok {
				list = arr
				break
			}
		}
	}

	objects := make([]map[string]any, 0, len(list))
	for _, el := range list {
		if obj, ok := el.(map[string]any); ok {
			objects = append(objects, obj)
		}
	}
	return objects
}

// str returns the first non-empty value among keys, rendering numbers
// (numeric IDs are common) without exponent notation.
func str(obj map[string]any, keys ...string) string {
	for _, k := range keys {
		switch v := obj[k].(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case float64:
			return strings.TrimSpace(fmt.Sprintf("%.0f", v))
		}
	}
	return ""
}

func strList(obj map[string]any, keys ...string) []string {
	for _, k := range keys {
		arr, ok := obj[k].([]any)
		if !ok {
			continue
		}
		var out []string
		for _, el := range arr {
			if s, ok := el.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}
