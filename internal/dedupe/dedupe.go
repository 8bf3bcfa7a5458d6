// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dedupe collapses an ingestion batch to one item per content hash.
// Cross-run idempotency is left to the store's conflict-ignoring upsert.
package dedupe

import "github.com/pdiddy/guide-curator/pkg/types"

// Batch keeps the first item seen for each content hash, preserving order,
// and reports how many later items were dropped.
func Batch(items []types.ContentItem) (kept []types.ContentItem, removed int) {
	seen := make(map[string]struct{}, len(items))
	kept = make([]types.ContentItem, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it.ContentHash]; ok {
			removed++
			continue
		}
		seen[it.ContentHash] = struct{}{}
		kept = append(kept, it)
	}
	return kept, removed
}
