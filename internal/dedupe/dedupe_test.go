// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dedupe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/guide-curator/pkg/types"
)

func TestBatchKeepsFirstPerHash(t *testing.T) {
	items := []types.ContentItem{
		{ContentHash: "h1", Title: "first"},
		{ContentHash: "h2", Title: "other"},
		{ContentHash: "h1", Title: "second"},
		{ContentHash: "h1", Title: "third"},
	}

	kept, removed := Batch(items)
	require.Len(t, kept, 2)
	assert.Equal(t, 2, removed)
	assert.Equal(t, "first", kept[0].Title)
	assert.Equal(t, "other", kept[1].Title)
}

func TestBatchEmpty(t *testing.T) {
	kept, removed := Batch(nil)
	assert.NotNil(t, kept)
	assert.Empty(t, kept)
	assert.Zero(t, removed)
}

func TestBatchNoDuplicates(t *testing.T) {
	items := []types.ContentItem{{ContentHash: "a"}, {ContentHash: "b"}, {ContentHash: "c"}}
	kept, removed := Batch(items)
	assert.Equal(t, items, kept)
	assert.Zero(t, removed)
}
