// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pdiddy/guide-curator/pkg/types"
)

const registryJSON = `{
  "sources": [
    {"id": "ki-portal", "protocolType": "feed", "url": "https://example.com/feed.xml",
     "trustCategory": "official", "evidenceTier": "A", "pollFrequency": "6h"},
    {"id": "news-api", "protocolType": "jsonApi", "url": "https://api.example.com/v1/articles",
     "trustCategory": "news", "evidenceTier": "B", "authSecret": "news-api-key"},
    {"id": "local", "protocolType": "feed", "url": "file://testdata/feed.xml", "evidenceTier": "C"},
    {"id": "", "protocolType": "feed", "url": "https://example.com/a", "evidenceTier": "A"},
    {"id": "bad-tier", "protocolType": "feed", "url": "https://example.com/b", "evidenceTier": "D"},
    {"id": "bad-proto", "protocolType": "soap", "url": "https://example.com/c", "evidenceTier": "A"},
    {"id": "ftp", "protocolType": "feed", "url": "ftp://example.com/c", "evidenceTier": "A"},
    {"id": "bad-poll", "protocolType": "feed", "url": "https://example.com/d", "evidenceTier": "A", "pollFrequency": "daily"},
    {"id": 42},
    "not an object",
    {"id": "ki-portal", "protocolType": "feed", "url": "https://example.com/dup.xml", "evidenceTier": "A"}
  ]
}`

func TestParseSkipsMalformedEntries(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)

	got, err := Parse([]byte(registryJSON), zap.New(core))
	require.NoError(t, err)

	require.Len(t, got, 3)
	assert.Equal(t, types.SourceDescriptor{
		ID:            "ki-portal",
		ProtocolType:  types.ProtocolFeed,
		URL:           "https://example.com/feed.xml",
		TrustCategory: "official",
		EvidenceTier:  types.TierA,
		PollFrequency: "6h",
	}, got[0])
	assert.Equal(t, "news-api", got[1].ID)
	assert.Equal(t, types.ProtocolJSONAPI, got[1].ProtocolType)
	assert.Equal(t, "news-api-key", got[1].AuthSecret)
	assert.Equal(t, "local", got[2].ID)

	assert.Equal(t, 8, logs.Len(), "one warning per skipped entry")
}

func TestParseEmptyRegistry(t *testing.T) {
	got, err := Parse([]byte(`{"sources": []}`), nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = Parse([]byte(`{}`), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestParseInvalidTopLevel(t *testing.T) {
	_, err := Parse([]byte(`{"sources": [`), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding source registry")

	_, err = Parse([]byte(`{"sources": {"id": "x"}}`), nil)
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.json")
	require.NoError(t, os.WriteFile(path, []byte(registryJSON), 0o644))

	got, err := Load(path, nil)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading source registry")
}

func TestValidate(t *testing.T) {
	valid := types.SourceDescriptor{ID: "x", ProtocolType: types.ProtocolFeed, URL: "https://example.com", EvidenceTier: types.TierB}
	assert.NoError(t, Validate(valid))

	noHost := valid
	noHost.URL = "https://"
	assert.Error(t, Validate(noHost))

	err := Validate(types.SourceDescriptor{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "id is required")
	assert.Contains(t, err.Error(), "url is required")
}
