// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// RawEntry is one loosely-typed entry as extracted from a feed payload.
// Every field is the trimmed, entity-decoded text found in the markup.
type RawEntry struct {
	Title       string   `json:"title"`
	Link        string   `json:"link"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	PubDate     string   `json:"pubDate"`
	Updated     string   `json:"updated"`
	GUID        string   `json:"guid"`
	Categories  []string `json:"categories"`
}

// ContentItem is the canonical record derived from one feed entry.
type ContentItem struct {
	// ID is the store's surrogate key; zero until persisted.
	ID int64 `json:"id" yaml:"id"`

	SourceID      string       `json:"source_id" yaml:"source_id"`
	SourceType    ProtocolType `json:"source_type" yaml:"source_type"`
	TrustCategory string       `json:"trust_category" yaml:"trust_category"`
	EvidenceTier  EvidenceTier `json:"evidence_tier" yaml:"evidence_tier"`

	Title string `json:"title" yaml:"title"`
	URL   string `json:"url" yaml:"url"`

	// PublishedAt is nil when the feed date was missing or unparsable.
	PublishedAt *time.Time `json:"published_at,omitempty" yaml:"published_at,omitempty"`

	// ContentHash is sha256(sourceId::url::guid::title), the ingestion
	// idempotency key.
	ContentHash string `json:"content_hash" yaml:"content_hash"`

	// Summary is HTML-stripped, whitespace-collapsed text; empty when the
	// entry had no body.
	Summary string `json:"summary,omitempty" yaml:"summary,omitempty"`

	Tags []string `json:"tags" yaml:"tags"`

	// RawPayload preserves the original entry fields for audit.
	RawPayload map[string]string `json:"raw_payload,omitempty" yaml:"raw_payload,omitempty"`

	Processed   bool      `json:"processed" yaml:"processed"`
	IsDuplicate bool      `json:"is_duplicate" yaml:"is_duplicate"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
}

// Raw payload keys.
const (
	RawGUID        = "guid"
	RawPubDate     = "pubDate"
	RawUpdated     = "updated"
	RawDescription = "description"
	RawContent     = "content"
)
