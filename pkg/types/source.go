// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the guide-curator pipeline:
// source descriptors, ingested content items, draft documents, similarity
// matches, and stage configuration.
package types

// ProtocolType selects how a source payload is parsed.
type ProtocolType string

const (
	ProtocolFeed    ProtocolType = "feed"
	ProtocolJSONAPI ProtocolType = "jsonApi"
)

// Valid reports whether p is a known protocol.
func (p ProtocolType) Valid() bool {
	return p == ProtocolFeed || p == ProtocolJSONAPI
}

// EvidenceTier is a coarse trust ranking assigned to a source and
// propagated to everything derived from it.
type EvidenceTier string

const (
	TierA EvidenceTier = "A"
	TierB EvidenceTier = "B"
	TierC EvidenceTier = "C"
)

// Valid reports whether t is one of A, B, C.
func (t EvidenceTier) Valid() bool {
	return t == TierA || t == TierB || t == TierC
}

// SourceDescriptor describes one external feed. Descriptors are loaded once
// per run and never mutated.
type SourceDescriptor struct {
	// ID is the stable source identifier; it is part of every content hash.
	ID string `json:"id" yaml:"id"`

	// ProtocolType is feed (RSS/Atom) or jsonApi.
	ProtocolType ProtocolType `json:"protocolType" yaml:"protocol_type"`

	// URL is an http(s) URL or a file:// path.
	URL string `json:"url" yaml:"url"`

	// TrustCategory labels the kind of publisher (e.g. "official", "news").
	// It is also added to every item's tags.
	TrustCategory string `json:"trustCategory" yaml:"trust_category"`

	// EvidenceTier is A, B or C.
	EvidenceTier EvidenceTier `json:"evidenceTier" yaml:"evidence_tier"`

	// PollFrequency is a duration string such as "6h". Scheduling is left to
	// the caller; the pipeline only reports it.
	PollFrequency string `json:"pollFrequency" yaml:"poll_frequency"`

	// AuthSecret optionally names a secret whose value is sent as a bearer token.
	AuthSecret string `json:"authSecret,omitempty" yaml:"auth_secret,omitempty"`
}
