// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for webgather.
package types

import "time"

// SearchResult is one normalized hit from any source. Adapters create
// results at response-parse time; they are immutable afterwards.
type SearchResult struct {
	// Source identifies which source produced this result (e.g. "wikipedia").
	Source string `json:"source" yaml:"source"`

	// Title is the result title as returned by the source. May be empty
	// when the provider omits it.
	Title string `json:"title" yaml:"title"`

	// Description is a free-form summary. Sources without a native
	// description synthesize one (e.g. score and tags, points and comments).
	Description string `json:"description" yaml:"description"`

	// URL is the result link and the deduplication key. Results with an
	// empty URL are never deduplicated against each other.
	URL string `json:"url" yaml:"url"`

	// Timestamp is the capture time (when the record was parsed), not the
	// publish time.
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}
