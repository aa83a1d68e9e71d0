// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search queries public web sources concurrently and returns unified,
// deduplicated results.
package search

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/meshintel/webgather/pkg/types"
)

// Adapter searches a single external source. Each source implements this
// interface independently; adapters hold no mutable cross-call state and any
// two invocations are safe to run concurrently.
type Adapter interface {
	Name() string
	Search(ctx context.Context, keyword string, cfg types.SearchConfig) ([]types.SearchResult, error)
}

// Registered source identifiers.
const (
	SourceWikipedia     = "wikipedia"
	SourceStackOverflow = "stackoverflow"
	SourceGitHub        = "github"
	SourceGoogleNews    = "googlenews"
	SourceHackerNews    = "hackernews"
)

// Validation and cap bounds.
const (
	MinKeywordLength  = 2
	MaxKeywordLength  = 200
	DefaultMaxResults = 5
	MaxResultsLimit   = 50

	defaultPoolSize = 5
)

// SourceInfo describes one registered source.
type SourceInfo struct {
	ID          string
	Description string
}

// registry lists every known source in canonical order.
var registry = []SourceInfo{
	{SourceWikipedia, "encyclopedia articles via the Wikipedia search API"},
	{SourceStackOverflow, "programming Q&A via the Stack Exchange search API"},
	{SourceGitHub, "code repositories via the GitHub repository search API"},
	{SourceGoogleNews, "news articles scraped from Google News"},
	{SourceHackerNews, "stories via the Hacker News Algolia API"},
}

// Sources returns the registry entries in canonical order.
func Sources() []SourceInfo {
	out := make([]SourceInfo, len(registry))
	copy(out, registry)
	return out
}

// AllSources returns every registered source identifier in canonical order.
func AllSources() []string {
	ids := make([]string, len(registry))
	for i, s := range registry {
		ids[i] = s.ID
	}
	return ids
}

// DefaultSources returns the sources queried when none are requested.
func DefaultSources() []string {
	return []string{SourceWikipedia, SourceGitHub, SourceStackOverflow}
}

// Request holds the validated parameters of one search call.
type Request struct {
	Keyword    string
	Sources    []string
	MaxResults int
}

// NewRequest validates and normalizes search parameters. The keyword must be
// 2-200 characters and every source a registered identifier; the literal
// ["all"] expands to the full registry, an empty list to the default set, and
// duplicate identifiers collapse to their first occurrence. The per-source
// cap is clamped to 1..50 and defaults to 5 when unset.
func NewRequest(keyword string, sources []string, maxResults int) (Request, error) {
	if err := validateKeyword(keyword); err != nil {
		return Request{}, err
	}

	switch {
	case len(sources) == 0:
		sources = DefaultSources()
	case len(sources) == 1 && sources[0] == "all":
		sources = AllSources()
	}

	known := make(map[string]bool, len(registry))
	for _, s := range registry {
		known[s.ID] = true
	}

	seen := make(map[string]bool, len(sources))
	ordered := make([]string, 0, len(sources))
	for _, id := range sources {
		if !known[id] {
			return Request{}, fmt.Errorf("unknown source %q (available: %s)", id, strings.Join(AllSources(), ", "))
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		ordered = append(ordered, id)
	}

	return Request{Keyword: keyword, Sources: ordered, MaxResults: clampLimit(maxResults)}, nil
}

func validateKeyword(keyword string) error {
	if n := utf8.RuneCountInString(keyword); n < MinKeywordLength || n > MaxKeywordLength {
		return fmt.Errorf("keyword must be between %d and %d characters", MinKeywordLength, MaxKeywordLength)
	}
	return nil
}

// clampLimit normalizes a per-source cap: non-positive values fall back to
// the default, values above the hard limit are capped.
func clampLimit(n int) int {
	if n <= 0 {
		return DefaultMaxResults
	}
	if n > MaxResultsLimit {
		return MaxResultsLimit
	}
	return n
}

// SourceStat summarizes one source's outcome within a search.
type SourceStat struct {
	Source  string `yaml:"source"`
	Results int    `yaml:"results"`
	Err     string `yaml:"error,omitempty"`
}

// Output holds the merged results and per-source statistics of one search.
// Results keep completion order across sources and provider order within a
// source; nothing downstream may re-sort them.
type Output struct {
	Keyword     string
	Sources     []string
	Results     []types.SearchResult
	DupsRemoved int
	Elapsed     time.Duration
	Stats       []SourceStat
}

// Orchestrator fans a keyword out to the requested source adapters through a
// bounded worker pool and merges what comes back.
type Orchestrator struct {
	cfg      types.SearchConfig
	adapters map[string]Adapter
	logger   zerolog.Logger
}

// New builds an Orchestrator with the default adapter registry. All adapters
// share one HTTP client carrying the configured per-request timeout.
func New(cfg types.SearchConfig, logger zerolog.Logger) *Orchestrator {
	client := &http.Client{Timeout: cfg.Timeout}
	return &Orchestrator{
		cfg: cfg,
		adapters: map[string]Adapter{
			SourceWikipedia:     &WikipediaAdapter{Client: client},
			SourceStackOverflow: &StackOverflowAdapter{Client: client, Key: cfg.StackExchangeKey},
			SourceGitHub:        &GitHubAdapter{Client: client, Token: cfg.GitHubToken},
			SourceGoogleNews:    &GoogleNewsAdapter{Client: client},
			SourceHackerNews:    &HackerNewsAdapter{Client: client},
		},
		logger: logger,
	}
}

// Search runs one adapter invocation per requested source on a worker pool
// of cfg.PoolSize slots (default 5), collects results in completion order,
// and deduplicates the merged set by URL. A failing source is logged,
// recorded in the output stats, and contributes zero results; it never
// aborts the search or its siblings. The returned error is non-nil only for
// validation failures, raised before any network activity.
func (o *Orchestrator) Search(ctx context.Context, req Request) (Output, error) {
	adapters, err := o.resolve(req)
	if err != nil {
		return Output{}, err
	}

	cfg := o.cfg
	cfg.MaxResults = req.MaxResults

	poolSize := o.cfg.PoolSize
	if poolSize <= 0 {
		poolSize = defaultPoolSize
	}

	type sourceResult struct {
		source  string
		results []types.SearchResult
		err     error
	}

	ch := make(chan sourceResult, len(adapters))
	sem := make(chan struct{}, poolSize)
	var wg sync.WaitGroup

	start := time.Now()
	for _, a := range adapters {
		wg.Add(1)
		go func(a Adapter) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results, err := a.Search(ctx, req.Keyword, cfg)
			ch <- sourceResult{source: a.Name(), results: results, err: err}
		}(a)
	}

	go func() {
		wg.Wait()
		close(ch)
	}()

	// Single collector: the only writer to the aggregate buffer.
	all := make([]types.SearchResult, 0, len(adapters)*req.MaxResults)
	stats := make([]SourceStat, 0, len(adapters))
	for sr := range ch {
		if sr.err != nil {
			o.logger.Warn().Err(sr.err).Str("source", sr.source).Msg("source search failed")
			stats = append(stats, SourceStat{Source: sr.source, Err: sr.err.Error()})
			continue
		}
		o.logger.Info().Str("source", sr.source).Int("results", len(sr.results)).Msg("source completed")
		stats = append(stats, SourceStat{Source: sr.source, Results: len(sr.results)})
		all = append(all, sr.results...)
	}
	elapsed := time.Since(start)

	deduped, removed := dedupeByURL(all)

	return Output{
		Keyword:     req.Keyword,
		Sources:     req.Sources,
		Results:     deduped,
		DupsRemoved: removed,
		Elapsed:     elapsed,
		Stats:       stats,
	}, nil
}

// resolve validates the request and maps every source id to its adapter,
// once, before any work is dispatched.
func (o *Orchestrator) resolve(req Request) ([]Adapter, error) {
	if err := validateKeyword(req.Keyword); err != nil {
		return nil, err
	}
	if len(req.Sources) == 0 {
		return nil, fmt.Errorf("no sources requested")
	}
	adapters := make([]Adapter, 0, len(req.Sources))
	for _, id := range req.Sources {
		a, ok := o.adapters[id]
		if !ok {
			return nil, fmt.Errorf("unknown source %q", id)
		}
		adapters = append(adapters, a)
	}
	return adapters, nil
}

// dedupeByURL drops later entries whose non-empty URL was already seen.
// Entries with an empty URL carry no identity and are always kept.
func dedupeByURL(results []types.SearchResult) ([]types.SearchResult, int) {
	seen := make(map[string]struct{}, len(results))
	deduped := make([]types.SearchResult, 0, len(results))
	removed := 0
	for _, r := range results {
		if r.URL != "" {
			if _, dup := seen[r.URL]; dup {
				removed++
				continue
			}
			seen[r.URL] = struct{}{}
		}
		deduped = append(deduped, r)
	}
	return deduped, removed
}
