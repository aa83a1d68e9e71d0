// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/meshintel/webgather/internal/httputil"
	"github.com/meshintel/webgather/pkg/types"
)

// hackernewsAPIBase is the HN Algolia search endpoint. Declared as a var so
// tests can substitute an httptest server.
var hackernewsAPIBase = "https://hn.algolia.com/api/v1/search"

// HackerNewsAdapter queries the Hacker News Algolia API for stories.
type HackerNewsAdapter struct {
	Client *http.Client
}

// Name returns the source identifier.
func (a *HackerNewsAdapter) Name() string { return SourceHackerNews }

// Search queries Algolia for stories matching the keyword. Ask-HN style
// stories carry no external URL; those link to their comment page instead.
func (a *HackerNewsAdapter) Search(ctx context.Context, keyword string, cfg types.SearchConfig) ([]types.SearchResult, error) {
	limit := clampLimit(cfg.MaxResults)

	params := url.Values{
		"query":       {keyword},
		"hitsPerPage": {strconv.Itoa(limit)},
		"tags":        {"story"},
	}
	reqURL := hackernewsAPIBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, a.Client, req, cfg.Retries)
	if err != nil {
		return nil, fmt.Errorf("Hacker News API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Hacker News API returned HTTP %d", resp.StatusCode)
	}

	var hr hackernewsResponse
	if err := json.NewDecoder(resp.Body).Decode(&hr); err != nil {
		return nil, fmt.Errorf("parsing Hacker News response: %w", err)
	}

	now := time.Now()
	var results []types.SearchResult
	for _, hit := range hr.Hits {
		if len(results) >= limit {
			break
		}
		storyURL := hit.URL
		if storyURL == "" {
			storyURL = "https://news.ycombinator.com/item?id=" + hit.ObjectID
		}
		results = append(results, types.SearchResult{
			Source:      SourceHackerNews,
			Title:       hit.Title,
			Description: fmt.Sprintf("Points: %d, Comments: %d", hit.Points, hit.NumComments),
			URL:         storyURL,
			Timestamp:   now,
		})
	}
	return results, nil
}

// HN Algolia API JSON structures.
type hackernewsResponse struct {
	Hits []hackernewsHit `json:"hits"`
}

type hackernewsHit struct {
	ObjectID    string `json:"objectID"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Points      int    `json:"points"`
	NumComments int    `json:"num_comments"`
}
