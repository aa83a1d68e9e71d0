// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/meshintel/webgather/internal/httputil"
	"github.com/meshintel/webgather/pkg/types"
)

// stackoverflowAPIBase is the Stack Exchange search endpoint. Declared as a
// var so tests can substitute an httptest server.
var stackoverflowAPIBase = "https://api.stackexchange.com/2.3/search"

// StackOverflowAdapter queries the Stack Exchange search API scoped to the
// stackoverflow.com site. An optional app key raises the request quota.
type StackOverflowAdapter struct {
	Client *http.Client
	Key    string
}

// Name returns the source identifier.
func (a *StackOverflowAdapter) Name() string { return SourceStackOverflow }

// Search queries questions whose title contains the keyword, sorted by
// relevance. The API entity-escapes titles, so they are unescaped here; the
// description is synthesized from score and tags since the search route
// returns no body excerpt.
func (a *StackOverflowAdapter) Search(ctx context.Context, keyword string, cfg types.SearchConfig) ([]types.SearchResult, error) {
	limit := clampLimit(cfg.MaxResults)

	params := url.Values{
		"intitle":  {keyword},
		"sort":     {"relevance"},
		"order":    {"desc"},
		"pagesize": {strconv.Itoa(limit)},
		"site":     {"stackoverflow.com"},
	}
	if a.Key != "" {
		params.Set("key", a.Key)
	}
	reqURL := stackoverflowAPIBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, a.Client, req, cfg.Retries)
	if err != nil {
		return nil, fmt.Errorf("Stack Overflow API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Stack Overflow API returned HTTP %d", resp.StatusCode)
	}

	var sr stackoverflowResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing Stack Overflow response: %w", err)
	}

	now := time.Now()
	var results []types.SearchResult
	for _, q := range sr.Items {
		if len(results) >= limit {
			break
		}
		results = append(results, types.SearchResult{
			Source:      SourceStackOverflow,
			Title:       html.UnescapeString(q.Title),
			Description: fmt.Sprintf("Score: %d, Tags: %s", q.Score, strings.Join(q.Tags, ", ")),
			URL:         q.Link,
			Timestamp:   now,
		})
	}
	return results, nil
}

// Stack Exchange API JSON structures.
type stackoverflowResponse struct {
	Items []stackoverflowQuestion `json:"items"`
}

type stackoverflowQuestion struct {
	Title string   `json:"title"`
	Score int      `json:"score"`
	Tags  []string `json:"tags"`
	Link  string   `json:"link"`
}
