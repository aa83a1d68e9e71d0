// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/meshintel/webgather/internal/httputil"
	"github.com/meshintel/webgather/pkg/types"
)

// wikipediaAPIBase is the MediaWiki full-text search endpoint. Declared as a
// var so tests can substitute an httptest server.
var wikipediaAPIBase = "https://en.wikipedia.org/w/api.php"

// wikipediaArticleBase prefixes article URLs built from page titles.
const wikipediaArticleBase = "https://en.wikipedia.org/wiki/"

// searchMatchStripper removes the highlight spans MediaWiki wraps around
// matched terms in snippets. Both quoting variants appear in the wild.
var searchMatchStripper = strings.NewReplacer(
	`<span class="searchmatch">`, "",
	"<span class='searchmatch'>", "",
	"</span>", "",
)

// WikipediaAdapter queries the Wikipedia search API.
type WikipediaAdapter struct {
	Client *http.Client
}

// Name returns the source identifier.
func (a *WikipediaAdapter) Name() string { return SourceWikipedia }

// Search queries the MediaWiki list=search endpoint and maps each page hit
// to a result pointing at its canonical article URL.
func (a *WikipediaAdapter) Search(ctx context.Context, keyword string, cfg types.SearchConfig) ([]types.SearchResult, error) {
	limit := clampLimit(cfg.MaxResults)

	params := url.Values{
		"action":   {"query"},
		"format":   {"json"},
		"list":     {"search"},
		"srsearch": {keyword},
		"srlimit":  {strconv.Itoa(limit)},
	}
	reqURL := wikipediaAPIBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, a.Client, req, cfg.Retries)
	if err != nil {
		return nil, fmt.Errorf("Wikipedia API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Wikipedia API returned HTTP %d", resp.StatusCode)
	}

	var wr wikipediaResponse
	if err := json.NewDecoder(resp.Body).Decode(&wr); err != nil {
		return nil, fmt.Errorf("parsing Wikipedia response: %w", err)
	}

	now := time.Now()
	var results []types.SearchResult
	for _, page := range wr.Query.Search {
		if len(results) >= limit {
			break
		}
		results = append(results, types.SearchResult{
			Source:      SourceWikipedia,
			Title:       page.Title,
			Description: searchMatchStripper.Replace(page.Snippet),
			URL:         wikipediaArticleBase + strings.ReplaceAll(page.Title, " ", "_"),
			Timestamp:   now,
		})
	}
	return results, nil
}

// Wikipedia API JSON structures.
type wikipediaResponse struct {
	Query wikipediaQuery `json:"query"`
}

type wikipediaQuery struct {
	Search []wikipediaPage `json:"search"`
}

type wikipediaPage struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}
