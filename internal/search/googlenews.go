// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/meshintel/webgather/internal/httputil"
	"github.com/meshintel/webgather/pkg/types"
)

// googlenewsBase is the Google News search page. Declared as a var so tests
// can substitute an httptest server.
var googlenewsBase = "https://news.google.com/search"

// googlenewsFallbackDesc stands in for articles without a summary paragraph.
const googlenewsFallbackDesc = "News article"

// GoogleNewsAdapter scrapes the Google News search page. There is no public
// API for this source; results come from parsing the article markup.
type GoogleNewsAdapter struct {
	Client *http.Client
}

// Name returns the source identifier.
func (a *GoogleNewsAdapter) Name() string { return SourceGoogleNews }

// Search fetches the news search page and extracts one result per <article>
// element. Articles without a headline or link are skipped; relative article
// links are resolved against the fetched page URL.
func (a *GoogleNewsAdapter) Search(ctx context.Context, keyword string, cfg types.SearchConfig) ([]types.SearchResult, error) {
	limit := clampLimit(cfg.MaxResults)

	params := url.Values{"q": {keyword}}
	reqURL := googlenewsBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, a.Client, req, cfg.Retries)
	if err != nil {
		return nil, fmt.Errorf("Google News request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Google News returned HTTP %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing Google News page: %w", err)
	}

	base := resp.Request.URL
	now := time.Now()
	var results []types.SearchResult
	doc.Find("article").EachWithBreak(func(_ int, article *goquery.Selection) bool {
		if len(results) >= limit {
			return false
		}

		title := article.Find("h3").First()
		link := article.Find("a").First()
		if title.Length() == 0 || link.Length() == 0 {
			return true
		}

		href := link.AttrOr("href", "")
		if href != "" {
			if rel, parseErr := url.Parse(href); parseErr == nil {
				href = base.ResolveReference(rel).String()
			}
		}

		desc := googlenewsFallbackDesc
		if p := article.Find("p").First(); p.Length() > 0 {
			desc = strings.TrimSpace(p.Text())
		}

		results = append(results, types.SearchResult{
			Source:      SourceGoogleNews,
			Title:       strings.TrimSpace(title.Text()),
			Description: desc,
			URL:         href,
			Timestamp:   now,
		})
		return true
	})
	return results, nil
}
