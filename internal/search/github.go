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

// githubAPIBase is the GitHub repository search endpoint. Declared as a var
// so tests can substitute an httptest server.
var githubAPIBase = "https://api.github.com/search/repositories"

// githubNoDescription stands in for repositories without a description.
const githubNoDescription = "No description provided"

// GitHubAdapter queries the GitHub repository search API. An optional token
// raises the unauthenticated rate limit.
type GitHubAdapter struct {
	Client *http.Client
	Token  string
}

// Name returns the source identifier.
func (a *GitHubAdapter) Name() string { return SourceGitHub }

// Search queries the repository search endpoint sorted by stars and maps
// each repository to a result pointing at its web page.
func (a *GitHubAdapter) Search(ctx context.Context, keyword string, cfg types.SearchConfig) ([]types.SearchResult, error) {
	limit := clampLimit(cfg.MaxResults)

	params := url.Values{
		"q":        {keyword},
		"sort":     {"stars"},
		"order":    {"desc"},
		"per_page": {strconv.Itoa(limit)},
	}
	reqURL := githubAPIBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)
	if a.Token != "" {
		req.Header.Set("Authorization", "Bearer "+a.Token)
	}

	resp, err := httputil.DoWithRetry(ctx, a.Client, req, cfg.Retries)
	if err != nil {
		return nil, fmt.Errorf("GitHub API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GitHub API returned HTTP %d", resp.StatusCode)
	}

	var gr githubResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return nil, fmt.Errorf("parsing GitHub response: %w", err)
	}

	now := time.Now()
	var results []types.SearchResult
	for _, repo := range gr.Items {
		if len(results) >= limit {
			break
		}
		desc := repo.Description
		if desc == "" {
			desc = githubNoDescription
		}
		results = append(results, types.SearchResult{
			Source:      SourceGitHub,
			Title:       repo.Name,
			Description: desc,
			URL:         repo.HTMLURL,
			Timestamp:   now,
		})
	}
	return results, nil
}

// GitHub API JSON structures.
type githubResponse struct {
	TotalCount int          `json:"total_count"`
	Items      []githubRepo `json:"items"`
}

type githubRepo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	HTMLURL     string `json:"html_url"`
}
