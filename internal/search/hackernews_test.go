// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const sampleHackerNewsJSON = `{
  "hits": [
    {
      "objectID": "38100001",
      "title": "Go 1.25 released",
      "url": "https://go.dev/blog/go1.25",
      "points": 512,
      "num_comments": 187
    },
    {
      "objectID": "38100002",
      "title": "Ask HN: Favorite Go libraries?",
      "url": "",
      "points": 44,
      "num_comments": 63
    }
  ]
}`

func TestHackerNewsAdapterSearch(t *testing.T) {
	var gotQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, sampleHackerNewsJSON)
	}))
	defer ts.Close()

	old := hackernewsAPIBase
	hackernewsAPIBase = ts.URL
	defer func() { hackernewsAPIBase = old }()

	a := &HackerNewsAdapter{Client: ts.Client()}
	results, err := a.Search(context.Background(), "golang", testCfg())
	if err != nil {
		t.Fatalf("HackerNewsAdapter.Search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}

	r := results[0]
	if r.Source != SourceHackerNews {
		t.Errorf("Source = %q, want %q", r.Source, SourceHackerNews)
	}
	if r.Title != "Go 1.25 released" {
		t.Errorf("Title = %q", r.Title)
	}
	if r.Description != "Points: 512, Comments: 187" {
		t.Errorf("Description = %q", r.Description)
	}
	if r.URL != "https://go.dev/blog/go1.25" {
		t.Errorf("URL = %q", r.URL)
	}

	// Stories without an external URL link to their comment page.
	if results[1].URL != "https://news.ycombinator.com/item?id=38100002" {
		t.Errorf("fallback URL = %q", results[1].URL)
	}

	if !strings.Contains(gotQuery, "query=golang") || !strings.Contains(gotQuery, "tags=story") {
		t.Errorf("query = %q, want query and tags params", gotQuery)
	}
}

func TestHackerNewsAdapterCapApplied(t *testing.T) {
	var hits []string
	for i := 0; i < 10; i++ {
		hits = append(hits, fmt.Sprintf(`{"objectID": "%d", "title": "story %d", "url": "https://example.com/%d", "points": 1, "num_comments": 0}`, i, i, i))
	}
	body := `{"hits": [` + strings.Join(hits, ",") + `]}`

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, body)
	}))
	defer ts.Close()

	old := hackernewsAPIBase
	hackernewsAPIBase = ts.URL
	defer func() { hackernewsAPIBase = old }()

	a := &HackerNewsAdapter{Client: ts.Client()}
	cfg := testCfg()
	cfg.MaxResults = 3
	results, err := a.Search(context.Background(), "golang", cfg)
	if err != nil {
		t.Fatalf("HackerNewsAdapter.Search: %v", err)
	}
	if len(results) != 3 {
		t.Errorf("len(results) = %d, want cap of 3 even when the provider over-delivers", len(results))
	}
}
