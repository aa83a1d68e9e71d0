// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/meshintel/webgather/pkg/types"
)

// jsonReport is the envelope of the JSON report format.
type jsonReport struct {
	Search  jsonSearchMeta       `json:"search"`
	Results []types.SearchResult `json:"results"`
}

type jsonSearchMeta struct {
	Keyword           string    `json:"keyword"`
	Timestamp         time.Time `json:"timestamp"`
	Sources           []string  `json:"sources"`
	TotalResults      int       `json:"total_results"`
	SearchTimeSeconds float64   `json:"search_time_seconds"`
}

// FormatJSON writes the search output as an indented JSON report: a search
// metadata block followed by the results verbatim, in their existing order.
func FormatJSON(out Output, w io.Writer) error {
	results := out.Results
	if results == nil {
		results = []types.SearchResult{}
	}
	sources := out.Sources
	if sources == nil {
		sources = []string{}
	}

	report := jsonReport{
		Search: jsonSearchMeta{
			Keyword:           out.Keyword,
			Timestamp:         time.Now(),
			Sources:           sources,
			TotalResults:      len(results),
			SearchTimeSeconds: math.Round(out.Elapsed.Seconds()*100) / 100,
		},
		Results: results,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(report)
}

// FormatCSV writes the search output as CSV. Only the title and description
// columns are quoted (they carry free text); embedded double-quotes double.
// Empty output emits a no-results line instead of a bare header.
func FormatCSV(out Output, w io.Writer) error {
	if len(out.Results) == 0 {
		_, err := fmt.Fprintln(w, "No results found")
		return err
	}

	if _, err := fmt.Fprintln(w, "source,title,description,url,timestamp"); err != nil {
		return err
	}
	for _, r := range out.Results {
		_, err := fmt.Fprintf(w, "%s,%s,%s,%s,%s\n",
			r.Source, quoteCSV(r.Title), quoteCSV(r.Description), r.URL,
			r.Timestamp.Format(time.RFC3339Nano))
		if err != nil {
			return err
		}
	}
	return nil
}

func quoteCSV(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
