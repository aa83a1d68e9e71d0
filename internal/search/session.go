// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/meshintel/webgather/pkg/types"
)

// SessionFile is the on-disk representation of a search and its results. A
// saved session can be re-rendered later without re-querying any source.
type SessionFile struct {
	Query   SessionQuery         `yaml:"query"`
	Results []types.SearchResult `yaml:"results"`
	Summary SessionSummary       `yaml:"summary"`
}

// SessionQuery stores the request parameters in a serializable form.
type SessionQuery struct {
	Keyword    string   `yaml:"keyword"`
	Sources    []string `yaml:"sources"`
	MaxResults int      `yaml:"max_results"`
}

// SessionSummary stores per-source statistics and a timestamp.
type SessionSummary struct {
	Total             int          `yaml:"total"`
	DuplicatesRemoved int          `yaml:"duplicates_removed"`
	Sources           []SourceStat `yaml:"sources,omitempty"`
	ElapsedSeconds    float64      `yaml:"elapsed_seconds"`
	Timestamp         time.Time    `yaml:"timestamp"`
}

// WriteSessionFile saves the request and its results to a YAML file.
func WriteSessionFile(path string, req Request, out Output) error {
	sf := SessionFile{
		Query: SessionQuery{
			Keyword:    req.Keyword,
			Sources:    req.Sources,
			MaxResults: req.MaxResults,
		},
		Results: out.Results,
		Summary: SessionSummary{
			Total:             len(out.Results),
			DuplicatesRemoved: out.DupsRemoved,
			Sources:           out.Stats,
			ElapsedSeconds:    out.Elapsed.Seconds(),
			Timestamp:         time.Now(),
		},
	}

	data, err := yaml.Marshal(&sf)
	if err != nil {
		return fmt.Errorf("marshaling session file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadSessionFile loads a previously saved session from disk.
func ReadSessionFile(path string) (*SessionFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading session file: %w", err)
	}
	var sf SessionFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parsing session file: %w", err)
	}
	return &sf, nil
}

// Output reconstructs a search Output from the stored session so the usual
// formatters can re-render it.
func (sf *SessionFile) Output() Output {
	return Output{
		Keyword:     sf.Query.Keyword,
		Sources:     sf.Query.Sources,
		Results:     sf.Results,
		DupsRemoved: sf.Summary.DuplicatesRemoved,
		Elapsed:     time.Duration(sf.Summary.ElapsedSeconds * float64(time.Second)),
		Stats:       sf.Summary.Sources,
	}
}
