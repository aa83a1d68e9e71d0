package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshintel/webgather/internal/search"
	"github.com/meshintel/webgather/pkg/types"
)

func reportOutput() search.Output {
	return search.Output{
		Keyword: "golang",
		Sources: []string{search.SourceGitHub},
		Results: []types.SearchResult{{
			Source:      "github",
			Title:       "gin",
			Description: "HTTP web framework",
			URL:         "https://github.com/gin-gonic/gin",
			Timestamp:   time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		}},
		Elapsed: 1200 * time.Millisecond,
		Stats:   []search.SourceStat{{Source: "github", Results: 1}},
	}
}

func TestWriteReportNestedPath(t *testing.T) {
	old := viper.GetString("output_dir")
	dir := t.TempDir()
	viper.Set("output_dir", dir)
	defer viper.Set("output_dir", old)

	// A report name with path separators gets its parent directories created.
	name := filepath.Join("nested", "deep", "report.csv")
	require.NoError(t, writeReport(reportOutput(), "csv", name))

	data, err := os.ReadFile(filepath.Join(dir, "nested", "deep", "report.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "source,title,description,url,timestamp")
	assert.Contains(t, string(data), `github,"gin"`)
}

func TestWriteReportFlatPath(t *testing.T) {
	old := viper.GetString("output_dir")
	dir := t.TempDir()
	viper.Set("output_dir", dir)
	defer viper.Set("output_dir", old)

	require.NoError(t, writeReport(reportOutput(), "json", "report.json"))

	data, err := os.ReadFile(filepath.Join(dir, "report.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"total_results": 1`)
	assert.Contains(t, string(data), `"url": "https://github.com/gin-gonic/gin"`)
}
