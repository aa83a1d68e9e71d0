// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/meshintel/webgather/pkg/types"
)

// Adaptive palette for the console report; colors hold up on both light and
// dark terminals, and lipgloss suppresses them entirely under NO_COLOR.
var (
	colorHeading = lipgloss.AdaptiveColor{Light: "#0277bd", Dark: "#4fc3f7"}
	colorSuccess = lipgloss.AdaptiveColor{Light: "#2e7d32", Dark: "#66bb6a"}
	colorFailure = lipgloss.AdaptiveColor{Light: "#c62828", Dark: "#ef5350"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "#757575", Dark: "#9e9e9e"}
)

var (
	headingStyle = lipgloss.NewStyle().Foreground(colorHeading).Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(colorHeading)
	boldStyle    = lipgloss.NewStyle().Bold(true)
	okStyle      = lipgloss.NewStyle().Foreground(colorSuccess)
	failStyle    = lipgloss.NewStyle().Foreground(colorFailure)
	titleStyle   = lipgloss.NewStyle().Foreground(colorHeading).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
)

const (
	symbolOK   = "✓"
	symbolFail = "✗"

	consoleDescWidth = 100
	consoleURLWidth  = 70
	consoleRuleWidth = 80
)

// FormatConsole writes a styled human-readable report to w: a summary header,
// one status line per source, and the results grouped by source in the order
// sources finished. Results are rendered as-is; nothing is re-sorted.
func FormatConsole(out Output, w io.Writer) {
	fmt.Fprintln(w, headingStyle.Render("Search Results"))
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Keyword:"), boldStyle.Render(out.Keyword))
	total := fmt.Sprintf("%d", len(out.Results))
	if out.DupsRemoved > 0 {
		total += fmt.Sprintf(" (%d duplicates removed)", out.DupsRemoved)
	}
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Total results:"), boldStyle.Render(total))
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Search time:"), boldStyle.Render(fmt.Sprintf("%.2fs", out.Elapsed.Seconds())))

	if len(out.Stats) > 0 {
		fmt.Fprintln(w)
		for _, st := range out.Stats {
			if st.Err != "" {
				fmt.Fprintf(w, "%s %s: %s\n", failStyle.Render(symbolFail), strings.ToUpper(st.Source), st.Err)
				continue
			}
			fmt.Fprintf(w, "%s %s: %d results\n", okStyle.Render(symbolOK), strings.ToUpper(st.Source), st.Results)
		}
	}

	if len(out.Results) == 0 {
		fmt.Fprintf(w, "\n%s\n", mutedStyle.Render(fmt.Sprintf("No results found for %q", out.Keyword)))
		return
	}

	for _, group := range groupBySource(out.Results) {
		fmt.Fprintf(w, "\n%s (%d results):\n", headingStyle.Render(strings.ToUpper(group.source)), len(group.results))
		fmt.Fprintln(w, mutedStyle.Render(strings.Repeat("─", consoleRuleWidth)))
		for i, r := range group.results {
			fmt.Fprintf(w, "%s\n", titleStyle.Render(fmt.Sprintf("%d. %s", i+1, r.Title)))
			fmt.Fprintf(w, "   %s\n", truncate(r.Description, consoleDescWidth))
			fmt.Fprintf(w, "   %s\n", mutedStyle.Render(truncate(r.URL, consoleURLWidth)))
		}
	}
}

type sourceGroup struct {
	source  string
	results []types.SearchResult
}

// groupBySource buckets results by source, preserving both the order sources
// first appear and the order of results within each source.
func groupBySource(results []types.SearchResult) []sourceGroup {
	index := make(map[string]int, len(results))
	var groups []sourceGroup
	for _, r := range results {
		i, ok := index[r.Source]
		if !ok {
			i = len(groups)
			index[r.Source] = i
			groups = append(groups, sourceGroup{source: r.Source})
		}
		groups[i].results = append(groups[i].results, r)
	}
	return groups
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
