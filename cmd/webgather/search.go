package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/meshintel/webgather/internal/search"
	"github.com/meshintel/webgather/internal/secrets"
	"github.com/meshintel/webgather/pkg/types"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

var (
	bannerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#0277bd", Dark: "#4fc3f7"})
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#0277bd", Dark: "#4fc3f7"})
	valueStyle  = lipgloss.NewStyle().Bold(true)
	noteStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#2e7d32", Dark: "#66bb6a"})
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run a keyword search across the configured sources",
	Long: `Search queries the requested sources concurrently for a keyword, merges
their results into one URL-deduplicated set, and prints a console report.
With --output the report is also written as JSON or CSV under the output
directory; with --save the whole session (query, results, summary) is stored
as YAML for later replay.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringP("keyword", "k", "", "keyword to search for (2-200 characters)")
	searchCmd.Flags().StringSliceP("sources", "s", nil, `sources to query, or "all" (default wikipedia,github,stackoverflow)`)
	searchCmd.Flags().IntP("max-results", "m", 0, "maximum results per source (default 5, capped at 50)")
	searchCmd.Flags().StringP("format", "f", "", "report format for --output: json or csv (default json)")
	searchCmd.Flags().StringP("output", "o", "", "report file name, written under the output directory")
	searchCmd.Flags().String("save", "", "save the session to a YAML file for replay")
	_ = searchCmd.MarkFlagRequired("keyword")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	keyword, _ := cmd.Flags().GetString("keyword")
	sources, _ := cmd.Flags().GetStringSlice("sources")
	maxResults, _ := cmd.Flags().GetInt("max-results")
	outputFile, _ := cmd.Flags().GetString("output")
	savePath, _ := cmd.Flags().GetString("save")

	format, err := reportFormat(cmd)
	if err != nil {
		return err
	}
	if maxResults == 0 {
		maxResults = viper.GetInt("search.max_results")
	}

	req, err := search.NewRequest(keyword, sources, maxResults)
	if err != nil {
		return err
	}

	fmt.Println(bannerStyle.Render("Starting web search"))
	fmt.Printf("%s %s\n", labelStyle.Render("Keyword:"), valueStyle.Render(req.Keyword))
	fmt.Printf("%s %s\n", labelStyle.Render("Sources:"), valueStyle.Render(strings.Join(req.Sources, ", ")))
	fmt.Printf("%s %s\n\n", labelStyle.Render("Max results per source:"), valueStyle.Render(fmt.Sprintf("%d", req.MaxResults)))

	o := search.New(searchConfig(), logger)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	defer signal.Stop(sigCh)

	type searchDone struct {
		out search.Output
		err error
	}
	done := make(chan searchDone, 1)
	go func() {
		out, err := o.Search(context.Background(), req)
		done <- searchDone{out: out, err: err}
	}()

	var out search.Output
	select {
	case <-sigCh:
		// Outstanding source queries are abandoned, not cancelled.
		logger.Warn().Msg("search interrupted by user")
		return nil
	case d := <-done:
		if d.err != nil {
			return d.err
		}
		out = d.out
	}

	search.FormatConsole(out, os.Stdout)

	if outputFile != "" {
		if err := writeReport(out, format, outputFile); err != nil {
			return err
		}
	}
	if savePath != "" {
		if err := search.WriteSessionFile(savePath, req, out); err != nil {
			return err
		}
		fmt.Println(noteStyle.Render("Session saved to " + savePath))
	}
	return nil
}

// searchConfig assembles the search configuration from viper and secrets.
// Explicit config values win over stored secrets.
func searchConfig() types.SearchConfig {
	timeout := viper.GetDuration("http.timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}
	userAgent := viper.GetString("http.user_agent")
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return types.SearchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: userAgent,
		},
		MaxResults:       viper.GetInt("search.max_results"),
		Retries:          viper.GetInt("search.retries"),
		PoolSize:         viper.GetInt("search.pool_size"),
		GitHubToken:      secrets.Get(loadedSecrets, "github-token", viper.GetString("github.token")),
		StackExchangeKey: secrets.Get(loadedSecrets, "stackexchange-key", viper.GetString("stackexchange.key")),
	}
}

// reportFormat resolves the --format flag against the configured default.
func reportFormat(cmd *cobra.Command) (string, error) {
	format, _ := cmd.Flags().GetString("format")
	if format == "" {
		format = viper.GetString("search.format")
	}
	if format != "json" && format != "csv" {
		return "", fmt.Errorf("unknown format %q (available: json, csv)", format)
	}
	return format, nil
}

// writeReport renders the output under the configured output directory.
func writeReport(out search.Output, format, name string) error {
	path := filepath.Join(viper.GetString("output_dir"), name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	defer f.Close()

	switch format {
	case "csv":
		err = search.FormatCSV(out, f)
	default:
		err = search.FormatJSON(out, f)
	}
	if err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	fmt.Println(noteStyle.Render("Report saved to " + path))
	return nil
}
