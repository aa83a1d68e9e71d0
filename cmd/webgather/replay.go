package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/meshintel/webgather/internal/search"
)

var replayCmd = &cobra.Command{
	Use:   "replay <session-file>",
	Short: "Re-render a saved search session",
	Long: `Replay loads a session YAML written by search --save and re-renders it
through the same formatters, with no network activity. Use --output and
--format to export a saved session as a JSON or CSV report.`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().StringP("format", "f", "", "report format for --output: json or csv (default json)")
	replayCmd.Flags().StringP("output", "o", "", "report file name, written under the output directory")

	rootCmd.AddCommand(replayCmd)
}

func runReplay(cmd *cobra.Command, args []string) error {
	format, err := reportFormat(cmd)
	if err != nil {
		return err
	}

	sf, err := search.ReadSessionFile(args[0])
	if err != nil {
		return err
	}
	out := sf.Output()

	search.FormatConsole(out, os.Stdout)

	if outputFile, _ := cmd.Flags().GetString("output"); outputFile != "" {
		return writeReport(out, format, outputFile)
	}
	return nil
}
