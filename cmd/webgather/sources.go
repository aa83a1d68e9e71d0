package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meshintel/webgather/internal/search"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the available search sources",
	Run: func(cmd *cobra.Command, args []string) {
		defaults := make(map[string]bool)
		for _, id := range search.DefaultSources() {
			defaults[id] = true
		}
		for _, s := range search.Sources() {
			marker := " "
			if defaults[s.ID] {
				marker = "*"
			}
			fmt.Printf("%s %-14s %s\n", marker, s.ID, s.Description)
		}
		fmt.Println("\n* queried by default when no sources are given")
	},
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}
