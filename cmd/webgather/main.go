// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the webgather CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/meshintel/webgather/internal/search"
	"github.com/meshintel/webgather/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// logger is the CLI-wide logger, configured in PersistentPreRunE.
var logger zerolog.Logger

// rootCmd is the base command for the webgather CLI.
var rootCmd = &cobra.Command{
	Use:   "webgather",
	Short: "Multi-source web search aggregator",
	Long: `webgather runs a keyword search across several public web sources at once
(Wikipedia, GitHub, Stack Overflow, Google News, Hacker News), merges the
results into one deduplicated set, and renders console, JSON, or CSV reports.

Sources are queried concurrently through a bounded worker pool; a failing
source is reported and skipped, never aborting the remaining sources.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := zerolog.ParseLevel(viper.GetString("log.level"))
		if err != nil || level == zerolog.NoLevel {
			level = zerolog.InfoLevel
		}
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			level = zerolog.DebugLevel
		}
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
			Level(level).
			With().Timestamp().Logger()

		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			logger.Debug().Strs("keys", keys).Msg("loaded secrets")
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./webgather.yaml or ~/.config/webgather/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("webgather")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "webgather"))
		}
	}

	viper.SetEnvPrefix("WEBGATHER")
	viper.AutomaticEnv()

	viper.SetDefault("http.timeout", defaultTimeout)
	viper.SetDefault("http.user_agent", defaultUserAgent)
	viper.SetDefault("search.max_results", search.DefaultMaxResults)
	viper.SetDefault("search.format", "json")
	viper.SetDefault("search.pool_size", 5)
	viper.SetDefault("search.retries", 2)
	viper.SetDefault("output_dir", "output")
	viper.SetDefault("log.level", "info")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
