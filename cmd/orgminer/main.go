// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the orgminer CLI. Each pipeline
// stage is reachable as a subcommand: analyze, mine, process, export.
package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/meshintel/orgminer/internal/intent"
	"github.com/meshintel/orgminer/internal/search"
	"github.com/meshintel/orgminer/internal/secrets"
	"github.com/meshintel/orgminer/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns the secret value for key if it exists, or fallback otherwise.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the orgminer CLI.
var rootCmd = &cobra.Command{
	Use:   "orgminer",
	Short: "Mine organizations from web search results",
	Long: `orgminer analyzes a free-text query, searches the web, extracts
organization candidates from the results, ranks them for relevance, and
filters them into a validated organization list plus a reclassified
bucket for everything that was dropped.

Each pipeline stage is a subcommand: analyze shows the derived query
intent, mine runs the full pipeline, process re-filters a saved run,
and export reads persisted runs back out as CSV, JSON, or YAML.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
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
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./orgminer.yaml or ~/.config/orgminer/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("orgminer")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "orgminer"))
		}
	}

	viper.SetEnvPrefix("ORGMINER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// pipelineConfig merges the config file over the defaults.
func pipelineConfig() (types.PipelineConfig, error) {
	cfg := types.DefaultPipelineConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading configuration: %w", err)
	}
	return cfg, nil
}

// loadTables returns the keyword/pattern tables, honoring a configured
// override file.
func loadTables(cfg types.PipelineConfig) (*intent.Tables, error) {
	if cfg.TablesFile == "" {
		return intent.DefaultTables(), nil
	}
	return intent.LoadTables(cfg.TablesFile)
}

// buildProviders assembles the enabled search providers.
func buildProviders(cfg types.PipelineConfig) []search.Provider {
	client := &http.Client{Timeout: cfg.Search.Timeout}

	var providers []search.Provider
	if cfg.Search.EnableDuckDuckGo {
		providers = append(providers, &search.DuckDuckGoProvider{Client: client})
	}
	if cfg.Search.EnableBrave {
		providers = append(providers, &search.BraveProvider{
			Client: client,
			APIKey: secretDefault("brave-search-api-key", cfg.Search.BraveAPIKey),
		})
	}
	return providers
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
