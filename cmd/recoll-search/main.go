// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the recoll-search CLI, a terminal
// client for the recoll full-text search server.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/recoll-search/internal/app"
	"github.com/pdiddy/recoll-search/internal/history"
	"github.com/pdiddy/recoll-search/internal/secrets"
	"github.com/pdiddy/recoll-search/internal/settings"
)

// version is set at build time via ldflags.
var version = "dev"

// container is assembled once per invocation in the persistent pre-run.
var container *app.Container

// rootCmd is the base command for the recoll-search CLI.
var rootCmd = &cobra.Command{
	Use:   "recoll-search",
	Short: "Terminal client for a recoll full-text search server",
	Long: `recoll-search talks to the HTTP front end of a recoll full-text index.
It runs ranged queries and pages through the results, fetches document
previews, keyword snippets and embedded-document extracts, downloads
matching files, and keeps a local search history.

The server connection is configured once with "recoll-search settings set"
and persists across invocations.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		secretsDir, _ := cmd.Flags().GetString("secrets-dir")
		loaded, err := secrets.Load(secretsDir)
		if err != nil {
			return err
		}
		if len(loaded) > 0 {
			keys := make([]string, 0, len(loaded))
			for k := range loaded {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}

		store, err := settings.Open(settingsPath(cmd))
		if err != nil {
			return err
		}
		container = app.New(store, loaded)
		return nil
	},
}

// settingsPath resolves the settings file location: flag, then viper
// config, then the per-user default.
func settingsPath(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("settings"); p != "" {
		return p
	}
	if p := viper.GetString("settings"); p != "" {
		return p
	}
	return filepath.Join(configDir(), "settings.yaml")
}

// historyPath resolves the search-history database location.
func historyPath() string {
	if p := viper.GetString("history"); p != "" {
		return p
	}
	return filepath.Join(configDir(), "history.db")
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "recoll-search")
}

// openHistory opens the MRU search-history store, sized from the
// persisted settings.
func openHistory() (*history.Store, error) {
	return history.Open(historyPath(), container.LiveSettings().EffectiveHistorySize())
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./recoll-search.yaml or ~/.config/recoll-search/config.yaml)")
	rootCmd.PersistentFlags().String("settings", "", "settings file (default: ~/.config/recoll-search/settings.yaml)")
	rootCmd.PersistentFlags().String("secrets-dir", ".secrets/", "directory of password override files")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("recoll-search")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "recoll-search"))
		}
	}

	viper.SetEnvPrefix("RECOLL_SEARCH")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
