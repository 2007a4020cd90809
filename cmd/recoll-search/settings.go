// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/recoll-search/pkg/types"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change the client configuration",
	Long: `Settings manages the persisted client configuration: the server
connection, the search-history cap, the download directory, URL rewrite
rules and download accounts. Changes take effect immediately; other
running instances pick them up through the settings file.`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := container.Settings.Current()
		s.Connection.Password = mask(s.Connection.Password)
		// Mask a copy: the store's own account slice must keep its passwords.
		accounts := make([]types.DownloadAccount, len(s.DownloadAccounts))
		copy(accounts, s.DownloadAccounts)
		for i := range accounts {
			accounts[i].Password = mask(accounts[i].Password)
		}
		s.DownloadAccounts = accounts
		out, err := yaml.Marshal(s)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "# %s\n%s", container.Settings.Path(), out)
		return nil
	},
}

func mask(password string) string {
	if password == "" {
		return ""
	}
	return "********"
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change configuration values",
	Long: `Set updates the given configuration values and persists them. The
server URL must use https; plain http is rejected.

Examples:
  recoll-search settings set --url https://recoll.example.org:8080/ --username alice --password s3cret
  recoll-search settings set --history-size 50 --download-dir ~/Downloads
  recoll-search settings set --add-rewrite 'file:///home/(.*)=https://files.example.org/$1'
  recoll-search settings set --add-account 'mirror=https://files.example.org/=alice=s3cret'`,
	RunE: runSettingsSet,
}

func init() {
	settingsSetCmd.Flags().String("url", "", "recoll server base URL (https)")
	settingsSetCmd.Flags().String("username", "", "recoll server username")
	settingsSetCmd.Flags().String("password", "", "recoll server password")
	settingsSetCmd.Flags().Int("history-size", 0, "search history cap")
	settingsSetCmd.Flags().String("download-dir", "", "directory downloads are written to")
	settingsSetCmd.Flags().StringArray("add-rewrite", nil, "append a URL rewrite rule, PATTERN=REPLACEMENT")
	settingsSetCmd.Flags().Bool("clear-rewrites", false, "drop all URL rewrite rules")
	settingsSetCmd.Flags().StringArray("add-account", nil, "append a download account, NAME=URLPREFIX=USER=PASSWORD")
	settingsSetCmd.Flags().Bool("clear-accounts", false, "drop all download accounts")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	rewrites, _ := cmd.Flags().GetStringArray("add-rewrite")
	accounts, _ := cmd.Flags().GetStringArray("add-account")

	newRules := make([]types.RewriteRule, 0, len(rewrites))
	for _, spec := range rewrites {
		pattern, replacement, ok := strings.Cut(spec, "=")
		if !ok {
			return fmt.Errorf("rewrite rule %q: want PATTERN=REPLACEMENT", spec)
		}
		newRules = append(newRules, types.RewriteRule{Search: pattern, Replace: replacement})
	}

	newAccounts := make([]types.DownloadAccount, 0, len(accounts))
	for _, spec := range accounts {
		parts := strings.SplitN(spec, "=", 4)
		if len(parts) != 4 {
			return fmt.Errorf("download account %q: want NAME=URLPREFIX=USER=PASSWORD", spec)
		}
		newAccounts = append(newAccounts, types.DownloadAccount{
			Name: parts[0], BaseURL: parts[1], Username: parts[2], Password: parts[3],
		})
	}

	err := container.Settings.Update(func(s *types.Settings) {
		if v, _ := cmd.Flags().GetString("url"); v != "" {
			s.Connection.BaseURL = v
		}
		if v, _ := cmd.Flags().GetString("username"); v != "" {
			s.Connection.Username = v
		}
		if v, _ := cmd.Flags().GetString("password"); v != "" {
			s.Connection.Password = v
		}
		if v, _ := cmd.Flags().GetInt("history-size"); v > 0 {
			s.HistorySize = v
		}
		if v, _ := cmd.Flags().GetString("download-dir"); v != "" {
			s.DownloadDir = v
		}
		if clear, _ := cmd.Flags().GetBool("clear-rewrites"); clear {
			s.Rewrites = nil
		}
		if clear, _ := cmd.Flags().GetBool("clear-accounts"); clear {
			s.DownloadAccounts = nil
		}
		s.Rewrites = append(s.Rewrites, newRules...)
		s.DownloadAccounts = append(s.DownloadAccounts, newAccounts...)
	})
	if err != nil {
		return err
	}

	// A bad URL surfaces on the error latch when the new connection is
	// applied; report it here instead of failing silently.
	container.ApplyCurrent()
	if appErr := container.Errors.Current(); appErr != nil {
		container.Errors.Clear()
		return fmt.Errorf("settings saved, but: %s: %w", appErr.Msg, appErr.Err)
	}
	fmt.Println("Settings updated.")
	return nil
}
