// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/recoll-search/internal/query"
)

var snippetsCmd = &cobra.Command{
	Use:   "snippets [query terms...]",
	Short: "List keyword-in-context snippets for one result",
	Long: `Snippets fetches the per-keyword excerpt list for a single search
result, identified by its index in the result list (--idx). Each snippet
carries the page it occurs on, the matched keyword, and the surrounding
text.`,
	RunE: runSnippets,
}

func init() {
	snippetsCmd.Flags().Int("idx", 0, "result index within the query's result list")
	snippetsCmd.Flags().Bool("json", false, "output snippets as JSON")

	rootCmd.AddCommand(snippetsCmd)
}

func runSnippets(cmd *cobra.Command, args []string) error {
	queryStr, err := queryFromArgs(args)
	if err != nil {
		return err
	}
	idx, _ := cmd.Flags().GetInt("idx")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	ctx := context.Background()
	res, err := resultAt(ctx, queryStr, idx)
	if err != nil {
		return err
	}
	snips, err := container.Repository.RetrieveSnippets(ctx, res)
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(snips)
	}

	if len(snips) == 0 {
		fmt.Println("No snippets for this document.")
		return nil
	}
	for _, s := range snips {
		fmt.Fprintf(os.Stdout, "p.%-4d %-20s %s\n", s.Page, s.Keyword, query.HighlightANSI(s.Text))
	}
	return nil
}
