// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/recoll-search/internal/query"
	"github.com/pdiddy/recoll-search/pkg/types"
)

var previewCmd = &cobra.Command{
	Use:   "preview [query terms...]",
	Short: "Show the server-rendered text preview of one result",
	Long: `Preview fetches the plain-text rendering of a single search result,
identified by its index in the result list (--idx). Query-term hits are
highlighted.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().Int("idx", 0, "result index within the query's result list")
	previewCmd.Flags().Bool("no-color", false, "strip highlight markers instead of colouring them")

	rootCmd.AddCommand(previewCmd)
}

// resultAt fetches the single result at index idx of queryStr's result
// list.
func resultAt(ctx context.Context, queryStr string, idx int) (*types.SearchResult, error) {
	rs, err := container.Repository.ExecuteQuery(ctx, queryStr, idx, idx)
	if err != nil {
		return nil, err
	}
	if rs.Error != "" {
		return nil, fmt.Errorf("search failed: %s", rs.Error)
	}
	if len(rs.Page) == 0 {
		return nil, fmt.Errorf("no result at index %d (result list has %d entries)", idx, rs.Size)
	}
	return rs.Page[0], nil
}

func runPreview(cmd *cobra.Command, args []string) error {
	queryStr, err := queryFromArgs(args)
	if err != nil {
		return err
	}
	idx, _ := cmd.Flags().GetInt("idx")
	noColor, _ := cmd.Flags().GetBool("no-color")

	ctx := context.Background()
	res, err := resultAt(ctx, queryStr, idx)
	if err != nil {
		return err
	}
	pv, err := container.Repository.RetrievePreview(ctx, res)
	if err != nil {
		return err
	}

	text := pv.Text
	if noColor {
		text = query.StripHighlight(text)
	} else {
		text = query.HighlightANSI(text)
	}
	fmt.Println(text)
	return nil
}
