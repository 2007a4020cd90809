// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract [query terms...]",
	Short: "Resolve the download location of an embedded document",
	Long: `Some results are documents embedded inside another file (an email
attachment, an archive member). Extract asks the server to unpack the
embedded document and prints the URL it can be fetched from. Use
"recoll-search download --embedded" to fetch it in one step.`,
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().Int("idx", 0, "result index within the query's result list")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	queryStr, err := queryFromArgs(args)
	if err != nil {
		return err
	}
	idx, _ := cmd.Flags().GetInt("idx")

	ctx := context.Background()
	res, err := resultAt(ctx, queryStr, idx)
	if err != nil {
		return err
	}
	if !res.Embedded() {
		return fmt.Errorf("result %d is a plain document, not an embedded one; download it directly", idx)
	}

	ex, err := container.Repository.RetrieveExtract(ctx, res)
	if err != nil {
		return err
	}
	if ex.Failed() {
		return fmt.Errorf("server could not extract the document: %s", ex.Msg)
	}
	fmt.Println(ex.URL)
	return nil
}
