// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show or clear the search history",
	Long: `History lists past queries, most recent first. Re-running a query moves
it back to the top; the list is capped at the configured history_size.`,
	RunE: runHistoryList,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all recorded searches",
	RunE: func(cmd *cobra.Command, args []string) error {
		hist, err := openHistory()
		if err != nil {
			return err
		}
		defer hist.Close()
		return hist.Clear(context.Background())
	},
}

func init() {
	historyCmd.Flags().Int("limit", 0, "maximum entries to show (0 = all)")

	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	hist, err := openHistory()
	if err != nil {
		return err
	}
	defer hist.Close()

	queries, err := hist.Recent(context.Background(), limit)
	if err != nil {
		return err
	}
	if len(queries) == 0 {
		fmt.Println("No search history.")
		return nil
	}
	for i, q := range queries {
		fmt.Printf("%3d  %s\n", i+1, q)
	}
	return nil
}
