// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/recoll-search/internal/paging"
	"github.com/pdiddy/recoll-search/internal/query"
	"github.com/pdiddy/recoll-search/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [query terms...]",
	Short: "Run a query against the recoll server and page through results",
	Long: `Search sends a ranged query to the recoll server and prints one block
per matching document. Results load page by page; --first and --count
select the window, --all walks the entire result list.

The query uses recoll's query language (see "recoll-search syntax").`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("mime", "", "restrict to a document type (e.g. application/pdf)")
	searchCmd.Flags().StringArray("exclude-mime", nil, "exclude a document type (repeatable)")
	searchCmd.Flags().String("from", "", "modification date range start (YYYY-MM-DD)")
	searchCmd.Flags().String("to", "", "modification date range end (YYYY-MM-DD)")
	searchCmd.Flags().Int("first", 0, "index of the first result to show")
	searchCmd.Flags().Int("count", 0, "number of results to show (default: one page)")
	searchCmd.Flags().Bool("all", false, "show every result")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	searchCmd.Flags().Bool("no-history", false, "do not record the query in search history")

	rootCmd.AddCommand(searchCmd)
}

// queryFromArgs joins the positional arguments into a query string.
func queryFromArgs(args []string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("provide a query (see \"recoll-search syntax\" for the query language)")
	}
	return strings.Join(args, " "), nil
}

// applyQueryFlags folds the filter flags into the query string.
func applyQueryFlags(cmd *cobra.Command, queryStr string) (string, error) {
	if mime, _ := cmd.Flags().GetString("mime"); mime != "" {
		queryStr = query.WithMime(queryStr, mime)
	}
	excluded, _ := cmd.Flags().GetStringArray("exclude-mime")
	for _, mime := range excluded {
		queryStr = query.WithoutMime(queryStr, mime)
	}

	fromStr, _ := cmd.Flags().GetString("from")
	toStr, _ := cmd.Flags().GetString("to")
	if fromStr != "" || toStr != "" {
		if fromStr == "" || toStr == "" {
			return "", fmt.Errorf("--from and --to must be given together")
		}
		from, err := time.Parse(query.DatePattern, fromStr)
		if err != nil {
			return "", fmt.Errorf("bad --from date %q: want YYYY-MM-DD", fromStr)
		}
		to, err := time.Parse(query.DatePattern, toStr)
		if err != nil {
			return "", fmt.Errorf("bad --to date %q: want YYYY-MM-DD", toStr)
		}
		queryStr = query.WithDateRange(queryStr, from, to)
	}
	return queryStr, nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	queryStr, err := queryFromArgs(args)
	if err != nil {
		return err
	}
	queryStr, err = applyQueryFlags(cmd, queryStr)
	if err != nil {
		return err
	}

	first, _ := cmd.Flags().GetInt("first")
	count, _ := cmd.Flags().GetInt("count")
	all, _ := cmd.Flags().GetBool("all")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	noHistory, _ := cmd.Flags().GetBool("no-history")

	ctx := context.Background()
	cfg := paging.DefaultConfig()
	if count == 0 {
		count = cfg.PageSize
	}

	window := paging.NewWindow(paging.New(container.Repository, queryStr, cfg))
	total, err := window.Total(ctx)
	if err != nil {
		return err
	}

	if !noHistory {
		recordHistory(ctx, queryStr)
	}

	last := first + count
	if all || last > total {
		last = total
	}

	if jsonOutput {
		return printSearchJSON(ctx, window, first, last, total)
	}

	if total == 0 {
		fmt.Println("No results found.")
		return nil
	}
	if first >= total {
		return fmt.Errorf("--first %d is past the end of the result list (%d results)", first, total)
	}
	for i := first; i < last; i++ {
		res, err := window.Get(ctx, i)
		if err != nil {
			return err
		}
		printResult(res)
	}
	fmt.Fprintf(os.Stdout, "%d-%d of %d results\n", first, last-1, total)
	return nil
}

func printSearchJSON(ctx context.Context, window *paging.Window, first, last, total int) error {
	results := make([]*types.SearchResult, 0, last-first)
	for i := first; i < last; i++ {
		res, err := window.Get(ctx, i)
		if err != nil {
			return err
		}
		results = append(results, res)
	}
	out := struct {
		Total   int                   `json:"total"`
		First   int                   `json:"first"`
		Results []*types.SearchResult `json:"results"`
	}{total, first, results}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func printResult(res *types.SearchResult) {
	title := query.OrBlank(res.Title, res.Filename)
	fmt.Fprintf(os.Stdout, "%4d. [%s] %s (%s, %s)\n",
		res.Index(), res.Relevancy, title, res.MType, query.ReadableSize(res.FBytes))
	fmt.Fprintf(os.Stdout, "      %s\n", res.URL)
	if res.Date().Unix() > 0 {
		fmt.Fprintf(os.Stdout, "      %s", res.Date().Format("2006-01-02 15:04"))
		if res.Author != "" && res.Author != types.UnknownStr {
			fmt.Fprintf(os.Stdout, "  %s", res.Author)
		}
		fmt.Fprintln(os.Stdout)
	}
	if abstract := strings.TrimSpace(query.CleanupHTML(res.Abstract)); abstract != "" && abstract != types.UnknownStr {
		fmt.Fprintf(os.Stdout, "      %s\n", query.HighlightANSI(abstract))
	}
}

// recordHistory is best effort: a broken history database must not fail
// the search itself.
func recordHistory(ctx context.Context, queryStr string) {
	hist, err := openHistory()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: search history unavailable: %v\n", err)
		return
	}
	defer hist.Close()
	if err := hist.Add(ctx, queryStr); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: recording search history: %v\n", err)
	}
}
