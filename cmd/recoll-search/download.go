// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/recoll-search/internal/app"
	"github.com/pdiddy/recoll-search/internal/download"
)

var downloadCmd = &cobra.Command{
	Use:   "download [query terms...]",
	Short: "Download the document behind one result",
	Long: `Download fetches the file behind a single search result, identified by
its index in the result list (--idx). The result's URL goes through the
configured rewrite rules first, then the download uses the credentials of
the first matching download account.

For results embedded in another file (attachments, archive members) pass
--embedded: the server extracts the document before the download.`,
	RunE: runDownload,
}

func init() {
	downloadCmd.Flags().Int("idx", 0, "result index within the query's result list")
	downloadCmd.Flags().Bool("embedded", false, "extract an embedded document before downloading")
	downloadCmd.Flags().String("dir", "", "destination directory (default: configured download_dir)")

	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, args []string) error {
	queryStr, err := queryFromArgs(args)
	if err != nil {
		return err
	}
	idx, _ := cmd.Flags().GetInt("idx")
	embedded, _ := cmd.Flags().GetBool("embedded")
	dir, _ := cmd.Flags().GetString("dir")

	ctx := context.Background()
	res, err := resultAt(ctx, queryStr, idx)
	if err != nil {
		return err
	}

	s := container.LiveSettings()
	if dir != "" {
		s.DownloadDir = dir
	}

	var path string
	if embedded {
		path, err = download.Embedded(ctx, container.Repository, res, s)
	} else {
		path, err = download.Result(ctx, res, s)
	}
	if err != nil {
		return err
	}

	container.Downloads.Signal(app.DownloadedDocument{Path: path, MimeType: res.MType.String()})
	fmt.Println(path)
	return nil
}
