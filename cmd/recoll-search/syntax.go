// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

const syntaxHelp = `recoll query language quick reference

  word1 word2            documents containing all words (AND)
  word1 OR word2         either word
  "exact phrase"         the words in sequence
  term*                  wildcard expansion
  -word                  exclude documents containing word

Field filters:
  title:report           match in the document title
  author:smith           match in the author field
  filename:*.pdf         match the file name
  dir:/home/me/docs      restrict to a directory tree
  mime:application/pdf   restrict to a document type
  -mime:message/rfc822   exclude a document type
  date:2024-01-01/2024-06-30
                         restrict to a modification-date range

Size filters:
  size>100k  size<2M     restrict by document size

Full reference: https://www.recoll.org/usermanual/usermanual.html`

var syntaxCmd = &cobra.Command{
	Use:   "syntax",
	Short: "Show a recoll query language cheat sheet",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(syntaxHelp)
	},
}

func init() {
	rootCmd.AddCommand(syntaxCmd)
}
