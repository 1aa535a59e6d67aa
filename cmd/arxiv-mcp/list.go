package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-mcp/pkg/types"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List papers in local storage",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newComponents()
		if err != nil {
			return err
		}
		defer c.close()

		pdfIDs, err := c.store.ListIDs(types.FormatPDF)
		if err != nil {
			return err
		}
		mdIDs, err := c.store.ListIDs(types.FormatMarkdown)
		if err != nil {
			return err
		}

		seen := make(map[string]bool)
		count := 0
		for _, id := range append(pdfIDs, mdIDs...) {
			if seen[id] {
				continue
			}
			seen[id] = true
			count++

			title := ""
			if meta, ok, err := c.meta.Get(cmd.Context(), id); err == nil && ok {
				title = meta.Title
			}
			formats := ""
			if c.store.Has(id, types.FormatPDF) {
				formats = "pdf"
			}
			if c.store.Has(id, types.FormatMarkdown) {
				if formats != "" {
					formats += ",md"
				} else {
					formats = "md"
				}
			}
			fmt.Printf("%s  [%s]  %s\n", id, formats, title)
		}
		fmt.Fprintf(os.Stderr, "%d papers in %s\n", count, c.cfg.Storage.PapersDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
