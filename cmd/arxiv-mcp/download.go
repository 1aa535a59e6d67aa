package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-mcp/internal/arxiv"
	"github.com/pdiddy/arxiv-mcp/pkg/types"
)

var downloadCmd = &cobra.Command{
	Use:   "download <paper-id>",
	Short: "Download a paper's PDF into local storage",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newComponents()
		if err != nil {
			return err
		}
		defer c.close()

		id, ok := arxiv.NormalizeID(args[0])
		if !ok {
			return fmt.Errorf("%q is not an arXiv ID", args[0])
		}

		if c.store.Has(id, types.FormatPDF) {
			fmt.Fprintf(os.Stderr, "paper %s already available\n", id)
			fmt.Println(c.store.PathFor(id, types.FormatPDF))
			return nil
		}

		meta, err := c.client.FetchMetadata(cmd.Context(), id)
		if err != nil {
			if errors.Is(err, arxiv.ErrNotFound) {
				return fmt.Errorf("paper %s not found", id)
			}
			return fmt.Errorf("fetching metadata: %w", err)
		}
		c.meta.Put(cmd.Context(), meta)

		if _, _, err := c.resolver.GetOrFetch(cmd.Context(), id, types.FormatPDF); err != nil {
			return fmt.Errorf("downloading %s: %w", id, err)
		}

		fmt.Fprintf(os.Stderr, "downloaded %s (%s)\n", id, meta.Title)
		fmt.Println(c.store.PathFor(id, types.FormatPDF))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(downloadCmd)
}
