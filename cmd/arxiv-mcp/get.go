package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-mcp/internal/arxiv"
	"github.com/pdiddy/arxiv-mcp/pkg/types"
)

var getCmd = &cobra.Command{
	Use:   "get <paper-id>",
	Short: "Print a paper's content as markdown",
	Long: `Get prints a paper's content as markdown on stdout. The first access
fetches the paper's HTML rendering from arXiv and converts it; later
accesses are served from local storage.`,
	Args: cobra.ExactArgs(1),
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

		content, cached, err := c.resolver.GetOrFetch(cmd.Context(), id, types.FormatMarkdown)
		if err != nil {
			if errors.Is(err, arxiv.ErrNotFound) {
				return fmt.Errorf("paper %s not found", id)
			}
			return fmt.Errorf("fetching %s: %w", id, err)
		}

		if cached {
			fmt.Fprintf(os.Stderr, "serving %s from local storage\n", id)
		}
		fmt.Print(string(content))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
}
