package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-mcp/internal/arxiv"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search arXiv for papers",
	Long: `Search queries the arXiv API for papers matching a query. Plain terms
match all fields; use specifiers like ti:, au:, abs:, cat: for targeted
searches. Results can be filtered by publication date and category.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newComponents()
		if err != nil {
			return err
		}
		defer c.close()

		maxResults, _ := cmd.Flags().GetInt("max-results")
		batchSize, _ := cmd.Flags().GetInt("batch-size")
		fromStr, _ := cmd.Flags().GetString("from")
		toStr, _ := cmd.Flags().GetString("to")
		categories, _ := cmd.Flags().GetStringSlice("category")
		asJSON, _ := cmd.Flags().GetBool("json")

		var from, to time.Time
		if fromStr != "" {
			if from, err = time.Parse("2006-01-02", fromStr); err != nil {
				return fmt.Errorf("invalid --from date %q (want YYYY-MM-DD)", fromStr)
			}
		}
		if toStr != "" {
			if to, err = time.Parse("2006-01-02", toStr); err != nil {
				return fmt.Errorf("invalid --to date %q (want YYYY-MM-DD)", toStr)
			}
			to = to.Add(24*time.Hour - time.Nanosecond)
		}
		if !from.IsZero() && !to.IsZero() && from.After(to) {
			return fmt.Errorf("--from must not be after --to")
		}

		papers, err := c.client.Search(cmd.Context(), arxiv.SearchParams{
			Query:      args[0],
			MaxResults: maxResults,
			BatchSize:  batchSize,
			DateFrom:   from,
			DateTo:     to,
			Categories: categories,
		})
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(papers)
		}

		for _, p := range papers {
			fmt.Printf("%s  %s\n", p.ID, p.Title)
			fmt.Printf("    %s | %s\n", p.Published.Format("2006-01-02"), strings.Join(p.Categories, ", "))
		}
		fmt.Fprintf(os.Stderr, "%d results\n", len(papers))
		return nil
	},
}

func init() {
	searchCmd.Flags().Int("max-results", 10, "maximum number of results to return")
	searchCmd.Flags().Int("batch-size", 10, "number of results processed per batch")
	searchCmd.Flags().String("from", "", "earliest publication date (YYYY-MM-DD)")
	searchCmd.Flags().String("to", "", "latest publication date (YYYY-MM-DD)")
	searchCmd.Flags().StringSlice("category", nil, "restrict to arXiv categories (repeatable)")
	searchCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(searchCmd)
}
