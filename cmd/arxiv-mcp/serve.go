package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-mcp/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve MCP over stdio",
	Long: `Serve starts the MCP server on stdin/stdout. MCP clients configure this
command as the server executable; diagnostics go to stderr because the
transport owns stdout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newComponents()
		if err != nil {
			return err
		}
		defer c.close()

		srv := server.NewServer(c.cfg, c.store, c.resolver, c.client, c.meta)
		fmt.Fprintf(os.Stderr, "arxiv-mcp %s serving on stdio (storage: %s)\n", version, c.cfg.Storage.PapersDir)
		return srv.Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
