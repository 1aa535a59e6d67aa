// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the paper store, resolver, and search client as
// MCP tools and prompts over stdio.
package server

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/pdiddy/arxiv-mcp/internal/arxiv"
	"github.com/pdiddy/arxiv-mcp/internal/metadata"
	"github.com/pdiddy/arxiv-mcp/internal/resolver"
	"github.com/pdiddy/arxiv-mcp/internal/storage"
	"github.com/pdiddy/arxiv-mcp/pkg/types"
)

// PaperSource is the remote API surface the tools need. *arxiv.Client
// satisfies it.
type PaperSource interface {
	resolver.Fetcher
	Search(ctx context.Context, p arxiv.SearchParams) ([]types.PaperMetadata, error)
}

// Server wires the MCP surface to the storage, resolver, and search
// components.
type Server struct {
	cfg      types.Config
	store    *storage.Store
	resolver *resolver.Resolver
	source   PaperSource
	meta     *metadata.Store

	server *mcp.Server
}

// NewServer builds the MCP server and registers its tools and prompts.
func NewServer(cfg types.Config, store *storage.Store, res *resolver.Resolver, source PaperSource, meta *metadata.Store) *Server {
	s := &Server{
		cfg:      cfg,
		store:    store,
		resolver: res,
		source:   source,
		meta:     meta,
	}

	impl := &mcp.Implementation{
		Name:    cfg.AppName,
		Version: cfg.AppVersion,
	}

	s.server = mcp.NewServer(impl, nil)
	s.registerTools()
	s.registerPrompts()

	return s
}

// Run serves MCP over stdio until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: "search_papers",
		Description: "Search arXiv for papers matching a query. Supports date-range and " +
			"category filtering. Returns paper metadata including resource URIs for " +
			"downloading. Use field specifiers (ti:, au:, abs:, cat:) for targeted " +
			"queries; plain terms match all fields.",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name: "download_paper",
		Description: "Download a paper's PDF into local storage by arXiv ID " +
			"(e.g. 2301.07041). Downloading an already stored paper succeeds " +
			"immediately without refetching.",
	}, s.handleDownload)

	mcp.AddTool(s.server, &mcp.Tool{
		Name: "list_papers",
		Description: "List all papers available in local storage, with display " +
			"metadata and resource URIs.",
	}, s.handleList)

	mcp.AddTool(s.server, &mcp.Tool{
		Name: "get_paper",
		Description: "Read a paper's content as markdown by arXiv ID. Fetches and " +
			"converts the paper on first access, then serves from local storage.",
	}, s.handleGet)
}
