// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/pdiddy/arxiv-mcp/internal/arxiv"
	"github.com/pdiddy/arxiv-mcp/pkg/types"
)

const (
	defaultMaxResults = 10
	defaultBatchSize  = 10

	dateLayout = "2006-01-02"
)

// SearchArgs defines the input for search_papers.
type SearchArgs struct {
	Query      string   `json:"query" jsonschema:"Search query. Plain terms match all fields; use specifiers like ti:, au:, abs:, cat: for targeted searches."`
	MaxResults int      `json:"max_results,omitempty" jsonschema:"Maximum number of papers to return (default 10)"`
	DateFrom   string   `json:"date_from,omitempty" jsonschema:"Earliest publication date, YYYY-MM-DD, inclusive"`
	DateTo     string   `json:"date_to,omitempty" jsonschema:"Latest publication date, YYYY-MM-DD, inclusive"`
	Categories []string `json:"categories,omitempty" jsonschema:"arXiv categories to restrict results to (e.g. cs.AI, cs.LG)"`
	BatchSize  int      `json:"batch_size,omitempty" jsonschema:"Number of results processed per batch (default 10)"`
}

// PaperSummary is one search result.
type PaperSummary struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Authors     []string `json:"authors"`
	Abstract    string   `json:"abstract"`
	Categories  []string `json:"categories"`
	Published   string   `json:"published"`
	URL         string   `json:"url"`
	ResourceURI string   `json:"resource_uri"`
}

// SearchResult is the output of search_papers.
type SearchResult struct {
	Status       string         `json:"status"`
	TotalResults int            `json:"total_results"`
	Papers       []PaperSummary `json:"papers"`
}

func (s *Server) handleSearch(ctx context.Context, req *mcp.CallToolRequest, args SearchArgs) (*mcp.CallToolResult, any, error) {
	if args.Query == "" {
		return nil, errorPayload("%v", &ValidationError{Field: "query", Reason: "must not be empty"}), nil
	}

	from, to, err := parseDateRange(args.DateFrom, args.DateTo)
	if err != nil {
		return nil, errorPayload("%v", err), nil
	}

	params := arxiv.SearchParams{
		Query:      args.Query,
		MaxResults: clamp(args.MaxResults, defaultMaxResults, s.cfg.Search.MaxResultsCap),
		BatchSize:  clamp(args.BatchSize, defaultBatchSize, s.cfg.Search.BatchSizeCap),
		DateFrom:   from,
		DateTo:     to,
		Categories: args.Categories,
	}

	papers, err := s.source.Search(ctx, params)
	if err != nil {
		return nil, errorPayload("search failed: %v", err), nil
	}

	out := SearchResult{Status: "success", TotalResults: len(papers), Papers: []PaperSummary{}}
	for _, p := range papers {
		out.Papers = append(out.Papers, paperSummary(p))
	}
	return nil, out, nil
}

// DownloadArgs defines the input for download_paper.
type DownloadArgs struct {
	PaperID string `json:"paper_id" jsonschema:"arXiv paper ID (e.g. 2301.07041)"`
}

// DownloadResult is the output of download_paper.
type DownloadResult struct {
	Status      string `json:"status"`
	ResourceURI string `json:"resource_uri"`
	Message     string `json:"message"`
}

func (s *Server) handleDownload(ctx context.Context, req *mcp.CallToolRequest, args DownloadArgs) (*mcp.CallToolResult, any, error) {
	id, ok := arxiv.NormalizeID(args.PaperID)
	if !ok {
		return nil, errorPayload("%v", &ValidationError{Field: "paper_id", Reason: fmt.Sprintf("%q is not an arXiv ID", args.PaperID)}), nil
	}

	if s.store.Has(id, types.FormatPDF) {
		return nil, DownloadResult{
			Status:      "success",
			ResourceURI: resourceURI(id),
			Message:     fmt.Sprintf("paper %s already available", id),
		}, nil
	}

	meta, err := s.source.FetchMetadata(ctx, id)
	if err != nil {
		if errors.Is(err, arxiv.ErrNotFound) {
			return nil, errorPayload("paper %s not found", id), nil
		}
		return nil, errorPayload("fetching metadata for %s: %v", id, err), nil
	}
	// Index failures do not block the download.
	if s.meta != nil {
		s.meta.Put(ctx, meta)
	}

	if _, _, err := s.resolver.GetOrFetch(ctx, id, types.FormatPDF); err != nil {
		if errors.Is(err, arxiv.ErrNotFound) {
			return nil, errorPayload("paper %s not found", id), nil
		}
		return nil, errorPayload("downloading %s: %v", id, err), nil
	}

	return nil, DownloadResult{
		Status:      "success",
		ResourceURI: resourceURI(id),
		Message:     fmt.Sprintf("paper %s downloaded", id),
	}, nil
}

// ListArgs defines the input for list_papers.
type ListArgs struct{}

// Resource describes one stored paper.
type Resource struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MimeType    string `json:"mimeType"`
}

// ListResult is the output of list_papers.
type ListResult struct {
	Status         string     `json:"status"`
	TotalResources int        `json:"total_resources"`
	Resources      []Resource `json:"resources"`
}

func (s *Server) handleList(ctx context.Context, req *mcp.CallToolRequest, args ListArgs) (*mcp.CallToolResult, any, error) {
	pdfIDs, err := s.store.ListIDs(types.FormatPDF)
	if err != nil {
		return nil, errorPayload("listing storage: %v", err), nil
	}
	mdIDs, err := s.store.ListIDs(types.FormatMarkdown)
	if err != nil {
		return nil, errorPayload("listing storage: %v", err), nil
	}

	seen := make(map[string]bool)
	var ids []string
	for _, id := range append(pdfIDs, mdIDs...) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	out := ListResult{Status: "success", Resources: []Resource{}}
	for _, id := range ids {
		res := Resource{URI: resourceURI(id), Name: id, MimeType: "text/markdown"}
		if s.store.Has(id, types.FormatPDF) {
			res.MimeType = "application/pdf"
		}
		if meta, ok := s.lookupMetadata(ctx, id); ok {
			res.Name = meta.Title
			res.Description = meta.Abstract
		}
		out.Resources = append(out.Resources, res)
	}
	out.TotalResources = len(out.Resources)
	return nil, out, nil
}

// lookupMetadata serves display metadata from the local index, falling back
// to the API for papers stored before the index existed.
func (s *Server) lookupMetadata(ctx context.Context, id string) (*types.PaperMetadata, bool) {
	if s.meta != nil {
		if meta, ok, err := s.meta.Get(ctx, id); err == nil && ok {
			return meta, true
		}
	}
	meta, err := s.source.FetchMetadata(ctx, id)
	if err != nil {
		return nil, false
	}
	if s.meta != nil {
		s.meta.Put(ctx, meta)
	}
	return meta, true
}

// GetArgs defines the input for get_paper.
type GetArgs struct {
	PaperID string `json:"paper_id" jsonschema:"arXiv paper ID (e.g. 2301.07041)"`
}

// GetResult is the output of get_paper.
type GetResult struct {
	Status  string `json:"status"`
	PaperID string `json:"paper_id"`
	Content string `json:"content"`
	Source  string `json:"source"`
	Cached  bool   `json:"cached"`
}

func (s *Server) handleGet(ctx context.Context, req *mcp.CallToolRequest, args GetArgs) (*mcp.CallToolResult, any, error) {
	id, ok := arxiv.NormalizeID(args.PaperID)
	if !ok {
		return nil, errorPayload("%v", &ValidationError{Field: "paper_id", Reason: fmt.Sprintf("%q is not an arXiv ID", args.PaperID)}), nil
	}

	content, cached, err := s.resolver.GetOrFetch(ctx, id, types.FormatMarkdown)
	if err != nil {
		if errors.Is(err, arxiv.ErrNotFound) {
			return nil, errorPayload("paper %s not found", id), nil
		}
		return nil, errorPayload("fetching %s: %v", id, err), nil
	}

	source := "arxiv"
	if cached {
		source = "cache"
	}
	return nil, GetResult{
		Status:  "success",
		PaperID: id,
		Content: string(content),
		Source:  source,
		Cached:  cached,
	}, nil
}

func resourceURI(id string) string {
	return "arxiv://" + id
}

func paperSummary(p types.PaperMetadata) PaperSummary {
	published := ""
	if !p.Published.IsZero() {
		published = p.Published.UTC().Format(time.RFC3339)
	}
	return PaperSummary{
		ID:          p.ID,
		Title:       p.Title,
		Authors:     p.Authors,
		Abstract:    p.Abstract,
		Categories:  p.Categories,
		Published:   published,
		URL:         p.URL,
		ResourceURI: resourceURI(p.ID),
	}
}

// parseDateRange validates the tool's date filters before any network
// access. The end date is extended to the end of its day so both bounds are
// inclusive.
func parseDateRange(fromStr, toStr string) (from, to time.Time, err error) {
	if fromStr != "" {
		from, err = time.Parse(dateLayout, fromStr)
		if err != nil {
			return time.Time{}, time.Time{}, &ValidationError{Field: "date_from", Reason: fmt.Sprintf("%q is not a YYYY-MM-DD date", fromStr)}
		}
	}
	if toStr != "" {
		to, err = time.Parse(dateLayout, toStr)
		if err != nil {
			return time.Time{}, time.Time{}, &ValidationError{Field: "date_to", Reason: fmt.Sprintf("%q is not a YYYY-MM-DD date", toStr)}
		}
		to = to.Add(24*time.Hour - time.Nanosecond)
	}
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return time.Time{}, time.Time{}, &ValidationError{Field: "date_from", Reason: "must not be after date_to"}
	}
	return from, to, nil
}

func clamp(requested, def, ceiling int) int {
	if requested <= 0 {
		requested = def
	}
	if ceiling > 0 && requested > ceiling {
		return ceiling
	}
	return requested
}
