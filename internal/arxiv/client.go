// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package arxiv talks to the remote arXiv source: metadata search over the
// export API and paper content retrieval (PDF, HTML rendering).
package arxiv

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/arxiv-mcp/internal/httputil"
	"github.com/pdiddy/arxiv-mcp/pkg/types"
)

// Base URLs for the arXiv endpoints. Declared as vars so tests can
// substitute httptest servers.
var (
	apiBase  = "https://export.arxiv.org/api/query"
	pdfBase  = "https://arxiv.org/pdf/"
	htmlBase = "https://arxiv.org/html/"
	absBase  = "https://arxiv.org/abs/"
)

// ErrNotFound indicates the paper ID does not exist at the remote source,
// as opposed to a network or parse failure.
var ErrNotFound = errors.New("paper not found on arXiv")

// idPattern matches arXiv IDs: "2301.07041", "arXiv:2301.07041", "2301.07041v2".
var idPattern = regexp.MustCompile(`^(?:arXiv:)?(\d{4}\.\d{4,5}(?:v\d+)?)$`)

// Client queries the arXiv API and content endpoints.
type Client struct {
	http  *http.Client
	cfg   types.SearchConfig
	retry httputil.Policy
}

// NewClient builds a Client from the search configuration.
func NewClient(cfg types.SearchConfig) *Client {
	return &Client{
		http:  &http.Client{Timeout: cfg.Timeout},
		cfg:   cfg,
		retry: httputil.Policy{MaxRetries: cfg.MaxRetries},
	}
}

// NormalizeID validates an identifier and strips the optional "arXiv:"
// prefix. It returns ok=false for strings that are not arXiv IDs.
func NormalizeID(id string) (string, bool) {
	m := idPattern.FindStringSubmatch(strings.TrimSpace(id))
	if m == nil {
		return "", false
	}
	return m[1], true
}

// PDFURL returns the deterministic PDF download URL for a paper ID.
// It performs no I/O.
func (c *Client) PDFURL(id string) string {
	return pdfBase + id
}

// FetchMetadata retrieves metadata for a single paper by ID. It returns
// ErrNotFound when the ID is unknown to arXiv.
func (c *Client) FetchMetadata(ctx context.Context, id string) (*types.PaperMetadata, error) {
	u := apiBase + "?" + url.Values{"id_list": {id}}.Encode()

	feed, err := c.fetchFeed(ctx, u)
	if err != nil {
		return nil, err
	}

	for _, entry := range feed.Entries {
		meta := entryMetadata(entry)
		if meta.ID != "" {
			return &meta, nil
		}
	}
	// The API answers an unknown ID with an empty feed or a stub entry
	// whose <id> carries no /abs/ path.
	return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
}

// FetchPDF downloads the paper's PDF and returns the raw bytes.
func (c *Client) FetchPDF(ctx context.Context, id string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.PDFURL(id), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Accept", "application/pdf")

	resp, err := c.retry.Do(ctx, c.http, req)
	if err != nil {
		return nil, fmt.Errorf("PDF request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("PDF download returned HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading PDF body: %w", err)
	}
	return data, nil
}

// fetchFeed performs a GET against the export API and decodes the Atom feed.
func (c *Client) fetchFeed(ctx context.Context, u string) (*atomFeed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.retry.Do(ctx, c.http, req)
	if err != nil {
		return nil, fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode)
	}

	var feed atomFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("parsing arXiv response: %w", err)
	}
	return &feed, nil
}

// arXiv Atom feed XML structures.
type atomFeed struct {
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	ID         string         `xml:"id"`
	Title      string         `xml:"title"`
	Summary    string         `xml:"summary"`
	Published  string         `xml:"published"`
	Authors    []atomAuthor   `xml:"author"`
	Categories []atomCategory `xml:"category"`
	Links      []atomLink     `xml:"link"`
}

type atomAuthor struct {
	Name string `xml:"name"`
}

type atomCategory struct {
	Term string `xml:"term,attr"`
}

type atomLink struct {
	Href  string `xml:"href,attr"`
	Title string `xml:"title,attr"`
}

// entryMetadata maps one feed entry to PaperMetadata. Entries without a
// recognizable ID produce a zero-ID result the caller must skip.
func entryMetadata(entry atomEntry) types.PaperMetadata {
	id := extractID(entry.ID)
	meta := types.PaperMetadata{
		ID:       id,
		Title:    strings.Join(strings.Fields(entry.Title), " "),
		Abstract: strings.TrimSpace(entry.Summary),
		URL:      absBase + id,
		PDFURL:   pdfBase + id,
	}

	for _, a := range entry.Authors {
		meta.Authors = append(meta.Authors, strings.TrimSpace(a.Name))
	}
	for _, c := range entry.Categories {
		if c.Term != "" {
			meta.Categories = append(meta.Categories, c.Term)
		}
	}
	for _, l := range entry.Links {
		if l.Title == "pdf" && l.Href != "" {
			meta.PDFURL = l.Href
		}
	}

	if t, parseErr := time.Parse(time.RFC3339, entry.Published); parseErr == nil {
		meta.Published = t.UTC()
	}
	return meta
}

// extractID pulls the arXiv ID from the entry's <id> URL
// (e.g. "http://arxiv.org/abs/2301.07041v1" → "2301.07041").
func extractID(idURL string) string {
	const prefix = "/abs/"
	idx := strings.Index(idURL, prefix)
	if idx < 0 {
		return ""
	}
	id := idURL[idx+len(prefix):]

	// Strip version suffix (e.g. "v1", "v2").
	if vIdx := strings.LastIndex(id, "v"); vIdx > 0 {
		if _, err := strconv.Atoi(id[vIdx+1:]); err == nil {
			id = id[:vIdx]
		}
	}
	return id
}
