// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package arxiv

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pdiddy/arxiv-mcp/pkg/types"
)

// pageSize is the number of feed entries requested per API page. A var so
// tests can exercise multi-page iteration with small feeds.
var pageSize = 100

// SearchParams holds the parameters for one search call. Zero DateFrom/
// DateTo mean unbounded; both bounds are inclusive.
type SearchParams struct {
	Query      string
	MaxResults int
	BatchSize  int
	DateFrom   time.Time
	DateTo     time.Time
	Categories []string
}

// Search queries the export API and returns up to MaxResults papers,
// ordered by submission date descending (ordering is delegated to the API).
//
// The API has no date filter, so filtering happens client-side: the feed is
// consumed page by page, entries outside [DateFrom, DateTo] are dropped,
// and survivors are grouped into batches of BatchSize. Entries within a
// batch are converted concurrently; batches are processed in order, so the
// result keeps the remote ordering and iteration stops as soon as
// MaxResults post-filter results exist. BatchSize changes only the internal
// grouping, never the result set.
func (c *Client) Search(ctx context.Context, p SearchParams) ([]types.PaperMetadata, error) {
	maxResults := p.MaxResults
	if maxResults <= 0 {
		maxResults = 10
	}
	batchSize := p.BatchSize
	if batchSize <= 0 {
		batchSize = 10
	}

	query := buildQuery(p.Query, p.Categories)

	var results []types.PaperMetadata
	var batch []atomEntry

	flush := func() {
		results = append(results, convertBatch(batch)...)
		batch = batch[:0]
	}

	for start := 0; len(results) < maxResults; start += pageSize {
		entries, err := c.fetchPage(ctx, query, start)
		if err != nil {
			return nil, err
		}
		if len(entries) == 0 {
			break
		}

		for _, entry := range entries {
			if !inDateRange(entry, p.DateFrom, p.DateTo) {
				continue
			}
			batch = append(batch, entry)
			if len(batch) >= batchSize {
				flush()
				if len(results) >= maxResults {
					break
				}
			}
		}
		if len(results) >= maxResults {
			break
		}

		// A short page means the feed is exhausted.
		if len(entries) < pageSize {
			break
		}
	}

	// Flush the partial batch accumulated when the feed ran out.
	if len(batch) > 0 && len(results) < maxResults {
		flush()
	}

	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results, nil
}

// fetchPage retrieves one page of search results sorted by submission date
// descending.
func (c *Client) fetchPage(ctx context.Context, query string, start int) ([]atomEntry, error) {
	u := apiBase + "?" + url.Values{
		"search_query": {query},
		"start":        {strconv.Itoa(start)},
		"max_results":  {strconv.Itoa(pageSize)},
		"sortBy":       {"submittedDate"},
		"sortOrder":    {"descending"},
	}.Encode()

	feed, err := c.fetchFeed(ctx, u)
	if err != nil {
		return nil, err
	}
	return feed.Entries, nil
}

// convertBatch maps a batch of feed entries to metadata. Items within a
// batch have no ordering dependency, so conversion runs concurrently;
// output order still matches input order.
func convertBatch(batch []atomEntry) []types.PaperMetadata {
	converted := make([]types.PaperMetadata, len(batch))
	var wg sync.WaitGroup
	for i, entry := range batch {
		wg.Add(1)
		go func(i int, entry atomEntry) {
			defer wg.Done()
			converted[i] = entryMetadata(entry)
		}(i, entry)
	}
	wg.Wait()

	results := converted[:0]
	for _, meta := range converted {
		if meta.ID != "" {
			results = append(results, meta)
		}
	}
	return results
}

// inDateRange reports whether the entry's publication instant, normalized
// to UTC, falls within the inclusive [from, to] window. Entries whose
// timestamp cannot be parsed are dropped when a bound is set.
func inDateRange(entry atomEntry, from, to time.Time) bool {
	if from.IsZero() && to.IsZero() {
		return true
	}
	pub, err := time.Parse(time.RFC3339, entry.Published)
	if err != nil {
		return false
	}
	pub = pub.UTC()
	if !from.IsZero() && pub.Before(from) {
		return false
	}
	if !to.IsZero() && pub.After(to) {
		return false
	}
	return true
}

// buildQuery constructs the search_query parameter. Plain terms get "all:"
// field specifiers for better relevance; queries that already carry a field
// specifier (e.g. "ti:attention") pass through unchanged. Categories are
// ORed together and ANDed with the base query.
func buildQuery(query string, categories []string) string {
	q := strings.TrimSpace(query)
	if q != "" && !strings.Contains(q, ":") {
		terms := strings.Fields(q)
		for i, t := range terms {
			terms[i] = "all:" + t
		}
		q = strings.Join(terms, " AND ")
	}

	if len(categories) > 0 {
		cats := make([]string, len(categories))
		for i, cat := range categories {
			cats[i] = "cat:" + cat
		}
		catExpr := strings.Join(cats, " OR ")
		if q == "" {
			return catExpr
		}
		q = "(" + q + ") AND (" + catExpr + ")"
	}
	return q
}
