// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package arxiv

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// FetchHTML retrieves the paper's HTML rendering from arxiv.org/html/ and
// converts it to markdown. It fails on network errors, non-2xx responses,
// and documents from which no content can be extracted.
func (c *Client) FetchHTML(ctx context.Context, id string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, htmlBase+id, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.retry.Do(ctx, c.http, req)
	if err != nil {
		return "", fmt.Errorf("arXiv HTML request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("arXiv HTML returned HTTP %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parsing HTML for %s: %w", id, err)
	}

	markdown := htmlToMarkdown(doc)
	if strings.TrimSpace(markdown) == "" {
		return "", fmt.Errorf("no content extracted from HTML for %s", id)
	}
	return markdown, nil
}

// htmlToMarkdown strips boilerplate from an arXiv HTML page, locates the
// main content container, and renders it as markdown.
func htmlToMarkdown(doc *goquery.Document) string {
	doc.Find("nav, header, footer, script, style, aside").Remove()
	// arXiv-specific navigation containers.
	doc.Find("div.abs-nav, div.leftcolumn, div.rightcolumn").Remove()

	// LaTeXML puts the paper body in ltx_page_main; fall back to the
	// document structure for other layouts.
	content := doc.Find("div.ltx_page_main").First()
	if content.Length() == 0 {
		content = doc.Find("main").First()
	}
	if content.Length() == 0 {
		content = doc.Find("body").First()
	}
	if content.Length() == 0 {
		content = doc.Selection
	}

	return renderMarkdown(content)
}
