// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package arxiv

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// renderMarkdown walks the selection's DOM and emits markdown with a fixed
// dialect: ATX headings, "-" bullets, fenced code blocks. Links and images
// degrade to their text content. Runs of blank lines collapse to one.
func renderMarkdown(sel *goquery.Selection) string {
	var blocks []string
	for _, n := range sel.Nodes {
		renderBlocks(&blocks, n)
	}
	return strings.Join(blocks, "\n\n")
}

// renderBlocks appends one markdown block per block-level element found
// under n. Unknown containers are recursed into.
func renderBlocks(blocks *[]string, n *html.Node) {
	if n.Type == html.TextNode {
		if t := collapseSpace(n.Data); t != "" {
			*blocks = append(*blocks, t)
		}
		return
	}
	if n.Type != html.ElementNode && n.Type != html.DocumentNode {
		return
	}

	switch n.Data {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		level := int(n.Data[1] - '0')
		if text := inlineText(n); text != "" {
			*blocks = append(*blocks, strings.Repeat("#", level)+" "+text)
		}
	case "p":
		if text := inlineText(n); text != "" {
			*blocks = append(*blocks, text)
		}
	case "ul", "ol":
		if list := renderList(n); list != "" {
			*blocks = append(*blocks, list)
		}
	case "blockquote":
		if text := inlineText(n); text != "" {
			*blocks = append(*blocks, "> "+text)
		}
	case "pre":
		code := strings.Trim(rawText(n), "\n")
		if strings.TrimSpace(code) != "" {
			*blocks = append(*blocks, "```\n"+code+"\n```")
		}
	default:
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			renderBlocks(blocks, child)
		}
	}
}

// renderList emits one line per li. Unordered lists use "-"; ordered lists
// are numbered.
func renderList(n *html.Node) string {
	var lines []string
	index := 0
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != html.ElementNode || child.Data != "li" {
			continue
		}
		text := inlineText(child)
		if text == "" {
			continue
		}
		index++
		if n.Data == "ol" {
			lines = append(lines, fmt.Sprintf("%d. %s", index, text))
		} else {
			lines = append(lines, "- "+text)
		}
	}
	return strings.Join(lines, "\n")
}

// inlineText renders the inline content of a node: emphasis and code spans
// keep their markdown markers, everything else contributes its text.
func inlineText(n *html.Node) string {
	var b strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		renderInline(&b, child)
	}
	return strings.TrimSpace(collapseSpace(b.String()))
}

func renderInline(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
	default:
		return
	}

	switch n.Data {
	case "strong", "b":
		if text := inlineText(n); text != "" {
			b.WriteString("**" + text + "**")
		}
	case "em", "i":
		if text := inlineText(n); text != "" {
			b.WriteString("*" + text + "*")
		}
	case "code":
		if text := inlineText(n); text != "" {
			b.WriteString("`" + text + "`")
		}
	case "br":
		b.WriteString(" ")
	case "script", "style":
		// skip
	default:
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			renderInline(b, child)
		}
	}
}

// rawText concatenates all descendant text without whitespace collapsing,
// preserving code block layout.
func rawText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return b.String()
}

// collapseSpace folds runs of whitespace into single spaces.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
