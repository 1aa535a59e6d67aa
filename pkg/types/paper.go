// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Format identifies a stored representation of a paper.
type Format string

const (
	FormatPDF      Format = "pdf"
	FormatMarkdown Format = "markdown"
)

// Ext returns the file extension for the format, including the dot.
func (f Format) Ext() string {
	switch f {
	case FormatPDF:
		return ".pdf"
	case FormatMarkdown:
		return ".md"
	default:
		return ""
	}
}

// Valid reports whether f is a known format.
func (f Format) Valid() bool {
	return f == FormatPDF || f == FormatMarkdown
}

// ConversionState is the lifecycle state of an HTML-to-Markdown conversion.
type ConversionState string

const (
	ConversionPending    ConversionState = "pending"
	ConversionConverting ConversionState = "converting"
	ConversionCompleted  ConversionState = "completed"
	ConversionFailed     ConversionState = "failed"
)

// ConversionStatus records the progress of one paper's conversion. Records
// live in process memory only; they are not persisted.
type ConversionStatus struct {
	PaperID     string          `json:"paper_id"`
	State       ConversionState `json:"state"`
	StartedAt   time.Time       `json:"started_at"`
	CompletedAt time.Time       `json:"completed_at,omitempty"`
	Error       string          `json:"error,omitempty"`
}

// PaperMetadata holds the arXiv metadata for one paper as returned by the
// export API. The ID doubles as the cache key in storage.
type PaperMetadata struct {
	// ID is the arXiv identifier (e.g. "1706.03762"), version suffix stripped.
	ID string `json:"id" yaml:"id"`

	// Title is the paper title.
	Title string `json:"title" yaml:"title"`

	// Authors lists the paper authors in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Abstract is the paper abstract.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Categories lists the arXiv subject classes (e.g. "cs.CL").
	Categories []string `json:"categories" yaml:"categories"`

	// Published is the submission date.
	Published time.Time `json:"published" yaml:"published"`

	// URL is the abstract page URL.
	URL string `json:"url" yaml:"url"`

	// PDFURL is the direct PDF download URL.
	PDFURL string `json:"pdf_url" yaml:"pdf_url"`
}
