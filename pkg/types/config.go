// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the arxiv-mcp server:
// paper metadata, artifact formats, and the configuration surface.
package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make
// network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "arxiv-mcp/0.2.0").
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// MaxRetries is the number of retry attempts on rate-limited requests.
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// SearchConfig holds settings for the search tool.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResultsCap is the upper bound on max_results a caller may request.
	MaxResultsCap int `json:"max_results_cap" yaml:"max_results_cap"`

	// BatchSizeCap is the upper bound on batch_size a caller may request.
	BatchSizeCap int `json:"batch_size_cap" yaml:"batch_size_cap"`
}

// StorageConfig holds settings for the on-disk paper store.
type StorageConfig struct {
	// PapersDir is the directory holding one file per (paper, format).
	PapersDir string `json:"papers_dir" yaml:"papers_dir"`
}

// Config groups all settings for the server and CLI.
type Config struct {
	// AppName identifies the server to MCP clients.
	AppName string `json:"app_name" yaml:"app_name"`

	// AppVersion is the server version reported during initialization.
	AppVersion string `json:"app_version" yaml:"app_version"`

	Search  SearchConfig  `json:"search" yaml:"search"`
	Storage StorageConfig `json:"storage" yaml:"storage"`
}
