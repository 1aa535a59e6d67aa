// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package storage implements the on-disk paper store: one file per
// (paper, format), with file presence as the only persisted index.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdiddy/arxiv-mcp/pkg/types"
)

// Store is an on-disk cache of paper artifacts keyed by paper ID. Entries
// are immutable once written; re-fetch happens only when a file is absent.
// Concurrent writers to the same (id, format) are not coordinated beyond
// last-write-wins, which is benign because content is deterministic per ID.
type Store struct {
	dir string
}

// NewStore creates the storage directory if needed and returns a Store
// rooted there.
func NewStore(cfg types.StorageConfig) (*Store, error) {
	if cfg.PapersDir == "" {
		return nil, fmt.Errorf("storage: papers directory not configured")
	}
	if err := os.MkdirAll(cfg.PapersDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating storage directory %s: %w", cfg.PapersDir, err)
	}
	return &Store{dir: cfg.PapersDir}, nil
}

// Dir returns the storage directory.
func (s *Store) Dir() string { return s.dir }

// PathFor returns the deterministic path for a (paper, format) pair.
// It performs no I/O.
func (s *Store) PathFor(id string, format types.Format) string {
	return filepath.Join(s.dir, id+format.Ext())
}

// Has reports whether an artifact exists for the paper in the given format.
func (s *Store) Has(id string, format types.Format) bool {
	_, err := os.Stat(s.PathFor(id, format))
	return err == nil
}

// ListIDs enumerates the IDs of all cached papers in the given format by
// scanning the storage directory, sorted for stable output.
func (s *Store) ListIDs(format types.Format) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("reading storage directory %s: %w", s.dir, err)
	}

	ext := format.Ext()
	var ids []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ext) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(entry.Name(), ext))
	}
	sort.Strings(ids)
	return ids, nil
}

// Read returns the cached content for the paper, or ok=false when no
// artifact exists. Absence is not an error; the caller decides whether it
// triggers a fetch.
func (s *Store) Read(id string, format types.Format) (content []byte, ok bool, err error) {
	data, err := os.ReadFile(s.PathFor(id, format))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading %s: %w", s.PathFor(id, format), err)
	}
	return data, true, nil
}

// Write stores content for a (paper, format) pair. It writes to a temporary
// file in the same directory and renames into place, so an interrupted write
// never leaves a path that Has reports as present.
func (s *Store) Write(id string, format types.Format, content []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating storage directory %s: %w", s.dir, err)
	}

	destPath := s.PathFor(id, format)
	tmpFile, err := os.CreateTemp(s.dir, ".store-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, writeErr := tmpFile.Write(content)
	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", destPath, writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
