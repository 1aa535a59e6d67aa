// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metadata persists fetched paper metadata in a small SQLite index
// so listing cached papers does not refetch every entry from the API. The
// index is display metadata only: the artifact cache's source of truth
// remains file presence in the paper store.
package metadata

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/arxiv-mcp/pkg/types"
)

const dbFile = "metadata.db"

// Store manages the metadata SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the metadata database inside dir, creating the
// schema if it does not exist.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating metadata directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening metadata database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS papers (
		id TEXT PRIMARY KEY,
		title TEXT,
		authors TEXT,
		abstract TEXT,
		categories TEXT,
		published TEXT,
		url TEXT,
		pdf_url TEXT,
		fetched_at TEXT
	)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Put upserts one paper's metadata.
func (s *Store) Put(ctx context.Context, meta *types.PaperMetadata) error {
	authorsJSON, _ := json.Marshal(meta.Authors)
	categoriesJSON, _ := json.Marshal(meta.Categories)
	published := ""
	if !meta.Published.IsZero() {
		published = meta.Published.UTC().Format(time.RFC3339)
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO papers (id, title, authors, abstract, categories, published, url, pdf_url, fetched_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			title=excluded.title, authors=excluded.authors, abstract=excluded.abstract,
			categories=excluded.categories, published=excluded.published,
			url=excluded.url, pdf_url=excluded.pdf_url, fetched_at=excluded.fetched_at`,
		meta.ID, meta.Title, string(authorsJSON), meta.Abstract, string(categoriesJSON),
		published, meta.URL, meta.PDFURL, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting paper %s: %w", meta.ID, err)
	}
	return nil
}

// Get returns the stored metadata for a paper, or ok=false when the index
// has no record for it.
func (s *Store) Get(ctx context.Context, id string) (*types.PaperMetadata, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT title, authors, abstract, categories, published, url, pdf_url
		 FROM papers WHERE id = ?`, id)

	var title, authorsJSON, abstract, categoriesJSON, published, url, pdfURL string
	err := row.Scan(&title, &authorsJSON, &abstract, &categoriesJSON, &published, &url, &pdfURL)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("querying paper %s: %w", id, err)
	}

	meta := &types.PaperMetadata{
		ID:       id,
		Title:    title,
		Abstract: abstract,
		URL:      url,
		PDFURL:   pdfURL,
	}
	json.Unmarshal([]byte(authorsJSON), &meta.Authors)
	json.Unmarshal([]byte(categoriesJSON), &meta.Categories)
	if published != "" {
		if t, parseErr := time.Parse(time.RFC3339, published); parseErr == nil {
			meta.Published = t
		}
	}
	return meta, true, nil
}
