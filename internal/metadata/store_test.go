// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package metadata

import (
	"context"
	"testing"
	"time"

	"github.com/pdiddy/arxiv-mcp/pkg/types"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPutThenGet(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	meta := &types.PaperMetadata{
		ID:         "1706.03762",
		Title:      "Attention Is All You Need",
		Authors:    []string{"Ashish Vaswani", "Noam Shazeer"},
		Abstract:   "The dominant sequence transduction models...",
		Categories: []string{"cs.CL", "cs.LG"},
		Published:  time.Date(2017, 6, 12, 17, 57, 34, 0, time.UTC),
		URL:        "https://arxiv.org/abs/1706.03762",
		PDFURL:     "https://arxiv.org/pdf/1706.03762",
	}
	if err := s.Put(ctx, meta); err != nil {
		t.Fatal(err)
	}

	got, ok, err := s.Get(ctx, "1706.03762")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("Get() ok = false after Put")
	}
	if got.Title != meta.Title {
		t.Errorf("Title = %q", got.Title)
	}
	if len(got.Authors) != 2 || got.Authors[0] != "Ashish Vaswani" {
		t.Errorf("Authors = %v", got.Authors)
	}
	if len(got.Categories) != 2 {
		t.Errorf("Categories = %v", got.Categories)
	}
	if !got.Published.Equal(meta.Published) {
		t.Errorf("Published = %v, want %v", got.Published, meta.Published)
	}
}

func TestGetMissing(t *testing.T) {
	s := openTest(t)
	_, ok, err := s.Get(context.Background(), "0000.00000")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("Get() ok = true for missing paper")
	}
}

func TestPutUpserts(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	if err := s.Put(ctx, &types.PaperMetadata{ID: "2301.07041", Title: "Old Title"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Put(ctx, &types.PaperMetadata{ID: "2301.07041", Title: "New Title"}); err != nil {
		t.Fatal(err)
	}

	got, ok, err := s.Get(ctx, "2301.07041")
	if err != nil || !ok {
		t.Fatalf("Get() = (%v, %v)", ok, err)
	}
	if got.Title != "New Title" {
		t.Errorf("Title = %q, want New Title", got.Title)
	}
}
