// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/arxiv-mcp/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(types.StorageConfig{PapersDir: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestNewStoreCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "papers")
	s, err := NewStore(types.StorageConfig{PapersDir: dir})
	if err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(s.Dir())
	if err != nil || !info.IsDir() {
		t.Fatalf("storage directory not created: %v", err)
	}
}

func TestNewStoreEmptyDir(t *testing.T) {
	if _, err := NewStore(types.StorageConfig{}); err == nil {
		t.Error("expected error for unconfigured directory")
	}
}

func TestPathFor(t *testing.T) {
	s := testStore(t)
	tests := []struct {
		format  types.Format
		wantExt string
	}{
		{types.FormatPDF, ".pdf"},
		{types.FormatMarkdown, ".md"},
	}
	for _, tt := range tests {
		got := s.PathFor("1706.03762", tt.format)
		if !strings.HasSuffix(got, "1706.03762"+tt.wantExt) {
			t.Errorf("PathFor(%s) = %q, want suffix %q", tt.format, got, "1706.03762"+tt.wantExt)
		}
	}
}

func TestWriteThenRead(t *testing.T) {
	s := testStore(t)

	if s.Has("1706.03762", types.FormatMarkdown) {
		t.Fatal("Has() = true before write")
	}

	content := []byte("# Attention Is All You Need\n")
	if err := s.Write("1706.03762", types.FormatMarkdown, content); err != nil {
		t.Fatal(err)
	}

	if !s.Has("1706.03762", types.FormatMarkdown) {
		t.Error("Has() = false after write")
	}

	got, ok, err := s.Read("1706.03762", types.FormatMarkdown)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("Read() ok = false after write")
	}
	if string(got) != string(content) {
		t.Errorf("Read() = %q, want %q", got, content)
	}
}

func TestReadAbsentIsNotError(t *testing.T) {
	s := testStore(t)
	content, ok, err := s.Read("0000.00000", types.FormatMarkdown)
	if err != nil {
		t.Fatalf("Read() absent returned error: %v", err)
	}
	if ok || content != nil {
		t.Errorf("Read() absent = (%q, %v), want (nil, false)", content, ok)
	}
}

func TestFormatsAreIndependent(t *testing.T) {
	s := testStore(t)
	if err := s.Write("1706.03762", types.FormatPDF, []byte("%PDF-1.4")); err != nil {
		t.Fatal(err)
	}
	if s.Has("1706.03762", types.FormatMarkdown) {
		t.Error("markdown artifact reported present after PDF write")
	}
}

func TestListIDs(t *testing.T) {
	s := testStore(t)
	for _, id := range []string{"2301.07041", "1706.03762"} {
		if err := s.Write(id, types.FormatMarkdown, []byte("x")); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.Write("2103.12345", types.FormatPDF, []byte("%PDF")); err != nil {
		t.Fatal(err)
	}

	ids, err := s.ListIDs(types.FormatMarkdown)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"1706.03762", "2301.07041"}
	if len(ids) != len(want) {
		t.Fatalf("ListIDs() = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ListIDs()[%d] = %q, want %q", i, ids[i], want[i])
		}
	}
}

func TestListIDsIgnoresTempFiles(t *testing.T) {
	s := testStore(t)
	// Simulate a leftover temp file from an interrupted write.
	if err := os.WriteFile(filepath.Join(s.Dir(), ".store-123.tmp"), []byte("partial"), 0o644); err != nil {
		t.Fatal(err)
	}
	ids, err := s.ListIDs(types.FormatMarkdown)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 0 {
		t.Errorf("ListIDs() = %v, want empty", ids)
	}
}

func TestWriteNoTempFileLeftBehind(t *testing.T) {
	s := testStore(t)
	if err := s.Write("1706.03762", types.FormatMarkdown, []byte("content")); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(s.Dir())
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".store-") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}
