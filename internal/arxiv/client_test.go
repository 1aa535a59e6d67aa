// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package arxiv

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pdiddy/arxiv-mcp/pkg/types"
)

func testClient() *Client {
	return NewClient(types.SearchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   10 * time.Second,
			UserAgent: "arxiv-mcp-test/0.1",
		},
	})
}

// feedEntry renders one Atom entry for canned API responses.
func feedEntry(id, title, published string, categories ...string) string {
	cats := ""
	for _, c := range categories {
		cats += fmt.Sprintf(`<category term=%q/>`, c)
	}
	return fmt.Sprintf(`<entry>
		<id>http://arxiv.org/abs/%sv1</id>
		<title>%s</title>
		<summary>Abstract of %s.</summary>
		<published>%s</published>
		<author><name>Jane Doe</name></author>
		<author><name>John Roe</name></author>
		%s
		<link title="pdf" href="http://arxiv.org/pdf/%sv1"/>
	</entry>`, id, title, title, published, cats, id)
}

func feedXML(entries ...string) string {
	body := ""
	for _, e := range entries {
		body += e
	}
	return `<?xml version="1.0" encoding="UTF-8"?>
		<feed xmlns="http://www.w3.org/2005/Atom">` + body + `</feed>`
}

// serveFeed points apiBase at a test server returning the given XML and
// restores it afterwards.
func serveFeed(t *testing.T, handler http.HandlerFunc) {
	t.Helper()
	ts := httptest.NewServer(handler)
	old := apiBase
	apiBase = ts.URL
	t.Cleanup(func() {
		apiBase = old
		ts.Close()
	})
}

func TestNormalizeID(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"1706.03762", "1706.03762", true},
		{"arXiv:1706.03762", "1706.03762", true},
		{"2301.07041v2", "2301.07041v2", true},
		{" 1706.03762 ", "1706.03762", true},
		{"not-an-id", "", false},
		{"10.1145/1234567", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := NormalizeID(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("NormalizeID(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestExtractID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"http://arxiv.org/abs/2301.07041v1", "2301.07041"},
		{"http://arxiv.org/abs/2301.07041", "2301.07041"},
		{"http://arxiv.org/api/errors", ""},
	}
	for _, tt := range tests {
		if got := extractID(tt.in); got != tt.want {
			t.Errorf("extractID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFetchMetadata(t *testing.T) {
	serveFeed(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("id_list"); got != "1706.03762" {
			t.Errorf("id_list = %q, want 1706.03762", got)
		}
		fmt.Fprint(w, feedXML(feedEntry("1706.03762", "Attention Is All You Need", "2017-06-12T17:57:34Z", "cs.CL", "cs.LG")))
	})

	meta, err := testClient().FetchMetadata(context.Background(), "1706.03762")
	if err != nil {
		t.Fatal(err)
	}
	if meta.ID != "1706.03762" {
		t.Errorf("ID = %q", meta.ID)
	}
	if meta.Title != "Attention Is All You Need" {
		t.Errorf("Title = %q", meta.Title)
	}
	if len(meta.Authors) != 2 {
		t.Errorf("Authors = %v, want 2 entries", meta.Authors)
	}
	if len(meta.Categories) != 2 || meta.Categories[0] != "cs.CL" {
		t.Errorf("Categories = %v", meta.Categories)
	}
	if meta.Published.IsZero() {
		t.Error("Published is zero")
	}
	if meta.Abstract == "" || meta.URL == "" || meta.PDFURL == "" {
		t.Errorf("incomplete metadata: %+v", meta)
	}
}

func TestFetchMetadataNotFound(t *testing.T) {
	serveFeed(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, feedXML())
	})

	_, err := testClient().FetchMetadata(context.Background(), "0000.00000")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestFetchMetadataStubEntryIsNotFound(t *testing.T) {
	// Unknown IDs sometimes produce a stub entry without an /abs/ path.
	serveFeed(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, feedXML(`<entry>
			<id>http://arxiv.org/api/errors#incorrect_id</id>
			<title>Error</title>
		</entry>`))
	})

	_, err := testClient().FetchMetadata(context.Background(), "0000.00000")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestFetchMetadataServerError(t *testing.T) {
	serveFeed(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := testClient().FetchMetadata(context.Background(), "1706.03762")
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, ErrNotFound) {
		t.Errorf("server failure must not map to ErrNotFound: %v", err)
	}
}

func TestFetchPDF(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "%PDF-1.4 fake")
	}))
	defer ts.Close()
	old := pdfBase
	pdfBase = ts.URL + "/"
	defer func() { pdfBase = old }()

	data, err := testClient().FetchPDF(context.Background(), "1706.03762")
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "%PDF-1.4 fake" {
		t.Errorf("FetchPDF = %q", data)
	}
}

func TestFetchPDFNotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()
	old := pdfBase
	pdfBase = ts.URL + "/"
	defer func() { pdfBase = old }()

	_, err := testClient().FetchPDF(context.Background(), "0000.00000")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
