// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package resolver implements get-or-fetch content resolution: local
// storage serves as the cache, the remote fetcher as the origin.
package resolver

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pdiddy/arxiv-mcp/internal/storage"
	"github.com/pdiddy/arxiv-mcp/pkg/types"
)

// Fetcher is the remote origin for paper content. *arxiv.Client satisfies it.
type Fetcher interface {
	FetchMetadata(ctx context.Context, id string) (*types.PaperMetadata, error)
	FetchPDF(ctx context.Context, id string) ([]byte, error)
	FetchHTML(ctx context.Context, id string) (string, error)
}

// Resolver hides the cache/fetch distinction behind a single entry point.
// A successful call always leaves a valid cache entry; a failed call never
// creates one.
type Resolver struct {
	store   *storage.Store
	fetcher Fetcher

	mu       sync.Mutex
	statuses map[string]*types.ConversionStatus
}

// New builds a Resolver over the given store and fetcher.
func New(store *storage.Store, fetcher Fetcher) *Resolver {
	return &Resolver{
		store:    store,
		fetcher:  fetcher,
		statuses: make(map[string]*types.ConversionStatus),
	}
}

// GetOrFetch returns the paper's content in the requested format. A cache
// hit returns immediately with no network call and cached=true. On a miss
// the content is fetched, written through to the store, and returned with
// cached=false. A fetch failure writes nothing.
func (r *Resolver) GetOrFetch(ctx context.Context, id string, format types.Format) (content []byte, cached bool, err error) {
	if !format.Valid() {
		return nil, false, fmt.Errorf("unknown format %q", format)
	}

	if data, ok, readErr := r.store.Read(id, format); readErr != nil {
		return nil, false, readErr
	} else if ok {
		return data, true, nil
	}

	switch format {
	case types.FormatMarkdown:
		content, err = r.fetchMarkdown(ctx, id)
	case types.FormatPDF:
		content, err = r.fetchPDF(ctx, id)
	}
	if err != nil {
		return nil, false, err
	}

	if err := r.store.Write(id, format, content); err != nil {
		return nil, false, err
	}
	return content, false, nil
}

// fetchMarkdown retrieves the HTML rendering and converts it, tracking the
// conversion lifecycle for observability.
func (r *Resolver) fetchMarkdown(ctx context.Context, id string) ([]byte, error) {
	r.setStatus(id, types.ConversionConverting, "")

	md, err := r.fetcher.FetchHTML(ctx, id)
	if err != nil {
		r.setStatus(id, types.ConversionFailed, err.Error())
		return nil, err
	}

	r.setStatus(id, types.ConversionCompleted, "")
	return []byte(md), nil
}

func (r *Resolver) fetchPDF(ctx context.Context, id string) ([]byte, error) {
	// Resolve metadata first so an unknown ID surfaces as not-found
	// instead of a download failure.
	if _, err := r.fetcher.FetchMetadata(ctx, id); err != nil {
		return nil, err
	}
	return r.fetcher.FetchPDF(ctx, id)
}

// Status returns the in-process conversion record for a paper, if any.
func (r *Resolver) Status(id string) (types.ConversionStatus, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.statuses[id]
	if !ok {
		return types.ConversionStatus{}, false
	}
	return *st, true
}

func (r *Resolver) setStatus(id string, state types.ConversionState, errText string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	st, ok := r.statuses[id]
	if !ok {
		st = &types.ConversionStatus{PaperID: id, StartedAt: time.Now().UTC()}
		r.statuses[id] = st
	}
	st.State = state
	st.Error = errText
	if state == types.ConversionCompleted || state == types.ConversionFailed {
		st.CompletedAt = time.Now().UTC()
	}
}
