// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package results owns the active recoll client and the per-result caches.
// The repository hands every fetched result its global index and a
// back-reference to its result set before anything else can see it, and
// memoizes preview/snippet fetches so the UI never repeats a round trip.
package results

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/pdiddy/recoll-search/internal/recoll"
	"github.com/pdiddy/recoll-search/pkg/types"
)

// Repository mediates all access to the remote server. It starts with a
// stub client that fails every call; Reconfigure swaps in a real client
// when connection settings arrive.
type Repository struct {
	// mu serializes Reconfigure; reads of the active client go through the
	// atomic pointer and never block.
	mu       sync.Mutex
	settings types.ConnectionSettings

	client atomic.Pointer[recoll.Client]
}

// NewRepository returns a repository backed by the stub client.
func NewRepository() *Repository {
	r := &Repository{}
	var stub recoll.Client = recoll.Stub{}
	r.client.Store(&stub)
	return r
}

// Client returns the currently active client. In-flight calls keep using
// whichever instance they captured: a concurrent Reconfigure never tears a
// client out from under them.
func (r *Repository) Client() recoll.Client {
	return *r.client.Load()
}

// Reconfigure rebuilds the client from new connection settings and swaps it
// in atomically. Value-equal settings are a no-op, so unrelated settings
// changes don't churn the client. On failure the previous client stays
// active and the error is returned for the caller to report.
func (r *Repository) Reconfigure(settings types.ConnectionSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if settings == r.settings {
		return nil
	}

	c, err := recoll.NewHTTPClient(settings)
	if err != nil {
		return fmt.Errorf("rebuilding recoll client after settings change: %w", err)
	}

	var client recoll.Client = c
	r.client.Store(&client)
	r.settings = settings
	return nil
}

// ExecuteQuery fetches the inclusive [first, last] slice of the query's
// result space and binds each returned result to its set and global index
// before returning, so consumers only ever see stamped results.
func (r *Repository) ExecuteQuery(ctx context.Context, query string, first, last int) (*types.ResultSet, error) {
	rs, err := r.Client().Search(ctx, query, first, last)
	if err != nil {
		return nil, err
	}

	idx := rs.FirstIdx
	for _, res := range rs.Page {
		res.Bind(rs, idx)
		idx++
	}
	return rs, nil
}

// RetrievePreview returns the result's preview, fetching it at most once.
func (r *Repository) RetrievePreview(ctx context.Context, res *types.SearchResult) (*types.Preview, error) {
	return res.LoadPreview(func() (*types.Preview, error) {
		return r.Client().Preview(ctx, res.Owner().Query, res.Index())
	})
}

// RetrieveSnippets returns the result's snippet list, fetching it at most
// once. A server answer of zero snippets is cached like any other.
func (r *Repository) RetrieveSnippets(ctx context.Context, res *types.SearchResult) ([]types.Snippet, error) {
	return res.LoadSnippets(func() ([]types.Snippet, error) {
		return r.Client().Snippets(ctx, res.Owner().Query, res.Index())
	})
}

// RetrieveExtract always issues a fresh extract call. Extraction is a
// server-side operation whose outcome can change between invocations, so
// it is deliberately not cached.
func (r *Repository) RetrieveExtract(ctx context.Context, res *types.SearchResult) (*types.DocumentExtract, error) {
	return r.Client().Extract(ctx, res.Owner().Query, res.Index())
}
