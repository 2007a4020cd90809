// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package paging

import (
	"context"
	"sync"

	"github.com/pdiddy/recoll-search/pkg/types"
)

// Window presents a query's whole result space as a randomly accessible
// sequence, materializing pages on demand. Items are keyed by their global
// index, so keys stay continuous however the consumer scrolls. Results
// from a superseded query never enter the window; the pager drops them
// before absorb sees a page.
type Window struct {
	pager *Pager

	mu    sync.Mutex
	items map[int]*types.SearchResult
	total int // -1 until the first successful load
}

// NewWindow returns an empty window over the pager's result space.
func NewWindow(pager *Pager) *Window {
	return &Window{
		pager: pager,
		items: make(map[int]*types.SearchResult),
		total: -1,
	}
}

// Total returns the size of the result space, issuing the initial load if
// nothing has been fetched yet.
func (w *Window) Total(ctx context.Context) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.total < 0 {
		if err := w.loadPageLocked(ctx, 0, w.pager.cfg.InitialLoadSize); err != nil {
			return 0, err
		}
	}
	return w.total, nil
}

// Get returns the result at global index i, fetching its page if missing
// and prefetching the neighbouring page once i comes within the prefetch
// distance of a loaded boundary.
func (w *Window) Get(ctx context.Context, i int) (*types.SearchResult, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.ensureLocked(ctx, i); err != nil {
		return nil, err
	}

	// Forward and backward prefetch. Failures here are not the caller's
	// problem: the item asked for is already present.
	d := w.pager.cfg.PrefetchDistance
	if ahead := i + d; ahead < w.total && w.items[ahead] == nil {
		_ = w.ensureLocked(ctx, ahead)
	}
	if behind := i - d; behind >= 0 && w.items[behind] == nil {
		_ = w.ensureLocked(ctx, behind)
	}

	return w.items[i], nil
}

// Loaded reports whether index i is materialized, without fetching.
func (w *Window) Loaded(i int) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.items[i] != nil
}

// ensureLocked makes sure index i is materialized.
func (w *Window) ensureLocked(ctx context.Context, i int) error {
	if i < 0 {
		return &SearchError{Query: w.pager.query, Msg: "negative result index"}
	}
	if w.items[i] != nil {
		return nil
	}
	pageSize := w.pager.cfg.PageSize
	return w.loadPageLocked(ctx, i-i%pageSize, pageSize)
}

// loadPageLocked fetches one page and absorbs it. Items keep the index the
// repository stamped on them, which by construction equals their position
// in the query's full result space.
func (w *Window) loadPageLocked(ctx context.Context, key, loadSize int) error {
	page, err := w.pager.Load(ctx, &key, loadSize)
	if err != nil {
		return err
	}
	w.total = page.Total
	for _, item := range page.Items {
		w.items[item.Index()] = item
	}
	return nil
}
