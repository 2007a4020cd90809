// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package paging turns ranged fetches against the search server into a
// virtualized result list. A Pager answers keyed load requests with
// prev/next continuation keys; a Window sits on top and serves random
// access with prefetch, the way a scrolling viewport consumes results.
package paging

import (
	"context"
	"fmt"

	"github.com/pdiddy/recoll-search/pkg/types"
)

// Config sizes the paging machinery.
type Config struct {
	// PageSize is the number of results fetched per ranged request.
	PageSize int

	// InitialLoadSize is the size of the very first load (key == nil).
	InitialLoadSize int

	// PrefetchDistance is how close to a loaded boundary the viewport may
	// get before the adjacent page is fetched proactively.
	PrefetchDistance int
}

// DefaultConfig mirrors the paging parameters the client has always used.
func DefaultConfig() Config {
	return Config{PageSize: 10, InitialLoadSize: 10, PrefetchDistance: 2}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.PageSize <= 0 {
		c.PageSize = d.PageSize
	}
	if c.InitialLoadSize <= 0 {
		c.InitialLoadSize = c.PageSize
	}
	if c.PrefetchDistance <= 0 {
		c.PrefetchDistance = d.PrefetchDistance
	}
	return c
}

// Source issues one ranged query and returns the stamped result set.
// *results.Repository satisfies it.
type Source interface {
	ExecuteQuery(ctx context.Context, query string, first, last int) (*types.ResultSet, error)
}

// SearchError is a failure the server reported inside an otherwise
// successful search response. The same range may be retried.
type SearchError struct {
	Query string
	Msg   string
}

func (e *SearchError) Error() string {
	return fmt.Sprintf("search %q failed: %s", e.Query, e.Msg)
}

// ErrStaleResult marks a response whose query string no longer matches the
// pager's query. Such pages belong to a superseded search and are dropped
// rather than spliced into the current result space.
type ErrStaleResult struct {
	Want, Got string
}

func (e *ErrStaleResult) Error() string {
	return fmt.Sprintf("stale result set: query %q, expected %q", e.Got, e.Want)
}

// Page is the outcome of one load: the fetched slice plus continuation
// keys. A nil PrevKey/NextKey means the respective end of the result space
// has been reached.
type Page struct {
	Items   []*types.SearchResult
	PrevKey *int
	NextKey *int

	// Total is the server-reported size of the whole result space.
	Total int
}

// Pager executes keyed loads for one fixed query. Each Load call is
// independent; concurrent loads at opposite ends of the viewport are fine.
type Pager struct {
	query  string
	source Source
	cfg    Config
}

// New returns a pager for the given query.
func New(source Source, query string, cfg Config) *Pager {
	return &Pager{query: query, source: source, cfg: cfg.withDefaults()}
}

// Query returns the query this pager serves.
func (p *Pager) Query() string { return p.query }

// Config returns the effective paging configuration.
func (p *Pager) Config() Config { return p.cfg }

// Load fetches loadSize results starting at key (nil means index 0) and
// computes the continuation keys, both clamped into [0, total-1]:
//
//	PrevKey = key - loadSize, nil at the front edge
//	NextKey = lastIdx + 1, nil once the result space is exhausted
func (p *Pager) Load(ctx context.Context, key *int, loadSize int) (*Page, error) {
	if loadSize <= 0 {
		loadSize = p.cfg.PageSize
	}
	start := 0
	if key != nil {
		start = *key
	}
	lastIdx := start + loadSize - 1

	rs, err := p.source.ExecuteQuery(ctx, p.query, start, lastIdx)
	if err != nil {
		return nil, err
	}
	if rs.Error != "" {
		return nil, &SearchError{Query: p.query, Msg: rs.Error}
	}
	if rs.Query != p.query {
		return nil, &ErrStaleResult{Want: p.query, Got: rs.Query}
	}

	page := &Page{Items: rs.Page, Total: rs.Size}
	if rs.Size > 0 {
		if start > 0 {
			page.PrevKey = intPtr(clamp(start-loadSize, 0, rs.Size-1))
		}
		if lastIdx+1 < rs.Size {
			page.NextKey = intPtr(clamp(lastIdx+1, 0, rs.Size-1))
		}
	}
	return page, nil
}

// RefreshKey recomputes the load key after a viewport jump: the refetch
// window is recentred around the nearest loaded item instead of restarting
// at zero. Returns nil when nothing is loaded yet.
func (p *Pager) RefreshKey(nearest *types.SearchResult) *int {
	if nearest == nil || !nearest.Bound() {
		return nil
	}
	key := nearest.Index() - p.cfg.PageSize/2
	if key < 0 {
		key = 0
	}
	return intPtr(key)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func intPtr(v int) *int { return &v }
