// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the recoll-search client.
// ResultSet and SearchResult mirror the JSON the Recoll web API returns for
// one ranged query; ConnectionSettings and friends describe the persisted
// client configuration.
package types

import (
	"fmt"
	"sync"
	"time"
)

// ResultSet is one query execution's result window. The server reports the
// total hit count for the whole query (Size) alongside the inclusive
// [FirstIdx, LastIdx] slice actually returned in Page.
type ResultSet struct {
	// Query is the query string as echoed back by the server.
	Query string `json:"query_str"`

	// Size is the total number of hits for the query, not the page length.
	Size int `json:"n_results"`

	// QueryMs is the server-side query execution time in milliseconds.
	QueryMs int `json:"query_ms"`

	// RetrievalMs is the server-side page retrieval time in milliseconds.
	RetrievalMs int `json:"retrieval_ms"`

	// FirstIdx and LastIdx are the inclusive zero-based bounds of the page.
	FirstIdx int `json:"first"`
	LastIdx  int `json:"last"`

	// Error is a server-reported error message; non-blank means the query
	// failed even though the HTTP exchange succeeded.
	Error string `json:"error,omitempty"`

	// Page holds the documents selected for the [FirstIdx, LastIdx] slice.
	Page []*SearchResult `json:"results"`
}

// SearchResult is a single matched document. The exported fields come
// straight off the wire; the unexported ones are filled in after the fetch
// by the owning repository (global index, back-reference, lazy caches).
type SearchResult struct {
	URL           string     `json:"url"`
	Sig           string     `json:"sig"`
	MultiBreaks   BreakList  `json:"rclmbreaks"`
	IPath         string     `json:"ipath"`
	UDI           string     `json:"rcludi"`
	Title         string     `json:"title"`
	FBytes        int64      `json:"fbytes"`
	CollapseCount int        `json:"collapsecount"`
	Abstract      string     `json:"abstract"`
	Recipient     string     `json:"recipient"`
	Author        string     `json:"author"`
	Caption       string     `json:"caption"`
	DBytes        int64      `json:"dbytes"`
	Filename      string     `json:"filename"`
	Relevancy     Relevancy  `json:"relevancyrating"`
	FMTime        int64      `json:"fmtime"`
	MType         MimeType   `json:"mtype"`
	OrigCharset   string     `json:"origcharset"`
	MTime         int64      `json:"mtime"`
	PCBytes       int64      `json:"pcbytes"`
	Keywords      string     `json:"keywords"`
	Aptg          string     `json:"rclaptg"`
	DMTime        int64      `json:"dmtime"`
	SnippetsAbstract string  `json:"snippets_abstract"`

	// Owning result set and global index, set exactly once by Bind.
	owner *ResultSet
	index int

	previewMu sync.Mutex
	preview   *Preview

	snippetsMu     sync.Mutex
	snippets       []Snippet
	snippetsLoaded bool
}

// Sentinel values applied to wire fields the server omitted.
const (
	UnknownStr = "UNKNOWN"
	UnknownInt = -1
)

// NewSearchResult returns a result with every wire field set to its
// "missing" sentinel and the index unbound.
func NewSearchResult() *SearchResult {
	return &SearchResult{
		URL:         UnknownStr,
		Sig:         UnknownStr,
		IPath:       UnknownStr,
		UDI:         UnknownStr,
		Title:       UnknownStr,
		FBytes:      UnknownInt,
		Abstract:    UnknownStr,
		Recipient:   UnknownStr,
		Author:      UnknownStr,
		Caption:     UnknownStr,
		DBytes:      UnknownInt,
		Filename:    UnknownStr,
		Relevancy:   Relevancy(-1.0),
		FMTime:      UnknownInt,
		MType:       UnknownMime,
		OrigCharset: UnknownStr,
		MTime:       UnknownInt,
		PCBytes:     UnknownInt,
		Keywords:    UnknownStr,
		Aptg:        UnknownStr,
		DMTime:      UnknownInt,
		SnippetsAbstract: UnknownStr,
		index:            UnknownInt,
	}
}

// Embedded reports whether the document is an item inside a container
// document (an attachment inside an email, a file inside an archive). Such
// documents cannot be downloaded directly and must go through extraction.
func (r *SearchResult) Embedded() bool {
	return r.IPath != "" && r.IPath != UnknownStr
}

// Bind attaches the result to its owning set and records its zero-based
// index within the query's full result space. It must be called exactly
// once, immediately after the page is fetched; rebinding is a caller bug.
func (r *SearchResult) Bind(owner *ResultSet, index int) {
	if r.owner != nil {
		panic(fmt.Sprintf("result %q already bound at index %d", r.Title, r.index))
	}
	r.owner = owner
	r.index = index
}

// Owner returns the result set this result was fetched as part of. Calling
// it on an unbound result is a caller bug.
func (r *SearchResult) Owner() *ResultSet {
	if r.owner == nil {
		panic("result not bound to a result set")
	}
	return r.owner
}

// Index returns the result's zero-based position within the query's full
// result space.
func (r *SearchResult) Index() int {
	if r.owner == nil {
		panic("result not bound to a result set")
	}
	return r.index
}

// Bound reports whether Bind has been called.
func (r *SearchResult) Bound() bool { return r.owner != nil }

// Date is the document's effective date: the document modification time
// when the server reported one, the file modification time otherwise.
func (r *SearchResult) Date() time.Time {
	sec := r.FMTime
	if r.DMTime > 0 {
		sec = r.DMTime
	}
	return time.Unix(sec, 0)
}

// LoadPreview returns the cached preview, fetching it with fetch on first
// use. At most one fetch is in flight per result: concurrent callers block
// until the winner has stored its value and then share it. A failed fetch
// caches nothing, so the next call retries.
func (r *SearchResult) LoadPreview(fetch func() (*Preview, error)) (*Preview, error) {
	r.previewMu.Lock()
	defer r.previewMu.Unlock()
	if r.preview != nil {
		return r.preview, nil
	}
	p, err := fetch()
	if err != nil {
		return nil, err
	}
	r.preview = p
	return p, nil
}

// PreviewLoaded reports whether a preview has been cached.
func (r *SearchResult) PreviewLoaded() bool {
	r.previewMu.Lock()
	defer r.previewMu.Unlock()
	return r.preview != nil
}

// LoadSnippets returns the cached snippet list, fetching it with fetch on
// first use. The loaded flag is tracked separately from the slice so that a
// genuinely empty snippet list is still cached and not refetched.
func (r *SearchResult) LoadSnippets(fetch func() ([]Snippet, error)) ([]Snippet, error) {
	r.snippetsMu.Lock()
	defer r.snippetsMu.Unlock()
	if r.snippetsLoaded {
		return r.snippets, nil
	}
	s, err := fetch()
	if err != nil {
		return nil, err
	}
	r.snippets = s
	r.snippetsLoaded = true
	return s, nil
}

// SnippetsLoaded reports whether the snippet list has been cached, even if
// the server returned zero snippets.
func (r *SearchResult) SnippetsLoaded() bool {
	r.snippetsMu.Lock()
	defer r.snippetsMu.Unlock()
	return r.snippetsLoaded
}

// Preview is the plain-text preview of a document, rendered server side.
type Preview struct {
	Text string `json:"preview"`
}

// Snippet is one query-term match inside a document.
type Snippet struct {
	// Page is the page number the match occurs on, when the document has pages.
	Page int `json:"p"`

	// Keyword is the query term that matched.
	Keyword string `json:"kw"`

	// Text is the surrounding text with highlight markers.
	Text string `json:"s"`
}

// DocumentExtract is the outcome of extracting an embedded sub-document. An
// empty URL means the extraction failed and Msg carries the diagnostic.
type DocumentExtract struct {
	URL string `json:"url"`
	Msg string `json:"msg"`
}

// Failed reports whether the extraction produced no fetchable URL.
func (e DocumentExtract) Failed() bool { return e.URL == "" }
