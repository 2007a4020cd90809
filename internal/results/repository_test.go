// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package results

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/pdiddy/recoll-search/internal/recoll"
	"github.com/pdiddy/recoll-search/pkg/types"
)

// fakeClient serves canned pages and counts per-operation calls.
type fakeClient struct {
	total        int
	searchCalls  int32
	previewCalls int32
	snippetCalls int32
	extractCalls int32
	snippets     []types.Snippet
	err          error
}

func (f *fakeClient) Search(_ context.Context, query string, first, last int) (*types.ResultSet, error) {
	atomic.AddInt32(&f.searchCalls, 1)
	if f.err != nil {
		return nil, f.err
	}
	if last >= f.total {
		last = f.total - 1
	}
	rs := &types.ResultSet{
		Query:    query,
		Size:     f.total,
		FirstIdx: first,
		LastIdx:  last,
	}
	for i := first; i <= last; i++ {
		rs.Page = append(rs.Page, types.NewSearchResult())
	}
	return rs, nil
}

func (f *fakeClient) Preview(_ context.Context, _ string, idx int) (*types.Preview, error) {
	atomic.AddInt32(&f.previewCalls, 1)
	if f.err != nil {
		return nil, f.err
	}
	return &types.Preview{Text: "preview"}, nil
}

func (f *fakeClient) Snippets(_ context.Context, _ string, _ int) ([]types.Snippet, error) {
	atomic.AddInt32(&f.snippetCalls, 1)
	return f.snippets, f.err
}

func (f *fakeClient) Extract(_ context.Context, _ string, _ int) (*types.DocumentExtract, error) {
	atomic.AddInt32(&f.extractCalls, 1)
	return &types.DocumentExtract{URL: "https://dl.example.org/x"}, f.err
}

// withClient installs a client directly, bypassing Reconfigure.
func withClient(r *Repository, c recoll.Client) {
	r.client.Store(&c)
}

func TestExecuteQueryStampsResults(t *testing.T) {
	repo := NewRepository()
	withClient(repo, &fakeClient{total: 20})

	rs, err := repo.ExecuteQuery(context.Background(), "foo", 5, 9)
	if err != nil {
		t.Fatal(err)
	}
	if len(rs.Page) != 5 {
		t.Fatalf("page length = %d, want 5", len(rs.Page))
	}
	for k, res := range rs.Page {
		if res.Index() != 5+k {
			t.Errorf("page[%d].Index() = %d, want %d", k, res.Index(), 5+k)
		}
		if res.Owner() != rs {
			t.Errorf("page[%d] not bound to its own result set", k)
		}
		if res.Owner().Query != "foo" {
			t.Errorf("page[%d] owner query = %q", k, res.Owner().Query)
		}
	}
}

func TestExecuteQueryBeforeConfiguration(t *testing.T) {
	repo := NewRepository()
	_, err := repo.ExecuteQuery(context.Background(), "foo", 0, 9)
	if !errors.Is(err, recoll.ErrNotConfigured) {
		t.Errorf("err = %v, want ErrNotConfigured", err)
	}
}

func TestReconfigureNoOpOnEqualSettings(t *testing.T) {
	repo := NewRepository()
	settings := types.ConnectionSettings{BaseURL: "https://a", Username: "u", Password: "p"}

	if err := repo.Reconfigure(settings); err != nil {
		t.Fatal(err)
	}
	first := repo.Client()

	if err := repo.Reconfigure(settings); err != nil {
		t.Fatal(err)
	}
	if repo.Client() != first {
		t.Error("value-equal settings must leave the active client instance unchanged")
	}
}

func TestReconfigureSwapsClient(t *testing.T) {
	repo := NewRepository()
	if err := repo.Reconfigure(types.ConnectionSettings{BaseURL: "https://a", Username: "u", Password: "p"}); err != nil {
		t.Fatal(err)
	}
	first := repo.Client()

	if err := repo.Reconfigure(types.ConnectionSettings{BaseURL: "https://b", Username: "u", Password: "p"}); err != nil {
		t.Fatal(err)
	}
	if repo.Client() == first {
		t.Error("changed settings must produce a new client instance")
	}
}

func TestReconfigureRejectsInsecureURL(t *testing.T) {
	repo := NewRepository()
	before := repo.Client()

	err := repo.Reconfigure(types.ConnectionSettings{BaseURL: "http://a", Username: "u", Password: "p"})
	var insecure *recoll.InsecureTransportError
	if !errors.As(err, &insecure) {
		t.Fatalf("err = %v, want InsecureTransportError", err)
	}
	if repo.Client() != before {
		t.Error("failed reconfigure must leave the previous client active")
	}
}

func TestRetrievePreviewFetchesOnce(t *testing.T) {
	repo := NewRepository()
	fake := &fakeClient{total: 1}
	withClient(repo, fake)

	rs, err := repo.ExecuteQuery(context.Background(), "foo", 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	res := rs.Page[0]

	p1, err := repo.RetrievePreview(context.Background(), res)
	if err != nil {
		t.Fatal(err)
	}
	p2, err := repo.RetrievePreview(context.Background(), res)
	if err != nil {
		t.Fatal(err)
	}
	if got := atomic.LoadInt32(&fake.previewCalls); got != 1 {
		t.Errorf("preview fetched %d times, want 1", got)
	}
	if p1 != p2 {
		t.Error("second retrieval must return the identical cached preview")
	}
}

func TestRetrievePreviewSingleFlight(t *testing.T) {
	repo := NewRepository()
	fake := &fakeClient{total: 1}
	withClient(repo, fake)

	rs, err := repo.ExecuteQuery(context.Background(), "foo", 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	res := rs.Page[0]

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.RetrievePreview(context.Background(), res); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	if got := atomic.LoadInt32(&fake.previewCalls); got != 1 {
		t.Errorf("preview fetched %d times under concurrency, want 1", got)
	}
}

func TestRetrieveSnippetsCachesEmptyAnswer(t *testing.T) {
	repo := NewRepository()
	fake := &fakeClient{total: 1, snippets: []types.Snippet{}}
	withClient(repo, fake)

	rs, err := repo.ExecuteQuery(context.Background(), "foo", 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	res := rs.Page[0]

	for i := 0; i < 2; i++ {
		if _, err := repo.RetrieveSnippets(context.Background(), res); err != nil {
			t.Fatal(err)
		}
	}
	if got := atomic.LoadInt32(&fake.snippetCalls); got != 1 {
		t.Errorf("snippets fetched %d times, want 1 even for a zero-snippet answer", got)
	}
}

func TestRetrieveExtractNeverCached(t *testing.T) {
	repo := NewRepository()
	fake := &fakeClient{total: 1}
	withClient(repo, fake)

	rs, err := repo.ExecuteQuery(context.Background(), "foo", 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	res := rs.Page[0]

	for i := 0; i < 3; i++ {
		if _, err := repo.RetrieveExtract(context.Background(), res); err != nil {
			t.Fatal(err)
		}
	}
	if got := atomic.LoadInt32(&fake.extractCalls); got != 3 {
		t.Errorf("extract called %d times, want 3: extraction must hit the server every time", got)
	}
}

func TestInFlightCallsKeepCapturedClient(t *testing.T) {
	repo := NewRepository()
	fake := &fakeClient{total: 5}
	withClient(repo, fake)

	captured := repo.Client()
	if err := repo.Reconfigure(types.ConnectionSettings{BaseURL: "https://b", Username: "u", Password: "p"}); err != nil {
		t.Fatal(err)
	}

	// The captured reference still works after the swap.
	if _, err := captured.Search(context.Background(), "foo", 0, 4); err != nil {
		t.Errorf("captured client failed after reconfigure: %v", err)
	}
	if repo.Client() == captured {
		t.Error("repository should now serve the new client")
	}
}
