// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package recoll talks to the Recoll web API: ranged search plus the three
// per-result operations (preview, snippets, extract). All calls are plain
// GETs with Basic auth; the server may take minutes to answer an extract,
// so timeouts are generous and nothing here retries automatically.
package recoll

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/recoll-search/internal/httputil"
	"github.com/pdiddy/recoll-search/pkg/types"
)

// DefaultTimeout bounds a single API call. Extraction pulls a sub-document
// out of a container on the server and can legitimately run for minutes.
const DefaultTimeout = 120 * time.Second

// Client is the capability surface of the remote search server. Calls are
// stateless and carry no ordering guarantees relative to each other.
type Client interface {
	// Search requests the inclusive zero-based slice [first, last] of the
	// query's result space. last may exceed availability; the server clamps.
	Search(ctx context.Context, query string, first, last int) (*types.ResultSet, error)

	// Preview fetches the rendered text preview of result idx.
	Preview(ctx context.Context, query string, idx int) (*types.Preview, error)

	// Snippets fetches the query-term match list of result idx.
	Snippets(ctx context.Context, query string, idx int) ([]types.Snippet, error)

	// Extract asks the server to pull result idx's embedded sub-document out
	// of its container. The server locks the index for the duration; callers
	// must tolerate long latency and must not retry automatically.
	Extract(ctx context.Context, query string, idx int) (*types.DocumentExtract, error)
}

// InsecureTransportError reports a refusal to send Basic credentials over
// an unencrypted link.
type InsecureTransportError struct {
	URL string
}

func (e *InsecureTransportError) Error() string {
	return fmt.Sprintf("refusing to send credentials over unencrypted transport: %s", e.URL)
}

// HTTPClient implements Client against a configured base URL.
type HTTPClient struct {
	base   *url.URL
	client *http.Client
}

// NewHTTPClient builds a client bound to the given connection settings.
// Plain http: base URLs are rejected before any credentialed request can
// be made.
func NewHTTPClient(settings types.ConnectionSettings) (*HTTPClient, error) {
	if strings.HasPrefix(settings.BaseURL, "http:") {
		return nil, &InsecureTransportError{URL: settings.BaseURL}
	}

	base, err := url.Parse(settings.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL %q: %w", settings.BaseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base URL %q: scheme and host required", settings.BaseURL)
	}

	return &HTTPClient{
		base: base,
		client: &http.Client{
			Timeout:   DefaultTimeout,
			Transport: httputil.NewBasicAuthTransport(settings.Username, settings.Password, nil),
		},
	}, nil
}

func (c *HTTPClient) Search(ctx context.Context, query string, first, last int) (*types.ResultSet, error) {
	params := url.Values{
		"query_str": {query},
		"first":     {strconv.Itoa(first)},
		"last":      {strconv.Itoa(last)},
	}
	var rs types.ResultSet
	if err := c.get(ctx, "search", params, &rs); err != nil {
		return nil, err
	}
	return &rs, nil
}

func (c *HTTPClient) Preview(ctx context.Context, query string, idx int) (*types.Preview, error) {
	var p types.Preview
	if err := c.get(ctx, "preview", indexParams(query, idx), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) Snippets(ctx context.Context, query string, idx int) ([]types.Snippet, error) {
	// The server wraps the list in an envelope object.
	var env struct {
		Snippets []types.Snippet `json:"snippets"`
	}
	if err := c.get(ctx, "snippets", indexParams(query, idx), &env); err != nil {
		return nil, err
	}
	return env.Snippets, nil
}

func (c *HTTPClient) Extract(ctx context.Context, query string, idx int) (*types.DocumentExtract, error) {
	var ex types.DocumentExtract
	if err := c.get(ctx, "extract", indexParams(query, idx), &ex); err != nil {
		return nil, err
	}
	return &ex, nil
}

func indexParams(query string, idx int) url.Values {
	return url.Values{
		"query_str": {query},
		"idx":       {strconv.Itoa(idx)},
	}
}

// get performs one API round trip and decodes the JSON body into out.
func (c *HTTPClient) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	u := c.base.JoinPath(endpoint)
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("creating %s request: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s request: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s returned HTTP %d", endpoint, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parsing %s response: %w", endpoint, err)
	}
	return nil
}
