// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package recoll

import (
	"context"
	"errors"

	"github.com/pdiddy/recoll-search/pkg/types"
)

// ErrNotConfigured is returned by every Stub call. The repository starts
// with a Stub so callers get a clean error, not a nil dereference, before
// connection settings have ever been applied.
var ErrNotConfigured = errors.New("recoll client not configured: set the server connection first")

// Stub is the non-functional placeholder client.
type Stub struct{}

func (Stub) Search(context.Context, string, int, int) (*types.ResultSet, error) {
	return nil, ErrNotConfigured
}

func (Stub) Preview(context.Context, string, int) (*types.Preview, error) {
	return nil, ErrNotConfigured
}

func (Stub) Snippets(context.Context, string, int) ([]types.Snippet, error) {
	return nil, ErrNotConfigured
}

func (Stub) Extract(context.Context, string, int) (*types.DocumentExtract, error) {
	return nil, ErrNotConfigured
}
