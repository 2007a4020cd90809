// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package download turns a search result into a file on disk. The result's
// canonical URL is rewritten into a fetchable one by the configured rewrite
// rules, the matching download account supplies credentials, and the fetch
// streams to the downloads directory. Embedded documents are extracted on
// the server first and downloaded from the URL the extraction returns.
package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/pdiddy/recoll-search/internal/httputil"
	"github.com/pdiddy/recoll-search/internal/recoll"
	"github.com/pdiddy/recoll-search/pkg/types"
)

// Resolve applies the rewrite rules to rawURL in list order and picks the
// download account whose base URL prefixes the rewritten result. A nil
// account means the download needs no credentials.
func Resolve(rawURL string, s types.Settings) (string, *types.DownloadAccount, error) {
	url := rawURL
	for _, rule := range s.Rewrites {
		re, err := regexp.Compile(rule.Search)
		if err != nil {
			return "", nil, fmt.Errorf("rewrite rule %q: %w", rule.Search, err)
		}
		url = re.ReplaceAllString(url, rule.Replace)
	}

	for i := range s.DownloadAccounts {
		if strings.HasPrefix(url, s.DownloadAccounts[i].BaseURL) {
			return url, &s.DownloadAccounts[i], nil
		}
	}
	return url, nil, nil
}

// Fetch downloads url into destDir under filename, sending the account's
// Basic credentials when an account is given. Credentials never travel
// over plain http:. The body streams through a temp file so an interrupted
// download leaves no half-written document behind. Returns the final path.
func Fetch(ctx context.Context, url, filename, destDir string, acc *types.DownloadAccount) (string, error) {
	if strings.HasPrefix(url, "http:") {
		return "", &recoll.InsecureTransportError{URL: url}
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("creating download directory: %w", err)
	}

	client := &http.Client{Timeout: 10 * time.Minute}
	if acc != nil {
		client.Transport = httputil.NewBasicAuthTransport(acc.Username, acc.Password, nil)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating download request: %w", err)
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return "", fmt.Errorf("download request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download returned HTTP %d from %s", resp.StatusCode, url)
	}

	destPath := filepath.Join(destDir, sanitizeFilename(filename))
	tmpFile, err := os.CreateTemp(destDir, ".download-*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, copyErr := io.Copy(tmpFile, resp.Body)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("renaming temp file: %w", err)
	}
	return destPath, nil
}

// Result downloads a search result's document: rewrite the canonical URL,
// match an account, fetch.
func Result(ctx context.Context, res *types.SearchResult, s types.Settings) (string, error) {
	url, acc, err := Resolve(res.URL, s)
	if err != nil {
		return "", err
	}
	return Fetch(ctx, url, res.Filename, s.DownloadDir, acc)
}

// Extractor asks the server to extract an embedded sub-document. Satisfied
// by *results.Repository.
type Extractor interface {
	RetrieveExtract(ctx context.Context, res *types.SearchResult) (*types.DocumentExtract, error)
}

// Embedded downloads a result that lives inside a container document: the
// server extracts it first, then the extract URL is fetched like any other
// download. A blank extract URL is a failure carrying the server's
// diagnostic message.
func Embedded(ctx context.Context, ex Extractor, res *types.SearchResult, s types.Settings) (string, error) {
	docExtract, err := ex.RetrieveExtract(ctx, res)
	if err != nil {
		return "", err
	}
	if docExtract.Failed() {
		return "", fmt.Errorf("could not extract embedded document: %s", docExtract.Msg)
	}

	url := docExtract.URL
	var acc *types.DownloadAccount
	for i := range s.DownloadAccounts {
		if strings.HasPrefix(url, s.DownloadAccounts[i].BaseURL) {
			acc = &s.DownloadAccounts[i]
			break
		}
	}
	return Fetch(ctx, url, res.Filename, s.DownloadDir, acc)
}

// sanitizeFilename keeps downloads inside destDir whatever the server
// claims the filename is.
func sanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "" || name == "." || name == ".." || name == string(filepath.Separator) {
		return "download"
	}
	return name
}
