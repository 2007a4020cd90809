// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ConnectionSettings identifies the Recoll server and the credentials sent
// with every request. The struct is comparable; the repository uses value
// equality to skip rebuilding the client on unrelated settings changes.
type ConnectionSettings struct {
	// BaseURL is the server endpoint, e.g. "https://recoll.example.org/api/".
	// Plain http: URLs are rejected before credentials are ever sent.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// Username and Password are the HTTP Basic credentials.
	Username string `json:"username" yaml:"username"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`
}

// IsZero reports whether the settings are entirely unset.
func (c ConnectionSettings) IsZero() bool {
	return c == ConnectionSettings{}
}

// RewriteRule transforms a result's canonical URL into a fetchable download
// URL. Search is a regular expression; Replace may use $1-style group
// references. Rules apply in list order.
type RewriteRule struct {
	Search  string `json:"search" yaml:"search"`
	Replace string `json:"replace" yaml:"replace"`
}

// DownloadAccount supplies credentials for downloads whose URL starts with
// BaseURL. The first matching account in list order wins.
type DownloadAccount struct {
	Name     string `json:"name" yaml:"name"`
	BaseURL  string `json:"base_url" yaml:"base_url"`
	Username string `json:"username" yaml:"username"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`
}

// DefaultHistorySize caps the persisted search history when the settings
// file does not say otherwise.
const DefaultHistorySize = 100

// Settings is the full persisted client configuration.
type Settings struct {
	Connection ConnectionSettings `json:"connection" yaml:"connection"`

	// HistorySize bounds the past-searches list; <= 0 means DefaultHistorySize.
	HistorySize int `json:"history_size" yaml:"history_size"`

	// DownloadDir is where downloaded documents land; empty means the
	// platform downloads directory.
	DownloadDir string `json:"download_dir,omitempty" yaml:"download_dir,omitempty"`

	Rewrites         []RewriteRule     `json:"rewrites,omitempty" yaml:"rewrites,omitempty"`
	DownloadAccounts []DownloadAccount `json:"download_accounts,omitempty" yaml:"download_accounts,omitempty"`
}

// EffectiveHistorySize resolves the history cap, applying the default.
func (s Settings) EffectiveHistorySize() int {
	if s.HistorySize <= 0 {
		return DefaultHistorySize
	}
	return s.HistorySize
}
