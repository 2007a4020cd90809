// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package app

import (
	"github.com/pdiddy/recoll-search/internal/results"
	"github.com/pdiddy/recoll-search/internal/settings"
	"github.com/pdiddy/recoll-search/pkg/types"
)

// Secret file names recognized in the secrets directory.
const (
	// SecretConnectionPassword overrides the recoll server password.
	SecretConnectionPassword = "recoll-password"

	// SecretDownloadPrefix + account name overrides that download
	// account's password.
	SecretDownloadPrefix = "download-password-"
)

// Container is the application context: every component that needs the
// repository, the settings store or a latch receives it from here.
type Container struct {
	Errors     *ErrorLatch
	Downloads  *DocumentLatch
	Settings   *settings.Store
	Repository *results.Repository

	secrets map[string]string
}

// New assembles the container and applies the currently persisted
// connection settings. Configuration failures land on the error latch; the
// repository keeps its stub client until a later settings change succeeds.
func New(store *settings.Store, secrets map[string]string) *Container {
	c := &Container{
		Errors:     NewErrorLatch(),
		Downloads:  NewDocumentLatch(),
		Settings:   store,
		Repository: results.NewRepository(),
		secrets:    secrets,
	}
	c.applyConnection(store.Current())
	return c
}

// Run subscribes to settings changes (in-process updates and external file
// edits alike) and reconfigures the repository on each one. It returns once
// the watchers are installed; closing done stops them.
func (c *Container) Run(done <-chan struct{}) error {
	sub := c.Settings.Subscribe()
	if err := c.Settings.WatchFile(done); err != nil {
		return err
	}
	go func() {
		for {
			select {
			case <-done:
				return
			case s, ok := <-sub:
				if !ok {
					return
				}
				c.applyConnection(s)
			}
		}
	}()
	return nil
}

// ApplyCurrent re-applies the persisted connection settings immediately,
// without waiting for a broadcast. One-shot callers use it after an
// Update when no Run loop is active.
func (c *Container) ApplyCurrent() {
	c.applyConnection(c.Settings.Current())
}

// LiveSettings returns the current settings with secret-file passwords
// overlaid.
func (c *Container) LiveSettings() types.Settings {
	return c.withSecrets(c.Settings.Current())
}

func (c *Container) applyConnection(s types.Settings) {
	conn := c.withSecrets(s).Connection
	if conn.IsZero() {
		// Fresh install, nothing to connect to yet.
		return
	}
	if err := c.Repository.Reconfigure(conn); err != nil {
		c.Errors.Report("failed to reconfigure recoll client after settings change", err)
	}
}

// withSecrets overlays passwords kept outside the settings file. A secret
// file wins over whatever the YAML carries, so credentials never need to
// be written to disk in the clear alongside the rest of the configuration.
func (c *Container) withSecrets(s types.Settings) types.Settings {
	if len(c.secrets) == 0 {
		return s
	}
	if pw, ok := c.secrets[SecretConnectionPassword]; ok {
		s.Connection.Password = pw
	}
	if len(s.DownloadAccounts) > 0 {
		accounts := make([]types.DownloadAccount, len(s.DownloadAccounts))
		copy(accounts, s.DownloadAccounts)
		for i := range accounts {
			if pw, ok := c.secrets[SecretDownloadPrefix+accounts[i].Name]; ok {
				accounts[i].Password = pw
			}
		}
		s.DownloadAccounts = accounts
	}
	return s
}
