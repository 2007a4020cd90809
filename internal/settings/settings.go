// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package settings persists the client configuration (server connection,
// URL rewrite rules, download accounts) in a YAML file and broadcasts
// changes to subscribers. The broadcast replays the latest value to new
// subscribers, so late components still observe the current state.
package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/recoll-search/pkg/types"
)

// Store owns the settings file. All reads and writes go through it.
type Store struct {
	path string

	mu      sync.Mutex
	current types.Settings
	subs    []chan types.Settings
}

// Open loads the settings file at path. A missing file is not an error:
// the store starts with zero settings and creates the file on first Update.
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("reading settings %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &s.current); err != nil {
		return nil, fmt.Errorf("parsing settings %s: %w", path, err)
	}
	return s, nil
}

// Path returns the settings file location.
func (s *Store) Path() string { return s.path }

// Current returns the in-memory settings.
func (s *Store) Current() types.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Update applies fn to a copy of the current settings, persists the result
// and broadcasts it. The file is written via a temp file and rename so a
// concurrent reader never sees a torn write.
func (s *Store) Update(fn func(*types.Settings)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.current
	fn(&next)

	data, err := yaml.Marshal(next)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("creating settings directory: %w", err)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing settings: %w", err)
	}

	s.current = next
	s.broadcastLocked()
	return nil
}

// Subscribe returns a channel that yields the current settings immediately
// and every subsequent change. Intermediate values are conflated: a slow
// subscriber sees only the latest state.
func (s *Store) Subscribe() <-chan types.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan types.Settings, 1)
	ch <- s.current
	s.subs = append(s.subs, ch)
	return ch
}

// WatchFile reloads the store and notifies subscribers whenever the
// settings file changes on disk (edited externally or replaced by another
// process). It returns once the watcher is running; the watch goroutine
// stops when done is closed. Warnings go to stderr, matching the store's
// tolerance for a missing or momentarily invalid file.
func (s *Store) WatchFile(done <-chan struct{}) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating settings watcher: %w", err)
	}
	// Watch the directory: editors typically replace the file by rename,
	// which drops a watch registered on the file itself.
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("watching settings directory: %w", err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-done:
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != filepath.Clean(s.path) {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				if err := s.reload(); err != nil {
					fmt.Fprintf(os.Stderr, "warning: reloading settings: %v\n", err)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				fmt.Fprintf(os.Stderr, "warning: settings watcher: %v\n", err)
			}
		}
	}()
	return nil
}

func (s *Store) reload() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}
	var next types.Settings
	if err := yaml.Unmarshal(data, &next); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = next
	s.broadcastLocked()
	return nil
}

func (s *Store) broadcastLocked() {
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		ch <- s.current
	}
}
