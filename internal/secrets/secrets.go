// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads passwords from a directory of plain-text files so
// they can stay out of the YAML settings file. The filename is the key and
// the trimmed file contents are the value.
//
// Recognized keys: recoll-password (server connection), and
// download-password-<account> for each named download account.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Load reads every regular file in dir into a key→value map. A missing
// directory is not an error: secrets are optional and Load returns an
// empty map. An unreadable file produces a warning on stderr but does not
// abort, so one broken secret cannot take the whole client down.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", entry.Name(), err)
			continue
		}
		if value := strings.TrimSpace(string(data)); value != "" {
			secrets[entry.Name()] = value
		}
	}
	return secrets, nil
}
