// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
		want  map[string]string
	}{
		{
			name: "reads key files and trims whitespace",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "recoll-password", "  hunter2  \n")
				writeFile(t, dir, "download-password-nas", "p@ss\n")
				return dir
			},
			want: map[string]string{
				"recoll-password":       "hunter2",
				"download-password-nas": "p@ss",
			},
		},
		{
			name: "returns empty map for nonexistent directory",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "does-not-exist")
			},
			want: map[string]string{},
		},
		{
			name: "skips empty files and dotfiles",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "recoll-password", "value")
				writeFile(t, dir, "empty", "")
				writeFile(t, dir, "blank", "   \n\t ")
				writeFile(t, dir, ".hidden", "nope")
				return dir
			},
			want: map[string]string{"recoll-password": "value"},
		},
		{
			name: "skips subdirectories",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "recoll-password", "value")
				require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o700))
				return dir
			},
			want: map[string]string{"recoll-password": "value"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(tt.setup(t))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
