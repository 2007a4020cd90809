// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHighlightANSI(t *testing.T) {
	got := HighlightANSI("plain †hit‡ tail")
	assert.Equal(t, "plain \x1b[31mhit\x1b[0m tail", got)
}

func TestHighlightANSINoMarkers(t *testing.T) {
	assert.Equal(t, "nothing here", HighlightANSI("nothing here"))
}

func TestStripHighlight(t *testing.T) {
	assert.Equal(t, "a hit b", StripHighlight("a †hit‡ b"))
}

func TestCleanupHTML(t *testing.T) {
	got := CleanupHTML("a&nbsp;&lt;b&gt;<br>&amp;c")
	assert.Equal(t, "a <b>&c", got)
}

func TestRemovePlusMimes(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"middle", "cats mime:application/pdf dogs", "cats dogs"},
		{"start", "mime:text/plain cats", "cats"},
		{"keeps exclusions", "cats mime:text/plain -mime:message/rfc822", "cats -mime:message/rfc822"},
		{"none", "cats dogs", "cats dogs"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RemovePlusMimes(tt.query))
		})
	}
}

func TestWithMimeReplacesExisting(t *testing.T) {
	got := WithMime("cats mime:text/plain", "application/pdf")
	assert.Equal(t, "cats mime:application/pdf", got)
}

func TestWithoutMime(t *testing.T) {
	assert.Equal(t, "cats -mime:image/png", WithoutMime("cats", "image/png"))
}

func TestRemoveMinusMimes(t *testing.T) {
	got := RemoveMinusMimes("cats -mime:image/png mime:text/plain dogs")
	assert.Equal(t, "cats mime:text/plain dogs", got)
}

func TestDateRange(t *testing.T) {
	from, to, ok := DateRange("cats date:2024-01-15/2024-03-01 dogs")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), to)
}

func TestDateRangeAbsent(t *testing.T) {
	_, _, ok := DateRange("cats dogs")
	assert.False(t, ok)
}

func TestWithDateRangeAppends(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "cats date:2024-01-01/2024-02-01", WithDateRange("cats", from, to))
}

func TestWithDateRangeReplaces(t *testing.T) {
	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	got := WithDateRange("cats date:2024-01-01/2024-02-01 dogs", from, to)
	assert.Equal(t, "cats date:2025-06-01/2025-07-01 dogs", got)
}

func TestReadableSize(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 b"},
		{512, "512 b"},
		{2048, "2 Kb"},
		{3 * 1024 * 1024, "3 Mb"},
		{5 * 1024 * 1024 * 1024, "5 Gb"},
		{2 * 1024 * 1024 * 1024 * 1024, "2 Tb"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ReadableSize(tt.n))
	}
}

func TestOrBlank(t *testing.T) {
	assert.Equal(t, "x", OrBlank("x", "f"))
	assert.Equal(t, "f", OrBlank("  ", "f"))
}
