// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package app

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorLatchRaiseAndClear(t *testing.T) {
	latch := NewErrorLatch()
	assert.Nil(t, latch.Current())

	cause := errors.New("boom")
	latch.Raise("search failed", cause)

	got := latch.Current()
	require.NotNil(t, got)
	assert.Equal(t, "search failed", got.Msg)
	assert.Equal(t, cause, got.Err)
	assert.Equal(t, "search failed: boom", got.Error())

	latch.Clear()
	assert.Nil(t, latch.Current())
}

func TestErrorLatchRaiseWhileOccupiedPanics(t *testing.T) {
	latch := NewErrorLatch()
	latch.Raise("first", nil)
	assert.Panics(t, func() {
		latch.Raise("second", nil)
	})
}

func TestErrorLatchReportReplaces(t *testing.T) {
	latch := NewErrorLatch()
	latch.Report("first", nil)
	latch.Report("second", nil)
	require.NotNil(t, latch.Current())
	assert.Equal(t, "second", latch.Current().Msg)
}

func TestErrorLatchSubscribeReplaysCurrent(t *testing.T) {
	latch := NewErrorLatch()
	latch.Report("pending", nil)

	sub := latch.Subscribe()
	select {
	case got := <-sub:
		require.NotNil(t, got)
		assert.Equal(t, "pending", got.Msg)
	default:
		t.Fatal("subscriber did not receive the pending error immediately")
	}
}

func TestErrorLatchSubscribeConflates(t *testing.T) {
	latch := NewErrorLatch()
	sub := latch.Subscribe()
	// Undrained subscriber: only the newest state survives.
	latch.Report("one", nil)
	latch.Report("two", nil)
	latch.Clear()
	latch.Report("three", nil)

	got := <-sub
	require.NotNil(t, got)
	assert.Equal(t, "three", got.Msg)
}

func TestErrorLatchSubscribeSeesClear(t *testing.T) {
	latch := NewErrorLatch()
	latch.Report("pending", nil)
	sub := latch.Subscribe()
	latch.Clear()

	assert.Nil(t, <-sub)
}

func TestDocumentLatch(t *testing.T) {
	latch := NewDocumentLatch()
	assert.Nil(t, latch.Current())

	latch.Signal(DownloadedDocument{Path: "/tmp/a.pdf", MimeType: "application/pdf"})
	got := latch.Current()
	require.NotNil(t, got)
	assert.Equal(t, "/tmp/a.pdf", got.Path)

	assert.Panics(t, func() {
		latch.Signal(DownloadedDocument{Path: "/tmp/b.pdf"})
	})

	latch.Clear()
	assert.Nil(t, latch.Current())
}
