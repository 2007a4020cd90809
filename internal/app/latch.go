// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package app assembles the application context: the results repository,
// the settings store, and the single-slot latches the UI layer observes.
// Everything is constructed once at startup and passed down explicitly;
// there is no ambient global state.
package app

import (
	"fmt"
	"sync"
)

// AppError is the value held by the error latch.
type AppError struct {
	Msg string
	Err error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	return fmt.Sprintf("%s: %v", e.Msg, e.Err)
}

// ErrorLatch is a single-slot error channel with replay-to-new-subscriber
// semantics. A nil value means "no pending error". Raise is strict: raising
// while an error is already pending is a caller bug and panics. Report is
// the conflating variant used for configuration failures, where a newer
// failure simply replaces the stale one.
type ErrorLatch struct {
	mu      sync.Mutex
	current *AppError
	subs    []chan *AppError
}

// NewErrorLatch returns an empty latch.
func NewErrorLatch() *ErrorLatch { return &ErrorLatch{} }

// Raise stores a new pending error. The slot must be empty: two pending
// errors means a caller ignored the contract, which is not a recoverable
// runtime condition.
func (l *ErrorLatch) Raise(msg string, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.current != nil {
		panic(fmt.Sprintf("error latch already holds %q but got %q", l.current, msg))
	}
	l.setLocked(&AppError{Msg: msg, Err: err})
}

// Report stores an error, replacing any pending one.
func (l *ErrorLatch) Report(msg string, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.setLocked(&AppError{Msg: msg, Err: err})
}

// Clear dismisses the pending error.
func (l *ErrorLatch) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.setLocked(nil)
}

// Current returns the pending error, or nil.
func (l *ErrorLatch) Current() *AppError {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current
}

// Subscribe returns a channel carrying the latch state: the current value
// immediately, then every change. Slow subscribers only ever see the
// latest state; intermediate values are conflated away.
func (l *ErrorLatch) Subscribe() <-chan *AppError {
	l.mu.Lock()
	defer l.mu.Unlock()
	ch := make(chan *AppError, 1)
	ch <- l.current
	l.subs = append(l.subs, ch)
	return ch
}

func (l *ErrorLatch) setLocked(v *AppError) {
	l.current = v
	for _, ch := range l.subs {
		// Drop the undelivered previous state, keep only the latest.
		select {
		case <-ch:
		default:
		}
		ch <- v
	}
}

// DownloadedDocument describes a completed download awaiting opening.
type DownloadedDocument struct {
	Path     string
	MimeType string
}

// DocumentLatch is the single-slot signal for completed downloads. Like
// the error latch, signalling while a document is already pending is a
// caller bug.
type DocumentLatch struct {
	mu      sync.Mutex
	current *DownloadedDocument
}

// NewDocumentLatch returns an empty latch.
func NewDocumentLatch() *DocumentLatch { return &DocumentLatch{} }

// Signal stores an arrived document. The slot must be empty.
func (l *DocumentLatch) Signal(doc DownloadedDocument) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.current != nil {
		panic(fmt.Sprintf("document latch already holds %q but got %q", l.current.Path, doc.Path))
	}
	l.current = &doc
}

// Clear dismisses the pending document.
func (l *DocumentLatch) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.current = nil
}

// Current returns the pending document, or nil.
func (l *DocumentLatch) Current() *DownloadedDocument {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current
}
