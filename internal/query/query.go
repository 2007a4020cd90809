// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package query manipulates recoll query strings and renders server text
// for the terminal: mime-filter stripping, date-range fragments, snippet
// highlight markers, and human-readable sizes.
package query

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// The server brackets query-term hits in preview and snippet text with
// these markers.
const (
	StartHighlight = "†"
	EndHighlight   = "‡"
)

const (
	ansiRed   = "\x1b[31m"
	ansiReset = "\x1b[0m"
)

var highlightSplitter = regexp.MustCompile(StartHighlight + "|" + EndHighlight)

// HighlightANSI converts the server's highlight markers to ANSI colour.
// Segments between a start and end marker alternate into red.
func HighlightANSI(s string) string {
	var b strings.Builder
	highlighting := false
	for _, part := range highlightSplitter.Split(s, -1) {
		if highlighting {
			b.WriteString(ansiRed)
			b.WriteString(part)
			b.WriteString(ansiReset)
		} else {
			b.WriteString(part)
		}
		highlighting = !highlighting
	}
	return b.String()
}

// StripHighlight removes the markers without colouring.
func StripHighlight(s string) string {
	return highlightSplitter.ReplaceAllString(s, "")
}

// CleanupHTML undoes the server's HTML escaping in abstract/preview text.
var htmlReplacer = strings.NewReplacer(
	"<br>", "",
	"&amp;", "&",
	"&nbsp;", " ",
	"&lt;", "<",
	"&gt;", ">",
)

func CleanupHTML(s string) string {
	return htmlReplacer.Replace(s)
}

var (
	plusMimeRe  = regexp.MustCompile(`(^|[^-])mime:\S+`)
	minusMimeRe = regexp.MustCompile(`-mime:\S+`)
	whitespace  = regexp.MustCompile(`\s+`)
)

// WithMime restricts the query to one document type, replacing any
// positive mime: filter already present.
func WithMime(q, mime string) string {
	return squeeze(RemovePlusMimes(q) + " mime:" + mime)
}

// WithoutMime excludes one document type from the query.
func WithoutMime(q, mime string) string {
	return squeeze(q + " -mime:" + mime)
}

// RemoveMinusMimes strips every -mime: exclusion from the query.
func RemoveMinusMimes(q string) string {
	return squeeze(minusMimeRe.ReplaceAllString(q, ""))
}

// RemovePlusMimes strips every positive mime: filter from the query,
// leaving exclusions alone.
func RemovePlusMimes(q string) string {
	return squeeze(plusMimeRe.ReplaceAllString(q, "$1"))
}

func squeeze(q string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(q, " "))
}

// DatePattern is the wire format of date-range bounds.
const DatePattern = "2006-01-02"

var dateRangeRe = regexp.MustCompile(`\bdate:(\d{4}-\d{2}-\d{2})/(\d{4}-\d{2}-\d{2})\b`)

// DateRange extracts the date:FROM/TO fragment from a query. ok is false
// when the query carries no (parseable) range.
func DateRange(q string) (from, to time.Time, ok bool) {
	m := dateRangeRe.FindStringSubmatch(q)
	if m == nil {
		return time.Time{}, time.Time{}, false
	}
	from, err := time.Parse(DatePattern, m[1])
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	to, err = time.Parse(DatePattern, m[2])
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

// WithDateRange replaces (or appends) the query's date-range fragment.
func WithDateRange(q string, from, to time.Time) string {
	fragment := fmt.Sprintf("date:%s/%s", from.Format(DatePattern), to.Format(DatePattern))
	if dateRangeRe.MatchString(q) {
		return dateRangeRe.ReplaceAllString(q, fragment)
	}
	return squeeze(q + " " + fragment)
}

// Size-unit boundaries.
const (
	kb int64 = 1024
	mb       = kb * kb
	gb       = mb * kb
	tb       = gb * kb
)

// ReadableSize renders a byte count the way the results list shows it.
func ReadableSize(n int64) string {
	switch {
	case n < kb:
		return fmt.Sprintf("%d b", n)
	case n < mb:
		return fmt.Sprintf("%d Kb", n/kb)
	case n < gb:
		return fmt.Sprintf("%d Mb", n/mb)
	case n < tb:
		return fmt.Sprintf("%d Gb", n/gb)
	default:
		return fmt.Sprintf("%d Tb", n/tb)
	}
}

// OrBlank substitutes fallback when s is blank.
func OrBlank(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
