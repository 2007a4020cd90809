// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// UnmarshalJSON decodes a result, leaving sentinel values ("UNKNOWN", -1)
// in any field the server omitted.
func (r *SearchResult) UnmarshalJSON(data []byte) error {
	type plain SearchResult
	p := plain(*NewSearchResult())
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = SearchResult(p)
	return nil
}

// Relevancy is a document's relevancy percentage. The server sends it as a
// percent-suffixed string ("24%", sometimes with leading whitespace); it
// round-trips as a string with one decimal place ("24.0%").
type Relevancy float64

func (p Relevancy) String() string {
	return strconv.FormatFloat(float64(p), 'f', 1, 64) + "%"
}

func (p *Relevancy) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	s = strings.TrimSpace(s)
	s, _, _ = strings.Cut(s, "%")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("parsing relevancy %q: %w", s, err)
	}
	*p = Relevancy(f)
	return nil
}

func (p Relevancy) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// BreakPair is one (byte offset, page number) page-break marker inside a
// multi-page document.
type BreakPair struct {
	Ofs  int64
	Page int64
}

// BreakList is the document's page-break table. The wire format is a single
// comma-joined string of alternating offsets and page numbers:
// "955,1,1307,1" is the two pairs (955,1) and (1307,1).
type BreakList []BreakPair

func (b *BreakList) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*b = nil
		return nil
	}
	fields := strings.Split(s, ",")
	if len(fields)%2 != 0 {
		return fmt.Errorf("multi-breaks %q: odd number of values", s)
	}
	pairs := make(BreakList, 0, len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		ofs, err := strconv.ParseInt(strings.TrimSpace(fields[i]), 10, 64)
		if err != nil {
			return fmt.Errorf("multi-breaks %q: %w", s, err)
		}
		page, err := strconv.ParseInt(strings.TrimSpace(fields[i+1]), 10, 64)
		if err != nil {
			return fmt.Errorf("multi-breaks %q: %w", s, err)
		}
		pairs = append(pairs, BreakPair{Ofs: ofs, Page: page})
	}
	*b = pairs
	return nil
}

func (b BreakList) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

func (b BreakList) String() string {
	parts := make([]string, len(b))
	for i, p := range b {
		parts[i] = fmt.Sprintf("%d,%d", p.Ofs, p.Page)
	}
	return strings.Join(parts, ",")
}
