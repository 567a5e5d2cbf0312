package extract

import (
	"strings"

	"beadcolors/internal/palette"
)

const (
	anchorPrefix  = `["$","div","`
	backgroundKey = `"backgroundColor":"`
	childrenKey   = `"children":"`
)

// Options tunes the scan window.
type Options struct {
	// BoundToNextMarker stops the search for a record's background color and
	// name at the next anchor of the same brand. The window always stops at
	// the end of the line.
	BoundToNextMarker bool
}

// DefaultOptions returns the recommended scan options.
func DefaultOptions() Options {
	return Options{BoundToNextMarker: true}
}

// Candidate is one matched record before repair and deduplication.
type Candidate struct {
	Code    string
	Hex     string
	RawName string
	// Offset is the byte offset of the record's anchor.
	Offset int
}

// Scanner walks a dump and yields candidates in text order.
type Scanner struct {
	text    string
	anchor  string
	opts    Options
	pos     int
	cur     Candidate
	anchors int
}

// NewScanner prepares a scan of text for marker.
func NewScanner(text, marker string, opts Options) *Scanner {
	return &Scanner{
		text:   text,
		anchor: anchorPrefix + marker + ":",
		opts:   opts,
	}
}

// Scan advances to the next candidate. It returns false once the text is
// exhausted.
func (s *Scanner) Scan() bool {
	for s.pos < len(s.text) {
		idx := strings.Index(s.text[s.pos:], s.anchor)
		if idx < 0 {
			s.pos = len(s.text)
			return false
		}
		start := s.pos + idx
		s.anchors++
		if c, end, ok := s.match(start); ok {
			s.cur = c
			s.pos = end
			return true
		}
		s.pos = start + 1
	}
	return false
}

// Candidate returns the candidate found by the last successful Scan.
func (s *Scanner) Candidate() Candidate {
	return s.cur
}

// Anchors reports how many anchors have been visited so far.
func (s *Scanner) Anchors() int {
	return s.anchors
}

func (s *Scanner) match(start int) (Candidate, int, bool) {
	codeStart := start + len(s.anchor)
	q := strings.IndexByte(s.text[codeStart:], '"')
	if q <= 0 {
		return Candidate{}, 0, false
	}
	code := s.text[codeStart : codeStart+q]
	cursor := codeStart + q + 1
	limit := s.windowEnd(cursor)

	hex, cursor, ok := findBackground(s.text, cursor, limit)
	if !ok {
		return Candidate{}, 0, false
	}
	name, end, ok := findName(s.text, cursor, limit)
	if !ok {
		return Candidate{}, 0, false
	}
	return Candidate{Code: code, Hex: strings.ToUpper(hex), RawName: name, Offset: start}, end, true
}

func (s *Scanner) windowEnd(from int) int {
	limit := len(s.text)
	if nl := strings.IndexByte(s.text[from:], '\n'); nl >= 0 {
		limit = from + nl
	}
	if s.opts.BoundToNextMarker {
		if next := strings.Index(s.text[from:limit], s.anchor); next >= 0 {
			limit = from + next
		}
	}
	return limit
}

// findBackground returns the first well-formed #RRGGBB value in
// text[from:limit], without the '#', and the offset just past its quote.
func findBackground(text string, from, limit int) (string, int, bool) {
	for from < limit {
		idx := strings.Index(text[from:limit], backgroundKey)
		if idx < 0 {
			return "", 0, false
		}
		p := from + idx + len(backgroundKey)
		if p+8 <= len(text) && text[p] == '#' && text[p+7] == '"' && allHex(text[p+1:p+7]) {
			return text[p+1 : p+7], p + 8, true
		}
		from = from + idx + 1
	}
	return "", 0, false
}

// findName returns the first non-empty "children" string whose key starts in
// text[from:limit]. The value itself runs to the next quote.
func findName(text string, from, limit int) (string, int, bool) {
	for from < limit {
		idx := strings.Index(text[from:limit], childrenKey)
		if idx < 0 {
			return "", 0, false
		}
		p := from + idx + len(childrenKey)
		q := strings.IndexByte(text[p:], '"')
		if q < 0 {
			return "", 0, false
		}
		if q > 0 {
			return text[p : p+q], p + q + 1, true
		}
		from = from + idx + 1
	}
	return "", 0, false
}

func allHex(s string) bool {
	for i := 0; i < len(s); i++ {
		if !palette.IsHexDigit(s[i]) {
			return false
		}
	}
	return true
}
