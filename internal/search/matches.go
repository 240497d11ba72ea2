package search

import (
	"strings"
	"unicode"
	"unicode/utf8"

	textutil "github.com/kk-code-lab/rview/internal/textutil"
)

// Range is a half-open byte range [Start, End) within one line.
type Range struct {
	Start int
	End   int
}

// Matcher finds non-overlapping case-insensitive occurrences of a literal query.
// The zero value matches nothing.
type Matcher struct {
	needle []rune
	lower  string
	ascii  bool
}

// NewMatcher compiles query for repeated line scans.
func NewMatcher(query string) Matcher {
	if query == "" {
		return Matcher{}
	}
	m := Matcher{needle: []rune(query), ascii: isASCII(query)}
	if m.ascii {
		m.lower = lowerASCII(query)
	}
	return m
}

// Empty reports whether the matcher has no query.
func (m Matcher) Empty() bool {
	return len(m.needle) == 0
}

// FindAll returns every match in line, left to right, resuming after each match.
func (m Matcher) FindAll(line string) []Range {
	var out []Range
	m.each(line, func(r Range) bool {
		out = append(out, r)
		return true
	})
	return out
}

// Count reports how many matches FindAll would return for line.
func (m Matcher) Count(line string) int {
	n := 0
	m.each(line, func(Range) bool {
		n++
		return true
	})
	return n
}

func (m Matcher) each(line string, fn func(Range) bool) {
	if m.Empty() || line == "" {
		return
	}

	if m.ascii && isASCII(line) {
		haystack := lowerASCII(line)
		from := 0
		for from <= len(haystack) {
			idx := strings.Index(haystack[from:], m.lower)
			if idx == -1 {
				return
			}
			start := from + idx
			end := start + len(m.lower)
			if !fn(Range{Start: start, End: end}) {
				return
			}
			from = end
		}
		return
	}

	for i := 0; i < len(line); {
		if end, ok := m.matchAt(line, i); ok {
			if !fn(Range{Start: i, End: end}) {
				return
			}
			i = end
			continue
		}
		_, size := utf8.DecodeRuneInString(line[i:])
		i += size
	}
}

// matchAt reports whether the needle matches line at byte offset i and returns
// the byte offset just past the match. Folded runes may differ in encoded length,
// so the end is measured in line, not derived from the query.
func (m Matcher) matchAt(line string, i int) (int, bool) {
	for _, nr := range m.needle {
		if i >= len(line) {
			return 0, false
		}
		hr, size := utf8.DecodeRuneInString(line[i:])
		if !equalFoldRune(hr, nr) {
			return 0, false
		}
		i += size
	}
	return i, true
}

func equalFoldRune(a, b rune) bool {
	if a == b {
		return true
	}
	for r := unicode.SimpleFold(a); r != a; r = unicode.SimpleFold(r) {
		if r == b {
			return true
		}
	}
	return false
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

func lowerASCII(s string) string {
	hasUpper := false
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= 'A' && c <= 'Z' {
			hasUpper = true
			break
		}
	}
	if !hasUpper {
		return s
	}
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}

// CountMatches returns the number of case-insensitive occurrences of query in
// text. Matches never overlap and never span a line break; for any query without
// a line terminator this equals a scan of the whole text.
func CountMatches(text, query string) int {
	m := NewMatcher(query)
	if m.Empty() {
		return 0
	}
	total := 0
	textutil.EachLine(text, func(_ int, line string) bool {
		total += m.Count(line)
		return true
	})
	return total
}

// LocateMatch returns the zero-based index of the line holding match number
// target, counting matches in document order from zero. ok is false when the
// query is empty or the document has no such match.
func LocateMatch(text, query string, target int) (line int, ok bool) {
	m := NewMatcher(query)
	if m.Empty() || target < 0 {
		return 0, false
	}
	ordinal := 0
	textutil.EachLine(text, func(idx int, l string) bool {
		n := m.Count(l)
		if target < ordinal+n {
			line, ok = idx, true
			return false
		}
		ordinal += n
		return true
	})
	return line, ok
}

// Step moves the current match ordinal by delta, wrapping modulo count.
// With no matches the result is always zero.
func Step(current, count, delta int) int {
	if count <= 0 {
		return 0
	}
	next := (current + delta) % count
	if next < 0 {
		next += count
	}
	return next
}
