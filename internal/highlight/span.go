// Package highlight turns single lines of text into colored spans: comments,
// strings, keywords, numbers, literal keywords, depth-colored brackets and a
// case-insensitive search overlay. State that crosses line boundaries lives in
// a caller-owned Carry threaded through one top-to-bottom pass.
package highlight

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Kind is the lexical category a span was colored for.
type Kind int

const (
	KindPlain Kind = iota
	KindKeyword
	KindLiteral
	KindNumber
	KindString
	KindComment
	KindBracket
	KindDelimiter
)

func (k Kind) String() string {
	switch k {
	case KindPlain:
		return "plain"
	case KindKeyword:
		return "keyword"
	case KindLiteral:
		return "literal"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindComment:
		return "comment"
	case KindBracket:
		return "bracket"
	case KindDelimiter:
		return "delimiter"
	default:
		return "unknown"
	}
}

// MatchKind tells whether a span is part of a search match.
type MatchKind int

const (
	MatchNone MatchKind = iota
	MatchHit
	MatchCurrent
)

// Span is a colored slice of a line. Background is tcell.ColorDefault unless
// the span is part of a search match.
type Span struct {
	Text       string
	Foreground tcell.Color
	Background tcell.Color
	Kind       Kind
	Match      MatchKind
}

// Carry is the state threaded across consecutive HighlightLine calls of one
// document pass. The zero value is the state at the top of a document.
type Carry struct {
	// BracketDepth may go negative when closers outnumber openers; it is
	// clamped to zero only when picking a color.
	BracketDepth int
	// InBlockComment is true when the previous line ended inside /* ... */.
	InBlockComment bool
	// MatchCounter is the ordinal of the next search match to be found.
	MatchCounter int
}

// Reset returns the carry to the top-of-document state.
func (c *Carry) Reset() {
	*c = Carry{}
}

// JoinText concatenates span texts; for the output of HighlightLine it
// reproduces the input line.
func JoinText(spans []Span) string {
	var b strings.Builder
	for _, sp := range spans {
		b.WriteString(sp.Text)
	}
	return b.String()
}
