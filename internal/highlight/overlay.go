package highlight

import (
	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/rview/internal/search"
)

// lineBuilder collects the spans of one line. Every colored unit passes through
// emit, which lays the line's search matches over it.
type lineBuilder struct {
	opts    Options
	carry   *Carry
	base    tcell.Color
	spans   []Span
	offset  int
	matches []search.Range
	next    int
	ordinal int
}

func newLineBuilder(line string, opts Options, matcher search.Matcher, carry *Carry) *lineBuilder {
	base := opts.Foreground
	if base == tcell.ColorDefault {
		base = opts.Palette.Foreground
	}
	return &lineBuilder{
		opts:    opts,
		carry:   carry,
		base:    base,
		spans:   make([]Span, 0, 8),
		matches: matcher.FindAll(line),
		ordinal: carry.MatchCounter,
	}
}

// emit appends text, which must be the next unclaimed slice of the line.
// Matches are located on the whole line, so one that crosses a unit boundary
// keeps a single ordinal and is split into several background spans.
func (b *lineBuilder) emit(text string, kind Kind, fg tcell.Color) {
	if text == "" {
		return
	}
	start := b.offset
	end := start + len(text)
	b.offset = end

	pos := start
	for b.next < len(b.matches) && pos < end {
		m := b.matches[b.next]
		if m.Start >= end {
			break
		}
		if m.Start > pos {
			b.push(text[pos-start:m.Start-start], kind, fg, MatchNone)
			pos = m.Start
		}
		stop := min(m.End, end)
		b.push(text[pos-start:stop-start], kind, fg, b.matchKind(b.ordinal+b.next))
		pos = stop
		if m.End > end {
			break
		}
		b.next++
	}
	if pos < end {
		b.push(text[pos-start:], kind, fg, MatchNone)
	}
}

func (b *lineBuilder) matchKind(ordinal int) MatchKind {
	if ordinal == b.opts.CurrentMatch {
		return MatchCurrent
	}
	return MatchHit
}

func (b *lineBuilder) push(text string, kind Kind, fg tcell.Color, match MatchKind) {
	span := Span{Text: text, Foreground: fg, Background: tcell.ColorDefault, Kind: kind, Match: match}
	switch match {
	case MatchHit:
		span.Background = b.opts.Palette.SearchMatch
	case MatchCurrent:
		span.Background = b.opts.Palette.SearchCurrent
	}
	b.spans = append(b.spans, span)
}
