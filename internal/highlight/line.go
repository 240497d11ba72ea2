package highlight

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/rview/internal/search"
)

const (
	blockOpen  = "/*"
	blockClose = "*/"
)

// Options selects how a line is highlighted.
type Options struct {
	Language Language
	// Query is the search text; empty disables the overlay.
	Query   string
	Palette Palette
	// Foreground colors plain text. tcell.ColorDefault falls back to
	// Palette.Foreground.
	Foreground tcell.Color
	// Syntax enables comment, string and token coloring. The search overlay
	// applies either way.
	Syntax bool
	// CurrentMatch is the ordinal of the match drawn with SearchCurrent.
	CurrentMatch int
}

// HighlightLine colors one line and returns spans that cover it exactly, in
// order. carry is read and updated; pass the same Carry to every line of a
// document, top to bottom.
func HighlightLine(line string, opts Options, carry *Carry) []Span {
	return highlightLine(line, opts, search.NewMatcher(opts.Query), carry)
}

func highlightLine(line string, opts Options, matcher search.Matcher, carry *Carry) []Span {
	if carry == nil {
		carry = &Carry{}
	}
	b := newLineBuilder(line, opts, matcher, carry)

	if !opts.Syntax {
		b.emit(line, KindPlain, b.base)
	} else {
		b.resolveComments(line)
	}

	carry.MatchCounter += len(b.matches)
	return b.spans
}

// resolveComments splits the line into comment and code regions according to
// the language's comment rules and hands code regions to the string scanner.
func (b *lineBuilder) resolveComments(line string) {
	style, prefix := b.opts.Language.Comments()
	switch style {
	case CommentLineAndBlock:
		b.resolveBlockComments(line)
	case CommentLine:
		if idx := strings.Index(line, prefix); idx >= 0 {
			b.code(line[:idx])
			b.comment(line[idx:])
			return
		}
		b.code(line)
	default:
		b.code(line)
	}
}

func (b *lineBuilder) resolveBlockComments(line string) {
	rest := line
	if b.carry.InBlockComment {
		end := strings.Index(rest, blockClose)
		if end == -1 {
			b.comment(rest)
			return
		}
		end += len(blockClose)
		b.comment(rest[:end])
		b.carry.InBlockComment = false
		rest = rest[end:]
	}

	for rest != "" {
		lineIdx := strings.Index(rest, "//")
		blockIdx := strings.Index(rest, blockOpen)

		switch {
		case lineIdx == -1 && blockIdx == -1:
			b.code(rest)
			return
		case lineIdx != -1 && (blockIdx == -1 || lineIdx < blockIdx):
			b.code(rest[:lineIdx])
			b.comment(rest[lineIdx:])
			return
		}

		b.code(rest[:blockIdx])
		tail := rest[blockIdx+len(blockOpen):]
		closeIdx := strings.Index(tail, blockClose)
		if closeIdx == -1 {
			b.comment(rest[blockIdx:])
			b.carry.InBlockComment = true
			return
		}
		stop := blockIdx + len(blockOpen) + closeIdx + len(blockClose)
		b.comment(rest[blockIdx:stop])
		rest = rest[stop:]
	}
}

func (b *lineBuilder) comment(text string) {
	b.emit(text, KindComment, b.opts.Palette.Comment)
}

// code extracts double-quoted string literals; the text between them goes to
// the tokenizer. An unterminated string runs to the end of text.
func (b *lineBuilder) code(text string) {
	pending := 0
	for i := 0; i < len(text); i++ {
		if text[i] != '"' || isEscaped(text, i) {
			continue
		}
		b.tokens(text[pending:i])
		end := closingQuote(text, i+1)
		b.emit(text[i:end], KindString, b.opts.Palette.String)
		pending = end
		i = end - 1
	}
	b.tokens(text[pending:])
}

func isEscaped(text string, i int) bool {
	backslashes := 0
	for j := i - 1; j >= 0 && text[j] == '\\'; j-- {
		backslashes++
	}
	return backslashes%2 == 1
}

// closingQuote returns the offset just past the next double quote at or
// after from, or len(text) when the string is unterminated. Backslashes do
// not escape a closing quote; only an opening quote can be escaped.
func closingQuote(text string, from int) int {
	if j := strings.IndexByte(text[from:], '"'); j >= 0 {
		return from + j + 1
	}
	return len(text)
}

// tokens splits text into maximal word runs and single-rune delimiters.
func (b *lineBuilder) tokens(text string) {
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if !isWordRune(r) {
			b.delimiter(text[i:i+size], r)
			i += size
			continue
		}
		j := i + size
		for j < len(text) {
			next, n := utf8.DecodeRuneInString(text[j:])
			if !isWordRune(next) {
				break
			}
			j += n
		}
		word := text[i:j]
		kind := classifyWord(b.opts.Language, word)
		b.emit(word, kind, b.opts.Palette.kindColor(kind, b.base))
		i = j
	}
}

func (b *lineBuilder) delimiter(text string, r rune) {
	switch r {
	case '(', '[', '{':
		color := b.opts.Palette.BracketColor(b.carry.BracketDepth)
		if b.carry.BracketDepth < math.MaxInt {
			b.carry.BracketDepth++
		}
		b.emit(text, KindBracket, color)
	case ')', ']', '}':
		if b.carry.BracketDepth > math.MinInt {
			b.carry.BracketDepth--
		}
		b.emit(text, KindBracket, b.opts.Palette.BracketColor(b.carry.BracketDepth))
	default:
		kind := KindDelimiter
		if unicode.IsSpace(r) {
			kind = KindPlain
		}
		b.emit(text, kind, b.base)
	}
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// classifyWord is a pure function from a word to its category: reserved word,
// literal keyword, decimal number, or plain identifier.
func classifyWord(lang Language, word string) Kind {
	switch {
	case lang.IsKeyword(word):
		return KindKeyword
	case isLiteralWord(word):
		return KindLiteral
	case isDecimal(word):
		return KindNumber
	default:
		return KindPlain
	}
}

func isLiteralWord(word string) bool {
	if len(word) < 4 || len(word) > 5 {
		return false
	}
	return strings.EqualFold(word, "true") ||
		strings.EqualFold(word, "false") ||
		strings.EqualFold(word, "null") ||
		strings.EqualFold(word, "none")
}

func isDecimal(word string) bool {
	if word == "" {
		return false
	}
	for i := 0; i < len(word); i++ {
		if word[i] < '0' || word[i] > '9' {
			return false
		}
	}
	return true
}
