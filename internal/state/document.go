package state

import (
	fsutil "github.com/kk-code-lab/rview/internal/fs"
	"github.com/kk-code-lab/rview/internal/highlight"
	textutil "github.com/kk-code-lab/rview/internal/textutil"
)

const (
	// HighlightByteThreshold is the largest text that gets syntax coloring,
	// search counting and the search overlay.
	HighlightByteThreshold = 200_000
	// BigTextByteThreshold and BigTextLineThreshold mark a document as big;
	// big documents also lose the line-number gutter.
	BigTextByteThreshold = 500_000
	BigTextLineThreshold = 50_000
)

// Document is a loaded text file split into display lines.
type Document struct {
	Path     string
	Text     string
	Lines    []string
	Size     int64
	Encoding fsutil.Encoding
	Lossy    bool
	// Formatting is set when the text holds bidi or zero-width control
	// runes; they are drawn as visible labels.
	Formatting bool
	Language   highlight.Language
	// Generation changes every time a document is loaded, including reloads.
	Generation uint64
}

// NewDocument wraps a decoded file.
func NewDocument(file *fsutil.TextFile, generation uint64) *Document {
	return &Document{
		Path:       file.Path,
		Text:       file.Text,
		Lines:      textutil.SplitLines(file.Text),
		Size:       file.Size,
		Encoding:   file.Encoding,
		Lossy:      file.Lossy,
		Formatting: textutil.HasFormattingRunes(file.Text),
		Language:   highlight.LanguageForPath(file.Path),
		Generation: generation,
	}
}

// LineCount returns the number of display lines.
func (d *Document) LineCount() int {
	if d == nil {
		return 0
	}
	return len(d.Lines)
}

// Big reports whether the document is too large for the heavier features.
func (d *Document) Big() bool {
	if d == nil {
		return false
	}
	return len(d.Text) >= BigTextByteThreshold || len(d.Lines) >= BigTextLineThreshold
}

// HighlightAllowed reports whether syntax coloring and search may run.
func (d *Document) HighlightAllowed() bool {
	if d == nil {
		return false
	}
	return !d.Big() && len(d.Text) <= HighlightByteThreshold
}
