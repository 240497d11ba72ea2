package state

import (
	"time"

	fsutil "github.com/kk-code-lab/rview/internal/fs"
	"github.com/kk-code-lab/rview/internal/highlight"
	"github.com/kk-code-lab/rview/internal/search"
)

// AppState is the single source of truth
type AppState struct {
	// Content. At most one of Document and Image is set.
	Path     string
	Document *Document
	Image    *fsutil.ImageInfo

	// Appearance
	ThemeID         string
	Palette         highlight.Palette
	ColorOverrides  map[string]string
	ShowLineNumbers bool
	WordWrap        bool
	Syntax          bool
	TabWidth        int

	// Search
	SearchActive  bool // prompt is open and receiving keys
	SearchQuery   string
	SearchCount   int
	SearchCurrent int

	// Viewport
	ScrollOffset int // first visible document line
	ColumnOffset int // first visible display column when not wrapping
	ScreenWidth  int
	ScreenHeight int

	HelpVisible bool
	RecentFiles []string

	// Status line
	ClipboardAvailable bool
	LastYankTime       time.Time
	EditorAvailable    bool

	// ErrorMessage is shown in place of content; it does not end the session.
	ErrorMessage string
	LastError    error

	settingsDirty bool
	passCache     *passCheckpoints
}

// HasText reports whether a text document is loaded.
func (s *AppState) HasText() bool {
	return s.Document != nil
}

// TextAreaHeight returns the number of screen rows available for content.
func (s *AppState) TextAreaHeight() int {
	h := s.ScreenHeight - 2 // header and status line
	if s.SearchActive {
		h--
	}
	if s.ErrorMessage != "" && s.Document != nil {
		h--
	}
	if h < 1 {
		h = 1
	}
	return h
}

// EffectiveSyntax reports whether syntax coloring runs for the document.
func (s *AppState) EffectiveSyntax() bool {
	return s.Syntax && s.Document.HighlightAllowed()
}

// EffectiveQuery is the query fed to the highlighter. It is empty when the
// document is too large to count matches, so the overlay never shows
// matches the status line does not count.
func (s *AppState) EffectiveQuery() string {
	if !s.Document.HighlightAllowed() {
		return ""
	}
	return s.SearchQuery
}

// LineNumbersVisible reports whether the gutter is drawn.
func (s *AppState) LineNumbersVisible() bool {
	return s.ShowLineNumbers && s.Document != nil && !s.Document.Big()
}

// HighlightOptions builds the per-line options of the current view.
func (s *AppState) HighlightOptions() highlight.Options {
	opts := highlight.Options{
		Palette:      s.Palette,
		Syntax:       s.EffectiveSyntax(),
		Query:        s.EffectiveQuery(),
		CurrentMatch: s.SearchCurrent,
	}
	if s.Document != nil {
		opts.Language = s.Document.Language
	}
	return opts
}

// EditorLine is the 1-based line an external editor should open at: the line
// of the current match while the search has matches, else the first visible
// line. It is 0 without a text document.
func (s *AppState) EditorLine() int {
	if s.Document == nil {
		return 0
	}
	if s.SearchCount > 0 {
		if line, ok := search.LocateMatch(s.Document.Text, s.EffectiveQuery(), s.SearchCurrent); ok {
			return line + 1
		}
	}
	return s.ScrollOffset + 1
}

// ConsumeSettingsDirty reports whether persisted settings changed since the
// last call and clears the flag.
func (s *AppState) ConsumeSettingsDirty() bool {
	dirty := s.settingsDirty
	s.settingsDirty = false
	return dirty
}

func (s *AppState) markSettingsDirty() {
	s.settingsDirty = true
}

// maxScroll is the largest ScrollOffset that still fills the text area.
func (s *AppState) maxScroll() int {
	limit := s.Document.LineCount() - s.TextAreaHeight()
	if limit < 0 {
		return 0
	}
	return limit
}

func (s *AppState) clampScroll() {
	if s.ScrollOffset > s.maxScroll() {
		s.ScrollOffset = s.maxScroll()
	}
	if s.ScrollOffset < 0 {
		s.ScrollOffset = 0
	}
	if s.ColumnOffset < 0 || s.WordWrap {
		s.ColumnOffset = 0
	}
}

// centerOn scrolls so line sits in the middle of the text area.
func (s *AppState) centerOn(line int) {
	s.ScrollOffset = line - s.TextAreaHeight()/2
	s.clampScroll()
}
