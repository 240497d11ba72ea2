package state

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/kk-code-lab/rview/internal/config"
	fsutil "github.com/kk-code-lab/rview/internal/fs"
	"github.com/kk-code-lab/rview/internal/logging"
	"github.com/kk-code-lab/rview/internal/search"
	"github.com/kk-code-lab/rview/internal/theme"
	"github.com/patrickmn/go-cache"
)

const (
	matchCountTTL     = 5 * time.Minute
	matchCountCleanup = 10 * time.Minute
	horizontalStep    = 8
)

var log = logging.NewLogger("state")

// StateReducer applies actions to an AppState.
type StateReducer struct {
	generation  uint64
	matchCounts *cache.Cache
}

// NewStateReducer creates a new reducer
func NewStateReducer() *StateReducer {
	return &StateReducer{
		matchCounts: cache.New(matchCountTTL, matchCountCleanup),
	}
}

// NewAppState builds the initial state from the loaded configuration.
func NewAppState(cfg config.Config) *AppState {
	s := &AppState{
		ThemeID:         theme.Resolve(cfg.Theme),
		ColorOverrides:  cfg.Colors,
		ShowLineNumbers: cfg.ShowLineNumbers,
		WordWrap:        cfg.WordWrap,
		Syntax:          cfg.Syntax,
		TabWidth:        cfg.TabWidth,
		RecentFiles:     append([]string(nil), cfg.RecentFiles...),
	}
	if err := s.applyTheme(); err != nil {
		s.LastError = err
	}
	return s
}

// Settings copies the persisted fields of s into cfg.
func (s *AppState) Settings(cfg config.Config) config.Config {
	cfg.Theme = s.ThemeID
	cfg.ShowLineNumbers = s.ShowLineNumbers
	cfg.WordWrap = s.WordWrap
	cfg.Syntax = s.Syntax
	cfg.RecentFiles = append([]string(nil), s.RecentFiles...)
	return cfg
}

func (s *AppState) applyTheme() error {
	palette, err := config.PaletteFor(s.ThemeID, s.ColorOverrides)
	s.Palette = palette
	return err
}

// Reduce applies action to state. Load failures are reported through
// state.ErrorMessage; the returned error is for unexpected failures only.
func (r *StateReducer) Reduce(state *AppState, action Action) (*AppState, error) {
	switch a := action.(type) {

	// ===== SCROLL =====

	case ScrollUpAction:
		state.ScrollOffset--
		state.clampScroll()
	case ScrollDownAction:
		state.ScrollOffset++
		state.clampScroll()
	case ScrollPageUpAction:
		state.ScrollOffset -= state.TextAreaHeight()
		state.clampScroll()
	case ScrollPageDownAction:
		state.ScrollOffset += state.TextAreaHeight()
		state.clampScroll()
	case ScrollHomeAction:
		state.ScrollOffset = 0
		state.ColumnOffset = 0
	case ScrollEndAction:
		state.ScrollOffset = state.maxScroll()
	case ScrollLeftAction:
		state.ColumnOffset -= horizontalStep
		state.clampScroll()
	case ScrollRightAction:
		if !state.WordWrap {
			state.ColumnOffset += horizontalStep
		}

	// ===== SEARCH =====

	case SearchStartAction:
		if state.Document == nil {
			return state, nil
		}
		state.SearchActive = true
		state.clampScroll()
	case SearchCharAction:
		if !state.SearchActive {
			return state, nil
		}
		r.setQuery(state, state.SearchQuery+string(a.Char))
	case SearchBackspaceAction:
		if !state.SearchActive || state.SearchQuery == "" {
			return state, nil
		}
		runes := []rune(state.SearchQuery)
		r.setQuery(state, string(runes[:len(runes)-1]))
	case SearchDeleteWordAction:
		if !state.SearchActive || state.SearchQuery == "" {
			return state, nil
		}
		r.setQuery(state, deleteLastWord(state.SearchQuery))
	case SearchSetQueryAction:
		r.setQuery(state, a.Query)
	case SearchConfirmAction:
		state.SearchActive = false
		state.clampScroll()
		if a.Step != 0 {
			r.stepMatch(state, a.Step)
		}
	case SearchCancelAction:
		state.SearchActive = false
		r.setQuery(state, "")
	case SearchNextAction:
		r.stepMatch(state, 1)
	case SearchPrevAction:
		r.stepMatch(state, -1)

	// ===== VIEW =====

	case ResizeAction:
		state.ScreenWidth = a.Width
		state.ScreenHeight = a.Height
		state.clampScroll()
	case CycleThemeAction:
		state.ThemeID = theme.Next(state.ThemeID)
		state.markSettingsDirty()
		return state, state.applyTheme()
	case SetThemeAction:
		state.ThemeID = theme.Resolve(a.ID)
		state.markSettingsDirty()
		return state, state.applyTheme()
	case ToggleLineNumbersAction:
		state.ShowLineNumbers = !state.ShowLineNumbers
		state.markSettingsDirty()
	case ToggleWordWrapAction:
		state.WordWrap = !state.WordWrap
		state.clampScroll()
		state.markSettingsDirty()
	case ToggleSyntaxAction:
		state.Syntax = !state.Syntax
		state.markSettingsDirty()
	case HelpToggleAction:
		state.HelpVisible = !state.HelpVisible
	case HelpHideAction:
		state.HelpVisible = false

	// ===== FILES =====

	case OpenFileAction:
		r.open(state, a.Path)
	case OpenRecentAction:
		if a.Index < 0 || a.Index >= len(state.RecentFiles) {
			return state, nil
		}
		r.open(state, state.RecentFiles[a.Index])
	case OpenNeighborAction:
		if state.Path == "" {
			return state, nil
		}
		next, ok := fsutil.Neighbor(state.Path, a.Forward, nil)
		if !ok {
			return state, nil
		}
		r.open(state, next)
	case ReloadAction:
		r.reload(state)

	default:
		return state, fmt.Errorf("unhandled action %T", action)
	}

	return state, nil
}

// setQuery replaces the search query, recounts, resets the current match to
// the first one and scrolls it into the middle of the view.
func (r *StateReducer) setQuery(s *AppState, query string) {
	s.SearchQuery = query
	s.SearchCurrent = 0
	r.recount(s)
	r.revealCurrent(s)
}

func (r *StateReducer) recount(s *AppState) {
	s.SearchCount = 0
	doc := s.Document
	if s.SearchQuery == "" || !doc.HighlightAllowed() {
		return
	}

	key := fmt.Sprintf("%d\x00%s", doc.Generation, s.SearchQuery)
	if cached, ok := r.matchCounts.Get(key); ok {
		s.SearchCount = cached.(int)
		return
	}
	s.SearchCount = search.CountMatches(doc.Text, s.SearchQuery)
	r.matchCounts.SetDefault(key, s.SearchCount)
}

func (r *StateReducer) stepMatch(s *AppState, delta int) {
	if s.SearchCount == 0 {
		return
	}
	s.SearchCurrent = search.Step(s.SearchCurrent, s.SearchCount, delta)
	r.revealCurrent(s)
}

func (r *StateReducer) revealCurrent(s *AppState) {
	if s.Document == nil || s.SearchCount == 0 {
		return
	}
	line, ok := search.LocateMatch(s.Document.Text, s.SearchQuery, s.SearchCurrent)
	if !ok {
		return
	}
	s.centerOn(line)
	if !s.WordWrap {
		s.ColumnOffset = 0
	}
}

func (r *StateReducer) open(s *AppState, path string) {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	s.Path = path
	s.ErrorMessage = ""
	s.ScrollOffset = 0
	s.ColumnOffset = 0

	if !r.load(s, path) {
		return
	}
	s.RecentFiles = config.AddRecent(s.RecentFiles, path)
	s.markSettingsDirty()
	r.setQuery(s, s.SearchQuery)
	log.WithField("path", path).Info("opened")
}

func (r *StateReducer) reload(s *AppState) {
	if s.Path == "" {
		return
	}
	s.ErrorMessage = ""
	if !r.load(s, s.Path) {
		return
	}
	current := s.SearchCurrent
	r.recount(s)
	if current < s.SearchCount {
		s.SearchCurrent = current
	} else {
		s.SearchCurrent = 0
	}
	s.clampScroll()
	log.WithField("path", s.Path).Debug("reloaded")
}

// load replaces the content of s with path. It reports false when the file
// could not be shown; the reason is left in ErrorMessage.
func (r *StateReducer) load(s *AppState, path string) bool {
	if fsutil.IsSupportedImage(path) {
		info, err := fsutil.LoadImageInfo(path)
		s.Document = nil
		s.Image = info
		s.SearchActive = false
		s.SearchCount = 0
		s.SearchCurrent = 0
		if err != nil {
			s.ErrorMessage = describeLoadError(err)
			log.WithError(err).WithField("path", path).Warn("image rejected")
			return errors.Is(err, fsutil.ErrImageTooLarge)
		}
		return true
	}

	file, err := fsutil.LoadText(path)
	if err != nil {
		s.Document = nil
		s.Image = nil
		s.SearchCount = 0
		s.SearchCurrent = 0
		s.ErrorMessage = describeLoadError(err)
		log.WithError(err).WithField("path", path).Warn("load failed")
		return false
	}
	r.generation++
	s.Document = NewDocument(file, r.generation)
	s.Image = nil
	return true
}

func describeLoadError(err error) string {
	switch {
	case errors.Is(err, fsutil.ErrFileTooLarge):
		return fmt.Sprintf("File too large (limit %.0f MB)", float64(fsutil.MaxTextFileSize)/1_000_000)
	case errors.Is(err, fsutil.ErrNotText):
		return "Not a text file"
	case errors.Is(err, fsutil.ErrImageTooLarge):
		return "Image too large: " + strings.TrimSuffix(err.Error(), ": "+fsutil.ErrImageTooLarge.Error())
	default:
		return err.Error()
	}
}

func deleteLastWord(query string) string {
	runes := []rune(query)
	i := len(runes)
	for i > 0 && unicode.IsSpace(runes[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(runes[i-1]) {
		i--
	}
	return string(runes[:i])
}
