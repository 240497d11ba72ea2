package state

// Action is the base interface for all state mutations
type Action interface{}

// ===== SCROLL ACTIONS =====

type ScrollUpAction struct{}
type ScrollDownAction struct{}
type ScrollPageUpAction struct{}
type ScrollPageDownAction struct{}
type ScrollHomeAction struct{}
type ScrollEndAction struct{}
type ScrollLeftAction struct{}
type ScrollRightAction struct{}

// ===== SEARCH ACTIONS =====

type SearchStartAction struct{}
type SearchCharAction struct {
	Char rune
}
type SearchBackspaceAction struct{}
type SearchDeleteWordAction struct{}

// SearchConfirmAction closes the prompt and keeps the query. Step moves the
// current match afterwards (-1 previous, 0 stay, 1 next).
type SearchConfirmAction struct {
	Step int
}

// SearchCancelAction closes the prompt and clears the query.
type SearchCancelAction struct{}
type SearchSetQueryAction struct {
	Query string
}
type SearchNextAction struct{}
type SearchPrevAction struct{}

// ===== VIEW ACTIONS =====

type ResizeAction struct {
	Width  int
	Height int
}

type CycleThemeAction struct{}
type SetThemeAction struct {
	ID string
}
type ToggleLineNumbersAction struct{}
type ToggleWordWrapAction struct{}
type ToggleSyntaxAction struct{}

type HelpToggleAction struct{}
type HelpHideAction struct{}

// ===== FILE ACTIONS =====

type OpenFileAction struct {
	Path string
}
type OpenRecentAction struct {
	Index int
}
type OpenNeighborAction struct {
	Forward bool
}
type ReloadAction struct{}

// ===== APPLICATION ACTIONS =====

type YankPathAction struct{}
type OpenEditorAction struct{}
type SuspendAction struct{}
type QuitAction struct{}
