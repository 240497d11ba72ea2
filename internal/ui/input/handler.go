package input

import (
	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/rview/internal/state"
)

// InputHandler converts tcell events to Actions
type InputHandler struct {
	actionChan chan statepkg.Action
	state      *statepkg.AppState // Reference to current state for mode checking
}

// NewInputHandler creates a new input handler
func NewInputHandler(actionChan chan statepkg.Action) *InputHandler {
	return &InputHandler{
		actionChan: actionChan,
	}
}

// SetState sets the state reference for mode checking
func (ih *InputHandler) SetState(state *statepkg.AppState) {
	ih.state = state
}

// ProcessEvent converts a tcell event into an Action. It returns false once
// the user asked to quit.
func (ih *InputHandler) ProcessEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return ih.processKeyEvent(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		ih.actionChan <- statepkg.ResizeAction{Width: w, Height: h}
		return true
	case *tcell.EventMouse:
		switch ev.Buttons() {
		case tcell.WheelUp:
			ih.emit(statepkg.ScrollUpAction{}, statepkg.ScrollUpAction{}, statepkg.ScrollUpAction{})
		case tcell.WheelDown:
			ih.emit(statepkg.ScrollDownAction{}, statepkg.ScrollDownAction{}, statepkg.ScrollDownAction{})
		}
		return true
	default:
		return true
	}
}

func (ih *InputHandler) emit(actions ...statepkg.Action) {
	for _, a := range actions {
		ih.actionChan <- a
	}
}

// processKeyEvent handles keyboard input
func (ih *InputHandler) processKeyEvent(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC {
		ih.actionChan <- statepkg.QuitAction{}
		return false
	}

	helpVisible := ih.state != nil && ih.state.HelpVisible
	searchActive := ih.state != nil && ih.state.SearchActive

	switch {
	case helpVisible:
		ih.processHelpKey(ev)
		return true
	case searchActive:
		ih.processPromptKey(ev)
		return true
	}

	if ih.processNavigationKey(ev) {
		return true
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		if ih.state != nil && ih.state.SearchQuery != "" {
			ih.actionChan <- statepkg.SearchCancelAction{}
		}
		return true
	case tcell.KeyCtrlZ:
		ih.actionChan <- statepkg.SuspendAction{}
		return true
	case tcell.KeyRune:
		return ih.processRune(ev.Rune())
	}
	return true
}

func (ih *InputHandler) processHelpKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		ih.actionChan <- statepkg.HelpHideAction{}
	case tcell.KeyRune:
		switch ev.Rune() {
		case '?', 'q', 'Q':
			ih.actionChan <- statepkg.HelpHideAction{}
		}
	}
}

// processPromptKey edits the search query while the prompt is open.
func (ih *InputHandler) processPromptKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		ih.actionChan <- statepkg.SearchCancelAction{}
	case tcell.KeyEnter:
		step := 0
		if ev.Modifiers()&tcell.ModShift != 0 {
			step = -1
		}
		ih.actionChan <- statepkg.SearchConfirmAction{Step: step}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if ev.Modifiers()&(tcell.ModAlt|tcell.ModCtrl) != 0 {
			ih.actionChan <- statepkg.SearchDeleteWordAction{}
			return
		}
		ih.actionChan <- statepkg.SearchBackspaceAction{}
	case tcell.KeyCtrlW:
		ih.actionChan <- statepkg.SearchDeleteWordAction{}
	case tcell.KeyCtrlU:
		ih.actionChan <- statepkg.SearchSetQueryAction{Query: ""}
	case tcell.KeyDown, tcell.KeyCtrlN:
		ih.actionChan <- statepkg.SearchNextAction{}
	case tcell.KeyUp, tcell.KeyCtrlP:
		ih.actionChan <- statepkg.SearchPrevAction{}
	case tcell.KeyRune:
		if ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) != 0 {
			return
		}
		ih.actionChan <- statepkg.SearchCharAction{Char: ev.Rune()}
	}
}

func (ih *InputHandler) processNavigationKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyUp:
		ih.actionChan <- statepkg.ScrollUpAction{}
	case tcell.KeyDown:
		ih.actionChan <- statepkg.ScrollDownAction{}
	case tcell.KeyPgUp, tcell.KeyCtrlB:
		ih.actionChan <- statepkg.ScrollPageUpAction{}
	case tcell.KeyPgDn, tcell.KeyCtrlF:
		ih.actionChan <- statepkg.ScrollPageDownAction{}
	case tcell.KeyHome:
		ih.actionChan <- statepkg.ScrollHomeAction{}
	case tcell.KeyEnd:
		ih.actionChan <- statepkg.ScrollEndAction{}
	case tcell.KeyLeft:
		ih.actionChan <- statepkg.ScrollLeftAction{}
	case tcell.KeyRight:
		ih.actionChan <- statepkg.ScrollRightAction{}
	default:
		return false
	}
	return true
}

func (ih *InputHandler) processRune(r rune) bool {
	switch r {
	case 'q', 'Q':
		ih.actionChan <- statepkg.QuitAction{}
		return false
	case '/':
		ih.actionChan <- statepkg.SearchStartAction{}
	case 'n':
		ih.actionChan <- statepkg.SearchNextAction{}
	case 'N':
		ih.actionChan <- statepkg.SearchPrevAction{}
	case 'j':
		ih.actionChan <- statepkg.ScrollDownAction{}
	case 'k':
		ih.actionChan <- statepkg.ScrollUpAction{}
	case ' ':
		ih.actionChan <- statepkg.ScrollPageDownAction{}
	case 'b':
		ih.actionChan <- statepkg.ScrollPageUpAction{}
	case 'g':
		ih.actionChan <- statepkg.ScrollHomeAction{}
	case 'G':
		ih.actionChan <- statepkg.ScrollEndAction{}
	case 'h':
		ih.actionChan <- statepkg.ScrollLeftAction{}
	case 't':
		ih.actionChan <- statepkg.CycleThemeAction{}
	case 'l':
		ih.actionChan <- statepkg.ToggleLineNumbersAction{}
	case 'w':
		ih.actionChan <- statepkg.ToggleWordWrapAction{}
	case 's':
		ih.actionChan <- statepkg.ToggleSyntaxAction{}
	case '<', ',':
		ih.actionChan <- statepkg.OpenNeighborAction{Forward: false}
	case '>', '.':
		ih.actionChan <- statepkg.OpenNeighborAction{Forward: true}
	case 'r':
		ih.actionChan <- statepkg.ReloadAction{}
	case '?':
		ih.actionChan <- statepkg.HelpToggleAction{}
	case 'y':
		ih.actionChan <- statepkg.YankPathAction{}
	case 'e':
		ih.actionChan <- statepkg.OpenEditorAction{}
	default:
		if r >= '0' && r <= '9' && ih.showsWelcome() {
			index := int(r - '1')
			if r == '0' {
				index = 9
			}
			ih.actionChan <- statepkg.OpenRecentAction{Index: index}
		}
	}
	return true
}

// showsWelcome reports whether the recent-files screen is visible.
func (ih *InputHandler) showsWelcome() bool {
	return ih.state == nil || (ih.state.Document == nil && ih.state.Image == nil)
}
