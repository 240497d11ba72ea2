package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/rview/internal/state"
)

func process(t *testing.T, state *statepkg.AppState, ev tcell.Event) (statepkg.Action, bool) {
	t.Helper()
	actionChan := make(chan statepkg.Action, 4)
	handler := NewInputHandler(actionChan)
	handler.SetState(state)

	cont := handler.ProcessEvent(ev)
	select {
	case action := <-actionChan:
		return action, cont
	default:
		return nil, cont
	}
}

func viewing() *statepkg.AppState {
	return &statepkg.AppState{Document: &statepkg.Document{}}
}

func TestRuneBindingsInViewMode(t *testing.T) {
	tests := []struct {
		r    rune
		want statepkg.Action
	}{
		{'/', statepkg.SearchStartAction{}},
		{'n', statepkg.SearchNextAction{}},
		{'N', statepkg.SearchPrevAction{}},
		{'t', statepkg.CycleThemeAction{}},
		{'l', statepkg.ToggleLineNumbersAction{}},
		{'w', statepkg.ToggleWordWrapAction{}},
		{'s', statepkg.ToggleSyntaxAction{}},
		{'<', statepkg.OpenNeighborAction{Forward: false}},
		{'>', statepkg.OpenNeighborAction{Forward: true}},
		{'?', statepkg.HelpToggleAction{}},
		{'y', statepkg.YankPathAction{}},
		{'e', statepkg.OpenEditorAction{}},
		{'r', statepkg.ReloadAction{}},
		{'g', statepkg.ScrollHomeAction{}},
		{'G', statepkg.ScrollEndAction{}},
	}

	for _, tt := range tests {
		t.Run(string(tt.r), func(t *testing.T) {
			action, cont := process(t, viewing(), tcell.NewEventKey(tcell.KeyRune, tt.r, 0))
			if !cont {
				t.Fatalf("%q should not stop the loop", tt.r)
			}
			if action != tt.want {
				t.Fatalf("expected %#v, got %#v", tt.want, action)
			}
		})
	}
}

func TestQuitStopsLoop(t *testing.T) {
	for _, ev := range []*tcell.EventKey{
		tcell.NewEventKey(tcell.KeyRune, 'q', 0),
		tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl),
	} {
		action, cont := process(t, viewing(), ev)
		if cont {
			t.Fatalf("expected quit to stop the loop")
		}
		if _, ok := action.(statepkg.QuitAction); !ok {
			t.Fatalf("expected QuitAction, got %T", action)
		}
	}
}

func TestCtrlCQuitsFromPrompt(t *testing.T) {
	state := viewing()
	state.SearchActive = true
	action, cont := process(t, state, tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl))
	if cont {
		t.Fatalf("Ctrl+C must quit even while typing")
	}
	if _, ok := action.(statepkg.QuitAction); !ok {
		t.Fatalf("expected QuitAction, got %T", action)
	}
}

func TestPromptTypesRunes(t *testing.T) {
	state := viewing()
	state.SearchActive = true

	action, _ := process(t, state, tcell.NewEventKey(tcell.KeyRune, 'q', 0))
	if action != (statepkg.SearchCharAction{Char: 'q'}) {
		t.Fatalf("'q' in the prompt should be typed, got %#v", action)
	}
}

func TestPromptEnterAndShiftEnter(t *testing.T) {
	state := viewing()
	state.SearchActive = true

	action, _ := process(t, state, tcell.NewEventKey(tcell.KeyEnter, '\r', 0))
	if action != (statepkg.SearchConfirmAction{Step: 0}) {
		t.Fatalf("Enter should close the prompt in place, got %#v", action)
	}

	action, _ = process(t, state, tcell.NewEventKey(tcell.KeyEnter, '\r', tcell.ModShift))
	if action != (statepkg.SearchConfirmAction{Step: -1}) {
		t.Fatalf("Shift+Enter should step back, got %#v", action)
	}
}

func TestPromptEditing(t *testing.T) {
	state := viewing()
	state.SearchActive = true

	tests := []struct {
		name string
		ev   *tcell.EventKey
		want statepkg.Action
	}{
		{"backspace", tcell.NewEventKey(tcell.KeyBackspace2, 0, 0), statepkg.SearchBackspaceAction{}},
		{"ctrl-w", tcell.NewEventKey(tcell.KeyCtrlW, 0, tcell.ModCtrl), statepkg.SearchDeleteWordAction{}},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, 0), statepkg.SearchCancelAction{}},
		{"down", tcell.NewEventKey(tcell.KeyDown, 0, 0), statepkg.SearchNextAction{}},
		{"up", tcell.NewEventKey(tcell.KeyUp, 0, 0), statepkg.SearchPrevAction{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, _ := process(t, state, tt.ev)
			if action != tt.want {
				t.Fatalf("expected %#v, got %#v", tt.want, action)
			}
		})
	}
}

func TestEscapeClearsQueryOnlyWhenSet(t *testing.T) {
	state := viewing()
	action, _ := process(t, state, tcell.NewEventKey(tcell.KeyEscape, 0, 0))
	if action != nil {
		t.Fatalf("expected no action without a query, got %#v", action)
	}

	state.SearchQuery = "foo"
	action, _ = process(t, state, tcell.NewEventKey(tcell.KeyEscape, 0, 0))
	if _, ok := action.(statepkg.SearchCancelAction); !ok {
		t.Fatalf("expected SearchCancelAction, got %T", action)
	}
}

func TestHelpSwallowsKeys(t *testing.T) {
	state := viewing()
	state.HelpVisible = true

	action, cont := process(t, state, tcell.NewEventKey(tcell.KeyRune, 'q', 0))
	if !cont {
		t.Fatalf("'q' should close help, not quit")
	}
	if _, ok := action.(statepkg.HelpHideAction); !ok {
		t.Fatalf("expected HelpHideAction, got %T", action)
	}

	action, _ = process(t, state, tcell.NewEventKey(tcell.KeyRune, 't', 0))
	if action != nil {
		t.Fatalf("help should swallow other keys, got %#v", action)
	}
}

func TestNavigationKeys(t *testing.T) {
	tests := []struct {
		key  tcell.Key
		want statepkg.Action
	}{
		{tcell.KeyUp, statepkg.ScrollUpAction{}},
		{tcell.KeyDown, statepkg.ScrollDownAction{}},
		{tcell.KeyPgUp, statepkg.ScrollPageUpAction{}},
		{tcell.KeyPgDn, statepkg.ScrollPageDownAction{}},
		{tcell.KeyHome, statepkg.ScrollHomeAction{}},
		{tcell.KeyEnd, statepkg.ScrollEndAction{}},
		{tcell.KeyLeft, statepkg.ScrollLeftAction{}},
		{tcell.KeyRight, statepkg.ScrollRightAction{}},
	}
	for _, tt := range tests {
		action, _ := process(t, viewing(), tcell.NewEventKey(tt.key, 0, 0))
		if action != tt.want {
			t.Fatalf("key %v: expected %#v, got %#v", tt.key, tt.want, action)
		}
	}
}

func TestDigitsOpenRecentOnlyOnWelcome(t *testing.T) {
	action, _ := process(t, &statepkg.AppState{}, tcell.NewEventKey(tcell.KeyRune, '3', 0))
	if action != (statepkg.OpenRecentAction{Index: 2}) {
		t.Fatalf("expected recent index 2, got %#v", action)
	}

	action, _ = process(t, &statepkg.AppState{}, tcell.NewEventKey(tcell.KeyRune, '0', 0))
	if action != (statepkg.OpenRecentAction{Index: 9}) {
		t.Fatalf("expected recent index 9, got %#v", action)
	}

	action, _ = process(t, viewing(), tcell.NewEventKey(tcell.KeyRune, '3', 0))
	if action != nil {
		t.Fatalf("digits are ignored while viewing, got %#v", action)
	}
}

func TestResizeAndWheel(t *testing.T) {
	action, _ := process(t, viewing(), tcell.NewEventResize(100, 40))
	if action != (statepkg.ResizeAction{Width: 100, Height: 40}) {
		t.Fatalf("unexpected resize action %#v", action)
	}

	action, _ = process(t, viewing(), tcell.NewEventMouse(0, 0, tcell.WheelDown, 0))
	if _, ok := action.(statepkg.ScrollDownAction); !ok {
		t.Fatalf("expected wheel to scroll, got %T", action)
	}
}
