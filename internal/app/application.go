package app

import (
	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/rview/internal/config"
	"github.com/kk-code-lab/rview/internal/logging"
	statepkg "github.com/kk-code-lab/rview/internal/state"
	inputui "github.com/kk-code-lab/rview/internal/ui/input"
	renderui "github.com/kk-code-lab/rview/internal/ui/render"
	"github.com/kk-code-lab/rview/internal/watcher"
)

var log = logging.NewLogger("app")

// Options configures a viewer session.
type Options struct {
	// Path is opened at startup; empty shows the recent-files screen.
	Path       string
	Config     config.Config
	ConfigPath string
}

// Application represents the running app.
type Application struct {
	screen         tcell.Screen
	state          *statepkg.AppState
	reducer        *statepkg.StateReducer
	renderer       *renderui.Renderer
	input          *inputui.InputHandler
	actionCh       chan statepkg.Action
	shouldQuit     bool
	clipboardCmd   []string
	clipboardAvail bool
	editor         editorCommand

	cfg        config.Config
	configPath string

	watcher *watcher.Watcher
	watchCh <-chan struct{}
}

// NewApplication initializes the terminal and opens opts.Path.
func NewApplication(opts Options) (*Application, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	// Parse mouse sequences so wheel scrolling doesn't leak as key events.
	screen.EnableMouse()

	return newApplication(screen, opts), nil
}

func newApplication(screen tcell.Screen, opts Options) *Application {
	clipboardCmd, clipboardAvail := detectClipboard()
	editor, editorAvail := detectEditor()

	state := statepkg.NewAppState(opts.Config)
	state.ClipboardAvailable = clipboardAvail
	state.EditorAvailable = editorAvail
	w, h := screen.Size()
	state.ScreenWidth = w
	state.ScreenHeight = h

	actionCh := make(chan statepkg.Action, 10)
	inputHandler := inputui.NewInputHandler(actionCh)
	inputHandler.SetState(state)

	app := &Application{
		screen:         screen,
		state:          state,
		reducer:        statepkg.NewStateReducer(),
		renderer:       renderui.NewRenderer(screen),
		input:          inputHandler,
		actionCh:       actionCh,
		clipboardCmd:   clipboardCmd,
		clipboardAvail: clipboardAvail,
		editor:         editor,
		cfg:            opts.Config,
		configPath:     opts.ConfigPath,
	}

	if opts.Path != "" {
		app.dispatch(statepkg.OpenFileAction{Path: opts.Path})
	}
	return app
}

// State exposes the current state; used by tests and the CLI.
func (app *Application) State() *statepkg.AppState {
	return app.state
}

// Close cleans up resources.
func (app *Application) Close() error {
	app.stopWatcher()
	app.screen.Fini()
	return nil
}
