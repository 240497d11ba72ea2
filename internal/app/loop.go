package app

import (
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/rview/internal/config"
	statepkg "github.com/kk-code-lab/rview/internal/state"
	"github.com/kk-code-lab/rview/internal/watcher"
)

const flashRefresh = 650 * time.Millisecond

// Run processes terminal events, actions and file changes until quit.
func (app *Application) Run() {
	app.renderer.Render(app.state)
	renderPending := false

	eventChan := make(chan tcell.Event)
	go func() {
		for {
			ev := app.screen.PollEvent()
			if ev == nil {
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	}()

	var sigContCh chan os.Signal
	if sigs := contSignals(); len(sigs) > 0 {
		sigContCh = make(chan os.Signal, 1)
		signal.Notify(sigContCh, sigs...)
		defer signal.Stop(sigContCh)
	}

	var flashTimer *time.Timer
	var flashCh <-chan time.Time
	lastYank := app.state.LastYankTime

	for !app.shouldQuit {
		if renderPending {
			app.renderer.Render(app.state)
			renderPending = false
		}

		// Redraw once more when the yank flash expires.
		if !app.state.LastYankTime.Equal(lastYank) {
			lastYank = app.state.LastYankTime
			if flashTimer != nil {
				flashTimer.Stop()
			}
			flashTimer = time.NewTimer(flashRefresh)
			flashCh = flashTimer.C
		}

		select {
		case ev, ok := <-eventChan:
			if !ok {
				app.shouldQuit = true
				continue
			}
			if app.handleEvent(ev) {
				renderPending = true
			}
		case action := <-app.actionCh:
			if app.handleAction(action) {
				renderPending = true
			}
		case _, ok := <-app.watchCh:
			if !ok {
				app.watchCh = nil
				continue
			}
			app.dispatch(statepkg.ReloadAction{})
			renderPending = true
		case <-flashCh:
			flashCh = nil
			renderPending = true
		case <-sigContCh:
			if app.resumeAfterStop() {
				renderPending = true
			}
		}

		if app.processActions() {
			renderPending = true
		}
	}

	if flashTimer != nil {
		flashTimer.Stop()
	}
}

func (app *Application) handleEvent(ev tcell.Event) bool {
	switch ev.(type) {
	case *tcell.EventKey, *tcell.EventResize, *tcell.EventMouse:
		if !app.input.ProcessEvent(ev) {
			app.shouldQuit = true
		}
		return true
	case *tcell.EventInterrupt:
		return true
	default:
		return false
	}
}

func (app *Application) processActions() bool {
	changed := false
	for {
		select {
		case action := <-app.actionCh:
			if app.handleAction(action) {
				changed = true
			}
		default:
			return changed
		}
	}
}

func (app *Application) handleAction(action statepkg.Action) bool {
	if action == nil {
		return false
	}

	switch action.(type) {
	case statepkg.QuitAction:
		app.shouldQuit = true
		return false
	case statepkg.SuspendAction:
		app.suspendToShell()
		app.resumeAfterStop()
		return true
	case statepkg.YankPathAction:
		return app.handleClipboard()
	case statepkg.OpenEditorAction:
		return app.handleEditorOpen()
	}

	app.dispatch(action)
	return true
}

// dispatch runs action through the reducer and applies its side effects:
// watching the open file and saving changed settings.
func (app *Application) dispatch(action statepkg.Action) {
	if _, err := app.reducer.Reduce(app.state, action); err != nil {
		app.state.LastError = err
		log.WithError(err).Warnf("action %T failed", action)
	}
	app.syncWatcher()
	app.persistSettings()
}

func (app *Application) syncWatcher() {
	path := ""
	if app.state.Document != nil || app.state.Image != nil {
		path = app.state.Path
	}
	if app.watcher != nil && app.watcher.Path() == path {
		return
	}
	app.stopWatcher()
	if path == "" {
		return
	}

	w, err := watcher.New(watcher.DefaultConfig(path))
	if err != nil {
		log.WithError(err).WithField("path", path).Warn("cannot watch file")
		return
	}
	ch, err := w.Start()
	if err != nil {
		_ = w.Stop()
		log.WithError(err).WithField("path", path).Warn("cannot watch file")
		return
	}
	app.watcher = w
	app.watchCh = ch
}

func (app *Application) stopWatcher() {
	if app.watcher == nil {
		return
	}
	if err := app.watcher.Stop(); err != nil {
		log.WithError(err).Debug("stop watcher")
	}
	app.watcher = nil
	app.watchCh = nil
}

func (app *Application) persistSettings() {
	if !app.state.ConsumeSettingsDirty() || app.configPath == "" {
		return
	}
	app.cfg = app.state.Settings(app.cfg)
	if err := config.Save(app.configPath, app.cfg); err != nil {
		log.WithError(err).WithField("path", app.configPath).Warn("cannot save settings")
	}
}
