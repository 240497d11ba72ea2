package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/rview/internal/config"
	statepkg "github.com/kk-code-lab/rview/internal/state"
	"github.com/kk-code-lab/rview/internal/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApplication(t *testing.T, path string) (*Application, string) {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	app := newApplication(newTestScreen(t), Options{
		Path:       path,
		Config:     config.Defaults(),
		ConfigPath: configPath,
	})
	t.Cleanup(app.stopWatcher)
	return app, configPath
}

func writeTestFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewApplicationOpensFileAndWatchesIt(t *testing.T) {
	path := writeTestFile(t, "hello\nworld\n")
	app, configPath := newTestApplication(t, path)

	require.NotNil(t, app.State().Document)
	assert.Equal(t, 2, app.State().Document.LineCount())
	require.NotNil(t, app.watcher)
	assert.Equal(t, path, app.watcher.Path())

	saved, _, err := config.Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, []string{path}, saved.RecentFiles)
}

func TestNewApplicationWithoutPathShowsWelcome(t *testing.T) {
	app, configPath := newTestApplication(t, "")
	assert.Nil(t, app.State().Document)
	assert.Nil(t, app.watcher)
	_, err := os.Stat(configPath)
	assert.True(t, os.IsNotExist(err), "nothing to save yet")
}

func TestThemeChangeIsPersisted(t *testing.T) {
	app, configPath := newTestApplication(t, "")

	require.True(t, app.handleAction(statepkg.CycleThemeAction{}))
	saved, _, err := config.Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, theme.IDs()[1], saved.Theme)
}

func TestQuitKeyStopsApplication(t *testing.T) {
	app, _ := newTestApplication(t, "")
	app.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', 0))
	assert.True(t, app.shouldQuit)
}

func TestKeyEventsFlowThroughReducer(t *testing.T) {
	path := writeTestFile(t, "foo bar foo\n")
	app, _ := newTestApplication(t, path)

	for _, r := range "/foo" {
		app.handleEvent(tcell.NewEventKey(tcell.KeyRune, r, 0))
		app.processActions()
	}
	assert.Equal(t, "foo", app.State().SearchQuery)
	assert.Equal(t, 2, app.State().SearchCount)

	app.handleEvent(tcell.NewEventKey(tcell.KeyEnter, '\r', 0))
	app.processActions()
	app.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'n', 0))
	app.processActions()
	assert.False(t, app.State().SearchActive)
	assert.Equal(t, 1, app.State().SearchCurrent)
}

func TestFailedOpenStopsWatcher(t *testing.T) {
	path := writeTestFile(t, "x\n")
	app, _ := newTestApplication(t, path)
	require.NotNil(t, app.watcher)

	app.dispatch(statepkg.OpenFileAction{Path: filepath.Join(filepath.Dir(path), "missing.txt")})
	assert.Nil(t, app.watcher)
	assert.NotEmpty(t, app.State().ErrorMessage)
}

func TestFileChangeSignalsReload(t *testing.T) {
	path := writeTestFile(t, "one\n")
	app, _ := newTestApplication(t, path)
	require.NotNil(t, app.watchCh)

	require.NoError(t, os.WriteFile(path, []byte("one\ntwo\n"), 0o644))
	select {
	case <-app.watchCh:
	case <-time.After(3 * time.Second):
		t.Fatal("expected a change notification")
	}

	app.dispatch(statepkg.ReloadAction{})
	assert.Equal(t, 2, app.State().Document.LineCount())
}
