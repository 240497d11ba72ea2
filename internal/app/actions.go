package app

import (
	"fmt"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	statepkg "github.com/kk-code-lab/rview/internal/state"
)

var commandBuilder = exec.Command

func (app *Application) handleClipboard() bool {
	if app.state.Path == "" || !app.clipboardAvail || len(app.clipboardCmd) == 0 {
		return false
	}

	target := normalizeClipboardPath(app.state.Path, runtime.GOOS)
	cmd := commandBuilder(app.clipboardCmd[0], app.clipboardCmd[1:]...)
	cmd.Stdin = strings.NewReader(target)
	if err := cmd.Run(); err != nil {
		app.state.LastError = fmt.Errorf("clipboard command %s failed: %w", app.clipboardCmd[0], err)
		log.WithError(err).Warn("yank path")
		return true
	}
	app.state.LastYankTime = time.Now()
	return true
}

func normalizeClipboardPath(inputPath string, goos string) string {
	if strings.EqualFold(goos, "windows") {
		cleaned := filepath.Clean(inputPath)
		return strings.ReplaceAll(cleaned, "/", `\`)
	}
	return path.Clean(filepath.ToSlash(inputPath))
}

func (app *Application) handleEditorOpen() bool {
	if !app.state.EditorAvailable || !app.editor.available() {
		return false
	}
	if app.state.Document == nil && app.state.Image == nil {
		return false
	}

	if err := app.openFileInEditor(app.state.Path, app.state.EditorLine()); err != nil {
		app.state.LastError = err
		log.WithError(err).Warn("editor")
	}
	app.dispatch(statepkg.ReloadAction{})
	return true
}

// openFileInEditor runs the editor on filePath at line (1-based, 0 for none)
// with the screen suspended.
func (app *Application) openFileInEditor(filePath string, line int) error {
	if !app.editor.available() {
		return fmt.Errorf("no editor configured")
	}

	editorArgs := app.editor.argsFor(filePath, line)
	useTTY := runtime.GOOS != "windows"
	var tty *os.File
	var err error

	if useTTY {
		tty, err = os.OpenFile("/dev/tty", os.O_RDWR, 0)
		if err != nil {
			return app.openFileInEditorFallback(editorArgs)
		}
		defer func() {
			_ = tty.Close()
		}()
	}

	if err := app.screen.Suspend(); err != nil {
		return fmt.Errorf("failed to suspend screen: %w", err)
	}

	cmd := commandBuilder(editorArgs[0], editorArgs[1:]...)
	if useTTY {
		cmd.Stdin = tty
		cmd.Stdout = tty
		cmd.Stderr = tty
	} else {
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	}

	runErr := cmd.Run()
	// Keys typed into the editor must not reach the viewer.
	_ = flushConsoleInput()

	if err := app.screen.Resume(); err != nil {
		return fmt.Errorf("failed to resume screen: %w", err)
	}
	app.screen.Sync()
	return runErr
}

func (app *Application) openFileInEditorFallback(args []string) error {
	if err := app.screen.Suspend(); err != nil {
		return fmt.Errorf("failed to suspend screen: %w", err)
	}
	defer func() {
		_ = app.screen.Resume()
		app.screen.Sync()
	}()

	cmd := commandBuilder(args[0], args[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
