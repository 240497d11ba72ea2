package app

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"unicode"
)

type lookPathFunc func(string) (string, error)

func detectClipboard() ([]string, bool) {
	return findClipboard(runtime.GOOS, os.Getenv, exec.LookPath)
}

// findClipboard returns the first available clipboard writer with its
// arguments. The path to copy is written to its stdin.
func findClipboard(goos string, getenv func(string) string, lookPath lookPathFunc) ([]string, bool) {
	for _, candidate := range clipboardCandidates(goos, getenv) {
		if resolved, err := lookPath(candidate[0]); err == nil && resolved != "" {
			return append([]string{resolved}, candidate[1:]...), true
		}
	}
	return nil, false
}

func clipboardCandidates(goos string, getenv func(string) string) [][]string {
	switch goos {
	case "darwin":
		return [][]string{{"pbcopy"}}
	case "windows":
		setClipboard := []string{"-NoLogo", "-NoProfile", "-Command", "Set-Clipboard"}
		return [][]string{
			{"clip.exe"},
			{"clip"},
			append([]string{"powershell.exe"}, setClipboard...),
			append([]string{"pwsh"}, setClipboard...),
		}
	}

	x11 := [][]string{
		{"xclip", "-selection", "clipboard"},
		{"xsel", "--clipboard", "--input"},
	}
	if getenv("WAYLAND_DISPLAY") != "" {
		return append([][]string{{"wl-copy"}}, x11...)
	}
	return append(x11, []string{"wl-copy"})
}

// lineStyle is how an editor takes the line to open the file at.
type lineStyle int

const (
	lineNone     lineStyle = iota
	linePlus               // +N FILE
	lineGotoFlag           // -g FILE:N
	lineSuffix             // FILE:N
	lineNFlag              // -nN FILE
)

var editorLineStyles = map[string]lineStyle{
	"vi":          linePlus,
	"vim":         linePlus,
	"nvim":        linePlus,
	"gvim":        linePlus,
	"view":        linePlus,
	"nano":        linePlus,
	"pico":        linePlus,
	"emacs":       linePlus,
	"emacsclient": linePlus,
	"micro":       linePlus,
	"kak":         linePlus,
	"joe":         linePlus,
	"mg":          linePlus,

	"code":          lineGotoFlag,
	"code-insiders": lineGotoFlag,
	"codium":        lineGotoFlag,
	"cursor":        lineGotoFlag,

	"subl":  lineSuffix,
	"zed":   lineSuffix,
	"hx":    lineSuffix,
	"helix": lineSuffix,

	"notepad++": lineNFlag,
}

// editorCommand is a resolved editor invocation without the file operand.
type editorCommand struct {
	args  []string
	style lineStyle
}

func newEditorCommand(args []string) editorCommand {
	name := strings.ToLower(args[0])
	name = name[strings.LastIndexAny(name, `/\`)+1:]
	if ext := filepath.Ext(name); ext == ".exe" || ext == ".cmd" || ext == ".bat" {
		name = strings.TrimSuffix(name, ext)
	}
	return editorCommand{args: args, style: editorLineStyles[name]}
}

func (c editorCommand) available() bool {
	return len(c.args) > 0
}

// argsFor returns the full command line opening path at line. Lines below 1
// and editors with an unknown line syntax get the bare path.
func (c editorCommand) argsFor(path string, line int) []string {
	out := make([]string, 0, len(c.args)+2)
	out = append(out, c.args...)
	if line < 1 {
		return append(out, path)
	}

	n := strconv.Itoa(line)
	switch c.style {
	case linePlus:
		return append(out, "+"+n, path)
	case lineGotoFlag:
		return append(out, "-g", path+":"+n)
	case lineSuffix:
		return append(out, path+":"+n)
	case lineNFlag:
		return append(out, "-n"+n, path)
	default:
		return append(out, path)
	}
}

func detectEditor() (editorCommand, bool) {
	return findEditor(runtime.GOOS, os.Getenv, exec.LookPath)
}

// findEditor resolves $VISUAL, then $EDITOR, then a platform default.
func findEditor(goos string, getenv func(string) string, lookPath lookPathFunc) (editorCommand, bool) {
	for _, env := range []string{"VISUAL", "EDITOR"} {
		args := splitCommandLine(getenv(env))
		if len(args) == 0 {
			continue
		}
		resolved, err := lookPath(expandHome(args[0]))
		if err != nil || resolved == "" {
			log.WithField("command", args[0]).Debugf("$%s not found", env)
			continue
		}
		args[0] = resolved
		return newEditorCommand(args), true
	}

	for _, def := range defaultEditors(goos) {
		if resolved, err := lookPath(def[0]); err == nil && resolved != "" {
			return newEditorCommand(append([]string{resolved}, def[1:]...)), true
		}
	}
	return editorCommand{}, false
}

func defaultEditors(goos string) [][]string {
	if goos == "windows" {
		return [][]string{{"code", "--wait"}, {"notepad++.exe"}, {"notepad.exe"}}
	}
	return [][]string{{"vim"}, {"nano"}, {"vi"}}
}

// splitCommandLine splits an $EDITOR value into words. Single and double
// quotes group words; a backslash escapes a following quote or space only,
// so Windows paths survive unquoted.
func splitCommandLine(s string) []string {
	var (
		words  []string
		word   strings.Builder
		quote  rune
		inWord bool
	)
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '\\' && quote != '\'' && i+1 < len(runes) && strings.ContainsRune(`"' `, runes[i+1]):
			i++
			word.WriteRune(runes[i])
			inWord = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				word.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
			inWord = true
		case unicode.IsSpace(r):
			if inWord {
				words = append(words, word.String())
				word.Reset()
				inWord = false
			}
		default:
			word.WriteRune(r)
			inWord = true
		}
	}
	if inWord {
		words = append(words, word.String())
	}
	return words
}

// expandHome replaces a leading "~" with the home directory.
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
