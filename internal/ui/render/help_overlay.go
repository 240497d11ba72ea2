package render

import (
	"fmt"
	"strings"

	statepkg "github.com/kk-code-lab/rview/internal/state"
	textutil "github.com/kk-code-lab/rview/internal/textutil"
)

type helpOverlayEntry struct {
	keys string
	desc string
}

type helpOverlaySection struct {
	title   string
	entries []helpOverlayEntry
}

func onOff(enabled bool) string {
	if enabled {
		return "on"
	}
	return "off"
}

func buildHelpOverlayLines(state *statepkg.AppState) []string {
	var lineNumbers, wrap, syntax bool
	if state != nil {
		lineNumbers, wrap, syntax = state.ShowLineNumbers, state.WordWrap, state.Syntax
	}

	sections := []helpOverlaySection{
		{
			title: "Scroll",
			entries: []helpOverlayEntry{
				{keys: "↑/↓ j/k", desc: "Line up/down"},
				{keys: "PgUp/PgDn", desc: "Page up/down"},
				{keys: "Home/End g/G", desc: "Top/bottom"},
				{keys: "←/→", desc: "Scroll sideways (no wrap)"},
			},
		},
		{
			title: "Search",
			entries: []helpOverlayEntry{
				{keys: "/", desc: "Search (case-insensitive)"},
				{keys: "↵ / ⇧↵", desc: "Close prompt / previous match"},
				{keys: "n / N", desc: "Next/previous match"},
				{keys: "Esc", desc: "Clear search"},
			},
		},
		{
			title: "View",
			entries: []helpOverlayEntry{
				{keys: "t", desc: "Next theme"},
				{keys: "l", desc: "Line numbers (" + onOff(lineNumbers) + ")"},
				{keys: "w", desc: "Word wrap (" + onOff(wrap) + ")"},
				{keys: "s", desc: "Syntax colors (" + onOff(syntax) + ")"},
			},
		},
		{
			title: "Files",
			entries: []helpOverlayEntry{
				{keys: "< / >", desc: "Previous/next file in folder"},
				{keys: "r", desc: "Reload"},
				{keys: "1-9, 0", desc: "Open recent file"},
				{keys: "y", desc: "Yank path to clipboard"},
				{keys: "e", desc: "Open in external editor ($EDITOR)"},
			},
		},
		{
			title: "Exit",
			entries: []helpOverlayEntry{
				{keys: "q", desc: "Quit"},
				{keys: "Ctrl+C", desc: "Quit immediately"},
				{keys: "Ctrl+Z", desc: "Suspend"},
				{keys: "?", desc: "Close this help"},
			},
		},
	}

	lines := make([]string, 0, 32)
	for i, section := range sections {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, section.title)
		for _, entry := range section.entries {
			lines = append(lines, formatHelpOverlayEntry(entry))
		}
	}

	return lines
}

func formatHelpOverlayEntry(entry helpOverlayEntry) string {
	key := textutil.SanitizeTerminalText(entry.keys)
	desc := textutil.SanitizeTerminalText(entry.desc)
	return fmt.Sprintf("  %-14s %s", key, desc)
}

func (r *Renderer) drawHelpOverlay(state *statepkg.AppState, w, h int) {
	baseStyle := r.theme.base()
	for y := 0; y < h; y++ {
		r.fillRow(0, y, w, baseStyle)
	}

	title := " Help "
	headerStyle := r.theme.bar().Bold(true)
	r.fillRow(0, 0, w, headerStyle)
	titleStart := 0
	titleWidth := r.measureTextWidth(title)
	if w > titleWidth {
		titleStart = (w - titleWidth) / 2
	}
	r.drawTextLine(titleStart, 0, w-titleStart, title, headerStyle)

	sectionStyle := baseStyle.Foreground(r.theme.AccentFg).Bold(true)
	lines := buildHelpOverlayLines(state)
	row := 2
	maxRow := h - 1
	for _, line := range lines {
		if row >= maxRow {
			break
		}
		style := baseStyle
		if line != "" && !strings.HasPrefix(line, " ") {
			style = sectionStyle
		}
		text := strings.TrimRight(line, " ")
		text = r.truncateTextToWidth(text, w-4)
		r.drawTextLine(2, row, w-4, text, style)
		row++
	}

	if h > 1 {
		footer := r.truncateTextToWidth("? toggle · Esc close", w)
		r.fillRow(0, h-1, w, headerStyle)
		r.drawTextLine(0, h-1, w, footer, headerStyle)
	}
}
