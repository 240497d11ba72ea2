package render

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/rview/internal/state"
	textutil "github.com/kk-code-lab/rview/internal/textutil"
)

const (
	yankFlashDuration = 600 * time.Millisecond
	maxRecentShown    = 10
)

// Renderer handles all UI rendering
type Renderer struct {
	screen           tcell.Screen
	theme            ColorTheme
	runeWidthCache   [128]int // ASCII cache (0-127)
	runeWidthCacheMu sync.RWMutex
	runeWidthWide    sync.Map // For non-ASCII runes
	now              func() time.Time
}

// NewRenderer creates a new renderer
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen: screen,
		now:    time.Now,
	}
}

// Render draws the entire UI based on state
func (r *Renderer) Render(state *statepkg.AppState) {
	r.theme = colorThemeFor(state.Palette)
	r.screen.SetStyle(r.theme.base())
	r.screen.Clear()

	w, h := r.screen.Size()
	if w <= 0 || h <= 0 {
		return
	}

	if state.HelpVisible {
		r.drawHelpOverlay(state, w, h)
		r.screen.Show()
		return
	}

	r.drawHeader(state, w)

	top := 1
	bottom := h - 1 // status line
	if state.SearchActive {
		bottom--
		r.drawSearchPrompt(state, bottom, w)
	}

	switch {
	case state.Document != nil:
		if state.ErrorMessage != "" {
			bottom--
			r.drawErrorLine(state.ErrorMessage, bottom, w)
		}
		r.drawDocument(state, top, bottom-top, w)
	case state.Image != nil:
		r.drawImageInfo(state, top, bottom-top, w)
	case state.ErrorMessage != "":
		r.drawCenteredError(state.ErrorMessage, top, bottom-top, w)
	default:
		r.drawWelcome(state, top, bottom-top, w)
	}

	r.drawStatusLine(state, w, h)
	r.screen.Show()
}

// drawHeader renders the top bar: file path, encoding, lossy marker and language.
func (r *Renderer) drawHeader(state *statepkg.AppState, w int) {
	style := r.theme.bar()
	r.fillRow(0, 0, w, style)

	endX := r.drawTextLine(0, 0, w, " rview ", style.Bold(true))
	if state.Path == "" {
		return
	}

	var details []string
	if doc := state.Document; doc != nil {
		details = append(details, doc.Encoding.String())
		if doc.Lossy {
			details = append(details, "lossy")
		}
		if doc.Formatting {
			details = append(details, "hidden chars")
		}
		details = append(details, doc.Language.String())
	} else if img := state.Image; img != nil {
		details = append(details, img.Format)
	}
	suffix := ""
	if len(details) > 0 {
		suffix = " · " + strings.Join(details, " · ") + " "
	}

	suffixWidth := r.measureTextWidth(suffix)
	pathWidth := w - endX - suffixWidth
	if pathWidth < 1 {
		suffix = ""
		pathWidth = w - endX
	}
	path := r.truncateLeft(textutil.SanitizeTerminalText(state.Path), pathWidth)
	endX = r.drawTextLine(endX, 0, pathWidth, path, style)
	if suffix != "" {
		mutedStyle := style.Foreground(r.theme.MutedFg)
		if doc := state.Document; doc != nil && (doc.Lossy || doc.Formatting) {
			mutedStyle = style.Foreground(r.theme.ErrorFg)
		}
		r.drawTextLine(endX, 0, w-endX, suffix, mutedStyle)
	}
}

// gutterWidth is the width of the line-number column including its padding.
func gutterWidth(state *statepkg.AppState) int {
	if !state.LineNumbersVisible() {
		return 0
	}
	return len(strconv.Itoa(state.Document.LineCount())) + 1
}

// drawDocument draws highlighted lines from state.ScrollOffset into rows
// [top, top+height).
func (r *Renderer) drawDocument(state *statepkg.AppState, top, height, w int) {
	if height <= 0 {
		return
	}
	base := r.theme.base()
	gutter := gutterWidth(state)
	textWidth := w - gutter
	if textWidth < 1 {
		gutter = 0
		textWidth = w
	}
	gutterStyle := base.Foreground(r.theme.GutterFg)

	row := 0
	for _, line := range state.RenderLines(state.ScrollOffset, state.ScrollOffset+height) {
		if row >= height {
			break
		}
		cells := spanCells(line.Spans, state.TabWidth, base)
		var rows [][]cell
		if state.WordWrap {
			rows = wrapCells(cells, textWidth)
		} else {
			rows = [][]cell{scrollCells(cells, state.ColumnOffset)}
		}

		for i, cells := range rows {
			if row >= height {
				break
			}
			y := top + row
			if gutter > 0 && i == 0 {
				number := fmt.Sprintf("%*d ", gutter-1, line.Number+1)
				r.drawTextLine(0, y, gutter, number, gutterStyle)
			}
			r.drawCells(gutter, y, textWidth, cells)
			row++
		}
	}
}

func (r *Renderer) drawSearchPrompt(state *statepkg.AppState, y, w int) {
	style := r.theme.bar()
	r.fillRow(0, y, w, style)

	status := formatSearchStatus(state)
	if status != "" {
		status = " " + status + " "
	}
	statusWidth := r.measureTextWidth(status)

	x := r.drawTextLine(0, y, w, "/", style.Foreground(r.theme.AccentFg).Bold(true))
	query := textutil.SanitizeTerminalText(state.SearchQuery)
	available := w - x - statusWidth - 1
	query = r.truncateLeft(query, available)
	x = r.drawTextLine(x, y, available, query, style)
	if x < w {
		r.screen.SetContent(x, y, ' ', nil, style.Reverse(true))
	}
	if statusWidth > 0 && statusWidth < w-x {
		r.drawTextLine(w-statusWidth, y, statusWidth, status, style.Foreground(r.theme.MutedFg))
	}
}

func (r *Renderer) drawErrorLine(message string, y, w int) {
	style := r.theme.base().Foreground(r.theme.ErrorFg)
	r.fillRow(0, y, w, style)
	text := r.truncateTextToWidth(" "+textutil.SanitizeTerminalText(message), w)
	r.drawTextLine(0, y, w, text, style)
}

func (r *Renderer) drawCenteredLines(lines []string, styles []tcell.Style, top, height, w int) {
	start := top + (height-len(lines))/2
	if start < top {
		start = top
	}
	for i, line := range lines {
		y := start + i
		if y >= top+height {
			break
		}
		text := r.truncateTextToWidth(line, w-2)
		x := (w - r.measureTextWidth(text)) / 2
		if x < 0 {
			x = 0
		}
		r.drawTextLine(x, y, w-x, text, styles[i])
	}
}

func (r *Renderer) drawCenteredError(message string, top, height, w int) {
	style := r.theme.base().Foreground(r.theme.ErrorFg)
	r.drawCenteredLines(
		[]string{textutil.SanitizeTerminalText(message), "", "< / > other files · q quit"},
		[]tcell.Style{style.Bold(true), style, r.theme.base().Foreground(r.theme.MutedFg)},
		top, height, w,
	)
}

// drawImageInfo shows image metadata; pixels are not drawn.
func (r *Renderer) drawImageInfo(state *statepkg.AppState, top, height, w int) {
	img := state.Image
	base := r.theme.base()
	muted := base.Foreground(r.theme.MutedFg)

	lines := []string{
		fmt.Sprintf("%s image", strings.ToUpper(img.Format)),
		fmt.Sprintf("%d × %d px", img.Width, img.Height),
		fmt.Sprintf("%s on disk · %s decoded", formatBytes(img.Size), formatBytes(img.RGBABytes())),
	}
	styles := []tcell.Style{base.Foreground(r.theme.AccentFg).Bold(true), base, muted}
	if state.ErrorMessage != "" {
		lines = append(lines, "", textutil.SanitizeTerminalText(state.ErrorMessage))
		styles = append(styles, base, base.Foreground(r.theme.ErrorFg))
	}
	r.drawCenteredLines(lines, styles, top, height, w)
}

// drawWelcome lists recent files when nothing is open.
func (r *Renderer) drawWelcome(state *statepkg.AppState, top, height, w int) {
	base := r.theme.base()
	muted := base.Foreground(r.theme.MutedFg)

	lines := []string{"rview", "usage: rview FILE"}
	styles := []tcell.Style{base.Foreground(r.theme.AccentFg).Bold(true), muted}
	if len(state.RecentFiles) > 0 {
		lines = append(lines, "", "Recent files")
		styles = append(styles, base, base.Bold(true))
		for i, path := range state.RecentFiles {
			if i >= maxRecentShown {
				break
			}
			key := strconv.Itoa((i + 1) % 10)
			entry := key + "  " + r.truncateLeft(textutil.SanitizeTerminalText(path), w-8)
			lines = append(lines, entry)
			styles = append(styles, base)
		}
	}
	r.drawCenteredLines(lines, styles, top, height, w)
}

// drawStatusLine renders the bottom bar: hints or search status on the left,
// theme and visible line range on the right.
func (r *Renderer) drawStatusLine(state *statepkg.AppState, w, h int) {
	style := r.theme.bar()
	y := h - 1
	r.fillRow(0, y, w, style)

	left := buildFooterHelpText(state)
	leftStyle := style.Foreground(r.theme.MutedFg)
	if status := formatSearchStatus(state); status != "" && !state.SearchActive {
		left = " " + status + " "
		leftStyle = style
	}
	if !state.LastYankTime.IsZero() && r.now().Sub(state.LastYankTime) < yankFlashDuration {
		left = " path copied "
		leftStyle = tcell.StyleDefault.Background(r.theme.FlashBg).Foreground(r.theme.FlashFg)
	}

	var right []string
	if state.Palette.Name != "" {
		right = append(right, state.Palette.Name)
	}
	if doc := state.Document; doc != nil {
		height := state.TextAreaHeight()
		last := state.ScrollOffset + height - 1
		if last >= doc.LineCount() {
			last = doc.LineCount() - 1
		}
		right = append(right, formatLineRange(state.ScrollOffset, last, doc.LineCount()))
	}
	rightText := ""
	if len(right) > 0 {
		rightText = " " + strings.Join(right, " · ") + " "
	}
	rightWidth := r.measureTextWidth(rightText)
	if rightWidth > w*2/3 {
		rightText = ""
		rightWidth = 0
	}

	leftText := r.truncateTextToWidth(left, w-rightWidth)
	r.drawTextLine(0, y, w-rightWidth, leftText, leftStyle)
	if rightText != "" {
		r.drawTextLine(w-rightWidth, y, rightWidth, rightText, style)
	}
}
