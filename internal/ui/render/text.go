package render

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/rview/internal/highlight"
	textutil "github.com/kk-code-lab/rview/internal/textutil"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

func (r *Renderer) cachedRuneWidth(ru rune) int {
	if ru < 128 {
		r.runeWidthCacheMu.RLock()
		width := r.runeWidthCache[ru]
		r.runeWidthCacheMu.RUnlock()

		if width == 0 && ru != 0 {
			actualWidth := runewidth.RuneWidth(ru)
			if actualWidth < 0 {
				actualWidth = 0
			}
			r.runeWidthCacheMu.Lock()
			r.runeWidthCache[ru] = actualWidth + 1
			r.runeWidthCacheMu.Unlock()
			return actualWidth
		}
		return width - 1
	}

	if cached, ok := r.runeWidthWide.Load(ru); ok {
		return cached.(int)
	}

	width := runewidth.RuneWidth(ru)
	if width < 0 {
		width = 0
	}
	r.runeWidthWide.Store(ru, width)
	return width
}

func (r *Renderer) measureTextWidth(text string) int {
	width := 0
	for _, ru := range text {
		width += r.cachedRuneWidth(ru)
	}
	return width
}

func (r *Renderer) truncateTextToWidth(text string, maxWidth int) string {
	if maxWidth <= 0 || text == "" {
		return ""
	}

	if r.measureTextWidth(text) <= maxWidth {
		return text
	}

	const ellipsis = "…"
	ellipsisWidth := r.cachedRuneWidth('…')
	if ellipsisWidth <= 0 {
		ellipsisWidth = 1
	}
	if maxWidth <= ellipsisWidth {
		return ellipsis
	}

	available := maxWidth - ellipsisWidth
	var builder strings.Builder
	currentWidth := 0

	for _, ru := range text {
		runeWidth := r.cachedRuneWidth(ru)
		if currentWidth+runeWidth > available {
			break
		}
		builder.WriteRune(ru)
		currentWidth += runeWidth
	}

	builder.WriteString(ellipsis)
	return builder.String()
}

// truncateLeft keeps the end of text, which for paths is the useful part.
func (r *Renderer) truncateLeft(text string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if r.measureTextWidth(text) <= maxWidth {
		return text
	}
	if maxWidth == 1 {
		return "…"
	}

	runes := []rune(text)
	width := 0
	start := len(runes)
	for start > 0 {
		w := r.cachedRuneWidth(runes[start-1])
		if width+w > maxWidth-1 {
			break
		}
		width += w
		start--
	}
	return "…" + string(runes[start:])
}

func (r *Renderer) drawTextLine(startX, y, maxWidth int, text string, style tcell.Style) int {
	x := startX
	runes := []rune(text)
	i := 0

	for i < len(runes) {
		if x-startX >= maxWidth {
			break
		}

		mainc := runes[i]
		i++

		var combc []rune
		for i < len(runes) && r.cachedRuneWidth(runes[i]) == 0 {
			combc = append(combc, runes[i])
			i++
		}

		w := r.cachedRuneWidth(mainc)
		if w <= 0 {
			w = 1
		}
		if x-startX+w > maxWidth {
			break
		}
		r.screen.SetContent(x, y, mainc, combc, style)
		x += w
	}

	return x
}

func (r *Renderer) fillRow(startX, y, endX int, style tcell.Style) {
	for x := startX; x < endX; x++ {
		r.screen.SetContent(x, y, ' ', nil, style)
	}
}

// cell is one grapheme cluster ready to be drawn.
type cell struct {
	main  rune
	comb  []rune
	width int
	style tcell.Style
}

// spanCells expands tabs against the column of the whole line and splits the
// spans into grapheme clusters.
func spanCells(spans []highlight.Span, tabWidth int, base tcell.Style) []cell {
	var cells []cell
	column := 0
	for _, sp := range spans {
		style := base.Foreground(sp.Foreground)
		if sp.Background != tcell.ColorDefault {
			style = style.Background(sp.Background)
		}

		var text string
		text, column = textutil.ExpandTabsAt(textutil.SanitizeSpanText(sp.Text), column, tabWidth)
		state := -1
		for text != "" {
			var cluster string
			var width int
			cluster, text, width, state = uniseg.FirstGraphemeClusterInString(text, state)
			runes := []rune(cluster)
			if width < 1 {
				width = 1
			}
			cells = append(cells, cell{main: runes[0], comb: runes[1:], width: width, style: style})
		}
	}
	return cells
}

// wrapCells breaks cells into rows of at most width columns. An empty line
// still takes one row.
func wrapCells(cells []cell, width int) [][]cell {
	if width < 1 {
		width = 1
	}
	rows := [][]cell{nil}
	used := 0
	for _, c := range cells {
		if used+c.width > width && used > 0 {
			rows = append(rows, nil)
			used = 0
		}
		rows[len(rows)-1] = append(rows[len(rows)-1], c)
		used += c.width
	}
	return rows
}

// scrollCells drops the first offset columns. A wide cluster cut by the
// offset leaves blank columns in its place.
func scrollCells(cells []cell, offset int) []cell {
	if offset <= 0 {
		return cells
	}
	column := 0
	for i, c := range cells {
		if column >= offset {
			return cells[i:]
		}
		if column+c.width > offset {
			pad := column + c.width - offset
			out := make([]cell, 0, pad+len(cells)-i-1)
			for j := 0; j < pad; j++ {
				out = append(out, cell{main: ' ', width: 1, style: c.style})
			}
			return append(out, cells[i+1:]...)
		}
		column += c.width
	}
	return nil
}

// drawCells draws cells from startX and returns the column after the last
// one that fit.
func (r *Renderer) drawCells(startX, y, maxWidth int, cells []cell) int {
	x := startX
	for _, c := range cells {
		if x-startX+c.width > maxWidth {
			break
		}
		r.screen.SetContent(x, y, c.main, c.comb, c.style)
		for i := 1; i < c.width; i++ {
			r.screen.SetContent(x+i, y, ' ', nil, c.style)
		}
		x += c.width
	}
	return x
}
