package textutil

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const DefaultTabWidth = 4

// ExpandTabsAt expands tabs in text that starts at the given display column and
// returns the expanded text together with the column after it. Highlighted spans
// are expanded one at a time, so tab stops must follow the column of the whole line.
func ExpandTabsAt(text string, column, tabWidth int) (string, int) {
	if tabWidth <= 0 || !strings.ContainsRune(text, '\t') {
		return text, column + DisplayWidth(text)
	}

	var builder strings.Builder
	builder.Grow(len(text) + tabWidth)
	for _, ru := range text {
		if ru == '\t' {
			spaces := tabWidth - (column % tabWidth)
			builder.WriteString(strings.Repeat(" ", spaces))
			column += spaces
			continue
		}
		builder.WriteRune(ru)
		column += runeColumns(ru)
	}
	return builder.String(), column
}

// DisplayWidth reports the printable width of text accounting for wide runes.
func DisplayWidth(text string) int {
	width := 0
	for _, ru := range text {
		width += runeColumns(ru)
	}
	return width
}

func runeColumns(ru rune) int {
	w := runewidth.RuneWidth(ru)
	if w < 1 {
		return 1
	}
	return w
}
