// Package ansi prints highlighted documents as terminal escape sequences for
// non-interactive output.
package ansi

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/rview/internal/highlight"
	textutil "github.com/kk-code-lab/rview/internal/textutil"
	"github.com/muesli/termenv"
)

// Options controls the printed layout.
type Options struct {
	LineNumbers bool
	TabWidth    int
	// Profile limits the escape sequences emitted; termenv.Ascii prints
	// plain text.
	Profile termenv.Profile
	// Wrap hard-wraps printed rows at this many columns, gutter included.
	// Zero disables wrapping.
	Wrap int
}

// Write highlights lines in one pass and prints them to w, one per row.
func Write(w io.Writer, lines []string, hl highlight.Options, opts Options) error {
	buf := bufio.NewWriter(w)
	out := termenv.NewOutput(buf, termenv.WithProfile(opts.Profile))
	tabWidth := opts.TabWidth
	if tabWidth <= 0 {
		tabWidth = textutil.DefaultTabWidth
	}
	gutter := len(strconv.Itoa(len(lines)))
	gutterColor := color(opts.Profile, hl.Palette.Comment)

	pass := highlight.NewPass(hl)
	var row strings.Builder
	for i, line := range lines {
		row.Reset()
		if opts.LineNumbers {
			number := out.String(fmt.Sprintf("%*d ", gutter, i+1))
			if gutterColor != nil {
				number = number.Foreground(gutterColor)
			}
			row.WriteString(number.String())
		}

		column := 0
		for _, sp := range pass.Line(line) {
			var text string
			text, column = textutil.ExpandTabsAt(textutil.SanitizeSpanText(sp.Text), column, tabWidth)
			style := out.String(text)
			if fg := color(opts.Profile, sp.Foreground); fg != nil {
				style = style.Foreground(fg)
			}
			if bg := color(opts.Profile, sp.Background); bg != nil {
				style = style.Background(bg)
			}
			row.WriteString(style.String())
		}

		text := row.String()
		if opts.Wrap > 0 {
			text = xansi.Hardwrap(text, opts.Wrap, true)
		}
		if _, err := buf.WriteString(text); err != nil {
			return err
		}
		if err := buf.WriteByte('\n'); err != nil {
			return err
		}
	}
	return buf.Flush()
}

// color converts a tcell color for profile; nil means leave the terminal
// default.
func color(profile termenv.Profile, c tcell.Color) termenv.Color {
	if c == tcell.ColorDefault || profile == termenv.Ascii {
		return nil
	}
	hex := c.Hex()
	if hex < 0 {
		return nil
	}
	return profile.Color(fmt.Sprintf("#%06x", hex))
}
