package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/rview/internal/highlight"
	"github.com/kk-code-lab/rview/internal/theme"
)

// ColorTheme holds the chrome colors derived from the active palette.
type ColorTheme struct {
	Background tcell.Color
	Foreground tcell.Color
	BarBg      tcell.Color
	BarFg      tcell.Color
	GutterFg   tcell.Color
	AccentFg   tcell.Color
	MutedFg    tcell.Color
	ErrorFg    tcell.Color
	FlashBg    tcell.Color
	FlashFg    tcell.Color
}

const (
	barBlend   = 0.12
	mutedBlend = 0.45
)

var errorColor = tcell.NewRGBColor(0xE0, 0x6C, 0x75)

// colorThemeFor derives bar and accent colors from a syntax palette so the
// chrome follows the selected theme.
func colorThemeFor(p highlight.Palette) ColorTheme {
	return ColorTheme{
		Background: p.Background,
		Foreground: p.Foreground,
		BarBg:      mix(p.Background, p.Foreground, barBlend),
		BarFg:      p.Foreground,
		GutterFg:   p.Comment,
		AccentFg:   p.Keyword,
		MutedFg:    mix(p.Background, p.Foreground, mutedBlend),
		ErrorFg:    errorColor,
		FlashBg:    p.String,
		FlashFg:    p.Background,
	}
}

// mix blends from toward to by t in Lab space. Colors that carry no RGB
// value are returned unchanged.
func mix(from, to tcell.Color, t float64) tcell.Color {
	a, okA := theme.ToColorful(from)
	b, okB := theme.ToColorful(to)
	if !okA || !okB {
		return from
	}
	return theme.FromColorful(a.BlendLab(b, t))
}

func (t ColorTheme) base() tcell.Style {
	return tcell.StyleDefault.Background(t.Background).Foreground(t.Foreground)
}

func (t ColorTheme) bar() tcell.Style {
	return tcell.StyleDefault.Background(t.BarBg).Foreground(t.BarFg)
}
