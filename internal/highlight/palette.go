package highlight

import "github.com/gdamore/tcell/v2"

// Palette maps every semantic category to a color.
type Palette struct {
	Name          string
	Background    tcell.Color
	Foreground    tcell.Color
	Keyword       tcell.Color
	String        tcell.Color
	Number        tcell.Color
	Comment       tcell.Color
	Brackets      []tcell.Color
	SearchMatch   tcell.Color
	SearchCurrent tcell.Color
}

// BracketColor picks the bracket color for a nesting depth, cycling through
// Brackets. Negative depths use the first color.
func (p Palette) BracketColor(depth int) tcell.Color {
	if len(p.Brackets) == 0 {
		return p.Foreground
	}
	if depth < 0 {
		depth = 0
	}
	return p.Brackets[depth%len(p.Brackets)]
}

func (p Palette) kindColor(kind Kind, base tcell.Color) tcell.Color {
	switch kind {
	case KindKeyword, KindLiteral:
		return p.Keyword
	case KindNumber:
		return p.Number
	case KindString:
		return p.String
	case KindComment:
		return p.Comment
	default:
		return base
	}
}
