// Package theme holds the built-in color palettes and the helpers that turn
// them into opaque terminal colors.
package theme

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/rview/internal/highlight"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// DefaultID names the palette used when nothing else is configured.
const DefaultID = "one-dark-pro"

const (
	searchMatchAlpha   = 64
	searchCurrentAlpha = 96
)

type rgb [3]uint8

type rgba struct {
	rgb
	alpha uint8
}

type definition struct {
	id         string
	name       string
	background rgb
	foreground rgb
	keyword    rgb
	str        rgb
	number     rgb
	comment    rgb
	brackets   [5]rgb
	match      rgba
	current    rgba
}

var definitions = []definition{
	{
		id: "one-dark-pro", name: "One Dark Pro",
		background: rgb{40, 44, 52}, foreground: rgb{171, 178, 191},
		keyword: rgb{198, 120, 221}, str: rgb{152, 195, 121}, number: rgb{209, 154, 102}, comment: rgb{92, 99, 112},
		brackets: [5]rgb{{152, 195, 121}, {224, 108, 117}, {97, 175, 239}, {229, 192, 123}, {86, 182, 194}},
		match:    rgba{rgb{255, 255, 0}, searchMatchAlpha}, current: rgba{rgb{224, 108, 117}, searchCurrentAlpha},
	},
	{
		id: "dracula", name: "Dracula",
		background: rgb{40, 42, 54}, foreground: rgb{248, 248, 242},
		keyword: rgb{255, 121, 198}, str: rgb{241, 250, 140}, number: rgb{189, 147, 249}, comment: rgb{98, 114, 164},
		brackets: [5]rgb{{80, 250, 123}, {255, 85, 85}, {139, 233, 253}, {255, 184, 108}, {189, 147, 249}},
		match:    rgba{rgb{255, 184, 108}, searchMatchAlpha}, current: rgba{rgb{255, 85, 85}, searchCurrentAlpha},
	},
	{
		id: "material-theme", name: "Material Theme",
		background: rgb{33, 33, 33}, foreground: rgb{238, 255, 65},
		keyword: rgb{199, 146, 234}, str: rgb{195, 232, 141}, number: rgb{255, 213, 79}, comment: rgb{117, 113, 94},
		brackets: [5]rgb{{195, 232, 141}, {255, 83, 112}, {130, 170, 255}, {255, 213, 79}, {199, 146, 234}},
		match:    rgba{rgb{255, 213, 79}, searchMatchAlpha}, current: rgba{rgb{255, 83, 112}, searchCurrentAlpha},
	},
	{
		id: "monokai-pro", name: "Monokai Pro",
		background: rgb{39, 40, 34}, foreground: rgb{248, 248, 242},
		keyword: rgb{249, 38, 114}, str: rgb{230, 219, 116}, number: rgb{174, 129, 255}, comment: rgb{117, 113, 94},
		brackets: [5]rgb{{166, 226, 46}, {249, 38, 114}, {102, 217, 239}, {230, 219, 116}, {174, 129, 255}},
		match:    rgba{rgb{230, 219, 116}, searchMatchAlpha}, current: rgba{rgb{249, 38, 114}, searchCurrentAlpha},
	},
	{
		id: "night-owl", name: "Night Owl",
		background: rgb{1, 22, 39}, foreground: rgb{131, 148, 150},
		keyword: rgb{195, 232, 141}, str: rgb{173, 219, 103}, number: rgb{255, 203, 107}, comment: rgb{99, 119, 119},
		brackets: [5]rgb{{173, 219, 103}, {255, 99, 99}, {130, 170, 255}, {255, 203, 107}, {199, 146, 234}},
		match:    rgba{rgb{255, 203, 107}, searchMatchAlpha}, current: rgba{rgb{255, 99, 99}, searchCurrentAlpha},
	},
	{
		id: "ayu", name: "Ayu",
		background: rgb{15, 20, 25}, foreground: rgb{203, 204, 198},
		keyword: rgb{255, 204, 102}, str: rgb{201, 208, 255}, number: rgb{255, 204, 102}, comment: rgb{92, 99, 112},
		brackets: [5]rgb{{201, 208, 255}, {255, 204, 102}, {255, 255, 255}, {255, 204, 102}, {201, 208, 255}},
		match:    rgba{rgb{255, 204, 102}, searchMatchAlpha}, current: rgba{rgb{255, 204, 102}, searchCurrentAlpha},
	},
	{
		id: "cobalt2", name: "Cobalt2",
		background: rgb{13, 13, 13}, foreground: rgb{255, 255, 255},
		keyword: rgb{255, 168, 33}, str: rgb{255, 255, 255}, number: rgb{255, 168, 33}, comment: rgb{0, 255, 255},
		brackets: [5]rgb{{0, 255, 0}, {255, 0, 0}, {0, 0, 255}, {255, 255, 0}, {0, 255, 255}},
		match:    rgba{rgb{255, 255, 0}, searchMatchAlpha}, current: rgba{rgb{255, 0, 0}, searchCurrentAlpha},
	},
	{
		id: "palenight", name: "Palenight",
		background: rgb{41, 45, 62}, foreground: rgb{169, 183, 198},
		keyword: rgb{195, 232, 141}, str: rgb{195, 232, 141}, number: rgb{255, 203, 107}, comment: rgb{99, 119, 119},
		brackets: [5]rgb{{195, 232, 141}, {255, 99, 99}, {130, 170, 255}, {255, 203, 107}, {199, 146, 234}},
		match:    rgba{rgb{255, 203, 107}, searchMatchAlpha}, current: rgba{rgb{255, 99, 99}, searchCurrentAlpha},
	},
	{
		id: "shades-of-purple", name: "Shades of Purple",
		background: rgb{45, 42, 85}, foreground: rgb{255, 255, 255},
		keyword: rgb{255, 121, 198}, str: rgb{255, 255, 255}, number: rgb{255, 121, 198}, comment: rgb{255, 121, 198},
		brackets: [5]rgb{{255, 255, 255}, {255, 121, 198}, {255, 255, 255}, {255, 121, 198}, {255, 255, 255}},
		match:    rgba{rgb{255, 121, 198}, searchMatchAlpha}, current: rgba{rgb{255, 121, 198}, searchCurrentAlpha},
	},
	{
		id: "noctis", name: "Noctis",
		background: rgb{25, 25, 25}, foreground: rgb{255, 255, 255},
		keyword: rgb{255, 204, 102}, str: rgb{255, 255, 255}, number: rgb{255, 204, 102}, comment: rgb{92, 99, 112},
		brackets: [5]rgb{{255, 255, 255}, {255, 204, 102}, {255, 255, 255}, {255, 204, 102}, {255, 255, 255}},
		match:    rgba{rgb{255, 204, 102}, searchMatchAlpha}, current: rgba{rgb{255, 204, 102}, searchCurrentAlpha},
	},
}

// IDs lists the palette identifiers in cycling order.
func IDs() []string {
	ids := make([]string, len(definitions))
	for i, def := range definitions {
		ids[i] = def.id
	}
	return ids
}

// Lookup returns the palette registered under id. Matching ignores case and
// surrounding spaces; display names are accepted too.
func Lookup(id string) (highlight.Palette, bool) {
	if def, ok := find(id); ok {
		return def.palette(), true
	}
	return highlight.Palette{}, false
}

// Default returns the One Dark Pro palette.
func Default() highlight.Palette {
	p, _ := Lookup(DefaultID)
	return p
}

// Next returns the identifier after id, wrapping to the first palette. An
// unknown id restarts the cycle.
func Next(id string) string {
	for i, def := range definitions {
		if def.id == normalizeID(id) {
			return definitions[(i+1)%len(definitions)].id
		}
	}
	return definitions[0].id
}

// Resolve returns the identifier registered for id, or DefaultID.
func Resolve(id string) string {
	if def, ok := find(id); ok {
		return def.id
	}
	return DefaultID
}

func find(id string) (definition, bool) {
	key := normalizeID(id)
	for _, def := range definitions {
		if def.id == key || normalizeID(def.name) == key {
			return def, true
		}
	}
	return definition{}, false
}

func normalizeID(id string) string {
	id = strings.ToLower(strings.TrimSpace(id))
	return strings.Join(strings.Fields(id), "-")
}

func (d definition) palette() highlight.Palette {
	brackets := make([]tcell.Color, len(d.brackets))
	for i, c := range d.brackets {
		brackets[i] = c.color()
	}
	return highlight.Palette{
		Name:          d.name,
		Background:    d.background.color(),
		Foreground:    d.foreground.color(),
		Keyword:       d.keyword.color(),
		String:        d.str.color(),
		Number:        d.number.color(),
		Comment:       d.comment.color(),
		Brackets:      brackets,
		SearchMatch:   d.match.over(d.background),
		SearchCurrent: d.current.over(d.background),
	}
}

func (c rgb) color() tcell.Color {
	return tcell.NewRGBColor(int32(c[0]), int32(c[1]), int32(c[2]))
}

func (c rgb) colorful() colorful.Color {
	return colorful.Color{R: float64(c[0]) / 255, G: float64(c[1]) / 255, B: float64(c[2]) / 255}
}

// over composites a translucent color onto an opaque background.
func (c rgba) over(background rgb) tcell.Color {
	blended := background.colorful().BlendRgb(c.colorful(), float64(c.alpha)/255).Clamped()
	return FromColorful(blended)
}

// FromColorful converts a go-colorful color to a tcell true color.
func FromColorful(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// ToColorful converts a tcell color to go-colorful. Palette indexes resolve
// through tcell's RGB table; ColorDefault reports false.
func ToColorful(c tcell.Color) (colorful.Color, bool) {
	if c == tcell.ColorDefault {
		return colorful.Color{}, false
	}
	r, g, b := c.RGB()
	if r < 0 {
		return colorful.Color{}, false
	}
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}, true
}

// Override keys accepted by ApplyOverrides.
const (
	KeyBackground    = "background"
	KeyForeground    = "foreground"
	KeyKeyword       = "keyword"
	KeyString        = "string"
	KeyNumber        = "number"
	KeyComment       = "comment"
	KeySearchMatch   = "search_match"
	KeySearchCurrent = "search_current"
	KeyBrackets      = "brackets"
)

// ApplyOverrides replaces palette colors with "#rrggbb" values keyed by
// category. The brackets key takes a comma separated list. Search colors
// given without an explicit override are re-blended onto a new background.
func ApplyOverrides(p highlight.Palette, overrides map[string]string) (highlight.Palette, error) {
	if len(overrides) == 0 {
		return p, nil
	}

	keys := make([]string, 0, len(overrides))
	for key := range overrides {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	oldBackground := p.Background
	for _, key := range keys {
		value := strings.TrimSpace(overrides[key])
		if value == "" {
			continue
		}
		if strings.ToLower(key) == KeyBrackets {
			brackets, err := parseBrackets(value)
			if err != nil {
				return p, err
			}
			p.Brackets = brackets
			continue
		}

		color, err := parseHex(value)
		if err != nil {
			return p, fmt.Errorf("color %s: %w", key, err)
		}
		switch strings.ToLower(key) {
		case KeyBackground:
			p.Background = color
		case KeyForeground:
			p.Foreground = color
		case KeyKeyword:
			p.Keyword = color
		case KeyString:
			p.String = color
		case KeyNumber:
			p.Number = color
		case KeyComment:
			p.Comment = color
		case KeySearchMatch:
			p.SearchMatch = color
		case KeySearchCurrent:
			p.SearchCurrent = color
		default:
			return p, fmt.Errorf("unknown color key %q", key)
		}
	}

	if p.Background != oldBackground {
		if _, ok := overrides[KeySearchMatch]; !ok {
			p.SearchMatch = reblend(p.SearchMatch, oldBackground, p.Background, searchMatchAlpha)
		}
		if _, ok := overrides[KeySearchCurrent]; !ok {
			p.SearchCurrent = reblend(p.SearchCurrent, oldBackground, p.Background, searchCurrentAlpha)
		}
	}
	return p, nil
}

// reblend recovers the source of a color blended onto from and blends it onto
// to. The result is approximate once channels have clamped.
func reblend(c, from, to tcell.Color, alpha uint8) tcell.Color {
	blended, ok := ToColorful(c)
	if !ok {
		return c
	}
	oldBg, okOld := ToColorful(from)
	newBg, okNew := ToColorful(to)
	if !okOld || !okNew {
		return c
	}
	t := float64(alpha) / 255
	src := colorful.Color{
		R: oldBg.R + (blended.R-oldBg.R)/t,
		G: oldBg.G + (blended.G-oldBg.G)/t,
		B: oldBg.B + (blended.B-oldBg.B)/t,
	}.Clamped()
	return FromColorful(newBg.BlendRgb(src, t))
}

func parseHex(value string) (tcell.Color, error) {
	if !strings.HasPrefix(value, "#") {
		value = "#" + value
	}
	c, err := colorful.Hex(value)
	if err != nil {
		return tcell.ColorDefault, err
	}
	return FromColorful(c), nil
}

func parseBrackets(value string) ([]tcell.Color, error) {
	parts := strings.Split(value, ",")
	out := make([]tcell.Color, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		c, err := parseHex(part)
		if err != nil {
			return nil, fmt.Errorf("bracket color %q: %w", part, err)
		}
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("bracket list is empty")
	}
	return out, nil
}
