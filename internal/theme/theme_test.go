package theme

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/require"
)

func TestLookupKnownPalettes(t *testing.T) {
	ids := IDs()
	require.Len(t, ids, 10)
	require.Equal(t, DefaultID, ids[0])

	for _, id := range ids {
		p, ok := Lookup(id)
		require.True(t, ok, id)
		require.NotEmpty(t, p.Name)
		require.Len(t, p.Brackets, 5, id)
		require.NotEqual(t, tcell.ColorDefault, p.SearchMatch, id)
		require.NotEqual(t, tcell.ColorDefault, p.SearchCurrent, id)
	}
}

func TestLookupAcceptsDisplayNames(t *testing.T) {
	p, ok := Lookup("Shades of Purple")
	require.True(t, ok)
	require.Equal(t, "Shades of Purple", p.Name)

	_, ok = Lookup("  DRACULA ")
	require.True(t, ok)

	_, ok = Lookup("solarized")
	require.False(t, ok)
	require.Equal(t, DefaultID, Resolve("solarized"))
}

func TestDefaultPaletteColors(t *testing.T) {
	p := Default()
	require.Equal(t, "One Dark Pro", p.Name)
	require.Equal(t, tcell.NewRGBColor(40, 44, 52), p.Background)
	require.Equal(t, tcell.NewRGBColor(171, 178, 191), p.Foreground)
	require.Equal(t, tcell.NewRGBColor(198, 120, 221), p.Keyword)
	require.Equal(t, tcell.NewRGBColor(152, 195, 121), p.Brackets[0])
}

func TestSearchColorsBlendOntoBackground(t *testing.T) {
	p := Default()
	r, g, b := p.SearchMatch.RGB()
	// Yellow at a quarter opacity over a dark background stays dark but
	// leans towards yellow.
	require.Greater(t, r, int32(40))
	require.Greater(t, g, int32(44))
	require.Less(t, b, int32(52))
	require.Less(t, r, int32(128))

	cr, _, _ := p.SearchCurrent.RGB()
	require.Greater(t, cr, int32(40))
	require.NotEqual(t, p.SearchMatch, p.SearchCurrent)
}

func TestNextCycles(t *testing.T) {
	ids := IDs()
	seen := map[string]bool{}
	id := DefaultID
	for range ids {
		seen[id] = true
		id = Next(id)
	}
	require.Equal(t, DefaultID, id)
	require.Len(t, seen, len(ids))
	require.Equal(t, DefaultID, Next("missing"))
}

func TestApplyOverrides(t *testing.T) {
	base := Default()
	p, err := ApplyOverrides(base, map[string]string{
		"keyword":  "#ff0000",
		"comment":  "00ff00",
		"brackets": "#111111, #222222",
	})
	require.NoError(t, err)
	require.Equal(t, tcell.NewRGBColor(255, 0, 0), p.Keyword)
	require.Equal(t, tcell.NewRGBColor(0, 255, 0), p.Comment)
	require.Equal(t, []tcell.Color{tcell.NewRGBColor(17, 17, 17), tcell.NewRGBColor(34, 34, 34)}, p.Brackets)
	require.Equal(t, base.SearchMatch, p.SearchMatch)

	_, err = ApplyOverrides(base, map[string]string{"keyword": "nope"})
	require.Error(t, err)

	_, err = ApplyOverrides(base, map[string]string{"sparkles": "#ffffff"})
	require.Error(t, err)
}

func TestApplyOverridesReblendsSearchColors(t *testing.T) {
	base := Default()
	p, err := ApplyOverrides(base, map[string]string{"background": "#000000"})
	require.NoError(t, err)
	require.Equal(t, tcell.NewRGBColor(0, 0, 0), p.Background)
	require.NotEqual(t, base.SearchMatch, p.SearchMatch)

	r, g, b := p.SearchMatch.RGB()
	require.InDelta(t, 64, r, 2)
	require.InDelta(t, 64, g, 2)
	require.InDelta(t, 0, b, 2)
}
