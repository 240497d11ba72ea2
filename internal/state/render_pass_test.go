package state

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/kk-code-lab/rview/internal/highlight"
	"github.com/kk-code-lab/rview/internal/theme"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func documentState(text string, lang highlight.Language) *AppState {
	s := &AppState{
		Palette:      theme.Default(),
		Syntax:       true,
		ScreenHeight: 20,
		ScreenWidth:  80,
	}
	s.Document = &Document{
		Text:       text,
		Lines:      strings.Split(strings.TrimSuffix(text, "\n"), "\n"),
		Size:       int64(len(text)),
		Language:   lang,
		Generation: 1,
	}
	return s
}

func fullPass(s *AppState) [][]highlight.Span {
	pass := highlight.NewPass(s.HighlightOptions())
	out := make([][]highlight.Span, len(s.Document.Lines))
	for i, line := range s.Document.Lines {
		out[i] = pass.Line(line)
	}
	return out
}

func TestRenderLinesMatchesFullPass(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 3*checkpointInterval+17; i++ {
		switch i % 7 {
		case 0:
			b.WriteString("/* open comment foo\n")
		case 3:
			b.WriteString("still comment */ fn foo() {\n")
		case 5:
			b.WriteString("  let s = \"foo\"; }\n")
		default:
			b.WriteString("foo(bar[1]) // foo\n")
		}
	}
	s := documentState(b.String(), highlight.LanguageRust)
	s.SearchQuery = "foo"
	s.SearchCurrent = 40
	want := fullPass(s)

	for _, window := range [][2]int{
		{500, 520},
		{0, 10},
		{checkpointInterval - 1, checkpointInterval + 2},
		{2*checkpointInterval + 5, 2*checkpointInterval + 30},
		{10, 40},
	} {
		got := s.RenderLines(window[0], window[1])
		require.Len(t, got, window[1]-window[0])
		for _, line := range got {
			if diff := cmp.Diff(want[line.Number], line.Spans); diff != "" {
				t.Fatalf("line %d mismatch (-want +got):\n%s", line.Number, diff)
			}
		}
	}
}

func TestRenderLinesClampsRange(t *testing.T) {
	s := documentState("a\nb\nc\n", highlight.LanguagePlain)
	require.Len(t, s.RenderLines(-5, 100), 3)
	require.Empty(t, s.RenderLines(3, 5))

	s.Document = nil
	require.Nil(t, s.RenderLines(0, 1))
}

func TestRenderLinesCheckpointsResetOnQueryChange(t *testing.T) {
	text := strings.Repeat("x x\n", checkpointInterval*2)
	s := documentState(text, highlight.LanguagePlain)
	s.SearchQuery = "x"
	_ = s.RenderLines(checkpointInterval+1, checkpointInterval+2)
	require.Len(t, s.passCache.carries, 2)

	s.SearchQuery = "x x"
	s.SearchCurrent = checkpointInterval + 1
	want := fullPass(s)
	got := s.RenderLines(checkpointInterval+1, checkpointInterval+2)
	if diff := cmp.Diff(want[checkpointInterval+1], got[0].Spans); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, highlight.MatchCurrent, got[0].Spans[0].Match)
}

func TestRenderLinesWindowProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		lines := rapid.SliceOfN(rapid.SampledFrom([]string{
			"a(b)", "/* c", "d */ a", "'a' // a", "}}", "A a", "",
		}), 1, 600).Draw(t, "lines")
		s := documentState(strings.Join(lines, "\n")+"\n", highlight.LanguageC)
		s.SearchQuery = "a"
		want := fullPass(s)

		for i := 0; i < 3; i++ {
			start := rapid.IntRange(0, len(lines)-1).Draw(t, "start")
			end := rapid.IntRange(start, len(lines)).Draw(t, "end")
			for _, line := range s.RenderLines(start, end) {
				if diff := cmp.Diff(want[line.Number], line.Spans); diff != "" {
					t.Fatalf("line %d mismatch (-want +got):\n%s", line.Number, diff)
				}
			}
		}
	})
}
