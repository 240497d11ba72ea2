package render

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	fsutil "github.com/kk-code-lab/rview/internal/fs"
	"github.com/kk-code-lab/rview/internal/highlight"
	statepkg "github.com/kk-code-lab/rview/internal/state"
	textutil "github.com/kk-code-lab/rview/internal/textutil"
	"github.com/kk-code-lab/rview/internal/theme"
)

func TestTruncateTextToWidth(t *testing.T) {
	r := NewRenderer(nil)

	tests := []struct {
		name   string
		text   string
		width  int
		expect string
	}{
		{"fits without truncation", "file.txt", 20, "file.txt"},
		{"adds ellipsis when needed", "verylongname", 6, "veryl…"},
		{"only ellipsis when width too small", "example", 1, "…"},
		{"multi-byte characters respected", "你好世界", 5, "你好…"},
		{"returns empty when width is zero", "anything", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual := r.truncateTextToWidth(tt.text, tt.width)
			if actual != tt.expect {
				t.Fatalf("expected %q, got %q (width %d)", tt.expect, actual, tt.width)
			}
		})
	}
}

func TestTruncateLeftKeepsTail(t *testing.T) {
	r := NewRenderer(nil)
	if got := r.truncateLeft("/home/user/project/main.go", 10); got != "…/main.go" {
		t.Fatalf("unexpected %q", got)
	}
	if got := r.truncateLeft("short", 10); got != "short" {
		t.Fatalf("unexpected %q", got)
	}
}

func TestMeasureTextWidth(t *testing.T) {
	r := NewRenderer(nil)

	if got := r.measureTextWidth("abc"); got != 3 {
		t.Fatalf("expected ASCII width 3, got %d", got)
	}

	if got := r.measureTextWidth("你好"); got != 4 {
		t.Fatalf("expected wide rune width 4, got %d", got)
	}
}

func cellText(cells []cell) string {
	var text strings.Builder
	for _, c := range cells {
		text.WriteRune(c.main)
	}
	return text.String()
}

func TestSpanCellsExpandsTabsAcrossSpans(t *testing.T) {
	spans := []highlight.Span{
		{Text: "ab", Foreground: tcell.ColorRed, Background: tcell.ColorDefault},
		{Text: "\tc", Foreground: tcell.ColorBlue, Background: tcell.ColorYellow},
	}
	cells := spanCells(spans, 4, tcell.StyleDefault)
	if got := cellText(cells); got != "ab  c" {
		t.Fatalf("expected tab expanded to column 4, got %q", got)
	}

	fg, bg, _ := cells[2].style.Decompose()
	if fg != tcell.ColorBlue || bg != tcell.ColorYellow {
		t.Fatalf("tab cell should carry its span style, got fg=%v bg=%v", fg, bg)
	}
}

func TestSpanCellsKeepsGraphemeClusters(t *testing.T) {
	spans := []highlight.Span{{Text: "e\u0301x", Background: tcell.ColorDefault}}
	cells := spanCells(spans, 4, tcell.StyleDefault)
	if len(cells) != 2 {
		t.Fatalf("expected 2 cells, got %d", len(cells))
	}
	if cells[0].main != 'e' || len(cells[0].comb) != 1 || cells[0].comb[0] != '\u0301' {
		t.Fatalf("combining mark should stay with its base, got %q %q", cells[0].main, cells[0].comb)
	}
}

func TestWrapCells(t *testing.T) {
	cells := spanCells([]highlight.Span{{Text: "abcdefg", Background: tcell.ColorDefault}}, 4, tcell.StyleDefault)
	rows := wrapCells(cells, 3)
	if len(rows) != 3 || len(rows[2]) != 1 {
		t.Fatalf("expected rows of 3,3,1 cells, got %d rows", len(rows))
	}

	if rows := wrapCells(nil, 10); len(rows) != 1 {
		t.Fatalf("empty line keeps one row, got %d", len(rows))
	}

	wide := spanCells([]highlight.Span{{Text: "a你好", Background: tcell.ColorDefault}}, 4, tcell.StyleDefault)
	if rows := wrapCells(wide, 4); len(rows) != 2 {
		t.Fatalf("wide cluster that does not fit moves to the next row, got %d rows", len(rows))
	}
}

func TestScrollCellsPadsSplitWideCluster(t *testing.T) {
	cells := spanCells([]highlight.Span{{Text: "你好x", Background: tcell.ColorDefault}}, 4, tcell.StyleDefault)
	got := scrollCells(cells, 1)
	if len(got) != 3 || got[0].main != ' ' || got[1].main != '好' {
		t.Fatalf("expected padding then 好, got %q", cellText(got))
	}
	if rest := scrollCells(cells, 10); len(rest) != 0 {
		t.Fatalf("scrolling past the end should leave nothing, got %q", cellText(rest))
	}
}

func TestFormatSearchStatus(t *testing.T) {
	doc := &statepkg.Document{Text: "x", Lines: []string{"x"}}
	state := &statepkg.AppState{Document: doc}

	tests := []struct {
		name    string
		query   string
		count   int
		current int
		text    string
		want    string
	}{
		{"no query", "", 0, 0, "x", ""},
		{"no matches", "x", 0, 0, "x", "no matches"},
		{"single", "x", 1, 0, "x", "1 match · 1/1"},
		{"many", "x", 12, 4, "x", "12 matches · 5/12"},
		{"large file", "x", 12, 4, strings.Repeat("x", statepkg.HighlightByteThreshold+1), "search off (large file)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc.Text = tt.text
			state.SearchQuery, state.SearchCount, state.SearchCurrent = tt.query, tt.count, tt.current
			if got := formatSearchStatus(state); got != tt.want {
				t.Fatalf("formatSearchStatus = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatHelpers(t *testing.T) {
	checks := []struct {
		got, want string
	}{
		{formatLineRange(0, 19, 300), "1-20/300"},
		{formatLineRange(0, 0, 0), "empty"},
		{formatCompactNumber(150_000), "150k"},
		{formatCompactNumber(1_500_000), "1.5M"},
		{formatBytes(512), "512 B"},
		{formatBytes(1536), "1.5 KB"},
		{formatBytes(128 * 1024 * 1024), "128 MB"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("got %q, want %q", c.got, c.want)
		}
	}
}

func newSimScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	scr := tcell.NewSimulationScreen("")
	if err := scr.Init(); err != nil {
		t.Fatalf("failed to init screen: %v", err)
	}
	scr.SetSize(w, h)
	t.Cleanup(scr.Fini)
	return scr
}

func rowText(scr tcell.Screen, y, w int) string {
	var b strings.Builder
	for x := 0; x < w; x++ {
		mainc, _, _, _ := scr.GetContent(x, y)
		b.WriteRune(mainc)
	}
	return b.String()
}

func screenText(scr tcell.Screen, w, h int) string {
	var b strings.Builder
	for y := 0; y < h; y++ {
		b.WriteString(rowText(scr, y, w))
		b.WriteByte('\n')
	}
	return b.String()
}

func documentState(text string) *statepkg.AppState {
	s := &statepkg.AppState{
		Path:            "/tmp/demo.rs",
		Palette:         theme.Default(),
		ShowLineNumbers: true,
		Syntax:          true,
		TabWidth:        4,
		ScreenWidth:     40,
		ScreenHeight:    8,
	}
	s.Document = &statepkg.Document{
		Path:       s.Path,
		Text:       text,
		Lines:      textutil.SplitLines(text),
		Size:       int64(len(text)),
		Encoding:   fsutil.EncodingUTF8,
		Language:   highlight.LanguageRust,
		Generation: 1,
	}
	return s
}

func backgroundAt(scr tcell.Screen, x, y int) tcell.Color {
	_, _, style, _ := scr.GetContent(x, y)
	_, bg, _ := style.Decompose()
	return bg
}

func TestRenderDocumentWithGutterAndMatches(t *testing.T) {
	scr := newSimScreen(t, 40, 8)
	state := documentState("fn main() {\n    let foo = 1; // foo\n}\n")
	state.SearchQuery = "foo"
	state.SearchCount = 2
	state.SearchCurrent = 1

	NewRenderer(scr).Render(state)

	header := rowText(scr, 0, 40)
	if !strings.Contains(header, "/tmp/demo.rs") || !strings.Contains(header, "rust") {
		t.Fatalf("header should show path and language, got %q", header)
	}
	if row := rowText(scr, 1, 40); !strings.HasPrefix(row, "1 fn main() {") {
		t.Fatalf("unexpected first row %q", row)
	}
	if row := rowText(scr, 2, 40); !strings.HasPrefix(row, "2     let foo = 1; // foo") {
		t.Fatalf("unexpected second row %q", row)
	}

	_, _, gutterStyle, _ := scr.GetContent(0, 1)
	if fg, _, _ := gutterStyle.Decompose(); fg != state.Palette.Comment {
		t.Fatalf("gutter should use the comment color, got %v", fg)
	}
	if bg := backgroundAt(scr, 10, 2); bg != state.Palette.SearchMatch {
		t.Fatalf("first match should use the search color, got %v", bg)
	}
	if bg := backgroundAt(scr, 22, 2); bg != state.Palette.SearchCurrent {
		t.Fatalf("current match should use the current color, got %v", bg)
	}

	status := rowText(scr, 7, 40)
	if !strings.Contains(status, "2 matches · 2/2") || !strings.Contains(status, "1-3/3") {
		t.Fatalf("unexpected status line %q", status)
	}
}

func TestRenderWrapsLongLines(t *testing.T) {
	scr := newSimScreen(t, 10, 6)
	state := documentState("abcdefghijklmnop\nz\n")
	state.ShowLineNumbers = false
	state.WordWrap = true

	NewRenderer(scr).Render(state)
	for y, want := range []string{"abcdefghij", "klmnop    ", "z         "} {
		if got := rowText(scr, y+1, 10); got != want {
			t.Errorf("row %d = %q, want %q", y+1, got, want)
		}
	}
}

func TestRenderHorizontalScroll(t *testing.T) {
	scr := newSimScreen(t, 10, 4)
	state := documentState("abcdefghijklmnop\n")
	state.ShowLineNumbers = false
	state.ColumnOffset = 8

	NewRenderer(scr).Render(state)
	if got := rowText(scr, 1, 10); got != "ijklmnop  " {
		t.Fatalf("unexpected scrolled row %q", got)
	}
}

func TestRenderSearchPromptAndErrorLine(t *testing.T) {
	scr := newSimScreen(t, 40, 8)
	state := documentState("foo\n")
	state.SearchActive = true
	state.SearchQuery = "fo"
	state.SearchCount = 1
	state.ErrorMessage = "reload failed"

	NewRenderer(scr).Render(state)
	prompt := rowText(scr, 6, 40)
	if !strings.HasPrefix(prompt, "/fo") || !strings.Contains(prompt, "1 match · 1/1") {
		t.Fatalf("unexpected prompt row %q", prompt)
	}
	if row := rowText(scr, 5, 40); !strings.Contains(row, "reload failed") {
		t.Fatalf("expected error line, got %q", row)
	}
}

func TestRenderWelcomeListsRecentFiles(t *testing.T) {
	scr := newSimScreen(t, 40, 10)
	state := &statepkg.AppState{Palette: theme.Default(), RecentFiles: []string{"/a.txt", "/b.txt"}}

	NewRenderer(scr).Render(state)
	screen := screenText(scr, 40, 10)
	for _, want := range []string{"1  /a.txt", "2  /b.txt"} {
		if !strings.Contains(screen, want) {
			t.Fatalf("welcome screen missing %q:\n%s", want, screen)
		}
	}
}

func TestRenderImageInfo(t *testing.T) {
	scr := newSimScreen(t, 40, 10)
	state := &statepkg.AppState{
		Path:    "/tmp/pic.png",
		Palette: theme.Default(),
		Image:   &fsutil.ImageInfo{Path: "/tmp/pic.png", Format: "png", Width: 640, Height: 480, Size: 2048},
	}

	NewRenderer(scr).Render(state)
	screen := screenText(scr, 40, 10)
	for _, want := range []string{"PNG image", "640 × 480 px"} {
		if !strings.Contains(screen, want) {
			t.Fatalf("image panel missing %q:\n%s", want, screen)
		}
	}
}

func TestRenderYankFlash(t *testing.T) {
	scr := newSimScreen(t, 40, 5)
	state := documentState("x\n")
	now := time.Now()
	state.LastYankTime = now

	r := NewRenderer(scr)
	r.now = func() time.Time { return now.Add(100 * time.Millisecond) }
	r.Render(state)
	if row := rowText(scr, 4, 40); !strings.Contains(row, "path copied") {
		t.Fatalf("expected yank flash, got %q", row)
	}
}

func TestColorThemeForBlendsBars(t *testing.T) {
	p := theme.Default()
	ct := colorThemeFor(p)
	if ct.BarBg == p.Background {
		t.Fatalf("bar background should differ from the text background")
	}
	if ct.GutterFg != p.Comment {
		t.Fatalf("gutter should use the comment color, got %v", ct.GutterFg)
	}
	if got := mix(tcell.ColorDefault, tcell.ColorWhite, 0.5); got != tcell.ColorDefault {
		t.Fatalf("mixing the default color should keep it, got %v", got)
	}
}
