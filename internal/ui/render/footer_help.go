package render

import (
	"strings"

	statepkg "github.com/kk-code-lab/rview/internal/state"
)

// buildFooterHelpText returns the contextual footer hint string with leading/trailing padding.
func buildFooterHelpText(state *statepkg.AppState) string {
	parts := buildFooterHelpSegments(state)
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, "  ") + " "
}

// buildFooterHelpSegments assembles context-aware help hints for the footer.
func buildFooterHelpSegments(state *statepkg.AppState) []string {
	if state == nil {
		return nil
	}

	switch {
	case state.SearchActive:
		return []string{
			"type: search",
			"↵: done",
			"⇧↵: previous",
			"Esc: clear",
		}
	case state.HelpVisible:
		return []string{"?/Esc: close help"}
	case state.Document != nil && state.SearchQuery != "":
		return []string{"n/N: next/prev", "/: edit", "Esc: clear", "?: help"}
	case state.Document != nil:
		return []string{"/: search", "t: theme", "w: wrap", "?: help", "q: quit"}
	case state.Image != nil:
		return []string{"</>: files", "t: theme", "?: help", "q: quit"}
	default:
		return []string{"1-9: open recent", "?: help", "q: quit"}
	}
}
