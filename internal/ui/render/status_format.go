package render

import (
	"fmt"
	"strings"

	statepkg "github.com/kk-code-lab/rview/internal/state"
)

func formatMatchCount(n int) string {
	if n == 1 {
		return "1 match"
	}
	return fmt.Sprintf("%d matches", n)
}

// formatSearchStatus reports the match count and the position of the
// current match, or nothing when no query is set.
func formatSearchStatus(state *statepkg.AppState) string {
	if state.SearchQuery == "" || state.Document == nil {
		return ""
	}
	if !state.Document.HighlightAllowed() {
		return "search off (large file)"
	}
	if state.SearchCount == 0 {
		return "no matches"
	}
	return fmt.Sprintf("%s · %d/%d", formatMatchCount(state.SearchCount), state.SearchCurrent+1, state.SearchCount)
}

// formatLineRange describes the visible document lines, one-based.
func formatLineRange(first, last, total int) string {
	if total == 0 {
		return "empty"
	}
	if last < first {
		last = first
	}
	return fmt.Sprintf("%s-%s/%s", formatCompactNumber(first+1), formatCompactNumber(last+1), formatCompactNumber(total))
}

func formatCompactNumber(n int) string {
	switch {
	case n >= 1_000_000_000:
		return trimTrailingZero(fmt.Sprintf("%.1f", float64(n)/1_000_000_000.0)) + "B"
	case n >= 1_000_000:
		return trimTrailingZero(fmt.Sprintf("%.1f", float64(n)/1_000_000.0)) + "M"
	case n >= 100_000:
		return trimTrailingZero(fmt.Sprintf("%.1f", float64(n)/1_000.0)) + "k"
	default:
		return fmt.Sprintf("%d", n)
	}
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	value := float64(n)
	suffixes := []string{"KB", "MB", "GB", "TB"}
	i := -1
	for value >= unit && i < len(suffixes)-1 {
		value /= unit
		i++
	}
	return trimTrailingZero(fmt.Sprintf("%.1f", value)) + " " + suffixes[i]
}

func trimTrailingZero(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	return strings.TrimSuffix(strings.TrimSuffix(s, "0"), ".")
}
