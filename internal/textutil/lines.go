package textutil

import "strings"

// SplitLines splits text into lines on '\n', dropping one trailing '\r' from each
// line. A trailing newline does not produce an empty final line, and empty text
// has no lines.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := make([]string, 0, strings.Count(text, "\n")+1)
	EachLine(text, func(_ int, line string) bool {
		lines = append(lines, line)
		return true
	})
	return lines
}

// EachLine calls fn for every line of text in order, using the same rules as
// SplitLines, until fn returns false.
func EachLine(text string, fn func(idx int, line string) bool) {
	idx := 0
	for len(text) > 0 {
		var line string
		if nl := strings.IndexByte(text, '\n'); nl >= 0 {
			line, text = text[:nl], text[nl+1:]
		} else {
			line, text = text, ""
		}
		line = strings.TrimSuffix(line, "\r")
		if !fn(idx, line) {
			return
		}
		idx++
	}
}

// CountLines reports how many lines SplitLines would return.
func CountLines(text string) int {
	if text == "" {
		return 0
	}
	n := strings.Count(text, "\n")
	if !strings.HasSuffix(text, "\n") {
		n++
	}
	return n
}
