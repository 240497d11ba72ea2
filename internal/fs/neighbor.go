package fs

import (
	"path/filepath"

	"golang.org/x/text/unicode/norm"
)

// Filter selects which sibling files Neighbor may return.
type Filter func(Entry) bool

// TextFiles accepts regular files without a binary or image extension.
func TextFiles(e Entry) bool {
	return !e.IsDir && !hasBinaryExtension(e.Name)
}

// ImageFiles accepts supported images.
func ImageFiles(e Entry) bool {
	return !e.IsDir && IsSupportedImage(e.Name)
}

// FilterFor picks TextFiles or ImageFiles depending on the kind of path.
func FilterFor(path string) Filter {
	if IsSupportedImage(path) {
		return ImageFiles
	}
	return TextFiles
}

// Neighbor returns the sibling of path that follows it (forward) or precedes
// it in name order among files accepted by filter, wrapping at either end.
// Hidden files are skipped. ok is false when there is no other candidate.
func Neighbor(path string, forward bool, filter Filter) (string, bool) {
	if filter == nil {
		filter = FilterFor(path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}
	entries, err := ReadEntries(filepath.Dir(abs))
	if err != nil {
		return "", false
	}

	name := norm.NFC.String(filepath.Base(abs))
	candidates := make([]Entry, 0, len(entries))
	current := -1
	for _, e := range entries {
		if e.Name == name {
			current = len(candidates)
			candidates = append(candidates, e)
			continue
		}
		if e.IsHidden() || !filter(e) {
			continue
		}
		candidates = append(candidates, e)
	}

	if current == -1 {
		// The file is gone; treat its name as an insertion point.
		for i, e := range candidates {
			if lessName(name, e.Name) {
				if forward {
					return candidates[i].FullPath, true
				}
				if i == 0 {
					return candidates[len(candidates)-1].FullPath, true
				}
				return candidates[i-1].FullPath, true
			}
		}
		if len(candidates) == 0 {
			return "", false
		}
		if forward {
			return candidates[0].FullPath, true
		}
		return candidates[len(candidates)-1].FullPath, true
	}

	if len(candidates) < 2 {
		return "", false
	}
	step := 1
	if !forward {
		step = -1
	}
	next := (current + step + len(candidates)) % len(candidates)
	return candidates[next].FullPath, true
}
