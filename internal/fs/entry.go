package fs

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// Entry represents a single file or directory on disk.
type Entry struct {
	Name      string
	FullPath  string
	IsDir     bool
	IsSymlink bool
	Size      int64
	Modified  time.Time
	Mode      os.FileMode
}

// IsHidden reports whether the entry should be treated as hidden.
func (e Entry) IsHidden() bool {
	return IsHidden(e.FullPath, e.Name)
}

// ReadEntries lists dir sorted by name, case-insensitively. Names are NFC
// normalized. Entries the platform never shows are skipped; symlinks are
// resolved for IsDir.
func ReadEntries(dir string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		fullPath := filepath.Join(dir, de.Name())
		if ShouldHideFromListing(fullPath, de.Name()) {
			continue
		}
		info, err := de.Info()
		if err != nil {
			continue
		}
		entry := Entry{
			Name:      norm.NFC.String(de.Name()),
			FullPath:  fullPath,
			IsDir:     info.IsDir(),
			IsSymlink: info.Mode()&os.ModeSymlink != 0,
			Size:      info.Size(),
			Modified:  info.ModTime(),
			Mode:      info.Mode(),
		}
		if entry.IsSymlink {
			if target, err := os.Stat(fullPath); err == nil {
				entry.IsDir = target.IsDir()
				entry.Size = target.Size()
			}
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return lessName(entries[i].Name, entries[j].Name)
	})
	return entries, nil
}

func lessName(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return la < lb
	}
	return a < b
}
