package fs

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	textutil "github.com/kk-code-lab/rview/internal/textutil"
)

// MaxTextFileSize is the largest file LoadText will read.
const MaxTextFileSize int64 = 10_000_000

var (
	// ErrFileTooLarge is returned for files above MaxTextFileSize.
	ErrFileTooLarge = errors.New("file too large")
	// ErrNotText is returned when a file sniffs as binary.
	ErrNotText = errors.New("not a text file")
)

// TextFile is a decoded text document.
type TextFile struct {
	Path     string
	Text     string
	Size     int64
	Encoding Encoding
	// Lossy is set when invalid UTF-8 was replaced with U+FFFD.
	Lossy     bool
	LineCount int
}

// LoadText reads path into memory as UTF-8. Byte order marks and UTF-16 are
// decoded; other invalid byte sequences become U+FFFD.
func LoadText(path string) (*TextFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s: %w", path, ErrNotText)
	}
	if info.Size() > MaxTextFileSize {
		return nil, fmt.Errorf("%s (%d bytes, limit %d): %w", path, info.Size(), MaxTextFileSize, ErrFileTooLarge)
	}

	// Sniff the head first so large binaries are rejected without reading them.
	head, err := readHead(path, sniffSampleSize)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if !IsTextFile(path, head) {
		return nil, fmt.Errorf("%s: %w", path, ErrNotText)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return DecodeText(path, content), nil
}

// DecodeText turns raw file content into a TextFile without touching disk.
func DecodeText(path string, content []byte) *TextFile {
	text, enc := normalize(content)
	lossy := false
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, string(utf8.RuneError))
		lossy = true
	} else if enc == EncodingUTF8 && strings.ContainsRune(text, utf8.RuneError) {
		lossy = true
	}

	return &TextFile{
		Path:      path,
		Text:      text,
		Size:      int64(len(content)),
		Encoding:  enc,
		Lossy:     lossy,
		LineCount: textutil.CountLines(text),
	}
}
