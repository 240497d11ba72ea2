package fs

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

// Encoding identifies how a text file was stored on disk.
type Encoding int

const (
	EncodingUTF8 Encoding = iota
	EncodingUTF8BOM
	EncodingUTF16LE
	EncodingUTF16BE
)

func (e Encoding) String() string {
	switch e {
	case EncodingUTF8BOM:
		return "UTF-8 BOM"
	case EncodingUTF16LE:
		return "UTF-16LE"
	case EncodingUTF16BE:
		return "UTF-16BE"
	default:
		return "UTF-8"
	}
}

// sniffSampleSize is how much of a file is read to tell text from binary.
const sniffSampleSize = 4096

// maxControlPercent is the share of control bytes above which a sample that
// is not valid UTF-8 counts as binary.
const maxControlPercent = 30

// binaryExtensions are never opened as text, along with supported images.
var binaryExtensions = extensionSet(`
	7z a apk avi bin bz2 class dat db dll doc docx dylib exe flac gz ico iso
	jar mkv mov mp3 mp4 o obj ogg otf pdf ppt pptx psd pyc so sqlite tar tgz
	ttf wav wasm woff woff2 xls xlsx xz zip
`)

func extensionSet(list string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, ext := range strings.Fields(list) {
		set["."+ext] = struct{}{}
	}
	return set
}

// IsTextFile reports whether content, the head of the file at path, looks
// like text. Known binary extensions are rejected without looking at content.
// A byte order mark decides on its own; otherwise NUL bytes mean binary, valid
// UTF-8 means text, and anything else is text while control bytes stay rare.
func IsTextFile(path string, content []byte) bool {
	if hasBinaryExtension(path) {
		return false
	}
	sample := content
	if len(sample) > sniffSampleSize {
		sample = sample[:sniffSampleSize]
	}
	if DetectEncoding(sample) != EncodingUTF8 {
		return true
	}
	if bytes.IndexByte(sample, 0) >= 0 {
		return false
	}
	if utf8.Valid(trimPartialRune(sample)) {
		return true
	}

	controls := 0
	for _, b := range sample {
		if isControlByte(b) {
			controls++
		}
	}
	return controls*100 < maxControlPercent*len(sample)
}

// trimPartialRune drops a multi-byte sequence cut off by the end of a sample.
func trimPartialRune(sample []byte) []byte {
	for i := 1; i < utf8.UTFMax && i <= len(sample); i++ {
		b := sample[len(sample)-i]
		if b < utf8.RuneSelf {
			return sample
		}
		if utf8.RuneStart(b) {
			if !utf8.FullRune(sample[len(sample)-i:]) {
				return sample[:len(sample)-i]
			}
			return sample
		}
	}
	return sample
}

// isControlByte reports C0 controls other than tab, newline, carriage return
// and escape (ANSI-colored logs are text), plus DEL.
func isControlByte(b byte) bool {
	switch b {
	case '\t', '\n', '\r', 0x1B:
		return false
	}
	return b < 0x20 || b == 0x7F
}

// readHead returns up to limit bytes from the start of path.
func readHead(path string, limit int) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	buf := make([]byte, limit)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, err
	}
	return buf[:n], nil
}

func hasBinaryExtension(path string) bool {
	if path == "" {
		return false
	}
	_, ok := binaryExtensions[strings.ToLower(filepath.Ext(path))]
	return ok || IsSupportedImage(path)
}

// DetectEncoding inspects the byte order mark at the start of sample.
func DetectEncoding(sample []byte) Encoding {
	if len(sample) >= 3 && sample[0] == 0xEF && sample[1] == 0xBB && sample[2] == 0xBF {
		return EncodingUTF8BOM
	}
	if len(sample) >= 2 {
		switch {
		case sample[0] == 0xFF && sample[1] == 0xFE:
			return EncodingUTF16LE
		case sample[0] == 0xFE && sample[1] == 0xFF:
			return EncodingUTF16BE
		}
	}
	return EncodingUTF8
}

// normalize converts BOM-marked and UTF-16 content to a UTF-8 string.
func normalize(content []byte) (string, Encoding) {
	enc := DetectEncoding(content)
	switch enc {
	case EncodingUTF8BOM:
		return string(content[3:]), enc
	case EncodingUTF16LE:
		return decodeUTF16(content, unicode.LittleEndian), enc
	case EncodingUTF16BE:
		return decodeUTF16(content, unicode.BigEndian), enc
	default:
		return string(content), enc
	}
}

func decodeUTF16(content []byte, endian unicode.Endianness) string {
	decoder := unicode.UTF16(endian, unicode.ExpectBOM).NewDecoder()
	out, err := decoder.Bytes(content)
	if err != nil {
		return string(content)
	}
	return string(out)
}
