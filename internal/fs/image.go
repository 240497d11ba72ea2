package fs

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// MaxImageBytes bounds the RGBA size of an image the viewer accepts.
const MaxImageBytes int64 = 128 * 1024 * 1024

// ErrImageTooLarge is returned when width*height*4 exceeds MaxImageBytes.
var ErrImageTooLarge = errors.New("image too large")

var imageExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".gif":  {},
	".bmp":  {},
	".webp": {},
}

// ImageInfo describes an image without its pixels.
type ImageInfo struct {
	Path   string
	Format string
	Width  int
	Height int
	Size   int64
}

// RGBABytes is the memory a fully decoded RGBA copy would need.
func (i ImageInfo) RGBABytes() int64 {
	return int64(i.Width) * int64(i.Height) * 4
}

// IsSupportedImage reports whether path has an image extension the viewer
// understands.
func IsSupportedImage(path string) bool {
	_, ok := imageExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// LoadImageInfo decodes only the image header.
func LoadImageInfo(path string) (*ImageInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	info := &ImageInfo{
		Path:   path,
		Format: format,
		Width:  cfg.Width,
		Height: cfg.Height,
		Size:   stat.Size(),
	}
	if info.RGBABytes() > MaxImageBytes {
		mb := float64(info.RGBABytes()) / (1024 * 1024)
		return info, fmt.Errorf("%dx%d (~%.1f MB RGBA, limit %d MB): %w",
			info.Width, info.Height, mb, MaxImageBytes/(1024*1024), ErrImageTooLarge)
	}
	return info, nil
}
