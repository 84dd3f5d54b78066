// Package imageutil validates uploaded item images and stores them with a
// JPEG thumbnail next to the original.
package imageutil

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

const (
	DefaultMaxBytes int64 = 5 * 1024 * 1024
	thumbnailSize         = 200
)

var (
	ErrUnsupportedType = errors.New("unsupported image type")
	ErrTooLarge        = errors.New("image exceeds size limit")
	ErrEmpty           = errors.New("image is empty")
)

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Stored paths are relative to the upload root.
type Stored struct {
	Path          string
	ThumbnailPath string
	MimeType      string
}

// Validate sniffs the content type and enforces the size cap.
func Validate(data []byte, maxBytes int64) (string, error) {
	if len(data) == 0 {
		return "", ErrEmpty
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if int64(len(data)) > maxBytes {
		return "", fmt.Errorf("%w: %d bytes, limit %d", ErrTooLarge, len(data), maxBytes)
	}
	mimeType := http.DetectContentType(data)
	if _, ok := extensions[mimeType]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, mimeType)
	}
	return mimeType, nil
}

// Save writes data as root/subdir/name.<ext> plus a thumbnail under
// root/subdir/thumbnails.
func Save(root, subdir, name string, data []byte, maxBytes int64) (Stored, error) {
	mimeType, err := Validate(data, maxBytes)
	if err != nil {
		return Stored{}, err
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return Stored{}, fmt.Errorf("%w: %v", ErrUnsupportedType, err)
	}

	rel := filepath.Join(subdir, name+extensions[mimeType])
	thumbRel := filepath.Join(subdir, "thumbnails", name+".jpg")

	if err := os.MkdirAll(filepath.Join(root, subdir, "thumbnails"), 0o755); err != nil {
		return Stored{}, err
	}
	if err := os.WriteFile(filepath.Join(root, rel), data, 0o644); err != nil {
		return Stored{}, err
	}

	thumb := imaging.Thumbnail(img, thumbnailSize, thumbnailSize, imaging.Lanczos)
	if err := imaging.Save(thumb, filepath.Join(root, thumbRel), imaging.JPEGQuality(85)); err != nil {
		return Stored{}, err
	}

	return Stored{
		Path:          filepath.ToSlash(rel),
		ThumbnailPath: filepath.ToSlash(thumbRel),
		MimeType:      mimeType,
	}, nil
}
