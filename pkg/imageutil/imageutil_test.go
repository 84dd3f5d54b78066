package imageutil

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 90, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestSaveWritesOriginalAndThumbnail(t *testing.T) {
	root := t.TempDir()
	stored, err := Save(root, "items", "abc", pngBytes(t, 400, 300), DefaultMaxBytes)
	require.NoError(t, err)

	assert.Equal(t, "image/png", stored.MimeType)
	assert.Equal(t, "items/abc.png", stored.Path)
	assert.Equal(t, "items/thumbnails/abc.jpg", stored.ThumbnailPath)

	_, err = os.Stat(filepath.Join(root, stored.Path))
	require.NoError(t, err)

	thumb, err := imaging.Open(filepath.Join(root, stored.ThumbnailPath))
	require.NoError(t, err)
	assert.Equal(t, 200, thumb.Bounds().Dx())
	assert.Equal(t, 200, thumb.Bounds().Dy())
}

func TestValidateRejectsOversizeAndUnknownTypes(t *testing.T) {
	data := pngBytes(t, 20, 20)

	_, err := Validate(data, int64(len(data)-1))
	assert.ErrorIs(t, err, ErrTooLarge)

	_, err = Validate([]byte("plain text, not an image"), DefaultMaxBytes)
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, err = Validate(nil, DefaultMaxBytes)
	assert.ErrorIs(t, err, ErrEmpty)

	mimeType, err := Validate(data, 0)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mimeType)
}
