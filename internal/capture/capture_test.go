package capture

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func solid(c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestCaptureFileElement(t *testing.T) {
	require := require.New(t)

	dir := t.TempDir()
	var buf bytes.Buffer
	require.NoError(png.Encode(&buf, solid(color.White)))
	require.NoError(os.WriteFile(filepath.Join(dir, "nftImage.png"), buf.Bytes(), 0600))

	blob, err := New(dir, "Dummy.png").Capture("nftImage")
	require.NoError(err)
	require.Equal("Dummy.png", blob.Name)

	img, err := png.Decode(bytes.NewReader(blob.Bytes))
	require.NoError(err)
	require.Equal(4, img.Bounds().Dx())
}

func TestCaptureNotFound(t *testing.T) {
	require := require.New(t)
	c := New(t.TempDir(), "Dummy.png")

	for _, id := range []string{"missing", "", "../etc/passwd", "qr:"} {
		_, err := c.Capture(id)
		require.ErrorIs(err, ErrNotFound, id)
	}
}

func TestCaptureQR(t *testing.T) {
	require := require.New(t)

	blob, err := New(t.TempDir(), "Dummy.png").Capture("qr:SOLG_NFT")
	require.NoError(err)

	img, err := png.Decode(bytes.NewReader(blob.Bytes))
	require.NoError(err)
	require.Equal(qrSize, img.Bounds().Dx())
}

func TestCaptureRegisteredReflectsCurrentState(t *testing.T) {
	require := require.New(t)
	c := New(t.TempDir(), "Dummy.png")

	current := color.Color(color.Black)
	c.Register("canvas", func() (image.Image, error) { return solid(current), nil })

	first, err := c.Capture("canvas")
	require.NoError(err)
	again, err := c.Capture("canvas")
	require.NoError(err)
	require.Equal(first.Bytes, again.Bytes)

	current = color.White
	changed, err := c.Capture("canvas")
	require.NoError(err)
	require.NotEqual(first.Bytes, changed.Bytes)
}

func TestCaptureRendererError(t *testing.T) {
	c := New(t.TempDir(), "Dummy.png")
	boom := errors.New("boom")
	c.Register("broken", func() (image.Image, error) { return nil, boom })

	_, err := c.Capture("broken")
	require.ErrorIs(t, err, boom)
}
