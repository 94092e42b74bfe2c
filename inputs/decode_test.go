package inputs

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	path := filepath.Join(t.TempDir(), "sky.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	got, err := DecodeImage(path)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Bounds().Dx())
	assert.Equal(t, 2, got.Bounds().Dy())
}

func TestDecodeImageMissing(t *testing.T) {
	_, err := DecodeImage(filepath.Join(t.TempDir(), "nope.jpg"))
	assert.ErrorIs(t, err, ErrAssetLoad)
}

func TestDecodeImageGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sky.jpg")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o644))

	_, err := DecodeImage(path)
	assert.ErrorIs(t, err, ErrAssetLoad)
}

func TestVflip(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1, 3))
	src.Pix[0] = 1 // top row
	src.Pix[8] = 3 // bottom row

	out := vflip(src)
	assert.Equal(t, uint8(3), out.Pix[0])
	assert.Equal(t, uint8(1), out.Pix[8])
}

func TestToRGBARebasesBounds(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 10, 14, 12))
	out := toRGBA(src)
	assert.Equal(t, image.Rect(0, 0, 4, 2), out.Bounds())
}

func TestGradientSky(t *testing.T) {
	top, _ := colorful.Hex("#000000")
	bottom, _ := colorful.Hex("#ffffff")
	img := GradientSky(2, 3, top, bottom)

	assert.Equal(t, color.RGBA{0, 0, 0, 255}, img.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, img.RGBAAt(1, 2))
	mid := img.RGBAAt(0, 1)
	assert.Greater(t, mid.R, uint8(0))
	assert.Less(t, mid.R, uint8(255))
}

func TestParseFilter(t *testing.T) {
	for in, want := range map[string]Filter{
		"":        FilterLinear,
		"linear":  FilterLinear,
		"nearest": FilterNearest,
		"mipmap":  FilterMipmap,
	} {
		got, err := ParseFilter(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFilter("trilinear")
	assert.ErrorContains(t, err, "trilinear")
}
