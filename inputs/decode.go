package inputs

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	colorful "github.com/lucasb-eyer/go-colorful"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// ErrAssetLoad marks a texture that could not be read or decoded. It is fatal at
// startup.
var ErrAssetLoad = errors.New("asset load failure")

// DecodeImage reads and decodes an image file in any registered format.
func DecodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetLoad, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %v", ErrAssetLoad, path, err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: %s (%s) has no pixels", ErrAssetLoad, path, format)
	}
	return img, nil
}

// toRGBA converts any image into a tightly packed RGBA copy.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Stride == rgba.Rect.Dx()*4 && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// vflip vertically flips the provided RGBA image. GL expects the first row of
// texel data to be the bottom of the image.
func vflip(src *image.RGBA) *image.RGBA {
	bounds := src.Bounds()
	flipped := image.NewRGBA(bounds)
	height := bounds.Dy()

	rowSize := bounds.Dx() * 4
	for y := 0; y < height; y++ {
		srcRow := src.Pix[((height-1)-y)*src.Stride:]
		dstRow := flipped.Pix[y*flipped.Stride:]
		copy(dstRow, srcRow[:rowSize])
	}
	return flipped
}

// GradientSky renders a vertical gradient from zenith (top row) to horizon (bottom
// row), blended in Lab space. It stands in for a sky texture when none is given.
func GradientSky(width, height int, zenith, horizon colorful.Color) *image.RGBA {
	width = max(width, 1)
	height = max(height, 1)
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		t := 0.0
		if height > 1 {
			t = float64(y) / float64(height-1)
		}
		r, g, b := zenith.BlendLab(horizon, t).Clamped().RGB255()
		for x := 0; x < width; x++ {
			i := img.PixOffset(x, y)
			img.Pix[i+0] = r
			img.Pix[i+1] = g
			img.Pix[i+2] = b
			img.Pix[i+3] = 0xff
		}
	}
	return img
}

// DefaultSky is the gradient used when no sky texture is configured.
func DefaultSky() *image.RGBA {
	zenith, _ := colorful.Hex("#5a8fc8")
	horizon, _ := colorful.Hex("#dbe9f4")
	return GradientSky(4, 256, zenith, horizon)
}
