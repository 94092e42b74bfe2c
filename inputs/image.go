package inputs

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"
)

// Texture is a static 2D image on the GPU.
type Texture struct {
	textureID uint32
}

// NewTexture uploads img flipped to GL's bottom-up row order, clamped at the edges
// and sampled with filter.
func NewTexture(img image.Image, filter Filter) (*Texture, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: input image is nil", ErrAssetLoad)
	}

	rgba := vflip(toRGBA(img))
	width := int32(rgba.Rect.Size().X)
	height := int32(rgba.Rect.Size().Y)

	var textureID uint32
	gl.GenTextures(1, &textureID)
	gl.BindTexture(gl.TEXTURE_2D, textureID)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	minFilter, magFilter := filter.modes()
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, minFilter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, magFilter)

	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA8,
		width,
		height,
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(rgba.Pix),
	)

	if filter == FilterMipmap {
		gl.GenerateMipmap(gl.TEXTURE_2D)
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)
	zap.S().Debugf("Texture %d: %dx%d, %s filter", textureID, width, height, filter)

	return &Texture{textureID: textureID}, nil
}

func (t *Texture) GetTextureID() uint32 {
	return t.textureID
}

func (t *Texture) Destroy() {
	gl.DeleteTextures(1, &t.textureID)
}
