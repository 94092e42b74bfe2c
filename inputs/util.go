package inputs

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Filter selects how the sky texture is minified and magnified.
type Filter string

const (
	FilterLinear  Filter = "linear"
	FilterNearest Filter = "nearest"
	FilterMipmap  Filter = "mipmap"
)

// ParseFilter accepts "linear", "nearest" or "mipmap". The empty string is linear.
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(s); f {
	case "":
		return FilterLinear, nil
	case FilterLinear, FilterNearest, FilterMipmap:
		return f, nil
	default:
		return "", fmt.Errorf("unknown texture filter %q (want linear, nearest or mipmap)", s)
	}
}

func (f Filter) modes() (minFilter, magFilter int32) {
	switch f {
	case FilterMipmap:
		return gl.LINEAR_MIPMAP_LINEAR, gl.LINEAR
	case FilterNearest:
		return gl.NEAREST, gl.NEAREST
	default:
		return gl.LINEAR, gl.LINEAR
	}
}
