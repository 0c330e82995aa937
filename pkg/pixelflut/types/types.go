// Package types holds the values exchanged between the Pixelflut client,
// the image extraction and the worker pool.
package types

import (
	"fmt"

	"github.com/kamrankamilli/gsflood/pkg/internal/util"
)

// Color is an opaque 8-bit RGB colour.
type Color struct {
	R, G, B uint8
}

// Hex returns the colour as six lowercase hex digits (rrggbb).
func (c Color) Hex() string {
	return string(util.AppendHexColor(make([]byte, 0, 6), c.R, c.G, c.B))
}

func (c Color) String() string { return "#" + c.Hex() }

// ParseColor decodes an rrggbb or rrggbbaa hex string. The alpha pair is
// validated and then ignored.
func ParseColor(s string) (Color, error) {
	if len(s) != 6 && len(s) != 8 {
		return Color{}, fmt.Errorf("colour %q: need 6 or 8 hex digits", s)
	}
	var ch [4]uint8
	for i := 0; i < len(s)/2; i++ {
		b, ok := util.ParseHexByte(s[i*2], s[i*2+1])
		if !ok {
			return Color{}, fmt.Errorf("colour %q: invalid hex digit", s)
		}
		ch[i] = b
	}
	return Color{R: ch[0], G: ch[1], B: ch[2]}, nil
}

// CanvasSize is the addressable surface reported by the server.
type CanvasSize struct {
	Width, Height uint32
}

func (s CanvasSize) String() string { return fmt.Sprintf("%dx%d", s.Width, s.Height) }

// IsZero reports whether no size has been set.
func (s CanvasSize) IsZero() bool { return s.Width == 0 && s.Height == 0 }

// DrawOp is one pixel of the source image, positioned relative to the
// image's own top-left corner.
type DrawOp struct {
	DX, DY uint32
	Color
}

func (op DrawOp) String() string { return fmt.Sprintf("%d,%d %s", op.DX, op.DY, op.Color) }
