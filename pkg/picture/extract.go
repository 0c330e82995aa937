package picture

import (
	"image"
	"image/color"

	"github.com/kamrankamilli/gsflood/pkg/pixelflut/types"
)

// Extract walks img in row-major order and returns one DrawOp per fully
// opaque pixel. Pixels with any other alpha are dropped, never blended.
func Extract(img image.Image) []types.DrawOp {
	b := img.Bounds()
	ops := make([]types.DrawOp, 0, b.Dx()*b.Dy())

	if src, ok := img.(*image.NRGBA); ok {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			row := src.Pix[src.PixOffset(b.Min.X, y):]
			for x := 0; x < b.Dx(); x++ {
				px := row[x*4 : x*4+4 : x*4+4]
				if px[3] != 0xff {
					continue
				}
				ops = append(ops, types.DrawOp{
					DX:    uint32(x),
					DY:    uint32(y - b.Min.Y),
					Color: types.Color{R: px[0], G: px[1], B: px[2]},
				})
			}
		}
		return ops
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c.A != 0xff {
				continue
			}
			ops = append(ops, types.DrawOp{
				DX:    uint32(x - b.Min.X),
				DY:    uint32(y - b.Min.Y),
				Color: types.Color{R: c.R, G: c.G, B: c.B},
			})
		}
	}
	return ops
}
