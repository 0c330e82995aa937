package pixelflut

import (
	"strconv"
	"strings"

	"github.com/kamrankamilli/gsflood/pkg/internal/util"
	"github.com/kamrankamilli/gsflood/pkg/pixelflut/types"
)

const (
	cmdSize  = "SIZE"
	cmdPixel = "PX"
)

// AppendPixel appends the write command "PX x y rrggbb\n" to dst.
func AppendPixel(dst []byte, x, y uint32, c types.Color) []byte {
	dst = append(dst, cmdPixel...)
	dst = append(dst, ' ')
	dst = strconv.AppendUint(dst, uint64(x), 10)
	dst = append(dst, ' ')
	dst = strconv.AppendUint(dst, uint64(y), 10)
	dst = append(dst, ' ')
	dst = util.AppendHexColor(dst, c.R, c.G, c.B)
	return append(dst, '\n')
}

// appendPixelQuery appends the read command "PX x y\n" to dst.
func appendPixelQuery(dst []byte, x, y uint32) []byte {
	dst = append(dst, cmdPixel...)
	dst = append(dst, ' ')
	dst = strconv.AppendUint(dst, uint64(x), 10)
	dst = append(dst, ' ')
	dst = strconv.AppendUint(dst, uint64(y), 10)
	return append(dst, '\n')
}

// ParseSize parses a "SIZE <w> <h>" response line.
func ParseSize(line string) (types.CanvasSize, error) {
	fields := strings.Fields(line)
	if len(fields) < 3 || fields[0] != cmdSize {
		return types.CanvasSize{}, malformed(cmdSize, line, "want SIZE <width> <height>")
	}
	w, err := strconv.ParseUint(fields[1], 10, 32)
	if err != nil {
		return types.CanvasSize{}, malformed(cmdSize, line, "width %q", fields[1])
	}
	h, err := strconv.ParseUint(fields[2], 10, 32)
	if err != nil {
		return types.CanvasSize{}, malformed(cmdSize, line, "height %q", fields[2])
	}
	return types.CanvasSize{Width: uint32(w), Height: uint32(h)}, nil
}

// ParsePixel parses a "PX <x> <y> <rrggbb>" line, as sent by the server in
// reply to a read or by a client as a write. The colour may carry a
// trailing alpha pair, which is dropped.
func ParsePixel(line string) (x, y uint32, c types.Color, err error) {
	fields := strings.Fields(line)
	if len(fields) < 4 || fields[0] != cmdPixel {
		return 0, 0, c, malformed(cmdPixel, line, "want PX <x> <y> <rrggbb>")
	}
	px, err := strconv.ParseUint(fields[1], 10, 32)
	if err != nil {
		return 0, 0, c, malformed(cmdPixel, line, "x %q", fields[1])
	}
	py, err := strconv.ParseUint(fields[2], 10, 32)
	if err != nil {
		return 0, 0, c, malformed(cmdPixel, line, "y %q", fields[2])
	}
	c, err = types.ParseColor(fields[3])
	if err != nil {
		return 0, 0, types.Color{}, malformed(cmdPixel, line, "%v", err)
	}
	return uint32(px), uint32(py), c, nil
}
