// Package geometry turns a placement rule into the canvas offset an image is
// drawn at.
package geometry

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/kamrankamilli/gsflood/pkg/pixelflut/types"
)

// Placement selects where the image goes on the canvas.
type Placement int

const (
	// Absolute draws at an explicit (x, y).
	Absolute Placement = iota
	TopLeft
	TopMiddle
	TopRight
	MiddleLeft
	Middle
	MiddleRight
	BottomLeft
	BottomMiddle
	BottomRight
)

// Anchors lists the nine anchor placements in reading order.
var Anchors = []Placement{
	TopLeft, TopMiddle, TopRight,
	MiddleLeft, Middle, MiddleRight,
	BottomLeft, BottomMiddle, BottomRight,
}

var placementNames = map[Placement]string{
	Absolute:     "absolute",
	TopLeft:      "top-left",
	TopMiddle:    "top-middle",
	TopRight:     "top-right",
	MiddleLeft:   "middle-left",
	Middle:       "middle",
	MiddleRight:  "middle-right",
	BottomLeft:   "bottom-left",
	BottomMiddle: "bottom-middle",
	BottomRight:  "bottom-right",
}

var placementAliases = map[string]Placement{
	"center":        Middle,
	"centre":        Middle,
	"top-center":    TopMiddle,
	"bottom-center": BottomMiddle,
	"center-left":   MiddleLeft,
	"center-right":  MiddleRight,
}

// ParsePlacement accepts the kebab-case names printed by String, a few
// "center" aliases, and the underscore or camel-case spellings of both.
func ParsePlacement(s string) (Placement, error) {
	norm := normalize(s)
	for p, name := range placementNames {
		if norm == name {
			return p, nil
		}
	}
	if p, ok := placementAliases[norm]; ok {
		return p, nil
	}
	return Absolute, fmt.Errorf("unknown placement %q", s)
}

func normalize(s string) string {
	var b strings.Builder
	prevLower := false
	for _, r := range strings.TrimSpace(s) {
		switch {
		case r == '_' || r == ' ' || r == '-':
			b.WriteByte('-')
			prevLower = false
		case unicode.IsUpper(r):
			if prevLower {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
			prevLower = false
		default:
			b.WriteRune(r)
			prevLower = unicode.IsLower(r)
		}
	}
	return b.String()
}

// IsAnchor reports whether p depends on the canvas size.
func (p Placement) IsAnchor() bool { return p >= TopLeft && p <= BottomRight }

func (p Placement) String() string {
	if name, ok := placementNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Placement(%d)", int(p))
}

// Set implements pflag.Value.
func (p *Placement) Set(s string) error {
	v, err := ParsePlacement(s)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Type implements pflag.Value.
func (p *Placement) Type() string { return "placement" }

// GeometryError reports an anchor placement that cannot fit the image.
type GeometryError struct {
	Placement Placement
	Canvas    types.CanvasSize
	Width     uint32
	Height    uint32
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("cannot place %dx%d image %s on %s canvas: image larger than canvas",
		e.Width, e.Height, e.Placement, e.Canvas)
}

// Resolve returns the top-left canvas offset for an image of imgW x imgH.
// Absolute placements return (x, y) unchanged; coordinates outside the
// canvas are allowed there.
func Resolve(canvas types.CanvasSize, imgW, imgH uint32, p Placement, x, y uint32) (uint32, uint32, error) {
	if !p.IsAnchor() {
		if p != Absolute {
			return 0, 0, fmt.Errorf("unknown placement %d", int(p))
		}
		return x, y, nil
	}
	if imgW > canvas.Width || imgH > canvas.Height {
		return 0, 0, &GeometryError{Placement: p, Canvas: canvas, Width: imgW, Height: imgH}
	}

	freeX, freeY := canvas.Width-imgW, canvas.Height-imgH
	var offX, offY uint32
	switch p {
	case TopMiddle, Middle, BottomMiddle:
		offX = freeX / 2
	case TopRight, MiddleRight, BottomRight:
		offX = freeX
	}
	switch p {
	case MiddleLeft, Middle, MiddleRight:
		offY = freeY / 2
	case BottomLeft, BottomMiddle, BottomRight:
		offY = freeY
	}
	return offX, offY, nil
}
