package geometry

import (
	"errors"
	"testing"

	"github.com/kamrankamilli/gsflood/pkg/pixelflut/types"
)

var resolveTests = []struct {
	canvas     types.CanvasSize
	w, h       uint32
	p          Placement
	offX, offY uint32
}{
	{types.CanvasSize{Width: 1000, Height: 1000}, 100, 100, BottomRight, 900, 900},
	{types.CanvasSize{Width: 1000, Height: 1000}, 100, 100, TopLeft, 0, 0},
	{types.CanvasSize{Width: 1000, Height: 1000}, 100, 100, Middle, 450, 450},
	{types.CanvasSize{Width: 1280, Height: 720}, 101, 51, Middle, 589, 334},
	{types.CanvasSize{Width: 1280, Height: 720}, 101, 51, TopMiddle, 589, 0},
	{types.CanvasSize{Width: 1280, Height: 720}, 101, 51, TopRight, 1179, 0},
	{types.CanvasSize{Width: 1280, Height: 720}, 101, 51, MiddleLeft, 0, 334},
	{types.CanvasSize{Width: 1280, Height: 720}, 101, 51, MiddleRight, 1179, 334},
	{types.CanvasSize{Width: 1280, Height: 720}, 101, 51, BottomLeft, 0, 669},
	{types.CanvasSize{Width: 1280, Height: 720}, 101, 51, BottomMiddle, 589, 669},
	{types.CanvasSize{Width: 64, Height: 48}, 64, 48, BottomRight, 0, 0},
}

func TestResolve(t *testing.T) {
	for _, tt := range resolveTests {
		x, y, err := Resolve(tt.canvas, tt.w, tt.h, tt.p, 7, 7)
		if err != nil {
			t.Errorf("Resolve(%v, %d, %d, %v) failed: %v", tt.canvas, tt.w, tt.h, tt.p, err)
			continue
		}
		if x != tt.offX || y != tt.offY {
			t.Errorf("Resolve(%v, %d, %d, %v) = (%d, %d); want (%d, %d)",
				tt.canvas, tt.w, tt.h, tt.p, x, y, tt.offX, tt.offY)
		}
	}
}

func TestResolveStaysInsideCanvas(t *testing.T) {
	sizes := []uint32{1, 2, 3, 7, 64, 99, 100, 1001}
	for _, cw := range sizes {
		for _, ch := range sizes {
			canvas := types.CanvasSize{Width: cw, Height: ch}
			for _, iw := range sizes {
				for _, ih := range sizes {
					if iw > cw || ih > ch {
						continue
					}
					for _, p := range Anchors {
						x, y, err := Resolve(canvas, iw, ih, p, 0, 0)
						if err != nil {
							t.Fatalf("Resolve(%v, %d, %d, %v): %v", canvas, iw, ih, p, err)
						}
						if x+iw > cw || y+ih > ch {
							t.Fatalf("Resolve(%v, %d, %d, %v) = (%d, %d) leaves the canvas", canvas, iw, ih, p, x, y)
						}
					}
					x, y, _ := Resolve(canvas, iw, ih, Middle, 0, 0)
					if x != (cw-iw)/2 || y != (ch-ih)/2 {
						t.Fatalf("middle of %v for %dx%d = (%d, %d)", canvas, iw, ih, x, y)
					}
				}
			}
		}
	}
}

func TestResolveImageTooLarge(t *testing.T) {
	canvas := types.CanvasSize{Width: 100, Height: 100}
	for _, dims := range [][2]uint32{{101, 10}, {10, 101}, {200, 200}} {
		for _, p := range Anchors {
			_, _, err := Resolve(canvas, dims[0], dims[1], p, 0, 0)
			var gerr *GeometryError
			if !errors.As(err, &gerr) {
				t.Fatalf("Resolve(%v, %v, %v) error = %v; want *GeometryError", canvas, dims, p, err)
			}
			if gerr.Placement != p {
				t.Errorf("GeometryError placement = %v; want %v", gerr.Placement, p)
			}
		}
	}
}

func TestResolveAbsolute(t *testing.T) {
	// no canvas, no bound checks
	x, y, err := Resolve(types.CanvasSize{}, 500, 500, Absolute, 4000, 12)
	if err != nil || x != 4000 || y != 12 {
		t.Errorf("Resolve(absolute) = (%d, %d, %v); want (4000, 12, nil)", x, y, err)
	}
}

func TestParsePlacement(t *testing.T) {
	tests := []struct {
		in   string
		want Placement
	}{
		{"top-left", TopLeft},
		{"bottom-right", BottomRight},
		{"BottomRight", BottomRight},
		{"bottom_middle", BottomMiddle},
		{"TOP-RIGHT", TopRight},
		{"center", Middle},
		{"middle", Middle},
		{"center-left", MiddleLeft},
		{"absolute", Absolute},
	}
	for _, tt := range tests {
		got, err := ParsePlacement(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParsePlacement(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
	if _, err := ParsePlacement("upside-down"); err == nil {
		t.Error("ParsePlacement(\"upside-down\") succeeded")
	}
	for p := range placementNames {
		got, err := ParsePlacement(p.String())
		if err != nil || got != p {
			t.Errorf("ParsePlacement(%q) = %v, %v; want %v", p.String(), got, err, p)
		}
	}
}
