package pixelflut

import (
	"errors"
	"testing"

	"github.com/kamrankamilli/gsflood/pkg/pixelflut/types"
)

func TestAppendPixel(t *testing.T) {
	tests := []struct {
		x, y uint32
		c    types.Color
		want string
	}{
		{5, 10, types.Color{R: 255, G: 0, B: 128}, "PX 5 10 ff0080\n"},
		{0, 0, types.Color{}, "PX 0 0 000000\n"},
		{4294967295, 1, types.Color{R: 1, G: 2, B: 3}, "PX 4294967295 1 010203\n"},
	}
	for _, tt := range tests {
		if got := string(AppendPixel(nil, tt.x, tt.y, tt.c)); got != tt.want {
			t.Errorf("AppendPixel(%d, %d, %v) = %q; want %q", tt.x, tt.y, tt.c, got, tt.want)
		}
	}
}

func TestPixelRoundTrip(t *testing.T) {
	var buf []byte
	for v := 0; v < 256; v++ {
		c := types.Color{R: uint8(v), G: uint8(255 - v), B: uint8(v * 7)}
		x, y := uint32(v*13), uint32(v*v)
		buf = AppendPixel(buf[:0], x, y, c)
		gx, gy, gc, err := ParsePixel(string(buf))
		if err != nil {
			t.Fatalf("ParsePixel(%q): %v", buf, err)
		}
		if gx != x || gy != y || gc != c {
			t.Fatalf("ParsePixel(%q) = %d %d %v; want %d %d %v", buf, gx, gy, gc, x, y, c)
		}
	}
}

func TestParseSize(t *testing.T) {
	got, err := ParseSize("SIZE 1280 720")
	if err != nil || got != (types.CanvasSize{Width: 1280, Height: 720}) {
		t.Errorf("ParseSize = %v, %v; want 1280x720", got, err)
	}
	for _, line := range []string{
		"SIZE abc",
		"SIZE abc\n",
		"SIZE 10",
		"SIZE 10 x",
		"SIZE -1 10",
		"SIZE 99999999999 1",
		"",
		"HELLO 1 2",
	} {
		_, err := ParseSize(line)
		if !errors.Is(err, ErrMalformed) {
			t.Errorf("ParseSize(%q) error = %v; want ErrMalformed", line, err)
		}
		var perr *ProtocolError
		if !errors.As(err, &perr) || perr.Command != "SIZE" {
			t.Errorf("ParseSize(%q) error = %v; want *ProtocolError for SIZE", line, err)
		}
	}
}

func TestParsePixel(t *testing.T) {
	x, y, c, err := ParsePixel("PX 3 4 AbCdEf80")
	if err != nil || x != 3 || y != 4 || c != (types.Color{R: 0xab, G: 0xcd, B: 0xef}) {
		t.Errorf("ParsePixel(rrggbbaa) = %d %d %v %v", x, y, c, err)
	}
	for _, line := range []string{
		"PX 1 2 fff",
		"PX 1 2 zz0000",
		"PX 1 2 ff0080zz",
		"PX 1 2 ff0080zzzzzz",
		"PX 1 2 ff0080-",
		"PX 1 2 ff00800",
		"PX 1 2",
		"PX a 2 ffffff",
		"PX 1 -2 ffffff",
		"SIZE 1 2 ffffff",
	} {
		if _, _, _, err := ParsePixel(line); !errors.Is(err, ErrMalformed) {
			t.Errorf("ParsePixel(%q) error = %v; want ErrMalformed", line, err)
		}
	}
}
