// Package picture loads source images and turns them into draw operations.
package picture

import (
	"bufio"
	"fmt"
	"image"
	_ "image/gif" // register decoders
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"

	"github.com/nfnt/resize"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DecodeError reports an image that could not be opened or decoded.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("load image %s: %v", e.Path, e.Err) }
func (e *DecodeError) Unwrap() error { return e.Err }

// Load opens and decodes the image at path. The format is sniffed from the
// file contents.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	defer f.Close()

	img, _, err := image.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	return img, nil
}

// Filter is the interpolation used when resizing.
type Filter string

const (
	FilterNearest  Filter = "nearest"
	FilterBilinear Filter = "bilinear"
	FilterBicubic  Filter = "bicubic"
	FilterMitchell Filter = "mitchell"
	FilterLanczos2 Filter = "lanczos2"
	FilterLanczos3 Filter = "lanczos3"
)

var interpolations = map[Filter]resize.InterpolationFunction{
	FilterNearest:  resize.NearestNeighbor,
	FilterBilinear: resize.Bilinear,
	FilterBicubic:  resize.Bicubic,
	FilterMitchell: resize.MitchellNetravali,
	FilterLanczos2: resize.Lanczos2,
	FilterLanczos3: resize.Lanczos3,
}

func (f *Filter) String() string { return string(*f) }
func (f *Filter) Type() string   { return "filter" }

func (f *Filter) Set(s string) error {
	v := Filter(strings.ToLower(s))
	if v == "triangle" {
		v = FilterBilinear
	}
	if _, ok := interpolations[v]; !ok {
		return fmt.Errorf("unknown resize filter %q", s)
	}
	*f = v
	return nil
}

// Resize scales img to width x height. A zero dimension is derived from the
// other one keeping the aspect ratio; if both are zero img is returned as is.
func Resize(img image.Image, width, height uint, f Filter) image.Image {
	if width == 0 && height == 0 {
		return img
	}
	interp, ok := interpolations[f]
	if !ok {
		interp = resize.Bilinear
	}
	return resize.Resize(width, height, img, interp)
}
