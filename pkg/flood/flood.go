// Package flood draws an image onto a Pixelflut canvas with a pool of
// workers that keep redrawing it.
package flood

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/kamrankamilli/gsflood/pkg/config"
	"github.com/kamrankamilli/gsflood/pkg/geometry"
	"github.com/kamrankamilli/gsflood/pkg/internal/log"
	"github.com/kamrankamilli/gsflood/pkg/partition"
	"github.com/kamrankamilli/gsflood/pkg/picture"
	"github.com/kamrankamilli/gsflood/pkg/pixelflut"
	"github.com/kamrankamilli/gsflood/pkg/pixelflut/types"
)

// ErrNothingToDraw is returned for images without a fully opaque pixel.
var ErrNothingToDraw = errors.New("image has no fully opaque pixels")

// DialOpts derives the client dial options from cfg.
func DialOpts(cfg *config.Config) *pixelflut.DialOpts {
	return &pixelflut.DialOpts{
		Timeout:      cfg.DialTimeout,
		WriteTimeout: cfg.WriteTimeout,
		Proxy:        cfg.Proxy,
	}
}

// Run loads the image, works out where it goes, and floods it onto the
// canvas until ctx is cancelled. Every startup failure is returned before
// the first pixel is sent.
func Run(ctx context.Context, cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	img, err := picture.Load(cfg.ImagePath)
	if err != nil {
		return err
	}
	img = picture.Resize(img, cfg.Width, cfg.Height, cfg.Filter)
	b := img.Bounds()
	imgW, imgH := uint32(b.Dx()), uint32(b.Dy())
	log.Infof("Loaded %s (%dx%d)", cfg.ImagePath, imgW, imgH)

	dialOpts := DialOpts(cfg)
	canvas := cfg.Canvas
	if cfg.Placement.IsAnchor() && canvas.IsZero() {
		if canvas, err = QuerySize(ctx, cfg.Address, dialOpts); err != nil {
			return err
		}
		log.Infof("Canvas of %s is %s", cfg.Address, canvas)
	}
	offX, offY, err := geometry.Resolve(canvas, imgW, imgH, cfg.Placement, cfg.X, cfg.Y)
	if err != nil {
		return err
	}
	if uint64(offX)+uint64(imgW) > math.MaxUint32+1 || uint64(offY)+uint64(imgH) > math.MaxUint32+1 {
		return fmt.Errorf("image at %d,%d exceeds 32-bit coordinates", offX, offY)
	}

	ops := picture.Extract(img)
	if len(ops) == 0 {
		return ErrNothingToDraw
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	slices, err := partition.Split(cfg.Strategy, ops, imgH, cfg.Workers, seed)
	if err != nil {
		return err
	}
	log.Infof("Drawing %d pixels at %d,%d with %d workers (%s, %s connections)",
		len(ops), offX, offY, len(slices), cfg.Strategy, cfg.Policy)
	log.Debugf("Shuffle seed %d", seed)

	pool := NewPool(&PoolOpts{
		Slices:  slices,
		OffsetX: offX,
		OffsetY: offY,
		Dial: func(ctx context.Context) (*pixelflut.Client, error) {
			return pixelflut.Dial(ctx, cfg.Address, dialOpts)
		},
		Worker: WorkerOpts{
			Interval: cfg.Interval,
			Passes:   cfg.Passes,
			Policy:   cfg.Policy,
		},
		StatsInterval: cfg.StatsInterval,
	})
	log.Info("Running, C-c to stop...")
	return pool.Run(ctx)
}

// QuerySize asks the server at addr for its canvas size over a short-lived
// connection.
func QuerySize(ctx context.Context, addr string, opts *pixelflut.DialOpts) (types.CanvasSize, error) {
	c, err := pixelflut.Dial(ctx, addr, opts)
	if err != nil {
		return types.CanvasSize{}, err
	}
	defer c.Close()
	defer context.AfterFunc(ctx, func() { c.Close() })()
	return c.Size()
}

// QueryPixel reads the current colour of one canvas pixel.
func QueryPixel(ctx context.Context, addr string, opts *pixelflut.DialOpts, x, y uint32) (types.Color, error) {
	c, err := pixelflut.Dial(ctx, addr, opts)
	if err != nil {
		return types.Color{}, err
	}
	defer c.Close()
	defer context.AfterFunc(ctx, func() { c.Close() })()
	return c.ReadPixel(x, y)
}
