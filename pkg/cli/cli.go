package cli

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/kamrankamilli/gsflood/pkg/config"
	"github.com/kamrankamilli/gsflood/pkg/flood"
	"github.com/kamrankamilli/gsflood/pkg/pixelflut/types"
)

// RootCmd is the gsflood command.
var RootCmd = NewRootCmd()

// NewRootCmd builds the command tree with a fresh configuration.
func NewRootCmd() *cobra.Command {
	cfg := config.Default()

	cmd := &cobra.Command{
		Use:   "gsflood ADDRESS IMAGE",
		Short: "Keep an image drawn on a Pixelflut canvas",
		Long: `gsflood loads an image and keeps sending its opaque pixels to a
Pixelflut server over one connection per worker, so the image survives
other clients drawing over it. It runs until interrupted.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Address, cfg.ImagePath = args[0], args[1]
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return flood.Run(ctx, cfg)
		},
	}

	f := cmd.Flags()
	f.Uint32VarP(&cfg.X, "x", "x", 0, "X coordinate the image is drawn at")
	f.Uint32VarP(&cfg.Y, "y", "y", 0, "Y coordinate the image is drawn at")
	f.VarP(&cfg.Placement, "position", "p", "anchor the image instead of using -x/-y (top-left, top-middle, top-right, middle-left, middle, middle-right, bottom-left, bottom-middle, bottom-right)")
	f.Var((*canvasValue)(&cfg.Canvas), "canvas", "assume this canvas size (WxH) instead of asking the server")
	f.UintVarP(&cfg.Width, "width", "W", 0, "resize the image to this width (0 keeps the aspect ratio)")
	f.UintVarP(&cfg.Height, "height", "H", 0, "resize the image to this height (0 keeps the aspect ratio)")
	f.Var(&cfg.Filter, "filter", "resize filter (nearest, bilinear, bicubic, mitchell, lanczos2, lanczos3)")
	f.IntVarP(&cfg.Workers, "tasks", "t", cfg.Workers, "number of concurrent workers, each with its own connection")
	f.Var(&cfg.Strategy, "strategy", "how pixels are split across workers (shuffle, bands)")
	f.Uint64Var(&cfg.Seed, "seed", 0, "shuffle seed (0 picks one at random)")
	f.DurationVar(&cfg.Interval, "interval", 0, "pause after every full pass, e.g. 50ms (0 redraws immediately)")
	f.IntVar(&cfg.Passes, "passes", 0, "stop after this many passes per worker (0 runs until interrupted)")
	f.Var(&cfg.Policy, "policy", "connection policy (persistent, reconnect, retry)")
	f.DurationVar(&cfg.StatsInterval, "stats", 0, "log throughput at this interval (0 disables)")

	pf := cmd.PersistentFlags()
	pf.BoolVar(&config.Debug, "debug", false, "enable debug logging")
	pf.StringVar(&cfg.Proxy, "proxy", "", "dial through this proxy, e.g. socks5://127.0.0.1:1080")
	pf.DurationVar(&cfg.DialTimeout, "dial-timeout", cfg.DialTimeout, "connect timeout (0 waits forever)")
	pf.DurationVar(&cfg.WriteTimeout, "write-timeout", 0, "timeout for each socket write (0 waits forever)")

	cmd.SetGlobalNormalizationFunc(normalizeFlag)
	cmd.AddCommand(newSizeCmd(cfg), newPixelCmd(cfg))
	return cmd
}

// normalizeFlag maps the alternate flag spellings onto their canonical names.
func normalizeFlag(f *pflag.FlagSet, name string) pflag.NormalizedName {
	switch name {
	case "pos":
		name = "position"
	case "workers", "threads":
		name = "tasks"
	}
	return pflag.NormalizedName(name)
}

// canvasValue parses a WxH canvas size.
type canvasValue types.CanvasSize

func (c *canvasValue) String() string {
	if types.CanvasSize(*c).IsZero() {
		return ""
	}
	return types.CanvasSize(*c).String()
}

func (c *canvasValue) Type() string { return "WxH" }

func (c *canvasValue) Set(s string) error {
	w, h, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return fmt.Errorf("canvas size %q: want WxH", s)
	}
	width, err := strconv.ParseUint(w, 10, 32)
	if err != nil {
		return fmt.Errorf("canvas width %q: %w", w, err)
	}
	height, err := strconv.ParseUint(h, 10, 32)
	if err != nil {
		return fmt.Errorf("canvas height %q: %w", h, err)
	}
	if width == 0 || height == 0 {
		return fmt.Errorf("canvas size %q must be non-zero", s)
	}
	*c = canvasValue{Width: uint32(width), Height: uint32(height)}
	return nil
}
