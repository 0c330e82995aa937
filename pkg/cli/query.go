package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kamrankamilli/gsflood/pkg/config"
	"github.com/kamrankamilli/gsflood/pkg/flood"
)

func newSizeCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "size ADDRESS",
		Short: "Print the canvas size of a Pixelflut server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			size, err := flood.QuerySize(cmd.Context(), args[0], flood.DialOpts(cfg))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d %d\n", size.Width, size.Height)
			return nil
		},
	}
}

func newPixelCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "pixel ADDRESS X Y",
		Short: "Print the current colour of one canvas pixel",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := strconv.ParseUint(args[1], 10, 32)
			if err != nil {
				return fmt.Errorf("x coordinate %q: %w", args[1], err)
			}
			y, err := strconv.ParseUint(args[2], 10, 32)
			if err != nil {
				return fmt.Errorf("y coordinate %q: %w", args[2], err)
			}
			c, err := flood.QueryPixel(cmd.Context(), args[0], flood.DialOpts(cfg), uint32(x), uint32(y))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), c.Hex())
			return nil
		},
	}
}
