package cmd

import (
	"errors"
	"fmt"
	"os"
	"path"
	"strconv"

	"github.com/oledtools/monopack/codec"
	"github.com/oledtools/monopack/encoding"
	"github.com/spf13/cobra"
)

var decodeCmd = &cobra.Command{
	Use:   "decode [IN.py] [OUT.png] [WIDTH] [HEIGHT]",
	Short: "Reconstruct a PNG from a bytearray literal file",
	Long: `Reconstruct a PNG from a bytearray literal file.

The packed data does not record the image dimensions, so the original
width and height must be supplied.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) < 4 {
			return errors.New("input filename, output filename, width and height are required")
		}
		if _, err := os.Stat(args[0]); errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("input file '%s' does not exist", args[0])
		}
		outDir, _ := path.Split(args[1])
		if outDir != "" {
			if _, err := os.Stat(outDir); errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("output directory '%s' does not exist", outDir)
			}
		}
		if path.Ext(args[1]) != ".png" {
			return errors.New("output filename must end in '.png'")
		}
		for _, arg := range args[2:4] {
			value, err := strconv.Atoi(arg)
			if err != nil {
				return fmt.Errorf("'%s' is not an integer", arg)
			}
			if value <= 0 {
				return errors.New("width and height must be positive")
			}
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		width, _ := strconv.Atoi(args[2])
		height, _ := strconv.Atoi(args[3])
		return decode(args[0], args[1], width, height)
	},
	SilenceUsage: true,
}

func decode(infilename string, outfilename string, width int, height int) error {
	f, err := os.Open(infilename)
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := encoding.ParseByteArray(f)
	if err != nil {
		return err
	}

	grid, err := codec.Unpack(data, width, height)
	if err != nil {
		return err
	}

	if err := encoding.WritePNG(outfilename, grid); err != nil {
		return err
	}

	fmt.Printf("Reconstructed %vx%v image from %v bytes: %s\n", width, height, len(data), outfilename)
	return nil
}
