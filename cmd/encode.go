package cmd

import (
	"errors"
	"fmt"
	"os"
	"path"

	"github.com/oledtools/monopack/codec"
	"github.com/oledtools/monopack/encoding"
	"github.com/spf13/cobra"
)

var arrayName string

var encodeCmd = &cobra.Command{
	Use:   "encode [IN.png] [OUT.py]",
	Short: "Pack a monochrome PNG into a bytearray literal file",
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) < 2 {
			return errors.New("input and output filenames are required")
		}
		if _, err := os.Stat(args[0]); errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("input file '%s' does not exist", args[0])
		}
		if path.Ext(args[0]) != ".png" {
			return errors.New("input filename must end in '.png'")
		}
		outDir, _ := path.Split(args[1])
		if outDir != "" {
			if _, err := os.Stat(outDir); errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("output directory '%s' does not exist", outDir)
			}
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return encode(args[0], args[1])
	},
	SilenceUsage: true,
}

func init() {
	encodeCmd.Flags().StringVarP(&arrayName, "name", "n", "image_data", "variable name for the bytearray literal")
}

func encode(infilename string, outfilename string) error {
	grid, err := encoding.ReadPNG(infilename)
	if err != nil {
		return err
	}

	data, err := codec.Pack(grid)
	if err != nil {
		return err
	}

	f, err := os.Create(outfilename)
	if err != nil {
		return err
	}
	defer f.Close()

	width := len(grid[0])
	height := len(grid)
	if err := encoding.WriteByteArray(f, arrayName, data, width, height); err != nil {
		return err
	}

	fmt.Printf("Packed %vx%v image into %v bytes: %s\n", width, height, len(data), outfilename)
	return nil
}
