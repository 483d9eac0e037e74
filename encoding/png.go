package encoding

import (
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/oledtools/monopack/codec"
)

// two-color palette so the png encoder writes a 1-bit image
var monoPalette = color.Palette{color.Black, color.White}

// ReadPNG decodes a PNG file into a grid of 8-bit luminance samples.
// Alpha is composited onto a white background before the luminance is
// taken, so fully transparent pixels read as white and only opaque pure
// black produces a 0 sample.
func ReadPNG(path string) ([][]uint8, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	grid := make([][]uint8, height)
	for y := 0; y < height; y++ {
		row := make([]uint8, width)
		for x := 0; x < width; x++ {
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()

			// RGBA is alpha-premultiplied, so compositing onto white
			// is luminance + (65535 - alpha)
			luminance := (299*r + 587*g + 114*b) / 1000
			luminance += 0xffff - a
			if luminance > 0xffff {
				luminance = 0xffff
			}
			row[x] = uint8(luminance >> 8)
		}
		grid[y] = row
	}

	return grid, nil
}

// WritePNG encodes a grid of black/white samples to a 1-bit PNG file.
func WritePNG(path string, grid [][]uint8) error {
	if len(grid) == 0 || len(grid[0]) == 0 {
		return os.ErrInvalid
	}
	width := len(grid[0])
	height := len(grid)

	img := image.NewPaletted(image.Rect(0, 0, width, height), monoPalette)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if grid[y][x] != codec.Black {
				img.SetColorIndex(x, y, 1)
			}
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return png.Encode(f, img)
}
