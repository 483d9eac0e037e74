// Package codec packs monochrome pixel grids into 1 bit-per-pixel byte
// sequences and unpacks them again. The packed layout is horizontal
// MSB-first (MicroPython MONO_HLSB): each row starts a fresh byte, the
// leftmost pixel of a row occupies the high bit of its first byte, and
// unused low-order bits in a row's final byte are zero.
package codec

import (
	"errors"
	"fmt"
)

const bitsPerByte = 8

// Pixel sample values produced by Unpack. Pack treats any sample other
// than Black as a set bit.
const (
	Black uint8 = 0
	White uint8 = 255
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrLengthMismatch = errors.New("length mismatch")
)

// Stride returns the number of bytes each packed row occupies.
func Stride(width int) int {
	return (width + bitsPerByte - 1) / bitsPerByte
}

// Pack converts a rectangular grid of pixel samples into packed bytes.
// A sample equal to Black packs as 0; anything else packs as 1. The
// result is height * Stride(width) bytes, rows in top-to-bottom order.
func Pack(grid [][]uint8) ([]byte, error) {
	if len(grid) == 0 || len(grid[0]) == 0 {
		return nil, fmt.Errorf("%w: grid is empty", ErrInvalidInput)
	}

	width := len(grid[0])
	stride := Stride(width)
	data := make([]byte, len(grid)*stride)

	for y, row := range grid {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %v has %v pixels, expected %v", ErrInvalidInput, y, len(row), width)
		}
		base := y * stride
		for x, sample := range row {
			if sample != Black {
				data[base+x/bitsPerByte] |= 1 << (bitsPerByte - 1 - x%bitsPerByte)
			}
		}
	}

	return data, nil
}

// Unpack reconstructs a width x height grid from packed bytes. Set bits
// become White samples, clear bits Black. The data length must be exactly
// height * Stride(width); padding bits in each row's final byte are
// discarded.
func Unpack(data []byte, width int, height int) ([][]uint8, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: dimensions must be positive, got %vx%v", ErrInvalidInput, width, height)
	}

	stride := Stride(width)
	expected := height * stride
	if len(data) != expected {
		return nil, fmt.Errorf("%w: got %v bytes, expected %v for %vx%v", ErrLengthMismatch, len(data), expected, width, height)
	}

	grid := make([][]uint8, height)
	for y := 0; y < height; y++ {
		row := make([]uint8, width)
		rowBytes := data[y*stride : (y+1)*stride]
		for x := 0; x < width; x++ {
			if rowBytes[x/bitsPerByte]>>(bitsPerByte-1-x%bitsPerByte)&1 == 1 {
				row[x] = White
			}
		}
		grid[y] = row
	}

	return grid, nil
}
