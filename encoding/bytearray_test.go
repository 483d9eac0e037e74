package encoding

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestWriteByteArray(t *testing.T) {
	var buf bytes.Buffer
	err := WriteByteArray(&buf, "image_data", []byte{0x4D, 0x40}, 10, 1)
	if err != nil {
		t.Fatal(err)
	}

	expected := "# Image: 10x1, Format: MONO_HLSB, Bytes: 2\n" +
		"image_data = bytearray([\n" +
		"    0x4D, 0x40\n" +
		"])\n"
	if buf.String() != expected {
		t.Errorf("got:\n%s\nexpected:\n%s", buf.String(), expected)
	}
}

func TestWriteByteArrayWrapsLines(t *testing.T) {
	data := make([]byte, 40)
	var buf bytes.Buffer
	if err := WriteByteArray(&buf, "icon", data, 40, 8); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	// header, declaration, 3 data lines of at most 16 bytes, closer
	if len(lines) != 6 {
		t.Fatalf("got %v lines, expected 6:\n%s", len(lines), buf.String())
	}
	for _, line := range lines[2:5] {
		if n := strings.Count(line, "0x"); n > 16 {
			t.Errorf("line has %v bytes, expected at most 16: %q", n, line)
		}
	}
}

func TestWriteParseRoundTrip(t *testing.T) {
	data := make([]byte, 300)
	for i := range data {
		data[i] = byte(i)
	}

	var buf bytes.Buffer
	if err := WriteByteArray(&buf, "image_data", data, 60, 5); err != nil {
		t.Fatal(err)
	}

	out, err := ParseByteArray(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, out) {
		t.Error("parse did not reproduce written bytes")
	}
}

func TestParseByteArray(t *testing.T) {
	cases := map[string][]byte{
		"data = bytearray([0x4D, 0x40])":           {0x4D, 0x40},
		"data = bytearray([77, 64])":               {77, 64},
		"data = bytearray([ 1 ,\n 2 , 3 ])":        {1, 2, 3},
		"data = bytearray([1, 2, 3,])":             {1, 2, 3},
		"data = bytearray([])":                     {},
		"\uFEFFdata = bytearray([0xFF])":           {0xFF},
		"# comment\ndata = bytearray([0])\n# tail": {0},
	}
	for input, expected := range cases {
		out, err := ParseByteArray(strings.NewReader(input))
		if err != nil {
			t.Errorf("%q: %v", input, err)
			continue
		}
		if !bytes.Equal(out, expected) {
			t.Errorf("%q: got %v, expected %v", input, out, expected)
		}
	}
}

func TestParseByteArrayErrors(t *testing.T) {
	cases := []string{
		"",
		"data = [0x4D, 0x40]",
		"data = bytearray([0x4D, 0x40",
		"data = bytearray([0x4D, banana])",
		"data = bytearray([256])",
		"data = bytearray([0x1FF])",
		"data = bytearray([-1])",
		"data = bytearray([1.5])",
	}
	for _, input := range cases {
		if _, err := ParseByteArray(strings.NewReader(input)); !errors.Is(err, ErrParse) {
			t.Errorf("%q: got %v, expected ErrParse", input, err)
		}
	}
}
