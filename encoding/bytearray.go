package encoding

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var ErrParse = errors.New("malformed bytearray declaration")

const (
	startMarker  = "bytearray(["
	endMarker    = "])"
	bytesPerLine = 16
)

// WriteByteArray renders data as a MicroPython-style bytearray literal
// assigned to name, 16 hex bytes per line. The header comment records the
// dimensions for the operator; nothing reads it back, width and height
// must be supplied when decoding.
func WriteByteArray(w io.Writer, name string, data []byte, width int, height int) error {
	if _, err := fmt.Fprintf(w, "# Image: %vx%v, Format: MONO_HLSB, Bytes: %v\n", width, height, len(data)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s = bytearray([\n", name); err != nil {
		return err
	}
	for i, b := range data {
		sep := ", "
		switch {
		case i == len(data)-1:
			sep = "\n"
		case (i+1)%bytesPerLine == 0:
			sep = ",\n"
		}
		indent := ""
		if i%bytesPerLine == 0 {
			indent = "    "
		}
		if _, err := fmt.Fprintf(w, "%s0x%02X%s", indent, b, sep); err != nil {
			return err
		}
	}
	if len(data) == 0 {
		if _, err := fmt.Fprint(w, "\n"); err != nil {
			return err
		}
	}
	_, err := fmt.Fprint(w, "])\n")
	return err
}

// ParseByteArray extracts the first bytearray([...]) declaration from r
// and parses it back into bytes. Entries may be decimal or 0x-prefixed
// hex; anything outside 0-255 is an error. Text around the declaration,
// including a UTF-8 BOM, is ignored.
func ParseByteArray(r io.Reader) ([]byte, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	content := strings.TrimPrefix(string(raw), "\uFEFF")

	start := strings.Index(content, startMarker)
	if start == -1 {
		return nil, fmt.Errorf("%w: missing %q", ErrParse, startMarker)
	}
	content = content[start+len(startMarker):]

	end := strings.Index(content, endMarker)
	if end == -1 {
		return nil, fmt.Errorf("%w: missing closing %q", ErrParse, endMarker)
	}
	content = content[:end]

	if strings.TrimSpace(content) == "" {
		return []byte{}, nil
	}

	entries := strings.Split(content, ",")
	data := make([]byte, 0, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			// trailing comma before the closing bracket
			continue
		}
		value, err := strconv.ParseUint(entry, 0, 8)
		if err != nil {
			return nil, fmt.Errorf("%w: bad entry %q", ErrParse, entry)
		}
		data = append(data, byte(value))
	}

	return data, nil
}
