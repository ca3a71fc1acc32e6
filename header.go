// Row header parsing.
//
// Every row starts with "<hex index>:". A length-prefixed row continues
// with "T<hex byte length>," and its payload follows the comma; any other
// row's value is the rest of the line.
package flight

import (
	"strconv"
	"strings"
)

// textMarker flags a length-prefixed row when it immediately follows ':'.
const textMarker = 'T'

// Header is a parsed row header plus the part of the line after it.
type Header struct {
	Index    int    // Table slot
	Prefixed bool   // Length-prefixed ("T") row
	Length   int    // Declared UTF-8 byte length; only set when Prefixed
	Payload  string // Remainder of the line after the header
}

// ParseHeader splits a line into its row header and payload.
func ParseHeader(line string) (Header, error) {
	colon := strings.IndexByte(line, ':')
	if colon == -1 {
		return Header{}, &LineError{Line: line, Err: ErrMalformedHeader}
	}
	index, ok := parseHex(line[:colon])
	if !ok {
		return Header{}, &LineError{Line: line, Err: ErrMalformedHeader}
	}

	rest := line[colon+1:]
	if len(rest) == 0 || rest[0] != textMarker {
		return Header{Index: index, Payload: rest}, nil
	}

	comma := strings.IndexByte(rest, ',')
	if comma == -1 {
		return Header{}, &LineError{Line: line, Err: ErrMalformedLength}
	}
	length, ok := parseHex(rest[1:comma])
	if !ok {
		return Header{}, &LineError{Line: line, Err: ErrMalformedLength}
	}
	return Header{Index: index, Prefixed: true, Length: length, Payload: rest[comma+1:]}, nil
}

// parseHex parses a non-empty, unsigned hexadecimal number that fits an int.
func parseHex(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseUint(s, 16, strconv.IntSize-1)
	if err != nil {
		return 0, false
	}
	return int(n), true
}

// formatHex renders an index the way the stream does: lowercase, no prefix.
func formatHex(index int) string {
	return strconv.FormatInt(int64(index), 16)
}

func isHexDigit(b byte) bool {
	return '0' <= b && b <= '9' || 'a' <= b && b <= 'f' || 'A' <= b && b <= 'F'
}

func isHexRune(r rune) bool {
	return r < 0x80 && isHexDigit(byte(r))
}
