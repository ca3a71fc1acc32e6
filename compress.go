// Snapshot payload codec.
//
// A captured buffer is Zstd-compressed and then Ascii85-encoded, giving a
// printable, newline-free string that sits inside a JSON string value
// without escaping. Row streams are highly repetitive (repeated keys, class
// names, URLs), so they compress well.
package flight

import (
	"bytes"
	"encoding/ascii85"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// Both are safe for concurrent use and expensive to construct.
var (
	zstdEncoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	zstdDecoder, _ = zstd.NewReader(nil)
)

// pack compresses and encodes data. Empty input yields an empty string.
func pack(data string) string {
	if data == "" {
		return ""
	}
	var out bytes.Buffer
	enc := ascii85.NewEncoder(&out)
	_, _ = enc.Write(zstdEncoder.EncodeAll([]byte(data), nil))
	_ = enc.Close()
	return out.String()
}

// unpack reverses pack.
func unpack(encoded string) (string, error) {
	if encoded == "" {
		return "", nil
	}
	compressed, err := io.ReadAll(ascii85.NewDecoder(bytes.NewReader([]byte(encoded))))
	if err != nil {
		return "", fmt.Errorf("%w: ascii85: %w", ErrDecompress, err)
	}
	out, err := zstdDecoder.DecodeAll(compressed, nil)
	if err != nil {
		return "", fmt.Errorf("%w: zstd: %w", ErrDecompress, err)
	}
	return string(out), nil
}
