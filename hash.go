// Buffer fingerprints.
//
// Process logs the fingerprint of the buffer it consumed and snapshots store
// it, so a failure report can be matched to the stream that produced it.
package flight

import (
	"encoding/binary"
	"encoding/hex"
	"hash/fnv"
	"io"

	"github.com/zeebo/xxh3"
	"golang.org/x/crypto/blake2b"
)

// Fingerprint algorithms, selected by Config.HashAlgorithm.
const (
	AlgXXHash3 = iota + 1
	AlgFNV1a
	AlgBlake2b
)

// Fingerprint returns the digest of the current buffer using the configured
// algorithm.
func (p *Processor) Fingerprint() string {
	return fingerprint(p.buf.String(), p.config.HashAlgorithm)
}

// fingerprint digests buf to 16 hex characters. An unknown algorithm gives
// "", which never matches a stored fingerprint.
func fingerprint(buf string, alg int) string {
	var sum []byte
	switch alg {
	case AlgXXHash3:
		sum = binary.BigEndian.AppendUint64(nil, xxh3.HashString(buf))
	case AlgFNV1a:
		h := fnv.New64a()
		io.WriteString(h, buf)
		sum = h.Sum(nil)
	case AlgBlake2b:
		h, _ := blake2b.New(8, nil)
		io.WriteString(h, buf)
		sum = h.Sum(nil)
	default:
		return ""
	}
	return hex.EncodeToString(sum)
}
