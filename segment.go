// Row reassembly.
//
// The buffer is split on '\n' and each physical line is fed through a two
// state machine. Awaiting a header, a line starts a row. A plain row is
// complete on its own line; a length-prefixed row compares the UTF-8 byte
// length of its payload against the declared length:
//
//   - equal: the row is complete.
//   - longer: the first Length bytes are the row and the rest of the line is
//     the start of another row (two rows were written back to back). When
//     the row had spilled over several lines, the next header may sit a few
//     bytes in, behind leftovers of the previous row; see remainder.
//   - shorter: the payload continues on the next line, and the machine
//     accumulates lines, re-inserting the '\n' that separated them, until the
//     declared length is reached or passed.
//
// Lengths are byte counts, so all accounting is done on the raw bytes and a
// split is decoded back to text only once its boundaries are fixed.
package flight

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// segment is a length-prefixed row that has not reached its declared length.
type segment struct {
	index     int
	length    int
	payload   []byte
	continued bool // payload spans more than one line
}

type reassembler struct {
	rows    map[int]string
	window  int
	log     *zap.Logger
	lines   int
	pending *segment
}

func (r *reassembler) run(buf string) error {
	for line := range strings.SplitSeq(buf, "\n") {
		r.lines++
		if err := r.feed(line); err != nil {
			return err
		}
	}
	if seg := r.pending; seg != nil {
		return fmt.Errorf("%w: row %s has %d of %d bytes",
			ErrTruncated, formatHex(seg.index), len(seg.payload), seg.length)
	}
	return nil
}

// feed consumes one physical line. Empty lines only matter inside a
// length-prefixed row, where they stand for a newline in the payload.
func (r *reassembler) feed(line string) error {
	if seg := r.pending; seg != nil {
		seg.payload = append(seg.payload, '\n')
		seg.payload = append(seg.payload, line...)
		seg.continued = true
		return r.settle(seg)
	}
	if line == "" {
		return nil
	}
	return r.start(line)
}

// start parses a row header at the beginning of line.
func (r *reassembler) start(line string) error {
	h, err := ParseHeader(line)
	if err != nil {
		return err
	}
	if !h.Prefixed {
		r.rows[h.Index] = h.Payload
		return nil
	}
	return r.settle(&segment{index: h.Index, length: h.Length, payload: []byte(h.Payload)})
}

// settle stores seg if it has reached its declared length, keeps it pending
// if it has not, and splits off the overflow if it has passed it.
func (r *reassembler) settle(seg *segment) error {
	n := len(seg.payload)
	switch {
	case n < seg.length:
		r.pending = seg
		return nil
	case n == seg.length:
		r.rows[seg.index] = decodeText(seg.payload)
		r.pending = nil
		return nil
	}

	r.rows[seg.index] = decodeText(seg.payload[:seg.length])
	r.pending = nil

	rest := decodeText(seg.payload[seg.length:])
	r.log.Debug("Splitting length-prefixed row",
		zap.String("index", formatHex(seg.index)),
		zap.Int("length", seg.length),
		zap.Int("overflow", n-seg.length))
	if strings.TrimSpace(rest) == "" {
		r.log.Debug("Ignoring whitespace after length-prefixed row",
			zap.String("index", formatHex(seg.index)),
			zap.String("rest", rest))
		return nil
	}
	if !seg.continued {
		return r.start(rest)
	}
	return r.remainder(rest)
}

// remainder feeds the bytes that followed a multi-line length-prefixed row
// back in as a new line. The next header is expected at the start, but if
// the first ':' falls inside the header window the header is taken to begin
// at the run of hex digits right before it and anything ahead of that run
// is discarded.
func (r *reassembler) remainder(rest string) error {
	colon := strings.IndexByte(rest, ':')
	if colon > 0 && strings.TrimLeftFunc(rest[:colon], isHexRune) == "" {
		return r.start(rest)
	}
	if colon == -1 || colon >= r.window {
		return &LineError{Line: rest, Err: ErrMalformedHeader}
	}
	start := colon
	for start > 0 && isHexDigit(rest[start-1]) {
		start--
	}
	if start == colon {
		return &LineError{Line: rest, Err: ErrMalformedHeader}
	}
	if start > 0 {
		r.log.Warn("Dropping stray bytes before embedded row header",
			zap.String("stray", rest[:start]),
			zap.String("header", rest[start:colon]))
	}
	return r.start(rest[start:])
}
