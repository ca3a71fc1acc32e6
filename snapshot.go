// Buffer snapshots.
//
// A snapshot captures the raw buffer of a processor as one JSON line, so a
// page that fails to process can be attached to a report or kept as a test
// fixture and replayed later:
//
//	{"_id":"<fingerprint>","_alg":1,"_ts":1700000000000,"_n":1234,"_h":"<packed buffer>"}
//
// Restore checks the byte count and the fingerprint before handing back a
// fresh, unlocked processor.
package flight

import (
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"
)

// Snapshot is the decoded form of a snapshot line.
type Snapshot struct {
	ID        string `json:"_id"`  // Buffer fingerprint (16 hex chars)
	Algorithm int    `json:"_alg"` // Algorithm used for ID
	Timestamp int64  `json:"_ts"`  // Unix milliseconds when captured
	Size      int    `json:"_n"`   // Buffer length in bytes
	Data      string `json:"_h"`   // Packed buffer
}

// Snapshot captures the current buffer. It can be taken before or after
// Process.
func (p *Processor) Snapshot() (string, error) {
	buf := p.buf.String()
	s := Snapshot{
		ID:        fingerprint(buf, p.config.HashAlgorithm),
		Algorithm: p.config.HashAlgorithm,
		Timestamp: time.Now().UnixMilli(),
		Size:      len(buf),
		Data:      pack(buf),
	}
	data, err := json.Marshal(&s)
	if err != nil {
		return "", fmt.Errorf("snapshot: %w", err)
	}
	return string(data), nil
}

// Restore rebuilds an unlocked processor holding the captured buffer.
func Restore(line string, cfg Config) (*Processor, error) {
	var s Snapshot
	if err := json.Unmarshal([]byte(line), &s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}
	buf, err := unpack(s.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}
	if len(buf) != s.Size {
		return nil, fmt.Errorf("%w: size %d, want %d", ErrCorruptSnapshot, len(buf), s.Size)
	}
	if id := fingerprint(buf, s.Algorithm); id == "" || id != s.ID {
		return nil, fmt.Errorf("%w: fingerprint %q, want %q", ErrCorruptSnapshot, id, s.ID)
	}

	p, err := New(cfg)
	if err != nil {
		return nil, err
	}
	p.buf.WriteString(buf)
	p.log.Debug("Snapshot restored",
		zap.String("fingerprint", s.ID),
		zap.Int("bytes", s.Size),
		zap.Time("captured", time.UnixMilli(s.Timestamp)))
	return p, nil
}
