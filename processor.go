// Processor type and lifecycle.
//
// A Processor moves through two phases. While unlocked it accumulates
// fragments into a single buffer. Process locks it, consumes the buffer
// once and fills the row table; from then on the table is read-only and
// Append fails with ErrLocked.
package flight

import (
	"strings"

	"go.uber.org/zap"
)

// Processor accumulates fragments, reassembles rows and resolves pointers.
// It is not safe for concurrent mutation; after Process returns, concurrent
// reads are safe.
type Processor struct {
	config Config
	log    *zap.Logger
	buf    strings.Builder
	locked bool
	rows   map[int]string
}

// New returns an empty, unlocked processor.
func New(cfg Config) (*Processor, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()
	return &Processor{
		config: cfg,
		log:    cfg.Logger,
		rows:   make(map[int]string),
	}, nil
}

// Append adds a fragment to the end of the buffer. Fragments carry no
// structure of their own; a row may straddle any number of them.
func (p *Processor) Append(fragment string) error {
	if p.locked {
		return ErrLocked
	}
	p.buf.WriteString(fragment)
	return nil
}

// Buffer returns everything appended so far.
func (p *Processor) Buffer() string {
	return p.buf.String()
}

// Locked reports whether Process has been called.
func (p *Processor) Locked() bool {
	return p.locked
}

// Process locks the processor and reassembles the buffer into the row
// table. It may be called once. On a format error processing stops; rows
// written before the failing line are kept.
func (p *Processor) Process() error {
	if p.locked {
		return ErrLocked
	}
	p.locked = true

	buf := p.buf.String()
	r := reassembler{rows: p.rows, window: p.config.HeaderWindow, log: p.log}
	err := r.run(buf)

	fields := []zap.Field{
		zap.String("fingerprint", p.Fingerprint()),
		zap.Int("bytes", len(buf)),
		zap.Int("lines", r.lines),
		zap.Int("rows", len(p.rows)),
	}
	if err != nil {
		p.log.Debug("Stream processing failed", append(fields, zap.Error(err))...)
		return err
	}
	p.log.Debug("Stream processed", fields...)
	return nil
}
