// Row table access.
//
// Rows are stored raw, with pointer tokens intact. Indices are sparse, so
// ordered access sorts the populated keys on demand.
package flight

import (
	"iter"
	"maps"
	"slices"
)

// Get returns the raw value stored at index.
func (p *Processor) Get(index int) (string, bool) {
	v, ok := p.rows[index]
	return v, ok
}

// GetHex is Get with the index written in hexadecimal, as it appears in
// headers and pointer tokens.
func (p *Processor) GetHex(hex string) (string, bool) {
	index, ok := parseHex(hex)
	if !ok {
		return "", false
	}
	return p.Get(index)
}

// Len returns the number of populated rows.
func (p *Processor) Len() int {
	return len(p.rows)
}

// Entries yields populated rows in ascending index order.
func (p *Processor) Entries() iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		for _, index := range slices.Sorted(maps.Keys(p.rows)) {
			if !yield(index, p.rows[index]) {
				return
			}
		}
	}
}

// Hex returns a copy of the table keyed by lowercase hex index. Empty rows
// are left out. Intended for diagnostic dumps.
func (p *Processor) Hex() map[string]string {
	out := make(map[string]string, len(p.rows))
	for index, v := range p.rows {
		if v != "" {
			out[formatHex(index)] = v
		}
	}
	return out
}
