// Pointer resolution.
//
// A pointer is "$" followed by a hex index. Resolving a row replaces every
// pointer with the referenced row, and does the same inside the substituted
// text, so chains resolve fully. When the row is a JSON document only its
// string values are rewritten; keys, numbers and layout are copied through
// untouched, so a '$' can never be mistaken inside structural text.
//
// Two limits keep resolution finite. A pointer back to a row already being
// expanded on the current path is left as its "$hex" token. Pointers are
// followed at most Config.MaxDepth levels deep; past that, rows are inserted
// as-is with their own pointers unresolved. Sibling pointers do not count
// against each other, so wide documents resolve completely.
package flight

import (
	"fmt"
	"regexp"
	"strings"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"
)

var pointerPattern = regexp.MustCompile(`\$[0-9a-fA-F]+`)

// Resolve returns the row at index with its pointers substituted.
func (p *Processor) Resolve(index int) (string, error) {
	raw, ok := p.rows[index]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrIndexNotFound, formatHex(index))
	}

	r := resolver{p: p, max: p.config.MaxDepth, path: map[int]bool{index: true}}
	out := r.text(raw, 0)
	if r.cycles > 0 {
		p.log.Debug("Cyclic pointers left unresolved",
			zap.String("index", formatHex(index)),
			zap.Int("count", r.cycles))
	}
	if r.truncated {
		p.log.Warn("Resolution depth limit reached, pointers left unresolved",
			zap.String("index", formatHex(index)),
			zap.Int("max_depth", p.config.MaxDepth))
	}
	return out, nil
}

// ResolveHex is Resolve with a hexadecimal index.
func (p *Processor) ResolveHex(hex string) (string, error) {
	index, ok := parseHex(hex)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrIndexNotFound, hex)
	}
	return p.Resolve(index)
}

// ResolveAs resolves index and passes the result through fn.
func ResolveAs[T any](p *Processor, index int, fn Transform[T]) (T, error) {
	s, err := p.Resolve(index)
	if err != nil {
		var zero T
		return zero, err
	}
	return fn(s)
}

// ResolveHexAs is ResolveAs with a hexadecimal index.
func ResolveHexAs[T any](p *Processor, hex string, fn Transform[T]) (T, error) {
	s, err := p.ResolveHex(hex)
	if err != nil {
		var zero T
		return zero, err
	}
	return fn(s)
}

type resolver struct {
	p         *Processor
	max       int
	path      map[int]bool // rows being expanded above the current frame
	cycles    int
	truncated bool
}

func (r *resolver) text(s string, depth int) string {
	if json.Valid([]byte(s)) {
		return r.document(s, depth)
	}
	return pointerPattern.ReplaceAllStringFunc(s, func(token string) string {
		return r.substitute(token, depth)
	})
}

// substitute returns the expansion of one pointer token found depth levels
// below the resolved row.
func (r *resolver) substitute(token string, depth int) string {
	index, ok := parseHex(token[1:])
	if !ok {
		return token
	}
	v, ok := r.p.rows[index]
	if !ok {
		return token
	}
	if r.path[index] {
		r.cycles++
		return token
	}
	if !pointerPattern.MatchString(v) {
		return v
	}
	if depth >= r.max {
		r.truncated = true
		return v
	}

	r.path[index] = true
	out := r.text(v, depth+1)
	delete(r.path, index)
	return out
}

// document rewrites the string values of a valid JSON document. Each value
// that contains a pointer is decoded, resolved and re-encoded in place.
func (r *resolver) document(s string, depth int) string {
	var out strings.Builder
	last := 0
	for i := 0; i < len(s); {
		if s[i] != '"' {
			i++
			continue
		}
		end := stringEnd(s, i)
		lit := s[i:end]
		if isKey(s, end) || !strings.ContainsAny(lit, `$\`) {
			i = end
			continue
		}

		var v string
		if err := json.Unmarshal([]byte(lit), &v); err == nil && pointerPattern.MatchString(v) {
			if resolved := r.text(v, depth); resolved != v {
				if enc, err := json.MarshalNoEscape(resolved); err == nil {
					out.WriteString(s[last:i])
					out.Write(enc)
					last = end
				}
			}
		}
		i = end
	}
	if last == 0 {
		return s
	}
	out.WriteString(s[last:])
	return out.String()
}

// stringEnd returns the offset just past the string literal opening at i.
func stringEnd(s string, i int) int {
	for k := i + 1; k < len(s); {
		switch s[k] {
		case '\\':
			k += 2
		case '"':
			return k + 1
		default:
			k++
		}
	}
	return len(s)
}

// isKey reports whether the literal ending at end is an object key.
func isKey(s string, end int) bool {
	for ; end < len(s); end++ {
		switch s[end] {
		case ' ', '\t', '\n', '\r':
			continue
		case ':':
			return true
		}
		return false
	}
	return false
}
