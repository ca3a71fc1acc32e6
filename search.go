// Search over raw row content.
//
// Row slots are assigned by the server and shift between deployments, so
// callers locate the row they want by what it contains instead: every
// required substring present, no excluded substring present. Matching runs
// against the raw row, before pointer resolution, in ascending index order,
// and the first qualifying row wins. Empty rows never match.
package flight

import (
	"slices"
	"strings"
)

// Find returns the lowest index whose raw value contains every string in
// require and none in exclude.
func (p *Processor) Find(require, exclude []string) (int, bool) {
	for index, v := range p.Entries() {
		if matches(v, require, exclude) {
			return index, true
		}
	}
	return 0, false
}

// FindHex is Find returning the index in hexadecimal, ready for GetHex or
// ResolveHex.
func (p *Processor) FindHex(require, exclude []string) (string, bool) {
	index, ok := p.Find(require, exclude)
	if !ok {
		return "", false
	}
	return formatHex(index), true
}

func matches(v string, require, exclude []string) bool {
	if v == "" {
		return false
	}
	for _, s := range require {
		if !strings.Contains(v, s) {
			return false
		}
	}
	return !slices.ContainsFunc(exclude, func(s string) bool {
		return strings.Contains(v, s)
	})
}
