// Search tests.
//
// Find is how extractors locate a row without knowing its slot. The
// lowest qualifying index must win, exclusions must veto a row even when
// every required string is present, and matching must see raw rows rather
// than resolved ones.
package flight

import "testing"

func searchFixture(t *testing.T) *Processor {
	t.Helper()
	return processed(t, "1:{\"comic\":true}\n"+
		"5:{\"comic\":true,\"chapters\":[],\"x\":1}\n"+
		"2:{\"comic\":true,\"chapters\":[]}\n"+
		"1a:{\"comic\":true,\"chapters\":[],\"y\":1}\n"+
		"3:\n")
}

func TestFind(t *testing.T) {
	p := searchFixture(t)

	tests := []struct {
		name    string
		require []string
		exclude []string
		want    int
		ok      bool
	}{
		{"lowest match wins", []string{"comic", "chapters"}, nil, 2, true},
		{"single term", []string{"comic"}, nil, 1, true},
		{"exclusion vetoes", []string{"chapters"}, []string{`"x"`, `"y"`}, 2, true},
		{"exclusion skips to later row", []string{"chapters"}, []string{"[]}"}, 5, true},
		{"no match", []string{"missing"}, nil, 0, false},
		{"everything excluded", []string{"comic"}, []string{"true"}, 0, false},
		{"no terms matches first non-empty row", nil, nil, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := p.Find(tt.require, tt.exclude)
			if ok != tt.ok || got != tt.want {
				t.Errorf("Find(%q, %q) = %d, %v, want %d, %v", tt.require, tt.exclude, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestFindHex(t *testing.T) {
	p := searchFixture(t)

	got, ok := p.FindHex([]string{"chapters"}, []string{`"x"`, "[]}"})
	if !ok || got != "1a" {
		t.Errorf("FindHex = %q, %v, want %q", got, ok, "1a")
	}
	if v, ok := p.GetHex(got); !ok || v != `{"comic":true,"chapters":[],"y":1}` {
		t.Errorf("GetHex(%q) = %q, %v", got, v, ok)
	}

	if _, ok := p.FindHex([]string{"missing"}, nil); ok {
		t.Error("FindHex found a row for a missing term")
	}
}

// TestFindSkipsEmptyRows verifies empty rows never qualify, even for a
// search with no terms.
func TestFindSkipsEmptyRows(t *testing.T) {
	p := processed(t, "1:\n2:a\n")

	got, ok := p.Find(nil, nil)
	if !ok || got != 2 {
		t.Errorf("Find = %d, %v, want 2, true", got, ok)
	}
}

// TestFindMatchesRawRows verifies that search sees pointers, not the rows
// they point to.
func TestFindMatchesRawRows(t *testing.T) {
	p := processed(t, "1:$2\n2:needle\n")

	got, ok := p.Find([]string{"needle"}, nil)
	if !ok || got != 2 {
		t.Errorf("Find = %d, %v, want 2, true", got, ok)
	}
}
