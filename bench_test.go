package flight

import (
	"fmt"
	"strings"
	"testing"
)

// buildStream returns a stream shaped like a chapter list page: row 0
// lists n chapter rows, each chapter row points at a length-prefixed
// summary that spans several lines.
func buildStream(n int) string {
	var b strings.Builder
	refs := make([]string, n)
	for i := range n {
		refs[i] = fmt.Sprintf(`"$%x"`, 1+2*i)
	}
	fmt.Fprintf(&b, "0:{\"chapters\":[%s]}\n", strings.Join(refs, ","))
	for i := range n {
		summary := fmt.Sprintf("Chapter %d: «%s»\nsecond line\nthird line", i, strings.Repeat("ü", i%5))
		fmt.Fprintf(&b, "%x:{\"chapter\":%d,\"summary\":\"$%x\"}\n", 1+2*i, i, 2+2*i)
		fmt.Fprintf(&b, "%x:T%x,%s", 2+2*i, len(summary), summary)
		if i%2 == 0 {
			b.WriteByte('\n')
		}
	}
	b.WriteByte('\n')
	return b.String()
}

// fragments cuts s into pieces of roughly size bytes, ignoring row and
// character boundaries the way script chunking does.
func fragments(s string, size int) []string {
	var out []string
	for len(s) > size {
		out = append(out, s[:size])
		s = s[size:]
	}
	return append(out, s)
}

func BenchmarkProcess(b *testing.B) {
	stream := buildStream(500)
	b.SetBytes(int64(len(stream)))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p, _ := New(Config{})
		p.Append(stream)
		if err := p.Process(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkResolve(b *testing.B) {
	p, _ := New(Config{})
	p.Append(buildStream(500))
	p.Process()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.Resolve(0)
	}
}

func BenchmarkFind(b *testing.B) {
	p, _ := New(Config{})
	p.Append(buildStream(500))
	p.Process()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.Find([]string{`"chapter":499`}, nil)
	}
}

func BenchmarkSnapshot(b *testing.B) {
	p, _ := New(Config{})
	p.Append(buildStream(500))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.Snapshot()
	}
}
