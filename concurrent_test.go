package flight

import (
	"sync"
	"testing"
)

// TestConcurrentReads exercises the read-only phase: once Process has
// returned, many goroutines may resolve and search the same processor.
func TestConcurrentReads(t *testing.T) {
	p := processed(t, buildStream(50))
	want, err := p.Resolve(0)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				got, err := p.Resolve(0)
				if err != nil {
					t.Errorf("Resolve: %v", err)
					return
				}
				if got != want {
					t.Errorf("Resolve = %q, want %q", got, want)
					return
				}
				if _, ok := p.Find([]string{"chapter"}, nil); !ok {
					t.Error("Find: no match")
					return
				}
			}
		}()
	}
	wg.Wait()
}

// TestConcurrentProcessors runs one processor per goroutine, the way pages
// are scraped in parallel. Instances share nothing.
func TestConcurrentProcessors(t *testing.T) {
	stream := buildStream(20)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := New(Config{})
			if err != nil {
				t.Errorf("New: %v", err)
				return
			}
			for _, f := range fragments(stream, 7) {
				p.Append(f)
			}
			if err := p.Process(); err != nil {
				t.Errorf("Process: %v", err)
				return
			}
			if p.Len() != 1+2*20 {
				t.Errorf("Len() = %d, want %d", p.Len(), 1+2*20)
			}
		}()
	}
	wg.Wait()
}
