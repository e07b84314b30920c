package memory_test

import (
	"sort"
	"sync"
	"testing"

	"github.com/samandarerkinov/torthouse/internal/storage/memory"
)

func TestOrderCounter_Sequential(t *testing.T) {
	counter := memory.NewOrderCounter()

	for want := int64(1); want <= 3; want++ {
		got, err := counter.Next()
		if err != nil {
			t.Fatalf("next failed: %v", err)
		}
		if got != want {
			t.Fatalf("expected %d, got %d", want, got)
		}
	}
}

func TestOrderCounter_ConcurrentNoDuplicates(t *testing.T) {
	counter := memory.NewOrderCounter()

	const n = 50
	values := make([]int64, n)

	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(idx int) {
			defer wg.Done()
			v, err := counter.Next()
			if err != nil {
				t.Errorf("next failed: %v", err)
				return
			}
			values[idx] = v
		}(i)
	}
	wg.Wait()

	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })
	for i, v := range values {
		if v != int64(i+1) {
			t.Fatalf("expected consecutive values 1..%d, got %v", n, values)
		}
	}
}
