package parallel

import (
	"sync/atomic"
	"testing"
)

func TestFor(t *testing.T) {
	cfg := DefaultConfig()

	var counter int64
	n := 100_000

	For(n, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)

	if counter != int64(n) {
		t.Errorf("Expected %d, got %d", n, counter)
	}
}

func TestFor_Sequential(t *testing.T) {
	cfg := Config{Enabled: false}

	var counter int64
	For(100, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)

	if counter != 100 {
		t.Errorf("Expected 100, got %d", counter)
	}
}

func TestForChunks_CoversRangeOnce(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 4, MinChunkSize: 10}

	n := 1000
	hits := make([]int32, n)
	ForChunks(n, func(start, end int) {
		for i := start; i < end; i++ {
			atomic.AddInt32(&hits[i], 1)
		}
	}, cfg)

	for i, h := range hits {
		if h != 1 {
			t.Fatalf("index %d visited %d times", i, h)
		}
	}
}

func TestForChunks_SmallRunsInline(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 8, MinChunkSize: 64}

	var calls int32
	ForChunks(100, func(start, end int) {
		atomic.AddInt32(&calls, 1)
		if start != 0 || end != 100 {
			t.Errorf("got range [%d, %d), want [0, 100)", start, end)
		}
	}, cfg)

	if calls != 1 {
		t.Errorf("Expected a single sequential call, got %d", calls)
	}
}

func TestForChunks_Empty(t *testing.T) {
	ForChunks(0, func(_, _ int) {
		t.Error("f should not be called for n == 0")
	}, DefaultConfig())
}

func TestSum(t *testing.T) {
	for _, cfg := range []Config{
		{Enabled: false},
		{Enabled: true, NumWorkers: 4, MinChunkSize: 16},
	} {
		got := Sum(1000, func(start, end int) float64 {
			var s float64
			for i := start; i < end; i++ {
				s += float64(i)
			}
			return s
		}, cfg)
		if got != 499500 {
			t.Errorf("Sum(%+v) = %v, want 499500", cfg, got)
		}
	}
}
