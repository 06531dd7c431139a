// Package parallel splits elementwise kernel loops across goroutines.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use.
	MinChunkSize int  // Minimum items per goroutine to avoid overhead.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 4096,
	}
}

// ForChunks calls f(start, end) over disjoint half-open ranges covering [0, n).
// Runs sequentially as a single f(0, n) when parallelism is disabled or n is too small.
// Returns after every chunk has completed.
func ForChunks(n int, f func(start, end int), cfg Config) {
	if n <= 0 {
		return
	}
	if !cfg.Enabled || cfg.NumWorkers < 2 || n < 2*cfg.MinChunkSize {
		f(0, n)
		return
	}

	var wg sync.WaitGroup
	chunkSize := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize)

	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			f(s, e)
		}(start, end)
	}
	wg.Wait()
}

// For executes f(i) for i in [0, n) with optional parallelism.
func For(n int, f func(i int), cfg Config) {
	ForChunks(n, func(start, end int) {
		for i := start; i < end; i++ {
			f(i)
		}
	}, cfg)
}

// Sum reduces f over [0, n) chunk by chunk and adds the partial results in chunk order.
func Sum(n int, f func(start, end int) float64, cfg Config) float64 {
	if !cfg.Enabled || cfg.NumWorkers < 2 || n < 2*cfg.MinChunkSize {
		if n <= 0 {
			return 0
		}
		return f(0, n)
	}

	chunkSize := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize)
	partial := make([]float64, (n+chunkSize-1)/chunkSize)
	ForChunks(n, func(start, end int) {
		partial[start/chunkSize] = f(start, end)
	}, cfg)

	var total float64
	for _, p := range partial {
		total += p
	}
	return total
}
