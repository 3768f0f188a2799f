// Package parallel splits index ranges across goroutines.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls how work is split.
type Config struct {
	NumWorkers   int // Upper bound on goroutines per call. Values below 2 run inline.
	MinChunkSize int // Minimum indices per goroutine.
}

// DefaultConfig uses one worker per CPU.
func DefaultConfig() Config {
	return Config{
		NumWorkers:   runtime.NumCPU(),
		MinChunkSize: 4096,
	}
}

// Sequential runs every call inline.
func Sequential() Config {
	return Config{NumWorkers: 1}
}

// Range calls f on disjoint half-open chunks covering [0, n) and returns
// once all chunks are done. f must only write state owned by its chunk.
func Range(n int, cfg Config, f func(start, end int)) {
	if n <= 0 {
		return
	}
	chunk := chunkSize(n, cfg)
	if chunk >= n {
		f(0, n)
		return
	}

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		go func() {
			defer wg.Done()
			f(start, end)
		}()
	}
	wg.Wait()
}

func chunkSize(n int, cfg Config) int {
	if cfg.NumWorkers < 2 {
		return n
	}
	return max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize, 1)
}
