package parallel

import "sync"

var (
	defaultMu   sync.Mutex
	defaultPool *WorkerPool
)

// Default returns the process-wide pool, creating it on first use with
// GOMAXPROCS workers.
func Default() *WorkerPool {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultPool == nil {
		defaultPool = NewWorkerPool(0)
	}
	return defaultPool
}

// SetWorkers replaces the process-wide pool with one of n workers.
// The previous pool is closed after its queued jobs finish.
func SetWorkers(n int) {
	defaultMu.Lock()
	old := defaultPool
	defaultPool = NewWorkerPool(n)
	defaultMu.Unlock()

	if old != nil {
		old.Close()
	}
}

// minBandRows keeps bands large enough that scheduling stays cheap
// compared to the per-row work.
const minBandRows = 4

// Bands splits [0, n) into at most parts contiguous half-open ranges of
// near-equal size. Ranges are returned in order.
func Bands(n, parts int) [][2]int {
	if n <= 0 {
		return nil
	}
	parts = max(min(parts, n), 1)
	bands := make([][2]int, 0, parts)
	size, rem := n/parts, n%parts
	start := 0
	for i := range parts {
		end := start + size
		if i < rem {
			end++
		}
		bands = append(bands, [2]int{start, end})
		start = end
	}
	return bands
}

// Rows calls fn for disjoint bands of rows covering [0, height) on the
// process-wide pool and returns when every band is done.
func Rows(height int, fn func(y0, y1 int)) {
	RowsOn(Default(), height, fn)
}

// RowsOn is Rows with an explicit pool.
func RowsOn(p *WorkerPool, height int, fn func(y0, y1 int)) {
	if height <= 0 {
		return
	}
	parts := min(p.Workers()*2, (height+minBandRows-1)/minBandRows)
	if parts <= 1 {
		fn(0, height)
		return
	}

	bands := Bands(height, parts)
	jobs := make([]func(), len(bands))
	for i, b := range bands {
		jobs[i] = func() { fn(b[0], b[1]) }
	}
	p.Run(jobs)
}
