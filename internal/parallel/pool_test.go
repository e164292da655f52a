package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
)

func TestWorkerPool_Create(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	if pool.Workers() != 4 {
		t.Errorf("Workers() = %d, want 4", pool.Workers())
	}
	if !pool.IsRunning() {
		t.Error("pool should be running after creation")
	}
}

func TestWorkerPool_CreateDefaultWorkers(t *testing.T) {
	for _, n := range []int{0, -3} {
		pool := NewWorkerPool(n)
		if got, want := pool.Workers(), runtime.GOMAXPROCS(0); got != want {
			t.Errorf("NewWorkerPool(%d).Workers() = %d, want %d", n, got, want)
		}
		pool.Close()
	}
}

func TestWorkerPool_Run(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var counter atomic.Int64
	jobs := make([]func(), 100)
	for i := range jobs {
		jobs[i] = func() { counter.Add(1) }
	}
	pool.Run(jobs)

	if counter.Load() != 100 {
		t.Errorf("counter = %d, want 100", counter.Load())
	}
}

func TestWorkerPool_RunEmpty(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	pool.Run(nil)
	pool.Run([]func(){})
}

func TestWorkerPool_RunAfterClose(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Close()

	ran := 0
	pool.Run([]func(){func() { ran++ }, func() { ran++ }})
	if ran != 2 {
		t.Errorf("ran = %d after Close, want 2 (inline execution)", ran)
	}
}

func TestWorkerPool_CloseIdempotent(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Close()
	pool.Close()

	if pool.IsRunning() {
		t.Error("pool should not be running after Close")
	}
}

func TestWorkerPool_ConcurrentBatches(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var total atomic.Int64
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			jobs := make([]func(), 50)
			for i := range jobs {
				jobs[i] = func() { total.Add(1) }
			}
			pool.Run(jobs)
		}()
	}
	wg.Wait()

	if total.Load() != 400 {
		t.Errorf("total = %d, want 400", total.Load())
	}
}

func TestBands(t *testing.T) {
	tests := []struct {
		n, parts int
		want     [][2]int
	}{
		{0, 4, nil},
		{10, 1, [][2]int{{0, 10}}},
		{10, 3, [][2]int{{0, 4}, {4, 7}, {7, 10}}},
		{3, 8, [][2]int{{0, 1}, {1, 2}, {2, 3}}},
		{5, 0, [][2]int{{0, 5}}},
	}
	for _, tt := range tests {
		got := Bands(tt.n, tt.parts)
		if len(got) != len(tt.want) {
			t.Errorf("Bands(%d, %d) = %v, want %v", tt.n, tt.parts, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("Bands(%d, %d) = %v, want %v", tt.n, tt.parts, got, tt.want)
				break
			}
		}
	}
}

func TestRowsOn_CoversEveryRowOnce(t *testing.T) {
	pool := NewWorkerPool(3)
	defer pool.Close()

	for _, height := range []int{1, 3, 4, 17, 100, 1001} {
		hits := make([]int32, height)
		RowsOn(pool, height, func(y0, y1 int) {
			for y := y0; y < y1; y++ {
				atomic.AddInt32(&hits[y], 1)
			}
		})
		for y, h := range hits {
			if h != 1 {
				t.Fatalf("height %d: row %d visited %d times, want 1", height, y, h)
			}
		}
	}
}

func TestRows_ZeroHeight(t *testing.T) {
	called := false
	Rows(0, func(int, int) { called = true })
	if called {
		t.Error("Rows(0) should not call fn")
	}
}

func TestSetWorkers(t *testing.T) {
	SetWorkers(2)
	if got := Default().Workers(); got != 2 {
		t.Errorf("Default().Workers() = %d, want 2", got)
	}
	SetWorkers(0)
	if got := Default().Workers(); got != runtime.GOMAXPROCS(0) {
		t.Errorf("Default().Workers() = %d, want GOMAXPROCS", got)
	}
}
