// Package parallel はデータセットの列ごとの独立した処理を CPU コア数に応じて並列実行します。
package parallel

import (
	"runtime"
	"sync"
)

// Chunks splits [0, items) into contiguous ranges, one per CPU core at most,
// calls fn on each range from its own goroutine and waits for all of them.
func Chunks(items int, fn func(start, end int)) {
	if items <= 0 {
		return
	}

	workers := min(runtime.NumCPU(), items)
	size := (items + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < items; start += size {
		end := min(start+size, items)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}

// ForEach calls fn(i) for every i in [0, items). Up to threshold items run
// sequentially on the calling goroutine. fn must only write state owned by i.
func ForEach(items, threshold int, fn func(i int)) {
	body := func(start, end int) {
		for i := start; i < end; i++ {
			fn(i)
		}
	}
	if items <= threshold {
		body(0, items)
		return
	}
	Chunks(items, body)
}
