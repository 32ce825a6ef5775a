// Package parallel splits row ranges across CPU cores. It backs the
// row-wise loops in batch prediction and design-matrix assembly.
package parallel

import (
	"runtime"
	"sync"
)

// Parallelize partitions [0, items) into one contiguous chunk per available
// CPU core and invokes fn(start, end) for each chunk on its own goroutine.
// It returns once every chunk has been processed.
//
// Chunks never overlap, so fn may write to disjoint rows of a shared matrix
// without synchronization.
func Parallelize(items int, fn func(start, end int)) {
	if items == 0 {
		return
	}

	numWorkers := runtime.NumCPU()
	if numWorkers > items {
		numWorkers = items
	}

	// 切り上げ除算で各ワーカーの担当行数を決める
	chunkSize := (items + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup

	for i := 0; i < numWorkers; i++ {
		start := i * chunkSize
		end := start + chunkSize
		if end > items {
			end = items
		}
		if start >= end {
			continue
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}

	wg.Wait()
}

// ParallelizeWithThreshold runs fn(0, items) sequentially when items is at or
// below threshold, and falls back to Parallelize above it. Small inputs stay
// on the calling goroutine where the fan-out cost would dominate.
func ParallelizeWithThreshold(items int, threshold int, fn func(start, end int)) {
	if items <= threshold {
		fn(0, items)
		return
	}

	Parallelize(items, fn)
}
