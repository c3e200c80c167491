/*****************************************************************************************************************/

//	@package	envprobe
//	@license	MIT

/*****************************************************************************************************************/

// Package parallel implements the row-range parallel-for used by every
// per-face integration pass: each worker owns an exclusive contiguous
// range of rows of a single output face and writes only into that range.
// Workers never suspend; the caller blocks until every range has
// completed before moving to the next face (spec §5).
package parallel

/*****************************************************************************************************************/

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

/*****************************************************************************************************************/

// RowRange is a half-open [Start,End) range of row indices assigned to a
// single worker.
type RowRange struct {
	Start, End int
}

/*****************************************************************************************************************/

// partitionRows splits [0,rows) into at most workers contiguous,
// non-overlapping ranges.
func partitionRows(rows, workers int) []RowRange {
	if workers > rows {
		workers = rows
	}
	if workers < 1 {
		workers = 1
	}

	ranges := make([]RowRange, 0, workers)

	base := rows / workers
	remainder := rows % workers

	start := 0
	for i := 0; i < workers; i++ {
		size := base
		if i < remainder {
			size++
		}
		if size == 0 {
			continue
		}
		ranges = append(ranges, RowRange{Start: start, End: start + size})
		start += size
	}

	return ranges
}

/*****************************************************************************************************************/

// ForRows partitions [0,rows) into contiguous row ranges across
// runtime.GOMAXPROCS(0) workers and invokes fn once per range
// concurrently, blocking until every range has completed. fn must only
// write into the rows described by its RowRange; the source cubemap and
// sample caches it reads are shared read-only state.
func ForRows(rows int, fn func(r RowRange) error) error {
	ranges := partitionRows(rows, runtime.GOMAXPROCS(0))

	var g errgroup.Group

	for _, r := range ranges {
		r := r
		g.Go(func() error {
			return fn(r)
		})
	}

	return g.Wait()
}

/*****************************************************************************************************************/
