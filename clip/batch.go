package clip

import (
	"context"
	"runtime"
	"sync"

	"github.com/binzume/mocapretarget/retarget"
	"github.com/binzume/mocapretarget/skeleton"
)

// BatchResult is the outcome of solving one snapshot.
type BatchResult struct {
	Result *retarget.Result
	Err    error
}

// RetargetAll solves every snapshot on workers goroutines. results[i] belongs
// to snaps[i]. Solving stops early when ctx is done and ctx.Err() is returned.
func RetargetAll(ctx context.Context, solver *retarget.Solver, snaps []*skeleton.Snapshot, workers int) ([]BatchResult, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	results := make([]BatchResult, len(snaps))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				res, err := solver.Solve(snaps[i])
				results[i] = BatchResult{Result: res, Err: err}
			}
		}()
	}

	var err error
loop:
	for i := range snaps {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case jobs <- i:
		case <-ctx.Done():
			err = ctx.Err()
			break loop
		}
	}
	close(jobs)
	wg.Wait()
	return results, err
}
