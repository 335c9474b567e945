package pummel

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/sourcegraph/pummel/types"
)

// deadlinePollInterval is how often the deadline timer re-checks the
// elapsed wall time of a run.
const deadlinePollInterval = 1 * time.Second

// runDeadline cancels the run once duration has elapsed. It returns
// without signaling when ctx fires first: process-wide shutdown is
// observed by every worker directly and does not need relaying.
func runDeadline(ctx context.Context, duration time.Duration, cancel context.CancelFunc) {
	start := time.Now()
	ticker := time.NewTicker(deadlinePollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if time.Since(start) >= duration {
				cancel()
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

// runOnce performs one bounded run: a fresh run-scoped cancellation
// derived from ctx, a deadline timer, and exactly
// settings.Concurrency workers. Each worker writes its accumulator to
// its own slot of the results slice, so the join needs no locking.
// runOnce does not return until every worker and the timer have
// stopped, and always returns exactly settings.Concurrency
// accumulators.
func runOnce(ctx context.Context, settings types.Settings, client *http.Client) []*types.Accumulator {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	deadlineDone := make(chan struct{})
	go func() {
		runDeadline(runCtx, settings.Duration, cancel)
		close(deadlineDone)
	}()

	accs := make([]*types.Accumulator, settings.Concurrency)
	var wg sync.WaitGroup
	for i := 0; i < settings.Concurrency; i++ {
		wg.Add(1)
		go func(i int) {
			accs[i] = runWorker(runCtx, settings, client)
			wg.Done()
		}(i)
	}
	wg.Wait()

	// Workers can finish before the deadline (call limit); release
	// the timer and wait for it so nothing from this run leaks into
	// the next.
	cancel()
	<-deadlineDone

	return accs
}
