package pummel

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sourcegraph/pummel/types"
)

func TestRunOnceReturnsOneAccumulatorPerWorker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	settings := types.Settings{
		URL:         srv.URL,
		Concurrency: 5,
		Duration:    time.Minute,
		CallLimit:   2,
	}
	accs := runOnce(context.Background(), settings, srv.Client())

	if got, want := len(accs), 5; got != want {
		t.Fatalf("Expected %d accumulators, got %d", want, got)
	}
	for i, acc := range accs {
		if acc == nil {
			t.Fatalf("Expected accumulator %d to be non-nil", i)
		}
		if got, want := acc.Total(), 2; got != want {
			t.Errorf("Expected worker %d to record %d samples, got %d", i, want, got)
		}
	}
}

func TestRunOnceZeroIterationWorkers(t *testing.T) {
	// A cancelled context means no worker completes any request,
	// but every worker still hands back an (empty) accumulator.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	settings := types.Settings{URL: "http://localhost:0", Concurrency: 3, Duration: time.Minute}
	accs := runOnce(ctx, settings, &http.Client{})

	if got, want := len(accs), 3; got != want {
		t.Fatalf("Expected %d accumulators, got %d", want, got)
	}
	for i, acc := range accs {
		if acc == nil || acc.Total() != 0 {
			t.Errorf("Expected empty accumulator for worker %d, got %v", i, acc)
		}
	}
}

func TestRunOnceExternalCancellationIsPrompt(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(300 * time.Millisecond)
		cancel()
	}()

	settings := types.Settings{URL: srv.URL, Concurrency: 2, Duration: time.Minute}
	start := time.Now()
	runOnce(ctx, settings, srv.Client())

	// Well under the configured minute: one poll interval plus slack.
	if elapsed := time.Since(start); elapsed > 3*time.Second {
		t.Errorf("Expected prompt return after cancellation, took %s", elapsed)
	}
}

func TestRunOnceDeadlineBoundsTheRun(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	settings := types.Settings{
		URL:         srv.URL,
		Concurrency: 1,
		Duration:    2 * time.Second,
		Delay:       20 * time.Millisecond,
	}
	start := time.Now()
	accs := runOnce(context.Background(), settings, srv.Client())
	elapsed := time.Since(start)

	if elapsed < settings.Duration || elapsed > settings.Duration+2*deadlinePollInterval {
		t.Errorf("Expected run bounded near %s, took %s", settings.Duration, elapsed)
	}

	// Throughput sanity: roughly duration/(latency+delay) calls,
	// loosely bounded to absorb scheduling jitter.
	total := types.Merge(accs).Total()
	if total < 20 || total > 150 {
		t.Errorf("Expected on the order of 100 calls, got %d", total)
	}
}

func TestRunOnceMergesClassesAcrossWorkers(t *testing.T) {
	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt64(&calls, 1)%2 == 0 {
			w.WriteHeader(http.StatusBadGateway)
		}
	}))
	defer srv.Close()

	settings := types.Settings{
		URL:         srv.URL,
		Concurrency: 3,
		Duration:    time.Minute,
		CallLimit:   4,
	}
	merged := types.Merge(runOnce(context.Background(), settings, srv.Client()))

	if got, want := len(merged.Buckets), 2; got != want {
		t.Fatalf("Expected %d classifications, got %d", want, got)
	}
	if got, want := merged.Buckets[200].Count+merged.Buckets[502].Count, 12; got != want {
		t.Errorf("Expected %d samples in total, got %d", want, got)
	}
}
