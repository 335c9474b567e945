package pummel

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sourcegraph/pummel/types"
)

// runWorker issues GET requests against settings.URL until ctx is
// cancelled or the per-worker call limit is reached, recording one
// latency sample per request in its own accumulator. Latency covers
// the full exchange including the body transfer. The accumulator is
// returned unconditionally, empty if no request completed.
//
// Transport-level failures are recorded under types.ErrClass and the
// loop continues; cancellation surfacing as a request error exits
// silently without recording.
func runWorker(ctx context.Context, settings types.Settings, client *http.Client) *types.Accumulator {
	acc := types.NewAccumulator()
	auth := strings.TrimSpace(settings.Authorization)

	for calls := 0; settings.CallLimit == 0 || calls < settings.CallLimit; calls++ {
		if ctx.Err() != nil {
			return acc
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, settings.URL, nil)
		if err != nil {
			// The URL was vetted before the run started.
			return acc
		}
		if auth != "" {
			req.Header.Set("Authorization", auth)
		}

		start := time.Now()
		resp, err := client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return acc
			}
			acc.Record(types.ErrClass, time.Since(start))
		} else {
			// Drain the body so the sample includes the
			// transfer, and so the connection can be reused.
			_, copyErr := io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			elapsed := time.Since(start)
			if copyErr != nil && ctx.Err() == nil {
				acc.Record(types.ErrClass, elapsed)
			} else if copyErr == nil {
				acc.Record(types.Class(resp.StatusCode), elapsed)
			}
		}

		if settings.Delay > 0 {
			select {
			case <-time.After(settings.Delay):
			case <-ctx.Done():
				return acc
			}
		}
	}

	return acc
}
