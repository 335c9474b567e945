// Package pummel issues repeated HTTP GET requests against a target
// URL from concurrent workers for a bounded duration, classifies
// responses by status code, and reports latency statistics (count,
// mean, standard deviation, percentiles) per classification.
package pummel

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/sourcegraph/pummel/types"
)

// WarmupDuration is how long the discarded warm-up run lasts. Runs
// configured shorter than this warm up for their own duration
// instead.
const WarmupDuration = 5 * time.Second

// Pummel performs a load-generation session against one target.
type Pummel struct {
	// Settings configures the measured runs.
	Settings types.Settings `json:"settings"`

	// Storage is the storage mechanism for archiving reports.
	// Required if calling RunAndStore().
	Storage Storage `json:"-"`

	// Notifiers are told about the session's reports after it
	// completes, typically to flag degraded runs.
	Notifiers []Notifier `json:"-"`

	// Client is the http.Client shared by every worker. If not
	// set, DefaultHTTPClient is used.
	Client *http.Client `json:"-"`

	// Out receives the progress lines and report rows. If not
	// set, os.Stdout is used.
	Out io.Writer `json:"-"`
}

// Run performs the whole session: a settings echo, one warm-up run
// whose results are discarded, then Settings.Repeat measured runs,
// each aggregated into a report and written to p.Out as one row per
// classification, and finally the total elapsed time. An error is
// only returned for a configuration problem; cancellation of ctx
// ends the session early with whatever reports exist.
//
// Cancellation is checked at the top of each iteration only: a run
// already started always completes on its own terms, bounded by its
// deadline and the cooperative checks inside each worker.
func (p Pummel) Run(ctx context.Context) ([]types.Report, error) {
	settings := p.Settings.Normalize()
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	client := p.Client
	if client == nil {
		client = DefaultHTTPClient
	}
	out := p.Out
	if out == nil {
		out = os.Stdout
	}

	started := time.Now()

	warmup := settings.WithDuration(warmupFor(settings))
	fmt.Fprintf(out, "warming up for %s\n", warmup.Duration)
	fmt.Fprintln(out, settings)
	runOnce(ctx, warmup, client)

	fmt.Fprintln(out, types.Header(settings.Percentiles))

	var reports []types.Report
	for i := 1; i <= settings.Repeat; i++ {
		if ctx.Err() != nil {
			break
		}
		accs := runOnce(ctx, settings, client)
		report := types.NewReport(i, types.Merge(accs), settings.Percentiles)
		report.URL = settings.URL
		reports = append(reports, report)
		fmt.Fprintln(out, report)
	}

	fmt.Fprintf(out, "total elapsed: %s\n", time.Since(started).Round(time.Millisecond))
	return reports, nil
}

// RunAndStore performs the session and archives its reports to the
// configured storage.
func (p Pummel) RunAndStore(ctx context.Context) error {
	if p.Storage == nil {
		return fmt.Errorf("no storage mechanism defined")
	}
	reports, err := p.Run(ctx)
	if err != nil {
		return err
	}
	return p.Storage.Store(reports)
}

// Notify passes reports to every configured notifier. All notifiers
// run even when some fail; their errors are concatenated.
func (p Pummel) Notify(reports []types.Report) error {
	var errs types.Errors
	for _, n := range p.Notifiers {
		if err := n.Notify(reports); err != nil {
			errs = append(errs, err)
		}
	}
	if !errs.Empty() {
		return errs
	}
	return nil
}

// warmupFor floors the warm-up length to the configured run duration
// so a short session is not dominated by its warm-up.
func warmupFor(settings types.Settings) time.Duration {
	if settings.Duration < WarmupDuration {
		return settings.Duration
	}
	return WarmupDuration
}
