package pummel

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sourcegraph/pummel/types"
)

func TestPummelRun(t *testing.T) {
	types.DisableColor()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	var out bytes.Buffer
	p := Pummel{
		Settings: types.Settings{
			URL:         srv.URL,
			Concurrency: 2,
			Duration:    time.Second,
			Repeat:      2,
			CallLimit:   5,
			Percentiles: []int{50},
		},
		Client: srv.Client(),
		Out:    &out,
	}

	reports, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got, want := len(reports), 2; got != want {
		t.Fatalf("Expected %d reports, got %d", want, got)
	}
	for i, report := range reports {
		if got, want := report.Iteration, i+1; got != want {
			t.Errorf("Expected iteration %d, got %d", want, got)
		}
		if got, want := len(report.Rows), 1; got != want {
			t.Fatalf("Expected a single 200 row, got %d rows", got)
		}
		// Two workers, five calls each.
		if got, want := report.Rows[0].Count, 10; got != want {
			t.Errorf("Expected count=%d, got %d", want, got)
		}
		if got, want := report.Rows[0].Class, types.Class(200); got != want {
			t.Errorf("Expected class %s, got %s", want, got)
		}
	}

	output := out.String()
	for _, want := range []string{"warming up", "p50", "total elapsed"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected output to contain %q:\n%s", want, output)
		}
	}
}

func TestPummelRunMissingURL(t *testing.T) {
	p := Pummel{}
	if _, err := p.Run(context.Background()); err == nil {
		t.Error("Expected a configuration error for missing URL, got nil")
	}
}

func TestPummelRunCancelledBetweenIterations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	p := Pummel{
		Settings: types.Settings{
			URL:         srv.URL,
			Concurrency: 1,
			Duration:    time.Second,
			Repeat:      10,
			CallLimit:   1,
		},
		Client: srv.Client(),
		Out:    &out,
	}

	reports, err := p.Run(ctx)
	if err != nil {
		t.Fatalf("Expected no error from a cancelled session, got %v", err)
	}
	if got, want := len(reports), 0; got != want {
		t.Errorf("Expected %d reports after pre-cancellation, got %d", want, got)
	}
	if !strings.Contains(out.String(), "total elapsed") {
		t.Error("Expected the final elapsed line even when cancelled")
	}
}

func TestRunAndStoreRequiresStorage(t *testing.T) {
	p := Pummel{Settings: types.Settings{URL: "http://localhost"}}
	if err := p.RunAndStore(context.Background()); err == nil {
		t.Error("Expected an error without storage, got nil")
	}
}

type recordingNotifier struct {
	got []types.Report
	err error
}

func (n *recordingNotifier) Type() string { return "recording" }
func (n *recordingNotifier) Notify(reports []types.Report) error {
	n.got = reports
	return n.err
}

func TestPummelNotify(t *testing.T) {
	reports := []types.Report{{Iteration: 1}}
	good := &recordingNotifier{}
	p := Pummel{Notifiers: []Notifier{good}}

	if err := p.Notify(reports); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if got, want := len(good.got), 1; got != want {
		t.Errorf("Expected notifier to receive %d reports, got %d", want, got)
	}
}
