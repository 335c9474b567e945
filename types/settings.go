package types

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Default values applied by Normalize for settings left unset.
const (
	DefaultConcurrency = 2
	DefaultDuration    = 60 * time.Second
	DefaultRepeat      = 1
)

// DefaultPercentiles are reported when no percentile list is
// configured.
var DefaultPercentiles = []int{5, 25, 50, 75, 95, 99}

// Settings configures a load-generation session. A Settings value is
// never mutated once a session starts; variants (like the warm-up
// run) are derived with WithDuration.
type Settings struct {
	// URL is the target of every request. Required.
	URL string `json:"url"`

	// Concurrency is how many workers issue requests in parallel.
	Concurrency int `json:"concurrency,omitempty"`

	// Duration bounds each measured run.
	Duration time.Duration `json:"duration,omitempty"`

	// Repeat is how many measured runs the session performs.
	Repeat int `json:"repeat,omitempty"`

	// Delay is waited by each worker between consecutive requests.
	Delay time.Duration `json:"delay,omitempty"`

	// Authorization, if not blank, is sent verbatim as the
	// Authorization header on every request.
	Authorization string `json:"authorization,omitempty"`

	// CallLimit caps how many requests a single worker may issue
	// per run. Zero means no cap.
	CallLimit int `json:"call_limit,omitempty"`

	// Percentiles lists which percentiles every report row
	// carries, in reporting order. Values outside [0,100] are
	// dropped by Normalize.
	Percentiles []int `json:"percentiles,omitempty"`
}

// Normalize returns a copy of s with defaults filled in for unset
// fields and out-of-range percentiles dropped.
func (s Settings) Normalize() Settings {
	if s.Concurrency < 1 {
		s.Concurrency = DefaultConcurrency
	}
	if s.Duration <= 0 {
		s.Duration = DefaultDuration
	}
	if s.Repeat < 1 {
		s.Repeat = DefaultRepeat
	}
	if s.Delay < 0 {
		s.Delay = 0
	}
	if strings.TrimSpace(s.Authorization) == "" {
		s.Authorization = ""
	}
	if len(s.Percentiles) == 0 {
		s.Percentiles = DefaultPercentiles
	} else {
		kept := make([]int, 0, len(s.Percentiles))
		for _, p := range s.Percentiles {
			if p >= 0 && p <= 100 {
				kept = append(kept, p)
			}
		}
		s.Percentiles = kept
	}
	return s
}

// WithDuration returns a copy of s with the run duration replaced.
func (s Settings) WithDuration(d time.Duration) Settings {
	s.Duration = d
	return s
}

// Validate reports a configuration error in s, if any.
func (s Settings) Validate() error {
	if strings.TrimSpace(s.URL) == "" {
		return errors.New("missing target URL")
	}
	if s.Concurrency < 1 {
		return fmt.Errorf("invalid concurrency: %d (must be at least 1)", s.Concurrency)
	}
	if s.Duration < 0 {
		return fmt.Errorf("invalid duration: %s", s.Duration)
	}
	return nil
}

// String renders the settings echo printed at the start of a session.
func (s Settings) String() string {
	str := fmt.Sprintf("%s: %d workers, %s per run, %d run(s)",
		s.URL, s.Concurrency, s.Duration, s.Repeat)
	if s.Delay > 0 {
		str += fmt.Sprintf(", %s between requests", s.Delay)
	}
	if s.CallLimit > 0 {
		str += fmt.Sprintf(", at most %d requests per worker", s.CallLimit)
	}
	if s.Authorization != "" {
		str += ", authorized"
	}
	return str
}
