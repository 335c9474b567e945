package types

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

// Row is the aggregate statistics for one classification within one
// measured run.
type Row struct {
	Class Class `json:"class"`
	Stats
}

// Report is the aggregate outcome of one measured run, one row per
// classification observed during the run.
type Report struct {
	// Iteration numbers the run within the session, starting at 1.
	Iteration int `json:"iteration"`

	// URL is the target that was measured.
	URL string `json:"url,omitempty"`

	// Timestamp is when the run finished; UTC UnixNano format.
	Timestamp int64 `json:"timestamp,omitempty"`

	// Rows are ordered by classification, ascending, so ErrClass
	// sorts first when present.
	Rows []Row `json:"rows,omitempty"`
}

// NewReport aggregates merged accumulator data into the report for
// one run.
func NewReport(iteration int, merged *Accumulator, percentiles []int) Report {
	r := Report{Iteration: iteration, Timestamp: Timestamp()}

	classes := make([]Class, 0, len(merged.Buckets))
	for class := range merged.Buckets {
		classes = append(classes, class)
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i] < classes[j] })

	for _, class := range classes {
		r.Rows = append(r.Rows, Row{
			Class: class,
			Stats: ComputeStats(merged.Buckets[class].Samples, percentiles),
		})
	}
	return r
}

// Degraded reports whether the run recorded any transport failure or
// non-2xx classification.
func (r Report) Degraded() bool {
	for _, row := range r.Rows {
		if !row.Class.Success() {
			return true
		}
	}
	return false
}

// Header returns the column header matching the rows produced by
// String, for the given percentile order.
func Header(percentiles []int) string {
	s := fmt.Sprintf("%-5s %-6s %-8s %-9s %-9s", "run", "class", "count", "stdev", "mean")
	for _, p := range percentiles {
		s += fmt.Sprintf(" %-9s", "p"+strconv.Itoa(p))
	}
	return s
}

// DisableColor disables ANSI colors in the Report default string.
func DisableColor() {
	color.NoColor = true
}

// String returns one line per row, aligned with Header. 2xx rows are
// green, other status rows yellow, transport-error rows red.
func (r Report) String() string {
	lines := make([]string, 0, len(r.Rows))
	for _, row := range r.Rows {
		line := fmt.Sprintf("%-5d %-6s %-8d %-9.2f %-9.2f",
			r.Iteration, row.Class, row.Count, row.Stdev, row.Mean)
		for _, pv := range row.Percentiles {
			line += fmt.Sprintf(" %-9.2f", pv.Value)
		}
		switch {
		case row.Class == ErrClass:
			line = color.RedString(line)
		case row.Class.Success():
			line = color.GreenString(line)
		default:
			line = color.YellowString(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
