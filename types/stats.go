package types

import (
	"math"
	"sort"
	"time"
)

// Stats summarizes the latency samples recorded under one
// classification. Mean, Stdev and every percentile value are in
// milliseconds, rounded to two decimal places.
type Stats struct {
	Count       int               `json:"count"`
	Mean        float64           `json:"mean"`
	Stdev       float64           `json:"stdev"`
	Percentiles []PercentileValue `json:"percentiles,omitempty"`
}

// PercentileValue is one percentile of a latency distribution.
type PercentileValue struct {
	P     int     `json:"p"`
	Value float64 `json:"value"`
}

// ComputeStats computes count, mean, sample standard deviation and
// the requested percentiles over samples. The input is copied before
// sorting and is never modified.
func ComputeStats(samples Samples, percentiles []int) Stats {
	s := Stats{Count: len(samples)}

	sorted := make(Samples, len(samples))
	copy(sorted, samples)
	sort.Sort(sorted)

	var total time.Duration
	for _, d := range sorted {
		total += d
	}
	var mean float64
	if len(sorted) > 0 {
		mean = millis(total) / float64(len(sorted))
	}
	s.Mean = round2(mean)

	// Sample standard deviation, n-1 divisor. Undefined for fewer
	// than two samples, reported as 0.
	if len(sorted) > 1 {
		var devsum float64
		for _, d := range sorted {
			dev := millis(d) - mean
			devsum += dev * dev
		}
		s.Stdev = round2(math.Sqrt(devsum / float64(len(sorted)-1)))
	}

	for _, p := range percentiles {
		s.Percentiles = append(s.Percentiles, PercentileValue{
			P:     p,
			Value: round2(millis(Percentile(sorted, p))),
		})
	}

	return s
}

// Percentile returns the pth percentile of sorted, which must already
// be in ascending order: the element at index floor(n*p/100). p=100
// would index one past the end and is clamped to the last element.
// An empty sequence yields 0.
func Percentile(sorted Samples, p int) time.Duration {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	i := n * p / 100
	if i > n-1 {
		i = n - 1
	}
	return sorted[i]
}

// millis converts d to float64 milliseconds.
func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
