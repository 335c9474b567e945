package types

import (
	"time"
)

// Samples is a list of latency measurements that can be sorted
// ascending by duration.
type Samples []time.Duration

func (s Samples) Len() int           { return len(s) }
func (s Samples) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }
func (s Samples) Less(i, j int) bool { return s[i] < s[j] }

// Bucket holds the samples recorded under a single classification.
type Bucket struct {
	Count   int     `json:"count"`
	Samples Samples `json:"samples,omitempty"`
}

// Accumulator is one worker's record of latencies grouped by
// classification. Exactly one worker owns an Accumulator while a run
// is in progress; ownership passes to the coordinator when the worker
// exits, and merged accumulators are read-only from then on.
type Accumulator struct {
	Buckets map[Class]*Bucket `json:"buckets"`
}

// NewAccumulator returns an empty Accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{Buckets: make(map[Class]*Bucket)}
}

// Record adds one latency measurement under class.
func (a *Accumulator) Record(class Class, d time.Duration) {
	b, ok := a.Buckets[class]
	if !ok {
		b = new(Bucket)
		a.Buckets[class] = b
	}
	b.Count++
	b.Samples = append(b.Samples, d)
}

// Total returns the number of samples recorded across all classes.
func (a *Accumulator) Total() int {
	var n int
	for _, b := range a.Buckets {
		n += b.Count
	}
	return n
}

// Merge pools every accumulator in accs into a single accumulator:
// per classification, the concatenation of all samples and the sum of
// all counts. The inputs are not modified. Sample order within a
// class is unspecified; the stats computation sorts before indexing.
func Merge(accs []*Accumulator) *Accumulator {
	merged := NewAccumulator()
	for _, acc := range accs {
		if acc == nil {
			continue
		}
		for class, b := range acc.Buckets {
			mb, ok := merged.Buckets[class]
			if !ok {
				mb = new(Bucket)
				merged.Buckets[class] = mb
			}
			mb.Count += b.Count
			mb.Samples = append(mb.Samples, b.Samples...)
		}
	}
	return merged
}
