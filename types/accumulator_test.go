package types

import (
	"testing"
	"time"
)

func TestAccumulatorRecord(t *testing.T) {
	acc := NewAccumulator()
	acc.Record(200, 10*time.Millisecond)
	acc.Record(200, 12*time.Millisecond)
	acc.Record(500, 3*time.Millisecond)
	acc.Record(ErrClass, 1*time.Millisecond)

	if got, want := len(acc.Buckets), 3; got != want {
		t.Fatalf("Expected %d buckets, got %d", want, got)
	}
	if got, want := acc.Buckets[200].Count, 2; got != want {
		t.Errorf("Expected 200 bucket count=%d, got %d", want, got)
	}
	if got, want := len(acc.Buckets[200].Samples), 2; got != want {
		t.Errorf("Expected 200 bucket to hold %d samples, got %d", want, got)
	}
	if got, want := acc.Total(), 4; got != want {
		t.Errorf("Expected Total()=%d, got %d", want, got)
	}
}

func TestMergeDisjointClasses(t *testing.T) {
	a := NewAccumulator()
	a.Record(200, 10*time.Millisecond)
	a.Record(200, 11*time.Millisecond)
	b := NewAccumulator()
	b.Record(404, 5*time.Millisecond)

	merged := Merge([]*Accumulator{a, b})

	if got, want := len(merged.Buckets), 2; got != want {
		t.Fatalf("Expected %d buckets after merge, got %d", want, got)
	}
	if got, want := merged.Total(), a.Total()+b.Total(); got != want {
		t.Errorf("Expected merged total=%d, got %d", want, got)
	}
}

func TestMergeSharedClassesAcrossWorkers(t *testing.T) {
	// Three workers, each contributing to both classifications.
	accs := make([]*Accumulator, 3)
	for i := range accs {
		accs[i] = NewAccumulator()
		accs[i].Record(200, time.Duration(i+1)*time.Millisecond)
		accs[i].Record(200, time.Duration(i+1)*time.Millisecond)
		accs[i].Record(500, time.Duration(i+1)*time.Millisecond)
	}

	merged := Merge(accs)

	if got, want := len(merged.Buckets), 2; got != want {
		t.Fatalf("Expected exactly %d buckets, got %d", want, got)
	}
	if got, want := merged.Buckets[200].Count, 6; got != want {
		t.Errorf("Expected 200 count summed to %d, got %d", want, got)
	}
	if got, want := merged.Buckets[500].Count, 3; got != want {
		t.Errorf("Expected 500 count summed to %d, got %d", want, got)
	}
	if got, want := len(merged.Buckets[200].Samples), merged.Buckets[200].Count; got != want {
		t.Errorf("Expected count to match sample length, got %d vs %d", got, want)
	}
}

func TestMergeEmptyAndNil(t *testing.T) {
	merged := Merge([]*Accumulator{NewAccumulator(), nil, NewAccumulator()})
	if got, want := merged.Total(), 0; got != want {
		t.Errorf("Expected empty merge total=%d, got %d", want, got)
	}
}
