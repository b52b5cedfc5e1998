package timing

import (
	"testing"
	"time"
)

func TestRateSummary(t *testing.T) {
	r := NewRate()
	if s := r.Summary(); s.Frames != 0 || s.String() != "n/a" {
		t.Fatalf("empty Summary() = %+v", s)
	}
	base := time.Unix(100, 0)
	r.Observe(base)
	if s := r.Summary(); s.Frames != 0 {
		t.Fatalf("first frame produced a sample: %+v", s)
	}
	//10, 20 and 5 frames per second
	for _, ms := range []int{100, 150, 350} {
		r.Observe(base.Add(time.Duration(ms) * time.Millisecond))
	}
	s := r.Summary()
	if s.Frames != 3 || s.Latest != 5 || s.Min != 5 || s.Max != 20 {
		t.Fatalf("Summary() = %+v", s)
	}
	if s.Mean < 11.66 || s.Mean > 11.67 {
		t.Fatalf("Mean = %v, want 11.67", s.Mean)
	}
	if got := s.String(); got != "5.0 (avg 11.7, min 5.0, max 20.0)" {
		t.Fatalf("String() = %q", got)
	}
}

func TestRateIgnoresNonIncreasingTime(t *testing.T) {
	r := NewRate()
	base := time.Unix(100, 0)
	r.Observe(base)
	r.Observe(base)
	r.Observe(base.Add(-time.Second))
	if s := r.Summary(); s.Frames != 0 {
		t.Fatalf("Summary() = %+v, want no samples", s)
	}
}

func TestRateKeepsLastWindow(t *testing.T) {
	r := NewRate()
	at := time.Unix(100, 0)
	r.Observe(at)
	//a slow frame pushed out by RateWindow fast ones
	at = at.Add(time.Second)
	r.Observe(at)
	for i := 0; i < RateWindow; i++ {
		at = at.Add(10 * time.Millisecond)
		r.Observe(at)
	}
	s := r.Summary()
	if s.Frames != RateWindow || s.Min != 100 || s.Max != 100 || s.Mean != 100 {
		t.Fatalf("Summary() = %+v, want 100 fps only", s)
	}
}

func TestRateTick(t *testing.T) {
	r := NewRate()
	at := time.Unix(100, 0)
	r.now = func() time.Time {
		at = at.Add(40 * time.Millisecond)
		return at
	}
	for i := 0; i < 4; i++ {
		r.Tick()
	}
	if s := r.Summary(); s.Frames != 3 || s.Latest != 25 {
		t.Fatalf("Summary() = %+v", s)
	}
}
