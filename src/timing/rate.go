package timing

import (
	"fmt"
	"sync"
	"time"
)

//RateWindow is the number of recent frames Rate keeps
const RateWindow = 100

//Rate is a frames per second meter over the last RateWindow frames, safe for concurrent use
type Rate struct {
	mu      sync.Mutex
	now     func() time.Time
	last    time.Time
	samples [RateWindow]float64
	next    int
	count   int
}

//RateSummary is the latest frame rate and the rolling mean, min and max
type RateSummary struct {
	Frames int
	Latest float64
	Mean   float64
	Min    float64
	Max    float64
}

//String formats the summary for a status line
func (s RateSummary) String() string {
	if s.Frames == 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.1f (avg %.1f, min %.1f, max %.1f)", s.Latest, s.Mean, s.Min, s.Max)
}

//NewRate creates the empty meter
func NewRate() *Rate {
	return &Rate{now: time.Now}
}

//Tick marks a frame at the current time
func (r *Rate) Tick() {
	r.Observe(r.now())
}

//Observe marks a frame at t.
//The first frame only sets the reference time, frames not later than the previous one are ignored.
func (r *Rate) Observe(t time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.last.IsZero() {
		r.last = t
		return
	}
	d := t.Sub(r.last)
	if d <= 0 {
		return
	}
	r.last = t
	r.samples[r.next] = float64(time.Second) / float64(d)
	r.next = (r.next + 1) % RateWindow
	if r.count < RateWindow {
		r.count++
	}
}

//Summary returns the statistics of the kept frames
func (r *Rate) Summary() RateSummary {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := RateSummary{Frames: r.count}
	if r.count == 0 {
		return s
	}
	s.Latest = r.samples[(r.next+RateWindow-1)%RateWindow]
	s.Min, s.Max = s.Latest, s.Latest
	total := 0.0
	for _, v := range r.samples[:r.count] {
		total += v
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
	}
	s.Mean = total / float64(r.count)
	return s
}
