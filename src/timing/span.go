//Package timing measures how long labelled operations take.
package timing

import (
	"log"
	"sort"
	"sync"
	"time"
)

//Recorder receives the duration of finished spans
type Recorder interface {
	Record(label string, d time.Duration)
}

//RecorderFunc adapts a function to the Recorder interface
type RecorderFunc func(label string, d time.Duration)

//Record calls f(label, d)
func (f RecorderFunc) Record(label string, d time.Duration) {
	f(label, d)
}

//Span is a running measurement, it is finished by End
type Span struct {
	label string
	rec   Recorder
	start time.Time
	done  bool
}

//Start opens the span, rec may be nil
func Start(label string, rec Recorder) *Span {
	return &Span{label: label, rec: rec, start: time.Now()}
}

//End closes the span, reports it to the recorder and returns the elapsed time.
//Only the first call is reported.
func (s *Span) End() time.Duration {
	d := time.Since(s.start)
	if s.done {
		return d
	}
	s.done = true
	if s.rec != nil {
		s.rec.Record(s.label, d)
	}
	return d
}

//Measure runs fn inside a span, the span is closed even if fn panics
func Measure(label string, rec Recorder, fn func()) (d time.Duration) {
	s := Start(label, rec)
	defer func() { d = s.End() }()
	fn()
	return
}

//LogRecorder writes every span to the logger
type LogRecorder struct {
	Logger *log.Logger
}

//Record logs "label: duration"
func (l LogRecorder) Record(label string, d time.Duration) {
	if l.Logger == nil {
		log.Printf("%s: %v", label, d)
		return
	}
	l.Logger.Printf("%s: %v", label, d)
}

//Summary aggregates the spans of one label
type Summary struct {
	Label string
	Count int
	Last  time.Duration
	Min   time.Duration
	Max   time.Duration
	Total time.Duration
}

//Mean returns the average span duration
func (s Summary) Mean() time.Duration {
	if s.Count == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Count)
}

//Stats collects the summaries per label, safe for concurrent use
type Stats struct {
	mu   sync.Mutex
	data map[string]*Summary
}

//NewStats creates the empty Stats
func NewStats() *Stats {
	return &Stats{data: map[string]*Summary{}}
}

//Record adds the span to the label summary
func (st *Stats) Record(label string, d time.Duration) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.data[label]
	if !ok {
		s = &Summary{Label: label, Min: d}
		st.data[label] = s
	}
	s.Count++
	s.Last = d
	s.Total += d
	if d < s.Min {
		s.Min = d
	}
	if d > s.Max {
		s.Max = d
	}
}

//Summary returns the copy of the label summary
func (st *Stats) Summary(label string) (Summary, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.data[label]
	if !ok {
		return Summary{Label: label}, false
	}
	return *s, true
}

//Summaries returns all the summaries sorted by label
func (st *Stats) Summaries() []Summary {
	st.mu.Lock()
	defer st.mu.Unlock()
	res := make([]Summary, 0, len(st.data))
	for _, s := range st.data {
		res = append(res, *s)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Label < res[j].Label })
	return res
}

//Multi fans a span out to several recorders
type Multi []Recorder

//Record passes the span to every non nil recorder
func (m Multi) Record(label string, d time.Duration) {
	for _, r := range m {
		if r != nil {
			r.Record(label, d)
		}
	}
}
