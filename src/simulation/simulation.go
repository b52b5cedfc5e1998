//Package simulation drives a universe on behalf of a host: it paces the ticks,
//collects the status and hands frames to the registered viewers.
package simulation

import (
	"math/rand"
	"sync"
	"time"

	"deltalife/src/pattern"
	"deltalife/src/timing"
	"deltalife/src/universe"
)

//TickLabel is the span label used to time Universe.Tick
const TickLabel = "Universe.Tick"

//Options represents the simulation's configurable options
type Options struct {
	Width           int
	Height          int
	Interval        time.Duration
	MaxSteps        int
	MaxSkippedTicks int
	Policy          universe.Policy
	Strategy        universe.Strategy
	Seed            int64   //random and noise seeding, 0 means time based
	Density         float64 //probability of a live cell for SettleWithRandomData
	NoiseThreshold  float64 //threshold for SettleWithNoise
}

//Status represents the status of the simulation at concrete moment
type Status struct {
	IterationNum  int
	RunningMode   RunningState
	LiveCells     int
	IterationTime time.Duration
}

//Frame is what a viewer needs to redraw after a change.
//Full frames carry the whole live set, incremental frames carry the deltas only.
type Frame struct {
	Status
	Width  int
	Height int
	Full   bool
	Cells  []universe.Cell //live cells, set for the full frames
	Alive  []int           //row, column pairs of the cells born
	Dead   []int           //row, column pairs of the cells died
}

//Viewer is the interface to any Viewer - the object who can display simulation data or control the engine
type Viewer interface {
	Refresh(f Frame)
	Register(s *Simulation)
	Start()
}

//RunningState is the simulation running status at the concrete moment
type RunningState int

//default options
const (
	DefSimulationInterval = time.Millisecond * 100
	DefMaxSteps           = 1000
	DefWidth              = 32
	DefHeight             = 32
	DefMaxSkippedTicks    = 5
	DefDensity            = 0.3
)

const (
	RunningStateManual   RunningState = 0x0
	RunningStateStep     RunningState = 0x1
	RunningStateRun      RunningState = 0x2
	RunningStateFinished RunningState = 0x3
)

var runningStateNames = map[RunningState]string{
	RunningStateManual:   "waiting",
	RunningStateStep:     "do the step",
	RunningStateRun:      "running",
	RunningStateFinished: "finished",
}

func (r RunningState) String() string {
	return runningStateNames[r]
}

//DefaultOptions returns the default simulation options
func DefaultOptions() Options {
	return Options{
		Width:           DefWidth,
		Height:          DefHeight,
		Interval:        DefSimulationInterval,
		MaxSteps:        DefMaxSteps,
		MaxSkippedTicks: DefMaxSkippedTicks,
		Policy:          universe.HardEdge,
		Strategy:        universe.FullScan,
		Density:         DefDensity,
	}
}

//Simulation owns a Universe and serializes every access to it.
//Commands are executed one by one by the control goroutine.
type Simulation struct {
	options Options
	state   struct {
		Status
		sync.Mutex
	}
	u struct {
		*universe.Universe
		sync.Mutex
	}
	stateCh   chan Status
	views     []Viewer
	templates pattern.Library
	stats     *timing.Stats
	recorder  timing.Recorder
	rnd       *rand.Rand
	controlCh chan func()
	closeCh   chan bool
	quit      chan struct{} //closed when the main loop exits
}

//New creates the Simulation and starts its control goroutine.
//stateCh may be nil, otherwise every running state change is written there.
func New(o *Options, stateCh chan Status) (*Simulation, error) {
	if o == nil {
		def := DefaultOptions()
		o = &def
	}
	u, err := universe.New(o.Width, o.Height, universe.WithPolicy(o.Policy), universe.WithStrategy(o.Strategy))
	if err != nil {
		return nil, err
	}
	seed := o.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s := &Simulation{
		options:   *o,
		controlCh: make(chan func(), 1),
		closeCh:   make(chan bool, 1),
		quit:      make(chan struct{}),
		stateCh:   stateCh,
		templates: pattern.Builtin(),
		stats:     timing.NewStats(),
		rnd:       rand.New(rand.NewSource(seed)),
	}
	s.recorder = s.stats
	s.u.Universe = u
	go s.mainLoop()
	return s, nil
}

//SetRecorder adds the recorder which receives the tick spans in addition to the internal stats
func (s *Simulation) SetRecorder(r timing.Recorder) {
	s.controlCh <- func() {
		s.recorder = timing.Multi{s.stats, r}
	}
}

//AddTemplate adds the seeding template to the library
//the universe can be populated with this template by call SettleTemplate
func (s *Simulation) AddTemplate(tmpl pattern.Template) {
	s.controlCh <- func() {
		s.templates.Add(tmpl)
	}
}

//Templates returns the names of known templates
func (s *Simulation) Templates() []string {
	done := make(chan []string)
	s.controlCh <- func() { done <- s.templates.Names() }
	return <-done
}

//Settle adds the cells to the universe, returns immediately
func (s *Simulation) Settle(cells []universe.Cell) {
	cells = append([]universe.Cell(nil), cells...)
	s.controlCh <- func() {
		s.settle(cells)
	}
}

//SettleTemplate populates the universe with the seeding template, see pattern.Template.Placed
//unknown names are ignored
func (s *Simulation) SettleTemplate(name string) {
	s.controlCh <- func() {
		tmpl, ok := s.templates.Get(name)
		if !ok {
			return
		}
		w, h := s.Dimensions()
		s.settle(tmpl.Placed(w, h).Cells)
	}
}

//SettleWithRandomData clears the universe and populates it with random data
func (s *Simulation) SettleWithRandomData() {
	s.settleGenerated(func(w, h int) []universe.Cell {
		return pattern.Random(w, h, s.rnd.Int63(), s.options.Density)
	})
}

//SettleWithNoise clears the universe and populates it with Perlin noise blobs
func (s *Simulation) SettleWithNoise() {
	s.settleGenerated(func(w, h int) []universe.Cell {
		return pattern.Noise(w, h, s.rnd.Int63(), s.options.NoiseThreshold)
	})
}

//Toggle inverses the cell state at row, column, returns immediately
func (s *Simulation) Toggle(row int, column int) {
	s.controlCh <- func() {
		s.u.Lock()
		s.u.ClearDeltas()
		s.u.Toggle(row, column)
		f := s.deltaFrame()
		s.u.Unlock()
		s.publish(f)
	}
}

//Resize replaces the universe dimensions, all cells are killed.
//The error is returned for non positive dimensions and the universe is left untouched.
func (s *Simulation) Resize(width int, height int) error {
	done := make(chan error)
	s.controlCh <- func() {
		done <- s.resize(width, height)
	}
	return <-done
}

//RegisterViewer registers the viewer - the simulation will call the viewer when the state is changed
func (s *Simulation) RegisterViewer(v Viewer) {
	s.views = append(s.views, v)
	v.Register(s)
}

//StateCh returns the channel with the status updates
func (s *Simulation) StateCh() chan Status {
	return s.stateCh
}

//Status returns current simulation status represented by Status struct
func (s *Simulation) Status() Status {
	s.state.Lock()
	defer s.state.Unlock()
	return s.state.Status
}

//Options returns current simulation configuration represented by Options struct
func (s *Simulation) Options() Options {
	return s.options
}

//Dimensions returns the universe width and height
func (s *Simulation) Dimensions() (width int, height int) {
	s.u.Lock()
	defer s.u.Unlock()
	return s.u.Dimensions()
}

//Snapshot returns the full frame of the current universe
func (s *Simulation) Snapshot() Frame {
	s.u.Lock()
	f := s.fullFrame()
	s.u.Unlock()
	f.Status = s.Status()
	f.LiveCells = len(f.Cells)
	return f
}

//TickStats returns the timing summary of Universe.Tick
func (s *Simulation) TickStats() timing.Summary {
	sum, _ := s.stats.Summary(TickLabel)
	return sum
}

//Run starts the simulation, returns immediately
func (s *Simulation) Run() {
	s.controlCh <- s.run
}

//Stop stops the simulation, returns immediately
//the Status struct will be written the stateCh on finish
func (s *Simulation) Stop() {
	s.controlCh <- s.stop
}

//Step do one simulation step, returns immediately
//the Status struct will be written to the stateCh on start and on finish
func (s *Simulation) Step() {
	s.controlCh <- s.step
}

//StepNow does one simulation step and waits for it
func (s *Simulation) StepNow() Status {
	done := make(chan Status)
	s.controlCh <- func() {
		s.step()
		done <- s.Status()
	}
	return <-done
}

//Clear clears the universe (kill all cells and reset all counters), returns immediately
//the Status struct will be written to the stateCh on finish
func (s *Simulation) Clear() {
	s.controlCh <- s.clear
}

//Sync waits until all the previously queued commands are executed
func (s *Simulation) Sync() {
	done := make(chan bool)
	s.controlCh <- func() { done <- true }
	<-done
}

//Close stops the main loop, returns immediately
//the simulation must not be used after Close
func (s *Simulation) Close() {
	s.closeCh <- true
}

//mainLoop - the main cycle, should start as a goroutine
//waits for command and executes
func (s *Simulation) mainLoop() {
	var c = false
	for !c {
		select {
		case cmd := <-s.controlCh:
			cmd()
		case c = <-s.closeCh:
		}
	}
	close(s.quit)
}
