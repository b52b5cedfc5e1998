package view

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/logrusorgru/aurora"

	"deltalife/src/simulation"
)

//ConsoleOut is the non interactive viewer, it prints the progress and the final summary
type ConsoleOut struct {
	s         *simulation.Simulation
	w         io.Writer
	au        aurora.Aurora
	every     int
	startTime time.Time
}

//NewConsoleOut creates the printer writing to stdout, the progress is printed every `every` steps
func NewConsoleOut(every int, colors bool) *ConsoleOut {
	return newConsoleOut(os.Stdout, every, colors)
}

func newConsoleOut(w io.Writer, every int, colors bool) *ConsoleOut {
	if every <= 0 {
		every = 10
	}
	return &ConsoleOut{w: w, au: aurora.NewAurora(colors), every: every}
}

//Refresh implements simulation.Viewer
func (c *ConsoleOut) Refresh(f simulation.Frame) {
	st := f.Status
	if f.Full {
		return
	}
	if st.RunningMode == simulation.RunningStateFinished {
		totalTime := time.Since(c.startTime).Round(time.Millisecond)
		resultData := map[string]interface{}{
			"Last iteration": st.IterationNum,
			"Total time":     totalTime,
			"Live cells":     st.LiveCells,
		}
		if c.s != nil {
			ts := c.s.TickStats()
			resultData["Mean tick"] = ts.Mean()
			resultData["Max tick"] = ts.Max
		}
		fmt.Fprintln(c.w, c.au.Red("\nFinished:"))
		c.printHashData(resultData)
	} else if st.IterationNum%c.every == 0 {
		fmt.Fprintf(c.w, "  Iterations done: %v, live cells: %v (+%d -%d)\n",
			c.au.Cyan(st.IterationNum), st.LiveCells, len(f.Alive)/2, len(f.Dead)/2)
	}
}

//Register implements simulation.Viewer, prints the configuration
func (c *ConsoleOut) Register(s *simulation.Simulation) {
	c.s = s
	o := s.Options()
	w, h := s.Dimensions()
	fmt.Fprintln(c.w, c.au.Green("Running configuration:"))
	c.printHashData(map[string]interface{}{
		"Dimension":      fmt.Sprintf("%v x %v", w, h),
		"Interval":       o.Interval,
		"Max iterations": fmt.Sprintf("%v steps", o.MaxSteps),
		"Boundary":       o.Policy,
		"Strategy":       o.Strategy,
	})
}

//Start marks the start time
func (c *ConsoleOut) Start() {
	c.startTime = time.Now()
	fmt.Fprintln(c.w, c.au.Green("\nSimulation started..."))
}

func (c *ConsoleOut) printHashData(d map[string]interface{}) {
	propNames := make([]string, 0, len(d))
	for k := range d {
		propNames = append(propNames, k)
	}
	sort.Strings(propNames)
	for _, propName := range propNames {
		fmt.Fprintf(c.w, "  %s: %v\n", propName, d[propName])
	}
}
