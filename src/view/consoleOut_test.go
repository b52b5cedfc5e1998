package view

import (
	"bytes"
	"strings"
	"testing"

	"deltalife/src/simulation"
	"deltalife/src/universe"
)

func TestConsoleOutPrintsProgressAndSummary(t *testing.T) {
	o := simulation.DefaultOptions()
	o.Width, o.Height = 8, 8
	o.MaxSteps = 4
	o.Interval = 0
	s, err := simulation.New(&o, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	var buf bytes.Buffer
	c := newConsoleOut(&buf, 2, false)
	s.RegisterViewer(c)
	c.Start()
	s.Settle([]universe.Cell{{Row: 2, Column: 1}, {Row: 2, Column: 2}, {Row: 2, Column: 3}})
	for i := 0; i < 4; i++ {
		s.StepNow()
	}

	out := buf.String()
	for _, want := range []string{
		"Running configuration:",
		"Dimension: 8 x 8",
		"Boundary: edge",
		"Strategy: fullscan",
		"Iterations done: 2, live cells: 3 (+2 -2)",
		"Finished:",
		"Last iteration: 4",
		"Live cells: 3",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output misses %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Iterations done: 4") {
		t.Errorf("finished step printed as progress:\n%s", out)
	}
}
