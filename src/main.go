package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/integrii/flaggy"

	"deltalife/src/pattern"
	"deltalife/src/simulation"
	"deltalife/src/timing"
	"deltalife/src/universe"
	"deltalife/src/view"
)

//displays
const (
	displayConsole  = "console"
	displayTerminal = "terminal"
	displayWindow   = "window"
)

type EnvOptions struct {
	display   string
	policy    string
	strategy  string
	template  string
	cells     string
	random    bool
	noise     bool
	traceTick bool
	every     int
	scale     int
}

func main() {
	eo, so := initOptions()

	var stateCh chan simulation.Status
	if eo.display == displayConsole {
		stateCh = make(chan simulation.Status, 10) //the buffered channel to getting the simulation status
	}

	s, err := simulation.New(so, stateCh)
	if err != nil {
		log.Fatalf("can't create the universe: %v", err)
	}
	if eo.traceTick {
		s.SetRecorder(timing.LogRecorder{Logger: log.New(os.Stderr, "", log.Ltime|log.Lmicroseconds)})
	}

	settle(s, eo)

	switch eo.display {
	case displayTerminal:
		v := view.NewViewTerminal(eo.template)
		s.RegisterViewer(v)
		v.Start()
		s.Close()
	case displayWindow:
		v, err := view.NewWindow(eo.scale, eo.template)
		if err != nil {
			log.Fatal(err)
		}
		s.RegisterViewer(v)
		v.Start()
		s.Close()
	default:
		v := view.NewConsoleOut(eo.every, true)
		s.RegisterViewer(v)
		v.Start()
		s.Run()
		for st := range stateCh {
			if st.RunningMode == simulation.RunningStateFinished {
				break
			}
		}
		s.Sync()
		s.Close()
	}
}

//settle populates the universe according to the flags
func settle(s *simulation.Simulation, eo *EnvOptions) {
	switch {
	case eo.random:
		s.SettleWithRandomData()
	case eo.noise:
		s.SettleWithNoise()
	case eo.cells != "":
		cells, err := pattern.Parse(eo.cells)
		if err != nil {
			log.Fatal(err)
		}
		s.Settle(cells)
	default:
		s.SettleTemplate(eo.template)
	}
	s.Sync()
}

func initOptions() (eo *EnvOptions, so *simulation.Options) {

	def := simulation.DefaultOptions()
	so = &def
	eo = &EnvOptions{
		display:  displayConsole,
		policy:   so.Policy.String(),
		strategy: so.Strategy.String(),
		template: "starter",
		every:    10,
		scale:    8,
	}
	templates := pattern.Builtin().Names()

	flaggy.SetName("deltalife")
	flaggy.SetDescription("\"The Life\" game simulation")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.Int(&so.Width, "x", "width", "Width of a simulation field")
	flaggy.Int(&so.Height, "y", "height", "Height of a simulation field")
	flaggy.Duration(&so.Interval, "i", "interval", "Simulation speed (interval between the steps) in format the number with 'ms' suffix, for example 150ms")
	flaggy.Int(&so.MaxSteps, "s", "maxSteps", "Limit the simulation to maxSteps, 0 is unlimited")
	flaggy.Int64(&so.Seed, "", "seed", "Seed for the random and noise data, 0 is time based")
	flaggy.Float64(&so.Density, "", "density", "Probability of a live cell for the random data")
	flaggy.Float64(&so.NoiseThreshold, "", "threshold", "Noise level above which a cell is alive")
	flaggy.String(&eo.display, "d", "display", "Display to use ["+strings.Join([]string{displayConsole, displayTerminal, displayWindow}, "|")+"]")
	flaggy.String(&eo.policy, "b", "boundary", "Boundary policy [edge|torus]")
	flaggy.String(&eo.strategy, "e", "engine", "Tick strategy [fullscan|candidate]")
	flaggy.String(&eo.template, "t", "template", "Template to settle ["+strings.Join(templates, "|")+"]")
	flaggy.String(&eo.cells, "c", "cells", "Cells to settle as row,col;row,col")
	flaggy.Bool(&eo.random, "r", "random", "Settle with random data")
	flaggy.Bool(&eo.noise, "n", "noise", "Settle with Perlin noise")
	flaggy.Bool(&eo.traceTick, "", "trace", "Log the duration of every tick")
	flaggy.Int(&eo.every, "", "every", "Print the progress every N steps (console display)")
	flaggy.Int(&eo.scale, "", "scale", "Pixels per cell (window display)")

	flaggy.Parse()

	var err error
	if so.Policy, err = universe.ParsePolicy(eo.policy); err != nil {
		flaggy.ShowHelpAndExit(err.Error())
	}
	if so.Strategy, err = universe.ParseStrategy(eo.strategy); err != nil {
		flaggy.ShowHelpAndExit(err.Error())
	}
	switch eo.display {
	case displayConsole, displayTerminal, displayWindow:
	default:
		flaggy.ShowHelpAndExit(fmt.Sprintf("unknown display %q", eo.display))
	}
	if err = universe.CheckDimensions(so.Policy, so.Width, so.Height); err != nil {
		flaggy.ShowHelpAndExit(err.Error())
	}

	return
}
