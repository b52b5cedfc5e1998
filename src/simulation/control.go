package simulation

import (
	"fmt"
	"time"

	"deltalife/src/timing"
	"deltalife/src/universe"
)

//the functions below are executed by the control goroutine only

//settle places the cells and refreshes the views with the full frame
func (s *Simulation) settle(cells []universe.Cell) {
	s.u.Lock()
	s.u.Seed(cells)
	f := s.fullFrame()
	s.u.Unlock()
	s.publish(f)
}

//settleGenerated clears the universe and settles it with the generated cells
//ignored while the simulation is running
func (s *Simulation) settleGenerated(gen func(width int, height int) []universe.Cell) {
	s.controlCh <- func() {
		mode := s.Status().RunningMode
		if mode != RunningStateManual && mode != RunningStateFinished {
			return
		}
		s.clear()
		w, h := s.Dimensions()
		s.settle(gen(w, h))
	}
}

//resize replaces both dimensions and resets the counters
func (s *Simulation) resize(width int, height int) error {
	if err := universe.CheckDimensions(s.options.Policy, width, height); err != nil {
		return fmt.Errorf("resize to %dx%d: %w", width, height, err)
	}
	s.u.Lock()
	err := s.u.SetWidth(width)
	if err == nil {
		err = s.u.SetHeight(height)
	}
	s.u.Unlock()
	if err != nil {
		return err
	}
	s.clear()
	return nil
}

//publish stores the live cells count from the frame and refreshes the views
func (s *Simulation) publish(f Frame) {
	s.state.Lock()
	s.state.LiveCells = f.LiveCells
	f.Status = s.state.Status
	s.state.Unlock()
	s.refreshView(f)
}

//fullFrame captures the whole universe, the universe lock must be held
func (s *Simulation) fullFrame() Frame {
	w, h := s.u.Dimensions()
	f := Frame{Width: w, Height: h, Full: true, Cells: s.u.CurrentCells()}
	f.LiveCells = len(f.Cells)
	return f
}

//deltaFrame captures the last changes, the universe lock must be held
func (s *Simulation) deltaFrame() Frame {
	w, h := s.u.Dimensions()
	f := Frame{Width: w, Height: h, Alive: s.u.DeltaAlive(), Dead: s.u.DeltaDead()}
	f.LiveCells = s.u.Population()
	return f
}

//switchRunningState switch the state of the simulation to RunningState
//also writes the new state to the stateCh to signal upper control software
func (s *Simulation) switchRunningState(to RunningState) {
	s.state.Lock()
	s.state.RunningMode = to
	st := s.state.Status
	s.state.Unlock()
	if s.stateCh != nil {
		s.stateCh <- st
	}
}

//run starts the simulation cycle
//the cycle stops on Stop() calling or when the boundary conditions are reached
func (s *Simulation) run() {
	mode := s.Status().RunningMode
	if mode == RunningStateRun {
		return
	}
	s.switchRunningState(RunningStateRun)
	go func() {
		skipped := 0
		done := make(chan bool)
		for {
			mode := s.Status().RunningMode
			if mode != RunningStateRun && mode != RunningStateStep {
				break
			}
			if skipped > s.options.MaxSkippedTicks {
				select {
				case s.controlCh <- func() { s.switchRunningState(RunningStateFinished) }:
				case <-s.quit:
				}
				return
			}
			//skip the tick if the universe is still in the calculation mode
			if mode != RunningStateStep {
				skipped = 0
				select {
				case s.controlCh <- func() {
					//Stop could come in between
					if s.Status().RunningMode == RunningStateRun {
						s.step()
					}
					done <- true
				}:
					<-done
				case <-s.quit:
					return
				}
			} else {
				skipped++
			}
			if s.options.Interval > 0 {
				select {
				case <-time.After(s.options.Interval):
				case <-s.quit:
					return
				}
			}
		}
	}()
}

//stop stops the running cycle
func (s *Simulation) stop() {
	if s.Status().RunningMode == RunningStateRun {
		s.switchRunningState(RunningStateManual)
	}
}

//step does the one generation for the entire universe
//the simulation is finished when MaxSteps is reached, all cells died or nothing changed
func (s *Simulation) step() {
	st := s.Status()
	rm := st.RunningMode
	if rm == RunningStateFinished {
		rm = RunningStateManual
	}
	maxIter := s.options.MaxSteps
	if maxIter != 0 && st.IterationNum >= maxIter {
		s.switchRunningState(RunningStateFinished)
		return
	}

	s.switchRunningState(RunningStateStep)
	s.u.Lock()
	d := timing.Measure(TickLabel, s.recorder, s.u.Tick)
	f := s.deltaFrame()
	s.u.Unlock()

	s.state.Lock()
	s.state.IterationNum++
	s.state.IterationTime = d
	iter := s.state.IterationNum
	s.state.Unlock()

	finished := f.LiveCells == 0 || (len(f.Alive) == 0 && len(f.Dead) == 0) || (maxIter != 0 && iter >= maxIter)
	if finished {
		s.switchRunningState(RunningStateFinished)
	} else {
		s.switchRunningState(rm)
	}
	s.publish(f)
}

//clear clears the universe data, reset all counters
func (s *Simulation) clear() {
	s.u.Lock()
	s.u.Clear()
	s.u.ClearDeltas()
	f := s.fullFrame()
	s.u.Unlock()

	s.state.Lock()
	s.state.IterationNum = 0
	s.state.IterationTime = 0
	s.state.Unlock()
	s.switchRunningState(RunningStateManual)
	s.publish(f)
}

//refreshView calls Refresh event for all registered views
func (s *Simulation) refreshView(f Frame) {
	for _, v := range s.views {
		v.Refresh(f)
	}
}
