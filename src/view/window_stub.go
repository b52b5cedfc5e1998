//go:build !ebiten

package view

import (
	"errors"

	"deltalife/src/simulation"
)

//ErrNoWindow is returned when the binary is built without the window support
var ErrNoWindow = errors.New("the window viewer requires building with the 'ebiten' tag")

//Window is a placeholder for the headless build
type Window struct{}

//NewWindow always fails in the headless build
func NewWindow(int, string) (*Window, error) {
	return nil, ErrNoWindow
}

//Register is a no-op placeholder
func (w *Window) Register(*simulation.Simulation) {}

//Refresh is a no-op placeholder
func (w *Window) Refresh(simulation.Frame) {}

//Start is a no-op placeholder
func (w *Window) Start() {}
