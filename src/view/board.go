package view

import (
	"deltalife/src/simulation"
)

//Board is the viewer side copy of the universe.
//It is rebuilt from the full frames and patched with the deltas of the incremental ones.
type Board struct {
	Width  int
	Height int
	Cells  [][]bool
}

//NewBoard allocates the empty board
func NewBoard(width int, height int) *Board {
	b := &Board{}
	b.reset(width, height)
	return b
}

//Apply updates the board with the frame and returns the changed positions as row, column pairs.
//A full frame or a frame with the new dimensions returns nil, everything should be redrawn.
func (b *Board) Apply(f simulation.Frame) (changed []int) {
	if f.Full || f.Width != b.Width || f.Height != b.Height {
		b.reset(f.Width, f.Height)
		for _, c := range f.Cells {
			b.set(c.Row, c.Column, true)
		}
		return nil
	}
	for i := 0; i+1 < len(f.Alive); i += 2 {
		if b.set(f.Alive[i], f.Alive[i+1], true) {
			changed = append(changed, f.Alive[i], f.Alive[i+1])
		}
	}
	for i := 0; i+1 < len(f.Dead); i += 2 {
		if b.set(f.Dead[i], f.Dead[i+1], false) {
			changed = append(changed, f.Dead[i], f.Dead[i+1])
		}
	}
	return changed
}

//Alive reports whether the cell at row, column is alive
func (b *Board) Alive(row int, column int) bool {
	if row < 0 || row >= b.Height || column < 0 || column >= b.Width {
		return false
	}
	return b.Cells[row][column]
}

//set changes the cell and reports whether it was inside the board
func (b *Board) set(row int, column int, alive bool) bool {
	if row < 0 || row >= b.Height || column < 0 || column >= b.Width {
		return false
	}
	b.Cells[row][column] = alive
	return true
}

func (b *Board) reset(width int, height int) {
	b.Width, b.Height = width, height
	b.Cells = make([][]bool, height)
	buf := make([]bool, width*height)
	for i := range b.Cells {
		start := width * i
		b.Cells[i] = buf[start : start+width : start+width]
	}
}
