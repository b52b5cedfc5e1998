package universe

import (
	"errors"
	"fmt"
	"sort"
)

//ErrInvalidDimension is returned when a width or height is not positive,
//or is below MinTorusSize for the Toroidal policy
var ErrInvalidDimension = errors.New("universe: invalid dimension")

//MinTorusSize is the smallest toroidal dimension where the 8 neighbours of a cell are distinct
const MinTorusSize = 3

//Cell is a grid position, Row counts from the top, Column from the left
type Cell struct {
	Row    int
	Column int
}

//Universe is the Game of Life engine.
//It owns the grid dimensions, the set of live cells and the deltas produced by the last change.
//A Universe is not safe for concurrent use, the host serializes the access.
type Universe struct {
	width    int
	height   int
	policy   Policy
	strategy Strategy

	alive  map[Cell]struct{}
	buffer map[Cell]struct{} //next generation for CandidateScan, empty between ticks

	newAlive []int
	newDead  []int
}

//Option configures the Universe on construction
type Option func(u *Universe)

//WithPolicy sets the boundary policy
func WithPolicy(p Policy) Option {
	return func(u *Universe) { u.policy = p }
}

//WithStrategy sets the tick strategy
func WithStrategy(s Strategy) Option {
	return func(u *Universe) { u.strategy = s }
}

//New creates an empty universe with the given dimensions.
//The default boundary policy is HardEdge and the default strategy is FullScan.
func New(width int, height int, opts ...Option) (*Universe, error) {
	u := &Universe{
		width:  width,
		height: height,
		alive:  map[Cell]struct{}{},
		buffer: map[Cell]struct{}{},
	}
	for _, o := range opts {
		o(u)
	}
	if err := CheckDimensions(u.policy, width, height); err != nil {
		return nil, err
	}
	return u, nil
}

//MustNew is like New but panics on invalid dimensions
func MustNew(width int, height int, opts ...Option) *Universe {
	u, err := New(width, height, opts...)
	if err != nil {
		panic(err)
	}
	return u
}

//Seed adds the cells to the live set, cells outside the grid are skipped
func (u *Universe) Seed(cells []Cell) {
	for _, c := range cells {
		if !u.contains(c) {
			continue
		}
		u.alive[c] = struct{}{}
	}
}

//Toggle flips the state of the cell at row, column and records the change in the deltas.
//The deltas are not cleared here, call ClearDeltas to see only the effect of this toggle.
func (u *Universe) Toggle(row int, column int) {
	c := Cell{row, column}
	if !u.contains(c) {
		return
	}
	if _, ok := u.alive[c]; ok {
		delete(u.alive, c)
		u.newDead = append(u.newDead, row, column)
		return
	}
	u.alive[c] = struct{}{}
	u.newAlive = append(u.newAlive, row, column)
}

//ClearDeltas empties both delta lists
func (u *Universe) ClearDeltas() {
	u.newAlive = u.newAlive[:0]
	u.newDead = u.newDead[:0]
}

//SetWidth replaces the width and kills all cells
func (u *Universe) SetWidth(width int) error {
	if err := u.checkDimension("width", width); err != nil {
		return err
	}
	u.Clear()
	u.width = width
	return nil
}

//SetHeight replaces the height and kills all cells
func (u *Universe) SetHeight(height int) error {
	if err := u.checkDimension("height", height); err != nil {
		return err
	}
	u.Clear()
	u.height = height
	return nil
}

//Clear kills all cells, the dimensions are kept
func (u *Universe) Clear() {
	u.alive = map[Cell]struct{}{}
}

//CurrentCells returns a copy of the live set sorted in row-major order
func (u *Universe) CurrentCells() []Cell {
	cells := make([]Cell, 0, len(u.alive))
	for c := range u.alive {
		cells = append(cells, c)
	}
	sortCells(cells)
	return cells
}

//IsAlive reports whether the cell at row, column is alive
func (u *Universe) IsAlive(row int, column int) bool {
	_, ok := u.alive[Cell{row, column}]
	return ok
}

//Population returns the number of live cells
func (u *Universe) Population() int {
	return len(u.alive)
}

//DeltaAlive returns the cells born by the last tick (or toggled alive) as row, column pairs
func (u *Universe) DeltaAlive() []int {
	return append([]int(nil), u.newAlive...)
}

//DeltaDead returns the cells killed by the last tick (or toggled dead) as row, column pairs
func (u *Universe) DeltaDead() []int {
	return append([]int(nil), u.newDead...)
}

//Dimensions returns the grid width and height
func (u *Universe) Dimensions() (width int, height int) {
	return u.width, u.height
}

//Policy returns the boundary policy the universe was created with
func (u *Universe) Policy() Policy {
	return u.policy
}

//Strategy returns the tick strategy the universe was created with
func (u *Universe) Strategy() Strategy {
	return u.strategy
}

//contains reports whether c lies inside the grid
func (u *Universe) contains(c Cell) bool {
	return c.Row >= 0 && c.Row < u.height && c.Column >= 0 && c.Column < u.width
}

//CheckDimensions reports whether a width x height grid is valid for the policy
func CheckDimensions(p Policy, width int, height int) error {
	if err := checkDimension(p, "width", width); err != nil {
		return err
	}
	return checkDimension(p, "height", height)
}

func (u *Universe) checkDimension(name string, v int) error {
	return checkDimension(u.policy, name, v)
}

func checkDimension(p Policy, name string, v int) error {
	if v <= 0 {
		return fmt.Errorf("%s %d must be positive: %w", name, v, ErrInvalidDimension)
	}
	if p == Toroidal && v < MinTorusSize {
		return fmt.Errorf("%s %d is below %d for the torus: %w", name, v, MinTorusSize, ErrInvalidDimension)
	}
	return nil
}

func sortCells(cells []Cell) {
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Row != cells[j].Row {
			return cells[i].Row < cells[j].Row
		}
		return cells[i].Column < cells[j].Column
	})
}
