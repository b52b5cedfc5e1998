package universe

import "fmt"

//Strategy selects the algorithm used by Tick, all strategies produce the same result
type Strategy int

const (
	//FullScan walks the grid once, classifies every cell and applies the recorded changes at the end
	FullScan Strategy = iota
	//CandidateScan builds the next generation in a separate buffer and diffs it against the current one
	CandidateScan
)

var strategyNames = map[Strategy]string{
	FullScan:      "fullscan",
	CandidateScan: "candidate",
}

func (s Strategy) String() string {
	if n, ok := strategyNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

//ParseStrategy converts the strategy name ("fullscan" or "candidate") to Strategy
func ParseStrategy(name string) (Strategy, error) {
	for s, n := range strategyNames {
		if n == name {
			return s, nil
		}
	}
	return FullScan, fmt.Errorf("unknown tick strategy %q", name)
}

//Tick advances the universe by one generation (B3/S23).
//The deltas are replaced with the cells changed by this generation, in row-major order.
func (u *Universe) Tick() {
	u.ClearDeltas()
	if u.strategy == CandidateScan {
		u.candidateScan()
		return
	}
	u.fullScan()
}

//nextState is the life rule
func nextState(alive bool, liveNeighbours int) bool {
	return liveNeighbours == 3 || (alive && liveNeighbours == 2)
}

//fullScan classifies each cell against the current generation and records
//the transitions as pending patches, the live set is patched after the walk
func (u *Universe) fullScan() {
	for row := 0; row < u.height; row++ {
		for col := 0; col < u.width; col++ {
			c := Cell{row, col}
			_, alive := u.alive[c]
			next := nextState(alive, u.liveNeighborCount(c))
			switch {
			case next && !alive:
				u.newAlive = append(u.newAlive, row, col)
			case !next && alive:
				u.newDead = append(u.newDead, row, col)
			}
		}
	}
	for i := 0; i < len(u.newAlive); i += 2 {
		u.alive[Cell{u.newAlive[i], u.newAlive[i+1]}] = struct{}{}
	}
	for i := 0; i < len(u.newDead); i += 2 {
		delete(u.alive, Cell{u.newDead[i], u.newDead[i+1]})
	}
}

//candidateScan computes the whole next generation into the buffer,
//then swaps the buffer with the live set
func (u *Universe) candidateScan() {
	//survivors
	for c := range u.alive {
		if n := u.liveNeighborCount(c); n == 2 || n == 3 {
			u.buffer[c] = struct{}{}
		}
	}
	//births
	for row := 0; row < u.height; row++ {
		for col := 0; col < u.width; col++ {
			c := Cell{row, col}
			if _, ok := u.alive[c]; ok {
				continue
			}
			if u.liveNeighborCount(c) == 3 {
				u.buffer[c] = struct{}{}
			}
		}
	}

	u.newAlive = appendPairs(u.newAlive, difference(u.buffer, u.alive))
	u.newDead = appendPairs(u.newDead, difference(u.alive, u.buffer))

	u.alive, u.buffer = u.buffer, u.alive
	for c := range u.buffer {
		delete(u.buffer, c)
	}
}

//difference returns the cells of a missing in b, sorted in row-major order
func difference(a map[Cell]struct{}, b map[Cell]struct{}) []Cell {
	var d []Cell
	for c := range a {
		if _, ok := b[c]; !ok {
			d = append(d, c)
		}
	}
	sortCells(d)
	return d
}

func appendPairs(dst []int, cells []Cell) []int {
	for _, c := range cells {
		dst = append(dst, c.Row, c.Column)
	}
	return dst
}
