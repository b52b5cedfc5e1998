package universe

import "fmt"

//Policy describes what lies beyond the grid edges
type Policy int

const (
	//HardEdge - nothing lives outside the grid, edge cells have fewer neighbours
	HardEdge Policy = iota
	//Toroidal - the grid wraps around, every edge touches the opposite one
	Toroidal
)

var policyNames = map[Policy]string{
	HardEdge: "edge",
	Toroidal: "torus",
}

func (p Policy) String() string {
	if n, ok := policyNames[p]; ok {
		return n
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

//ParsePolicy converts the policy name ("edge" or "torus") to Policy
func ParsePolicy(name string) (Policy, error) {
	for p, n := range policyNames {
		if n == name {
			return p, nil
		}
	}
	return HardEdge, fmt.Errorf("unknown boundary policy %q", name)
}

//liveNeighborCount counts the live cells in the Moore neighbourhood of c.
//It reads the current generation only.
func (u *Universe) liveNeighborCount(c Cell) int {
	count := 0
	for dr := -1; dr < 2; dr++ {
		for dc := -1; dc < 2; dc++ {
			//skip the cell itself
			if dr == 0 && dc == 0 {
				continue
			}
			n := Cell{c.Row + dr, c.Column + dc}
			if u.policy == Toroidal {
				n = u.wrap(n)
			}
			//outside of the grid for HardEdge, never in the live set
			if _, ok := u.alive[n]; ok {
				count++
			}
		}
	}
	return count
}

//wrap applies the toroidal wrapping to c
func (u *Universe) wrap(c Cell) Cell {
	return Cell{
		Row:    (c.Row%u.height + u.height) % u.height,
		Column: (c.Column%u.width + u.width) % u.width,
	}
}
