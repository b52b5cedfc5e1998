//Package pattern holds the seeding templates and the generators for random universes.
package pattern

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"deltalife/src/universe"
)

//Template represent the seeding template which can used to settle the universe with predefined data
type Template struct {
	Name     string          //template name
	Descr    string          //template descr
	Cells    []universe.Cell //live cells, row and column
	Anchored bool            //settled at its own coordinates instead of the grid centre
}

//Offset returns the copy of the template moved by dRow rows and dCol columns
func (t Template) Offset(dRow int, dCol int) Template {
	cells := make([]universe.Cell, len(t.Cells))
	for i, c := range t.Cells {
		cells[i] = universe.Cell{Row: c.Row + dRow, Column: c.Column + dCol}
	}
	return Template{Name: t.Name, Descr: t.Descr, Cells: cells, Anchored: t.Anchored}
}

//Bounds returns the first and the last row and column the template occupies, inclusive.
//An empty template has zero bounds.
func (t Template) Bounds() (top int, left int, bottom int, right int) {
	for i, c := range t.Cells {
		if i == 0 {
			top, left, bottom, right = c.Row, c.Column, c.Row, c.Column
			continue
		}
		if c.Row < top {
			top = c.Row
		}
		if c.Row > bottom {
			bottom = c.Row
		}
		if c.Column < left {
			left = c.Column
		}
		if c.Column > right {
			right = c.Column
		}
	}
	return
}

//Size returns the number of rows and columns of the template bounding box
func (t Template) Size() (rows int, cols int) {
	if len(t.Cells) == 0 {
		return 0, 0
	}
	top, left, bottom, right := t.Bounds()
	return bottom - top + 1, right - left + 1
}

//Centered returns the template moved to the middle of the width x height grid
func (t Template) Centered(width int, height int) Template {
	top, left, _, _ := t.Bounds()
	rows, cols := t.Size()
	return t.Offset((height-rows)/2-top, (width-cols)/2-left)
}

//Placed returns the template as it should be settled on the width x height grid:
//anchored templates keep their coordinates when they fit, the rest are centered
func (t Template) Placed(width int, height int) Template {
	top, left, bottom, right := t.Bounds()
	if t.Anchored && top >= 0 && left >= 0 && bottom < height && right < width {
		return t
	}
	return t.Centered(width, height)
}

//Library is the named template storage
type Library map[string]Template

//Add stores the template under its name, replacing the previous one
func (l Library) Add(t Template) {
	l[t.Name] = t
}

//Get returns the template by name
func (l Library) Get(name string) (Template, bool) {
	t, ok := l[name]
	return t, ok
}

//Names returns the sorted template names
func (l Library) Names() []string {
	names := make([]string, 0, len(l))
	for k := range l {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func cells(rc ...int) []universe.Cell {
	res := make([]universe.Cell, 0, len(rc)/2)
	for i := 0; i+1 < len(rc); i += 2 {
		res = append(res, universe.Cell{Row: rc[i], Column: rc[i+1]})
	}
	return res
}

//Builtin returns a fresh library with the well-known patterns
func Builtin() Library {
	l := Library{}
	l.Add(Template{"block", "2x2 still life", cells(0, 0, 0, 1, 1, 0, 1, 1), false})
	l.Add(Template{"beehive", "still life", cells(0, 1, 0, 2, 1, 0, 1, 3, 2, 1, 2, 2), false})
	l.Add(Template{"loaf", "still life", cells(0, 1, 0, 2, 1, 0, 1, 3, 2, 1, 2, 3, 3, 2), false})
	l.Add(Template{"blinker", "period 2 oscillator", cells(0, 0, 0, 1, 0, 2), false})
	l.Add(Template{"toad", "period 2 oscillator", cells(0, 1, 0, 2, 0, 3, 1, 0, 1, 1, 1, 2), false})
	l.Add(Template{"beacon", "period 2 oscillator", cells(0, 0, 0, 1, 1, 0, 2, 3, 3, 2, 3, 3), false})
	l.Add(Template{"glider", "the smallest spaceship", cells(0, 1, 1, 2, 2, 0, 2, 1, 2, 2), false})
	l.Add(Template{"starter", "glider placed for a 32x32 board", cells(10, 13, 11, 13, 12, 13, 11, 11, 12, 12), true})
	l.Add(Template{"sample", "the block with a few neighbours, used by the benchmarks", cells(1, 1, 2, 1, 1, 2, 2, 2, 3, 3, 2, 4, 3, 4, 3, 5), false})
	return l
}

//Parse reads the cells written as "row,col;row,col;..."
func Parse(s string) ([]universe.Cell, error) {
	var res []universe.Cell
	for _, p := range strings.Split(s, ";") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		rc := strings.Split(p, ",")
		if len(rc) != 2 {
			return nil, fmt.Errorf("pattern: bad cell %q, want row,col", p)
		}
		row, err := strconv.Atoi(strings.TrimSpace(rc[0]))
		if err != nil {
			return nil, fmt.Errorf("pattern: bad row in %q: %w", p, err)
		}
		col, err := strconv.Atoi(strings.TrimSpace(rc[1]))
		if err != nil {
			return nil, fmt.Errorf("pattern: bad column in %q: %w", p, err)
		}
		res = append(res, universe.Cell{Row: row, Column: col})
	}
	return res, nil
}
