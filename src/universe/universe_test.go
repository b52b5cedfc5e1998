package universe

import (
	"errors"
	"reflect"
	"testing"
)

func TestNewRejectsInvalidDimensions(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"zero width", 0, 5},
		{"zero height", 5, 0},
		{"negative width", -1, 5},
		{"negative height", 5, -3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := New(tt.width, tt.height)
			if !errors.Is(err, ErrInvalidDimension) {
				t.Fatalf("New(%d, %d) error = %v, want ErrInvalidDimension", tt.width, tt.height, err)
			}
			if u != nil {
				t.Fatalf("New(%d, %d) returned a universe on error", tt.width, tt.height)
			}
		})
	}
}

func TestNewIsEmpty(t *testing.T) {
	u := MustNew(7, 4)
	if w, h := u.Dimensions(); w != 7 || h != 4 {
		t.Fatalf("Dimensions() = %d, %d, want 7, 4", w, h)
	}
	if u.Population() != 0 || len(u.DeltaAlive()) != 0 || len(u.DeltaDead()) != 0 {
		t.Fatalf("new universe is not empty")
	}
	if u.Policy() != HardEdge || u.Strategy() != FullScan {
		t.Fatalf("defaults = %v, %v, want edge, fullscan", u.Policy(), u.Strategy())
	}
}

func TestMustNewPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("MustNew(0, 0) did not panic")
		}
	}()
	MustNew(0, 0)
}

func TestSeedSkipsOutOfRange(t *testing.T) {
	u := MustNew(4, 3)
	u.Seed([]Cell{{0, 0}, {2, 3}, {3, 0}, {0, 4}, {-1, 1}, {0, 0}})
	want := []Cell{{0, 0}, {2, 3}}
	if got := u.CurrentCells(); !reflect.DeepEqual(got, want) {
		t.Fatalf("CurrentCells() = %v, want %v", got, want)
	}
}

func TestToggleSymmetry(t *testing.T) {
	u := MustNew(5, 5)
	u.Toggle(1, 2)
	if !u.IsAlive(1, 2) {
		t.Fatal("cell (1,2) is not alive after the first toggle")
	}
	if got := u.DeltaAlive(); !reflect.DeepEqual(got, []int{1, 2}) {
		t.Fatalf("DeltaAlive() = %v, want [1 2]", got)
	}
	u.ClearDeltas()
	u.Toggle(1, 2)
	if u.IsAlive(1, 2) {
		t.Fatal("cell (1,2) is alive after the second toggle")
	}
	if got := u.DeltaDead(); !reflect.DeepEqual(got, []int{1, 2}) {
		t.Fatalf("DeltaDead() = %v, want [1 2]", got)
	}
	if len(u.DeltaAlive()) != 0 {
		t.Fatalf("DeltaAlive() = %v after ClearDeltas, want empty", u.DeltaAlive())
	}
}

func TestToggleAccumulatesDeltas(t *testing.T) {
	u := MustNew(5, 5)
	u.Toggle(0, 0)
	u.Toggle(4, 4)
	if got := u.DeltaAlive(); !reflect.DeepEqual(got, []int{0, 0, 4, 4}) {
		t.Fatalf("DeltaAlive() = %v, want [0 0 4 4]", got)
	}
}

func TestToggleOutOfRangeIsNoop(t *testing.T) {
	for _, p := range []Policy{HardEdge, Toroidal} {
		u := MustNew(3, 3, WithPolicy(p))
		u.Toggle(3, 0)
		u.Toggle(0, -1)
		if u.Population() != 0 || len(u.DeltaAlive()) != 0 {
			t.Fatalf("%v: out of range toggle changed the universe", p)
		}
	}
}

func TestResizeClears(t *testing.T) {
	resizes := map[string]func(u *Universe) error{
		"width grow":    func(u *Universe) error { return u.SetWidth(20) },
		"width shrink":  func(u *Universe) error { return u.SetWidth(2) },
		"width same":    func(u *Universe) error { return u.SetWidth(8) },
		"height grow":   func(u *Universe) error { return u.SetHeight(20) },
		"height shrink": func(u *Universe) error { return u.SetHeight(2) },
	}
	for name, resize := range resizes {
		t.Run(name, func(t *testing.T) {
			u := MustNew(8, 8)
			u.Seed([]Cell{{1, 1}, {1, 2}, {6, 6}})
			if err := resize(u); err != nil {
				t.Fatalf("resize: %v", err)
			}
			if u.Population() != 0 {
				t.Fatalf("Population() = %d after resize, want 0", u.Population())
			}
		})
	}
}

func TestResizeRejectsInvalid(t *testing.T) {
	u := MustNew(8, 8)
	u.Seed([]Cell{{1, 1}})
	if err := u.SetWidth(0); !errors.Is(err, ErrInvalidDimension) {
		t.Fatalf("SetWidth(0) error = %v", err)
	}
	if err := u.SetHeight(-2); !errors.Is(err, ErrInvalidDimension) {
		t.Fatalf("SetHeight(-2) error = %v", err)
	}
	if w, h := u.Dimensions(); w != 8 || h != 8 || u.Population() != 1 {
		t.Fatalf("rejected resize modified the universe")
	}
}

func TestClearKeepsDimensions(t *testing.T) {
	u := MustNew(6, 3)
	u.Seed([]Cell{{0, 0}, {2, 5}})
	u.Clear()
	if w, h := u.Dimensions(); w != 6 || h != 3 {
		t.Fatalf("Dimensions() = %d, %d, want 6, 3", w, h)
	}
	if u.Population() != 0 {
		t.Fatalf("Population() = %d, want 0", u.Population())
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	u := MustNew(4, 4)
	u.Seed([]Cell{{1, 1}})
	u.Toggle(2, 2)
	cells := u.CurrentCells()
	cells[0] = Cell{3, 3}
	alive := u.DeltaAlive()
	alive[0] = 0
	if !u.IsAlive(1, 1) || u.IsAlive(3, 3) {
		t.Fatal("mutating the snapshot changed the live set")
	}
	if got := u.DeltaAlive(); !reflect.DeepEqual(got, []int{2, 2}) {
		t.Fatalf("DeltaAlive() = %v, want [2 2]", got)
	}
}

func TestParsePolicy(t *testing.T) {
	for _, p := range []Policy{HardEdge, Toroidal} {
		got, err := ParsePolicy(p.String())
		if err != nil || got != p {
			t.Fatalf("ParsePolicy(%q) = %v, %v", p.String(), got, err)
		}
	}
	if _, err := ParsePolicy("sphere"); err == nil {
		t.Fatal("ParsePolicy(sphere) succeeded")
	}
}

func TestTorusRejectsNarrowGrids(t *testing.T) {
	for _, dims := range [][2]int{{1, 5}, {2, 5}, {5, 1}, {5, 2}} {
		if _, err := New(dims[0], dims[1], WithPolicy(Toroidal)); !errors.Is(err, ErrInvalidDimension) {
			t.Fatalf("New(%d, %d) torus error = %v, want ErrInvalidDimension", dims[0], dims[1], err)
		}
		if _, err := New(dims[0], dims[1]); err != nil {
			t.Fatalf("New(%d, %d) edge error = %v", dims[0], dims[1], err)
		}
	}

	u := MustNew(MinTorusSize, MinTorusSize, WithPolicy(Toroidal))
	u.Seed([]Cell{{1, 1}})
	if err := u.SetWidth(2); !errors.Is(err, ErrInvalidDimension) {
		t.Fatalf("SetWidth(2) error = %v", err)
	}
	if err := u.SetHeight(1); !errors.Is(err, ErrInvalidDimension) {
		t.Fatalf("SetHeight(1) error = %v", err)
	}
	if w, h := u.Dimensions(); w != 3 || h != 3 || u.Population() != 1 {
		t.Fatal("rejected torus resize modified the universe")
	}
}

func TestTorusNeighboursAreDistinct(t *testing.T) {
	u := MustNew(MinTorusSize, MinTorusSize, WithPolicy(Toroidal))
	u.Seed([]Cell{{1, 1}})
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			want := 1
			if row == 1 && col == 1 {
				want = 0
			}
			if n := u.liveNeighborCount(Cell{row, col}); n != want {
				t.Fatalf("count(%d,%d) = %d, want %d", row, col, n, want)
			}
		}
	}
}
