package grid

import (
	"testing"

	"go-td-core/pkg/geom"
)

func newGrid(t *testing.T, w, h int, size float64) *Grid {
	t.Helper()
	g, err := New(w, h, size)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g
}

func TestNewRejectsBadDimensions(t *testing.T) {
	for _, c := range []struct {
		w, h int
		size float64
	}{{0, 5, 1}, {5, -1, 1}, {5, 5, 0}} {
		if _, err := New(c.w, c.h, c.size); err == nil {
			t.Errorf("New(%d, %d, %v) succeeded", c.w, c.h, c.size)
		}
	}
}

func TestWorldGridRoundTrip(t *testing.T) {
	g := newGrid(t, 10, 8, 2)
	for x := 0; x < g.Width(); x++ {
		for y := 0; y < g.Height(); y++ {
			gx, gy := g.WorldToGrid(g.GridToWorld(x, y))
			if gx != x || gy != y {
				t.Fatalf("round trip (%d,%d) -> (%d,%d)", x, y, gx, gy)
			}
		}
	}
	if x, y := g.WorldToGrid(geom.V3(-0.1, 5, 3.9)); x != -1 || y != 1 {
		t.Errorf("WorldToGrid floors: got (%d,%d)", x, y)
	}
	if c := g.GridToWorld(1, 2); c != geom.V3(3, 0, 5) {
		t.Errorf("GridToWorld(1,2) = %v", c)
	}
}

func TestOccupyAndFree(t *testing.T) {
	g := newGrid(t, 3, 3, 1)
	g.SetCellType(1, 0, Path)
	g.SetCellType(2, 0, Blocked)

	if !g.TryOccupy(0, 0) {
		t.Fatal("TryOccupy on Buildable failed")
	}
	if g.TryOccupy(0, 0) {
		t.Error("TryOccupy succeeded twice")
	}
	for _, p := range []Point{{1, 0}, {2, 0}, {-1, 0}, {3, 3}} {
		if g.TryOccupy(p.X, p.Y) {
			t.Errorf("TryOccupy(%v) succeeded", p)
		}
	}
	if !g.IsOccupied(1, 0) || !g.IsOccupied(2, 0) || !g.IsOccupied(0, 0) || g.IsOccupied(1, 1) {
		t.Error("IsOccupied not derived from cell type")
	}

	if g.Free(1, 0) {
		t.Error("Free changed a Path cell")
	}
	if !g.Free(0, 0) || !g.CanBuildAt(0, 0) {
		t.Error("Free did not restore Buildable")
	}
	if g.Free(0, 0) {
		t.Error("Free succeeded on a Buildable cell")
	}
}

func TestSetCellTypeNotifiesOnChangeOnly(t *testing.T) {
	g := newGrid(t, 2, 2, 1)
	var changes []CellType
	g.OnChange(func(x, y int, from, to CellType) { changes = append(changes, to) })

	g.SetCellType(0, 1, Path)
	g.SetCellType(0, 1, Path)
	g.SetCellType(5, 5, Blocked)
	g.TryOccupy(1, 1)
	g.Free(1, 1)

	want := []CellType{Path, Occupied, Buildable}
	if len(changes) != len(want) {
		t.Fatalf("changes = %v, want %v", changes, want)
	}
	for i := range want {
		if changes[i] != want[i] {
			t.Fatalf("changes = %v, want %v", changes, want)
		}
	}
	if g.Count(Path) != 1 {
		t.Errorf("Count(Path) = %d", g.Count(Path))
	}
}

func TestAStarFollowsWalkableCells(t *testing.T) {
	g := newGrid(t, 4, 3, 1)
	for _, p := range []Point{{0, 0}, {1, 0}, {1, 1}, {1, 2}, {2, 2}, {3, 2}} {
		g.SetCellType(p.X, p.Y, Path)
	}
	onPath := func(c Cell) bool { return c.Type == Path }

	route := g.AStar(Point{0, 0}, Point{3, 2}, onPath)
	if len(route) != 6 {
		t.Fatalf("route = %v, want 6 cells", route)
	}
	if route[0] != (Point{0, 0}) || route[5] != (Point{3, 2}) {
		t.Errorf("route endpoints = %v", route)
	}

	g.SetCellType(1, 1, Buildable)
	if route := g.AStar(Point{0, 0}, Point{3, 2}, onPath); route != nil {
		t.Errorf("route through a gap = %v", route)
	}
}
