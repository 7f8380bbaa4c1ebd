// pkg/grid/grid.go
package grid

import (
	"fmt"

	"go-td-core/pkg/geom"
)

// CellType classifies a cell.
type CellType int

const (
	Buildable CellType = iota
	Path
	Occupied
	Blocked
)

func (t CellType) String() string {
	switch t {
	case Buildable:
		return "Buildable"
	case Path:
		return "Path"
	case Occupied:
		return "Occupied"
	case Blocked:
		return "Blocked"
	}
	return fmt.Sprintf("CellType(%d)", int(t))
}

// Point is a grid coordinate.
type Point struct {
	X, Y int
}

type Cell struct {
	X, Y int
	Type CellType
}

// IsOccupied is derived from the type: only Buildable cells are free.
func (c Cell) IsOccupied() bool {
	return c.Type != Buildable
}

// ChangeListener is told about every cell type change.
type ChangeListener func(x, y int, from, to CellType)

// Grid is a width x height board of square cells. World X maps to grid X,
// world Z maps to grid Y.
type Grid struct {
	width, height int
	cellSize      float64
	cells         []CellType
	listeners     []ChangeListener
}

// New creates a grid with every cell Buildable.
func New(width, height int, cellSize float64) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid grid size %dx%d", width, height)
	}
	if cellSize <= 0 {
		return nil, fmt.Errorf("invalid cell size %v", cellSize)
	}
	return &Grid{
		width:    width,
		height:   height,
		cellSize: cellSize,
		cells:    make([]CellType, width*height),
	}, nil
}

func (g *Grid) Width() int                { return g.width }
func (g *Grid) Height() int               { return g.height }
func (g *Grid) CellSize() float64         { return g.cellSize }
func (g *Grid) OnChange(l ChangeListener) { g.listeners = append(g.listeners, l) }

// WorldToGrid returns the cell containing pos. The result may be outside
// the grid; check it with IsValidPosition.
func (g *Grid) WorldToGrid(pos geom.Vec3) (int, int) {
	return geom.FloorInt(pos.X / g.cellSize), geom.FloorInt(pos.Z / g.cellSize)
}

// GridToWorld returns the centre of cell (x, y) at height 0.
func (g *Grid) GridToWorld(x, y int) geom.Vec3 {
	return geom.Vec3{
		X: (float64(x) + 0.5) * g.cellSize,
		Z: (float64(y) + 0.5) * g.cellSize,
	}
}

func (g *Grid) IsValidPosition(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.width && y < g.height
}

func (g *Grid) Cell(x, y int) (Cell, bool) {
	if !g.IsValidPosition(x, y) {
		return Cell{}, false
	}
	return Cell{X: x, Y: y, Type: g.cells[g.index(x, y)]}, true
}

// IsOccupied reports true for Path, Occupied and Blocked cells and for
// positions outside the grid.
func (g *Grid) IsOccupied(x, y int) bool {
	c, ok := g.Cell(x, y)
	return !ok || c.IsOccupied()
}

// CanBuildAt reports whether a tower may be placed on (x, y).
func (g *Grid) CanBuildAt(x, y int) bool {
	c, ok := g.Cell(x, y)
	return ok && c.Type == Buildable
}

// TryOccupy marks a Buildable cell Occupied.
func (g *Grid) TryOccupy(x, y int) bool {
	if !g.CanBuildAt(x, y) {
		return false
	}
	g.set(x, y, Occupied)
	return true
}

// Free turns an Occupied cell back into Buildable. Other types are left alone.
func (g *Grid) Free(x, y int) bool {
	c, ok := g.Cell(x, y)
	if !ok || c.Type != Occupied {
		return false
	}
	g.set(x, y, Buildable)
	return true
}

// SetCellType overwrites the type of (x, y). Listeners are notified only
// when the type actually changes.
func (g *Grid) SetCellType(x, y int, t CellType) bool {
	if !g.IsValidPosition(x, y) {
		return false
	}
	g.set(x, y, t)
	return true
}

// Count returns how many cells have type t.
func (g *Grid) Count(t CellType) int {
	n := 0
	for _, c := range g.cells {
		if c == t {
			n++
		}
	}
	return n
}

func (g *Grid) set(x, y int, t CellType) {
	i := g.index(x, y)
	from := g.cells[i]
	if from == t {
		return
	}
	g.cells[i] = t
	for _, l := range g.listeners {
		l(x, y, from, t)
	}
}

func (g *Grid) index(x, y int) int {
	return y*g.width + x
}
