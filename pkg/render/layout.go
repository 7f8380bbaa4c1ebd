// pkg/render/layout.go
package render

import (
	"math"

	"go-td-core/pkg/geom"
)

// Layout maps world XZ coordinates to screen pixels. One world cell of
// CellSize units is CellPixels pixels wide.
type Layout struct {
	OffsetX, OffsetY float64
	CellSize         float64
	CellPixels       float64
}

func (l Layout) scale() float64 {
	if l.CellSize <= 0 {
		return l.CellPixels
	}
	return l.CellPixels / l.CellSize
}

// ToScreen converts a world position to pixels.
func (l Layout) ToScreen(p geom.Vec3) (float32, float32) {
	s := l.scale()
	return float32(l.OffsetX + p.X*s), float32(l.OffsetY + p.Z*s)
}

// ToCell converts a pixel to a grid cell. Points left of or above the board
// map to negative coordinates.
func (l Layout) ToCell(x, y int) (int, int) {
	cx := math.Floor((float64(x) - l.OffsetX) / l.CellPixels)
	cy := math.Floor((float64(y) - l.OffsetY) / l.CellPixels)
	return int(cx), int(cy)
}

// CellRect returns the pixel rectangle of cell (x, y).
func (l Layout) CellRect(x, y int) (float32, float32, float32) {
	return float32(l.OffsetX + float64(x)*l.CellPixels), float32(l.OffsetY + float64(y)*l.CellPixels), float32(l.CellPixels)
}

// Length converts a world distance to pixels.
func (l Layout) Length(d float64) float32 {
	return float32(d * l.scale())
}
