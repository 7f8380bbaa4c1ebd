// pkg/grid/raster.go
package grid

import (
	"fmt"
	"strings"

	"go-td-core/pkg/geom"
)

// RasterPolicy picks how a segment between two cells is turned into cells.
type RasterPolicy int

const (
	// RasterAuto uses axis-first for axis-aligned segments and Bresenham otherwise.
	RasterAuto RasterPolicy = iota
	RasterBresenham
	RasterAxisFirst
)

// ParseRasterPolicy accepts AUTO, BRESENHAM or AXIS_FIRST, case-insensitive.
// An empty string means RasterAuto.
func ParseRasterPolicy(s string) (RasterPolicy, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "AUTO":
		return RasterAuto, nil
	case "BRESENHAM":
		return RasterBresenham, nil
	case "AXIS_FIRST", "AXISFIRST":
		return RasterAxisFirst, nil
	}
	return RasterAuto, fmt.Errorf("unknown raster policy %q", s)
}

// Rasterize returns the 4-connected cells from a to b, both inclusive.
func Rasterize(a, b Point, policy RasterPolicy) []Point {
	switch policy {
	case RasterBresenham:
		return LineBresenham(a, b)
	case RasterAxisFirst:
		return LineAxisFirst(a, b)
	}
	if a.X == b.X || a.Y == b.Y {
		return LineAxisFirst(a, b)
	}
	return LineBresenham(a, b)
}

// LineBresenham walks from a to b one axis step at a time, choosing the
// axis by the accumulated error. Ties step along Y.
func LineBresenham(a, b Point) []Point {
	dx := geom.Abs(b.X - a.X)
	dy := geom.Abs(b.Y - a.Y)
	sx := geom.Sign(b.X - a.X)
	sy := geom.Sign(b.Y - a.Y)

	n := 1 + dx + dy
	err := dx - dy
	dx *= 2
	dy *= 2

	x, y := a.X, a.Y
	out := make([]Point, 0, n)
	for ; n > 0; n-- {
		out = append(out, Point{x, y})
		if err > 0 {
			x += sx
			err -= dy
		} else {
			y += sy
			err += dx
		}
	}
	return out
}

// LineAxisFirst walks X to completion, then Y.
func LineAxisFirst(a, b Point) []Point {
	sx := geom.Sign(b.X - a.X)
	sy := geom.Sign(b.Y - a.Y)
	out := make([]Point, 0, 1+geom.Abs(b.X-a.X)+geom.Abs(b.Y-a.Y))
	x, y := a.X, a.Y
	out = append(out, Point{x, y})
	for x != b.X {
		x += sx
		out = append(out, Point{x, y})
	}
	for y != b.Y {
		y += sy
		out = append(out, Point{x, y})
	}
	return out
}
