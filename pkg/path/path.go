// pkg/path/path.go
package path

import (
	"go-td-core/pkg/geom"
	"go-td-core/pkg/grid"
)

// Waypoint is one authored point of a path. Order decides the walk.
type Waypoint struct {
	Order    int
	Position geom.Vec3
}

// Container is an authored path: a name and an unsorted set of waypoints.
type Container struct {
	Name      string
	Waypoints []Waypoint
	Raster    grid.RasterPolicy
}

// Data is a detected path. It is not modified after detection except by
// Snap, which runs before the game starts.
type Data struct {
	Name      string
	Waypoints []Waypoint
	Raster    grid.RasterPolicy

	cumulative []float64
}

func newData(name string, wps []Waypoint, raster grid.RasterPolicy) *Data {
	d := &Data{Name: name, Waypoints: wps, Raster: raster}
	d.recompute()
	return d
}

func (d *Data) recompute() {
	d.cumulative = make([]float64, len(d.Waypoints))
	for i := 1; i < len(d.Waypoints); i++ {
		d.cumulative[i] = d.cumulative[i-1] + geom.Distance(d.Waypoints[i-1].Position, d.Waypoints[i].Position)
	}
}

func (d *Data) Count() int { return len(d.Waypoints) }

// At returns the position of waypoint i.
func (d *Data) At(i int) geom.Vec3 {
	return d.Waypoints[i].Position
}

func (d *Data) Start() geom.Vec3 {
	if len(d.Waypoints) == 0 {
		return geom.Vec3{}
	}
	return d.Waypoints[0].Position
}

func (d *Data) End() geom.Vec3 {
	if len(d.Waypoints) == 0 {
		return geom.Vec3{}
	}
	return d.Waypoints[len(d.Waypoints)-1].Position
}

// Length is the total polyline length.
func (d *Data) Length() float64 {
	if len(d.cumulative) == 0 {
		return 0
	}
	return d.cumulative[len(d.cumulative)-1]
}

// DistanceBefore returns the path length from the start up to waypoint i.
func (d *Data) DistanceBefore(i int) float64 {
	if i <= 0 || len(d.cumulative) == 0 {
		return 0
	}
	if i >= len(d.cumulative) {
		return d.Length()
	}
	return d.cumulative[i]
}

// Cells rasterizes the path into grid cells, consecutive duplicates removed.
func (d *Data) Cells(g *grid.Grid) []grid.Point {
	var out []grid.Point
	add := func(p grid.Point) {
		if n := len(out); n > 0 && out[n-1] == p {
			return
		}
		out = append(out, p)
	}
	for i, wp := range d.Waypoints {
		x, y := g.WorldToGrid(wp.Position)
		cur := grid.Point{X: x, Y: y}
		if i == 0 {
			add(cur)
			continue
		}
		px, py := g.WorldToGrid(d.Waypoints[i-1].Position)
		for _, p := range grid.Rasterize(grid.Point{X: px, Y: py}, cur, d.Raster) {
			add(p)
		}
	}
	return out
}
