// pkg/path/detect.go
package path

import (
	"fmt"
	"log"
	"sort"

	"go-td-core/pkg/geom"
	"go-td-core/pkg/grid"
)

// DefaultDestinationTolerance is how far apart path ends may be while still
// counting as one destination.
const DefaultDestinationTolerance = 2.0

// Detect turns authored containers into paths with waypoints sorted by
// Order. Equal orders keep their authored order. Empty containers are
// skipped.
func Detect(containers []Container) []*Data {
	var paths []*Data
	for _, c := range containers {
		if len(c.Waypoints) == 0 {
			log.Printf("PathDetector: container %q has no waypoints, skipping", c.Name)
			continue
		}
		wps := make([]Waypoint, len(c.Waypoints))
		copy(wps, c.Waypoints)
		sort.SliceStable(wps, func(i, j int) bool { return wps[i].Order < wps[j].Order })
		paths = append(paths, newData(c.Name, wps, c.Raster))
	}
	return paths
}

// Validate returns human-readable warnings. Detection proceeds with the
// sorted order regardless.
func Validate(paths []*Data, tolerance float64) []string {
	if tolerance <= 0 {
		tolerance = DefaultDestinationTolerance
	}
	var warnings []string
	for _, p := range paths {
		if p.Count() < 2 {
			warnings = append(warnings, fmt.Sprintf("path %q has %d waypoint(s), need at least 2", p.Name, p.Count()))
		}
		for i, wp := range p.Waypoints {
			if wp.Order != i {
				warnings = append(warnings, fmt.Sprintf("path %q: waypoint orders are not contiguous from 0 (found %d at position %d)", p.Name, wp.Order, i))
				break
			}
		}
	}
	if len(paths) > 1 {
		dest := paths[0].End()
		for _, p := range paths[1:] {
			if d := geom.Distance(dest, p.End()); d > tolerance {
				warnings = append(warnings, fmt.Sprintf("path %q ends %.2f from %q's destination (tolerance %.2f)", p.Name, d, paths[0].Name, tolerance))
			}
		}
	}
	return warnings
}

// Snap moves every waypoint to the centre of its grid cell.
func Snap(g *grid.Grid, paths []*Data) {
	for _, p := range paths {
		for i := range p.Waypoints {
			x, y := g.WorldToGrid(p.Waypoints[i].Position)
			p.Waypoints[i].Position = g.GridToWorld(x, y)
		}
		p.recompute()
	}
}

// MarkOnGrid sets every cell covered by the paths to grid.Path and returns
// how many cells changed. Cells outside the grid are ignored.
func MarkOnGrid(g *grid.Grid, paths []*Data) int {
	changed := 0
	for _, p := range paths {
		for _, c := range p.Cells(g) {
			cell, ok := g.Cell(c.X, c.Y)
			if !ok || cell.Type == grid.Path {
				continue
			}
			g.SetCellType(c.X, c.Y, grid.Path)
			changed++
		}
	}
	return changed
}

// CheckConnectivity verifies that each marked path can be walked over Path
// cells from its first to its last cell.
func CheckConnectivity(g *grid.Grid, paths []*Data) []string {
	var warnings []string
	onPath := func(c grid.Cell) bool { return c.Type == grid.Path }
	for _, p := range paths {
		if p.Count() < 2 {
			continue
		}
		sx, sy := g.WorldToGrid(p.Start())
		ex, ey := g.WorldToGrid(p.End())
		if g.AStar(grid.Point{X: sx, Y: sy}, grid.Point{X: ex, Y: ey}, onPath) == nil {
			warnings = append(warnings, fmt.Sprintf("path %q is not connected on the grid", p.Name))
		}
	}
	return warnings
}
