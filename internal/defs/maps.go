// internal/defs/maps.go
package defs

// MapDefinition describes the board: grid size, blocked cells and the
// authored path containers.
type MapDefinition struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Width         int              `json:"width"`
	Height        int              `json:"height"`
	CellSize      float64          `json:"cell_size"`
	Blocked       []GridPoint      `json:"blocked"`
	Paths         []PathDefinition `json:"paths"`
	SnapWaypoints bool             `json:"snap_waypoints"`
	Tolerance     float64          `json:"destination_tolerance"`
}

type GridPoint struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// PathDefinition is one authored path container. Waypoints may be listed in
// any order; Order decides the walk.
type PathDefinition struct {
	Name      string               `json:"name"`
	Raster    string               `json:"raster"`
	Waypoints []WaypointDefinition `json:"waypoints"`
}

type WaypointDefinition struct {
	Order int     `json:"order"`
	X     float64 `json:"x"`
	Z     float64 `json:"z"`
}
