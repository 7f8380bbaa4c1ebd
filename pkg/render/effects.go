// pkg/render/effects.go
package render

import "go-td-core/pkg/geom"

// Line is a short-lived segment such as a shot trace.
type Line struct {
	From, To geom.Vec3
	TTL, Age float64
}

// Ring is a short-lived circle such as an explosion.
type Ring struct {
	Center   geom.Vec3
	Radius   float64
	TTL, Age float64
}

// Alpha fades from 1 to 0 over the lifetime.
func (l Line) Alpha() float64 { return fade(l.Age, l.TTL) }
func (r Ring) Alpha() float64 { return fade(r.Age, r.TTL) }

func fade(age, ttl float64) float64 {
	if ttl <= 0 {
		return 0
	}
	a := 1 - age/ttl
	if a < 0 {
		return 0
	}
	return a
}

// Effects keeps transient visuals and ages them each frame.
type Effects struct {
	lines []Line
	rings []Ring
}

func (e *Effects) AddLine(from, to geom.Vec3, ttl float64) {
	e.lines = append(e.lines, Line{From: from, To: to, TTL: ttl})
}

func (e *Effects) AddRing(center geom.Vec3, radius, ttl float64) {
	e.rings = append(e.rings, Ring{Center: center, Radius: radius, TTL: ttl})
}

// Update ages every effect by dt and drops expired ones.
func (e *Effects) Update(dt float64) {
	lines := e.lines[:0]
	for _, l := range e.lines {
		l.Age += dt
		if l.Age < l.TTL {
			lines = append(lines, l)
		}
	}
	e.lines = lines

	rings := e.rings[:0]
	for _, r := range e.rings {
		r.Age += dt
		if r.Age < r.TTL {
			rings = append(rings, r)
		}
	}
	e.rings = rings
}

func (e *Effects) Lines() []Line { return e.lines }
func (e *Effects) Rings() []Ring { return e.rings }

// Clear drops everything.
func (e *Effects) Clear() {
	e.lines = e.lines[:0]
	e.rings = e.rings[:0]
}
