// pkg/geom/vec.go
package geom

import "math"

// Vec3 is a world-space position. The simulation plane is XZ, Y is height.
type Vec3 struct {
	X, Y, Z float64
}

// V3 is a short constructor.
func V3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Len returns the euclidean length.
func (v Vec3) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Distance returns the 3D distance between a and b.
func Distance(a, b Vec3) float64 {
	return b.Sub(a).Len()
}

// Lerp interpolates between a and b, t is not clamped.
func Lerp(a, b Vec3, t float64) Vec3 {
	return a.Add(b.Sub(a).Scale(t))
}

// Heading returns the angle of the XZ direction from a to b in radians.
func Heading(from, to Vec3) float64 {
	return math.Atan2(to.Z-from.Z, to.X-from.X)
}

// MoveTowards steps from current toward target by at most maxDistance.
// The second result reports whether target was reached.
func MoveTowards(current, target Vec3, maxDistance float64) (Vec3, bool) {
	delta := target.Sub(current)
	dist := delta.Len()
	if dist <= maxDistance || dist == 0 {
		return target, true
	}
	return current.Add(delta.Scale(maxDistance / dist)), false
}
