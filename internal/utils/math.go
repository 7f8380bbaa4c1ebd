// internal/utils/math.go
package utils

import "math"

// Lerp is plain linear interpolation.
func Lerp(from, to, t float64) float64 {
	return from + (to-from)*t
}

// LerpAngle interpolates between two angles along the shortest arc.
func LerpAngle(from, to, t float64) float64 {
	return NormalizeAngle(from + AngleDelta(from, to)*t)
}

// AngleDelta returns the signed shortest rotation from -> to, in [-pi, pi].
func AngleDelta(from, to float64) float64 {
	diff := NormalizeAngle(to) - NormalizeAngle(from)
	if diff > math.Pi {
		diff -= 2 * math.Pi
	} else if diff < -math.Pi {
		diff += 2 * math.Pi
	}
	return diff
}

// NormalizeAngle maps angle into [-pi, pi].
func NormalizeAngle(angle float64) float64 {
	for angle > math.Pi {
		angle -= 2 * math.Pi
	}
	for angle < -math.Pi {
		angle += 2 * math.Pi
	}
	return angle
}

// RotateTowards turns current toward target by at most maxStep radians.
func RotateTowards(current, target, maxStep float64) float64 {
	diff := AngleDelta(current, target)
	if math.Abs(diff) <= maxStep {
		return NormalizeAngle(target)
	}
	if diff < 0 {
		return NormalizeAngle(current - maxStep)
	}
	return NormalizeAngle(current + maxStep)
}

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}
