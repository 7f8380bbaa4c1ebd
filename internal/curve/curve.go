// internal/curve/curve.go
package curve

import "sort"

// Key is one control point of a curve.
type Key struct {
	T float64 `json:"t"`
	V float64 `json:"v"`
}

// Curve is a piecewise-linear function over its keys. Outside the key range
// the nearest end value is held.
type Curve []Key

// Constant returns a curve that always evaluates to v.
func Constant(v float64) Curve {
	return Curve{{T: 0, V: v}}
}

// Linear returns a curve from (0, from) to (1, to).
func Linear(from, to float64) Curve {
	return Curve{{T: 0, V: from}, {T: 1, V: to}}
}

// Sorted returns a copy ordered by T. Equal T keep their order.
func (c Curve) Sorted() Curve {
	out := make(Curve, len(c))
	copy(out, c)
	sort.SliceStable(out, func(i, j int) bool { return out[i].T < out[j].T })
	return out
}

// Evaluate samples the curve at t. Keys are expected in ascending T;
// loaders call Sorted once. An empty curve yields fallback.
func (c Curve) Evaluate(t, fallback float64) float64 {
	switch len(c) {
	case 0:
		return fallback
	case 1:
		return c[0].V
	}
	if t <= c[0].T {
		return c[0].V
	}
	last := c[len(c)-1]
	if t >= last.T {
		return last.V
	}
	i := sort.Search(len(c), func(i int) bool { return c[i].T > t })
	a, b := c[i-1], c[i]
	span := b.T - a.T
	if span <= 0 {
		return b.V
	}
	return a.V + (b.V-a.V)*(t-a.T)/span
}
