// internal/tower/attack.go
package tower

import "go-td-core/pkg/geom"

// AreaDamageMultiplier scales splash damage linearly from 1 at the centre
// down to minPct at the edge of the radius.
func AreaDamageMultiplier(dist, radius, minPct float64) float64 {
	if radius <= 0 {
		return 1
	}
	ratio := geom.Clamp01(dist / radius)
	return 1 - ratio*(1-minPct)
}
