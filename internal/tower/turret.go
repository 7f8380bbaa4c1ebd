// internal/tower/turret.go
package tower

import (
	"math"

	"go-td-core/internal/utils"
	"go-td-core/pkg/geom"
)

// Turret is the rotating head of a tower.
type Turret struct {
	// CurrentAngle is the heading in radians on the XZ plane.
	CurrentAngle float64
	// TargetAngle is the heading the turret turns toward.
	TargetAngle float64
	// Aiming is false while the turret has nothing to track.
	Aiming bool
}

// Aim turns toward to by at most turnSpeed*dt degrees and reports whether
// the remaining error is within threshold degrees.
func (t *Turret) Aim(dt float64, from, to geom.Vec3, turnSpeed, threshold float64) bool {
	t.Aiming = true
	t.TargetAngle = geom.Heading(from, to)
	t.CurrentAngle = utils.RotateTowards(t.CurrentAngle, t.TargetAngle, utils.DegToRad(turnSpeed)*dt)
	return math.Abs(utils.AngleDelta(t.CurrentAngle, t.TargetAngle)) <= utils.DegToRad(threshold)
}

// Cancel drops the current aim.
func (t *Turret) Cancel() {
	t.Aiming = false
	t.TargetAngle = t.CurrentAngle
}
