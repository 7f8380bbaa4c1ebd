// internal/tower/targeting.go
package tower

import (
	"go-td-core/internal/defs"
	"go-td-core/internal/types"
	"go-td-core/pkg/geom"
)

// Target is anything a tower can shoot at.
type Target interface {
	ID() types.EntityID
	Position() geom.Vec3
	Health() float64
	PathProgress() float64
	IsAlive() bool
	Experience() int
	TakeDamage(amount float64) (dealt float64, killed bool)
}

// SelectTarget returns the best alive candidate within radius of origin, or
// nil. Every mode is a minimum over one scalar; ties keep the earlier one.
func SelectTarget(mode defs.TargetingMode, origin geom.Vec3, radius float64, candidates []Target) Target {
	var best Target
	bestScore := 0.0
	for _, c := range candidates {
		if c == nil || !c.IsAlive() {
			continue
		}
		d := geom.Distance(origin, c.Position())
		if d > radius {
			continue
		}
		s := score(mode, d, c)
		if best == nil || s < bestScore {
			best = c
			bestScore = s
		}
	}
	return best
}

func score(mode defs.TargetingMode, dist float64, c Target) float64 {
	switch mode {
	case defs.TargetFurthest:
		return -dist
	case defs.TargetLowestHealth:
		return c.Health()
	case defs.TargetHighestHealth:
		return -c.Health()
	case defs.TargetMostProgress:
		return -c.PathProgress()
	case defs.TargetLeastProgress:
		return c.PathProgress()
	}
	return dist
}

func findTarget(candidates []Target, id types.EntityID) Target {
	if id == 0 {
		return nil
	}
	for _, c := range candidates {
		if c != nil && c.ID() == id {
			return c
		}
	}
	return nil
}
