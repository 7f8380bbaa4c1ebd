// internal/spawn/continuous.go
package spawn

import (
	"math"

	"go-td-core/internal/config"
	"go-td-core/internal/defs"
	"go-td-core/pkg/geom"
)

// ContinuousInterval returns the delay between continuous spawns at
// normalized time t. A non-positive rate never spawns.
func ContinuousInterval(c *defs.ContinuousSpawnConfig, t float64) float64 {
	rate := c.SpawnRate.Evaluate(t, 1)
	if rate <= 0 {
		return math.MaxFloat64
	}
	return math.Max(c.BaseInterval/rate, c.MinInterval)
}

func (s *Scheduler) tickContinuous() {
	c := s.timeline.Continuous
	if c == nil || !c.Enabled || len(c.Entries) == 0 {
		return
	}
	for n := 0; n < config.MaxContinuousSpawnsPerTick; n++ {
		interval := ContinuousInterval(c, s.normalized(c.TotalDuration, s.lastContinuous))
		if interval == math.MaxFloat64 {
			// Re-anchor so a later positive rate is measured from now.
			s.lastContinuous = s.elapsed
			return
		}
		due := s.lastContinuous + interval + s.continuousDelay
		if s.elapsed < due {
			return
		}
		s.lastContinuous = due
		s.continuousDelay = s.drawDelay(c)
		s.spawnContinuous(c, due)
	}
}

func (s *Scheduler) drawDelay(c *defs.ContinuousSpawnConfig) float64 {
	if !c.UseRandomDelay {
		return 0
	}
	lo := geom.Clamp(c.MinDelay, 0, config.ContinuousMaxDelayCap)
	hi := geom.Clamp(c.MaxDelay, 0, config.ContinuousMaxDelayCap)
	if lo == hi {
		return lo
	}
	return s.rng.Range(lo, hi)
}

func (s *Scheduler) spawnContinuous(c *defs.ContinuousSpawnConfig, at float64) {
	norm := s.normalized(c.TotalDuration, at)
	idx := s.chooseEntry(c, at, norm)
	if idx < 0 {
		return
	}
	entry := &c.Entries[idx]
	req := Request{
		EnemyID:              entry.EnemyID,
		PathIndex:            AnyPath,
		HealthMultiplier:     c.HealthMultiplier.Evaluate(norm, 1),
		DifficultyMultiplier: c.DifficultyCurve.Evaluate(norm, 1),
		Source:               SourceContinuous,
		Time:                 at,
	}
	if entry.PathIndex != nil {
		req.PathIndex = *entry.PathIndex
	}
	if v := c.PositionVariation; v > 0 {
		req.Offset = geom.V3(s.rng.Range(-v, v), 0, s.rng.Range(-v, v))
	}
	s.spawner.Spawn(req)
}

// chooseEntry picks an available entry by weight. It returns -1 when no
// entry is available at time at.
func (s *Scheduler) chooseEntry(c *defs.ContinuousSpawnConfig, at, norm float64) int {
	var candidates []int
	var weights []float64
	for i := range c.Entries {
		e := &c.Entries[i]
		if !e.Available(at) {
			continue
		}
		candidates = append(candidates, i)
		weights = append(weights, e.BaseWeight*e.WeightCurve.Evaluate(norm, 1))
	}
	if len(candidates) == 0 {
		return -1
	}
	return candidates[s.rng.ChooseWeighted(weights)]
}
