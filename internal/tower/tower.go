// internal/tower/tower.go
package tower

import (
	"errors"
	"math"

	"go-td-core/internal/defs"
	"go-td-core/internal/event"
	"go-td-core/internal/types"
	"go-td-core/pkg/geom"
	"go-td-core/pkg/grid"
)

var (
	ErrCannotLevelUp = errors.New("tower cannot level up")
	ErrMaxLevel      = errors.New("tower is at max level")
)

// Tower is a placed tower. It keeps its target until the target dies or
// leaves range.
type Tower struct {
	id       types.EntityID
	def      *defs.TowerDefinition
	cell     grid.Point
	position geom.Vec3
	mode     defs.TargetingMode

	target     types.EntityID
	lastAttack float64
	turret     *Turret
	stats      Stats

	experience int
	upgrades   []defs.UpgradeChoice
	readySent  bool

	mods ModifierSource
	pub  event.Publisher
}

// New creates a tower standing at position on cell.
func New(id types.EntityID, def *defs.TowerDefinition, cell grid.Point, position geom.Vec3, mods ModifierSource, pub event.Publisher) *Tower {
	if pub == nil {
		pub = event.Nop
	}
	t := &Tower{
		id:         id,
		def:        def,
		cell:       cell,
		position:   position,
		mode:       def.Targeting,
		lastAttack: math.Inf(-1),
		mods:       mods,
		pub:        pub,
	}
	if t.mode == "" {
		t.mode = defs.TargetClosest
	}
	if def.Turret != nil {
		t.turret = &Turret{}
	}
	t.stats = t.computeStats()
	return t
}

func (t *Tower) ID() types.EntityID                { return t.id }
func (t *Tower) DefID() string                     { return t.def.ID }
func (t *Tower) Def() *defs.TowerDefinition        { return t.def }
func (t *Tower) Cell() grid.Point                  { return t.cell }
func (t *Tower) Position() geom.Vec3               { return t.position }
func (t *Tower) Targeting() defs.TargetingMode     { return t.mode }
func (t *Tower) TargetID() types.EntityID          { return t.target }
func (t *Tower) Turret() *Turret                   { return t.turret }
func (t *Tower) Experience() int                   { return t.experience }
func (t *Tower) Level() int                        { return 1 + len(t.upgrades) }
func (t *Tower) Upgrades() []defs.UpgradeChoice    { return t.upgrades }
func (t *Tower) SetTargeting(m defs.TargetingMode) { t.mode = m }

// Stats returns the effective stats including current skill modifiers.
func (t *Tower) Stats() Stats {
	return t.computeStats()
}

func (t *Tower) computeStats() Stats {
	return ComputeStats(t.def, t.upgrades, t.mods)
}

// Acquire refreshes the stats and picks a target if the current one is gone.
func (t *Tower) Acquire(candidates []Target) {
	t.stats = t.computeStats()
	if cur := findTarget(candidates, t.target); cur != nil && t.valid(cur) {
		return
	}
	t.target = 0
	if best := SelectTarget(t.mode, t.position, t.stats.Range, candidates); best != nil {
		t.target = best.ID()
	}
}

// Engage aims at the current target and fires when aligned and off cooldown.
// It reports whether a shot was fired.
func (t *Tower) Engage(now, dt float64, candidates []Target) bool {
	target := findTarget(candidates, t.target)
	if target == nil || !t.valid(target) {
		t.target = 0
		if t.turret != nil {
			t.turret.Cancel()
		}
		return false
	}

	if t.turret != nil && t.stats.HasTurret {
		if !t.turret.Aim(dt, t.position, target.Position(), t.stats.TurnSpeed, t.stats.AimThreshold) {
			return false
		}
	}

	if now-t.lastAttack < t.stats.Cooldown() {
		return false
	}
	t.lastAttack = now
	t.fire(target, candidates)
	return true
}

func (t *Tower) valid(target Target) bool {
	return target.IsAlive() && geom.Distance(t.position, target.Position()) <= t.stats.Range
}

func (t *Tower) fire(target Target, candidates []Target) {
	t.pub.Publish(event.Event{Type: event.TowerFired, Data: event.ShotData{
		TowerID:  t.id,
		TargetID: target.ID(),
		From:     t.position,
		To:       target.Position(),
		Damage:   t.stats.Damage,
		Attack:   string(t.stats.Attack),
	}})

	// Pierce and chain resolve like single-target hits.
	if t.stats.Attack != defs.AttackArea {
		t.hit(target, t.stats.Damage)
		return
	}

	center := target.Position()
	radius := t.stats.SplashRadius
	if radius <= 0 {
		t.hit(target, t.stats.Damage)
		t.publishExplosion(center, radius, 1)
		return
	}
	hits := 0
	for _, c := range candidates {
		if c == nil || !c.IsAlive() {
			continue
		}
		d := geom.Distance(center, c.Position())
		if d > radius {
			continue
		}
		dmg := t.stats.Damage
		if t.stats.Falloff {
			dmg *= AreaDamageMultiplier(d, radius, t.stats.MinDamagePercent)
		}
		t.hit(c, dmg)
		hits++
	}
	t.publishExplosion(center, radius, hits)
}

func (t *Tower) publishExplosion(center geom.Vec3, radius float64, hits int) {
	t.pub.Publish(event.Event{Type: event.Explosion, Data: event.ExplosionData{
		TowerID: t.id,
		Center:  center,
		Radius:  radius,
		Hits:    hits,
	}})
}

func (t *Tower) hit(target Target, dmg float64) {
	if _, killed := target.TakeDamage(dmg); killed {
		xp := float64(target.Experience())
		if t.mods != nil {
			xp *= percent(t.mods.ModifierValue(defs.StatExpGain, t.def.FamilyID()))
		}
		t.GainExperience(int(math.Round(xp)))
	}
}

// GainExperience adds xp and announces once when a level becomes available.
func (t *Tower) GainExperience(xp int) {
	if xp <= 0 {
		return
	}
	t.experience += xp
	t.notifyLevelReady()
}

// CanLevelUp reports whether the experience for the next level is reached.
func (t *Tower) CanLevelUp() bool {
	level := t.Level()
	if level >= t.def.MaxLevel {
		return false
	}
	need, ok := t.def.ExperienceFor(level + 1)
	return ok && t.experience >= need
}

// ApplyUpgrade records choice as the next level.
func (t *Tower) ApplyUpgrade(choice defs.UpgradeChoice) error {
	if len(t.upgrades) >= t.def.MaxLevel-1 {
		return ErrMaxLevel
	}
	if !t.CanLevelUp() {
		return ErrCannotLevelUp
	}
	t.upgrades = append(t.upgrades, choice)
	t.stats = t.computeStats()
	t.readySent = false
	t.pub.Publish(event.Event{Type: event.TowerUpgraded, Data: t.data()})
	t.notifyLevelReady()
	return nil
}

// replaceDefinition swaps the tower for the next one in a linear chain.
// Chosen upgrades beyond the new capacity are dropped.
func (t *Tower) replaceDefinition(next *defs.TowerDefinition) {
	t.def = next
	if limit := next.MaxLevel - 1; len(t.upgrades) > limit {
		if limit < 0 {
			limit = 0
		}
		t.upgrades = t.upgrades[:limit]
	}
	if next.Turret != nil && t.turret == nil {
		t.turret = &Turret{}
	} else if next.Turret == nil {
		t.turret = nil
	}
	t.stats = t.computeStats()
	t.readySent = false
	t.notifyLevelReady()
}

func (t *Tower) notifyLevelReady() {
	if t.readySent || !t.CanLevelUp() {
		return
	}
	t.readySent = true
	t.pub.Publish(event.Event{Type: event.TowerLevelReady, Data: t.data()})
}

func (t *Tower) data() event.TowerData {
	return event.TowerData{
		ID:    t.id,
		DefID: t.def.ID,
		X:     t.cell.X,
		Y:     t.cell.Y,
		Level: t.Level(),
	}
}
