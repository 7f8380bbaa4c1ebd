// internal/enemy/agent.go
package enemy

import (
	"errors"
	"fmt"
	"math"

	"go-td-core/internal/config"
	"go-td-core/internal/defs"
	"go-td-core/internal/event"
	"go-td-core/internal/types"
	"go-td-core/pkg/geom"
	"go-td-core/pkg/path"
)

var (
	ErrAlreadyWalking    = errors.New("enemy already walking")
	ErrInvalidMultiplier = errors.New("multiplier must be positive")
)

// State of an enemy's life.
type State int

const (
	Spawned State = iota
	Walking
	ReachedEnd
	Dead
)

func (s State) String() string {
	switch s {
	case Spawned:
		return "Spawned"
	case Walking:
		return "Walking"
	case ReachedEnd:
		return "ReachedEnd"
	case Dead:
		return "Dead"
	}
	return "Unknown"
}

// RewardSink receives the gold bounty of a killed enemy.
type RewardSink interface {
	Earn(amount int) bool
}

// BaseSink receives damage from enemies that finish their path.
type BaseSink interface {
	TakeDamage(amount int)
}

// Agent walks a path at constant speed until it dies or reaches the end.
type Agent struct {
	id        types.EntityID
	def       *defs.EnemyDefinition
	path      *path.Data
	pathIndex int

	position geom.Vec3
	waypoint int

	health       float64
	maxHealth    float64
	speed        float64
	goldReward   int
	attackDamage int

	state    State
	rewarded bool
	flash    float64

	reward RewardSink
	base   BaseSink
	pub    event.Publisher
}

// New places an enemy at the start of p. reward and base may be nil.
func New(id types.EntityID, def *defs.EnemyDefinition, p *path.Data, pathIndex int, reward RewardSink, base BaseSink, pub event.Publisher) (*Agent, error) {
	if def == nil {
		return nil, errors.New("nil enemy definition")
	}
	if err := def.Check(); err != nil {
		return nil, err
	}
	if p == nil || p.Count() == 0 {
		return nil, fmt.Errorf("enemy %q: path has no waypoints", def.ID)
	}
	if pub == nil {
		pub = event.Nop
	}
	return &Agent{
		id:           id,
		def:          def,
		path:         p,
		pathIndex:    pathIndex,
		position:     p.Start(),
		health:       def.Health,
		maxHealth:    def.Health,
		speed:        def.Speed,
		goldReward:   def.GoldReward,
		attackDamage: def.AttackDamage,
		reward:       reward,
		base:         base,
		pub:          pub,
	}, nil
}

func (a *Agent) ID() types.EntityID         { return a.id }
func (a *Agent) DefID() string              { return a.def.ID }
func (a *Agent) Def() *defs.EnemyDefinition { return a.def }
func (a *Agent) Position() geom.Vec3        { return a.position }
func (a *Agent) Health() float64            { return a.health }
func (a *Agent) MaxHealth() float64         { return a.maxHealth }
func (a *Agent) Speed() float64             { return a.speed }
func (a *Agent) State() State               { return a.state }
func (a *Agent) PathIndex() int             { return a.pathIndex }
func (a *Agent) WaypointIndex() int         { return a.waypoint }
func (a *Agent) GoldReward() int            { return a.goldReward }
func (a *Agent) AttackDamage() int          { return a.attackDamage }
func (a *Agent) Experience() int            { return a.def.Experience }
func (a *Agent) Flashing() bool             { return a.flash > 0 }

// IsAlive reports whether the enemy is still on the field and targetable.
func (a *Agent) IsAlive() bool {
	return a.state == Spawned || a.state == Walking
}

// Finished reports whether the enemy should be removed from the game.
func (a *Agent) Finished() bool {
	return a.state == Dead || a.state == ReachedEnd
}

// ApplyHealthMultiplier scales max and current health. Only valid before
// the first Tick.
func (a *Agent) ApplyHealthMultiplier(m float64) error {
	if err := a.checkScalable(m); err != nil {
		return err
	}
	a.maxHealth *= m
	a.health *= m
	return nil
}

// ApplyDifficultyMultiplier scales base damage and gold reward. Only valid
// before the first Tick.
func (a *Agent) ApplyDifficultyMultiplier(m float64) error {
	if err := a.checkScalable(m); err != nil {
		return err
	}
	a.attackDamage = int(math.Round(float64(a.attackDamage) * m))
	a.goldReward = int(math.Round(float64(a.goldReward) * m))
	return nil
}

// ScaleReward multiplies the gold bounty.
func (a *Agent) ScaleReward(m float64) error {
	if err := a.checkScalable(m); err != nil {
		return err
	}
	a.goldReward = int(math.Round(float64(a.goldReward) * m))
	return nil
}

// SetOffset shifts the spawn position. Only valid before the first Tick.
func (a *Agent) SetOffset(offset geom.Vec3) error {
	if a.state != Spawned {
		return ErrAlreadyWalking
	}
	a.position = a.path.Start().Add(offset)
	return nil
}

func (a *Agent) checkScalable(m float64) error {
	if a.state != Spawned {
		return ErrAlreadyWalking
	}
	if !(m > 0) || math.IsInf(m, 0) {
		return ErrInvalidMultiplier
	}
	return nil
}

// Tick moves the enemy along its path. Arriving at a waypoint snaps to it
// and the leftover distance carries on toward the next one.
func (a *Agent) Tick(dt float64) {
	if a.flash > 0 {
		a.flash = math.Max(0, a.flash-dt)
	}
	if a.state == Spawned {
		a.state = Walking
	}
	if a.state != Walking || dt <= 0 {
		return
	}

	remaining := a.speed * dt
	for a.waypoint < a.path.Count() {
		target := a.path.At(a.waypoint)
		dist := geom.Distance(a.position, target)
		if dist <= remaining || dist <= config.WaypointArrivalEpsilon {
			a.position = target
			remaining = math.Max(0, remaining-dist)
			a.waypoint++
			continue
		}
		a.position, _ = geom.MoveTowards(a.position, target, remaining)
		return
	}
	a.reachEnd()
}

// TakeDamage lowers health and returns the damage actually absorbed and
// whether this hit killed the enemy. Dead or departed enemies ignore hits.
func (a *Agent) TakeDamage(amount float64) (float64, bool) {
	if !a.IsAlive() || !(amount >= 0) {
		return 0, false
	}
	dealt := math.Min(amount, a.health)
	a.health -= dealt
	a.flash = config.DamageFlashDuration
	a.pub.Publish(event.Event{Type: event.EnemyDamaged, Data: a.data(dealt)})
	if a.health <= 0 {
		a.health = 0
		a.die()
		return dealt, true
	}
	return dealt, false
}

// PathProgress is the travelled fraction of the path in [0, 1].
func (a *Agent) PathProgress() float64 {
	n := a.path.Count()
	if a.state == ReachedEnd || a.waypoint >= n {
		return 1
	}
	total := a.path.Length()
	if total <= 0 {
		return geom.Clamp01(float64(a.waypoint) / float64(n))
	}
	if a.waypoint == 0 {
		return 0
	}
	done := a.path.DistanceBefore(a.waypoint-1) + geom.Distance(a.path.At(a.waypoint-1), a.position)
	return geom.Clamp01(done / total)
}

func (a *Agent) die() {
	a.state = Dead
	if !a.rewarded {
		a.rewarded = true
		if a.reward != nil {
			a.reward.Earn(a.goldReward)
		}
	}
	d := a.data(0)
	d.Reward = a.goldReward
	a.pub.Publish(event.Event{Type: event.EnemyKilled, Data: d})
}

func (a *Agent) reachEnd() {
	a.state = ReachedEnd
	if a.base != nil {
		a.base.TakeDamage(a.attackDamage)
	}
	d := a.data(0)
	d.Damage = a.attackDamage
	a.pub.Publish(event.Event{Type: event.EnemyReachedEnd, Data: d})
}

func (a *Agent) data(amount float64) event.EnemyData {
	return event.EnemyData{
		ID:        a.id,
		DefID:     a.def.ID,
		Position:  a.position,
		PathIndex: a.pathIndex,
		Health:    a.health,
		Amount:    amount,
	}
}
