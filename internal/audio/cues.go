// internal/audio/cues.go
package audio

import "go-td-core/internal/event"

// Player plays a cue.
type Player interface {
	Play(cue Cue)
}

// Cues turns simulation events into sound cues.
type Cues struct {
	player Player
}

func NewCues(p Player) *Cues {
	return &Cues{player: p}
}

// Attach subscribes to every event with a cue.
func (c *Cues) Attach(d *event.Dispatcher) {
	for _, t := range []event.EventType{
		event.TowerFired, event.Explosion, event.EnemyKilled,
		event.BaseDamaged, event.TowerLevelReady, event.PlayerDefeated,
	} {
		d.Subscribe(t, c)
	}
}

func (c *Cues) OnEvent(e event.Event) {
	if cue, ok := CueFor(e); ok {
		c.player.Play(cue)
	}
}

// CueFor maps an event to its cue.
func CueFor(e event.Event) (Cue, bool) {
	switch e.Type {
	case event.TowerFired:
		// Area shots get the explosion cue instead.
		if shot, ok := e.Data.(event.ShotData); ok && shot.Attack == "AREA" {
			return 0, false
		}
		return CueFire, true
	case event.Explosion:
		return CueExplosion, true
	case event.EnemyKilled:
		return CueEnemyDeath, true
	case event.BaseDamaged:
		return CueBaseHit, true
	case event.TowerLevelReady:
		return CueLevelReady, true
	case event.PlayerDefeated:
		return CueDefeat, true
	}
	return 0, false
}
