// internal/player/base.go
package player

import (
	"log"

	"go-td-core/internal/event"
)

// Base is the player's health pool that leaking enemies damage.
type Base struct {
	health    int
	maxHealth int
	defeated  bool
	pub       event.Publisher
}

func NewBase(maxHealth int, pub event.Publisher) *Base {
	if pub == nil {
		pub = event.Nop
	}
	if maxHealth < 1 {
		maxHealth = 1
	}
	return &Base{health: maxHealth, maxHealth: maxHealth, pub: pub}
}

func (b *Base) Health() int    { return b.health }
func (b *Base) MaxHealth() int { return b.maxHealth }
func (b *Base) IsAlive() bool  { return b.health > 0 }

// TakeDamage lowers health, clamping at zero. Reaching zero publishes
// PlayerDefeated once.
func (b *Base) TakeDamage(amount int) {
	if amount < 0 {
		log.Printf("PlayerBase: ignoring negative damage %d", amount)
		return
	}
	if !b.IsAlive() {
		return
	}
	b.health -= amount
	if b.health < 0 {
		b.health = 0
	}
	b.pub.Publish(event.Event{Type: event.BaseDamaged, Data: b.data(amount)})
	b.checkDefeat()
}

// Restore heals up to max health.
func (b *Base) Restore(amount int) {
	if amount <= 0 || !b.IsAlive() {
		return
	}
	b.SetHealth(b.health + amount)
}

// SetHealth sets health within [0, max].
func (b *Base) SetHealth(v int) {
	if v < 0 {
		v = 0
	}
	if v > b.maxHealth {
		v = b.maxHealth
	}
	b.health = v
	if v > 0 {
		b.defeated = false
	}
	b.pub.Publish(event.Event{Type: event.BaseHealthChanged, Data: b.data(0)})
	b.checkDefeat()
}

func (b *Base) checkDefeat() {
	if b.health == 0 && !b.defeated {
		b.defeated = true
		log.Printf("PlayerBase: base destroyed")
		b.pub.Publish(event.Event{Type: event.PlayerDefeated, Data: b.data(0)})
	}
}

func (b *Base) data(amount int) event.BaseHealthData {
	return event.BaseHealthData{Amount: amount, Health: b.health, MaxHealth: b.maxHealth}
}
