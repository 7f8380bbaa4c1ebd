package player

import (
	"testing"

	"go-td-core/internal/event"
)

func TestTakeDamageClampsAndDefeatsOnce(t *testing.T) {
	d := event.NewDispatcher()
	defeats := 0
	d.Subscribe(event.PlayerDefeated, event.ListenerFunc(func(event.Event) { defeats++ }))

	b := NewBase(10, d)
	b.TakeDamage(4)
	b.TakeDamage(-3)
	if b.Health() != 6 {
		t.Fatalf("Health = %d, want 6", b.Health())
	}
	b.TakeDamage(50)
	b.TakeDamage(1)
	d.Flush()

	if b.Health() != 0 || b.IsAlive() {
		t.Errorf("Health = %d, want 0", b.Health())
	}
	if defeats != 1 {
		t.Errorf("PlayerDefeated published %d times", defeats)
	}
}

func TestRestoreAndSetHealth(t *testing.T) {
	b := NewBase(10, nil)
	b.TakeDamage(5)
	b.Restore(20)
	if b.Health() != 10 {
		t.Errorf("Restore overflowed: %d", b.Health())
	}
	b.SetHealth(-4)
	if b.Health() != 0 {
		t.Errorf("SetHealth(-4) = %d", b.Health())
	}
	b.Restore(5)
	if b.Health() != 0 {
		t.Errorf("Restore revived a destroyed base")
	}
	b.SetHealth(3)
	if !b.IsAlive() {
		t.Errorf("SetHealth(3) should revive")
	}
}
