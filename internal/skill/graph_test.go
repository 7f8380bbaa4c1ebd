package skill

import (
	"errors"
	"testing"
	"time"

	"go-td-core/internal/defs"
)

func testTrees() []defs.SkillTree {
	return []defs.SkillTree{{
		ID: "offense",
		Skills: []defs.SkillDefinition{
			{ID: "A", Cost: 1, Modifiers: []defs.StatModifier{{Stat: defs.StatDamage, Type: defs.ModifierPercentage, Value: 10}}},
			{ID: "B", Cost: 2, Prerequisites: []string{"A"}, Modifiers: []defs.StatModifier{{Stat: defs.StatDamage, Value: 5}}},
			{ID: "C", Cost: 1, Prerequisites: []string{"B", "GHOST"}, TowerType: "ARROW",
				Modifiers: []defs.StatModifier{{Stat: defs.StatDamage, Value: 25}, {Stat: defs.StatRange, Value: 10}}},
			{ID: "A", Cost: 99},
		},
	}}
}

func fixedClock() time.Time { return time.UnixMilli(1700000000000) }

func TestUnlockRules(t *testing.T) {
	g := NewGraph(testTrees(), nil, nil)
	g.AddPoints(3)

	if err := g.Unlock("B"); !errors.Is(err, ErrPrerequisitesMissing) {
		t.Fatalf("Unlock(B) before A = %v", err)
	}
	if err := g.Unlock("NOPE"); !errors.Is(err, ErrUnknownSkill) {
		t.Fatalf("Unlock(NOPE) = %v", err)
	}
	if err := g.Unlock("A"); err != nil {
		t.Fatal(err)
	}
	if err := g.Unlock("A"); !errors.Is(err, ErrAlreadyUnlocked) {
		t.Fatalf("second Unlock(A) = %v", err)
	}
	if !g.CanUnlock("B") {
		t.Fatal("B should be unlockable")
	}
	if err := g.Unlock("B"); err != nil {
		t.Fatal(err)
	}
	if g.Points() != 0 {
		t.Errorf("Points = %d, want 0", g.Points())
	}
	if err := g.Unlock("C"); !errors.Is(err, ErrInsufficientPoints) {
		t.Errorf("Unlock(C) without points = %v", err)
	}

	if err := g.Lock("A"); !errors.Is(err, ErrHasDependents) {
		t.Errorf("Lock(A) with B unlocked = %v", err)
	}
	if err := g.Lock("B"); err != nil {
		t.Fatal(err)
	}
	if g.Points() != 2 || g.IsUnlocked("B") {
		t.Errorf("after Lock(B): points %d unlocked %v", g.Points(), g.IsUnlocked("B"))
	}
	if err := g.Lock("C"); !errors.Is(err, ErrNotUnlocked) {
		t.Errorf("Lock(C) = %v", err)
	}
}

func TestDuplicateKeepsFirstDefinition(t *testing.T) {
	g := NewGraph(testTrees(), nil, nil)
	s, ok := g.Skill("A")
	if !ok || s.Def.Cost != 1 {
		t.Fatalf("Skill(A) = %+v, want the first definition", s)
	}
	if len(g.Skills()) != 3 {
		t.Errorf("Skills() has %d entries, want 3", len(g.Skills()))
	}
}

func TestModifierValueAndTier(t *testing.T) {
	g := NewGraph(testTrees(), nil, nil)
	g.AddPoints(10)
	for _, id := range []string{"A", "B", "C"} {
		if err := g.Unlock(id); err != nil {
			t.Fatalf("Unlock(%s): %v", id, err)
		}
	}

	if got := g.ModifierValue(defs.StatDamage, "CANNON"); got != 15 {
		t.Errorf("generic damage = %v, want 15", got)
	}
	if got := g.ModifierValue(defs.StatDamage, "ARROW"); got != 40 {
		t.Errorf("arrow damage = %v, want 40", got)
	}
	if got := g.ModifierValue(defs.StatRange, "CANNON"); got != 0 {
		t.Errorf("cannon range = %v, want 0", got)
	}
	if g.Tier("A") != 0 || g.Tier("B") != 1 || g.Tier("C") != 2 {
		t.Errorf("tiers = %d %d %d", g.Tier("A"), g.Tier("B"), g.Tier("C"))
	}

	g.Reset()
	if g.Points() != 10 || g.ModifierValue(defs.StatDamage, "ARROW") != 0 {
		t.Errorf("after Reset: points %d", g.Points())
	}
}

func TestPersistAndLoad(t *testing.T) {
	store := NewMemoryStore()
	g := NewGraph(testTrees(), store, nil)
	g.SetClock(fixedClock)
	g.Load()
	g.AddPoints(3)
	if err := g.Unlock("A"); err != nil {
		t.Fatal(err)
	}
	if store.Saves() != 2 {
		t.Errorf("Saves = %d, want 2", store.Saves())
	}

	snap, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	snap.UnlockedSkillIDs = append(snap.UnlockedSkillIDs, "REMOVED_SKILL")
	if err := store.Save(snap); err != nil {
		t.Fatal(err)
	}

	restored := NewGraph(testTrees(), store, nil)
	restored.Load()
	if !restored.IsUnlocked("A") || restored.Points() != 2 {
		t.Errorf("restored: A %v points %d", restored.IsUnlocked("A"), restored.Points())
	}
	if !restored.LastSave().Equal(fixedClock()) {
		t.Errorf("LastSave = %v", restored.LastSave())
	}
}
