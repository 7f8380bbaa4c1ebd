// internal/skill/graph.go
package skill

import (
	"errors"
	"fmt"
	"log"
	"time"

	"go-td-core/internal/defs"
	"go-td-core/internal/event"
)

var (
	ErrUnknownSkill         = errors.New("unknown skill")
	ErrAlreadyUnlocked      = errors.New("skill already unlocked")
	ErrNotUnlocked          = errors.New("skill is not unlocked")
	ErrPrerequisitesMissing = errors.New("prerequisites not unlocked")
	ErrInsufficientPoints   = errors.New("not enough skill points")
	ErrHasDependents        = errors.New("an unlocked skill depends on this one")
)

// Skill is a read-only view of one skill and the player's state for it.
type Skill struct {
	Def       *defs.SkillDefinition
	Unlocked  bool
	CanUnlock bool
	Tier      int
}

// Graph holds skill definitions and the player's unlocks and points.
// Definitions are shared; unlock state lives only here and in the Store.
type Graph struct {
	defs  map[string]*defs.SkillDefinition
	order []string
	tiers map[string]int

	unlocked map[string]bool
	points   int
	lastSave time.Time

	store Store
	pub   event.Publisher
	now   func() time.Time
}

// NewGraph indexes the trees. Problems are logged; duplicates keep the first
// definition and unknown prerequisites are ignored.
func NewGraph(trees []defs.SkillTree, store Store, pub event.Publisher) *Graph {
	if pub == nil {
		pub = event.Nop
	}
	for _, w := range defs.ValidateSkillTrees(trees) {
		log.Printf("Skills: %s", w)
	}

	g := &Graph{
		defs:     make(map[string]*defs.SkillDefinition),
		unlocked: make(map[string]bool),
		store:    store,
		pub:      pub,
		now:      time.Now,
	}
	for _, tree := range trees {
		for i := range tree.Skills {
			s := tree.Skills[i]
			if s.ID == "" {
				continue
			}
			if _, dup := g.defs[s.ID]; dup {
				continue
			}
			g.defs[s.ID] = &s
			g.order = append(g.order, s.ID)
		}
	}
	for _, id := range g.order {
		def := g.defs[id]
		known := def.Prerequisites[:0:0]
		for _, pre := range def.Prerequisites {
			if _, ok := g.defs[pre]; ok {
				known = append(known, pre)
			}
		}
		def.Prerequisites = known
	}
	g.tiers = computeTiers(g.defs, g.order)
	return g
}

// SetClock replaces the time source used for save timestamps.
func (g *Graph) SetClock(now func() time.Time) {
	g.now = now
}

// Load restores progress from the store. A missing or unreadable save
// starts fresh; unknown skill ids are skipped.
func (g *Graph) Load() {
	g.unlocked = make(map[string]bool)
	g.points = 0
	if g.store == nil {
		return
	}

	snap, err := g.store.Load()
	if err != nil {
		if !errors.Is(err, ErrNoSave) {
			log.Printf("Skills: %v, starting fresh", err)
		}
		return
	}

	g.points = max(snap.SkillPoints, 0)
	for _, id := range snap.UnlockedSkillIDs {
		if _, ok := g.defs[id]; !ok {
			log.Printf("Skills: skipping unknown saved skill %q", id)
			continue
		}
		g.unlocked[id] = true
	}
	if snap.LastSaveTimestamp > 0 {
		g.lastSave = time.UnixMilli(snap.LastSaveTimestamp)
	}
	log.Printf("Skills: loaded %d unlocked skills and %d points", len(g.unlocked), g.points)
}

func (g *Graph) Points() int { return g.points }

func (g *Graph) IsUnlocked(id string) bool { return g.unlocked[id] }

// LastSave is the time of the last successful save or load.
func (g *Graph) LastSave() time.Time { return g.lastSave }

// AddPoints grants n skill points. Non-positive n is ignored.
func (g *Graph) AddPoints(n int) {
	if n <= 0 {
		log.Printf("Skills: ignoring non-positive point grant %d", n)
		return
	}
	g.points += n
	g.pub.Publish(event.Event{Type: event.SkillPointsChanged, Data: event.SkillData{Points: g.points}})
	g.persist()
}

// CanUnlock reports whether Unlock(id) would succeed.
func (g *Graph) CanUnlock(id string) bool {
	return g.checkUnlock(id) == nil
}

func (g *Graph) checkUnlock(id string) error {
	def, ok := g.defs[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSkill, id)
	}
	if g.unlocked[id] {
		return fmt.Errorf("%w: %q", ErrAlreadyUnlocked, id)
	}
	for _, pre := range def.Prerequisites {
		if !g.unlocked[pre] {
			return fmt.Errorf("%w: %q needs %q", ErrPrerequisitesMissing, id, pre)
		}
	}
	if g.points < def.Cost {
		return fmt.Errorf("%w: %q costs %d, have %d", ErrInsufficientPoints, id, def.Cost, g.points)
	}
	return nil
}

func (g *Graph) Unlock(id string) error {
	if err := g.checkUnlock(id); err != nil {
		return err
	}
	g.points -= g.defs[id].Cost
	g.unlocked[id] = true
	g.pub.Publish(event.Event{Type: event.SkillUnlocked, Data: event.SkillData{ID: id, Points: g.points}})
	g.persist()
	return nil
}

// Lock refunds an unlocked skill that nothing unlocked depends on.
func (g *Graph) Lock(id string) error {
	def, ok := g.defs[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSkill, id)
	}
	if !g.unlocked[id] {
		return fmt.Errorf("%w: %q", ErrNotUnlocked, id)
	}
	for _, other := range g.order {
		if !g.unlocked[other] {
			continue
		}
		for _, pre := range g.defs[other].Prerequisites {
			if pre == id {
				return fmt.Errorf("%w: %q is needed by %q", ErrHasDependents, id, other)
			}
		}
	}
	delete(g.unlocked, id)
	g.points += def.Cost
	g.pub.Publish(event.Event{Type: event.SkillLocked, Data: event.SkillData{ID: id, Points: g.points}})
	g.persist()
	return nil
}

// Reset locks every skill and refunds the points.
func (g *Graph) Reset() {
	refund := 0
	for id := range g.unlocked {
		refund += g.defs[id].Cost
	}
	g.unlocked = make(map[string]bool)
	g.points += refund
	g.pub.Publish(event.Event{Type: event.SkillsReset, Data: event.SkillData{Points: g.points}})
	g.persist()
}

// Skill returns the view of one skill.
func (g *Graph) Skill(id string) (Skill, bool) {
	def, ok := g.defs[id]
	if !ok {
		return Skill{}, false
	}
	return Skill{
		Def:       def,
		Unlocked:  g.unlocked[id],
		CanUnlock: g.CanUnlock(id),
		Tier:      g.tiers[id],
	}, true
}

// Skills returns every skill in definition order.
func (g *Graph) Skills() []Skill {
	out := make([]Skill, 0, len(g.order))
	for _, id := range g.order {
		s, _ := g.Skill(id)
		out = append(out, s)
	}
	return out
}

// Tier is the length of the longest prerequisite chain below id.
func (g *Graph) Tier(id string) int {
	return g.tiers[id]
}

// ModifierValue sums the modifiers for stat over unlocked skills that are
// generic or scoped to towerType.
func (g *Graph) ModifierValue(stat defs.StatType, towerType string) float64 {
	total := 0.0
	for _, id := range g.order {
		if !g.unlocked[id] {
			continue
		}
		def := g.defs[id]
		if def.TowerType != "" && def.TowerType != towerType {
			continue
		}
		for _, m := range def.Modifiers {
			if m.Stat == stat {
				total += m.Value
			}
		}
	}
	return total
}

// Snapshot captures the current progress. Unlocked ids are in definition order.
func (g *Graph) Snapshot() *Snapshot {
	ids := make([]string, 0, len(g.unlocked))
	for _, id := range g.order {
		if g.unlocked[id] {
			ids = append(ids, id)
		}
	}
	return &Snapshot{
		SkillPoints:       g.points,
		UnlockedSkillIDs:  ids,
		LastSaveTimestamp: g.now().UnixMilli(),
	}
}

// Save writes the snapshot to the store.
func (g *Graph) Save() error {
	if g.store == nil {
		return nil
	}
	snap := g.Snapshot()
	if err := g.store.Save(snap); err != nil {
		return err
	}
	g.lastSave = time.UnixMilli(snap.LastSaveTimestamp)
	return nil
}

// Suspend saves on pause or teardown, logging instead of failing.
func (g *Graph) Suspend() {
	g.persist()
}

func (g *Graph) persist() {
	if err := g.Save(); err != nil {
		log.Printf("Skills: failed to save progress: %v", err)
	}
}

func computeTiers(byID map[string]*defs.SkillDefinition, order []string) map[string]int {
	tiers := make(map[string]int, len(order))
	visiting := make(map[string]bool)
	var tier func(id string) int
	tier = func(id string) int {
		if t, ok := tiers[id]; ok {
			return t
		}
		if visiting[id] {
			return 0
		}
		visiting[id] = true
		t := 0
		for _, pre := range byID[id].Prerequisites {
			t = max(t, tier(pre)+1)
		}
		visiting[id] = false
		tiers[id] = t
		return t
	}
	for _, id := range order {
		tier(id)
	}
	return tiers
}
