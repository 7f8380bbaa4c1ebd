// internal/tower/manager.go
package tower

import (
	"errors"
	"fmt"
	"log"

	"go-td-core/internal/defs"
	"go-td-core/internal/entity"
	"go-td-core/internal/event"
	"go-td-core/internal/types"
	"go-td-core/pkg/grid"
)

var (
	ErrNotPlacing       = errors.New("not in placement mode")
	ErrUnknownTower     = errors.New("unknown tower definition")
	ErrTowerNotFound    = errors.New("tower not found")
	ErrInvalidCell      = errors.New("cell outside the grid")
	ErrCellUnavailable  = errors.New("cell is not buildable")
	ErrInsufficientGold = errors.New("insufficient gold")
	ErrNoUpgradePath    = errors.New("tower has no further upgrade")
	ErrInvalidTargeting = errors.New("invalid targeting mode")
)

// Wallet is the part of the economy the manager spends from.
type Wallet interface {
	TrySpend(amount int) bool
	Earn(amount int) bool
}

// IDSource hands out entity ids.
type IDSource interface {
	NewEntity() types.EntityID
}

// Manager owns placed towers and the placement mode.
type Manager struct {
	defs   map[string]*defs.TowerDefinition
	grid   *grid.Grid
	wallet Wallet
	mods   ModifierSource
	ids    IDSource
	pub    event.Publisher

	towers *entity.Registry[*Tower]
	byCell map[grid.Point]types.EntityID

	placing   bool
	placingID string
}

func NewManager(towerDefs map[string]*defs.TowerDefinition, g *grid.Grid, wallet Wallet, mods ModifierSource, ids IDSource, pub event.Publisher) *Manager {
	if pub == nil {
		pub = event.Nop
	}
	return &Manager{
		defs:   towerDefs,
		grid:   g,
		wallet: wallet,
		mods:   mods,
		ids:    ids,
		pub:    pub,
		towers: entity.NewRegistry[*Tower](),
		byCell: make(map[grid.Point]types.EntityID),
	}
}

// StartPlacement arms placement of the given tower type.
func (m *Manager) StartPlacement(defID string) error {
	if _, ok := m.defs[defID]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTower, defID)
	}
	m.placing = true
	m.placingID = defID
	m.pub.Publish(event.Event{Type: event.PlacementModeChanged, Data: event.PlacementData{Active: true, DefID: defID}})
	return nil
}

// CancelPlacement leaves placement mode. It returns false if it was not active.
func (m *Manager) CancelPlacement() bool {
	if !m.placing {
		return false
	}
	m.placing = false
	m.pub.Publish(event.Event{Type: event.PlacementModeChanged, Data: event.PlacementData{Active: false, DefID: m.placingID}})
	m.placingID = ""
	return true
}

// Placing returns the armed tower type.
func (m *Manager) Placing() (string, bool) {
	return m.placingID, m.placing
}

// Place builds the armed tower type at cell (x, y). Placement mode stays on.
func (m *Manager) Place(x, y int) (*Tower, error) {
	if !m.placing {
		return nil, ErrNotPlacing
	}
	return m.Build(m.placingID, x, y)
}

// Build places a tower of defID at (x, y) regardless of placement mode.
// Gold is debited before the cell is claimed and refunded if claiming fails.
func (m *Manager) Build(defID string, x, y int) (*Tower, error) {
	def, ok := m.defs[defID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTower, defID)
	}
	if !m.grid.IsValidPosition(x, y) {
		return nil, fmt.Errorf("%w: (%d, %d)", ErrInvalidCell, x, y)
	}
	if !m.grid.CanBuildAt(x, y) {
		return nil, fmt.Errorf("%w: (%d, %d)", ErrCellUnavailable, x, y)
	}
	cost := m.BuildCost(defID)
	if !m.wallet.TrySpend(cost) {
		return nil, fmt.Errorf("%w: %s costs %d", ErrInsufficientGold, defID, cost)
	}
	if !m.grid.TryOccupy(x, y) {
		m.wallet.Earn(cost)
		return nil, fmt.Errorf("%w: (%d, %d)", ErrCellUnavailable, x, y)
	}

	cell := grid.Point{X: x, Y: y}
	t := New(m.ids.NewEntity(), def, cell, m.grid.GridToWorld(x, y), m.mods, m.pub)
	m.towers.Add(t.ID(), t)
	m.byCell[cell] = t.ID()
	log.Printf("Towers: placed %s #%d at (%d, %d) for %d gold", defID, t.ID(), x, y, cost)
	m.pub.Publish(event.Event{Type: event.TowerPlaced, Data: t.data()})
	return t, nil
}

// BuildCost is the price of defID after skill modifiers, or -1 if unknown.
func (m *Manager) BuildCost(defID string) int {
	def, ok := m.defs[defID]
	if !ok {
		return -1
	}
	return BuildCost(def, m.mods)
}

// Remove deletes a tower and frees its cell. There is no refund.
func (m *Manager) Remove(id types.EntityID) error {
	t, ok := m.towers.Get(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrTowerNotFound, id)
	}
	m.grid.Free(t.cell.X, t.cell.Y)
	m.towers.Remove(id)
	delete(m.byCell, t.cell)
	m.pub.Publish(event.Event{Type: event.TowerRemoved, Data: t.data()})
	return nil
}

// Upgrade replaces the tower with its next definition in the chain.
func (m *Manager) Upgrade(id types.EntityID) error {
	t, ok := m.towers.Get(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrTowerNotFound, id)
	}
	nextID := t.def.NextUpgradeID
	if nextID == "" {
		return ErrNoUpgradePath
	}
	next, ok := m.defs[nextID]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTower, nextID)
	}
	if !m.wallet.TrySpend(t.def.UpgradeCost) {
		return fmt.Errorf("%w: upgrade costs %d", ErrInsufficientGold, t.def.UpgradeCost)
	}
	t.replaceDefinition(next)
	m.pub.Publish(event.Event{Type: event.TowerUpgraded, Data: t.data()})
	return nil
}

func (m *Manager) SetTargeting(id types.EntityID, mode defs.TargetingMode) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidTargeting, mode)
	}
	t, ok := m.towers.Get(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrTowerNotFound, id)
	}
	t.SetTargeting(mode)
	return nil
}

func (m *Manager) Get(id types.EntityID) (*Tower, bool) {
	return m.towers.Get(id)
}

// At returns the tower standing on cell (x, y).
func (m *Manager) At(x, y int) (*Tower, bool) {
	id, ok := m.byCell[grid.Point{X: x, Y: y}]
	if !ok {
		return nil, false
	}
	return m.towers.Get(id)
}

// Towers returns towers in placement order.
func (m *Manager) Towers() []*Tower {
	return m.towers.Values()
}

func (m *Manager) Len() int {
	return m.towers.Len()
}

// Tick runs both combat phases: every tower acquires before any fires.
func (m *Manager) Tick(now, dt float64, candidates []Target) {
	towers := m.towers.Values()
	for _, t := range towers {
		t.Acquire(candidates)
	}
	for _, t := range towers {
		t.Engage(now, dt, candidates)
	}
}
