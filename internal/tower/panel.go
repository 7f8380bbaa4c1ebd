// internal/tower/panel.go
package tower

import (
	"errors"
	"log"

	"go-td-core/internal/config"
	"go-td-core/internal/defs"
	"go-td-core/internal/event"
	"go-td-core/internal/types"
	"go-td-core/internal/utils"
)

var (
	ErrPanelClosed       = errors.New("upgrade panel is not showing")
	ErrInvalidChoice     = errors.New("invalid upgrade choice")
	ErrNotEnoughUpgrades = errors.New("not enough upgrade choices")
)

// UpgradePanel offers a levelled tower a random pick of its upgrades.
type UpgradePanel struct {
	rng *utils.PRNGService
	pub event.Publisher

	tower   *Tower
	choices []defs.UpgradeChoice
}

func NewUpgradePanel(rng *utils.PRNGService, pub event.Publisher) *UpgradePanel {
	if pub == nil {
		pub = event.Nop
	}
	if rng == nil {
		rng = utils.NewPRNGService(1)
	}
	return &UpgradePanel{rng: rng, pub: pub}
}

// Request shows distinct random choices for t. While the panel is already
// showing the request is ignored and the current offer is returned.
func (p *UpgradePanel) Request(t *Tower) ([]defs.UpgradeChoice, error) {
	if p.Showing() {
		return p.choices, nil
	}
	if !t.CanLevelUp() {
		return nil, ErrCannotLevelUp
	}
	pool := t.def.Upgrades
	if len(pool) < config.UpgradeChoicesOffered {
		log.Printf("UpgradePanel: %s has %d upgrades, need %d", t.def.ID, len(pool), config.UpgradeChoicesOffered)
		return nil, ErrNotEnoughUpgrades
	}

	idx := p.rng.PickDistinct(len(pool), config.UpgradeChoicesOffered)
	choices := make([]defs.UpgradeChoice, len(idx))
	names := make([]string, len(idx))
	for i, j := range idx {
		choices[i] = pool[j]
		names[i] = pool[j].ID
	}
	p.tower = t
	p.choices = choices
	p.pub.Publish(event.Event{Type: event.UpgradeOffered, Data: event.UpgradeOfferData{TowerID: t.id, Choices: names}})
	return choices, nil
}

// Choose applies choice i to the tower and closes the panel.
func (p *UpgradePanel) Choose(i int) error {
	if !p.Showing() {
		return ErrPanelClosed
	}
	if i < 0 || i >= len(p.choices) {
		return ErrInvalidChoice
	}
	t, choice := p.tower, p.choices[i]
	p.Close()
	if err := t.ApplyUpgrade(choice); err != nil {
		return err
	}
	p.pub.Publish(event.Event{Type: event.UpgradeChosen, Data: event.UpgradeOfferData{TowerID: t.id, Choices: []string{choice.ID}}})
	return nil
}

func (p *UpgradePanel) Close() {
	p.tower = nil
	p.choices = nil
}

func (p *UpgradePanel) Showing() bool {
	return p.tower != nil
}

func (p *UpgradePanel) Choices() []defs.UpgradeChoice {
	return p.choices
}

// TowerID is the tower the current offer is for, 0 when closed.
func (p *UpgradePanel) TowerID() types.EntityID {
	if p.tower == nil {
		return 0
	}
	return p.tower.id
}
