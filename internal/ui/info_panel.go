// internal/ui/info_panel.go
package ui

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"go-td-core/internal/config"
	"go-td-core/internal/enemy"
	"go-td-core/internal/tower"
	"go-td-core/internal/types"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

const (
	panelHeight    = 150
	panelMargin    = 5
	animationSpeed = 10.0
	lineHeight     = 20
	columnSpacing  = 200
	buttonWidth    = 130
	buttonHeight   = 32
	buttonGap      = 10
)

// PanelAction is what a click on the panel asks the game to do.
type PanelAction int

const (
	ActionNone PanelAction = iota
	ActionUpgrade
	ActionLevelUp
	ActionTargeting
	ActionRemove
	ActionChooseFirst
	ActionChooseSecond
)

// InfoPanel slides up from the bottom and describes the selected tower or
// enemy.
type InfoPanel struct {
	IsVisible     bool
	TargetEntity  types.EntityID
	fontFace      font.Face
	titleFontFace font.Face
	currentY      float64
	targetY       float64
	buttons       []Button
	actions       []PanelAction
}

func NewInfoPanel(face, titleFace font.Face) *InfoPanel {
	return &InfoPanel{
		fontFace:      face,
		titleFontFace: titleFace,
		currentY:      config.ScreenHeight,
		targetY:       config.ScreenHeight,
	}
}

func (p *InfoPanel) SetTarget(id types.EntityID) {
	p.TargetEntity = id
	p.IsVisible = true
	p.targetY = config.ScreenHeight - panelHeight
}

func (p *InfoPanel) Hide() {
	p.targetY = config.ScreenHeight
}

// Contains reports whether y falls on the visible panel.
func (p *InfoPanel) Contains(y int) bool {
	return p.IsVisible && float64(y) >= p.currentY
}

// Update advances the slide animation.
func (p *InfoPanel) Update() {
	if p.currentY == p.targetY {
		return
	}
	diff := p.targetY - p.currentY
	switch {
	case math.Abs(diff) < animationSpeed:
		p.currentY = p.targetY
	case diff > 0:
		p.currentY += animationSpeed
	default:
		p.currentY -= animationSpeed
	}
	if p.currentY >= config.ScreenHeight {
		p.IsVisible = false
		p.TargetEntity = 0
	}
}

// Click maps a click to the action of the button under it.
func (p *InfoPanel) Click(x, y int) PanelAction {
	if !p.IsVisible {
		return ActionNone
	}
	for i := range p.buttons {
		if p.buttons[i].Contains(x, y) && !p.buttons[i].Disabled {
			return p.actions[i]
		}
	}
	return ActionNone
}

func (p *InfoPanel) rect() image.Rectangle {
	return image.Rect(
		panelMargin,
		int(p.currentY)+panelMargin,
		config.ScreenWidth-panelMargin,
		int(p.currentY)+panelHeight-panelMargin,
	)
}

func (p *InfoPanel) drawFrame(screen *ebiten.Image) image.Rectangle {
	r := p.rect()
	bg := color.RGBA{R: 25, G: 35, B: 45, A: 230}
	border := color.RGBA{R: 70, G: 130, B: 180, A: 255}
	vector.DrawFilledRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), bg, true)
	vector.StrokeRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), 2, border, true)
	return r
}

// DrawTower renders tower stats and the action buttons. offer is the open
// upgrade offer for this tower, if any.
func (p *InfoPanel) DrawTower(screen *ebiten.Image, t *tower.Tower, upgradeCost int, offer []string, mx, my int) {
	if !p.IsVisible {
		return
	}
	r := p.drawFrame(screen)
	x, y := r.Min.X+15, r.Min.Y+15+lineHeight

	def := t.Def()
	name := def.Name
	if name == "" {
		name = def.ID
	}
	text.Draw(screen, fmt.Sprintf("%s  %s", name, ToRoman(t.Level())), p.titleFontFace, x, y, config.TextLightColor)
	y += lineHeight

	st := t.Stats()
	text.Draw(screen, fmt.Sprintf("Damage: %.1f", st.Damage), p.fontFace, x, y, config.TextLightColor)
	text.Draw(screen, fmt.Sprintf("Range: %.1f", st.Range), p.fontFace, x+columnSpacing, y, config.TextLightColor)
	y += lineHeight
	text.Draw(screen, fmt.Sprintf("Fire rate: %.2f/s", st.FireRate), p.fontFace, x, y, config.TextLightColor)
	text.Draw(screen, fmt.Sprintf("Attack: %s", st.Attack), p.fontFace, x+columnSpacing, y, config.TextLightColor)
	y += lineHeight
	text.Draw(screen, fmt.Sprintf("Targeting: %s", t.Targeting()), p.fontFace, x, y, config.TextLightColor)
	text.Draw(screen, fmt.Sprintf("XP: %d", t.Experience()), p.fontFace, x+columnSpacing, y, config.TextLightColor)

	p.buttons, p.actions = p.buttons[:0], p.actions[:0]
	if len(offer) > 0 {
		for i, label := range offer {
			p.addButton(r, label, false, ActionChooseFirst+PanelAction(i))
		}
	} else {
		upgrade := "Upgrade"
		if def.NextUpgradeID != "" {
			upgrade = fmt.Sprintf("Upgrade (%d)", upgradeCost)
		}
		p.addButton(r, upgrade, def.NextUpgradeID == "", ActionUpgrade)
		p.addButton(r, "Level up", !t.CanLevelUp(), ActionLevelUp)
		p.addButton(r, "Targeting", false, ActionTargeting)
		p.addButton(r, "Remove", false, ActionRemove)
	}
	for i := range p.buttons {
		p.buttons[i].Draw(screen, p.fontFace, p.buttons[i].Contains(mx, my))
	}
}

func (p *InfoPanel) addButton(r image.Rectangle, label string, disabled bool, action PanelAction) {
	n := len(p.buttons)
	maxX := r.Max.X - 20 - n*(buttonWidth+buttonGap)
	p.buttons = append(p.buttons, Button{
		Rect:     image.Rect(maxX-buttonWidth, r.Max.Y-buttonHeight-20, maxX, r.Max.Y-20),
		Text:     label,
		Disabled: disabled,
	})
	p.actions = append(p.actions, action)
}

// DrawEnemy renders the stats of an enemy.
func (p *InfoPanel) DrawEnemy(screen *ebiten.Image, a *enemy.Agent) {
	if !p.IsVisible {
		return
	}
	r := p.drawFrame(screen)
	p.buttons, p.actions = p.buttons[:0], p.actions[:0]
	x, y := r.Min.X+15, r.Min.Y+15+lineHeight

	def := a.Def()
	name := def.Name
	if name == "" {
		name = def.ID
	}
	text.Draw(screen, name, p.titleFontFace, x, y, config.TextLightColor)
	y += lineHeight
	text.Draw(screen, fmt.Sprintf("Health: %.0f / %.0f", a.Health(), a.MaxHealth()), p.fontFace, x, y, config.TextLightColor)
	text.Draw(screen, fmt.Sprintf("Speed: %.2f", a.Speed()), p.fontFace, x+columnSpacing, y, config.TextLightColor)
	y += lineHeight
	text.Draw(screen, fmt.Sprintf("Reward: %d", a.GoldReward()), p.fontFace, x, y, config.TextLightColor)
	text.Draw(screen, fmt.Sprintf("Damage: %d", a.AttackDamage()), p.fontFace, x+columnSpacing, y, config.TextLightColor)
	y += lineHeight
	text.Draw(screen, fmt.Sprintf("Progress: %.0f%%", a.PathProgress()*100), p.fontFace, x, y, config.TextLightColor)
}
