// internal/state/game_state.go
package state

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"go-td-core/internal/app"
	"go-td-core/internal/config"
	"go-td-core/internal/defs"
	"go-td-core/internal/enemy"
	"go-td-core/internal/spawn"
	"go-td-core/internal/system"
	"go-td-core/internal/tower"
	"go-td-core/internal/types"
	"go-td-core/internal/ui"
	"go-td-core/pkg/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

// GameState runs and draws a game.
type GameState struct {
	sm                *StateMachine
	game              *app.Game
	renderer          *system.RenderSystem
	indicator         *ui.StateIndicator
	speedButton       *ui.SpeedButton
	pauseButton       *ui.PauseButton
	healthIndicator   *ui.PlayerHealthIndicator
	timelineIndicator *ui.TimelineIndicator
	levelIndicator    *ui.TowerLevelIndicator
	infoPanel         *ui.InfoPanel
	face              font.Face
	titleFace         font.Face
	selectedDef       int
	selected          types.EntityID
	message           string
	messageTime       time.Time
	lastClickTime     time.Time
}

func NewGameState(sm *StateMachine, g *app.Game) *GameState {
	layout := render.Layout{
		OffsetX:    float64(config.ScreenWidth-g.Grid.Width()*config.CellPixels) / 2,
		OffsetY:    config.HUDHeight,
		CellSize:   g.Grid.CellSize(),
		CellPixels: config.CellPixels,
	}
	face := ui.MustFace(14)
	titleFace := ui.MustFace(18)

	return &GameState{
		sm:       sm,
		game:     g,
		renderer: system.NewRenderSystem(g, layout),
		indicator: ui.NewStateIndicator(
			float32(config.ScreenWidth-config.IndicatorOffsetX),
			float32(config.IndicatorOffsetX),
			float32(config.IndicatorRadius),
		),
		speedButton:       ui.NewSpeedButton(config.SpeedButtonX, config.SpeedButtonY, config.SpeedButtonSize, config.SpeedButtonColors, config.GameSpeeds),
		pauseButton:       ui.NewPauseButton(config.PauseButtonX, config.PauseButtonY, config.PauseButtonSize, config.PauseButtonColor, config.PlayButtonColor),
		healthIndicator:   ui.NewPlayerHealthIndicator(20, 30),
		timelineIndicator: ui.NewTimelineIndicator(config.ScreenWidth/2-120, 24),
		levelIndicator:    ui.NewTowerLevelIndicator(config.ScreenWidth/2+160, 20),
		infoPanel:         ui.NewInfoPanel(face, titleFace),
		face:              face,
		titleFace:         titleFace,
	}
}

func (gs *GameState) Game() *app.Game { return gs.game }

func (gs *GameState) Enter() {
	gs.pauseButton.SetPaused(false)
}

func (gs *GameState) Exit() {}

func (gs *GameState) Update(deltaTime float64) {
	gs.infoPanel.Update()
	gs.renderer.Update(deltaTime)

	if inpututil.IsKeyJustPressed(ebiten.KeyF9) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		gs.pause()
		return
	}
	gs.handleKeys()

	gs.game.Tick(deltaTime * gs.speedButton.Speed())
	if gs.selected != 0 && !gs.exists(gs.selected) {
		gs.deselect()
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if !gs.handleUIClick(x, y) {
			gs.handleGameClick(x, y, ebiten.MouseButtonLeft)
		}
		gs.lastClickTime = time.Now()
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		x, y := ebiten.CursorPosition()
		gs.handleGameClick(x, y, ebiten.MouseButtonRight)
		gs.lastClickTime = time.Now()
	}
}

func (gs *GameState) pause() {
	gs.pauseButton.Toggle()
	gs.sm.SetState(NewPauseState(gs.sm, gs))
}

func (gs *GameState) handleKeys() {
	g := gs.game
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyTab):
		if n := len(g.Library.TowerOrder); n > 0 {
			gs.selectedDef = (gs.selectedDef + 1) % n
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		gs.report("start", g.StartSpawning())
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		gs.report("restart", g.RestartSpawning())
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		g.CancelPlacement()
		gs.deselect()
	case inpututil.IsKeyJustPressed(ebiten.KeyB):
		gs.report("placement", g.StartPlacement(gs.selectedTowerDef()))
	}

	if gs.selected == 0 {
		return
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyU):
		gs.doAction(ui.ActionUpgrade)
	case inpututil.IsKeyJustPressed(ebiten.KeyL):
		gs.doAction(ui.ActionLevelUp)
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		gs.doAction(ui.ActionTargeting)
	case inpututil.IsKeyJustPressed(ebiten.KeyDelete), inpututil.IsKeyJustPressed(ebiten.KeyX):
		gs.doAction(ui.ActionRemove)
	case inpututil.IsKeyJustPressed(ebiten.Key1):
		gs.doAction(ui.ActionChooseFirst)
	case inpututil.IsKeyJustPressed(ebiten.Key2):
		gs.doAction(ui.ActionChooseSecond)
	}
}

func (gs *GameState) selectedTowerDef() string {
	order := gs.game.Library.TowerOrder
	if len(order) == 0 {
		return ""
	}
	return order[gs.selectedDef%len(order)]
}

func (gs *GameState) cooledDown(last time.Time) bool {
	return time.Since(last) >= time.Duration(config.ClickCooldown)*time.Millisecond
}

// handleUIClick reports whether the click hit a widget.
func (gs *GameState) handleUIClick(x, y int) bool {
	g := gs.game
	switch {
	case gs.speedButton.IsClicked(x, y):
		if gs.cooledDown(gs.speedButton.LastToggleTime) {
			gs.speedButton.ToggleState()
		}
		return true
	case gs.pauseButton.IsClicked(x, y):
		if gs.cooledDown(gs.pauseButton.LastToggleTime) {
			gs.pause()
		}
		return true
	case gs.indicator.IsClicked(x, y):
		if gs.cooledDown(gs.indicator.LastClickTime) {
			gs.indicator.HandleClick()
			switch {
			case g.Spawner.State() != spawn.Running:
				gs.report("start", g.StartSpawning())
			case g.Spawner.Paused():
				gs.report("resume", g.ResumeSpawning())
			default:
				gs.report("pause", g.PauseSpawning())
			}
		}
		return true
	case gs.infoPanel.Contains(y):
		gs.doAction(gs.infoPanel.Click(x, y))
		return true
	}
	return false
}

func (gs *GameState) doAction(action ui.PanelAction) {
	g := gs.game
	id := gs.selected
	switch action {
	case ui.ActionUpgrade:
		gs.report("upgrade", g.UpgradeTower(id))
	case ui.ActionLevelUp:
		gs.report("level up", g.RequestUpgradePanel(id))
	case ui.ActionTargeting:
		if t, ok := g.Towers.Get(id); ok {
			gs.report("targeting", g.SetTargeting(id, nextMode(t.Targeting())))
		}
	case ui.ActionRemove:
		gs.report("remove", g.RemoveTower(id))
		gs.deselect()
	case ui.ActionChooseFirst, ui.ActionChooseSecond:
		gs.report("upgrade", g.ChooseUpgrade(int(action-ui.ActionChooseFirst)))
	}
}

func nextMode(m defs.TargetingMode) defs.TargetingMode {
	for i, v := range defs.TargetingModes {
		if v == m {
			return defs.TargetingModes[(i+1)%len(defs.TargetingModes)]
		}
	}
	return defs.TargetingModes[0]
}

func (gs *GameState) handleGameClick(x, y int, button ebiten.MouseButton) {
	g := gs.game
	cx, cy := gs.renderer.Layout().ToCell(x, y)

	if button == ebiten.MouseButtonRight {
		if !g.CancelPlacement().OK {
			gs.deselect()
		}
		return
	}

	if id, ok := gs.findEntityAt(x, y); ok {
		gs.selected = id
		gs.infoPanel.SetTarget(id)
		return
	}
	if !g.Grid.IsValidPosition(cx, cy) {
		gs.deselect()
		return
	}
	if _, placing := g.Towers.Placing(); placing {
		gs.report("place", g.PlaceTower(cx, cy))
		return
	}
	res := g.BuildTower(gs.selectedTowerDef(), cx, cy)
	gs.report("build", res)
	if res.OK {
		gs.selected = res.TowerID
		gs.infoPanel.SetTarget(res.TowerID)
	}
}

// findEntityAt looks for a tower in the clicked cell, then an enemy under
// the cursor.
func (gs *GameState) findEntityAt(x, y int) (types.EntityID, bool) {
	layout := gs.renderer.Layout()
	cx, cy := layout.ToCell(x, y)
	if t, ok := gs.game.Towers.At(cx, cy); ok {
		return t.ID(), true
	}
	for _, a := range gs.game.EnemyList() {
		ex, ey := layout.ToScreen(a.Position())
		if math.Hypot(float64(ex)-float64(x), float64(ey)-float64(y)) <= config.EnemyRadius {
			return a.ID(), true
		}
	}
	return 0, false
}

func (gs *GameState) exists(id types.EntityID) bool {
	if _, ok := gs.game.Towers.Get(id); ok {
		return true
	}
	a, ok := gs.game.Enemies.Get(id)
	return ok && a.IsAlive()
}

func (gs *GameState) deselect() {
	gs.selected = 0
	gs.infoPanel.Hide()
}

func (gs *GameState) report(action string, res app.Result) {
	gs.messageTime = time.Now()
	if res.OK {
		gs.message = action + ": ok"
		return
	}
	gs.message = action + ": " + res.Reason
}

func (gs *GameState) spawnerColor() color.Color {
	s := gs.game.Spawner
	switch {
	case s.State() == spawn.Running && s.Paused():
		return config.PausedStateColor
	case s.State() == spawn.Running:
		return config.RunningStateColor
	case s.State() == spawn.Complete:
		return config.DoneStateColor
	}
	return config.IdleStateColor
}

func (gs *GameState) timelineStatus() ui.TimelineStatus {
	s := gs.game.Spawner
	st := ui.TimelineStatus{State: s.State().String(), Progress: s.Progress()}
	if s.Paused() {
		st.State = "Paused"
	}
	if tl := s.Timeline(); tl != nil {
		st.Name = tl.Name
	}
	if s.State() == spawn.Running {
		if ev, in, ok := s.NextEvent(); ok {
			st.NextEvent, st.NextIn, st.HasNext = ev.Name, in, true
		}
	}
	return st
}

func (gs *GameState) Draw(screen *ebiten.Image) {
	g := gs.game
	mx, my := ebiten.CursorPosition()
	hx, hy := gs.renderer.Layout().ToCell(mx, my)
	gs.renderer.Draw(screen, hx, hy, gs.selected)

	gs.indicator.Draw(screen, gs.spawnerColor())
	gs.speedButton.Draw(screen)
	gs.pauseButton.Draw(screen)
	gs.healthIndicator.Draw(screen, gs.face, g.Base.Health(), g.Base.MaxHealth())
	gs.timelineIndicator.Draw(screen, gs.face, gs.timelineStatus())

	def := gs.selectedTowerDef()
	hud := fmt.Sprintf("Gold %d   Build %s (%d)   Skill points %d   x%g",
		g.Ledger.Balance(), def, g.Towers.BuildCost(def), g.Skills.Points(), gs.speedButton.Speed())
	text.Draw(screen, hud, gs.face, 140, 20, config.TextLightColor)
	if gs.message != "" && time.Since(gs.messageTime) < 3*time.Second {
		text.Draw(screen, gs.message, gs.face, 140, 40, config.TextLightColor)
	}

	gs.drawSelection(screen, mx, my)

	if g.Over() {
		vector.DrawFilledRect(screen, 0, 0, config.ScreenWidth, config.ScreenHeight, color.RGBA{0, 0, 0, 160}, false)
		msg := "BASE DESTROYED"
		w := text.BoundString(gs.titleFace, msg).Dx()
		text.Draw(screen, msg, gs.titleFace, (config.ScreenWidth-w)/2, config.ScreenHeight/2, config.ExitColor)
	}
}

func (gs *GameState) drawSelection(screen *ebiten.Image, mx, my int) {
	g := gs.game
	if t, ok := g.Towers.Get(gs.selected); ok {
		gs.drawTowerLevel(screen, t)
		var offer []string
		if g.Panel.Showing() && g.Panel.TowerID() == t.ID() {
			for _, c := range g.Panel.Choices() {
				offer = append(offer, c.Name)
			}
		}
		cost := 0
		if next, ok := g.Library.Towers[t.Def().NextUpgradeID]; ok && next != nil {
			cost = t.Def().UpgradeCost
		}
		gs.infoPanel.DrawTower(screen, t, cost, offer, mx, my)
		return
	}
	if a, ok := g.Enemies.Get(gs.selected); ok {
		gs.drawEnemyInfo(screen, a)
	}
}

func (gs *GameState) drawTowerLevel(screen *ebiten.Image, t *tower.Tower) {
	def := t.Def()
	next, _ := def.ExperienceFor(t.Level() + 1)
	gs.levelIndicator.Draw(screen, gs.face, t.Level(), def.MaxLevel, t.Experience(), next, t.CanLevelUp())
}

func (gs *GameState) drawEnemyInfo(screen *ebiten.Image, a *enemy.Agent) {
	gs.infoPanel.DrawEnemy(screen, a)
}
