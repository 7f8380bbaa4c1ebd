// internal/system/render.go
package system

import (
	"image/color"
	"math"

	"go-td-core/internal/app"
	"go-td-core/internal/config"
	"go-td-core/internal/defs"
	"go-td-core/internal/event"
	"go-td-core/internal/types"
	"go-td-core/pkg/grid"
	"go-td-core/pkg/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	shotTTL      = 0.08
	explosionTTL = 0.3
)

// RenderSystem draws the board, towers, enemies and transient effects.
type RenderSystem struct {
	game     *app.Game
	layout   render.Layout
	colors   render.MapColors
	mapImage *ebiten.Image
	dirty    bool
	effects  render.Effects
}

func NewRenderSystem(g *app.Game, layout render.Layout) *RenderSystem {
	s := &RenderSystem{
		game:   g,
		layout: layout,
		colors: render.MapColors{
			Background: config.BackgroundColor,
			Buildable:  config.BuildableColor,
			Path:       config.PathColor,
			Occupied:   config.OccupiedColor,
			Blocked:    config.BlockedColor,
			GridLine:   config.GridLineColor,
			Entry:      config.EntryColor,
			Exit:       config.ExitColor,
		},
		dirty: true,
	}
	g.Events.Subscribe(event.CellTypeChanged, event.ListenerFunc(func(event.Event) { s.dirty = true }))
	g.Events.Subscribe(event.TowerFired, event.ListenerFunc(s.onShot))
	g.Events.Subscribe(event.Explosion, event.ListenerFunc(s.onExplosion))
	return s
}

func (s *RenderSystem) Layout() render.Layout { return s.layout }

func (s *RenderSystem) onShot(e event.Event) {
	if d, ok := e.Data.(event.ShotData); ok {
		s.effects.AddLine(d.From, d.To, shotTTL)
	}
}

func (s *RenderSystem) onExplosion(e event.Event) {
	if d, ok := e.Data.(event.ExplosionData); ok {
		s.effects.AddRing(d.Center, d.Radius, explosionTTL)
	}
}

// Update ages the effects by real frame time.
func (s *RenderSystem) Update(dt float64) {
	s.effects.Update(dt)
}

// renderMapImage pre-renders the cells. It runs again whenever a cell
// changes type.
func (s *RenderSystem) renderMapImage(w, h int) {
	if s.mapImage == nil {
		s.mapImage = ebiten.NewImage(w, h)
	}
	s.mapImage.Fill(s.colors.Background)

	g := s.game.Grid
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			cell, _ := g.Cell(x, y)
			px, py, size := s.layout.CellRect(x, y)
			vector.DrawFilledRect(s.mapImage, px, py, size, size, s.cellColor(cell.Type), true)
			vector.StrokeRect(s.mapImage, px, py, size, size, 1, s.colors.GridLine, true)
		}
	}

	for _, p := range s.game.Paths {
		if p.Count() == 0 {
			continue
		}
		r := s.layout.Length(g.CellSize()) * 0.25
		sx, sy := s.layout.ToScreen(p.Start())
		ex, ey := s.layout.ToScreen(p.End())
		vector.DrawFilledCircle(s.mapImage, sx, sy, r, s.colors.Entry, true)
		vector.DrawFilledCircle(s.mapImage, ex, ey, r, s.colors.Exit, true)
	}
	s.dirty = false
}

func (s *RenderSystem) cellColor(t grid.CellType) color.RGBA {
	switch t {
	case grid.Path:
		return s.colors.Path
	case grid.Occupied:
		return s.colors.Occupied
	case grid.Blocked:
		return s.colors.Blocked
	}
	return s.colors.Buildable
}

// Draw renders a frame. hoverX/hoverY is the cell under the cursor, and
// selected the tower whose range is shown (zero for none).
func (s *RenderSystem) Draw(screen *ebiten.Image, hoverX, hoverY int, selected types.EntityID) {
	if s.dirty || s.mapImage == nil {
		w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
		s.renderMapImage(w, h)
	}
	screen.DrawImage(s.mapImage, nil)

	if s.game.Grid.IsValidPosition(hoverX, hoverY) {
		px, py, size := s.layout.CellRect(hoverX, hoverY)
		vector.DrawFilledRect(screen, px, py, size, size, config.HoverColor, true)
	}

	s.drawTowers(screen, selected)
	s.drawEnemies(screen)
	s.drawEffects(screen)
}

func (s *RenderSystem) towerColor(def *defs.TowerDefinition) color.RGBA {
	if def.Visuals.Color.A > 0 {
		return def.Visuals.Color
	}
	for i, id := range s.game.Library.TowerOrder {
		if id == def.ID {
			return config.TowerColors[i%len(config.TowerColors)]
		}
	}
	return config.TowerColors[0]
}

func (s *RenderSystem) drawTowers(screen *ebiten.Image, selected types.EntityID) {
	cellPx := s.layout.Length(s.game.Grid.CellSize())
	for _, t := range s.game.Towers.Towers() {
		def := t.Def()
		x, y := s.layout.ToScreen(t.Position())

		factor := def.Visuals.RadiusFactor
		if factor <= 0 {
			factor = config.TowerRadiusFactor
		}
		r := cellPx * float32(factor)
		fill := s.towerColor(def)
		if !t.Turret().Aiming {
			fill = render.LightenColor(render.DarkenColor(fill), 40)
		}
		vector.DrawFilledCircle(screen, x, y, r+2, config.TowerStrokeColor, true)
		vector.DrawFilledCircle(screen, x, y, r, fill, true)

		a := t.Turret().CurrentAngle
		bx := x + float32(math.Cos(a))*r*1.4
		by := y + float32(math.Sin(a))*r*1.4
		vector.StrokeLine(screen, x, y, bx, by, 3, config.TowerStrokeColor, true)

		if t.ID() == selected {
			rangePx := s.layout.Length(t.Stats().Range)
			vector.StrokeCircle(screen, x, y, rangePx, 1, config.TowerStrokeColor, true)
		}
	}
}

func (s *RenderSystem) drawEnemies(screen *ebiten.Image) {
	for _, a := range s.game.EnemyList() {
		if !a.IsAlive() {
			continue
		}
		x, y := s.layout.ToScreen(a.Position())
		clr := color.Color(config.EnemyColor)
		if a.Def().Visuals.Color.A > 0 {
			clr = a.Def().Visuals.Color
		}
		if a.Flashing() {
			clr = config.EnemyFlashColor
		}
		vector.DrawFilledCircle(screen, x, y, config.EnemyRadius, clr, true)
		vector.StrokeCircle(screen, x, y, config.EnemyRadius, 1, config.TowerStrokeColor, true)

		ratio := 0.0
		if a.MaxHealth() > 0 {
			ratio = a.Health() / a.MaxHealth()
		}
		bx := x - config.HealthBarWidth/2
		by := y - config.EnemyRadius - 8
		vector.DrawFilledRect(screen, bx, by, config.HealthBarWidth, config.HealthBarHeight, config.HealthBackColor, true)
		vector.DrawFilledRect(screen, bx, by, float32(config.HealthBarWidth*ratio), config.HealthBarHeight, config.HealthBarColor, true)
	}
}

func (s *RenderSystem) drawEffects(screen *ebiten.Image) {
	for _, l := range s.effects.Lines() {
		clr := color.NRGBA(config.ShotColor)
		clr.A = uint8(float64(clr.A) * l.Alpha())
		x0, y0 := s.layout.ToScreen(l.From)
		x1, y1 := s.layout.ToScreen(l.To)
		vector.StrokeLine(screen, x0, y0, x1, y1, 2, clr, true)
	}
	for _, r := range s.effects.Rings() {
		clr := color.NRGBA(config.ShotColor)
		clr.A = uint8(float64(clr.A) * r.Alpha())
		x, y := s.layout.ToScreen(r.Center)
		vector.StrokeCircle(screen, x, y, s.layout.Length(r.Radius), 2, clr, true)
	}
}
