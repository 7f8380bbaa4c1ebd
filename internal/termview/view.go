// internal/termview/view.go
package termview

import (
	"fmt"
	"log"
	"time"

	"go-td-core/internal/app"
	"go-td-core/internal/config"
	"go-td-core/internal/defs"
	"go-td-core/internal/types"
	"go-td-core/pkg/grid"

	"github.com/gdamore/tcell/v2"
)

// Canvas is the drawing surface used by View. tcell.Screen satisfies it.
type Canvas interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (int, int)
}

const hudRows = 3

var (
	styleBase      = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	styleBuildable = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.NewRGBColor(70, 100, 120))
	stylePath      = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.NewRGBColor(194, 178, 128))
	styleBlocked   = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.NewRGBColor(150, 70, 70))
	styleTower     = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.NewRGBColor(80, 160, 255)).Bold(true)
	styleEnemy     = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.NewRGBColor(255, 80, 80)).Bold(true)
	styleFlash     = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite).Bold(true)
	styleWarn      = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorYellow)
)

// Glyphs for each cell type.
const (
	GlyphBuildable = '·'
	GlyphPath      = '░'
	GlyphBlocked   = '█'
	GlyphTower     = 'T'
	GlyphEnemy     = 'e'
)

// View renders a game onto a terminal grid and maps keys to commands.
type View struct {
	game     *app.Game
	cursor   grid.Point
	selected int
	speed    int
	message  string
	quit     bool
}

func New(g *app.Game) *View {
	return &View{game: g}
}

func (v *View) Cursor() grid.Point { return v.cursor }
func (v *View) Message() string    { return v.message }
func (v *View) Quit() bool         { return v.quit }

// Speed is the current simulation speed multiplier.
func (v *View) Speed() float64 { return config.GameSpeeds[v.speed] }

// SelectedTower is the tower definition used by the build key.
func (v *View) SelectedTower() string {
	order := v.game.Library.TowerOrder
	if len(order) == 0 {
		return ""
	}
	return order[v.selected%len(order)]
}

// Draw paints the board followed by the HUD rows.
func (v *View) Draw(c Canvas) {
	w, h := c.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c.SetContent(x, y, ' ', nil, styleBase)
		}
	}

	g := v.game.Grid
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			r, st := v.boardGlyph(x, y)
			put(c, x, y+hudRows, r, st)
		}
	}

	for _, a := range v.game.EnemyList() {
		if !a.IsAlive() {
			continue
		}
		x, y := g.WorldToGrid(a.Position())
		if !g.IsValidPosition(x, y) {
			continue
		}
		st := styleEnemy
		if a.Flashing() {
			st = styleFlash
		}
		put(c, x, y+hudRows, GlyphEnemy, st)
	}

	r, st := v.boardGlyph(v.cursor.X, v.cursor.Y)
	put(c, v.cursor.X, v.cursor.Y+hudRows, r, st.Reverse(true))

	v.drawHUD(c)
}

func (v *View) drawHUD(c Canvas) {
	g := v.game
	state := g.Spawner.State().String()
	if g.Spawner.Paused() {
		state += " (paused)"
	}
	drawText(c, 0, 0, styleBase, fmt.Sprintf("Gold %d  Base %d/%d  Time %.1fs  x%g",
		g.Ledger.Balance(), g.Base.Health(), g.Base.MaxHealth(), g.Time(), v.Speed()))
	drawText(c, 0, 1, styleBase, fmt.Sprintf("Spawner %s %3.0f%%  Tower %s (%d)  Skill pts %d",
		state, g.Spawner.Progress()*100, v.SelectedTower(), g.Towers.BuildCost(v.SelectedTower()), g.Skills.Points()))

	line, st := v.message, styleWarn
	if g.Over() {
		line = "BASE DESTROYED  q to quit"
	} else if g.Panel.Showing() {
		line = "Upgrade: "
		for i, u := range g.Panel.Choices() {
			line += fmt.Sprintf("[%d] %s  ", i+1, u.Name)
		}
	}
	drawText(c, 0, 2, st, line)
}

func (v *View) boardGlyph(x, y int) (rune, tcell.Style) {
	if t, ok := v.game.Towers.At(x, y); ok {
		if g := []rune(t.Def().Visuals.Glyph); len(g) > 0 {
			return g[0], styleTower
		}
		return GlyphTower, styleTower
	}
	cell, _ := v.game.Grid.Cell(x, y)
	return cellGlyph(cell.Type)
}

func cellGlyph(t grid.CellType) (rune, tcell.Style) {
	switch t {
	case grid.Path:
		return GlyphPath, stylePath
	case grid.Blocked:
		return GlyphBlocked, styleBlocked
	case grid.Occupied:
		return GlyphTower, styleTower
	}
	return GlyphBuildable, styleBuildable
}

func put(c Canvas, x, y int, r rune, st tcell.Style) {
	w, h := c.Size()
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	c.SetContent(x, y, r, nil, st)
}

func drawText(c Canvas, x, y int, st tcell.Style, s string) {
	for _, r := range s {
		put(c, x, y, r, st)
		x++
	}
}

// HandleEvent reacts to a terminal event. It returns false once the view
// wants to quit.
func (v *View) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return v.handleKey(ev.Key(), ev.Rune())
	case *tcell.EventResize:
		return true
	}
	return !v.quit
}

func (v *View) handleKey(key tcell.Key, r rune) bool {
	g := v.game
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		v.quit = true
		return false
	case tcell.KeyUp:
		v.moveCursor(0, -1)
	case tcell.KeyDown:
		v.moveCursor(0, 1)
	case tcell.KeyLeft:
		v.moveCursor(-1, 0)
	case tcell.KeyRight:
		v.moveCursor(1, 0)
	case tcell.KeyTab:
		v.cycleTower()
	case tcell.KeyRune:
		switch r {
		case 'q':
			v.quit = true
			return false
		case 'b':
			v.report("build", g.BuildTower(v.SelectedTower(), v.cursor.X, v.cursor.Y))
		case 't':
			v.cycleTower()
		case 'x':
			v.withTower(func(id types.EntityID) { v.report("remove", g.RemoveTower(id)) })
		case 'u':
			v.withTower(func(id types.EntityID) { v.report("upgrade", g.UpgradeTower(id)) })
		case 'l':
			v.withTower(func(id types.EntityID) { v.report("level up", g.RequestUpgradePanel(id)) })
		case '1', '2':
			v.report("choose", g.ChooseUpgrade(int(r-'1')))
		case 'c':
			v.report("close", g.CloseUpgradePanel())
		case 's':
			v.report("start", g.StartSpawning())
		case 'p':
			if g.Spawner.Paused() {
				v.report("resume", g.ResumeSpawning())
			} else {
				v.report("pause", g.PauseSpawning())
			}
		case 'm':
			v.withTower(v.cycleTargeting)
		case '+', '=':
			if v.speed < len(config.GameSpeeds)-1 {
				v.speed++
			}
		case '-':
			if v.speed > 0 {
				v.speed--
			}
		}
	}
	return true
}

func (v *View) moveCursor(dx, dy int) {
	g := v.game.Grid
	x, y := v.cursor.X+dx, v.cursor.Y+dy
	if g.IsValidPosition(x, y) {
		v.cursor = grid.Point{X: x, Y: y}
	}
}

func (v *View) cycleTower() {
	if n := len(v.game.Library.TowerOrder); n > 0 {
		v.selected = (v.selected + 1) % n
	}
}

func (v *View) withTower(fn func(id types.EntityID)) {
	t, ok := v.game.Towers.At(v.cursor.X, v.cursor.Y)
	if !ok {
		v.message = "no tower here"
		return
	}
	fn(t.ID())
}

func (v *View) cycleTargeting(id types.EntityID) {
	t, _ := v.game.Towers.Get(id)
	next := defs.TargetingModes[0]
	for i, m := range defs.TargetingModes {
		if m == t.Targeting() {
			next = defs.TargetingModes[(i+1)%len(defs.TargetingModes)]
			break
		}
	}
	v.report("targeting "+string(next), v.game.SetTargeting(id, next))
}

func (v *View) report(action string, res app.Result) {
	if res.OK {
		v.message = action + ": ok"
		return
	}
	v.message = action + ": " + res.Reason
}

// Run drives the game at roughly 60 frames per second until the user quits.
func (v *View) Run(screen tcell.Screen) {
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case ev := <-events:
			if _, ok := ev.(*tcell.EventResize); ok {
				screen.Sync()
			}
			if !v.HandleEvent(ev) {
				log.Printf("TermView: quit requested")
				return
			}
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			if dt > config.MaxDeltaTime {
				dt = config.MaxDeltaTime
			}
			last = now
			v.game.Tick(dt * v.Speed())
			v.Draw(screen)
			screen.Show()
		}
	}
}
