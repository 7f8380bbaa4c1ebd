// internal/state/menu_state.go
package state

import (
	"fmt"
	"image/color"
	"log"
	"sort"

	"go-td-core/internal/app"
	"go-td-core/internal/config"
	"go-td-core/internal/defs"
	"go-td-core/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
)

// NewGameFunc builds a game on the given map.
type NewGameFunc func(mapID string) (*app.Game, error)

// MenuState lets the player pick a map before starting.
type MenuState struct {
	sm       *StateMachine
	maps     []string
	selected int
	newGame  NewGameFunc
	face     font.Face
	err      string
}

func NewMenuState(sm *StateMachine, lib *defs.Library, newGame NewGameFunc) *MenuState {
	maps := make([]string, 0, len(lib.Maps))
	for id := range lib.Maps {
		maps = append(maps, id)
	}
	sort.Strings(maps)
	return &MenuState{sm: sm, maps: maps, newGame: newGame, face: ui.MustFace(20)}
}

func (m *MenuState) Enter() {}

func (m *MenuState) Update(deltaTime float64) {
	if len(m.maps) == 0 {
		return
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyDown):
		m.selected = (m.selected + 1) % len(m.maps)
	case inpututil.IsKeyJustPressed(ebiten.KeyUp):
		m.selected = (m.selected + len(m.maps) - 1) % len(m.maps)
	case inpututil.IsKeyJustPressed(ebiten.KeySpace), inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		g, err := m.newGame(m.maps[m.selected])
		if err != nil {
			log.Printf("Menu: cannot start map %q: %v", m.maps[m.selected], err)
			m.err = err.Error()
			return
		}
		m.sm.SetState(NewGameState(m.sm, g))
	}
}

func (m *MenuState) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0, 0, 0, 255})
	y := config.ScreenHeight/2 - len(m.maps)*15
	text.Draw(screen, "Select a map (space to start)", m.face, config.ScreenWidth/2-150, y-40, config.TextLightColor)
	for i, id := range m.maps {
		line := id
		if i == m.selected {
			line = fmt.Sprintf("> %s", id)
		}
		text.Draw(screen, line, m.face, config.ScreenWidth/2-100, y+i*30, config.TextLightColor)
	}
	if m.err != "" {
		text.Draw(screen, m.err, m.face, 40, config.ScreenHeight-40, config.ExitColor)
	}
}

func (m *MenuState) Exit() {}
