// internal/state/pause_state.go
package state

import (
	"image/color"

	"go-td-core/internal/config"
	"go-td-core/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

var _ State = (*PauseState)(nil)

// PauseState freezes the simulation and draws the game underneath a shade.
type PauseState struct {
	sm       *StateMachine
	previous *GameState
	face     font.Face
}

func NewPauseState(sm *StateMachine, prev *GameState) *PauseState {
	return &PauseState{sm: sm, previous: prev, face: ui.MustFace(40)}
}

func (s *PauseState) Enter() {}

func (s *PauseState) Update(deltaTime float64) {
	unpause := inpututil.IsKeyJustPressed(ebiten.KeyP) ||
		inpututil.IsKeyJustPressed(ebiten.KeyEscape) ||
		inpututil.IsKeyJustPressed(ebiten.KeyF9)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if s.previous.pauseButton.IsClicked(x, y) {
			unpause = true
		}
	}

	if unpause {
		s.previous.pauseButton.Toggle()
		s.sm.SetState(s.previous)
	}
}

func (s *PauseState) Draw(screen *ebiten.Image) {
	s.previous.Draw(screen)
	vector.DrawFilledRect(screen, 0, 0, config.ScreenWidth, config.ScreenHeight, color.RGBA{0, 0, 0, 128}, false)

	msg := "PAUSED"
	w := text.BoundString(s.face, msg).Dx()
	text.Draw(screen, msg, s.face, (config.ScreenWidth-w)/2, config.ScreenHeight/2, color.White)
}

func (s *PauseState) Exit() {}
