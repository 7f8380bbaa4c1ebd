// internal/ui/speed_button.go
package ui

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// SpeedButton cycles through the game speeds. Each state has its own color.
type SpeedButton struct {
	X, Y           float32
	Size           float32
	LastClickTime  time.Time
	LastToggleTime time.Time
	StateColors    []color.Color
	Speeds         []float64
	CurrentState   int
}

func NewSpeedButton(x, y, size float32, stateColors []color.Color, speeds []float64) *SpeedButton {
	return &SpeedButton{
		X:           x,
		Y:           y,
		Size:        size,
		StateColors: stateColors,
		Speeds:      speeds,
	}
}

// Speed is the multiplier of the current state.
func (b *SpeedButton) Speed() float64 {
	if len(b.Speeds) == 0 {
		return 1
	}
	return b.Speeds[b.CurrentState%len(b.Speeds)]
}

// Draw renders two "fast forward" triangles.
func (b *SpeedButton) Draw(screen *ebiten.Image) {
	elapsed := time.Since(b.LastClickTime).Seconds()
	size := b.Size * float32(1.0+0.3*math.Exp(-elapsed*8))
	clr := b.StateColors[b.CurrentState%len(b.StateColors)]

	height := size * 1.2
	offset := size * 0.8
	for _, dx := range []float32{0, offset} {
		var p vector.Path
		p.MoveTo(b.X-size+dx, b.Y-height/2)
		p.LineTo(b.X+dx, b.Y)
		p.LineTo(b.X-size+dx, b.Y+height/2)
		p.Close()
		fillPath(screen, &p, clr)
		vector.StrokeLine(screen, b.X-size+dx, b.Y-height/2, b.X+dx, b.Y, 1, color.White, true)
		vector.StrokeLine(screen, b.X+dx, b.Y, b.X-size+dx, b.Y+height/2, 1, color.White, true)
	}
}

// IsClicked uses a circle for the hit test since the shape is irregular.
func (b *SpeedButton) IsClicked(x, y int) bool {
	dx, dy := float32(x)-b.X, float32(y)-b.Y
	r := b.Size * 1.5
	return dx*dx+dy*dy <= r*r
}

func (b *SpeedButton) ToggleState() {
	if n := len(b.StateColors); n > 0 {
		b.CurrentState = (b.CurrentState + 1) % n
	}
	b.LastClickTime = time.Now()
	b.LastToggleTime = time.Now()
}

var whitePixel *ebiten.Image

func fillPath(screen *ebiten.Image, p *vector.Path, clr color.Color) {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(color.White)
	}
	vs, is := p.AppendVerticesAndIndicesForFilling(nil, nil)
	r, g, b, a := clr.RGBA()
	for i := range vs {
		vs[i].ColorR = float32(r) / 0xffff
		vs[i].ColorG = float32(g) / 0xffff
		vs[i].ColorB = float32(b) / 0xffff
		vs[i].ColorA = float32(a) / 0xffff
	}
	screen.DrawTriangles(vs, is, whitePixel, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}
