// internal/ui/player_health_indicator.go
package ui

import (
	"image/color"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

const (
	HealthCols          = 4
	HealthCircleRadius  = 8.0
	HealthCircleSpacing = 4.0
)

var (
	healthHigh  = color.RGBA{50, 100, 255, 255}
	healthLow   = color.RGBA{230, 40, 40, 255}
	healthEmpty = color.RGBA{0, 0, 0, 255}
)

// PlayerHealthIndicator draws base health as a grid of circles.
type PlayerHealthIndicator struct {
	X, Y float32
}

func NewPlayerHealthIndicator(x, y float32) *PlayerHealthIndicator {
	return &PlayerHealthIndicator{X: x, Y: y}
}

// Draw fills one circle per health point. Above half health the surplus is
// blue, the rest red.
func (i *PlayerHealthIndicator) Draw(screen *ebiten.Image, face font.Face, health, maxHealth int) {
	half := maxHealth / 2
	step := float32(HealthCircleRadius*2 + HealthCircleSpacing)

	for j := 0; j < maxHealth; j++ {
		row, col := j/HealthCols, j%HealthCols
		cx := i.X + float32(col)*step + HealthCircleRadius
		cy := i.Y + float32(row)*step + HealthCircleRadius

		clr := healthEmpty
		if j < health {
			clr = healthLow
			if health > half && j < health-half {
				clr = healthHigh
			}
		}
		vector.DrawFilledCircle(screen, cx, cy, HealthCircleRadius, clr, true)
		vector.StrokeCircle(screen, cx, cy, HealthCircleRadius, 1, color.White, true)
	}

	label := strconv.Itoa(health) + "/" + strconv.Itoa(maxHealth)
	w := text.BoundString(face, label).Dx()
	text.Draw(screen, label, face, int(i.X)+(int(step)*HealthCols-w)/2, int(i.Y)-8, color.White)
}
