// internal/ui/button.go
package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

// Button is a clickable rectangle with a label.
type Button struct {
	Rect     image.Rectangle
	Text     string
	Disabled bool
}

var (
	buttonColor   = color.RGBA{70, 100, 120, 220}
	buttonHover   = color.RGBA{100, 140, 170, 240}
	buttonOff     = color.RGBA{60, 60, 70, 200}
	buttonStroke  = color.White
	buttonTextClr = color.White
)

// Contains reports whether the point lies inside the button.
func (b *Button) Contains(x, y int) bool {
	return image.Pt(x, y).In(b.Rect)
}

// Draw paints the button. hover highlights it.
func (b *Button) Draw(screen *ebiten.Image, face font.Face, hover bool) {
	fill := buttonColor
	switch {
	case b.Disabled:
		fill = buttonOff
	case hover:
		fill = buttonHover
	}
	x, y := float32(b.Rect.Min.X), float32(b.Rect.Min.Y)
	w, h := float32(b.Rect.Dx()), float32(b.Rect.Dy())
	vector.DrawFilledRect(screen, x, y, w, h, fill, true)
	vector.StrokeRect(screen, x, y, w, h, 1, buttonStroke, true)

	bounds := text.BoundString(face, b.Text)
	tx := b.Rect.Min.X + (b.Rect.Dx()-bounds.Dx())/2
	ty := b.Rect.Min.Y + (b.Rect.Dy()+bounds.Dy())/2
	text.Draw(screen, b.Text, face, tx, ty, buttonTextClr)
}
