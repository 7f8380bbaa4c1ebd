// internal/ui/tower_level_indicator.go
package ui

import (
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

const (
	xpBarWidth      = 118
	xpBarHeight     = 12
	levelRectWidth  = 16
	levelRectHeight = 12
	levelRectGap    = 9
	borderWidth     = 1
)

var (
	xpBarColorFill = color.RGBA{70, 100, 120, 220}
	readyColor     = color.RGBA{255, 215, 0, 255}
	borderColor    = color.White
)

// TowerLevelIndicator shows the level and experience of the selected tower.
type TowerLevelIndicator struct {
	X, Y float32
}

func NewTowerLevelIndicator(x, y float32) *TowerLevelIndicator {
	return &TowerLevelIndicator{X: x, Y: y}
}

// Draw renders the XP bar toward xpToNext and one box per level. A zero
// xpToNext means the tower cannot level further.
func (i *TowerLevelIndicator) Draw(screen *ebiten.Image, face font.Face, level, maxLevel, xp, xpToNext int, ready bool) {
	vector.StrokeRect(screen, i.X, i.Y, xpBarWidth, xpBarHeight, borderWidth, borderColor, true)

	ratio := 1.0
	if xpToNext > 0 {
		ratio = float64(xp) / float64(xpToNext)
	}
	if ratio > 1 {
		ratio = 1
	}
	fill := xpBarColorFill
	if ready {
		fill = readyColor
	}
	if w := float32(float64(xpBarWidth-borderWidth*2) * ratio); w > 0 {
		vector.DrawFilledRect(screen, i.X+borderWidth, i.Y+borderWidth, w, xpBarHeight-borderWidth*2, fill, true)
	}

	rectY := i.Y + xpBarHeight + 10
	for j := 0; j < maxLevel; j++ {
		rectX := i.X + float32(j)*(levelRectWidth+levelRectGap)
		vector.StrokeRect(screen, rectX, rectY, levelRectWidth, levelRectHeight, borderWidth, borderColor, true)
		if j < level {
			vector.DrawFilledRect(screen, rectX+borderWidth, rectY+borderWidth, levelRectWidth-borderWidth*2, levelRectHeight-borderWidth*2, xpBarColorFill, true)
		}
	}
	text.Draw(screen, ToRoman(level), face, int(i.X)+xpBarWidth+8, int(i.Y)+xpBarHeight, color.White)
}

// ToRoman converts a positive integer to roman numerals.
func ToRoman(num int) string {
	if num <= 0 {
		return ""
	}
	val := []int{1000, 900, 500, 400, 100, 90, 50, 40, 10, 9, 5, 4, 1}
	syb := []string{"M", "CM", "D", "CD", "C", "XC", "L", "XL", "X", "IX", "V", "IV", "I"}

	var roman strings.Builder
	for i := 0; i < len(val); i++ {
		for num >= val[i] {
			roman.WriteString(syb[i])
			num -= val[i]
		}
	}
	return roman.String()
}
