// internal/ui/timeline_indicator.go
package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

const (
	timelineBarWidth  = 240
	timelineBarHeight = 10
)

var (
	timelineFill    = color.RGBA{194, 178, 128, 255}
	timelineWarning = color.RGBA{255, 80, 80, 255}
)

// TimelineIndicator shows the active spawn timeline and its progress.
type TimelineIndicator struct {
	X, Y float32
}

func NewTimelineIndicator(x, y float32) *TimelineIndicator {
	return &TimelineIndicator{X: x, Y: y}
}

// TimelineStatus is what the indicator needs to know about the scheduler.
type TimelineStatus struct {
	Name      string
	State     string
	Progress  float64
	NextEvent string
	NextIn    float64
	HasNext   bool
}

func (i *TimelineIndicator) Draw(screen *ebiten.Image, face font.Face, s TimelineStatus) {
	title := fmt.Sprintf("%s  [%s]", s.Name, s.State)
	text.Draw(screen, title, face, int(i.X), int(i.Y)-6, color.White)

	vector.StrokeRect(screen, i.X, i.Y, timelineBarWidth, timelineBarHeight, 1, color.White, true)
	p := s.Progress
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	if w := float32(float64(timelineBarWidth-2) * p); w > 0 {
		vector.DrawFilledRect(screen, i.X+1, i.Y+1, w, timelineBarHeight-2, timelineFill, true)
	}

	if s.HasNext {
		clr := color.Color(color.White)
		if s.NextIn < 3 {
			clr = timelineWarning
		}
		next := fmt.Sprintf("next: %s in %.1fs", s.NextEvent, s.NextIn)
		text.Draw(screen, next, face, int(i.X), int(i.Y)+timelineBarHeight+16, clr)
	}
}
