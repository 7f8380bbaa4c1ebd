package render

import (
	"image/color"
	"testing"

	"go-td-core/pkg/geom"
)

func TestLayoutRoundTrip(t *testing.T) {
	l := Layout{OffsetX: 10, OffsetY: 80, CellSize: 2, CellPixels: 48}

	x, y := l.ToScreen(geom.V3(3, 0, 1))
	if x != 10+72 || y != 80+24 {
		t.Errorf("ToScreen = %v, %v", x, y)
	}
	if cx, cy := l.ToCell(int(x), int(y)); cx != 1 || cy != 0 {
		t.Errorf("ToCell = %d, %d; want 1, 0", cx, cy)
	}
	if cx, cy := l.ToCell(5, 70); cx != -1 || cy != -1 {
		t.Errorf("ToCell off board = %d, %d", cx, cy)
	}
	if got := l.Length(1); got != 24 {
		t.Errorf("Length = %v, want 24", got)
	}
}

func TestColorHelpers(t *testing.T) {
	c := color.RGBA{200, 100, 20, 255}
	if d := DarkenColor(c); d != (color.RGBA{100, 50, 10, 255}) {
		t.Errorf("DarkenColor = %v", d)
	}
	if l := LightenColor(c, 80); l != (color.RGBA{255, 180, 100, 255}) {
		t.Errorf("LightenColor = %v", l)
	}
}

func TestEffectsExpire(t *testing.T) {
	var e Effects
	e.AddLine(geom.V3(0, 0, 0), geom.V3(1, 0, 0), 0.2)
	e.AddRing(geom.V3(0, 0, 0), 2, 0.5)

	e.Update(0.1)
	if len(e.Lines()) != 1 || len(e.Rings()) != 1 {
		t.Fatalf("lines %d rings %d after 0.1s", len(e.Lines()), len(e.Rings()))
	}
	if a := e.Lines()[0].Alpha(); a < 0.49 || a > 0.51 {
		t.Errorf("line alpha = %v, want 0.5", a)
	}

	e.Update(0.15)
	if len(e.Lines()) != 0 || len(e.Rings()) != 1 {
		t.Errorf("lines %d rings %d after 0.25s", len(e.Lines()), len(e.Rings()))
	}
	e.Clear()
	if len(e.Rings()) != 0 {
		t.Error("Clear kept rings")
	}
}
