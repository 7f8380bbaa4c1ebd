package grid

import "testing"

func equalPoints(a, b []Point) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestLineBresenham(t *testing.T) {
	tests := []struct {
		name string
		a, b Point
		want []Point
	}{
		{"single cell", Point{2, 2}, Point{2, 2}, []Point{{2, 2}}},
		{"shallow", Point{0, 0}, Point{3, 2}, []Point{{0, 0}, {1, 0}, {1, 1}, {2, 1}, {2, 2}, {3, 2}}},
		{"diagonal ties step y", Point{0, 0}, Point{1, 1}, []Point{{0, 0}, {0, 1}, {1, 1}}},
		{"horizontal", Point{0, 0}, Point{3, 0}, []Point{{0, 0}, {1, 0}, {2, 0}, {3, 0}}},
		{"negative direction", Point{3, 2}, Point{0, 0}, []Point{{3, 2}, {2, 2}, {2, 1}, {1, 1}, {1, 0}, {0, 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LineBresenham(tt.a, tt.b); !equalPoints(got, tt.want) {
				t.Errorf("LineBresenham = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLineAxisFirst(t *testing.T) {
	got := LineAxisFirst(Point{0, 0}, Point{3, 2})
	want := []Point{{0, 0}, {1, 0}, {2, 0}, {3, 0}, {3, 1}, {3, 2}}
	if !equalPoints(got, want) {
		t.Errorf("LineAxisFirst = %v, want %v", got, want)
	}
}

func TestRasterizeIsFourConnected(t *testing.T) {
	for _, policy := range []RasterPolicy{RasterAuto, RasterBresenham, RasterAxisFirst} {
		cells := Rasterize(Point{1, 7}, Point{9, 2}, policy)
		if cells[0] != (Point{1, 7}) || cells[len(cells)-1] != (Point{9, 2}) {
			t.Fatalf("policy %d: endpoints %v", policy, cells)
		}
		for i := 1; i < len(cells); i++ {
			dx := cells[i].X - cells[i-1].X
			dy := cells[i].Y - cells[i-1].Y
			if dx*dx+dy*dy != 1 {
				t.Fatalf("policy %d: step %v -> %v is not 4-connected", policy, cells[i-1], cells[i])
			}
		}
	}
}

func TestParseRasterPolicy(t *testing.T) {
	for in, want := range map[string]RasterPolicy{"": RasterAuto, "bresenham": RasterBresenham, "AXIS_FIRST": RasterAxisFirst} {
		got, err := ParseRasterPolicy(in)
		if err != nil || got != want {
			t.Errorf("ParseRasterPolicy(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseRasterPolicy("zigzag"); err == nil {
		t.Error("unknown policy accepted")
	}
}
