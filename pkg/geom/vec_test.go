package geom

import (
	"math"
	"testing"
)

func TestMoveTowards(t *testing.T) {
	tests := []struct {
		name    string
		from    Vec3
		to      Vec3
		step    float64
		want    Vec3
		reached bool
	}{
		{"partial", V3(0, 0, 0), V3(10, 0, 0), 4, V3(4, 0, 0), false},
		{"exact", V3(0, 0, 0), V3(0, 0, 3), 3, V3(0, 0, 3), true},
		{"overshoot snaps", V3(1, 0, 1), V3(2, 0, 1), 5, V3(2, 0, 1), true},
		{"zero distance", V3(2, 0, 2), V3(2, 0, 2), 0, V3(2, 0, 2), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, reached := MoveTowards(tt.from, tt.to, tt.step)
			if Distance(got, tt.want) > 1e-9 || reached != tt.reached {
				t.Errorf("MoveTowards = %v, %v; want %v, %v", got, reached, tt.want, tt.reached)
			}
		})
	}
}

func TestHeading(t *testing.T) {
	if h := Heading(V3(0, 0, 0), V3(0, 0, 1)); math.Abs(h-math.Pi/2) > 1e-9 {
		t.Errorf("Heading = %v, want pi/2", h)
	}
}

func TestFloorInt(t *testing.T) {
	if FloorInt(-0.5) != -1 || FloorInt(1.99) != 1 {
		t.Errorf("FloorInt mismatch")
	}
}
