// pkg/render/color.go
package render

import "image/color"

// MapColors holds the colors of the static board image.
type MapColors struct {
	Background color.RGBA
	Buildable  color.RGBA
	Path       color.RGBA
	Occupied   color.RGBA
	Blocked    color.RGBA
	GridLine   color.RGBA
	Entry      color.RGBA
	Exit       color.RGBA
}

// DarkenColor halves the brightness of a color.
func DarkenColor(c color.RGBA) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * 0.5),
		G: uint8(float64(c.G) * 0.5),
		B: uint8(float64(c.B) * 0.5),
		A: c.A,
	}
}

// LightenColor adds a fixed amount to each channel.
func LightenColor(c color.RGBA, amount int) color.RGBA {
	return color.RGBA{
		R: uint8(min(255, int(c.R)+amount)),
		G: uint8(min(255, int(c.G)+amount)),
		B: uint8(min(255, int(c.B)+amount)),
		A: c.A,
	}
}
