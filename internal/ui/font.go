// internal/ui/font.go
package ui

import (
	"log"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// LoadFace builds a face of the given size from the embedded Go font.
func LoadFace(size float64) (font.Face, error) {
	tt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(tt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// MustFace is LoadFace falling back to the fixed 7x13 face.
func MustFace(size float64) font.Face {
	face, err := LoadFace(size)
	if err != nil {
		log.Printf("UI: font load failed, using basic face: %v", err)
		return basicfont.Face7x13
	}
	return face
}
