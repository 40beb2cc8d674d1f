package render

import (
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Fonts holds the vector font used for sized text. The same TTF is parsed
// twice: opentype faces for metrics, truetype for the freetype rasterizer.
type Fonts struct {
	tt *truetype.Font
	ot *opentype.Font

	mu    sync.Mutex
	faces map[int]font.Face
}

func LoadFonts() (*Fonts, error) {
	ot, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse opentype font: %w", err)
	}
	tt, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse truetype font: %w", err)
	}
	return &Fonts{tt: tt, ot: ot, faces: make(map[int]font.Face)}, nil
}

// Face returns the face for a point size at 72 DPI, one point per virtual
// pixel. Size 0, a nil receiver or a face error fall back to the 7x13
// bitmap face.
func (f *Fonts) Face(size int) font.Face {
	if f == nil || size <= 0 {
		return basicfont.Face7x13
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if face, ok := f.faces[size]; ok {
		return face
	}
	face, err := opentype.NewFace(f.ot, &opentype.FaceOptions{Size: float64(size), DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return basicfont.Face7x13
	}
	f.faces[size] = face
	return face
}

func (f *Fonts) TrueType() *truetype.Font {
	if f == nil {
		return nil
	}
	return f.tt
}
