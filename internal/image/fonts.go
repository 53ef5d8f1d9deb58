package imagepkg

import (
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/math/fixed"
)

var (
	fontsOnce  sync.Once
	boldFont   *truetype.Font
	italicFont *truetype.Font
	fontsErr   error
)

func loadFonts() (bold, italic *truetype.Font, err error) {
	fontsOnce.Do(func() {
		if boldFont, fontsErr = truetype.Parse(gobold.TTF); fontsErr != nil {
			fontsErr = fmt.Errorf("parse bold font: %w", fontsErr)
			return
		}
		if italicFont, fontsErr = truetype.Parse(goitalic.TTF); fontsErr != nil {
			fontsErr = fmt.Errorf("parse italic font: %w", fontsErr)
		}
	})
	return boldFont, italicFont, fontsErr
}

// faceSet hands out faces of one font by pixel size. Faces keep glyph
// caches, so a faceSet belongs to a single render.
type faceSet struct {
	font  *truetype.Font
	faces map[float64]font.Face
}

func newFaceSet(f *truetype.Font) *faceSet {
	return &faceSet{font: f, faces: map[float64]font.Face{}}
}

func (s *faceSet) face(size float64) font.Face {
	if f, ok := s.faces[size]; ok {
		return f
	}
	f := truetype.NewFace(s.font, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingNone})
	s.faces[size] = f
	return f
}

// measure returns the advance width of text at the given size.
func (s *faceSet) measure(text string, size float64) float64 {
	return fixedToFloat(font.MeasureString(s.face(size), text))
}

func (s *faceSet) close() {
	for _, f := range s.faces {
		f.Close()
	}
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
