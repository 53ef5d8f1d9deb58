package imagepkg

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
)

// DrawStyle is the shadow applied to a single draw call. Blur follows the
// canvas convention: the gaussian sigma is Blur/2.
type DrawStyle struct {
	Color   color.NRGBA
	Blur    float64
	OffsetX float64
	OffsetY float64
}

// NoShadow draws without any shadow.
var NoShadow = DrawStyle{}

var (
	polaroidShadow = DrawStyle{Color: color.NRGBA{A: 77}, Blur: 40, OffsetY: 15}
	headlineGlow   = DrawStyle{Color: color.NRGBA{R: 255, G: 255, B: 224, A: 230}, Blur: 30}
	messageGlow    = DrawStyle{Color: color.NRGBA{R: 255, G: 255, B: 224, A: 179}, Blur: 20}
)

func (s DrawStyle) visible() bool {
	return s.Color.A > 0 && (s.Blur > 0 || s.OffsetX != 0 || s.OffsetY != 0)
}

// pad is the margin a blurred layer needs so the falloff is not clipped.
func (s DrawStyle) pad() int {
	return int(math.Ceil(s.Blur * 1.5))
}

// shadowLayer paints a w x h shape in the style color on its own transparent
// layer and blurs it. paint receives the layer and the origin of the shape.
// The returned pad is the margin around the shape inside the layer.
func shadowLayer(w, h int, s DrawStyle, paint func(l *gg.Context, ox, oy float64)) (image.Image, int) {
	pad := s.pad()
	layer := gg.NewContext(max(1, w+2*pad), max(1, h+2*pad))
	layer.SetColor(s.Color)
	paint(layer, float64(pad), float64(pad))
	return blurLayer(layer.Image(), s.Blur/2), pad
}

// blurLayer applies a gaussian blur. Wide kernels run on a quarter size
// copy, which is indistinguishable for soft shadows.
func blurLayer(img image.Image, sigma float64) *image.NRGBA {
	if sigma <= 0 {
		return imaging.Clone(img)
	}
	if sigma < 8 {
		return imaging.Blur(img, sigma)
	}
	const f = 4
	b := img.Bounds()
	small := imaging.Resize(img, max(1, b.Dx()/f), max(1, b.Dy()/f), imaging.Linear)
	small = imaging.Blur(small, sigma/f)
	return imaging.Resize(small, b.Dx(), b.Dy(), imaging.Linear)
}

// drawRoundedBox fills box with fill on top of the style's shadow. A zero
// radius draws a plain rectangle.
func drawRoundedBox(dc *gg.Context, box Box, radius float64, fill color.Color, s DrawStyle) {
	if s.visible() {
		shadow, pad := shadowLayer(int(math.Ceil(box.W)), int(math.Ceil(box.H)), s, func(l *gg.Context, ox, oy float64) {
			boxPath(l, Box{X: ox, Y: oy, W: box.W, H: box.H}, radius)
			l.Fill()
		})
		dc.DrawImage(shadow, int(math.Round(box.X+s.OffsetX))-pad, int(math.Round(box.Y+s.OffsetY))-pad)
	}
	dc.SetColor(fill)
	boxPath(dc, box, radius)
	dc.Fill()
}

func boxPath(dc *gg.Context, box Box, radius float64) {
	if radius <= 0 {
		dc.DrawRectangle(box.X, box.Y, box.W, box.H)
		return
	}
	dc.DrawRoundedRectangle(box.X, box.Y, box.W, box.H, radius)
}

// drawGlowText draws text horizontally centered on x with its baseline at y.
// Every pass paints the shadow and then the fill, so a second pass
// reinforces the glow the way repeated canvas fills do.
func drawGlowText(dc *gg.Context, face font.Face, text string, x, y float64, fill color.Color, s DrawStyle, passes int) {
	if text == "" {
		return
	}
	dc.SetFontFace(face)

	var (
		shadow image.Image
		sx, sy int
	)
	if s.visible() {
		w, _ := dc.MeasureString(text)
		m := face.Metrics()
		ascent := float64(m.Ascent.Ceil())
		descent := float64(m.Descent.Ceil())
		var pad int
		shadow, pad = shadowLayer(int(math.Ceil(w)), int(ascent+descent), s, func(l *gg.Context, ox, oy float64) {
			l.SetFontFace(face)
			l.DrawStringAnchored(text, ox+w/2, oy+ascent, 0.5, 0)
		})
		sx = int(math.Round(x-w/2+s.OffsetX)) - pad
		sy = int(math.Round(y-ascent+s.OffsetY)) - pad
	}

	for i := 0; i < passes; i++ {
		if shadow != nil {
			dc.DrawImage(shadow, sx, sy)
		}
		dc.SetColor(fill)
		dc.DrawStringAnchored(text, x, y, 0.5, 0)
	}
}
