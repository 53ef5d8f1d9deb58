package imagepkg

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
)

// DefaultTitle is the headline printed under the photo.
const DefaultTitle = "¡FELIZ CUMPLEAÑOS!"

var (
	textColor        = color.NRGBA{R: 0x0d, G: 0x3d, B: 0x6f, A: 0xff}
	placeholderFill  = color.NRGBA{R: 0xe5, G: 0xe7, B: 0xeb, A: 0xff}
	placeholderGlyph = color.NRGBA{R: 0x9c, G: 0xa3, B: 0xaf, A: 0xff}
)

// CardInput is everything one render needs.
type CardInput struct {
	Name     string
	Greeting string
	Sources
}

// Renderer composites birthday cards. It is safe for concurrent use; every
// render gets its own canvas and font faces.
type Renderer struct {
	title  string
	bold   *truetype.Font
	italic *truetype.Font
}

// NewRenderer prepares the fonts. An empty title selects DefaultTitle.
func NewRenderer(title string) (*Renderer, error) {
	bold, italic, err := loadFonts()
	if err != nil {
		return nil, &RenderError{Op: "load fonts", Err: err}
	}
	if strings.TrimSpace(title) == "" {
		title = DefaultTitle
	}
	return &Renderer{title: title, bold: bold, italic: italic}, nil
}

// Render decodes the card assets and returns the composited card as PNG.
func (r *Renderer) Render(ctx context.Context, in CardInput) ([]byte, error) {
	assets, err := LoadAssets(ctx, in.Sources)
	if err != nil {
		return nil, err
	}
	dc, err := r.Compose(in.Name, in.Greeting, assets)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, &RenderError{Op: "encode png", Err: err}
	}
	return buf.Bytes(), nil
}

// Compose draws the card layers in their fixed order: background, polaroid
// and photo, title, name, message, logo.
func (r *Renderer) Compose(name, greeting string, assets Assets) (*gg.Context, error) {
	if assets.Background == nil {
		return nil, &DecodeError{Asset: AssetBackground, Err: errEmpty}
	}
	dc, err := r.newCanvas()
	if err != nil {
		return nil, err
	}

	bold := newFaceSet(r.bold)
	defer bold.close()
	italic := newFaceSet(r.italic)
	defer italic.close()

	name = strings.ToUpper(strings.TrimSpace(name))
	nameSize := ChooseFontSize(name, NameMaxWidth, bold.measure)
	l := NewLayout(nameSize)

	drawBackground(dc, assets.Background)

	drawRoundedBox(dc, l.Polaroid, PolaroidRadius, color.White, polaroidShadow)
	if assets.Photo != nil {
		dc.DrawImage(FitCover(assets.Photo, int(PhotoWidth), int(PhotoHeight)), int(l.Photo.X), int(math.Round(l.Photo.Y)))
	} else {
		drawPlaceholder(dc, l.Photo)
	}

	cx := l.Canvas.CenterX()
	drawGlowText(dc, bold.face(TitleFontSize), r.title, cx, l.TitleY, textColor, headlineGlow, 2)
	drawGlowText(dc, bold.face(nameSize), name, cx, l.NameY, textColor, headlineGlow, 2)

	msgFace := italic.face(MessageFontSize)
	lines := WrapLines(greeting, MessageMaxWidth, func(s string) float64 {
		return italic.measure(s, MessageFontSize)
	})
	y := l.MessageY
	for _, line := range lines {
		drawGlowText(dc, msgFace, line, cx, y, textColor, messageGlow, 1)
		y += LineHeight
	}

	if assets.Logo != nil {
		b := assets.Logo.Bounds()
		box := l.LogoBox(b.Dx(), b.Dy())
		dc.DrawImage(FitLogo(assets.Logo, box), int(math.Round(box.X)), int(math.Round(box.Y)))
	}
	return dc, nil
}

func (r *Renderer) newCanvas() (*gg.Context, error) {
	if r == nil || r.bold == nil || r.italic == nil {
		return nil, &RenderError{Op: "acquire canvas", Err: errors.New("renderer has no fonts")}
	}
	return gg.NewContext(CanvasWidth, CanvasHeight), nil
}

// drawBackground stretches bg over the whole canvas.
func drawBackground(dc *gg.Context, bg image.Image) {
	b := bg.Bounds()
	if b.Dx() != CanvasWidth || b.Dy() != CanvasHeight {
		bg = imaging.Resize(bg, CanvasWidth, CanvasHeight, imaging.Lanczos)
	} else if b.Min != (image.Point{}) {
		bg = imaging.Clone(bg)
	}
	dc.DrawImage(bg, 0, 0)
}

// drawPlaceholder fills box and draws a person glyph (head and shoulders)
// in its center, sized like a 150px emoji.
func drawPlaceholder(dc *gg.Context, box Box) {
	drawRoundedBox(dc, box, 0, placeholderFill, NoShadow)

	cx, cy := box.CenterX(), box.CenterY()
	dc.SetColor(placeholderGlyph)
	dc.DrawCircle(cx, cy-28, 30)
	dc.Fill()
	dc.DrawEllipticalArc(cx, cy+62, 58, 56, math.Pi, 2*math.Pi)
	dc.ClosePath()
	dc.Fill()
}
