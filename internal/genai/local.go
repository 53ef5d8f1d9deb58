package genai

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image/color"
	"sync"

	"github.com/fogleman/gg"
)

// Local is an offline Generator. It paints a fixed festive background and
// fills greeting templates, so its output is fully deterministic.
type Local struct {
	Width, Height int

	once sync.Once
	bg   string
	err  error
}

// NewLocal returns a Local generator for 1080x1920 backgrounds.
func NewLocal() *Local {
	return &Local{Width: 1080, Height: 1920}
}

func (l *Local) GenerateBackgroundImage(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &ServiceError{Op: OpBackground, Err: err}
	}
	l.once.Do(func() {
		var buf bytes.Buffer
		if err := paintBackground(l.Width, l.Height).EncodePNG(&buf); err != nil {
			l.err = &ServiceError{Op: OpBackground, Err: err}
			return
		}
		l.bg = base64.StdEncoding.EncodeToString(buf.Bytes())
	})
	return l.bg, l.err
}

func (l *Local) GenerateGreeting(ctx context.Context, name, age, profession string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &ServiceError{Op: OpGreeting, Err: err}
	}
	if profession != "" {
		return fmt.Sprintf("¡Feliz %s cumpleaños, %s! Que tu año como %s esté lleno de éxitos, risas y momentos inolvidables.", age, name, profession), nil
	}
	return fmt.Sprintf("¡Felices %s, %s! Que este nuevo año de vida venga cargado de momentos inolvidables y mucha felicidad.", age, name), nil
}

type balloon struct {
	x, y, r float64
	c       color.NRGBA
}

// paintBackground draws a white-to-light-blue gradient with balloon
// clusters in the top right and bottom left corners and a ribbon along
// the bottom edge.
func paintBackground(w, h int) *gg.Context {
	dc := gg.NewContext(w, h)
	fw, fh := float64(w), float64(h)

	grad := gg.NewLinearGradient(0, 0, 0, fh)
	grad.AddColorStop(0, color.White)
	grad.AddColorStop(1, color.NRGBA{R: 0xbf, G: 0xdb, B: 0xfe, A: 0xff})
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, fw, fh)
	dc.Fill()

	balloons := []balloon{
		{0.86, 0.07, 0.07, color.NRGBA{R: 0x3b, G: 0x82, B: 0xf6, A: 0xff}},
		{0.74, 0.05, 0.06, color.NRGBA{R: 0x60, G: 0xa5, B: 0xfa, A: 0xff}},
		{0.93, 0.16, 0.055, color.NRGBA{R: 0x1d, G: 0x4e, B: 0xd8, A: 0xff}},
		{0.12, 0.86, 0.07, color.NRGBA{R: 0x3b, G: 0x82, B: 0xf6, A: 0xff}},
		{0.25, 0.90, 0.06, color.NRGBA{R: 0x93, G: 0xc5, B: 0xfd, A: 0xff}},
		{0.06, 0.77, 0.055, color.NRGBA{R: 0x1d, G: 0x4e, B: 0xd8, A: 0xff}},
	}
	for _, b := range balloons {
		x, y, r := b.x*fw, b.y*fh, b.r*fw
		dc.SetColor(color.NRGBA{R: 0xc0, G: 0xc0, B: 0xc8, A: 0xff})
		dc.SetLineWidth(2)
		dc.DrawLine(x, y+r*1.2, x+r*0.2, y+r*4)
		dc.Stroke()
		dc.SetColor(b.c)
		dc.DrawEllipse(x, y, r, r*1.2)
		dc.Fill()
		dc.SetColor(color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x66})
		dc.DrawEllipse(x-r*0.35, y-r*0.45, r*0.2, r*0.3)
		dc.Fill()
	}

	dc.SetColor(color.NRGBA{R: 0x25, G: 0x63, B: 0xeb, A: 0xcc})
	dc.MoveTo(0, fh*0.97)
	for i := 0; i <= 8; i++ {
		x := fw * float64(i) / 8
		dy := 12.0
		if i%2 == 1 {
			dy = -12
		}
		dc.LineTo(x, fh*0.965+dy)
	}
	dc.LineTo(fw, fh)
	dc.LineTo(0, fh)
	dc.ClosePath()
	dc.Fill()
	return dc
}
