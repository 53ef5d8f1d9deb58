package imagepkg

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	skyBlue = color.NRGBA{R: 0xbf, G: 0xdb, B: 0xfe, A: 0xff}
	magenta = color.NRGBA{R: 0xff, B: 0xff, A: 0xff}
	orange  = color.NRGBA{R: 0xff, G: 0x8c, A: 0xff}
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer("")
	require.NoError(t, err)
	return r
}

func renderPNG(t *testing.T, r *Renderer, in CardInput) image.Image {
	t.Helper()
	out, err := r.Render(context.Background(), in)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	return img
}

func anaInput(t *testing.T) CardInput {
	return CardInput{
		Name:     "Ana",
		Greeting: "¡Felices 30, Ana!",
		Sources:  Sources{Background: solidBase64(t, 90, 160, skyBlue)},
	}
}

func TestRenderWithoutPhotoAndLogo(t *testing.T) {
	r := newTestRenderer(t)
	img := renderPNG(t, r, anaInput(t))

	assert.Equal(t, image.Rect(0, 0, CanvasWidth, CanvasHeight), img.Bounds())

	// background shows in the corners
	assertNear(t, skyBlue, nrgbaAt(img, 5, 5), 2, "top left")
	assertNear(t, skyBlue, nrgbaAt(img, CanvasWidth-5, 5), 2, "top right")

	// placeholder fills the photo box, glyph in its center
	l := NewLayout(NameFontMax)
	assert.Equal(t, placeholderFill, nrgbaAt(img, int(l.Photo.X)+10, int(l.Photo.Y)+10))
	assert.Equal(t, placeholderFill, nrgbaAt(img, int(l.Photo.Right())-10, int(l.Photo.Bottom())-10))
	assert.Equal(t, placeholderGlyph, nrgbaAt(img, int(l.Photo.CenterX()), int(l.Photo.CenterY())-28))

	// polaroid frame is white between the photo box and its border
	assert.Equal(t, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, nrgbaAt(img, int(l.Polaroid.X)+20, int(l.Polaroid.Bottom())-40))

	// nothing drawn in the logo corner
	assertNear(t, skyBlue, nrgbaAt(img, CanvasWidth-60, CanvasHeight-60), 2, "logo corner")
}

const longGreeting = "¡Feliz cumpleaños, Ana! Que este nuevo año de vida venga cargado de momentos inolvidables, risas compartidas y muchísima felicidad junto a quienes más quieres."

func TestRenderDrawsTextLayers(t *testing.T) {
	r := newTestRenderer(t)
	in := anaInput(t)
	in.Greeting = longGreeting
	img := renderPNG(t, r, in)

	// "ANA" fits at the largest name size
	l := NewLayout(NameFontMax)
	cx := float64(CanvasWidth) / 2

	n, minX, maxX := textPixels(img, int(l.TitleY)-50, int(l.TitleY)-5)
	assert.Greater(t, n, 2000, "title")
	assert.InDelta(t, cx, float64(minX+maxX)/2, 15, "title is centered")

	n, minX, maxX = textPixels(img, int(l.NameY)-60, int(l.NameY)-5)
	assert.Greater(t, n, 1000, "name")
	assert.InDelta(t, cx, float64(minX+maxX)/2, 15, "name is centered")

	// glow shows under the name, which has no descenders
	glow := 0
	for y := int(l.NameY) + 3; y < int(l.NameY)+20; y++ {
		for x := 0; x < CanvasWidth; x++ {
			if c := nrgbaAt(img, x, y); c.R > skyBlue.R+2 && c.B <= skyBlue.B {
				glow++
			}
		}
	}
	assert.Greater(t, glow, 500, "name glow")

	italic := newFaceSet(r.italic)
	defer italic.close()
	lines := WrapLines(longGreeting, MessageMaxWidth, func(s string) float64 {
		return italic.measure(s, MessageFontSize)
	})
	require.GreaterOrEqual(t, len(lines), 2)

	for k := range lines {
		base := int(l.MessageY + float64(k)*LineHeight)
		n, minX, maxX := textPixels(img, base-20, base-3)
		assert.Greater(t, n, 100, "message line %d", k)
		assert.LessOrEqual(t, float64(maxX-minX+1), MessageMaxWidth, "message line %d width", k)
	}
	after := int(l.MessageY + float64(len(lines))*LineHeight)
	n, _, _ = textPixels(img, after-20, after-3)
	assert.Zero(t, n, "nothing drawn past the last message line")
}

func TestRenderShrinksLongName(t *testing.T) {
	r := newTestRenderer(t)
	in := anaInput(t)
	in.Name = "María Fernanda de los Ángeles"
	in.Greeting = ""
	img := renderPNG(t, r, in)

	bold := newFaceSet(r.bold)
	defer bold.close()
	size := ChooseFontSize("MARÍA FERNANDA DE LOS ÁNGELES", NameMaxWidth, bold.measure)
	require.Less(t, size, NameFontMax)
	l := NewLayout(size)

	n, minX, maxX := textPixels(img, int(l.NameY-size/2), int(l.NameY)-2)
	require.Greater(t, n, 0)
	span := float64(maxX - minX + 1)
	assert.LessOrEqual(t, span, NameMaxWidth)
	assert.Greater(t, span, NameMaxWidth/2)
	assert.InDelta(t, float64(CanvasWidth)/2, float64(minX+maxX)/2, 15)
}

func TestRenderIsDeterministic(t *testing.T) {
	r := newTestRenderer(t)
	in := anaInput(t)
	in.Photo = solidJPEG(t, 640, 480, orange)
	in.Logo = solidPNG(t, 200, 100, magenta)

	first, err := r.Render(context.Background(), in)
	require.NoError(t, err)
	second, err := r.Render(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(first, second), "renders differ")
}

func TestRenderPhotoUsesPlaceholderGeometry(t *testing.T) {
	r := newTestRenderer(t)
	without := renderPNG(t, r, anaInput(t))

	in := anaInput(t)
	in.Photo = solidPNG(t, 1200, 800, orange)
	with := renderPNG(t, r, in)

	l := NewLayout(NameFontMax)
	assertNear(t, orange, nrgbaAt(with, int(l.Photo.X)+10, int(l.Photo.Y)+10), 2, "photo corner")
	assertNear(t, orange, nrgbaAt(with, int(l.Photo.CenterX()), int(l.Photo.CenterY())), 2, "photo center")

	// the photo may differ from the placeholder only inside the photo box
	photo := image.Rect(int(l.Photo.X)-1, int(l.Photo.Y)-1, int(l.Photo.Right())+1, int(l.Photo.Bottom())+2)
	assertSameOutside(t, without, with, photo)
}

func TestRenderLogoOnlyChangesLogoRegion(t *testing.T) {
	r := newTestRenderer(t)
	without := renderPNG(t, r, anaInput(t))

	in := anaInput(t)
	in.Logo = solidPNG(t, 200, 100, magenta)
	with := renderPNG(t, r, in)

	box := NewLayout(NameFontMax).LogoBox(200, 100)
	assert.Equal(t, Box{X: 830, Y: 1770, W: 200, H: 100}, box)
	assertNear(t, magenta, nrgbaAt(with, int(box.CenterX()), int(box.CenterY())), 2, "logo center")

	logo := image.Rect(int(box.X), int(box.Y), int(box.Right()), int(box.Bottom()))
	assertSameOutside(t, without, with, logo)
}

func TestComposeErrors(t *testing.T) {
	r := newTestRenderer(t)
	_, err := r.Compose("Ana", "hola", Assets{})
	var de *DecodeError
	require.ErrorAs(t, err, &de)

	bg := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	_, err = (&Renderer{}).Compose("Ana", "hola", Assets{Background: bg})
	var re *RenderError
	require.ErrorAs(t, err, &re)
}

func TestRenderFailsOnBadPhoto(t *testing.T) {
	r := newTestRenderer(t)
	in := anaInput(t)
	in.Photo = []byte("not a photo")

	out, err := r.Render(context.Background(), in)
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, AssetPhoto, de.Asset)
	assert.Nil(t, out)
}

func TestNewRendererTitle(t *testing.T) {
	r, err := NewRenderer("  ")
	require.NoError(t, err)
	assert.Equal(t, DefaultTitle, r.title)

	r, err = NewRenderer("HAPPY BIRTHDAY!")
	require.NoError(t, err)
	assert.Equal(t, "HAPPY BIRTHDAY!", r.title)
}

func assertSameOutside(t *testing.T, a, b image.Image, except image.Rectangle) {
	t.Helper()
	require.Equal(t, a.Bounds(), b.Bounds())
	diffs := 0
	bounds := a.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if image.Pt(x, y).In(except) {
				continue
			}
			if nrgbaAt(a, x, y) != nrgbaAt(b, x, y) {
				diffs++
			}
		}
	}
	assert.Zero(t, diffs, "pixels differ outside %v", except)
}
