package imagepkg

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"
)

func solidPNG(t *testing.T, w, h int, c color.NRGBA) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, imaging.New(w, h, c)))
	return buf.Bytes()
}

func solidJPEG(t *testing.T, w, h int, c color.NRGBA) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, imaging.New(w, h, c), &jpeg.Options{Quality: 95}))
	return buf.Bytes()
}

func solidBase64(t *testing.T, w, h int, c color.NRGBA) string {
	t.Helper()
	return base64.StdEncoding.EncodeToString(solidPNG(t, w, h, c))
}

func nrgbaAt(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

// colorNear reports whether every channel of a and b differs by at most tol.
func colorNear(a, b color.NRGBA, tol int) bool {
	diff := func(x, y uint8) int {
		d := int(x) - int(y)
		if d < 0 {
			return -d
		}
		return d
	}
	return diff(a.R, b.R) <= tol && diff(a.G, b.G) <= tol && diff(a.B, b.B) <= tol && diff(a.A, b.A) <= tol
}

// assertNear fails when any channel differs by more than tol.
func assertNear(t *testing.T, want, got color.NRGBA, tol int, where string) {
	t.Helper()
	if !colorNear(want, got, tol) {
		require.Failf(t, "colors differ", "%s: want %v, got %v", where, want, got)
	}
}

// textPixels counts pixels in the text color within rows [y0, y1) and
// returns the horizontal extent they cover.
func textPixels(img image.Image, y0, y1 int) (n, minX, maxX int) {
	b := img.Bounds()
	minX, maxX = b.Max.X, b.Min.X-1
	for y := y0; y < y1; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if colorNear(textColor, nrgbaAt(img, x, y), 6) {
				n++
				minX = min(minX, x)
				maxX = max(maxX, x)
			}
		}
	}
	return n, minX, maxX
}
