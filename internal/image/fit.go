package imagepkg

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// Rect is a fractional source rectangle.
type Rect struct {
	X, Y, W, H float64
}

// CoverCrop returns the centered region of a srcW x srcH image that has the
// aspect ratio of dstW x dstH. Scaling that region to the destination fills
// it completely without distortion; the longer dimension is cropped.
func CoverCrop(srcW, srcH, dstW, dstH float64) Rect {
	srcAspect := srcW / srcH
	dstAspect := dstW / dstH
	if srcAspect > dstAspect {
		w := srcH * dstAspect
		return Rect{X: (srcW - w) / 2, Y: 0, W: w, H: srcH}
	}
	h := srcW / dstAspect
	return Rect{X: 0, Y: (srcH - h) / 2, W: srcW, H: h}
}

// FitCover crops img with cover semantics and resamples it to exactly
// dstW x dstH pixels.
func FitCover(img image.Image, dstW, dstH int) *image.NRGBA {
	b := img.Bounds()
	r := CoverCrop(float64(b.Dx()), float64(b.Dy()), float64(dstW), float64(dstH))
	crop := image.Rect(
		int(math.Round(r.X)), int(math.Round(r.Y)),
		int(math.Round(r.X+r.W)), int(math.Round(r.Y+r.H)),
	).Add(b.Min)
	if crop.Empty() {
		crop = b
	}
	return imaging.Resize(imaging.Crop(img, crop), dstW, dstH, imaging.Lanczos)
}

// FitLogo scales img into box, which already carries the aspect-preserving
// size computed by Layout.LogoBox.
func FitLogo(img image.Image, box Box) *image.NRGBA {
	w := max(1, int(math.Round(box.W)))
	h := max(1, int(math.Round(box.H)))
	if w == img.Bounds().Dx() && h == img.Bounds().Dy() {
		return imaging.Clone(img)
	}
	return imaging.Resize(img, w, h, imaging.Lanczos)
}
