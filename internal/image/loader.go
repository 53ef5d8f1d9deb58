package imagepkg

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/h2non/filetype"
	"golang.org/x/sync/errgroup"
)

// Asset names used in DecodeError.
const (
	AssetBackground = "background"
	AssetPhoto      = "photo"
	AssetLogo       = "logo"
)

var (
	errEmpty      = errors.New("empty payload")
	errZeroSize   = errors.New("image has zero width or height")
	acceptedMIMEs = map[string]bool{"image/png": true, "image/jpeg": true}
)

// Sources holds the raw inputs of one render. Photo and Logo are optional.
type Sources struct {
	Background string // base64, optionally with a data URL prefix
	Photo      []byte
	Logo       []byte
}

// Assets are the decoded images of one render. Photo and Logo may be nil.
type Assets struct {
	Background image.Image
	Photo      image.Image
	Logo       image.Image
}

// LoadAssets decodes all sources concurrently and fails on the first error.
// Decodes that have not started yet are skipped once ctx is done or another
// asset failed.
func LoadAssets(ctx context.Context, src Sources) (Assets, error) {
	var out Assets
	g, gctx := errgroup.WithContext(ctx)

	decode := func(dst *image.Image, fn func() (image.Image, error)) {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			img, err := fn()
			*dst = img
			return err
		})
	}
	decode(&out.Background, func() (image.Image, error) {
		return DecodeBase64Image(AssetBackground, src.Background)
	})
	decode(&out.Photo, func() (image.Image, error) {
		return decodeOptional(AssetPhoto, src.Photo)
	})
	decode(&out.Logo, func() (image.Image, error) {
		return decodeOptional(AssetLogo, src.Logo)
	})

	if err := g.Wait(); err != nil {
		return Assets{}, err
	}
	return out, nil
}

func decodeOptional(asset string, b []byte) (image.Image, error) {
	if len(b) == 0 {
		return nil, nil
	}
	return DecodeImage(asset, b)
}

// DecodeBase64Image decodes a base64 image payload such as the one returned
// by the background generator.
func DecodeBase64Image(asset, payload string) (image.Image, error) {
	payload = strings.TrimSpace(payload)
	if i := strings.Index(payload, ";base64,"); strings.HasPrefix(payload, "data:") && i >= 0 {
		payload = payload[i+len(";base64,"):]
	}
	if payload == "" {
		return nil, &DecodeError{Asset: asset, Err: errEmpty}
	}
	b, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, &DecodeError{Asset: asset, Err: fmt.Errorf("base64: %w", err)}
	}
	return DecodeImage(asset, b)
}

// DecodeImage decodes PNG or JPEG bytes, applying EXIF orientation.
func DecodeImage(asset string, b []byte) (image.Image, error) {
	if len(b) == 0 {
		return nil, &DecodeError{Asset: asset, Err: errEmpty}
	}
	kind, err := filetype.Match(b)
	if err != nil {
		return nil, &DecodeError{Asset: asset, Err: err}
	}
	if !acceptedMIMEs[kind.MIME.Value] {
		return nil, &DecodeError{Asset: asset, Err: fmt.Errorf("unsupported content type %q", kind.MIME.Value)}
	}
	img, err := imaging.Decode(bytes.NewReader(b), imaging.AutoOrientation(true))
	if err != nil {
		return nil, &DecodeError{Asset: asset, Err: err}
	}
	if img.Bounds().Dx() < 1 || img.Bounds().Dy() < 1 {
		return nil, &DecodeError{Asset: asset, Err: errZeroSize}
	}
	return img, nil
}
