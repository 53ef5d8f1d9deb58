package imagepkg

import (
	"errors"

	qrcode "github.com/skip2/go-qrcode"
)

// QR size bounds in pixels.
const (
	QRDefaultSize = 400
	QRMinSize     = 64
	QRMaxSize     = 1024
)

// GenerateQRPNG returns PNG bytes of a QR code for text, typically the
// download URL of a card. Out of range sizes are clamped.
func GenerateQRPNG(text string, size int) ([]byte, error) {
	if text == "" {
		return nil, errors.New("empty qr text")
	}
	if size <= 0 {
		size = QRDefaultSize
	}
	size = min(max(size, QRMinSize), QRMaxSize)
	return qrcode.Encode(text, qrcode.Medium, size)
}
