package clockin

import (
	qrcode "github.com/skip2/go-qrcode"
)

// DefaultQRSize is the PNG edge length in pixels.
const DefaultQRSize = 256

// RenderPNG encodes the token as a PNG QR code with high error correction.
func RenderPNG(code Code, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultQRSize
	}
	return qrcode.Encode(code.Token, qrcode.High, size)
}
