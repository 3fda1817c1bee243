package render

import (
	"github.com/skip2/go-qrcode"
)

const defaultQRCodeSizePx = 256

// QRCodePNG returns a PNG QR code for payload, typically the viewer URL.
func QRCodePNG(payload string, sizePx int) ([]byte, error) {
	if payload == "" {
		return nil, nil
	}
	if sizePx <= 0 {
		sizePx = defaultQRCodeSizePx
	}
	return qrcode.Encode(payload, qrcode.Medium, sizePx)
}
