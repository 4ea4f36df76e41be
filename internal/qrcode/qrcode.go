package qrcode

import qr "github.com/skip2/go-qrcode"

// Generate creates a QR code PNG for a session join link.
func Generate(joinURL string) ([]byte, error) {
	return qr.Encode(joinURL, qr.Medium, 256)
}
