package ticket

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// DefaultQRSize is the pixel width/height used when the caller does not ask
// for a specific size.
const DefaultQRSize = 256

// QRPNG renders a token as a scannable PNG QR image. The transform is pure:
// scanning the image yields exactly the token string back.
func QRPNG(token string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultQRSize
	}
	png, err := qrcode.Encode(token, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("render qr: %w", err)
	}
	return png, nil
}
