package utils

import (
	"encoding/base64" // Base64 encoding of the PNG bytes

	qrcode "github.com/skip2/go-qrcode" // QR code PNG rendering
)

// QRImageDataURI renders data as a QR code PNG and returns it as a base64
// data URI suitable for direct embedding in a client <img> tag.
func QRImageDataURI(data string) (string, error) {
	png, err := qrcode.Encode(data, qrcode.Medium, 256) // 256x256 PNG
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
