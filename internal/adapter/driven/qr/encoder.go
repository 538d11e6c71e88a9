// Package qr implements the QREncoder driven port with skip2/go-qrcode.
package qr

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/ericfisherdev/wifivault/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.QREncoder = (*Encoder)(nil)

// Encoder renders QR codes as PNG images at medium error-correction level.
type Encoder struct{}

// NewEncoder creates an Encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// EncodePNG renders content as a size x size pixel PNG.
func (e *Encoder) EncodePNG(content string, size int) ([]byte, error) {
	png, err := qrcode.Encode(content, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return png, nil
}
