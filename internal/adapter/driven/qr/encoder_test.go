package qr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngMagic is the 8-byte PNG file signature.
var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func TestEncoder_EncodePNG(t *testing.T) {
	enc := NewEncoder()

	png, err := enc.EncodePNG("WIFI:T:WPA;S:HomeWifi;P:secret123;;", 200)
	require.NoError(t, err)
	require.Greater(t, len(png), len(pngMagic))
	assert.Equal(t, pngMagic, png[:len(pngMagic)])
}

func TestEncoder_EncodePNGEmptyContent(t *testing.T) {
	enc := NewEncoder()

	_, err := enc.EncodePNG("", 200)
	assert.Error(t, err)
}
