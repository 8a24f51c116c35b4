package images_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"furnistore/pkg/images"

	"github.com/stretchr/testify/assert"
)

// makePNG renders a width x height PNG for use as an upload fixture.
func makePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 100, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode fixture image: %v", err)
	}
	return buf.Bytes()
}

func TestResizeScalesToTargetWidth(t *testing.T) {
	data := makePNG(t, 1200, 800)

	encoded, err := images.Resize(data, 300)
	assert.NoError(t, err)
	assert.NotEmpty(t, encoded)

	decoded, err := images.Decode(encoded)
	assert.NoError(t, err)

	bounds := decoded.Bounds()
	assert.Equal(t, 300, bounds.Dx())
	// Height is adjusted proportionally, no cropping: 800 * (300/1200) = 200.
	assert.Equal(t, 200, bounds.Dy())
}

func TestResizeRejectsGarbageInput(t *testing.T) {
	_, err := images.Resize([]byte("definitely not an image"), 300)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode image")
}

func TestDecodeRejectsInvalidBase64(t *testing.T) {
	_, err := images.Decode("%%% not base64 %%%")
	assert.Error(t, err)
}
