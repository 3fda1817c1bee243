package layout

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInset(t *testing.T) {
	assert.Equal(t, image.Rect(5, 5, 95, 45), Inset(image.Rect(0, 0, 100, 50), 5))
	assert.Equal(t, image.Rect(0, 0, 100, 50), Inset(image.Rect(0, 0, 100, 50), 0))
}

func TestNormalize(t *testing.T) {
	r := image.Rectangle{Min: image.Pt(10, 20), Max: image.Pt(0, 5)}
	assert.Equal(t, image.Rect(0, 5, 10, 20), Normalize(r))
}

func TestCenter(t *testing.T) {
	assert.Equal(t, image.Rect(40, 20, 60, 30), Center(image.Rect(0, 0, 100, 50), 20, 10))
	assert.Equal(t, image.Rect(0, 0, 100, 50), Center(image.Rect(0, 0, 100, 50), 500, 500))
}

func TestFit(t *testing.T) {
	screen := image.Rect(0, 0, 1920, 1080)

	// A 1000x450 keyboard is width bound on a 16:9 screen.
	assert.Equal(t, image.Rect(0, 108, 1920, 972), Fit(screen, image.Rect(0, 0, 1000, 450)))

	// A square is height bound.
	assert.Equal(t, image.Rect(420, 0, 1500, 1080), Fit(screen, image.Rect(0, 0, 10, 10)))

	assert.True(t, Fit(screen, image.Rectangle{}).Empty())
}
