// Package render turns a resolved keyboard layout into a Scene of drawable
// primitives and encodes scenes as SVG or raster images.
package render

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/rook-computer/keyviz/internal/keyboard"
	"github.com/rook-computer/keyviz/internal/palette"
)

const (
	// DefaultTargetWidth is the pixel width the keyboard footprint is scaled to.
	DefaultTargetWidth = 990
	// DefaultMargin is added to the canvas size; keys are inset by half of it.
	DefaultMargin = 10

	borderRadius = 5

	// Label fitting, tuned for a monospace font at the base font size.
	labelFitFactor = 8.0
	labelMaxScale  = 8.0 / 3.0
	baseFontSize   = 10

	hoverOpacity = 0.1
)

// Context carries everything a drawing call needs.
type Context struct {
	KeySize float64 // pixels per key-width unit
	Margin  float64 // pixels
	Theme   palette.Theme
}

// NewContext derives the key size so the keyboard footprint spans targetWidth pixels.
func NewContext(kb *keyboard.Keyboard, targetWidth float64, theme palette.Theme) (Context, error) {
	if targetWidth <= 0 {
		return Context{}, fmt.Errorf("%w: target width must be positive, got %g", keyboard.ErrInvalid, targetWidth)
	}
	if kb == nil || kb.Size.X <= 0 {
		return Context{}, fmt.Errorf("%w: keyboard without a width", keyboard.ErrInvalid)
	}
	return Context{
		KeySize: targetWidth / kb.Size.X,
		Margin:  DefaultMargin,
		Theme:   theme,
	}, nil
}

// CanvasSize is the keyboard footprint in pixels plus the margin.
func (c Context) CanvasSize(kb *keyboard.Keyboard) (width, height float64) {
	return kb.Size.X*c.KeySize + c.Margin, kb.Size.Y*c.KeySize + c.Margin
}

// offset converts keyboard-local positions to canvas positions, in key units.
func (c Context) offset() float64 {
	return c.Margin / 2 / c.KeySize
}

// LabelScale shrinks long labels on narrow keys and caps growth of short
// labels on wide keys: min(size*8/len(value), 8/3).
func LabelScale(size float64, value string) float64 {
	n := utf8.RuneCountInString(value)
	if n == 0 {
		return labelMaxScale
	}
	return math.Min(size*labelFitFactor/float64(n), labelMaxScale)
}
