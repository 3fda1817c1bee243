package palette

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette is a named table of colours.
type Palette struct {
	Name   string
	colors map[string]color.RGBA
}

func newPalette(name string, hex map[string]string) Palette {
	colors := make(map[string]color.RGBA, len(hex))
	for key, value := range hex {
		colors[key] = MustParse(value)
	}
	return Palette{Name: name, colors: colors}
}

// Color returns the named colour of the palette.
func (p Palette) Color(name string) (color.RGBA, error) {
	c, ok := p.colors[name]
	if !ok {
		return color.RGBA{}, fmt.Errorf("palette %s has no colour %q", p.Name, name)
	}
	return c, nil
}

// MustColor is Color for names known at compile time.
func (p Palette) MustColor(name string) color.RGBA {
	c, err := p.Color(name)
	if err != nil {
		panic(err)
	}
	return c
}

// Names lists the colour names in alphabetical order.
func (p Palette) Names() []string {
	names := make([]string, 0, len(p.colors))
	for name := range p.colors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Parse converts a "#rrggbb" string into an opaque colour.
func Parse(hex string) (color.RGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, err
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}, nil
}

func MustParse(hex string) color.RGBA {
	c, err := Parse(hex)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex formats c as "#rrggbb", ignoring alpha.
func Hex(c color.Color) string {
	if c == nil {
		return "none"
	}
	r, g, b, a := c.RGBA()
	if a == 0 {
		return "none"
	}
	// Un-premultiply so translucent colours keep their hue.
	cf := colorful.Color{
		R: float64(r) / float64(a),
		G: float64(g) / float64(a),
		B: float64(b) / float64(a),
	}
	return cf.Clamped().Hex()
}
