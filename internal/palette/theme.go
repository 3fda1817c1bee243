package palette

import (
	"errors"
	"fmt"
	"image/color"
	"sort"
)

var ErrUnknownTheme = errors.New("unknown theme")

// Theme assigns palette colours to the parts of a drawn keyboard.
type Theme struct {
	Name string

	Page      color.RGBA // behind the canvas
	Border    color.RGBA // keyboard bounding box stroke
	Key       color.RGBA
	KeyStroke color.RGBA
	Label     color.RGBA
	Highlight color.RGBA // key fill after a press
	Overlay   color.RGBA // hover overlay, drawn at low opacity
}

const DefaultTheme = "tango"

var themes = map[string]Theme{
	"tango": {
		Name:      "tango",
		Page:      Tango.MustColor("lightGray"),
		Border:    Tango.MustColor("lightBlue"),
		Key:       Tango.MustColor("lightBlue"),
		KeyStroke: Tango.MustColor("lightGray"),
		Label:     color.RGBA{A: 0xFF},
		Highlight: Tango.MustColor("lightOrange"),
		Overlay:   color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
	},
	"solarized-dark": {
		Name:      "solarized-dark",
		Page:      Solarized.MustColor("base03"),
		Border:    Solarized.MustColor("base01"),
		Key:       Solarized.MustColor("base02"),
		KeyStroke: Solarized.MustColor("base01"),
		Label:     Solarized.MustColor("base0"),
		Highlight: Solarized.MustColor("orange"),
		Overlay:   Solarized.MustColor("base3"),
	},
	"solarized-light": {
		Name:      "solarized-light",
		Page:      Solarized.MustColor("base3"),
		Border:    Solarized.MustColor("base1"),
		Key:       Solarized.MustColor("base2"),
		KeyStroke: Solarized.MustColor("base1"),
		Label:     Solarized.MustColor("base00"),
		Highlight: Solarized.MustColor("yellow"),
		Overlay:   Solarized.MustColor("base03"),
	},
}

// LookupTheme returns the named theme. An empty name selects DefaultTheme.
func LookupTheme(name string) (Theme, error) {
	if name == "" {
		name = DefaultTheme
	}
	theme, ok := themes[name]
	if !ok {
		return Theme{}, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
	return theme, nil
}

func Default() Theme {
	return themes[DefaultTheme]
}

func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
