package palette

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTangoColors(t *testing.T) {
	c, err := Tango.Color("lightBlue")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0x72, G: 0x9f, B: 0xcf, A: 0xFF}, c)

	_, err = Tango.Color("ultraviolet")
	assert.Error(t, err)
}

func TestSolarizedHasSixteenColors(t *testing.T) {
	assert.Len(t, Solarized.Names(), 16)
	assert.Equal(t, "#002b36", Hex(Solarized.MustColor("base03")))
}

func TestHex(t *testing.T) {
	assert.Equal(t, "#fcaf3e", Hex(Tango.MustColor("lightOrange")))
	assert.Equal(t, "none", Hex(nil))
	assert.Equal(t, "none", Hex(color.RGBA{}))
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse("blue")
	assert.Error(t, err)
}

func TestLookupTheme(t *testing.T) {
	theme, err := LookupTheme("")
	require.NoError(t, err)
	assert.Equal(t, DefaultTheme, theme.Name)
	assert.Equal(t, Tango.MustColor("lightOrange"), theme.Highlight)

	_, err = LookupTheme("neon")
	assert.ErrorIs(t, err, ErrUnknownTheme)

	assert.Equal(t, []string{"solarized-dark", "solarized-light", "tango"}, ThemeNames())
}
