package render

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rook-computer/keyviz/internal/keyboard"
	"github.com/rook-computer/keyviz/internal/palette"
)

func ergodox(t *testing.T) *keyboard.Registry {
	t.Helper()
	registry, err := keyboard.Bundled()
	require.NoError(t, err)
	return registry
}

func longThumbs(t *testing.T, opts Options) *Scene {
	t.Helper()
	scene, err := LayoutAndRenderKeyboard(ergodox(t), "ErgoDox", "Long Thumbs", opts)
	require.NoError(t, err)
	return scene
}

func TestLabelScale(t *testing.T) {
	const maxScale = 8.0 / 3.0
	tests := []struct {
		size  float64
		label string
		want  float64
	}{
		{1, "a", maxScale},
		{1.5, "a", maxScale},
		{2, "a", maxScale},
		{1, "abcd", 2},
		{1.5, "abcd", maxScale},
		{2, "abcd", maxScale},
		{1, "abcdefgh", 1},
		{1.5, "abcdefgh", 1.5},
		{2, "abcdefgh", 2},
		{1, "", maxScale},
		{1, "←", maxScale},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, LabelScale(tt.size, tt.label), 1e-9, "size=%g label=%q", tt.size, tt.label)
	}
}

func TestNewContext_KeySize(t *testing.T) {
	kb := &keyboard.Keyboard{Name: "X", Size: keyboard.Vec{X: 18, Y: 8}}
	ctx, err := NewContext(kb, 990, palette.Default())
	require.NoError(t, err)
	assert.Equal(t, 55.0, ctx.KeySize)

	w, h := ctx.CanvasSize(kb)
	assert.Equal(t, 18.0*55+10, w)
	assert.Equal(t, 8.0*55+10, h)

	_, err = NewContext(kb, 0, palette.Default())
	assert.ErrorIs(t, err, keyboard.ErrInvalid)
}

func TestLayoutAndRenderKeyboard_Geometry(t *testing.T) {
	scene := longThumbs(t, Options{})

	assert.Equal(t, 55.0, scene.KeySize)
	assert.Equal(t, 1000.0, scene.Width)
	assert.Equal(t, 450.0, scene.Height)
	assert.Equal(t, Rect{W: 1000, H: 450, Radius: 5, Style: Style{Stroke: palette.Default().Border, Opacity: 1}}, scene.Border)
	require.Len(t, scene.Keys, 76)

	// Configuration keys are drawn before the shared ones.
	assert.Equal(t, "k02", scene.Keys[0].ID)
	assert.Equal(t, "k01", scene.Keys[4].ID)

	k50, ok := scene.Key("k50")
	require.True(t, ok)
	assert.InDelta(t, 5, k50.Base.X, 1e-9)
	assert.InDelta(t, 5, k50.Base.Y, 1e-9)
	assert.InDelta(t, 82.5, k50.Base.W, 1e-9)
	assert.InDelta(t, 55, k50.Base.H, 1e-9)
	assert.Equal(t, k50.Base.X, k50.Overlay.X)
	assert.Equal(t, k50.Base.W, k50.Overlay.W)
	assert.Equal(t, 0.0, k50.Overlay.Style.Opacity)
	assert.Equal(t, "k50", k50.Label.Value)
	assert.InDelta(t, 5+82.5/2, k50.Label.X, 1e-9)
	assert.InDelta(t, 5+55.0/2, k50.Label.Y, 1e-9)
	// 1.5*8/3 = 4 is over the cap.
	assert.InDelta(t, labelMaxScale, k50.Label.Scale, 1e-9)
}

func TestDrawKey_LabelCapOnWideKey(t *testing.T) {
	ctx := Context{KeySize: 55, Margin: DefaultMargin, Theme: palette.Default()}
	key := keyboard.Key{ID: "k05", Size: 2, Position: keyboard.Vec{X: 5, Y: 6.5}, Value: "Esc"}

	short := DrawKey(ctx, key)
	assert.InDelta(t, labelMaxScale, short.Label.Scale, 1e-9)

	key.Value = "Backspace"
	long := DrawKey(ctx, key)
	assert.InDelta(t, 2*8.0/9, long.Label.Scale, 1e-9)
	assert.Equal(t, short.Base, long.Base)
}

func TestRotatedKeyStaysInItsColumn(t *testing.T) {
	scene := longThumbs(t, Options{})
	k46, ok := scene.Key("k46")
	require.True(t, ok)
	assert.Equal(t, -90.0, k46.Base.Rotation)
	assert.Equal(t, -90.0, k46.Label.Rotation)

	// [6.25, 1.25] size 1.5 turned a quarter: one unit wide, 1.5 tall, starting at x=6.5.
	minX, minY, maxX, maxY := k46.Base.Bounds()
	assert.InDelta(t, 6.5*55+5, minX, 1e-6)
	assert.InDelta(t, 7.5*55+5, maxX, 1e-6)
	assert.InDelta(t, 1.0*55+5, minY, 1e-6)
	assert.InDelta(t, 2.5*55+5, maxY, 1e-6)
}

func TestRenderTwiceDoesNotDoubleOffset(t *testing.T) {
	registry := ergodox(t)
	first, err := LayoutAndRenderKeyboard(registry, "ErgoDox", "Long Thumbs", Options{})
	require.NoError(t, err)
	second, err := LayoutAndRenderKeyboard(registry, "ErgoDox", "Long Thumbs", Options{})
	require.NoError(t, err)

	for i := range first.Keys {
		assert.Equal(t, first.Keys[i].Base, second.Keys[i].Base)
	}
}

func TestLayoutAndRenderKeyboard_Errors(t *testing.T) {
	registry := ergodox(t)

	_, err := LayoutAndRenderKeyboard(registry, "ErgoDox", "No Thumbs", Options{})
	assert.ErrorIs(t, err, keyboard.ErrNotFound)

	_, err = LayoutAndRenderKeyboard(registry, "Atreus", "Long Thumbs", Options{})
	assert.ErrorIs(t, err, keyboard.ErrNotFound)

	_, err = LayoutAndRenderKeyboard(registry, "ErgoDox", "Long Thumbs", Options{Keymap: "Colemak"})
	assert.ErrorIs(t, err, keyboard.ErrNotFound)

	_, err = LayoutAndRenderKeyboard(registry, "ErgoDox", "Long Thumbs", Options{Theme: "neon"})
	assert.ErrorIs(t, err, keyboard.ErrInvalid)

	_, err = LayoutAndRenderKeyboard(registry, "ErgoDox", "Long Thumbs", Options{TargetWidth: -1})
	assert.ErrorIs(t, err, keyboard.ErrInvalid)
}

func TestKeymapLabels(t *testing.T) {
	scene := longThumbs(t, Options{Keymap: "QWERTY"})
	assert.Equal(t, "QWERTY", scene.Keymap)

	k20, _ := scene.Key("k20")
	assert.Equal(t, "Shift", k20.Label.Value)
	assert.InDelta(t, 1.5*8/5, k20.Label.Scale, 1e-9)
}

func TestDrawThenUpdate(t *testing.T) {
	scene := longThumbs(t, Options{})
	for _, k := range scene.Keys {
		base, overlay := k.Base, k.Overlay
		k.Update("Backspace")
		assert.Equal(t, base, k.Base, k.ID)
		assert.Equal(t, overlay, k.Overlay, k.ID)
		assert.Equal(t, "Backspace", k.Label.Value)
		assert.Equal(t, k.Rotation, k.Label.Rotation)
		assert.InDelta(t, LabelScale(k.Size, "Backspace"), k.Label.Scale, 1e-9)
	}
}

func TestSetLabel(t *testing.T) {
	scene := longThumbs(t, Options{})
	require.NoError(t, scene.SetLabel("k03", "Space"))
	k03, _ := scene.Key("k03")
	assert.Equal(t, "Space", k03.Label.Value)

	assert.ErrorIs(t, scene.SetLabel("k99", "x"), keyboard.ErrNotFound)
	assert.ErrorIs(t, scene.SetLabel("k03", strings.Repeat("x", keyboard.MaxLabelLength+1)), keyboard.ErrInvalid)
}

func TestHover(t *testing.T) {
	scene := longThumbs(t, Options{})
	k, _ := scene.Key("k41")

	require.NoError(t, scene.PointerEnter("k41"))
	assert.Equal(t, 0.1, k.Overlay.Style.Opacity)
	assert.Equal(t, KeyHovered, k.State())

	require.NoError(t, scene.PointerLeave("k41"))
	assert.Equal(t, 0.0, k.Overlay.Style.Opacity)
	assert.Equal(t, KeyIdle, k.State())

	assert.ErrorIs(t, scene.PointerEnter("nope"), keyboard.ErrNotFound)
	assert.ErrorIs(t, scene.PointerLeave("nope"), keyboard.ErrNotFound)
	assert.ErrorIs(t, scene.PointerRelease("nope"), keyboard.ErrNotFound)
}

func TestPointerRelease_Sticky(t *testing.T) {
	scene := longThumbs(t, Options{})
	theme := palette.Default()

	require.NoError(t, scene.PointerRelease("k41"))
	require.NoError(t, scene.PointerRelease("k42"))

	k41, _ := scene.Key("k41")
	k42, _ := scene.Key("k42")
	assert.Equal(t, theme.Highlight, k41.Base.Style.Fill)
	assert.Equal(t, theme.Highlight, k42.Base.Style.Fill)
	assert.Equal(t, KeyPressed, k41.State())
	assert.Equal(t, "k42", scene.Selected())

	scene.ClearSelection()
	assert.Equal(t, theme.Key, k41.Base.Style.Fill)
	assert.Equal(t, theme.Key, k42.Base.Style.Fill)
	assert.Empty(t, scene.Selected())
}

func TestPointerRelease_Single(t *testing.T) {
	scene := longThumbs(t, Options{Policy: Single})
	theme := palette.Default()

	require.NoError(t, scene.PointerRelease("k41"))
	require.NoError(t, scene.PointerRelease("k42"))

	k41, _ := scene.Key("k41")
	k42, _ := scene.Key("k42")
	assert.Equal(t, theme.Key, k41.Base.Style.Fill)
	assert.False(t, k41.Highlighted())
	assert.Equal(t, theme.Highlight, k42.Base.Style.Fill)

	// Pressing the selected key again keeps it highlighted.
	require.NoError(t, scene.PointerRelease("k42"))
	assert.True(t, k42.Highlighted())
}

func TestParseHighlightPolicy(t *testing.T) {
	p, ok := ParseHighlightPolicy("single")
	assert.True(t, ok)
	assert.Equal(t, Single, p)
	p, ok = ParseHighlightPolicy("")
	assert.True(t, ok)
	assert.Equal(t, Sticky, p)
	_, ok = ParseHighlightPolicy("toggle")
	assert.False(t, ok)
}

func TestClone(t *testing.T) {
	scene := longThumbs(t, Options{})
	require.NoError(t, scene.PointerRelease("k41"))
	copied := scene.Clone()

	require.NoError(t, scene.PointerRelease("k42"))
	require.NoError(t, scene.SetLabel("k41", "Q"))

	k41, _ := copied.Key("k41")
	k42, _ := copied.Key("k42")
	assert.True(t, k41.Highlighted())
	assert.False(t, k42.Highlighted())
	assert.Equal(t, "k41", k41.Label.Value)
	assert.Equal(t, "k41", copied.Selected())
}

func TestEncodeSVG(t *testing.T) {
	scene := longThumbs(t, Options{})
	require.NoError(t, scene.PointerRelease("k46"))

	var buf bytes.Buffer
	require.NoError(t, EncodeSVG(&buf, scene))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Contains(t, out, `<svg xmlns="http://www.w3.org/2000/svg" width="1000" height="450" viewBox="0 0 1000 450"`)
	assert.Contains(t, out, `data-configuration="Long Thumbs"`)
	assert.Contains(t, out, `rx="5"`)
	assert.Equal(t, 76, strings.Count(out, `class="key"`))
	assert.Contains(t, out, `<g class="key" data-key="k46" data-state="pressed">`)
	assert.Contains(t, out, `fill="#fcaf3e"`)
	assert.Contains(t, out, `transform="rotate(-90 390 101.25)"`)
	assert.Contains(t, out, `opacity="0"`)

	// The document is well formed and the overlay follows the label.
	var doc struct {
		Groups []struct {
			Key   string `xml:"data-key,attr"`
			Inner string `xml:",innerxml"`
		} `xml:"g"`
	}
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Groups, 76)
	inner := doc.Groups[0].Inner
	assert.Less(t, strings.Index(inner, "key-base"), strings.Index(inner, "key-label"))
	assert.Less(t, strings.Index(inner, "key-label"), strings.Index(inner, "key-button"))
}

func TestSceneJSON(t *testing.T) {
	scene := longThumbs(t, Options{})
	k, _ := scene.Key("k41")
	data, err := json.Marshal(k)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"fill":"#729fcf"`)
	assert.Contains(t, string(data), `"stroke":"none"`)
}

func TestRasterize(t *testing.T) {
	scene := longThumbs(t, Options{})
	rasterizer := NewRasterizer()
	theme := palette.Default()

	img := rasterizer.Rasterize(scene)
	assert.Equal(t, 1000, img.Bounds().Dx())
	assert.Equal(t, 450, img.Bounds().Dy())

	// Inside k51, away from its border and label.
	assert.Equal(t, theme.Key, img.RGBAAt(91, 8))
	// Outside every key.
	assert.Equal(t, theme.Page, img.RGBAAt(450, 100))

	require.NoError(t, scene.PointerRelease("k51"))
	img = rasterizer.Rasterize(scene)
	assert.Equal(t, theme.Highlight, img.RGBAAt(91, 8))

	var buf bytes.Buffer
	require.NoError(t, rasterizer.EncodePNG(&buf, scene))
	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())
}

func TestQRCodePNG(t *testing.T) {
	data, err := QRCodePNG("http://keyviz.local:8080/", 0)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, defaultQRCodeSizePx, img.Bounds().Dx())

	data, err = QRCodePNG("", 64)
	assert.NoError(t, err)
	assert.Nil(t, data)
}
