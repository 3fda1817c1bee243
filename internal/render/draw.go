package render

import (
	"fmt"

	"github.com/rook-computer/keyviz/internal/keyboard"
	"github.com/rook-computer/keyviz/internal/palette"
)

// DrawKey builds the shapes of one key. The margin offset is applied here;
// key itself is never modified.
func DrawKey(ctx Context, key keyboard.Key) *KeyShape {
	size := key.Width()
	offset := ctx.offset()
	x := (key.Position.X + offset) * ctx.KeySize
	y := (key.Position.Y + offset) * ctx.KeySize
	w := size * ctx.KeySize
	h := ctx.KeySize

	shape := &KeyShape{
		ID:       key.ID,
		Size:     size,
		Rotation: key.Rotation,
		Base: Rect{
			X: x, Y: y, W: w, H: h,
			Rotation: key.Rotation,
			Style:    Style{Fill: ctx.Theme.Key, Stroke: ctx.Theme.KeyStroke, Opacity: 1},
		},
		Label: Text{
			X:          x + w/2,
			Y:          y + h/2,
			FontFamily: "monospace",
			FontSize:   baseFontSize,
			Style:      Style{Fill: ctx.Theme.Label, Opacity: 1},
		},
		Overlay: Rect{
			X: x, Y: y, W: w, H: h,
			Rotation: key.Rotation,
			Style:    Style{Fill: ctx.Theme.Overlay, Opacity: 0},
		},
	}
	shape.Update(key.Value)
	return shape
}

// Update replaces the label text and re-applies its rotation and fit scale.
// The base rectangle and overlay are left alone.
func (k *KeyShape) Update(value string) {
	k.Label.Value = value
	k.Label.Rotation = k.Rotation
	k.Label.Scale = LabelScale(k.Size, value)
}

// Options select what LayoutAndRenderKeyboard draws and how.
type Options struct {
	Keymap      string
	TargetWidth float64 // defaults to DefaultTargetWidth
	Theme       string  // defaults to palette.DefaultTheme
	Policy      HighlightPolicy
}

// Render draws a resolved layout: bounding box first, then every key in
// layout order.
func Render(ctx Context, layout keyboard.Layout) *Scene {
	width, height := ctx.CanvasSize(layout.Keyboard)
	scene := &Scene{
		Keyboard:      layout.Keyboard.Name,
		Configuration: layout.Configuration,
		Keymap:        layout.Keymap,
		Width:         width,
		Height:        height,
		KeySize:       ctx.KeySize,
		Border: Rect{
			W: width, H: height,
			Radius: borderRadius,
			Style:  Style{Stroke: ctx.Theme.Border, Opacity: 1},
		},
		Keys:  make([]*KeyShape, 0, len(layout.Keys)),
		Theme: ctx.Theme,
	}
	for _, key := range layout.Keys {
		scene.Keys = append(scene.Keys, DrawKey(ctx, key))
	}
	scene.index()
	return scene
}

// LayoutAndRenderKeyboard resolves a keyboard configuration from the
// registry and draws it. Nothing is drawn when resolution fails.
func LayoutAndRenderKeyboard(registry *keyboard.Registry, keyboardName, configurationName string, opts Options) (*Scene, error) {
	layout, err := registry.Resolve(keyboardName, configurationName)
	if err != nil {
		return nil, err
	}
	if opts.Keymap != "" {
		km, err := registry.Keymap(keyboardName, opts.Keymap)
		if err != nil {
			return nil, err
		}
		if layout, err = layout.WithKeymap(km); err != nil {
			return nil, err
		}
	}

	theme, err := palette.LookupTheme(opts.Theme)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", keyboard.ErrInvalid, err)
	}
	targetWidth := opts.TargetWidth
	if targetWidth == 0 {
		targetWidth = DefaultTargetWidth
	}
	ctx, err := NewContext(layout.Keyboard, targetWidth, theme)
	if err != nil {
		return nil, err
	}

	scene := Render(ctx, layout)
	scene.Policy = opts.Policy
	return scene, nil
}
