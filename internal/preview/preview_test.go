package preview

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rook-computer/keyviz/internal/keyboard"
	"github.com/rook-computer/keyviz/internal/palette"
	"github.com/rook-computer/keyviz/internal/render"
)

func scene(t *testing.T, configuration string) *render.Scene {
	t.Helper()
	registry, err := keyboard.Bundled()
	require.NoError(t, err)
	s, err := render.LayoutAndRenderKeyboard(registry, "ErgoDox", configuration, render.Options{Keymap: "QWERTY"})
	require.NoError(t, err)
	return s
}

func TestRender_GridSize(t *testing.T) {
	out := Render(scene(t, "Long Thumbs"), Options{})
	lines := strings.Split(out, "\n")

	// 1000x450 px at 55 px per unit.
	require.Len(t, lines, 17)
	for _, line := range lines {
		assert.Equal(t, 91, len([]rune(line)))
	}
}

func TestRender_Labels(t *testing.T) {
	out := Render(scene(t, "Long Thumbs"), Options{})
	for _, label := range []string{"Q", "W", "E", "R", "T", "Y"} {
		assert.Contains(t, out, label)
	}
}

func TestRender_TruncatesLongLabels(t *testing.T) {
	s := scene(t, "Split Thumbs")
	require.NoError(t, s.SetLabel("k11", "ABCDEFGHIJ"))
	out := Render(s, Options{})
	assert.Contains(t, out, "ABCD")
	assert.NotContains(t, out, "ABCDE")
}

func TestRender_Empty(t *testing.T) {
	assert.Empty(t, Render(nil, Options{}))
}

func TestPlace_QuarterTurnSwapsFootprint(t *testing.T) {
	ctx := render.Context{KeySize: 10, Theme: palette.Default()}
	footprint := func(rotation float64) (cols, rows int) {
		k := render.DrawKey(ctx, keyboard.Key{ID: "k", Size: 2, Position: keyboard.Vec{X: 2, Y: 2}, Rotation: rotation})
		grid := make([][]cell, 20)
		for y := range grid {
			grid[y] = make([]cell, 50)
		}
		place(grid, k, ctx.KeySize, DefaultColumnsPerUnit, DefaultRowsPerUnit)

		usedCols, usedRows := map[int]bool{}, map[int]bool{}
		for y, line := range grid {
			for x, c := range line {
				if c.key == k {
					usedCols[x], usedRows[y] = true, true
				}
			}
		}
		return len(usedCols), len(usedRows)
	}

	cols, rows := footprint(0)
	assert.Equal(t, 9, cols)
	assert.Equal(t, 2, rows)

	cols, rows = footprint(-90)
	assert.Equal(t, 4, cols)
	assert.Equal(t, 4, rows)
}
