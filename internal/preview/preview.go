// Package preview draws a scene as a coloured character grid for terminals.
package preview

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rook-computer/keyviz/internal/palette"
	"github.com/rook-computer/keyviz/internal/render"
)

const (
	DefaultColumnsPerUnit = 5
	DefaultRowsPerUnit    = 2
)

type Options struct {
	ColumnsPerUnit int
	RowsPerUnit    int
	// Renderer decides the colour profile; nil uses lipgloss' default.
	Renderer *lipgloss.Renderer
}

type cell struct {
	r   rune
	key *render.KeyShape
}

// Render lays every key of the scene onto a grid, ColumnsPerUnit characters
// wide and RowsPerUnit lines high per key-width unit. Each key fills the
// axis-aligned box around its rotated outline. The last column of each key is left
// blank so neighbours stay apart.
func Render(scene *render.Scene, opts Options) string {
	if scene == nil || scene.KeySize <= 0 {
		return ""
	}
	if opts.ColumnsPerUnit <= 0 {
		opts.ColumnsPerUnit = DefaultColumnsPerUnit
	}
	if opts.RowsPerUnit <= 0 {
		opts.RowsPerUnit = DefaultRowsPerUnit
	}
	if opts.Renderer == nil {
		opts.Renderer = lipgloss.DefaultRenderer()
	}

	cols := float64(opts.ColumnsPerUnit)
	rows := float64(opts.RowsPerUnit)
	width := int(math.Ceil(scene.Width / scene.KeySize * cols))
	height := int(math.Ceil(scene.Height / scene.KeySize * rows))
	grid := make([][]cell, height)
	for y := range grid {
		grid[y] = make([]cell, width)
		for x := range grid[y] {
			grid[y][x] = cell{r: ' '}
		}
	}

	for _, k := range scene.Keys {
		place(grid, k, scene.KeySize, cols, rows)
	}

	page := opts.Renderer.NewStyle().Background(lipgloss.Color(palette.Hex(scene.Theme.Page)))
	styles := make(map[*render.KeyShape]lipgloss.Style, len(scene.Keys))
	styleFor := func(k *render.KeyShape) lipgloss.Style {
		if k == nil {
			return page
		}
		if s, ok := styles[k]; ok {
			return s
		}
		s := opts.Renderer.NewStyle().
			Background(lipgloss.Color(palette.Hex(k.Base.Style.Fill))).
			Foreground(lipgloss.Color(palette.Hex(k.Label.Style.Fill))).
			Underline(k.State() == render.KeyHovered)
		styles[k] = s
		return s
	}

	var out strings.Builder
	for y, line := range grid {
		if y > 0 {
			out.WriteByte('\n')
		}
		// Emit runs of cells that share a key as one styled span.
		for x := 0; x < len(line); {
			start := x
			for x < len(line) && line[x].key == line[start].key {
				x++
			}
			var run strings.Builder
			for _, c := range line[start:x] {
				run.WriteRune(c.r)
			}
			out.WriteString(styleFor(line[start].key).Render(run.String()))
		}
	}
	return out.String()
}

func place(grid [][]cell, k *render.KeyShape, keySize, cols, rows float64) {
	minX, minY, maxX, maxY := k.Base.Bounds()
	cx, cy := (minX+maxX)/2, (minY+maxY)/2
	cw := max(int(math.Round((maxX-minX)/keySize*cols)), 2)
	ch := max(int(math.Round((maxY-minY)/keySize*rows)), 1)
	left := int(math.Round(cx/keySize*cols - float64(cw)/2))
	top := int(math.Round(cy/keySize*rows - float64(ch)/2))

	inner := cw - 1
	label := []rune(k.Label.Value)
	if len(label) > inner {
		label = label[:inner]
	}
	labelRow := top + (ch-1)/2
	labelCol := left + (inner-len(label))/2

	for y := top; y < top+ch; y++ {
		if y < 0 || y >= len(grid) {
			continue
		}
		for x := left; x < left+inner; x++ {
			if x < 0 || x >= len(grid[y]) {
				continue
			}
			r := ' '
			if y == labelRow && x >= labelCol && x < labelCol+len(label) {
				r = label[x-labelCol]
			}
			grid[y][x] = cell{r: r, key: k}
		}
	}
}
