package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// cell is one character of the canvas with the depth of whatever drew it.
type cell struct {
	ch    rune
	color colorful.Color
	depth float64
}

// canvas is a depth-tested character grid.
type canvas struct {
	w, h  int
	cells []cell
}

func newCanvas(w, h int) *canvas {
	w, h = max(w, 0), max(h, 0)
	c := &canvas{w: w, h: h, cells: make([]cell, w*h)}
	for i := range c.cells {
		c.cells[i] = cell{ch: ' ', depth: math.Inf(1)}
	}
	return c
}

// plot draws ch if it is nearer than what the cell already holds.
func (c *canvas) plot(x, y int, ch rune, col colorful.Color, depth float64) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	p := &c.cells[y*c.w+x]
	if depth >= p.depth {
		return
	}
	*p = cell{ch: ch, color: col, depth: depth}
}

// text writes s over everything starting at (x, y).
func (c *canvas) text(x, y int, s string, col colorful.Color) {
	if y < 0 || y >= c.h {
		return
	}
	for _, r := range s {
		if x >= c.w {
			return
		}
		if x >= 0 {
			c.cells[y*c.w+x] = cell{ch: r, color: col, depth: math.Inf(-1)}
		}
		x++
	}
}

func (c *canvas) at(x, y int) cell {
	return c.cells[y*c.w+x]
}

// String renders the grid, styling runs of same-coloured cells together.
func (c *canvas) String() string {
	var b strings.Builder
	var run []rune
	for y := 0; y < c.h; y++ {
		row := c.cells[y*c.w : (y+1)*c.w]
		for x := 0; x < len(row); {
			if row[x].ch == ' ' {
				b.WriteByte(' ')
				x++
				continue
			}
			hex := row[x].color.Clamped().Hex()
			run = run[:0]
			for x < len(row) && row[x].ch != ' ' && row[x].color.Clamped().Hex() == hex {
				run = append(run, row[x].ch)
				x++
			}
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render(string(run)))
		}
		if y < c.h-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
