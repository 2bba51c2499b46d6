// Package headless drives games without a terminal UI: a fixed-rate or
// unpaced runner, a deterministic autoplayer, a logging observer and a
// character canvas for dumping boards and aim previews.
package headless

import "strings"

// Tint selects the style a canvas cell is rendered with.
type Tint uint8

const (
	TintDefault Tint = iota
	TintRed
	TintGreen
	TintBlue
	TintYellow
	TintPurple
	TintOrange
	TintCyan
	TintWhite
	TintWall
	TintPath
	TintLanding
	TintSpecial
	TintBlocker
)

// Cell is one character of the canvas.
type Cell struct {
	Rune rune
	Tint Tint
}

// Canvas is a 2D character buffer. It decouples drawing from the output
// device: callers draw runes with a tint and the renderer decides whether
// to emit color.
type Canvas struct {
	width  int
	height int
	cells  [][]Cell
}

// NewCanvas creates a blank canvas with the given dimensions.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{
		width:  width,
		height: height,
	}
	c.cells = make([][]Cell, height)
	for y := range c.cells {
		c.cells[y] = make([]Cell, width)
	}
	c.Clear()
	return c
}

// Width returns the canvas width in characters.
func (c *Canvas) Width() int { return c.width }

// Height returns the canvas height in characters.
func (c *Canvas) Height() int { return c.height }

// Clear fills the canvas with untinted spaces.
func (c *Canvas) Clear() {
	for y := range c.cells {
		for x := range c.cells[y] {
			c.cells[y][x] = Cell{Rune: ' '}
		}
	}
}

// Set places a rune at the given position.
// Out-of-bounds coordinates are silently ignored.
func (c *Canvas) Set(x, y int, r rune, t Tint) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	c.cells[y][x] = Cell{Rune: r, Tint: t}
}

// Get returns the cell at the given position.
// Returns a blank cell for out-of-bounds coordinates.
func (c *Canvas) Get(x, y int) Cell {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return Cell{Rune: ' '}
	}
	return c.cells[y][x]
}

// DrawText writes a string horizontally starting at (x, y).
// Characters that extend beyond canvas bounds are clipped.
func (c *Canvas) DrawText(x, y int, text string, t Tint) {
	i := 0
	for _, r := range text {
		c.Set(x+i, y, r, t)
		i++
	}
}

// DrawHLine draws a horizontal line from (x, y) with the given length.
func (c *Canvas) DrawHLine(x, y, length int, r rune, t Tint) {
	for i := 0; i < length; i++ {
		c.Set(x+i, y, r, t)
	}
}

// DrawVLine draws a vertical line from (x, y) with the given length.
func (c *Canvas) DrawVLine(x, y, length int, r rune, t Tint) {
	for i := 0; i < length; i++ {
		c.Set(x, y+i, r, t)
	}
}

// String converts the canvas to plain text, one line per row.
func (c *Canvas) String() string {
	var sb strings.Builder
	sb.Grow(c.width*c.height + c.height)

	for y := 0; y < c.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < c.width; x++ {
			sb.WriteRune(c.cells[y][x].Rune)
		}
	}
	return sb.String()
}

// Row returns the specified row as plain text.
func (c *Canvas) Row(y int) string {
	if y < 0 || y >= c.height {
		return strings.Repeat(" ", c.width)
	}
	var sb strings.Builder
	for _, cell := range c.cells[y] {
		sb.WriteRune(cell.Rune)
	}
	return sb.String()
}
