// Package board stores the bubble grid and runs the connectivity queries
// (match and orphan detection) over it. Storage is fixed-capacity and the
// traversals never allocate.
package board

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"

	"github.com/vovakirdan/hexpop/internal/core"
	"github.com/vovakirdan/hexpop/internal/fixed"
	"github.com/vovakirdan/hexpop/internal/hex"
)

// Capacity limits.
const (
	MaxRows  = 20
	MaxCols  = 16
	MaxCells = MaxRows * MaxCols
)

// Cell addresses a board slot. Row 0 is the ceiling row.
type Cell struct {
	Row int
	Col int
}

// InvalidCell is returned when no cell could be resolved.
var InvalidCell = Cell{Row: -1, Col: -1}

// Valid reports whether c is not the InvalidCell sentinel.
func (c Cell) Valid() bool {
	return c != InvalidCell
}

// Index returns the compact cell index row*MaxCols+col.
func (c Cell) Index() int {
	return c.Row*MaxCols + c.Col
}

// CellFromIndex inverts Index.
func CellFromIndex(i int) Cell {
	return Cell{Row: i / MaxCols, Col: i % MaxCols}
}

// Board is a hex brick grid. Rows alternate between colsEven and colsOdd
// columns by hex-row parity. Inserting a row at the top flips the parity so
// existing bubbles keep their neighbors after the shift.
type Board struct {
	cells    [MaxRows][MaxCols]Bubble
	rows     int
	colsEven int
	colsOdd  int
	parity   int
}

// New creates an empty board.
func New(rows, colsEven, colsOdd int) (*Board, error) {
	if rows < 2 || rows > MaxRows {
		return nil, fmt.Errorf("board: rows %d not in [2, %d]: %w", rows, MaxRows, core.ErrInvalidArgument)
	}
	if colsEven < 1 || colsEven > MaxCols {
		return nil, fmt.Errorf("board: cols_even %d not in [1, %d]: %w", colsEven, MaxCols, core.ErrInvalidArgument)
	}
	if colsOdd < 1 || colsOdd > colsEven {
		return nil, fmt.Errorf("board: cols_odd %d not in [1, %d]: %w", colsOdd, colsEven, core.ErrInvalidArgument)
	}
	return &Board{rows: rows, colsEven: colsEven, colsOdd: colsOdd}, nil
}

// Rows returns the number of rows.
func (b *Board) Rows() int { return b.rows }

// ColsEven returns the column count of even hex rows.
func (b *Board) ColsEven() int { return b.colsEven }

// ColsOdd returns the column count of odd hex rows.
func (b *Board) ColsOdd() int { return b.colsOdd }

// Parity returns the current row parity offset (0 or 1).
func (b *Board) Parity() int { return b.parity }

// Cols returns the number of columns in a row.
func (b *Board) Cols(row int) int {
	if (row+b.parity)&1 == 0 {
		return b.colsEven
	}
	return b.colsOdd
}

// InBounds reports whether c addresses a slot on the board.
func (b *Board) InBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < b.rows && c.Col >= 0 && c.Col < b.Cols(c.Row)
}

// Get returns the bubble at c. Out-of-bounds cells read as empty.
func (b *Board) Get(c Cell) Bubble {
	if !b.InBounds(c) {
		return Bubble{}
	}
	return b.cells[c.Row][c.Col]
}

// Occupied reports whether c holds a bubble.
func (b *Board) Occupied(c Cell) bool {
	return !b.Get(c).IsEmpty()
}

// Set stores a bubble at c.
func (b *Board) Set(c Cell, bub Bubble) error {
	if !b.InBounds(c) {
		return fmt.Errorf("board: cell (%d,%d): %w", c.Row, c.Col, core.ErrOutOfBounds)
	}
	b.cells[c.Row][c.Col] = bub
	return nil
}

// Clear empties c.
func (b *Board) Clear(c Cell) {
	if b.InBounds(c) {
		b.cells[c.Row][c.Col] = Bubble{}
	}
}

// Reset empties the board and restores even parity.
func (b *Board) Reset() {
	b.cells = [MaxRows][MaxCols]Bubble{}
	b.parity = 0
}

// Hex returns the hex offset coordinate of a cell.
func (b *Board) Hex(c Cell) hex.Offset {
	return hex.Offset{Row: c.Row + b.parity, Col: c.Col}
}

// CellOf converts a hex offset back to a board cell. The result may be out
// of bounds.
func (b *Board) CellOf(o hex.Offset) Cell {
	return Cell{Row: o.Row - b.parity, Col: o.Col}
}

// Neighbor returns the adjacent cell in direction d and whether it is on
// the board.
func (b *Board) Neighbor(c Cell, d hex.Direction) (Cell, bool) {
	n := b.CellOf(b.Hex(c).Neighbor(d))
	return n, b.InBounds(n)
}

// Layout returns the pixel layout for bubbles of the given radius. Board
// row 0 is always centered one radius below y=0.
func (b *Board) Layout(radius fixed.Fixed) hex.Layout {
	rowH := fixed.Sqrt3.Mul(radius)
	return hex.NewLayout(radius, fixed.Vec{Y: -rowH.MulInt(b.parity)})
}

// Center returns the pixel center of a cell.
func (b *Board) Center(c Cell, radius fixed.Fixed) fixed.Vec {
	return b.Layout(radius).ToPixel(b.Hex(c))
}

// CellAt returns the cell under a pixel. The result may be out of bounds.
func (b *Board) CellAt(p fixed.Vec, radius fixed.Fixed) Cell {
	return b.CellOf(b.Layout(radius).FromPixel(p))
}

// Width returns the pixel width spanned by the widest row.
func (b *Board) Width(radius fixed.Fixed) fixed.Fixed {
	even := radius.MulInt(2 * b.colsEven)
	odd := radius.MulInt(2*b.colsOdd + 1)
	return fixed.Maxf(even, odd)
}

// Height returns the pixel height from the ceiling to the bottom edge of
// the last row.
func (b *Board) Height(radius fixed.Fixed) fixed.Fixed {
	return radius.MulInt(2) + fixed.Sqrt3.Mul(radius).MulInt(b.rows-1)
}

// Count returns the number of occupied cells.
func (b *Board) Count() int {
	n := 0
	b.each(func(c Cell, bub Bubble) {
		if !bub.IsEmpty() {
			n++
		}
	})
	return n
}

// RowCount returns the number of occupied cells in a row.
func (b *Board) RowCount(row int) int {
	n := 0
	for col := 0; col < b.Cols(row); col++ {
		if !b.cells[row][col].IsEmpty() {
			n++
		}
	}
	return n
}

// IsEmpty reports whether no cell is occupied.
func (b *Board) IsEmpty() bool {
	return b.Count() == 0
}

// ColorMask returns the set of colors of colored bubbles on the board.
func (b *Board) ColorMask() ColorMask {
	var m ColorMask
	b.each(func(c Cell, bub Bubble) {
		if col, ok := bub.Color(); ok {
			m |= col.Bit()
		}
	})
	return m
}

// ColorCounts returns the number of colored bubbles per color.
func (b *Board) ColorCounts() [NumColors]int {
	var counts [NumColors]int
	b.each(func(c Cell, bub Bubble) {
		if col, ok := bub.Color(); ok {
			counts[col]++
		}
	})
	return counts
}

// Remove empties every listed cell and returns how many were occupied.
func (b *Board) Remove(cells []Cell) int {
	n := 0
	for _, c := range cells {
		if b.Occupied(c) {
			b.cells[c.Row][c.Col] = Bubble{}
			n++
		}
	}
	return n
}

// InsertRow shifts every row down by one and fills the new top row with
// fill(col). The previous bottom row is discarded; overflow reports whether
// it held any bubble. The shift happens regardless.
func (b *Board) InsertRow(fill func(col int) Bubble) (overflow bool) {
	overflow = b.RowCount(b.rows-1) > 0

	for row := b.rows - 1; row > 0; row-- {
		b.cells[row] = b.cells[row-1]
	}
	b.cells[0] = [MaxCols]Bubble{}
	b.parity ^= 1

	if fill != nil {
		for col := 0; col < b.Cols(0); col++ {
			b.cells[0][col] = fill(col)
		}
	}
	return overflow
}

// Load replaces the board contents with rows, top row first, starting at
// even parity. Rows longer than their column count or more rows than the
// board holds are rejected and the board is left unchanged.
func (b *Board) Load(rows [][]Bubble) error {
	if len(rows) > b.rows {
		return fmt.Errorf("board: %d rows exceeds board depth %d: %w", len(rows), b.rows, core.ErrOutOfBounds)
	}
	for i, r := range rows {
		cols := b.colsEven
		if i&1 == 1 {
			cols = b.colsOdd
		}
		if len(r) > cols {
			return fmt.Errorf("board: row %d has %d cells, max %d: %w", i, len(r), cols, core.ErrOutOfBounds)
		}
	}

	b.Reset()
	for i, r := range rows {
		copy(b.cells[i][:], r)
	}
	return nil
}

// Checksum returns an FNV-1a fingerprint of dimensions, parity and every
// cell's raw bytes.
func (b *Board) Checksum() uint64 {
	h := fnv.New64a()
	var hdr [16]byte
	binary.LittleEndian.PutUint32(hdr[0:], uint32(b.rows))
	binary.LittleEndian.PutUint32(hdr[4:], uint32(b.colsEven))
	binary.LittleEndian.PutUint32(hdr[8:], uint32(b.colsOdd))
	binary.LittleEndian.PutUint32(hdr[12:], uint32(b.parity))
	h.Write(hdr[:])

	for row := 0; row < b.rows; row++ {
		for col := 0; col < b.Cols(row); col++ {
			raw := b.cells[row][col].bytes()
			h.Write(raw[:])
		}
	}
	return h.Sum64()
}

// Clone returns an independent copy.
func (b *Board) Clone() *Board {
	c := *b
	return &c
}

// each visits every in-bounds cell in row-major order.
func (b *Board) each(fn func(c Cell, bub Bubble)) {
	for row := 0; row < b.rows; row++ {
		for col := 0; col < b.Cols(row); col++ {
			fn(Cell{Row: row, Col: col}, b.cells[row][col])
		}
	}
}
