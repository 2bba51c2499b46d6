package shot

import (
	"github.com/vovakirdan/hexpop/internal/board"
	"github.com/vovakirdan/hexpop/internal/fixed"
	"github.com/vovakirdan/hexpop/internal/hex"
)

// SnapToGrid resolves a continuous point to an empty cell: the cell under p
// when it is on the board and empty, else the empty neighbor whose center
// is nearest p. Returns board.InvalidCell when every candidate is taken.
func SnapToGrid(b *board.Board, radius fixed.Fixed, p fixed.Vec) board.Cell {
	c := b.CellAt(p, radius)
	if b.InBounds(c) && !b.Occupied(c) {
		return c
	}

	best := board.InvalidCell
	bestD := fixed.Max
	for _, d := range hex.Directions {
		n := b.CellOf(b.Hex(c).Neighbor(d))
		if !b.InBounds(n) || b.Occupied(n) {
			continue
		}
		if dist := b.Center(n, radius).DistSq(p); dist < bestD {
			best, bestD = n, dist
		}
	}
	return best
}

// SnapDirected picks, among the empty neighbors of the struck cell, the one
// lying most against the approach direction: the gap the shot arrived
// through. Ties fall back to distance from p, then canonical order.
func SnapDirected(b *board.Board, radius fixed.Fixed, hit board.Cell, approach, p fixed.Vec) board.Cell {
	dir := approach.Normalize()
	best := board.InvalidCell
	bestScore, bestD := fixed.Min, fixed.Max

	for _, d := range hex.Directions {
		n, ok := b.Neighbor(hit, d)
		if !ok || b.Occupied(n) {
			continue
		}
		score := -d.Unit().Dot(dir)
		dist := b.Center(n, radius).DistSq(p)
		if score > bestScore || (score == bestScore && dist < bestD) {
			best, bestScore, bestD = n, score, dist
		}
	}
	return best
}

// Resolve picks the placement cell for a terminal collision at p:
// SnapToGrid first, then SnapDirected around the struck cell when the
// neighborhood of p is full.
func Resolve(b *board.Board, radius fixed.Fixed, struck board.Cell, approach, p fixed.Vec) board.Cell {
	c := SnapToGrid(b, radius, p)
	if !c.Valid() && struck.Valid() {
		c = SnapDirected(b, radius, struck, approach, p)
	}
	return c
}
