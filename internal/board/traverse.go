package board

import "github.com/vovakirdan/hexpop/internal/hex"

// Predicate decides whether cell joins a traversal started at origin.
type Predicate func(b *Board, cell, origin Cell) bool

// Traverse runs a breadth-first search from origin over cells accepted by
// pred. Accepted cells are marked in visited and appended to out in visit
// order; out doubles as the queue. The origin is seeded only when pred
// accepts it and it is not already visited. Sharing visited across calls
// merges several searches into one component set. Returns the number of
// cells added.
func (b *Board) Traverse(origin Cell, pred Predicate, visited *CellSet, out *CellList) int {
	if !b.InBounds(origin) || visited.Has(origin) || !pred(b, origin, origin) {
		return 0
	}
	start := out.Len()
	visited.Add(origin)
	out.Append(origin)

	for head := start; head < out.Len(); head++ {
		cur := out.At(head)
		for _, d := range hex.Directions {
			n, ok := b.Neighbor(cur, d)
			if !ok || visited.Has(n) || !pred(b, n, origin) {
				continue
			}
			visited.Add(n)
			out.Append(n)
		}
	}
	return out.Len() - start
}

// solidPredicate accepts any occupied, non-ghost cell.
func solidPredicate(b *Board, cell, _ Cell) bool {
	return b.Get(cell).Solid()
}

func colorPredicate(c Color) Predicate {
	return func(b *Board, cell, _ Cell) bool {
		bub := b.Get(cell)
		return bub.Solid() && bub.Matches(c)
	}
}

// FindMatch collects the connected component matching the bubble at origin
// into out and returns its color and size. A wildcard or rainbow origin
// tries the color of each colored neighbor in canonical order and keeps the
// largest component. A blocker, empty cell or non-rainbow special matches
// nothing.
func (b *Board) FindMatch(origin Cell, out *CellList) (Color, int) {
	bub := b.Get(origin)
	if c, ok := bub.Color(); ok {
		var visited CellSet
		return c, b.Traverse(origin, colorPredicate(c), &visited, out)
	}
	if !bub.MatchesAny() {
		return 0, 0
	}

	var (
		best      CellList
		bestColor Color
		bestN     int
		tried     ColorMask
	)
	for _, d := range hex.Directions {
		n, ok := b.Neighbor(origin, d)
		if !ok {
			continue
		}
		c, ok := b.Get(n).Color()
		if !ok || tried.Has(c) {
			continue
		}
		tried |= c.Bit()

		var visited CellSet
		var cand CellList
		if size := b.Traverse(origin, colorPredicate(c), &visited, &cand); size > bestN {
			best, bestColor, bestN = cand, c, size
		}
	}
	for _, c := range best.Cells() {
		out.Append(c)
	}
	return bestColor, bestN
}

// FindOrphans appends to out every occupied, non-frozen cell that has no
// path to the ceiling row or an anchor-flagged bubble. Returns the count.
func (b *Board) FindOrphans(out *CellList) int {
	var anchored CellSet
	var queue CellList

	// Seed from every ceiling cell and anchor.
	for row := 0; row < b.rows; row++ {
		for col := 0; col < b.Cols(row); col++ {
			c := Cell{Row: row, Col: col}
			bub := b.cells[row][col]
			if row != 0 && !bub.Has(FlagAnchor) {
				continue
			}
			b.Traverse(c, solidPredicate, &anchored, &queue)
		}
	}

	n := 0
	b.each(func(c Cell, bub Bubble) {
		if bub.IsEmpty() || bub.Has(FlagFrozen) || anchored.Has(c) {
			return
		}
		out.Append(c)
		n++
	})
	return n
}

// Area appends to out every occupied non-blocker cell within hex distance
// radius of center, center included.
func (b *Board) Area(center Cell, radius int, out *CellList) int {
	origin := b.Hex(center).ToAxial().Cube()
	n := 0
	b.each(func(c Cell, bub Bubble) {
		if bub.IsEmpty() || bub.Kind() == KindBlocker {
			return
		}
		if hex.Distance(origin, b.Hex(c).ToAxial().Cube()) <= radius {
			out.Append(c)
			n++
		}
	})
	return n
}

// RowCells appends every occupied non-blocker cell in row to out.
func (b *Board) RowCells(row int, out *CellList) int {
	n := 0
	if row < 0 || row >= b.rows {
		return 0
	}
	for col := 0; col < b.Cols(row); col++ {
		bub := b.cells[row][col]
		if bub.IsEmpty() || bub.Kind() == KindBlocker {
			continue
		}
		out.Append(Cell{Row: row, Col: col})
		n++
	}
	return n
}

// ColorCells appends every colored bubble of color c to out.
func (b *Board) ColorCells(c Color, out *CellList) int {
	n := 0
	b.each(func(cell Cell, bub Bubble) {
		if col, ok := bub.Color(); ok && col == c {
			out.Append(cell)
			n++
		}
	})
	return n
}
