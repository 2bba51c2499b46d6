package game

import (
	"fmt"

	"github.com/vovakirdan/hexpop/internal/board"
	"github.com/vovakirdan/hexpop/internal/core"
	"github.com/vovakirdan/hexpop/internal/hex"
	"github.com/vovakirdan/hexpop/internal/shot"
)

// resolve handles a terminal collision: placement, matches, orphans, win
// and loss checks, the next bubble, and row pressure.
func (g *Game) resolve(res shot.Collision) {
	bub := g.shot.Bubble
	approach := g.shot.Vel
	g.shot.Reset()

	if res.Type == shot.Floor {
		g.lose(LoseFloor)
		return
	}

	cell := shot.Resolve(g.board, g.arena.Radius, res.Cell, approach, res.Point)
	if !cell.Valid() {
		g.lose(LoseUnplaceable)
		return
	}
	if s, _, ok := bub.Special(); ok && s == board.Magnet {
		bub = bub.With(board.FlagAnchor)
	}
	_ = g.board.Set(cell, bub)
	g.emit(EventBubblePlaced, []board.Cell{cell}, int32(bub.Glyph()))

	popped := g.resolveMatch(cell, bub, res.Cell)
	dropped := g.resolveOrphans()
	if g.rules.Garbage {
		g.garbage += max(0, popped-2) + dropped
	}

	if g.board.IsEmpty() {
		g.phase = PhaseWon
		g.emit(EventLevelClear, nil, int32(g.score))
		return
	}
	if g.board.Occupied(cell) && cell.Row >= g.board.Rows()-2 {
		g.lose(LosePlacement)
		return
	}
	if popped+dropped > 0 && g.rules.SettleFrames > 0 {
		g.phase = PhaseAnimating
		g.settle = g.rules.SettleFrames
	}

	g.current, g.next = g.next, g.draw()

	if g.rules.ShotsPerRowInsert > 0 {
		g.shotsUntilRow--
		if g.shotsUntilRow <= 0 {
			g.shotsUntilRow = g.rules.ShotsPerRowInsert
			if g.insertRows(1) && g.rules.LoseOn.Overflow {
				g.lose(LoseOverflow)
			}
		}
	}
}

// resolveMatch pops the match or special effect started by the bubble at
// cell and returns the number removed. A miss resets the combo.
func (g *Game) resolveMatch(cell board.Cell, bub board.Bubble, struck board.Cell) int {
	var cells board.CellList
	if s, _, ok := bub.Special(); ok && s != board.Rainbow && s != board.Magnet {
		g.collectSpecial(s, cell, struck, &cells)
	} else if _, n := g.board.FindMatch(cell, &cells); n < g.rules.MatchThreshold {
		cells.Reset()
	}

	if cells.Len() == 0 {
		g.combo = 0
		return 0
	}

	removed := g.board.Remove(cells.Cells())
	g.combo = min(g.combo+1, MaxCombo)
	delta := g.tiered(removed, MatchBase) * int64(g.combo)
	g.score += delta
	g.emit(EventBubblesPopped, cells.Cells(), int32(delta))
	return removed
}

// collectSpecial gathers the cells a special bubble destroys. The special
// itself is always included.
func (g *Game) collectSpecial(s board.Special, cell, struck board.Cell, out *board.CellList) {
	switch s {
	case board.Bomb:
		g.board.Area(cell, 1, out)
	case board.Lightning:
		g.board.RowCells(cell.Row, out)
	case board.Star:
		out.Append(cell)
		if c, ok := g.starColor(cell, struck); ok {
			g.board.ColorCells(c, out)
		}
	}
}

// starColor is the color of the struck bubble, or of the first colored
// neighbor when the star did not hit a colored bubble.
func (g *Game) starColor(cell, struck board.Cell) (board.Color, bool) {
	if c, ok := g.board.Get(struck).Color(); ok {
		return c, true
	}
	for _, d := range hex.Directions {
		if n, ok := g.board.Neighbor(cell, d); ok {
			if c, ok := g.board.Get(n).Color(); ok {
				return c, true
			}
		}
	}
	return 0, false
}

// resolveOrphans drops every bubble cut off from the ceiling.
func (g *Game) resolveOrphans() int {
	var cells board.CellList
	if g.board.FindOrphans(&cells) == 0 {
		return 0
	}
	removed := g.board.Remove(cells.Cells())
	delta := g.tiered(removed, OrphanBase)
	if g.combo > 0 {
		delta *= int64(g.combo)
	}
	g.score += delta
	g.emit(EventBubblesDropped, cells.Cells(), int32(delta))
	return removed
}

// tiered scores n bubbles at base points each, raised one tier every
// TierDivisor bubbles of the session.
func (g *Game) tiered(n, base int) int64 {
	var total int64
	for i := 0; i < n; i++ {
		total += int64(base * (g.quantifier/TierDivisor + 1))
		g.quantifier++
	}
	return total
}

// insertRows pushes n random rows in from the top and reports whether any
// bubble was pushed off the bottom.
func (g *Game) insertRows(n int) bool {
	overflow := false
	for i := 0; i < n; i++ {
		if g.board.InsertRow(g.fillCell) {
			overflow = true
		}
		var cells board.CellList
		g.board.RowCells(0, &cells)
		g.emit(EventRowInserted, cells.Cells(), 1)
	}
	return overflow
}

// ReceiveGarbage inserts ceil(n / cols_even) rows of garbage. Overflow
// loses the game when the ruleset says so.
func (g *Game) ReceiveGarbage(n int) error {
	if n <= 0 {
		return fmt.Errorf("game: garbage %d: %w", n, core.ErrInvalidArgument)
	}
	if g.phase.Over() {
		return fmt.Errorf("game: garbage during %s: %w", g.phase, core.ErrInvalidState)
	}
	cols := g.rules.ColsEven
	rows := (n + cols - 1) / cols

	g.emit(EventGarbageReceived, nil, int32(n))
	if g.insertRows(rows) && g.rules.LoseOn.Overflow {
		g.lose(LoseOverflow)
	}
	return nil
}

func (g *Game) lose(r LoseReason) {
	g.phase = PhaseLost
	g.reason = r
	g.emit(EventGameOver, nil, int32(r))
}
