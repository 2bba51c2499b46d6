package headless

import (
	"github.com/vovakirdan/hexpop/internal/board"
	"github.com/vovakirdan/hexpop/internal/fixed"
	"github.com/vovakirdan/hexpop/internal/game"
	"github.com/vovakirdan/hexpop/internal/trajectory"
)

// Playfields are drawn at one text row per board row and one character
// per bubble radius, so neighboring bubbles sit two characters apart and
// odd rows land between them. The launcher row and the floor line follow
// the last board row.

// projector maps arena pixels to canvas cells.
type projector struct {
	radius fixed.Fixed
	rowH   fixed.Fixed
}

func newProjector(g *game.Game) projector {
	r := g.Arena().Radius
	return projector{radius: r, rowH: r.Mul(fixed.Sqrt3)}
}

func (p projector) point(v fixed.Vec) (int, int) {
	x := v.X.Div(p.radius).Round().Int()
	y := (v.Y - p.radius).Div(p.rowH).Round().Int()
	return x, y
}

// NewPlayfield returns a canvas sized for g's arena.
func NewPlayfield(g *game.Game) *Canvas {
	right, _ := newProjector(g).point(fixed.Vec{X: g.Arena().Right})
	return NewCanvas(right+1, g.Board().Rows()+2)
}

// tintOf picks the tint for a bubble.
func tintOf(b board.Bubble) Tint {
	switch b.Kind() {
	case board.KindColored:
		c, _ := b.Color()
		return TintRed + Tint(c)
	case board.KindBlocker:
		return TintBlocker
	case board.KindEmpty:
		return TintDefault
	}
	return TintSpecial
}

// DrawBoard draws walls, floor, every bubble and the loaded bubble on the
// launcher.
func DrawBoard(c *Canvas, g *game.Game) {
	b, a := g.Board(), g.Arena()
	pr := newProjector(g)
	right, _ := pr.point(fixed.Vec{X: a.Right})

	c.DrawVLine(0, 0, b.Rows()+1, '|', TintWall)
	c.DrawVLine(right, 0, b.Rows()+1, '|', TintWall)
	c.DrawHLine(0, b.Rows()+1, right+1, '-', TintWall)

	for row := 0; row < b.Rows(); row++ {
		for col := 0; col < b.Cols(row); col++ {
			cell := board.Cell{Row: row, Col: col}
			bub := b.Get(cell)
			if bub.IsEmpty() {
				continue
			}
			x, y := pr.point(b.Center(cell, a.Radius))
			c.Set(x, y, rune(bub.Glyph()), tintOf(bub))
		}
	}

	x, y := pr.point(a.Launcher())
	c.Set(x, y, rune(g.Current().Glyph()), tintOf(g.Current()))
}

// DrawPath traces a preview path over empty canvas cells and marks the
// landing cell.
func DrawPath(c *Canvas, g *game.Game, p trajectory.Path) {
	pr := newProjector(g)
	for _, seg := range p.Legs() {
		x0, y0 := pr.point(seg.Start)
		x1, y1 := pr.point(seg.End)
		steps := 2 * max(abs(x1-x0), abs(y1-y0))
		if steps == 0 {
			steps = 1
		}
		delta := seg.End.Sub(seg.Start)
		for i := 0; i <= steps; i++ {
			x, y := pr.point(seg.Start.Add(delta.Scale(fixed.FromRatio(i, steps))))
			if c.Get(x, y).Rune == ' ' {
				c.Set(x, y, '.', TintPath)
			}
		}
	}
	if p.Landing.Valid() {
		x, y := pr.point(g.Board().Center(p.Landing, g.Arena().Radius))
		c.Set(x, y, 'o', TintLanding)
	}
}

// Snapshot draws g, and path when non-nil, and renders the result.
func Snapshot(g *game.Game, path *trajectory.Path, color bool) string {
	c := NewPlayfield(g)
	DrawBoard(c, g)
	if path != nil {
		DrawPath(c, g, *path)
	}
	return Render(c, color)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
