package shot

import (
	"github.com/vovakirdan/hexpop/internal/board"
	"github.com/vovakirdan/hexpop/internal/fixed"
)

// Hit is the nearest obstacle along a ray.
type Hit struct {
	Type CollisionType
	T    fixed.Fixed // distance along the ray
	Cell board.Cell
}

// Nearest returns the closest obstacle hit by a ray from pos along the unit
// direction dir. Bubbles are tested first and later candidates must be
// strictly closer, so ties resolve bubble, wall, ceiling, floor.
func Nearest(b *board.Board, a Arena, pos, dir fixed.Vec, floor bool) Hit {
	best := Hit{Type: None, T: fixed.Max, Cell: board.InvalidCell}
	diam := a.Radius.MulInt(2)
	diamSq := diam.Mul(diam)

	for row := 0; row < b.Rows(); row++ {
		for col := 0; col < b.Cols(row); col++ {
			c := board.Cell{Row: row, Col: col}
			if !b.Get(c).Solid() {
				continue
			}
			t, ok := rayCircle(pos, dir, b.Center(c, a.Radius), diamSq)
			if ok && t < best.T {
				best = Hit{Type: Bubble, T: t, Cell: c}
			}
		}
	}

	if dir.X < 0 {
		if t := clampT((a.Left + a.Radius - pos.X).Div(dir.X)); t < best.T {
			best = Hit{Type: Wall, T: t, Cell: board.InvalidCell}
		}
	} else if dir.X > 0 {
		if t := clampT((a.Right - a.Radius - pos.X).Div(dir.X)); t < best.T {
			best = Hit{Type: Wall, T: t, Cell: board.InvalidCell}
		}
	}

	if dir.Y < 0 {
		if t := clampT((a.Ceiling + a.Radius - pos.Y).Div(dir.Y)); t < best.T {
			best = Hit{Type: Ceiling, T: t, Cell: board.InvalidCell}
		}
	} else if floor && dir.Y > 0 {
		if t := clampT((a.Floor - pos.Y).Div(dir.Y)); t < best.T {
			best = Hit{Type: Floor, T: t, Cell: board.InvalidCell}
		}
	}
	return best
}

// rayCircle intersects a ray with a circle of squared radius rSq using the
// half-b quadratic form and returns the smallest non-negative root. A ray
// starting inside the circle hits at t=0.
func rayCircle(pos, dir, center fixed.Vec, rSq fixed.Fixed) (fixed.Fixed, bool) {
	m := pos.Sub(center)
	hb := m.Dot(dir)
	c := m.LenSq() - rSq
	if c > 0 && hb > 0 {
		return 0, false
	}
	disc := hb.Mul(hb) - c
	if disc < 0 {
		return 0, false
	}
	return clampT(-hb - disc.Sqrt()), true
}

func clampT(t fixed.Fixed) fixed.Fixed {
	if t < 0 {
		return 0
	}
	return t
}
