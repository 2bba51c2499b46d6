package hex

import "github.com/vovakirdan/hexpop/internal/fixed"

// FracCube is a fractional cube coordinate produced by pixel conversion.
type FracCube struct {
	Q, R, S fixed.Fixed
}

// Round snaps a fractional cube to the containing cell. Each component is
// rounded independently, then the axis with the largest rounding error is
// recomputed from the other two. On equal errors q yields to r, and r to s.
func Round(f FracCube) Cube {
	q, r, s := f.Q.Round(), f.R.Round(), f.S.Round()
	dq := (q - f.Q).Abs()
	dr := (r - f.R).Abs()
	ds := (s - f.S).Abs()

	switch {
	case dq > dr && dq > ds:
		q = -r - s
	case dr > ds:
		r = -q - s
	default:
		s = -q - r
	}
	return Cube{Q: q.Int(), R: r.Int(), S: s.Int()}
}

// Layout maps offset cells to pixel centers. Radius is the bubble radius
// (the hex inradius); rows are packed Sqrt3*Radius apart.
type Layout struct {
	Radius fixed.Fixed
	Origin fixed.Vec
}

// NewLayout returns a layout with the first cell's top-left at origin.
func NewLayout(radius fixed.Fixed, origin fixed.Vec) Layout {
	return Layout{Radius: radius, Origin: origin}
}

// RowHeight is the vertical distance between adjacent row centers.
func (l Layout) RowHeight() fixed.Fixed {
	return fixed.Sqrt3.Mul(l.Radius)
}

// ToPixel returns the center of the cell.
func (l Layout) ToPixel(o Offset) fixed.Vec {
	x := l.Radius + l.Radius.MulInt(2*o.Col)
	if o.Row&1 == 1 {
		x += l.Radius
	}
	y := l.Radius + l.RowHeight().MulInt(o.Row)
	return fixed.Vec{X: l.Origin.X + x, Y: l.Origin.Y + y}
}

// FracAt returns the fractional cube coordinate under a pixel.
func (l Layout) FracAt(p fixed.Vec) FracCube {
	x := p.X - l.Origin.X - l.Radius
	y := p.Y - l.Origin.Y - l.Radius

	r := y.Div(l.RowHeight())
	q := x.Div(l.Radius.MulInt(2)) - r/2
	return FracCube{Q: q, R: r, S: -q - r}
}

// FromPixel returns the cell containing the pixel.
func (l Layout) FromPixel(p fixed.Vec) Offset {
	return Round(l.FracAt(p)).Axial().ToOffset()
}
