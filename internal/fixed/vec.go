package fixed

// Vec is a 2D vector in fixed-point. Screen convention: +Y points down.
type Vec struct {
	X, Y Fixed
}

// V builds a vector.
func V(x, y Fixed) Vec { return Vec{X: x, Y: y} }

// Up is the canonical fallback direction for degenerate vectors.
var Up = Vec{X: 0, Y: -One}

// Add returns v+o.
func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }

// Sub returns v-o.
func (v Vec) Sub(o Vec) Vec { return Vec{v.X - o.X, v.Y - o.Y} }

// Neg returns -v.
func (v Vec) Neg() Vec { return Vec{-v.X, -v.Y} }

// Scale multiplies both components by s.
func (v Vec) Scale(s Fixed) Vec {
	return Vec{v.X.Mul(s), v.Y.Mul(s)}
}

// Dot returns the dot product.
func (v Vec) Dot(o Vec) Fixed {
	return v.X.Mul(o.X) + v.Y.Mul(o.Y)
}

// LenSq returns the squared length.
func (v Vec) LenSq() Fixed {
	return v.Dot(v)
}

// Len returns the length.
func (v Vec) Len() Fixed {
	return v.LenSq().Sqrt()
}

// DistSq returns the squared distance to o.
func (v Vec) DistSq(o Vec) Fixed {
	return v.Sub(o).LenSq()
}

// Normalize returns the unit vector in v's direction. Vectors shorter than
// Epsilon normalize to Up.
func (v Vec) Normalize() Vec {
	l := v.Len()
	if l <= Epsilon {
		return Up
	}
	return Vec{v.X.Div(l), v.Y.Div(l)}
}

// ReflectX negates the horizontal component (vertical wall).
func (v Vec) ReflectX() Vec { return Vec{-v.X, v.Y} }

// ReflectY negates the vertical component (horizontal wall).
func (v Vec) ReflectY() Vec { return Vec{v.X, -v.Y} }

// FromAngle returns (cos a, -sin a) * speed: angle 0 points right and pi/2
// points straight up the screen.
func FromAngle(a, speed Fixed) Vec {
	s, c := SinCos(a)
	return Vec{c.Mul(speed), -s.Mul(speed)}
}
