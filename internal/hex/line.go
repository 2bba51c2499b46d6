package hex

import "github.com/vovakirdan/hexpop/internal/fixed"

// Line appends to dst the cells on the straight line from a to b inclusive,
// sampling Distance(a, b)+1 points. Endpoints are nudged off cell edges so
// rounding never lands on an exact tie.
func Line(dst []Cube, a, b Cube) []Cube {
	n := Distance(a, b)
	if n == 0 {
		return append(dst, a)
	}

	eps := fixed.Epsilon
	aq, ar, as := fixed.FromInt(a.Q)+eps, fixed.FromInt(a.R)+2*eps, fixed.FromInt(a.S)-3*eps
	bq, br, bs := fixed.FromInt(b.Q)+eps, fixed.FromInt(b.R)+2*eps, fixed.FromInt(b.S)-3*eps

	for i := 0; i <= n; i++ {
		t := fixed.FromRatio(i, n)
		dst = append(dst, Round(FracCube{
			Q: lerp(aq, bq, t),
			R: lerp(ar, br, t),
			S: lerp(as, bs, t),
		}))
	}
	return dst
}

func lerp(a, b, t fixed.Fixed) fixed.Fixed {
	return a + (b - a).Mul(t)
}
