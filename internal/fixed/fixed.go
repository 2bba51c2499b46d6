// Package fixed implements the Q32.32 fixed-point arithmetic used by every
// simulation package. All operations are pure integer math so results are
// bit-identical across architectures and compilers.
package fixed

import (
	"math"
	"math/bits"
)

// Q32.32 layout.
const (
	Shift = 32
	Scale = 1 << Shift
	Mask  = Scale - 1
)

// Fixed is a signed Q32.32 fixed-point number.
type Fixed int64

// Common values.
const (
	Zero Fixed = 0
	One  Fixed = Scale
	Half Fixed = Scale / 2

	// Epsilon is roughly 1e-6 and is used for nudges and loop termination.
	Epsilon Fixed = 4295

	Pi     Fixed = 13493037705
	HalfPi Fixed = 6746518852
	TwoPi  Fixed = 2 * Pi
	Sqrt3  Fixed = 7439101574

	Max Fixed = math.MaxInt64
	Min Fixed = math.MinInt64
)

// FromInt converts an integer to fixed-point.
func FromInt(i int) Fixed {
	return Fixed(int64(i) << Shift)
}

// FromRatio returns num/den as fixed-point.
func FromRatio(num, den int) Fixed {
	return FromInt(num).Div(FromInt(den))
}

// FromFloat converts a float. Only for tooling and tests; the simulation
// path never produces floats.
func FromFloat(f float64) Fixed {
	return Fixed(math.Round(f * Scale))
}

// Float converts to float64 for display.
func (f Fixed) Float() float64 {
	return float64(f) / Scale
}

// Int truncates toward negative infinity.
func (f Fixed) Int() int {
	return int(int64(f) >> Shift)
}

// Floor rounds down to an integral value.
func (f Fixed) Floor() Fixed {
	return f &^ Mask
}

// Round rounds half up: floor(f + 0.5).
func (f Fixed) Round() Fixed {
	return (f + Half).Floor()
}

// Add adds two values.
func (f Fixed) Add(o Fixed) Fixed { return f + o }

// Sub subtracts o.
func (f Fixed) Sub(o Fixed) Fixed { return f - o }

// Neg negates.
func (f Fixed) Neg() Fixed { return -f }

// Abs returns the absolute value.
func (f Fixed) Abs() Fixed {
	if f < 0 {
		return -f
	}
	return f
}

// Sign returns -1, 0, or 1.
func (f Fixed) Sign() int {
	if f < 0 {
		return -1
	}
	if f > 0 {
		return 1
	}
	return 0
}

// MulInt multiplies by an integer.
func (f Fixed) MulInt(n int) Fixed {
	return f * Fixed(n)
}

// DivInt divides by an integer, truncating toward zero.
func (f Fixed) DivInt(n int) Fixed {
	if n == 0 {
		return 0
	}
	return f / Fixed(n)
}

// Mul multiplies two fixed-point values using a 128-bit intermediate.
func (f Fixed) Mul(o Fixed) Fixed {
	if f == 0 || o == 0 {
		return 0
	}
	negative := (f < 0) != (o < 0)
	ua, ub := uabs(f), uabs(o)

	hi, lo := bits.Mul64(ua, ub)
	result := Fixed((hi << 32) | (lo >> 32))
	if negative {
		return -result
	}
	return result
}

// Div divides f by o. Division by zero returns 0; results that do not fit
// saturate to Max or Min.
func (f Fixed) Div(o Fixed) Fixed {
	if o == 0 {
		return 0
	}
	negative := (f < 0) != (o < 0)
	ua, ub := uabs(f), uabs(o)

	hi := ua >> 32
	lo := ua << 32
	if hi >= ub {
		if negative {
			return Min
		}
		return Max
	}

	quo, _ := bits.Div64(hi, lo, ub)
	if quo > math.MaxInt64 {
		if negative {
			return Min
		}
		return Max
	}
	if negative {
		return -Fixed(quo)
	}
	return Fixed(quo)
}

// Sqrt returns the square root. Negative inputs return 0.
func (f Fixed) Sqrt() Fixed {
	if f <= 0 {
		return 0
	}
	// sqrt(raw * 2^32) over the 128-bit value hi:lo.
	raw := uint64(f)
	hi, lo := raw>>32, raw<<32

	n := bits.Len64(lo)
	if hi != 0 {
		n = 64 + bits.Len64(hi)
	}
	x := uint64(1) << ((n + 1) / 2)
	for {
		q, _ := bits.Div64(hi, lo, x)
		y := (x + q) >> 1
		if y >= x {
			return Fixed(x)
		}
		x = y
	}
}

// Minf returns the smaller value.
func Minf(a, b Fixed) Fixed {
	if a < b {
		return a
	}
	return b
}

// Maxf returns the larger value.
func Maxf(a, b Fixed) Fixed {
	if a > b {
		return a
	}
	return b
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi Fixed) Fixed {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func uabs(f Fixed) uint64 {
	if f < 0 {
		return uint64(-f)
	}
	return uint64(f)
}
