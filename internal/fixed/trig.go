package fixed

// cordicK is the CORDIC gain correction prod(cos(atan(2^-i))) for 32 steps.
const cordicK Fixed = 2608131496

// atanTable holds atan(2^-i) for i in [0, 32).
var atanTable = [32]Fixed{
	3373259426, 1991351318, 1052175346, 534100635,
	268086748, 134174063, 67103403, 33553749,
	16777131, 8388597, 4194303, 2097152,
	1048576, 524288, 262144, 131072,
	65536, 32768, 16384, 8192,
	4096, 2048, 1024, 512,
	256, 128, 64, 32,
	16, 8, 4, 2,
}

// SinCos returns sin(a) and cos(a) for an angle in radians.
// Rotation-mode CORDIC: integer shifts and adds only.
func SinCos(a Fixed) (sin, cos Fixed) {
	a %= TwoPi
	if a > Pi {
		a -= TwoPi
	} else if a < -Pi {
		a += TwoPi
	}

	// CORDIC converges on [-pi/2, pi/2]; fold the rest with a half turn.
	flip := false
	if a > HalfPi {
		a -= Pi
		flip = true
	} else if a < -HalfPi {
		a += Pi
		flip = true
	}

	x, y, z := cordicK, Fixed(0), a
	for i := 0; i < len(atanTable); i++ {
		dx, dy := y>>i, x>>i
		if z >= 0 {
			x, y, z = x-dx, y+dy, z-atanTable[i]
		} else {
			x, y, z = x+dx, y-dy, z+atanTable[i]
		}
	}

	if flip {
		return -y, -x
	}
	return y, x
}

// Sin returns sin(a).
func Sin(a Fixed) Fixed {
	s, _ := SinCos(a)
	return s
}

// Cos returns cos(a).
func Cos(a Fixed) Fixed {
	_, c := SinCos(a)
	return c
}

// FromDegrees converts whole degrees to radians.
func FromDegrees(deg int) Fixed {
	return Pi.MulInt(deg).DivInt(180)
}
