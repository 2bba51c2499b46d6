// Package rng provides the deterministic seeded random stream used by game
// sessions. It is the only source of randomness in the simulation path.
package rng

import (
	"encoding/binary"
	"hash/fnv"

	"github.com/vovakirdan/hexpop/internal/board"
)

// LCG is a deterministic pseudo-random number generator.
// Uses a 64-bit LCG with an xor-shift output mix.
type LCG struct {
	state uint64
}

// New creates a stream with the given seed. Seed 0 is mapped to 1.
func New(seed int64) *LCG {
	s := uint64(seed) //#nosec G115 -- intentional conversion for RNG seeding
	if s == 0 {
		s = 1
	}
	return &LCG{state: s}
}

// Next generates the next random uint64.
func (r *LCG) Next() uint64 {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	x := r.state
	return x ^ (x >> 33)
}

// Range returns a random int in [0, n). Returns 0 when n <= 0.
func (r *LCG) Range(n int) int {
	if n <= 0 {
		return 0
	}
	return int((r.Next() >> 11) % uint64(n)) //#nosec G115 -- n is always positive
}

// PickColor returns a uniformly chosen color from mask.
func (r *LCG) PickColor(mask board.ColorMask) (board.Color, bool) {
	n := mask.Count()
	if n == 0 {
		return 0, false
	}
	k := r.Range(n)
	for c := board.Color(0); c < board.NumColors; c++ {
		if !mask.Has(c) {
			continue
		}
		if k == 0 {
			return c, true
		}
		k--
	}
	return 0, false
}

// WeightedColor picks a color from mask with probability proportional to
// weights. When every masked weight is zero it falls back to PickColor.
func (r *LCG) WeightedColor(mask board.ColorMask, weights [board.NumColors]int) (board.Color, bool) {
	total := 0
	for c := board.Color(0); c < board.NumColors; c++ {
		if mask.Has(c) && weights[c] > 0 {
			total += weights[c]
		}
	}
	if total == 0 {
		return r.PickColor(mask)
	}

	roll := r.Range(total)
	cumulative := 0
	for c := board.Color(0); c < board.NumColors; c++ {
		if !mask.Has(c) || weights[c] <= 0 {
			continue
		}
		cumulative += weights[c]
		if roll < cumulative {
			return c, true
		}
	}
	return 0, false
}

// Checksum fingerprints the generator state.
func (r *LCG) Checksum() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], r.state)
	h.Write(buf[:])
	return h.Sum64()
}
