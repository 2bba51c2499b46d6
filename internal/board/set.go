package board

import "math/bits"

const setWords = (MaxCells + 63) / 64

// CellSet is a bitset over every possible cell index.
type CellSet struct {
	words [setWords]uint64
}

// Add inserts c.
func (s *CellSet) Add(c Cell) {
	i := c.Index()
	s.words[i/64] |= 1 << (i % 64)
}

// Has reports whether c is in the set.
func (s *CellSet) Has(c Cell) bool {
	i := c.Index()
	return s.words[i/64]&(1<<(i%64)) != 0
}

// Remove deletes c.
func (s *CellSet) Remove(c Cell) {
	i := c.Index()
	s.words[i/64] &^= 1 << (i % 64)
}

// Len returns the number of members.
func (s *CellSet) Len() int {
	n := 0
	for _, w := range s.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// Reset empties the set.
func (s *CellSet) Reset() {
	s.words = [setWords]uint64{}
}

// CellList is a fixed-capacity ordered list of cells.
type CellList struct {
	cells [MaxCells]Cell
	n     int
}

// Append adds c. Appends beyond capacity are dropped.
func (l *CellList) Append(c Cell) {
	if l.n < MaxCells {
		l.cells[l.n] = c
		l.n++
	}
}

// Len returns the number of cells.
func (l *CellList) Len() int { return l.n }

// At returns the i-th cell.
func (l *CellList) At(i int) Cell { return l.cells[i] }

// Cells returns the populated prefix. The slice aliases the list.
func (l *CellList) Cells() []Cell { return l.cells[:l.n] }

// Reset empties the list.
func (l *CellList) Reset() { l.n = 0 }

// Contains reports whether c is in the list.
func (l *CellList) Contains(c Cell) bool {
	for _, x := range l.cells[:l.n] {
		if x == c {
			return true
		}
	}
	return false
}
