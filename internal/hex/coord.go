// Package hex provides pointy-top hexagonal grid coordinates.
// Offset coordinates use the "odd-r" scheme: odd rows are shoved right by
// half a cell. Axial and cube forms are exact for integer coordinates.
package hex

import "github.com/vovakirdan/hexpop/internal/fixed"

// Offset addresses a cell by row and column.
type Offset struct {
	Row int
	Col int
}

// Axial addresses a cell by (q, r). The cube s is derived as -q-r.
type Axial struct {
	Q int
	R int
}

// Cube addresses a cell by (q, r, s) with q+r+s == 0.
type Cube struct {
	Q, R, S int
}

// S returns the implicit third cube coordinate.
func (a Axial) S() int {
	return -a.Q - a.R
}

// Cube converts to cube coordinates.
func (a Axial) Cube() Cube {
	return Cube{Q: a.Q, R: a.R, S: -a.Q - a.R}
}

// Axial drops the derived s coordinate.
func (c Cube) Axial() Axial {
	return Axial{Q: c.Q, R: c.R}
}

// Valid reports whether the cube invariant holds.
func (c Cube) Valid() bool {
	return c.Q+c.R+c.S == 0
}

// Add returns the component-wise sum.
func (c Cube) Add(o Cube) Cube {
	return Cube{c.Q + o.Q, c.R + o.R, c.S + o.S}
}

// ToAxial converts odd-r offset coordinates to axial.
func (o Offset) ToAxial() Axial {
	return Axial{
		Q: o.Col - (o.Row-(o.Row&1))/2,
		R: o.Row,
	}
}

// ToOffset converts axial coordinates to odd-r offset.
func (a Axial) ToOffset() Offset {
	return Offset{
		Row: a.R,
		Col: a.Q + (a.R-(a.R&1))/2,
	}
}

// Direction is one of the six canonical neighbor directions.
type Direction int

const (
	East Direction = iota
	NorthEast
	NorthWest
	West
	SouthWest
	SouthEast
)

// Directions lists the six directions in canonical order.
var Directions = [6]Direction{East, NorthEast, NorthWest, West, SouthWest, SouthEast}

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case East:
		return "E"
	case NorthEast:
		return "NE"
	case NorthWest:
		return "NW"
	case West:
		return "W"
	case SouthWest:
		return "SW"
	case SouthEast:
		return "SE"
	default:
		return "?"
	}
}

// cubeDirections is indexed by Direction.
var cubeDirections = [6]Cube{
	{Q: 1, R: 0, S: -1},
	{Q: 1, R: -1, S: 0},
	{Q: 0, R: -1, S: 1},
	{Q: -1, R: 0, S: 1},
	{Q: -1, R: 1, S: 0},
	{Q: 0, R: 1, S: -1},
}

// offsetDeltas[parity][dir] holds {dRow, dCol}.
var offsetDeltas = [2][6][2]int{
	{{0, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}, {1, 0}},
	{{0, 1}, {-1, 1}, {-1, 0}, {0, -1}, {1, 0}, {1, 1}},
}

// unitDirections are the pixel-space unit vectors of each direction
// (+Y down).
var unitDirections = [6]fixed.Vec{
	{X: fixed.One, Y: 0},
	{X: fixed.Half, Y: -fixed.Sqrt3 / 2},
	{X: -fixed.Half, Y: -fixed.Sqrt3 / 2},
	{X: -fixed.One, Y: 0},
	{X: -fixed.Half, Y: fixed.Sqrt3 / 2},
	{X: fixed.Half, Y: fixed.Sqrt3 / 2},
}

// Cube returns the cube delta for the direction.
func (d Direction) Cube() Cube {
	return cubeDirections[d]
}

// Unit returns the pixel-space unit vector pointing from a cell toward its
// neighbor in this direction.
func (d Direction) Unit() fixed.Vec {
	return unitDirections[d]
}

// Neighbor returns the adjacent cube in direction d.
func (c Cube) Neighbor(d Direction) Cube {
	return c.Add(cubeDirections[d])
}

// Neighbor returns the adjacent axial coordinate in direction d.
func (a Axial) Neighbor(d Direction) Axial {
	dc := cubeDirections[d]
	return Axial{Q: a.Q + dc.Q, R: a.R + dc.R}
}

// Neighbor returns the adjacent offset coordinate in direction d using the
// parity-selected delta table.
func (o Offset) Neighbor(d Direction) Offset {
	delta := offsetDeltas[o.Row&1][d]
	return Offset{Row: o.Row + delta[0], Col: o.Col + delta[1]}
}

// Neighbors returns all six offset neighbors in canonical order.
func (o Offset) Neighbors() [6]Offset {
	var out [6]Offset
	for i, d := range Directions {
		out[i] = o.Neighbor(d)
	}
	return out
}

// Distance returns the hex distance between two cube coordinates.
func Distance(a, b Cube) int {
	return (abs(a.Q-b.Q) + abs(a.R-b.R) + abs(a.S-b.S)) / 2
}

// OffsetDistance returns the hex distance between two offset coordinates.
func OffsetDistance(a, b Offset) int {
	return Distance(a.ToAxial().Cube(), b.ToAxial().Cube())
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
