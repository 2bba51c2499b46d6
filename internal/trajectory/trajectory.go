// Package trajectory predicts where a shot would travel and land without
// touching board or shot state. It is the aim-assist preview.
package trajectory

import (
	"github.com/vovakirdan/hexpop/internal/board"
	"github.com/vovakirdan/hexpop/internal/fixed"
	"github.com/vovakirdan/hexpop/internal/shot"
)

// MaxSegments bounds the number of chained segments in a path.
const MaxSegments = 8

// Segment is one straight leg of the predicted path.
type Segment struct {
	Start, End fixed.Vec
	Hit        shot.CollisionType // what ended the segment
}

// Path is a predicted shot: up to MaxSegments legs and the resolved landing
// cell.
type Path struct {
	Segments [MaxSegments]Segment
	N        int
	Landing  board.Cell
	Struck   board.Cell // bubble hit by the final leg, InvalidCell otherwise
	Forced   bool       // bounce budget ran out on a wall
}

// Legs returns the populated segments. The slice aliases the path.
func (p *Path) Legs() []Segment {
	return p.Segments[:p.N]
}

// AppendPoints appends the path's polyline vertices to dst.
func (p *Path) AppendPoints(dst []fixed.Vec) []fixed.Vec {
	if p.N == 0 {
		return dst
	}
	dst = append(dst, p.Segments[0].Start)
	for _, s := range p.Legs() {
		dst = append(dst, s.End)
	}
	return dst
}

// Terminal returns what ended the path.
func (p *Path) Terminal() shot.CollisionType {
	if p.N == 0 {
		return shot.None
	}
	return p.Segments[p.N-1].Hit
}

// Compute traces a shot fired from origin at angle with the given speed.
// The floor is ignored. Bubble and ceiling hits end the path, walls reflect
// until the bounce budget is spent. Landing resolution uses the same snap
// rules as a real shot so preview and placement agree.
func Compute(b *board.Board, a shot.Arena, origin fixed.Vec, angle, speed fixed.Fixed, maxBounces int) Path {
	p := Path{Landing: board.InvalidCell, Struck: board.InvalidCell}
	dir := fixed.FromAngle(angle, speed).Normalize()
	pos := origin
	bounces := 0

	for p.N < MaxSegments {
		h := shot.Nearest(b, a, pos, dir, false)
		if h.Type == shot.None {
			break
		}
		end := pos.Add(dir.Scale(h.T))
		seg := Segment{Start: pos, End: end, Hit: h.Type}

		if h.Type == shot.Wall && bounces < maxBounces {
			p.Segments[p.N] = seg
			p.N++
			dir = dir.ReflectX()
			bounces++
			pos = end
			continue
		}

		if h.Type == shot.Wall {
			seg.Hit = shot.Bubble
			p.Forced = true
		}
		p.Segments[p.N] = seg
		p.N++
		p.Struck = h.Cell
		p.Landing = shot.Resolve(b, a.Radius, h.Cell, dir, end)
		break
	}
	return p
}
