// Package shot simulates a single projectile in continuous space against the
// board, the side walls, the ceiling and the floor.
package shot

import (
	"fmt"

	"github.com/vovakirdan/hexpop/internal/board"
	"github.com/vovakirdan/hexpop/internal/core"
	"github.com/vovakirdan/hexpop/internal/fixed"
)

// Phase is the shot lifecycle state.
type Phase uint8

const (
	Idle Phase = iota
	Moving
	Collided
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case Idle:
		return "Idle"
	case Moving:
		return "Moving"
	case Collided:
		return "Collided"
	default:
		return "Unknown"
	}
}

// CollisionType classifies what a shot ran into.
type CollisionType uint8

const (
	None CollisionType = iota
	Bubble
	Wall
	Ceiling
	Floor
)

// String returns a human-readable name for the collision type.
func (t CollisionType) String() string {
	switch t {
	case None:
		return "None"
	case Bubble:
		return "Bubble"
	case Wall:
		return "Wall"
	case Ceiling:
		return "Ceiling"
	case Floor:
		return "Floor"
	default:
		return "Unknown"
	}
}

// Collision is the result of one physics step.
type Collision struct {
	Type     CollisionType
	Point    fixed.Vec
	Cell     board.Cell  // struck cell for Bubble hits, InvalidCell otherwise
	Distance fixed.Fixed // distance traveled during the step
	Forced   bool        // bounce budget exhausted on a wall
}

// Arena is the playfield boundary in pixels.
type Arena struct {
	Left, Right fixed.Fixed
	Ceiling     fixed.Fixed
	Floor       fixed.Fixed
	Radius      fixed.Fixed
}

// NewArena sizes the playfield around a board. The floor sits one bubble
// diameter below the last row.
func NewArena(b *board.Board, radius fixed.Fixed) Arena {
	return Arena{
		Left:    0,
		Right:   b.Width(radius),
		Ceiling: 0,
		Floor:   b.Height(radius) + radius.MulInt(2),
		Radius:  radius,
	}
}

// Launcher returns the firing position: centered, one radius above the
// floor.
func (a Arena) Launcher() fixed.Vec {
	return fixed.Vec{X: (a.Left + a.Right) / 2, Y: a.Floor - a.Radius}
}

// Shot is the single in-flight projectile.
type Shot struct {
	Phase      Phase
	Pos        fixed.Vec
	Vel        fixed.Vec
	Bounces    int
	MaxBounces int
	Bubble     board.Bubble
}

// Fire launches the shot from pos at angle (radians, pi/2 is straight up)
// with the given per-step speed.
func (s *Shot) Fire(pos fixed.Vec, angle, speed fixed.Fixed, bub board.Bubble, maxBounces int) error {
	if s.Phase != Idle {
		return fmt.Errorf("shot: fire while %s: %w", s.Phase, core.ErrInvalidState)
	}
	if speed <= 0 {
		return fmt.Errorf("shot: speed %v: %w", speed.Float(), core.ErrInvalidArgument)
	}
	*s = Shot{
		Phase:      Moving,
		Pos:        pos,
		Vel:        fixed.FromAngle(angle, speed),
		MaxBounces: maxBounces,
		Bubble:     bub,
	}
	return nil
}

// Reset returns the shot to Idle after placement.
func (s *Shot) Reset() {
	*s = Shot{}
}

// Step advances a moving shot by one tick, spending a travel budget equal to
// its speed. Wall contacts reflect and continue; bubble, ceiling and floor
// contacts end the step with the shot Collided. A wall contact once the
// bounce budget is spent is reported as a forced Bubble collision.
func (s *Shot) Step(b *board.Board, a Arena) Collision {
	res := Collision{Type: None, Point: s.Pos, Cell: board.InvalidCell}
	if s.Phase != Moving {
		return res
	}

	remaining := s.Vel.Len()
	guard := s.MaxBounces + 8
	for i := 0; remaining > fixed.Epsilon && i < guard; i++ {
		dir := s.Vel.Normalize()
		h := Nearest(b, a, s.Pos, dir, true)
		if h.Type == None || h.T > remaining {
			s.Pos = s.Pos.Add(dir.Scale(remaining))
			res.Distance += remaining
			break
		}

		s.Pos = s.Pos.Add(dir.Scale(h.T))
		res.Distance += h.T
		remaining -= h.T

		if h.Type == Wall {
			if s.Bounces >= s.MaxBounces {
				s.Phase = Collided
				res.Type, res.Forced = Bubble, true
				res.Point = s.Pos
				return res
			}
			s.Vel = s.Vel.ReflectX()
			s.Bounces++
			continue
		}

		s.Phase = Collided
		res.Type, res.Cell = h.Type, h.Cell
		res.Point = s.Pos
		return res
	}

	res.Point = s.Pos
	return res
}
