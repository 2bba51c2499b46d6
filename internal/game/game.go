// Package game is the per-frame controller: it applies input, steps the
// shot, places bubbles, resolves matches and orphans, scores, applies
// pressure and garbage rows, and decides win or loss. A Game is not safe
// for concurrent use.
package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"

	"github.com/vovakirdan/hexpop/internal/board"
	"github.com/vovakirdan/hexpop/internal/config"
	"github.com/vovakirdan/hexpop/internal/core"
	"github.com/vovakirdan/hexpop/internal/fixed"
	"github.com/vovakirdan/hexpop/internal/shot"
	"github.com/vovakirdan/hexpop/internal/trajectory"
)

// Scoring constants.
const (
	MatchBase   = 10 // per popped bubble
	OrphanBase  = 20 // per dropped bubble
	TierDivisor = 20 // bubbles per score tier
	MaxCombo    = 10
)

// Aim limits: the launcher never points below 9 degrees off horizontal.
const (
	MinAim = fixed.Pi / 20
	MaxAim = fixed.Pi - fixed.Pi/20
)

// Phase is the game state machine.
type Phase uint8

const (
	PhaseReady Phase = iota // UI only; New starts in Playing
	PhasePlaying
	PhasePaused
	PhaseHurry
	PhaseAnimating
	PhaseWon
	PhaseLost
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseReady:
		return "Ready"
	case PhasePlaying:
		return "Playing"
	case PhasePaused:
		return "Paused"
	case PhaseHurry:
		return "Hurry"
	case PhaseAnimating:
		return "Animating"
	case PhaseWon:
		return "Won"
	case PhaseLost:
		return "Lost"
	default:
		return "Unknown"
	}
}

// Over reports whether the phase is terminal.
func (p Phase) Over() bool {
	return p == PhaseWon || p == PhaseLost
}

// LoseReason explains a PhaseLost transition.
type LoseReason uint8

const (
	LoseNone LoseReason = iota
	LoseFloor
	LosePlacement
	LoseOverflow
	LoseTimeout
	LoseUnplaceable
)

// String returns a human-readable name for the reason.
func (r LoseReason) String() string {
	switch r {
	case LoseNone:
		return "none"
	case LoseFloor:
		return "floor"
	case LosePlacement:
		return "placement"
	case LoseOverflow:
		return "overflow"
	case LoseTimeout:
		return "timeout"
	case LoseUnplaceable:
		return "unplaceable"
	default:
		return "unknown"
	}
}

// Random is the deterministic seeded stream a game draws from. It must be
// the only source of randomness in a session.
type Random interface {
	Next() uint64
	Range(n int) int
	PickColor(mask board.ColorMask) (board.Color, bool)
	WeightedColor(mask board.ColorMask, weights [board.NumColors]int) (board.Color, bool)
	Checksum() uint64
}

// Option configures a Game.
type Option func(*Game)

// WithObserver registers an observer for every logged event.
func WithObserver(o Observer) Option {
	return func(g *Game) {
		g.observers = append(g.observers, o)
	}
}

// Game is one session's authoritative state.
type Game struct {
	rules     config.Ruleset
	board     *board.Board
	arena     shot.Arena
	shot      shot.Shot
	rnd       Random
	observers []Observer

	current, next board.Bubble
	aim           fixed.Fixed

	phase  Phase
	resume Phase
	reason LoseReason

	frame         int
	idleFrames    int
	settle        int
	score         int64
	combo         int
	quantifier    int
	shotsFired    int
	shotsUntilRow int
	garbage       int

	log EventLog
}

// New starts a session in PhasePlaying with InitialRows of random bubbles.
func New(rules config.Ruleset, rnd Random, opts ...Option) (*Game, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	if rnd == nil {
		return nil, fmt.Errorf("game: nil random stream: %w", core.ErrInvalidArgument)
	}
	if rules.InitialRows > rules.Rows {
		return nil, fmt.Errorf("game: initial_rows %d exceeds rows %d: %w", rules.InitialRows, rules.Rows, core.ErrOutOfBounds)
	}

	b, err := board.New(rules.Rows, rules.ColsEven, rules.ColsOdd)
	if err != nil {
		return nil, err
	}

	g := &Game{
		rules:         rules,
		board:         b,
		arena:         shot.NewArena(b, rules.Radius()),
		rnd:           rnd,
		aim:           fixed.HalfPi,
		phase:         PhasePlaying,
		shotsUntilRow: rules.ShotsPerRowInsert,
	}
	for _, opt := range opts {
		opt(g)
	}

	for row := 0; row < rules.InitialRows; row++ {
		for col := 0; col < b.Cols(row); col++ {
			_ = b.Set(board.Cell{Row: row, Col: col}, g.fillCell(col))
		}
	}
	g.current = g.draw()
	g.next = g.draw()
	return g, nil
}

// LoadLayout replaces the board with an explicit layout, top row first.
// Only allowed while no shot is in flight and the game is not over.
func (g *Game) LoadLayout(rows [][]board.Bubble) error {
	if g.shot.Phase != shot.Idle || g.phase.Over() {
		return fmt.Errorf("game: load layout during %s: %w", g.phase, core.ErrInvalidState)
	}
	return g.board.Load(rows)
}

// Rules returns the session ruleset.
func (g *Game) Rules() config.Ruleset { return g.rules }

// Board returns the live board. Callers must not mutate it.
func (g *Game) Board() *board.Board { return g.board }

// Arena returns the playfield bounds.
func (g *Game) Arena() shot.Arena { return g.arena }

// Shot returns a copy of the shot state.
func (g *Game) Shot() shot.Shot { return g.shot }

// Phase returns the current phase.
func (g *Game) Phase() Phase { return g.phase }

// LoseReason returns why the game was lost, LoseNone otherwise.
func (g *Game) LoseReason() LoseReason { return g.reason }

// Frame returns the number of unpaused ticks.
func (g *Game) Frame() int { return g.frame }

// Score returns the session score.
func (g *Game) Score() int64 { return g.score }

// Combo returns the current combo multiplier.
func (g *Game) Combo() int { return g.combo }

// Quantifier returns the score-tier counter.
func (g *Game) Quantifier() int { return g.quantifier }

// ShotsFired returns the number of launched shots.
func (g *Game) ShotsFired() int { return g.shotsFired }

// ShotsUntilRow returns the pressure countdown, 0 when pressure is off.
func (g *Game) ShotsUntilRow() int { return g.shotsUntilRow }

// Current returns the loaded bubble.
func (g *Game) Current() board.Bubble { return g.current }

// Next returns the preview bubble.
func (g *Game) Next() board.Bubble { return g.next }

// Aim returns the launcher angle.
func (g *Game) Aim() fixed.Fixed { return g.aim }

// PendingGarbage returns accrued garbage without draining it.
func (g *Game) PendingGarbage() int { return g.garbage }

// TakeGarbage returns the accrued garbage and resets it.
func (g *Game) TakeGarbage() int {
	n := g.garbage
	g.garbage = 0
	return n
}

// Events returns the undrained events. The slice aliases the log.
func (g *Game) Events() []Event { return g.log.Events() }

// DroppedEvents returns how many events overflowed the log since the last
// drain.
func (g *Game) DroppedEvents() int { return g.log.Dropped() }

// DrainEvents appends the logged events to dst and clears the log.
func (g *Game) DrainEvents(dst []Event) []Event {
	return g.log.Drain(dst)
}

// Preview traces a shot of the current bubble at angle without changing
// any state.
func (g *Game) Preview(angle fixed.Fixed) trajectory.Path {
	return trajectory.Compute(g.board, g.arena, g.arena.Launcher(), angle, g.rules.Speed(), g.rules.MaxBounces)
}

// Checksum fingerprints board, random stream, frame, score and shots fired
// for replay and lockstep verification.
func (g *Game) Checksum() uint64 {
	h := fnv.New64a()
	var buf [40]byte
	binary.LittleEndian.PutUint64(buf[0:], g.board.Checksum())
	binary.LittleEndian.PutUint64(buf[8:], g.rnd.Checksum())
	binary.LittleEndian.PutUint64(buf[16:], uint64(g.frame))
	binary.LittleEndian.PutUint64(buf[24:], uint64(g.score))
	binary.LittleEndian.PutUint64(buf[32:], uint64(g.shotsFired))
	h.Write(buf[:])
	return h.Sum64()
}

// draw picks the next loaded bubble.
func (g *Game) draw() board.Bubble {
	if g.rules.AllowedSpecials != 0 && g.rules.SpecialChance > 0 && g.rnd.Range(1000) < g.rules.SpecialChance {
		allowed := g.rules.AllowedSpecials
		s := allowed.Nth(g.rnd.Range(allowed.Count()))
		var payload uint8
		if s == board.Magnet {
			payload = uint8(1 + g.rnd.Range(3))
		}
		return board.SpecialBubble(s, payload)
	}

	mask := g.rules.AllowedColors
	if g.rules.RestrictColorsToBoard {
		if onBoard := mask & g.board.ColorMask(); onBoard != 0 {
			c, _ := g.rnd.WeightedColor(onBoard, g.board.ColorCounts())
			return board.Colored(c)
		}
	}
	c, _ := g.rnd.PickColor(mask)
	return board.Colored(c)
}

// fillCell supplies bubbles for initial and inserted rows.
func (g *Game) fillCell(int) board.Bubble {
	c, _ := g.rnd.PickColor(g.rules.AllowedColors)
	return board.Colored(c)
}

// emit logs an event stamped with the current frame and notifies
// observers.
func (g *Game) emit(kind EventKind, cells []board.Cell, value int32) {
	e := Event{Frame: uint32(g.frame), Kind: kind, Value: value} //#nosec G115 -- frame counts are bounded by the caller
	e.Count = uint16(len(cells))
	for i, c := range cells {
		if i == MaxEventCells {
			break
		}
		e.Cells[i] = uint16(c.Index())
	}
	g.log.Append(e)
	for _, o := range g.observers {
		o.OnEvent(e)
	}
}
