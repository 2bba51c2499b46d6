package headless

import (
	"math"

	"github.com/vovakirdan/hexpop/internal/board"
	"github.com/vovakirdan/hexpop/internal/core"
	"github.com/vovakirdan/hexpop/internal/fixed"
	"github.com/vovakirdan/hexpop/internal/game"
	"github.com/vovakirdan/hexpop/internal/hex"
	"github.com/vovakirdan/hexpop/internal/shot"
)

// DefaultDelay is the autoplayer's idle time between shots, in frames.
const DefaultDelay = 20

// AutoPlayer scans launcher angles with the trajectory preview and fires
// where the landing cell touches the most bubbles matching the loaded one.
// Its only state is the shot cooldown, so replays from the same seed make
// the same moves.
type AutoPlayer struct {
	Step  int // scan increment in degrees, 2 when unset
	Delay int // idle frames between shots

	wait int
}

// NewAutoPlayer returns an autoplayer waiting delay frames between shots.
func NewAutoPlayer(delay int) *AutoPlayer {
	return &AutoPlayer{Step: 2, Delay: delay, wait: delay}
}

// Input implements multiplayer.Controller.
func (p *AutoPlayer) Input(g *game.Game) core.InputFrame {
	in := core.NewInputFrame()
	switch g.Phase() {
	case game.PhasePlaying, game.PhaseHurry:
	default:
		return in
	}
	if g.Shot().Phase != shot.Idle {
		return in
	}
	if p.wait > 0 {
		p.wait--
		return in
	}

	angle, _ := p.Choose(g)
	in.SetAim(angle)
	in.Set(core.ActionFire)
	p.wait = p.Delay
	return in
}

// Choose returns the best angle and its rating. Straight up wins when no
// angle has a landing cell.
func (p *AutoPlayer) Choose(g *game.Game) (fixed.Fixed, int) {
	step := p.Step
	if step <= 0 {
		step = 2
	}
	best, bestScore := fixed.HalfPi, math.MinInt
	for deg := 10; deg <= 170; deg += step {
		a := fixed.FromDegrees(deg)
		path := g.Preview(a)
		if !path.Landing.Valid() {
			continue
		}
		if s := rate(g.Board(), g.Current(), path.Landing); s > bestScore {
			best, bestScore = a, s
		}
	}
	return best, bestScore
}

// rate prefers matching neighbors, then any contact, then higher rows.
func rate(b *board.Board, bub board.Bubble, cell board.Cell) int {
	same, touching := 0, 0
	for _, d := range hex.Directions {
		n, ok := b.Neighbor(cell, d)
		if !ok || !b.Occupied(n) {
			continue
		}
		touching++
		if c, ok := b.Get(n).Color(); ok && bub.Matches(c) {
			same++
		}
	}
	return same*100 + touching*10 - cell.Row
}
