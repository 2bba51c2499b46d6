package multiplayer

import (
	"context"
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/vovakirdan/hexpop/internal/config"
	"github.com/vovakirdan/hexpop/internal/core"
	"github.com/vovakirdan/hexpop/internal/game"
	"github.com/vovakirdan/hexpop/internal/rng"
)

// Controller produces one side's input for the next tick.
type Controller interface {
	Input(g *game.Game) core.InputFrame
}

// ControllerFunc adapts a function to Controller.
type ControllerFunc func(g *game.Game) core.InputFrame

// Input calls f(g).
func (f ControllerFunc) Input(g *game.Game) core.InputFrame { return f(g) }

// MatchOption configures a VersusMatch.
type MatchOption func(*VersusMatch)

// WithMatchID overrides the generated match ID.
func WithMatchID(id MatchID) MatchOption {
	return func(m *VersusMatch) { m.id = id }
}

// WithEventSink forwards both games' events to sink.
func WithEventSink(sink EventSink) MatchOption {
	return func(m *VersusMatch) { m.sink = sink }
}

// WithResultSaver persists the result when Play finishes.
func WithResultSaver(s ResultSaver) MatchOption {
	return func(m *VersusMatch) { m.saver = s }
}

// WithFrameLimit ends the match after n ticks. 0 means no limit.
func WithFrameLimit(n uint64) MatchOption {
	return func(m *VersusMatch) { m.maxTicks = n }
}

// WithTickRate paces Play to hz ticks per second. 0 runs unpaced.
func WithTickRate(hz int) MatchOption {
	return func(m *VersusMatch) { m.tickRate = hz }
}

// VersusMatch runs two games with the same ruleset and seed in lockstep.
// Garbage produced on one board is delivered to the other at the end of
// the tick it was earned in.
type VersusMatch struct {
	id       MatchID
	rules    config.Ruleset
	seed     int64
	games    [2]*game.Game
	sent     [2]int
	tick     uint64
	maxTicks uint64
	tickRate int

	sink   EventSink
	saver  ResultSaver
	result *MatchResult
}

// NewVersusMatch creates both games. Both sides draw from identical random
// streams, so they see the same opening board and bubble sequence.
func NewVersusMatch(rules config.Ruleset, seed int64, opts ...MatchOption) (*VersusMatch, error) {
	m := &VersusMatch{
		id:    NewMatchID(),
		rules: rules,
		seed:  seed,
	}
	for _, opt := range opts {
		opt(m)
	}

	for i, side := range []PlayerID{Player1, Player2} {
		side := side // per-iteration copy for the observer closure (go 1.21 loop semantics)
		var gopts []game.Option
		if m.sink != nil {
			gopts = append(gopts, game.WithObserver(game.ObserverFunc(func(e game.Event) {
				m.sink(MatchEvent{Tick: m.tick, Player: side, Event: e})
			})))
		}
		g, err := game.New(rules, rng.New(seed), gopts...)
		if err != nil {
			return nil, fmt.Errorf("multiplayer: %s: %w", side, err)
		}
		m.games[i] = g
	}
	return m, nil
}

// ID returns the match identifier.
func (m *VersusMatch) ID() MatchID { return m.id }

// Tick returns the number of completed ticks.
func (m *VersusMatch) Tick() uint64 { return m.tick }

// Game returns one side's game. Unknown players get nil.
func (m *VersusMatch) Game(p PlayerID) *game.Game {
	switch p {
	case Player1:
		return m.games[0]
	case Player2:
		return m.games[1]
	}
	return nil
}

// GarbageSent returns the total garbage a side has delivered.
func (m *VersusMatch) GarbageSent(p PlayerID) int {
	switch p {
	case Player1:
		return m.sent[0]
	case Player2:
		return m.sent[1]
	}
	return 0
}

// Result returns the outcome once the match is over.
func (m *VersusMatch) Result() (MatchResult, bool) {
	if m.result == nil {
		return MatchResult{}, false
	}
	return *m.result, true
}

// Checksum combines both games' checksums and the match tick.
func (m *VersusMatch) Checksum() uint64 {
	h := fnv.New64a()
	var buf [24]byte
	binary.LittleEndian.PutUint64(buf[0:], m.games[0].Checksum())
	binary.LittleEndian.PutUint64(buf[8:], m.games[1].Checksum())
	binary.LittleEndian.PutUint64(buf[16:], m.tick)
	h.Write(buf[:])
	return h.Sum64()
}

// Step advances both games by one tick, exchanges garbage and reports
// whether the match is over. Once over, Step returns the same result
// without ticking.
func (m *VersusMatch) Step(in core.MultiInputFrame) (MatchResult, bool) {
	if m.result != nil {
		return *m.result, true
	}

	m.tick++
	m.games[0].Tick(in.Player(Player1))
	m.games[1].Tick(in.Player(Player2))
	m.exchange()

	if winner, over := m.outcome(); over {
		return m.finish(MatchEndReasonCompleted, winner), true
	}
	if m.maxTicks > 0 && m.tick >= m.maxTicks {
		return m.finish(MatchEndReasonFrameLimit, m.leader()), true
	}
	return MatchResult{}, false
}

// exchange drains both sides before delivering so neither side's incoming
// rows affect what it sends this tick.
func (m *VersusMatch) exchange() {
	out := [2]int{m.games[0].TakeGarbage(), m.games[1].TakeGarbage()}
	for i, n := range out {
		to := m.games[1-i]
		if n == 0 || to.Phase().Over() {
			continue
		}
		if err := to.ReceiveGarbage(n); err == nil {
			m.sent[i] += n
		}
	}
}

func (m *VersusMatch) outcome() (PlayerID, bool) {
	p1, p2 := m.games[0].Phase(), m.games[1].Phase()
	switch {
	case !p1.Over() && !p2.Over():
		return 0, false
	case p1 == game.PhaseWon && p2 != game.PhaseWon:
		return Player1, true
	case p2 == game.PhaseWon && p1 != game.PhaseWon:
		return Player2, true
	case p1 == game.PhaseLost && !p2.Over():
		return Player2, true
	case p2 == game.PhaseLost && !p1.Over():
		return Player1, true
	}
	// Both finished on the same tick the same way.
	return m.leader(), true
}

// leader is the side with the higher score, 0 on a tie.
func (m *VersusMatch) leader() PlayerID {
	s1, s2 := m.games[0].Score(), m.games[1].Score()
	switch {
	case s1 > s2:
		return Player1
	case s2 > s1:
		return Player2
	}
	return 0
}

func (m *VersusMatch) finish(reason MatchEndReason, winner PlayerID) MatchResult {
	m.result = &MatchResult{
		MatchID:  m.id,
		Reason:   reason,
		Winner:   winner,
		Score1:   m.games[0].Score(),
		Score2:   m.games[1].Score(),
		Ticks:    m.tick,
		Checksum: m.Checksum(),
	}
	return *m.result
}

// Cancel ends a running match, awarding it to the current leader.
func (m *VersusMatch) Cancel() MatchResult {
	if m.result != nil {
		return *m.result
	}
	return m.finish(MatchEndReasonCancelled, m.leader())
}

// Play drives the match with two controllers until it ends or ctx is
// done, then saves the result if a saver is configured.
func (m *VersusMatch) Play(ctx context.Context, p1, p2 Controller) (MatchResult, error) {
	var tick <-chan time.Time
	if m.tickRate > 0 {
		ticker := time.NewTicker(time.Second / time.Duration(m.tickRate))
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		if tick != nil {
			select {
			case <-ctx.Done():
				return m.Cancel(), ctx.Err()
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			return m.Cancel(), err
		}

		in := core.NewMultiInputFrame()
		in.SetPlayer(Player1, p1.Input(m.games[0]))
		in.SetPlayer(Player2, p2.Input(m.games[1]))
		if res, done := m.Step(in); done {
			return res, m.save(res)
		}
	}
}

func (m *VersusMatch) save(res MatchResult) error {
	if m.saver == nil {
		return nil
	}
	err := m.saver.SaveMatchResult(MatchResultData{
		MatchID:   string(res.MatchID),
		Mode:      m.rules.Mode.String(),
		Seed:      m.seed,
		Score1:    res.Score1,
		Score2:    res.Score2,
		Winner:    int(res.Winner),
		EndReason: res.Reason.String(),
		Ticks:     res.Ticks,
		Checksum:  res.Checksum,
	})
	if err != nil {
		return fmt.Errorf("multiplayer: save match %s: %w", res.MatchID, err)
	}
	return nil
}
