package multiplayer

import "github.com/vovakirdan/hexpop/internal/game"

// MatchEvent is a game event tagged with the side that produced it.
type MatchEvent struct {
	Tick   uint64
	Player PlayerID
	Event  game.Event
}

// EventSink receives every event from both sides of a match, in the order
// the games log them.
type EventSink func(MatchEvent)
