package headless

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hexpop/internal/game"
	"github.com/vovakirdan/hexpop/internal/multiplayer"
)

// LogObserver writes game events to a logger: the end of the game at info
// level, everything else at debug.
type LogObserver struct {
	logger *log.Logger
}

// NewLogObserver creates an observer writing to logger.
func NewLogObserver(logger *log.Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

// OnEvent implements game.Observer.
func (o *LogObserver) OnEvent(e game.Event) {
	switch e.Kind {
	case game.EventGameOver:
		o.logger.Info("game over", "frame", e.Frame, "reason", game.LoseReason(e.Value)) //#nosec G115 -- reason codes are small
	case game.EventLevelClear:
		o.logger.Info("level clear", "frame", e.Frame, "score", e.Value)
	default:
		o.logger.Debug(e.Kind.String(), "frame", e.Frame, "cells", e.Count, "value", e.Value)
	}
}

// MatchSink logs both sides of a versus match, tagging each line with the
// player.
func MatchSink(logger *log.Logger) multiplayer.EventSink {
	sides := map[multiplayer.PlayerID]*LogObserver{
		multiplayer.Player1: NewLogObserver(logger.With("player", multiplayer.Player1.String())),
		multiplayer.Player2: NewLogObserver(logger.With("player", multiplayer.Player2.String())),
	}
	return func(e multiplayer.MatchEvent) {
		if o, ok := sides[e.Player]; ok {
			o.OnEvent(e.Event)
		}
	}
}
