// Package multiplayer pairs game controllers into matches. Matches are
// stepped synchronously: both sides advance one frame per Step and share
// nothing but the garbage they send each other.
package multiplayer

import (
	"github.com/google/uuid"

	"github.com/vovakirdan/hexpop/internal/core"
)

// PlayerID is an alias to core.PlayerID for convenience.
type PlayerID = core.PlayerID

// Re-export player constants for convenience.
const (
	Player1 = core.Player1
	Player2 = core.Player2
)

// MatchID uniquely identifies a match.
type MatchID string

// NewMatchID returns a fresh random match ID.
func NewMatchID() MatchID {
	return MatchID(uuid.NewString())
}

// MatchEndReason describes why a match ended.
type MatchEndReason int

const (
	MatchEndReasonCompleted  MatchEndReason = iota // One side won or lost
	MatchEndReasonFrameLimit                       // Tick budget ran out
	MatchEndReasonCancelled                        // Stopped by the caller
)

func (r MatchEndReason) String() string {
	switch r {
	case MatchEndReasonCompleted:
		return "completed"
	case MatchEndReasonFrameLimit:
		return "frame-limit"
	case MatchEndReasonCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// MatchResult contains the outcome of a completed match.
type MatchResult struct {
	MatchID  MatchID
	Reason   MatchEndReason
	Winner   PlayerID // 0 for a draw
	Score1   int64
	Score2   int64
	Ticks    uint64
	Checksum uint64
}

// MatchResultData is the storage-facing form of a MatchResult.
type MatchResultData struct {
	MatchID   string
	Mode      string
	Seed      int64
	Score1    int64
	Score2    int64
	Winner    int
	EndReason string
	Ticks     uint64
	Checksum  uint64
}

// ResultSaver persists finished matches.
type ResultSaver interface {
	SaveMatchResult(data MatchResultData) error
}
