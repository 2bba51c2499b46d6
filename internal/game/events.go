package game

import "github.com/vovakirdan/hexpop/internal/board"

// Event log limits.
const (
	MaxEvents     = 256
	MaxEventCells = 24
)

// EventKind identifies what happened.
type EventKind uint8

const (
	EventFire EventKind = iota
	EventBubblePlaced
	EventBubblesPopped
	EventBubblesDropped
	EventRowInserted
	EventGarbageReceived
	EventLevelClear
	EventGameOver
	EventPause
	EventUnpause
	EventSwitchBubble
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventFire:
		return "Fire"
	case EventBubblePlaced:
		return "BubblePlaced"
	case EventBubblesPopped:
		return "BubblesPopped"
	case EventBubblesDropped:
		return "BubblesDropped"
	case EventRowInserted:
		return "RowInserted"
	case EventGarbageReceived:
		return "GarbageReceived"
	case EventLevelClear:
		return "LevelClear"
	case EventGameOver:
		return "GameOver"
	case EventPause:
		return "Pause"
	case EventUnpause:
		return "Unpause"
	case EventSwitchBubble:
		return "SwitchBubble"
	default:
		return "Unknown"
	}
}

// Event is one frame-stamped log entry. Cells holds compact indices
// (row*board.MaxCols+col) of at most MaxEventCells affected cells; Count is
// the full number affected. Value depends on the kind:
//   - Fire: launcher angle in Q16.16 radians
//   - BubblePlaced: glyph of the placed bubble
//   - BubblesPopped, BubblesDropped: score delta
//   - RowInserted: rows inserted
//   - GarbageReceived: garbage units received
//   - LevelClear: final score
//   - GameOver: LoseReason
type Event struct {
	Frame uint32
	Kind  EventKind
	Count uint16
	Cells [MaxEventCells]uint16
	Value int32
}

// Indices returns the stored cell indices.
func (e *Event) Indices() []uint16 {
	n := int(e.Count)
	if n > MaxEventCells {
		n = MaxEventCells
	}
	return e.Cells[:n]
}

// CellAt decodes the i-th stored index.
func (e *Event) CellAt(i int) board.Cell {
	return board.CellFromIndex(int(e.Cells[i]))
}

// EventLog is a capped append-only buffer. Events past the cap are counted
// and discarded until the log is drained.
type EventLog struct {
	events  [MaxEvents]Event
	n       int
	dropped int
}

// Append stores e, or counts it as dropped when full.
func (l *EventLog) Append(e Event) bool {
	if l.n >= MaxEvents {
		l.dropped++
		return false
	}
	l.events[l.n] = e
	l.n++
	return true
}

// Len returns the number of stored events.
func (l *EventLog) Len() int { return l.n }

// Dropped returns how many events were discarded since the last drain.
func (l *EventLog) Dropped() int { return l.dropped }

// Events returns the stored events. The slice aliases the log.
func (l *EventLog) Events() []Event { return l.events[:l.n] }

// Drain appends the stored events to dst and clears the log.
func (l *EventLog) Drain(dst []Event) []Event {
	dst = append(dst, l.events[:l.n]...)
	l.n, l.dropped = 0, 0
	return dst
}

// Observer receives every event as it is logged. It is the boundary to the
// rendering, audio and replay collaborators.
type Observer interface {
	OnEvent(e Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(e Event)

// OnEvent calls f(e).
func (f ObserverFunc) OnEvent(e Event) { f(e) }
