package core

import "github.com/vovakirdan/hexpop/internal/fixed"

// PlayerID identifies a player within a match.
// Player1 is always the local player, Player2 the opponent in versus.
type PlayerID int

const (
	Player1 PlayerID = iota + 1
	Player2
)

// String returns a human-readable name for the player.
func (p PlayerID) String() string {
	switch p {
	case Player1:
		return "P1"
	case Player2:
		return "P2"
	default:
		return "P?"
	}
}

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone      Action = iota
	ActionAimLeft          // rotate the launcher counter-clockwise
	ActionAimRight         // rotate the launcher clockwise
	ActionFire             // launch the current bubble
	ActionSwap             // exchange current and preview bubbles
	ActionPause            // toggle pause
	ActionQuit             // end the session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionAimLeft:
		return "AimLeft"
	case ActionAimRight:
		return "AimRight"
	case ActionFire:
		return "Fire"
	case ActionSwap:
		return "Swap"
	case ActionPause:
		return "Pause"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input state for a single player during one simulation tick.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// Aim is an absolute launcher angle in radians, applied before
	// relative aim actions when HasAim is set.
	Aim    fixed.Fixed
	HasAim bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// SetAim requests an absolute launcher angle.
func (f *InputFrame) SetAim(angle fixed.Fixed) {
	f.Aim = angle
	f.HasAim = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Empty reports whether the frame carries no input.
func (f InputFrame) Empty() bool {
	return !f.HasAim && len(f.Actions) == 0
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Aim, f.HasAim = 0, false
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.Aim, clone.HasAim = f.Aim, f.HasAim
	return clone
}

// MultiInputFrame contains input from all players for a single tick.
type MultiInputFrame struct {
	// ByPlayer maps player IDs to their input frames.
	ByPlayer map[PlayerID]InputFrame
}

// NewMultiInputFrame creates an empty multi-input frame.
func NewMultiInputFrame() MultiInputFrame {
	return MultiInputFrame{
		ByPlayer: make(map[PlayerID]InputFrame),
	}
}

// Player returns the input frame for a specific player.
// Returns an empty frame if player has no input.
func (m MultiInputFrame) Player(id PlayerID) InputFrame {
	if m.ByPlayer == nil {
		return NewInputFrame()
	}
	if frame, ok := m.ByPlayer[id]; ok {
		return frame
	}
	return NewInputFrame()
}

// SetPlayer sets the input frame for a specific player.
func (m *MultiInputFrame) SetPlayer(id PlayerID, frame InputFrame) {
	if m.ByPlayer == nil {
		m.ByPlayer = make(map[PlayerID]InputFrame)
	}
	m.ByPlayer[id] = frame
}
