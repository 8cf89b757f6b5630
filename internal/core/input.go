package core

import "strings"

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone     Action = iota
	ActionForward         // W, Up arrow - move away from the camera
	ActionBackward        // S, Down arrow - move toward the camera
	ActionLeft            // A, Left arrow - strafe left / lane left
	ActionRight           // D, Right arrow - strafe right / lane right
	ActionJump            // Space - jump
	ActionCrouch          // C, Shift - crouch (held)
	ActionConfirm         // Enter - start from the menu
	ActionRestart         // R key - restart game after game over
	ActionQuit            // Q, Ctrl+C - exit game/session
	ActionPause           // P, Escape - pause/unpause game
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionForward:
		return "Forward"
	case ActionBackward:
		return "Backward"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionJump:
		return "Jump"
	case ActionCrouch:
		return "Crouch"
	case ActionConfirm:
		return "Confirm"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// ParseAction looks up an action by its case-insensitive name.
func ParseAction(name string) (Action, bool) {
	for a := ActionForward; a <= ActionPause; a++ {
		if strings.EqualFold(a.String(), name) {
			return a, true
		}
	}
	return ActionNone, false
}

// InputSnapshot is the input state sampled once at the start of a tick.
// Held actions are currently down; pressed actions went down since the
// previous snapshot. Look deltas are pointer movement while captured.
type InputSnapshot struct {
	Held    map[Action]bool
	Pressed map[Action]bool
	LookDX  float64
	LookDY  float64
}

// NewInputSnapshot creates an empty snapshot.
func NewInputSnapshot() InputSnapshot {
	return InputSnapshot{
		Held:    make(map[Action]bool),
		Pressed: make(map[Action]bool),
	}
}

// Hold marks an action as currently held.
func (s *InputSnapshot) Hold(a Action) {
	if s.Held == nil {
		s.Held = make(map[Action]bool)
	}
	s.Held[a] = true
}

// Press marks an action as pressed this tick. A press also counts as held.
func (s *InputSnapshot) Press(a Action) {
	if s.Pressed == nil {
		s.Pressed = make(map[Action]bool)
	}
	s.Pressed[a] = true
	s.Hold(a)
}

// IsHeld returns true if the action is currently down.
func (s InputSnapshot) IsHeld(a Action) bool {
	return s.Held[a]
}

// WasPressed returns true if the action went down this tick.
func (s InputSnapshot) WasPressed(a Action) bool {
	return s.Pressed[a]
}

// MoveAxes returns the strafe (right positive) and forward (away from
// camera positive) axes in [-1, 1].
func (s InputSnapshot) MoveAxes() (right, forward float64) {
	if s.IsHeld(ActionRight) {
		right++
	}
	if s.IsHeld(ActionLeft) {
		right--
	}
	if s.IsHeld(ActionForward) {
		forward++
	}
	if s.IsHeld(ActionBackward) {
		forward--
	}
	return right, forward
}

// Clear resets all actions and deltas for the next tick.
func (s *InputSnapshot) Clear() {
	for k := range s.Held {
		delete(s.Held, k)
	}
	for k := range s.Pressed {
		delete(s.Pressed, k)
	}
	s.LookDX = 0
	s.LookDY = 0
}

// Clone creates a deep copy of this snapshot.
func (s InputSnapshot) Clone() InputSnapshot {
	clone := NewInputSnapshot()
	for k, v := range s.Held {
		clone.Held[k] = v
	}
	for k, v := range s.Pressed {
		clone.Pressed[k] = v
	}
	clone.LookDX = s.LookDX
	clone.LookDY = s.LookDY
	return clone
}
