package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/arcade3d/internal/core"
)

// Look deltas are expressed in pointer pixels so the camera's mouse
// sensitivity applies to keys and drags alike.
const (
	lookKeyPixels  = 40.0 // Per look key event
	lookCellPixels = 8.0  // Per terminal cell of mouse drag
)

// DefaultHoldWindow is how long an action stays held after its last key
// event. Terminals report no key-up, only auto-repeat, so a key counts as
// held until its repeats stop arriving.
const DefaultHoldWindow = 500 * time.Millisecond

// KeyMap defines the in-game key bindings.
type KeyMap struct {
	Forward   key.Binding
	Backward  key.Binding
	Left      key.Binding
	Right     key.Binding
	Jump      key.Binding
	Crouch    key.Binding
	Confirm   key.Binding
	Restart   key.Binding
	Pause     key.Binding
	LookLeft  key.Binding
	LookRight key.Binding
	LookUp    key.Binding
	LookDown  key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Forward, k.Jump, k.Crouch, k.Pause, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Forward, k.Backward, k.Left, k.Right},
		{k.Jump, k.Crouch, k.LookLeft, k.LookRight, k.LookUp, k.LookDown},
		{k.Confirm, k.Restart, k.Pause, k.Back, k.Quit},
	}
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Forward:   key.NewBinding(key.WithKeys("w", "up"), key.WithHelp("w/↑", "forward")),
		Backward:  key.NewBinding(key.WithKeys("s", "down"), key.WithHelp("s/↓", "back")),
		Left:      key.NewBinding(key.WithKeys("a", "left"), key.WithHelp("a/←", "left")),
		Right:     key.NewBinding(key.WithKeys("d", "right"), key.WithHelp("d/→", "right")),
		Jump:      key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "jump")),
		Crouch:    key.NewBinding(key.WithKeys("c", "shift+down"), key.WithHelp("c", "crouch")),
		Confirm:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "start")),
		Restart:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		Pause:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		LookLeft:  key.NewBinding(key.WithKeys("j"), key.WithHelp("j", "look left")),
		LookRight: key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "look right")),
		LookUp:    key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "look up")),
		LookDown:  key.NewBinding(key.WithKeys("k"), key.WithHelp("k", "look down")),
		Back:      key.NewBinding(key.WithKeys("b", "esc"), key.WithHelp("b/esc", "menu")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// Action translates a key message to a game action.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Forward):
		return core.ActionForward
	case key.Matches(msg, k.Backward):
		return core.ActionBackward
	case key.Matches(msg, k.Left):
		return core.ActionLeft
	case key.Matches(msg, k.Right):
		return core.ActionRight
	case key.Matches(msg, k.Jump):
		return core.ActionJump
	case key.Matches(msg, k.Crouch):
		return core.ActionCrouch
	case key.Matches(msg, k.Confirm):
		return core.ActionConfirm
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	}
	return core.ActionNone
}

// Look translates a look key to pointer deltas. ok is false for other keys.
func (k KeyMap) Look(msg tea.KeyMsg) (dx, dy float64, ok bool) {
	switch {
	case key.Matches(msg, k.LookLeft):
		return -lookKeyPixels, 0, true
	case key.Matches(msg, k.LookRight):
		return lookKeyPixels, 0, true
	case key.Matches(msg, k.LookUp):
		return 0, -lookKeyPixels, true
	case key.Matches(msg, k.LookDown):
		return 0, lookKeyPixels, true
	}
	return 0, 0, false
}

// InputLatch accumulates key and pointer events between ticks and turns
// them into one InputSnapshot per tick.
type InputLatch struct {
	window  time.Duration
	now     func() time.Time
	seen    map[core.Action]time.Time
	pressed map[core.Action]bool
	lookDX  float64
	lookDY  float64

	dragging     bool
	lastX, lastY int
}

// NewInputLatch creates a latch with the given hold window and time
// source (time.Now if nil).
func NewInputLatch(window time.Duration, now func() time.Time) *InputLatch {
	if now == nil {
		now = time.Now
	}
	if window <= 0 {
		window = DefaultHoldWindow
	}
	return &InputLatch{
		window:  window,
		now:     now,
		seen:    make(map[core.Action]time.Time),
		pressed: make(map[core.Action]bool),
	}
}

// Key records a key event. Discrete actions count every event as a press,
// so quick taps each register. Movement and crouch count a press only when
// the action was not already held.
func (l *InputLatch) Key(a core.Action) {
	if a == core.ActionNone {
		return
	}
	t := l.now()
	if discrete(a) || !l.heldAt(a, t) {
		l.pressed[a] = true
	}
	l.seen[a] = t
}

// discrete reports whether a is a one-shot action: lane changes, jumps
// and menu toggles.
func discrete(a core.Action) bool {
	switch a {
	case core.ActionLeft, core.ActionRight, core.ActionJump,
		core.ActionConfirm, core.ActionRestart, core.ActionPause:
		return true
	}
	return false
}

// Look adds pointer movement.
func (l *InputLatch) Look(dx, dy float64) {
	l.lookDX += dx
	l.lookDY += dy
}

// Mouse turns left-button drags into look deltas.
func (l *InputLatch) Mouse(msg tea.MouseMsg) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			l.dragging = true
			l.lastX, l.lastY = msg.X, msg.Y
		}
	case tea.MouseActionMotion:
		if l.dragging {
			l.Look(float64(msg.X-l.lastX)*lookCellPixels, float64(msg.Y-l.lastY)*lookCellPixels)
			l.lastX, l.lastY = msg.X, msg.Y
		}
	case tea.MouseActionRelease:
		l.dragging = false
	}
}

// Release drops every held action.
func (l *InputLatch) Release() {
	clear(l.seen)
	clear(l.pressed)
	l.lookDX, l.lookDY = 0, 0
	l.dragging = false
}

// Snapshot returns the input for the next tick and consumes presses
// and look deltas.
func (l *InputLatch) Snapshot() core.InputSnapshot {
	in := core.NewInputSnapshot()
	t := l.now()
	for a := range l.seen {
		if l.heldAt(a, t) {
			in.Hold(a)
		} else {
			delete(l.seen, a)
		}
	}
	for a := range l.pressed {
		in.Press(a)
	}
	in.LookDX, in.LookDY = l.lookDX, l.lookDY

	clear(l.pressed)
	l.lookDX, l.lookDY = 0, 0
	return in
}

func (l *InputLatch) heldAt(a core.Action, t time.Time) bool {
	last, ok := l.seen[a]
	return ok && t.Sub(last) < l.window
}
