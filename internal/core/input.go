package core

// Action represents a semantic game action, abstracted from physical key presses.
// Drivers translate device events into exactly one Action per input tick.
type Action int

const (
	ActionNone      Action = iota
	ActionMoveLeft         // Left arrow, A
	ActionMoveRight        // Right arrow, D
	ActionRotate           // Up arrow, W
	ActionSoftDrop         // Down arrow, S
	ActionHardDrop         // Space
	ActionPause            // P
	ActionRestart          // R - restart after game over
	ActionQuit             // Q, Esc, Ctrl+C - handled by the driver
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionMoveLeft:
		return "MoveLeft"
	case ActionMoveRight:
		return "MoveRight"
	case ActionRotate:
		return "Rotate"
	case ActionSoftDrop:
		return "SoftDrop"
	case ActionHardDrop:
		return "HardDrop"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// TickKind distinguishes the two kinds of simulation tick.
type TickKind uint8

const (
	// TickInput carries a single user action.
	TickInput TickKind = iota
	// TickGravity fires on the fixed gravity interval.
	TickGravity
)

// Tick is one unit of work for the simulation: either a gravity step or
// exactly one input action, never both.
type Tick struct {
	Kind   TickKind
	Action Action
}

// GravityTick returns a gravity tick.
func GravityTick() Tick {
	return Tick{Kind: TickGravity}
}

// InputTick returns an input tick carrying a.
func InputTick(a Action) Tick {
	return Tick{Kind: TickInput, Action: a}
}

// IsGravity reports whether t is a gravity tick.
func (t Tick) IsGravity() bool {
	return t.Kind == TickGravity
}

func (t Tick) String() string {
	if t.IsGravity() {
		return "Gravity"
	}
	return t.Action.String()
}
