package core

// Action represents a semantic game action, abstracted from physical key presses.
// The platform maps keys to actions; the engine only ever sees method calls.
type Action int

const (
	ActionNone    Action = iota
	ActionJump           // Space, W, Up - flap (starts the session when idle)
	ActionStart          // Enter, S - explicit start without a flap
	ActionRestart        // R - restart after game over
	ActionRuns           // Tab - toggle the session runs board
	ActionQuit           // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionJump:
		return "Jump"
	case ActionStart:
		return "Start"
	case ActionRestart:
		return "Restart"
	case ActionRuns:
		return "Runs"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
