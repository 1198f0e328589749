package core

// Action represents a semantic session action, abstracted from physical key presses.
// This allows the shell to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone       Action = iota
	ActionTogglePlay        // Space - start/pause auto-stepping
	ActionStep              // N, . - single manual step
	ActionReset             // R - reset the run
	ActionSpeedUp           // +, = - raise speed
	ActionSpeedDown         // -, _ - lower speed
	ActionNextRule          // Tab - switch rule (resets)
	ActionPrevRule          // Shift+Tab - switch rule backwards (resets)
	ActionPalette           // C - randomize palette
	ActionArtMode           // A - toggle art mode
	ActionExport            // Ctrl+S, S - save snapshot image
	ActionUp                // Up, K - move edit cursor
	ActionDown              // Down, J - move edit cursor
	ActionLeft              // Left, H - move edit cursor
	ActionRight             // Right, L - move edit cursor
	ActionPaint             // Enter - place pheromone under cursor
	ActionBack              // Esc, B - close dialog / leave art mode
	ActionHelp              // ? - toggle full help
	ActionQuit              // Q, Ctrl+C - exit session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionTogglePlay:
		return "TogglePlay"
	case ActionStep:
		return "Step"
	case ActionReset:
		return "Reset"
	case ActionSpeedUp:
		return "SpeedUp"
	case ActionSpeedDown:
		return "SpeedDown"
	case ActionNextRule:
		return "NextRule"
	case ActionPrevRule:
		return "PrevRule"
	case ActionPalette:
		return "Palette"
	case ActionArtMode:
		return "ArtMode"
	case ActionExport:
		return "Export"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionPaint:
		return "Paint"
	case ActionBack:
		return "Back"
	case ActionHelp:
		return "Help"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
