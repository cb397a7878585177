package recipe

// State is the lifecycle state of an Editor
type State int

const (
	StateClosed State = iota
	StateOpenEmpty
	StateOpenEditing
	StateSubmitting
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpenEmpty:
		return "open_empty"
	case StateOpenEditing:
		return "open_editing"
	case StateSubmitting:
		return "submitting"
	default:
		return "unknown"
	}
}

// IsOpen reports whether edits are accepted in s
func (s State) IsOpen() bool {
	return s == StateOpenEmpty || s == StateOpenEditing
}
