package lifecycle

// State is the construction state of a Runtime.
type State int32

const (
	StateUninitialized State = iota
	StateInitializing
	StateReady
	StateFinalizing
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitializing:
		return "initializing"
	case StateReady:
		return "ready"
	case StateFinalizing:
		return "finalizing"
	default:
		return "unknown"
	}
}
