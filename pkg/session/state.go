package session

// State is the lifecycle phase of a Session.
type State int

const (
	// StateUninitialized is the phase before a successful Setup.
	// No engine resources are held.
	StateUninitialized State = iota
	// StateReady is the phase in which frames are accepted.
	StateReady
	// StateFinalized is terminal. The engine handle has been released
	// and no further operations are accepted.
	StateFinalized
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateReady:
		return "ready"
	case StateFinalized:
		return "finalized"
	default:
		return "unknown"
	}
}
