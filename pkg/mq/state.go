package mq

// State is the lifecycle state of a queue.
type State int

const (
	// StateOpen accepts enqueues and dequeues.
	StateOpen State = iota
	// StateDraining is closed to producers with messages still pending.
	StateDraining
	// StateClosed is closed and empty. Terminal.
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateDraining:
		return "draining"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// MarshalText renders the state by name in JSON and logs.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
