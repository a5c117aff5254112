package llm

// State describes where a multi-model generation attempt stands. The
// transition function is pure so the chain logic is testable independent of
// any concurrency primitive.
type State int

const (
	StatePending State = iota
	StateTrying
	StateSucceeded
	StateExhausted
	StateTimedOut
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateTrying:
		return "trying"
	case StateSucceeded:
		return "succeeded"
	case StateExhausted:
		return "exhausted"
	case StateTimedOut:
		return "timed-out"
	default:
		return "unknown"
	}
}

// Event advances the chain state.
type Event int

const (
	EventStart Event = iota
	EventAttemptFailed
	EventAttemptSucceeded
	EventDeadline
)

// ChainState pairs the state with the index of the model being tried.
type ChainState struct {
	State State
	Index int
}

// Next returns the state after ev, given modelCount candidates. Terminal
// states absorb every event except the deadline, which always wins.
func (s ChainState) Next(ev Event, modelCount int) ChainState {
	if ev == EventDeadline {
		return ChainState{State: StateTimedOut, Index: s.Index}
	}

	switch s.State {
	case StatePending:
		if ev == EventStart {
			if modelCount == 0 {
				return ChainState{State: StateExhausted}
			}
			return ChainState{State: StateTrying, Index: 0}
		}
	case StateTrying:
		switch ev {
		case EventAttemptSucceeded:
			return ChainState{State: StateSucceeded, Index: s.Index}
		case EventAttemptFailed:
			if s.Index+1 >= modelCount {
				return ChainState{State: StateExhausted, Index: s.Index}
			}
			return ChainState{State: StateTrying, Index: s.Index + 1}
		}
	}
	return s
}
