package engine

import "fmt"

// GuardReason identifies why a transition was refused. The TUI uses it to
// explain a disabled control; nothing here is ever fatal.
type GuardReason string

const (
	ReasonMissingWeight  GuardReason = "MISSING_WEIGHT"
	ReasonMissingRepsRIR GuardReason = "MISSING_REPS_RIR"
	ReasonAnotherSetLive GuardReason = "ANOTHER_SET_LIVE"
	ReasonWrongState     GuardReason = "WRONG_STATE"
	ReasonUnknownSet     GuardReason = "UNKNOWN_SET"
)

// GuardError is returned when a user action does not satisfy a transition's
// precondition. Callers recover locally: the action becomes a no-op and the
// message is surfaced next to the control.
type GuardError struct {
	Reason GuardReason
	SetID  string
}

func (e *GuardError) Error() string {
	switch e.Reason {
	case ReasonMissingWeight:
		return "enter a weight before starting the set"
	case ReasonMissingRepsRIR:
		return "enter reps and RIR before finishing the set"
	case ReasonAnotherSetLive:
		return "another set is in progress"
	case ReasonWrongState:
		return fmt.Sprintf("set %s is not in a state that allows this", e.SetID)
	default:
		return fmt.Sprintf("set %s not found in session", e.SetID)
	}
}

func guardErr(reason GuardReason, setID string) *GuardError {
	return &GuardError{Reason: reason, SetID: setID}
}
