package domain

// SetState is the lifecycle state of a single set's timer.
type SetState string

const (
	SetIdle         SetState = "idle"
	SetTUTCountdown SetState = "tut_countdown"
	SetExercising   SetState = "exercising"
	SetResting      SetState = "resting"
	SetCompleted    SetState = "completed"
)

// Live reports whether the state counts as actively performing the set.
// Both the TUT countdown and the free stopwatch phase hold the "live" role.
func (s SetState) Live() bool {
	return s == SetExercising || s == SetTUTCountdown
}

type SetKind string

const (
	KindWarmup   SetKind = "warm_up"
	KindApproach SetKind = "approach"
	KindWorking  SetKind = "working"
	KindBackoff  SetKind = "back_off"
	KindBilbo    SetKind = "bilbo"
)

// ValidSetKinds is the canonical set of accepted set kind strings.
var ValidSetKinds = map[string]bool{
	"warm_up": true, "approach": true, "working": true,
	"back_off": true, "bilbo": true,
}
