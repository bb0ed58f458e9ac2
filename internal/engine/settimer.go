package engine

import "github.com/felipeleveke/gym-sub000/internal/domain"

// SetTimer drives one set's lifecycle:
//
//	idle → tut_countdown → exercising-equivalent → resting → completed
//	idle → exercising    → resting → completed
//
// A set with a TUT target counts down; one without runs a stopwatch. The rest
// phase always runs an elapsed stopwatch; the rest countdown is cosmetic and
// expiring does not stop the stopwatch. All durations are whole seconds,
// advanced by the engine's once-per-second tick.
type SetTimer struct {
	set *domain.Set

	tutRemaining int
	elapsed      int // seconds spent exercising
	restElapsed  int // seconds spent resting so far

	restCountdownOn   bool
	restCountdownLeft int
}

func newSetTimer(set *domain.Set) *SetTimer {
	return &SetTimer{set: set}
}

// Set returns the set this timer drives.
func (t *SetTimer) Set() *domain.Set { return t.set }

// State mirrors the underlying set's lifecycle state.
func (t *SetTimer) State() domain.SetState { return t.set.State }

// TUTRemaining is the seconds left on the TUT countdown.
func (t *SetTimer) TUTRemaining() int { return t.tutRemaining }

// Elapsed is the seconds spent in the exercising phase so far.
func (t *SetTimer) Elapsed() int { return t.elapsed }

// RestElapsed is the seconds spent resting so far.
func (t *SetTimer) RestElapsed() int { return t.restElapsed }

// RestCountdownLeft is the seconds left on the cosmetic rest countdown,
// or 0 once expired or when no countdown was armed.
func (t *SetTimer) RestCountdownLeft() int {
	if !t.restCountdownOn {
		return 0
	}
	return t.restCountdownLeft
}

// start moves the set out of idle. With a positive TUT target the set enters
// the countdown state seeded with the target; otherwise it goes straight to
// exercising with a stopwatch from zero.
func (t *SetTimer) start() {
	if tut := t.set.TUTSeconds(); tut > 0 {
		t.set.State = domain.SetTUTCountdown
		t.tutRemaining = tut
		return
	}
	t.set.State = domain.SetExercising
	t.elapsed = 0
}

// beginRest records the measured exercise duration and arms the rest phase.
// restSeconds seeds the cosmetic countdown; pass 0 to rest without one.
func (t *SetTimer) beginRest(duration, restSeconds int) {
	t.set.MeasuredDuration = &duration
	t.set.State = domain.SetResting
	t.restElapsed = 0
	t.restCountdownOn = restSeconds > 0
	t.restCountdownLeft = restSeconds
}

// complete finalizes the set from any state, freezing measured values. A set
// completed out of the resting phase keeps the stopwatch value as its
// measured rest; a set completed while live keeps its elapsed time as the
// measured duration (unless a TUT expiry already recorded one).
func (t *SetTimer) complete() {
	switch t.set.State {
	case domain.SetResting:
		rest := t.restElapsed
		t.set.MeasuredRest = &rest
	case domain.SetExercising, domain.SetTUTCountdown:
		if t.set.MeasuredDuration == nil {
			d := t.elapsed
			t.set.MeasuredDuration = &d
		}
	}
	t.set.State = domain.SetCompleted
	t.restCountdownOn = false
}

// tickEvents reports what a one-second tick triggered.
type tickEvents struct {
	tutReachedZero    bool
	restCountdownZero bool
}

// tick advances the timer by one second. The returned events tell the engine
// which side effects (alarm, auto-transition) the tick calls for; the timer
// itself never plays sounds or touches other sets.
func (t *SetTimer) tick() tickEvents {
	var ev tickEvents
	switch t.set.State {
	case domain.SetTUTCountdown:
		t.tutRemaining--
		if t.tutRemaining <= 0 {
			t.tutRemaining = 0
			ev.tutReachedZero = true
		}
	case domain.SetExercising:
		t.elapsed++
	case domain.SetResting:
		t.restElapsed++
		if t.restCountdownOn {
			t.restCountdownLeft--
			if t.restCountdownLeft <= 0 {
				// The countdown is cosmetic: ring the alarm but keep
				// the rest stopwatch running.
				t.restCountdownOn = false
				t.restCountdownLeft = 0
				ev.restCountdownZero = true
			}
		}
	}
	return ev
}
