package domain

import "math"

// Set is one planned or performed set within an exercise. Target fields come
// from the routine that seeded the session; measured fields are filled in as
// the set is performed. Nullable values are pointers: nil means "not entered".
type Set struct {
	ID         string
	ExerciseID string
	Ordinal    int // 1-based, contiguous within the exercise
	Kind       SetKind

	TargetWeight *float64
	TargetReps   *int
	TargetRIR    *int
	TargetRPE    *float64
	TargetTUT    *int // seconds under tension; >0 arms a countdown instead of a stopwatch
	TargetRest   *int // seconds

	MeasuredWeight   *float64
	MeasuredReps     *int
	MeasuredRIR      *int
	MeasuredRPE      *float64
	MeasuredDuration *int // seconds exercising
	MeasuredRest     *int // seconds rested, frozen at completion

	Notes string

	// Derived from measured weight/reps; nil whenever either input is
	// missing or zero. Recomputed via RecomputeDerived.
	EstimatedOneRM *float64
	PercentOfOneRM *float64

	State SetState
}

// EffectiveWeight is the weight the timer guards against: the measured weight
// when entered, otherwise the routine target.
func (s *Set) EffectiveWeight() *float64 {
	if s.MeasuredWeight != nil {
		return s.MeasuredWeight
	}
	return s.TargetWeight
}

// TUTSeconds returns the target time under tension, or 0 when none is set.
func (s *Set) TUTSeconds() int {
	return IntFromPtrWithDefault(0, s.TargetTUT)
}

// RecomputeDerived refreshes the estimated one-rep max and the percentage of
// it that the measured weight represents. Epley-style estimate:
//
//	1RM = w*r*0.03 + w
//	pct = w / 1RM * 100
//
// Both rounded to two decimals. If weight or reps is missing or zero the
// derived fields are cleared rather than producing NaN.
func (s *Set) RecomputeDerived() {
	if s.MeasuredWeight == nil || s.MeasuredReps == nil ||
		*s.MeasuredWeight <= 0 || *s.MeasuredReps <= 0 {
		s.EstimatedOneRM = nil
		s.PercentOfOneRM = nil
		return
	}
	w := *s.MeasuredWeight
	r := float64(*s.MeasuredReps)

	oneRM := round2(w*r*0.03 + w)
	pct := round2(w / oneRM * 100)
	s.EstimatedOneRM = &oneRM
	s.PercentOfOneRM = &pct
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
