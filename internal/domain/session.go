package domain

import "time"

// Session is one in-progress (or just-finished) workout: an ordered run of
// exercises, session-wide timing defaults, and free-text metadata. It is
// mutated only from the single TUI event loop; nothing here is safe for
// concurrent use and nothing needs to be.
type Session struct {
	ID        string
	StartedAt *time.Time
	EndedAt   *time.Time

	// DefaultRestSeconds applies to any set without its own rest target.
	DefaultRestSeconds int

	Notes string
	Tags  []string

	Exercises []*Exercise

	// Provenance of the pre-population source, if any.
	SourceRoutineID   string
	SourceVariantID   string
	SourcePhaseLinkID string
}

// Startable reports whether the session has anything to run: at least one
// exercise, each with at least one set.
func (s *Session) Startable() bool {
	if len(s.Exercises) == 0 {
		return false
	}
	for _, e := range s.Exercises {
		if len(e.Sets) == 0 {
			return false
		}
	}
	return true
}

// FindSet locates a set by ID along with its owning exercise.
func (s *Session) FindSet(setID string) (*Exercise, *Set) {
	for _, e := range s.Exercises {
		for _, st := range e.Sets {
			if st.ID == setID {
				return e, st
			}
		}
	}
	return nil, nil
}

// FinalSet returns the last set of the last exercise, or nil.
func (s *Session) FinalSet() *Set {
	for i := len(s.Exercises) - 1; i >= 0; i-- {
		if last := s.Exercises[i].LastSet(); last != nil {
			return last
		}
	}
	return nil
}

// IsFinalSet reports whether setID names the session's overall last set.
// The final set skips the resting phase and completes directly.
func (s *Session) IsFinalSet(setID string) bool {
	final := s.FinalSet()
	return final != nil && final.ID == setID
}

// RestSecondsFor resolves the rest duration to arm after the given set:
// the set's own target, else the exercise's rest-after override when the set
// closes the exercise, else the session default.
func (s *Session) RestSecondsFor(e *Exercise, set *Set) int {
	if set.TargetRest != nil {
		return *set.TargetRest
	}
	if e != nil && e.IsLastSet(set.ID) && e.RestAfter != nil {
		return *e.RestAfter
	}
	return s.DefaultRestSeconds
}

// AddExercise appends an exercise to the session order.
func (s *Session) AddExercise(e *Exercise) {
	s.Exercises = append(s.Exercises, e)
}

// RemoveExercise drops the exercise with the given ID, preserving order of
// the rest.
func (s *Session) RemoveExercise(exerciseID string) bool {
	for i, e := range s.Exercises {
		if e.ID == exerciseID {
			s.Exercises = append(s.Exercises[:i], s.Exercises[i+1:]...)
			return true
		}
	}
	return false
}

// AllSets streams every set in session order.
func (s *Session) AllSets() []*Set {
	var out []*Set
	for _, e := range s.Exercises {
		out = append(out, e.Sets...)
	}
	return out
}
