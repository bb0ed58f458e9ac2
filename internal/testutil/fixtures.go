package testutil

import (
	"fmt"

	"github.com/felipeleveke/gym-sub000/internal/domain"
)

// SessionFixture builds a startable session with the given shape: one
// exercise per entry, each with that many working sets carrying a target
// weight of 100 and target reps of 8. IDs are deterministic for assertions.
func SessionFixture(setsPerExercise ...int) *domain.Session {
	s := &domain.Session{
		ID:                 "sess-1",
		DefaultRestSeconds: 90,
	}
	for i, n := range setsPerExercise {
		e := &domain.Exercise{
			ID:        fmt.Sprintf("ex-%d", i+1),
			CatalogID: fmt.Sprintf("cat-%d", i+1),
			Name:      fmt.Sprintf("Exercise %d", i+1),
		}
		for j := 0; j < n; j++ {
			e.AddSet(&domain.Set{
				ID:           fmt.Sprintf("set-%d-%d", i+1, j+1),
				Kind:         domain.KindWorking,
				TargetWeight: domain.FloatPtr(100),
				TargetReps:   domain.IntPtr(8),
				State:        domain.SetIdle,
			})
		}
		s.AddExercise(e)
	}
	return s
}

// MeasureSet fills in the measured values a finished set would carry.
func MeasureSet(s *domain.Set, weight float64, reps, rir int) {
	s.MeasuredWeight = domain.FloatPtr(weight)
	s.MeasuredReps = domain.IntPtr(reps)
	s.MeasuredRIR = domain.IntPtr(rir)
	s.RecomputeDerived()
}
