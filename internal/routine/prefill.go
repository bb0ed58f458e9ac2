package routine

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/felipeleveke/gym-sub000/internal/domain"
	"github.com/felipeleveke/gym-sub000/internal/history"
	"github.com/felipeleveke/gym-sub000/internal/submit"
)

// NewEmptySession creates a blank session with the configured rest default.
func NewEmptySession(defaultRestSeconds int) *domain.Session {
	return &domain.Session{
		ID:                 uuid.New().String(),
		DefaultRestSeconds: defaultRestSeconds,
	}
}

// SessionFromRoutine copies a routine's planned exercises and sets into a
// fresh session. Target values come across verbatim; measured values start
// empty and every set begins idle.
func SessionFromRoutine(r *Routine, defaultRestSeconds int) *domain.Session {
	s := NewEmptySession(defaultRestSeconds)
	s.SourceRoutineID = r.ID
	s.SourceVariantID = r.VariantID

	for _, re := range r.Exercises {
		e := &domain.Exercise{
			ID:           uuid.New().String(),
			CatalogID:    re.ExerciseID,
			Name:         re.Name,
			MuscleGroups: re.MuscleGroups,
			Notes:        re.Notes,
			RestAfter:    re.RestAfter,
		}
		for _, ps := range re.Sets {
			kind := domain.SetKind(ps.Kind)
			if !domain.ValidSetKinds[ps.Kind] {
				kind = domain.KindWorking
			}
			e.AddSet(&domain.Set{
				ID:           uuid.New().String(),
				Kind:         kind,
				TargetWeight: ps.TargetWeight,
				TargetReps:   ps.TargetReps,
				TargetRIR:    ps.TargetRIR,
				TargetRPE:    ps.TargetRPE,
				TargetTUT:    ps.TargetTUT,
				TargetRest:   ps.TargetRest,
				State:        domain.SetIdle,
			})
		}
		s.AddExercise(e)
	}
	return s
}

// SessionFromPrior rebuilds a session skeleton from a previously submitted
// one: same exercises and set counts, with the prior measured values carried
// over as the new targets.
func SessionFromPrior(entry *history.Entry, defaultRestSeconds int) (*domain.Session, error) {
	var prior submit.Payload
	if err := json.Unmarshal([]byte(entry.Payload), &prior); err != nil {
		return nil, fmt.Errorf("decoding prior session: %w", err)
	}

	s := NewEmptySession(defaultRestSeconds)
	for _, pe := range prior.Exercises {
		e := &domain.Exercise{
			ID:        uuid.New().String(),
			CatalogID: pe.ExerciseID,
		}
		for _, ps := range pe.Sets {
			kind := domain.SetKind(ps.SetType)
			if !domain.ValidSetKinds[ps.SetType] {
				kind = domain.KindWorking
			}
			e.AddSet(&domain.Set{
				ID:           uuid.New().String(),
				Kind:         kind,
				TargetWeight: ps.Weight,
				TargetReps:   ps.Reps,
				TargetRIR:    ps.RIR,
				TargetRPE:    ps.RPE,
				TargetRest:   ps.RestTime,
				State:        domain.SetIdle,
			})
		}
		s.AddExercise(e)
	}
	return s, nil
}
