// Package draft persists a full snapshot of the in-progress session so it
// survives a crash or reload. Snapshots are idempotent overwrites of a single
// row; the store never mutates the session it reads.
package draft

import (
	"time"

	"github.com/felipeleveke/gym-sub000/internal/domain"
)

// Snapshot is the serialized form of an in-progress session.
type Snapshot struct {
	SessionID          string             `json:"sessionId"`
	Exercises          []SnapshotExercise `json:"exercises"`
	StartTime          *time.Time         `json:"startTime"`
	EndTime            *time.Time         `json:"endTime"`
	Notes              string             `json:"notes"`
	Tags               []string           `json:"tags"`
	DefaultRestSeconds int                `json:"defaultRestSeconds"`
	SourceRoutineRef   string             `json:"sourceRoutineRef"`
	SourceVariantRef   string             `json:"sourceVariantRef"`
	SourcePhaseLinkRef string             `json:"sourcePhaseLinkRef"`
	LastSavedAt        time.Time          `json:"lastSavedAt"`
}

type SnapshotExercise struct {
	ID                string        `json:"id"`
	ExerciseRef       string        `json:"exerciseRef"`
	Name              string        `json:"name"`
	MuscleGroups      []string      `json:"muscleGroups"`
	Notes             string        `json:"notes"`
	RestAfterExercise *int          `json:"restAfterExercise"`
	Sets              []SnapshotSet `json:"sets"`
}

type SnapshotSet struct {
	ID               string   `json:"id"`
	Ordinal          int      `json:"ordinal"`
	Kind             string   `json:"kind"`
	TargetWeight     *float64 `json:"targetWeight"`
	TargetReps       *int     `json:"targetReps"`
	TargetRIR        *int     `json:"targetRIR"`
	TargetRPE        *float64 `json:"targetRPE"`
	TargetTUT        *int     `json:"targetTUT"`
	TargetRest       *int     `json:"targetRest"`
	MeasuredWeight   *float64 `json:"measuredWeight"`
	MeasuredReps     *int     `json:"measuredReps"`
	MeasuredRIR      *int     `json:"measuredRIR"`
	MeasuredRPE      *float64 `json:"measuredRPE"`
	MeasuredDuration *int     `json:"measuredDuration"`
	MeasuredRest     *int     `json:"measuredRest"`
	Notes            string   `json:"notes"`
	State            string   `json:"state"`
}

// Take captures the session into a snapshot stamped with savedAt.
func Take(s *domain.Session, savedAt time.Time) *Snapshot {
	snap := &Snapshot{
		SessionID:          s.ID,
		StartTime:          s.StartedAt,
		EndTime:            s.EndedAt,
		Notes:              s.Notes,
		Tags:               s.Tags,
		DefaultRestSeconds: s.DefaultRestSeconds,
		SourceRoutineRef:   s.SourceRoutineID,
		SourceVariantRef:   s.SourceVariantID,
		SourcePhaseLinkRef: s.SourcePhaseLinkID,
		LastSavedAt:        savedAt,
	}
	for _, e := range s.Exercises {
		se := SnapshotExercise{
			ID:                e.ID,
			ExerciseRef:       e.CatalogID,
			Name:              e.Name,
			MuscleGroups:      e.MuscleGroups,
			Notes:             e.Notes,
			RestAfterExercise: e.RestAfter,
		}
		for _, st := range e.Sets {
			se.Sets = append(se.Sets, SnapshotSet{
				ID:               st.ID,
				Ordinal:          st.Ordinal,
				Kind:             string(st.Kind),
				TargetWeight:     st.TargetWeight,
				TargetReps:       st.TargetReps,
				TargetRIR:        st.TargetRIR,
				TargetRPE:        st.TargetRPE,
				TargetTUT:        st.TargetTUT,
				TargetRest:       st.TargetRest,
				MeasuredWeight:   st.MeasuredWeight,
				MeasuredReps:     st.MeasuredReps,
				MeasuredRIR:      st.MeasuredRIR,
				MeasuredRPE:      st.MeasuredRPE,
				MeasuredDuration: st.MeasuredDuration,
				MeasuredRest:     st.MeasuredRest,
				Notes:            st.Notes,
				State:            string(st.State),
			})
		}
		snap.Exercises = append(snap.Exercises, se)
	}
	return snap
}

// Restore rebuilds a session from a snapshot. Field values come back
// verbatim; derived 1RM fields are recomputed from the measured values.
func (snap *Snapshot) Restore() *domain.Session {
	s := &domain.Session{
		ID:                 snap.SessionID,
		StartedAt:          snap.StartTime,
		EndedAt:            snap.EndTime,
		Notes:              snap.Notes,
		Tags:               snap.Tags,
		DefaultRestSeconds: snap.DefaultRestSeconds,
		SourceRoutineID:    snap.SourceRoutineRef,
		SourceVariantID:    snap.SourceVariantRef,
		SourcePhaseLinkID:  snap.SourcePhaseLinkRef,
	}
	for _, se := range snap.Exercises {
		e := &domain.Exercise{
			ID:           se.ID,
			CatalogID:    se.ExerciseRef,
			Name:         se.Name,
			MuscleGroups: se.MuscleGroups,
			Notes:        se.Notes,
			RestAfter:    se.RestAfterExercise,
		}
		for _, ss := range se.Sets {
			st := &domain.Set{
				ID:               ss.ID,
				ExerciseID:       se.ID,
				Ordinal:          ss.Ordinal,
				Kind:             domain.SetKind(ss.Kind),
				TargetWeight:     ss.TargetWeight,
				TargetReps:       ss.TargetReps,
				TargetRIR:        ss.TargetRIR,
				TargetRPE:        ss.TargetRPE,
				TargetTUT:        ss.TargetTUT,
				TargetRest:       ss.TargetRest,
				MeasuredWeight:   ss.MeasuredWeight,
				MeasuredReps:     ss.MeasuredReps,
				MeasuredRIR:      ss.MeasuredRIR,
				MeasuredRPE:      ss.MeasuredRPE,
				MeasuredDuration: ss.MeasuredDuration,
				MeasuredRest:     ss.MeasuredRest,
				Notes:            ss.Notes,
				State:            domain.SetState(ss.State),
			}
			st.RecomputeDerived()
			e.Sets = append(e.Sets, st)
		}
		s.Exercises = append(s.Exercises, e)
	}
	return s
}
