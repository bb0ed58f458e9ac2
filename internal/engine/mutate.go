package engine

import "github.com/felipeleveke/gym-sub000/internal/domain"

// Mutations routed through the engine so every meaningful change re-derives
// dependent values and lands in the draft snapshot. The overlay writes the
// focused set's fields through these as the user types.

// SetMeasuredWeight records the weight for a set and refreshes its 1RM fields.
func (e *Engine) SetMeasuredWeight(setID string, w *float64) error {
	_, set := e.session.FindSet(setID)
	if set == nil {
		return guardErr(ReasonUnknownSet, setID)
	}
	set.MeasuredWeight = w
	set.RecomputeDerived()
	e.autosave()
	return nil
}

// SetMeasuredReps records the rep count for a set and refreshes its 1RM fields.
func (e *Engine) SetMeasuredReps(setID string, reps *int) error {
	_, set := e.session.FindSet(setID)
	if set == nil {
		return guardErr(ReasonUnknownSet, setID)
	}
	set.MeasuredReps = reps
	set.RecomputeDerived()
	e.autosave()
	return nil
}

// SetMeasuredRIR records reps-in-reserve for a set.
func (e *Engine) SetMeasuredRIR(setID string, rir *int) error {
	_, set := e.session.FindSet(setID)
	if set == nil {
		return guardErr(ReasonUnknownSet, setID)
	}
	set.MeasuredRIR = rir
	e.autosave()
	return nil
}

// SetMeasuredRPE records perceived exertion for a set.
func (e *Engine) SetMeasuredRPE(setID string, rpe *float64) error {
	_, set := e.session.FindSet(setID)
	if set == nil {
		return guardErr(ReasonUnknownSet, setID)
	}
	set.MeasuredRPE = rpe
	e.autosave()
	return nil
}

// SetSetNotes updates a set's free-text notes.
func (e *Engine) SetSetNotes(setID, notes string) error {
	_, set := e.session.FindSet(setID)
	if set == nil {
		return guardErr(ReasonUnknownSet, setID)
	}
	set.Notes = notes
	e.autosave()
	return nil
}

// SetSessionNotes updates the session's notes.
func (e *Engine) SetSessionNotes(notes string) {
	e.session.Notes = notes
	e.autosave()
}

// SetTags replaces the session's tags.
func (e *Engine) SetTags(tags []string) {
	e.session.Tags = tags
	e.autosave()
}

// SetDefaultRest updates the session-wide rest fallback in seconds.
func (e *Engine) SetDefaultRest(seconds int) {
	e.session.DefaultRestSeconds = seconds
	e.autosave()
}

// AddExercise appends an exercise to the session.
func (e *Engine) AddExercise(ex *domain.Exercise) {
	e.session.AddExercise(ex)
	e.autosave()
}

// RemoveExercise drops an exercise along with its sets' timers.
func (e *Engine) RemoveExercise(exerciseID string) {
	for _, ex := range e.session.Exercises {
		if ex.ID != exerciseID {
			continue
		}
		for _, s := range ex.Sets {
			delete(e.timers, s.ID)
			e.coord.OnSetComplete(s.ID)
		}
	}
	if e.session.RemoveExercise(exerciseID) {
		e.autosave()
	}
}

// AddSet appends a set to the named exercise; ordinals stay contiguous.
func (e *Engine) AddSet(exerciseID string, set *domain.Set) error {
	for _, ex := range e.session.Exercises {
		if ex.ID == exerciseID {
			if set.State == "" {
				set.State = domain.SetIdle
			}
			ex.AddSet(set)
			e.autosave()
			return nil
		}
	}
	return guardErr(ReasonUnknownSet, exerciseID)
}

// RemoveSet deletes a set, releasing any coordinator role and timer it held.
func (e *Engine) RemoveSet(setID string) {
	ex, set := e.session.FindSet(setID)
	if set == nil {
		return
	}
	delete(e.timers, setID)
	e.coord.OnSetComplete(setID)
	if ex.RemoveSet(setID) {
		e.autosave()
	}
}
