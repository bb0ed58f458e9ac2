package domain

// Exercise is a session-scoped exercise: an ordered run of sets plus a
// reference to the catalog entry it was created from. Catalog fields
// (name, muscle groups) are read-only copies supplied by the routine source.
type Exercise struct {
	ID           string
	CatalogID    string
	Name         string
	MuscleGroups []string
	Notes        string

	// RestAfter overrides the rest seconds for this exercise's final set.
	RestAfter *int

	Sets []*Set
}

// AddSet appends a set and assigns it the next ordinal.
func (e *Exercise) AddSet(s *Set) {
	s.ExerciseID = e.ID
	s.Ordinal = len(e.Sets) + 1
	e.Sets = append(e.Sets, s)
}

// RemoveSet deletes the set with the given ID and reindexes the remaining
// ordinals so they stay a contiguous 1-based sequence.
func (e *Exercise) RemoveSet(setID string) bool {
	for i, s := range e.Sets {
		if s.ID == setID {
			e.Sets = append(e.Sets[:i], e.Sets[i+1:]...)
			e.reindex()
			return true
		}
	}
	return false
}

func (e *Exercise) reindex() {
	for i, s := range e.Sets {
		s.Ordinal = i + 1
	}
}

// LastSet returns the final set of the exercise, or nil when it has none.
func (e *Exercise) LastSet() *Set {
	if len(e.Sets) == 0 {
		return nil
	}
	return e.Sets[len(e.Sets)-1]
}

// IsLastSet reports whether setID names this exercise's final set.
func (e *Exercise) IsLastSet(setID string) bool {
	last := e.LastSet()
	return last != nil && last.ID == setID
}
