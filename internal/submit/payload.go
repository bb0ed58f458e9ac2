// Package submit converts a finished session into the persistence endpoint's
// payload and delivers it. Submission failures leave the session and its
// draft untouched so the user can retry.
package submit

import (
	"errors"
	"time"

	"github.com/felipeleveke/gym-sub000/internal/domain"
	"github.com/felipeleveke/gym-sub000/internal/metrics"
)

// ErrNotStarted is returned when the session has no start timestamp.
var ErrNotStarted = errors.New("session has no start time")

// ErrEndBeforeStart rejects a payload whose end does not come after its start.
var ErrEndBeforeStart = errors.New("session end must be after its start")

// Payload is the flattened session accepted by the persistence endpoint.
type Payload struct {
	Date      string            `json:"date"`
	Duration  int               `json:"duration"` // whole minutes
	StartTime time.Time         `json:"start_time"`
	EndTime   time.Time         `json:"end_time"`
	Notes     string            `json:"notes"`
	Tags      []string          `json:"tags"`
	Exercises []ExercisePayload `json:"exercises"`
}

type ExercisePayload struct {
	ExerciseID string       `json:"exercise_id"`
	OrderIndex int          `json:"order_index"`
	Notes      string       `json:"notes"`
	Sets       []SetPayload `json:"sets"`
}

type SetPayload struct {
	SetNumber int      `json:"set_number"`
	Weight    *float64 `json:"weight"`
	Reps      *int     `json:"reps"`
	Duration  *int     `json:"duration"`
	RestTime  *int     `json:"rest_time"`
	RIR       *int     `json:"rir"`
	RPE       *float64 `json:"rpe"`
	Notes     string   `json:"notes"`
	SetType   string   `json:"set_type"`
}

// Volume is the total weight×reps across the payload's measured sets.
func (p *Payload) Volume() float64 {
	var total float64
	for _, ep := range p.Exercises {
		for _, sp := range ep.Sets {
			if sp.Weight != nil && sp.Reps != nil {
				total += *sp.Weight * float64(*sp.Reps)
			}
		}
	}
	return total
}

// SetCount counts every set in the payload, measured or not.
func (p *Payload) SetCount() int {
	var n int
	for _, ep := range p.Exercises {
		n += len(ep.Sets)
	}
	return n
}

// Build flattens the session into a Payload. A missing end timestamp is
// auto-stamped with now before validation; end ≤ start is rejected here,
// before anything touches the network.
func Build(s *domain.Session, now time.Time) (*Payload, error) {
	if s.StartedAt == nil {
		return nil, ErrNotStarted
	}
	if s.EndedAt == nil {
		end := now
		s.EndedAt = &end
	}
	if !s.EndedAt.After(*s.StartedAt) {
		return nil, ErrEndBeforeStart
	}

	p := &Payload{
		Date:      s.StartedAt.Format("2006-01-02"),
		Duration:  metrics.DurationMinutes(s),
		StartTime: *s.StartedAt,
		EndTime:   *s.EndedAt,
		Notes:     s.Notes,
		Tags:      s.Tags,
	}
	for i, e := range s.Exercises {
		ep := ExercisePayload{
			ExerciseID: e.CatalogID,
			OrderIndex: i + 1,
			Notes:      e.Notes,
		}
		for _, set := range e.Sets {
			ep.Sets = append(ep.Sets, SetPayload{
				SetNumber: set.Ordinal,
				Weight:    set.MeasuredWeight,
				Reps:      set.MeasuredReps,
				Duration:  set.MeasuredDuration,
				RestTime:  set.MeasuredRest,
				RIR:       set.MeasuredRIR,
				RPE:       set.MeasuredRPE,
				Notes:     set.Notes,
				SetType:   string(set.Kind),
			})
		}
		p.Exercises = append(p.Exercises, ep)
	}
	return p, nil
}
