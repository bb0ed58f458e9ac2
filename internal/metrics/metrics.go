// Package metrics derives training-load numbers from a session's measured
// values. Everything here is pure and recomputed on demand; nothing is
// cached in session state.
package metrics

import (
	"math"
	"time"

	"github.com/felipeleveke/gym-sub000/internal/domain"
)

// SetVolume is a single set's volume contribution: weight × reps.
// Sets without both values recorded contribute 0.
func SetVolume(s *domain.Set) float64 {
	if s.MeasuredWeight == nil || s.MeasuredReps == nil {
		return 0
	}
	return *s.MeasuredWeight * float64(*s.MeasuredReps)
}

// ExerciseVolume sums set volumes within one exercise.
func ExerciseVolume(e *domain.Exercise) float64 {
	var total float64
	for _, s := range e.Sets {
		total += SetVolume(s)
	}
	return total
}

// SessionVolume sums set volumes across the whole session.
func SessionVolume(sess *domain.Session) float64 {
	var total float64
	for _, e := range sess.Exercises {
		total += ExerciseVolume(e)
	}
	return total
}

// TotalExerciseSeconds sums measured exercise durations.
func TotalExerciseSeconds(sess *domain.Session) int {
	var total int
	for _, s := range sess.AllSets() {
		if s.MeasuredDuration != nil {
			total += *s.MeasuredDuration
		}
	}
	return total
}

// TotalRestSeconds sums measured rest durations.
func TotalRestSeconds(sess *domain.Session) int {
	var total int
	for _, s := range sess.AllSets() {
		if s.MeasuredRest != nil {
			total += *s.MeasuredRest
		}
	}
	return total
}

// SessionDuration is the span between the session's start and end stamps,
// or 0 when either is missing.
func SessionDuration(sess *domain.Session) time.Duration {
	if sess.StartedAt == nil || sess.EndedAt == nil {
		return 0
	}
	return sess.EndedAt.Sub(*sess.StartedAt)
}

// RelativeDensity is exercise time over total accounted time: the full
// session span when both timestamps exist, otherwise exercise + rest time.
// Returns 0 instead of dividing by zero.
func RelativeDensity(sess *domain.Session) float64 {
	work := float64(TotalExerciseSeconds(sess))
	denom := SessionDuration(sess).Seconds()
	if denom <= 0 {
		denom = work + float64(TotalRestSeconds(sess))
	}
	if denom <= 0 {
		return 0
	}
	return work / denom
}

// AbsoluteDensity is session volume per minute of session duration.
// Returns 0 when the duration is unknown or zero.
func AbsoluteDensity(sess *domain.Session) float64 {
	minutes := SessionDuration(sess).Minutes()
	if minutes <= 0 {
		return 0
	}
	return SessionVolume(sess) / minutes
}

// DurationMinutes is the session span rounded to whole minutes, as submitted
// in the persistence payload.
func DurationMinutes(sess *domain.Session) int {
	return int(math.Round(SessionDuration(sess).Minutes()))
}
