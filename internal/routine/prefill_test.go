package routine

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felipeleveke/gym-sub000/internal/domain"
	"github.com/felipeleveke/gym-sub000/internal/history"
	"github.com/felipeleveke/gym-sub000/internal/submit"
)

func sampleRoutine() *Routine {
	return &Routine{
		ID:        "rt-push-a",
		VariantID: "heavy",
		Name:      "Push A",
		Exercises: []Exercise{
			{
				ExerciseID: "cat-bench",
				Name:       "Bench Press",
				RestAfter:  domain.IntPtr(180),
				Sets: []PlannedSet{
					{Kind: "warm_up", TargetWeight: domain.FloatPtr(60), TargetReps: domain.IntPtr(10)},
					{Kind: "working", TargetWeight: domain.FloatPtr(100), TargetReps: domain.IntPtr(5), TargetRIR: domain.IntPtr(2), TargetRest: domain.IntPtr(150)},
					{Kind: "made_up_kind", TargetWeight: domain.FloatPtr(80), TargetReps: domain.IntPtr(8)},
				},
			},
			{
				ExerciseID: "cat-ohp",
				Name:       "Overhead Press",
				Sets: []PlannedSet{
					{Kind: "working", TargetWeight: domain.FloatPtr(50), TargetReps: domain.IntPtr(8), TargetTUT: domain.IntPtr(40)},
				},
			},
		},
	}
}

func TestSessionFromRoutine(t *testing.T) {
	s := SessionFromRoutine(sampleRoutine(), 120)

	assert.NotEmpty(t, s.ID)
	assert.Equal(t, "rt-push-a", s.SourceRoutineID)
	assert.Equal(t, "heavy", s.SourceVariantID)
	assert.Equal(t, 120, s.DefaultRestSeconds)
	assert.True(t, s.Startable())

	require.Len(t, s.Exercises, 2)
	bench := s.Exercises[0]
	assert.Equal(t, "cat-bench", bench.CatalogID)
	assert.Equal(t, domain.IntPtr(180), bench.RestAfter)
	require.Len(t, bench.Sets, 3)

	assert.Equal(t, domain.KindWarmup, bench.Sets[0].Kind)
	assert.Equal(t, 1, bench.Sets[0].Ordinal)
	assert.Equal(t, domain.SetIdle, bench.Sets[0].State)

	working := bench.Sets[1]
	assert.Equal(t, 2, working.Ordinal)
	assert.Equal(t, domain.FloatPtr(100), working.TargetWeight)
	assert.Equal(t, domain.IntPtr(150), working.TargetRest)
	assert.Nil(t, working.MeasuredWeight, "measured values start empty")

	assert.Equal(t, domain.KindWorking, bench.Sets[2].Kind, "unknown kinds fall back to working")

	ohp := s.Exercises[1]
	assert.Equal(t, domain.IntPtr(40), ohp.Sets[0].TargetTUT)
}

func TestSessionFromPrior(t *testing.T) {
	prior := &submit.Payload{
		Date: "2026-08-28",
		Exercises: []submit.ExercisePayload{
			{
				ExerciseID: "cat-squat",
				OrderIndex: 1,
				Sets: []submit.SetPayload{
					{SetNumber: 1, Weight: domain.FloatPtr(140), Reps: domain.IntPtr(5), RIR: domain.IntPtr(2), RestTime: domain.IntPtr(180), SetType: "working"},
					{SetNumber: 2, Weight: domain.FloatPtr(120), Reps: domain.IntPtr(8), SetType: "back_off"},
				},
			},
		},
	}
	raw, err := json.Marshal(prior)
	require.NoError(t, err)
	entry := &history.Entry{ID: "hist-1", Date: time.Now(), Payload: string(raw)}

	s, err := SessionFromPrior(entry, 90)
	require.NoError(t, err)
	require.Len(t, s.Exercises, 1)
	assert.Equal(t, "cat-squat", s.Exercises[0].CatalogID)

	sets := s.Exercises[0].Sets
	require.Len(t, sets, 2)
	assert.Equal(t, domain.FloatPtr(140), sets[0].TargetWeight, "prior measured becomes new target")
	assert.Equal(t, domain.IntPtr(180), sets[0].TargetRest)
	assert.Equal(t, domain.KindBackoff, sets[1].Kind)
	assert.Nil(t, sets[0].MeasuredWeight)
	assert.Equal(t, domain.SetIdle, sets[0].State)
}

func TestSessionFromPrior_BadPayload(t *testing.T) {
	entry := &history.Entry{ID: "hist-1", Payload: "{not json"}
	_, err := SessionFromPrior(entry, 90)
	assert.Error(t, err)
}

func TestNewEmptySession(t *testing.T) {
	s := NewEmptySession(120)
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, 120, s.DefaultRestSeconds)
	assert.False(t, s.Startable(), "no sets yet")
}
