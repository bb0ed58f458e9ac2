package engine

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felipeleveke/gym-sub000/internal/domain"
	"github.com/felipeleveke/gym-sub000/internal/testutil"
)

type spyAlarm struct {
	mu    sync.Mutex
	plays int
	err   error
}

func (a *spyAlarm) Play() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.plays++
	return a.err
}

func (a *spyAlarm) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.plays
}

type spySaver struct {
	saves int
}

func (s *spySaver) Autosave(_ *domain.Session) { s.saves++ }

// ticks advances the engine n simulated seconds.
func ticks(e *Engine, n int) {
	for i := 0; i < n; i++ {
		e.Tick()
	}
}

// assertAtMostOneLive checks the coordinator invariant across all sets.
func assertAtMostOneLive(t *testing.T, e *Engine) {
	t.Helper()
	live := 0
	for _, set := range e.Session().AllSets() {
		if set.State.Live() {
			live++
		}
	}
	assert.LessOrEqual(t, live, 1, "more than one set live")
}

func TestStartSet_WeightGuard(t *testing.T) {
	sess := testutil.SessionFixture(1)
	sess.Exercises[0].Sets[0].TargetWeight = nil
	e := New(sess)

	err := e.StartSet("set-1-1")
	var g *GuardError
	require.ErrorAs(t, err, &g)
	assert.Equal(t, ReasonMissingWeight, g.Reason)
	assert.Equal(t, domain.SetIdle, sess.Exercises[0].Sets[0].State, "refused start is a no-op")
}

func TestStartSet_ZeroWeightRefused(t *testing.T) {
	sess := testutil.SessionFixture(1)
	sess.Exercises[0].Sets[0].TargetWeight = domain.FloatPtr(0)
	e := New(sess)

	err := e.StartSet("set-1-1")
	var g *GuardError
	require.ErrorAs(t, err, &g)
	assert.Equal(t, ReasonMissingWeight, g.Reason)
}

func TestStartSet_AnotherSetLive(t *testing.T) {
	sess := testutil.SessionFixture(2)
	e := New(sess)

	require.NoError(t, e.StartSet("set-1-1"))
	err := e.StartSet("set-1-2")
	var g *GuardError
	require.ErrorAs(t, err, &g)
	assert.Equal(t, ReasonAnotherSetLive, g.Reason)

	assertAtMostOneLive(t, e)
	assert.Equal(t, "set-1-1", e.Coordinator().LiveSetID())
}

func TestStartSet_StampsSessionStart(t *testing.T) {
	sess := testutil.SessionFixture(2)
	clock := NewManualClock(time.Date(2026, 8, 31, 18, 0, 0, 0, time.UTC))
	e := New(sess, WithClock(clock))

	require.Nil(t, sess.StartedAt)
	require.NoError(t, e.StartSet("set-1-1"))
	require.NotNil(t, sess.StartedAt)
	assert.Equal(t, clock.Now(), *sess.StartedAt)
}

func TestStopSet_RepsRIRGuard(t *testing.T) {
	sess := testutil.SessionFixture(2)
	e := New(sess)
	require.NoError(t, e.StartSet("set-1-1"))

	// Reps present, RIR missing: both resting and completed paths refused.
	require.NoError(t, e.SetMeasuredReps("set-1-1", domain.IntPtr(8)))
	err := e.StopSet("set-1-1")
	var g *GuardError
	require.ErrorAs(t, err, &g)
	assert.Equal(t, ReasonMissingRepsRIR, g.Reason)
	assert.Equal(t, domain.SetExercising, sess.Exercises[0].Sets[0].State)
}

func TestStopSet_EntersRestingWithRecordedDuration(t *testing.T) {
	sess := testutil.SessionFixture(2)
	e := New(sess)
	require.NoError(t, e.StartSet("set-1-1"))
	ticks(e, 42)

	testutil.MeasureSet(sess.Exercises[0].Sets[0], 100, 8, 2)
	require.NoError(t, e.StopSet("set-1-1"))

	set := sess.Exercises[0].Sets[0]
	assert.Equal(t, domain.SetResting, set.State)
	require.NotNil(t, set.MeasuredDuration)
	assert.Equal(t, 42, *set.MeasuredDuration)
	assert.Equal(t, "set-1-1", e.Coordinator().RestingSetID())
	assert.Empty(t, e.Coordinator().LiveSetID())
}

func TestStopSet_FinalSetCompletesDirectly(t *testing.T) {
	sess := testutil.SessionFixture(1)
	e := New(sess)
	require.NoError(t, e.StartSet("set-1-1"))
	ticks(e, 10)

	testutil.MeasureSet(sess.Exercises[0].Sets[0], 100, 8, 2)
	require.NoError(t, e.StopSet("set-1-1"))

	set := sess.Exercises[0].Sets[0]
	assert.Equal(t, domain.SetCompleted, set.State)
	assert.Nil(t, set.MeasuredRest, "final set never rests")
	assert.Empty(t, e.Coordinator().LiveSetID())
	assert.Empty(t, e.Coordinator().RestingSetID())
}

func TestTUT_AutoTransitionAtExactlyTarget(t *testing.T) {
	sess := testutil.SessionFixture(2)
	set := sess.Exercises[0].Sets[0]
	set.TargetTUT = domain.IntPtr(30)
	alarm := &spyAlarm{}
	e := New(sess, WithAlarm(alarm))

	require.NoError(t, e.StartSet(set.ID))
	assert.Equal(t, domain.SetTUTCountdown, set.State)

	ticks(e, 29)
	assert.Equal(t, domain.SetTUTCountdown, set.State, "still counting at 29s")
	assert.Equal(t, 1, e.TimerFor(set.ID).TUTRemaining())

	ticks(e, 1)
	assert.Equal(t, domain.SetResting, set.State, "auto-transition at exactly 30s")
	require.NotNil(t, set.MeasuredDuration)
	assert.Equal(t, 30, *set.MeasuredDuration)

	assert.Eventually(t, func() bool { return alarm.count() == 1 },
		time.Second, 5*time.Millisecond, "alarm fires on TUT zero")
}

func TestTUT_FinalSetCompletesAtZero(t *testing.T) {
	sess := testutil.SessionFixture(1)
	set := sess.Exercises[0].Sets[0]
	set.TargetTUT = domain.IntPtr(5)
	e := New(sess)

	require.NoError(t, e.StartSet(set.ID))
	ticks(e, 5)

	assert.Equal(t, domain.SetCompleted, set.State)
	require.NotNil(t, set.MeasuredDuration)
	assert.Equal(t, 5, *set.MeasuredDuration)
	assert.Empty(t, e.Coordinator().LiveSetID())
}

func TestRestCountdown_IsCosmetic(t *testing.T) {
	// The visual countdown expiring rings the alarm but must not stop the
	// rest stopwatch: rest can legitimately run long. Intentional behavior,
	// not an oversight.
	sess := testutil.SessionFixture(2)
	sess.Exercises[0].Sets[0].TargetRest = domain.IntPtr(3)
	alarm := &spyAlarm{}
	e := New(sess, WithAlarm(alarm))

	require.NoError(t, e.StartSet("set-1-1"))
	testutil.MeasureSet(sess.Exercises[0].Sets[0], 100, 8, 2)
	require.NoError(t, e.StopSet("set-1-1"))

	ticks(e, 3)
	assert.Eventually(t, func() bool { return alarm.count() == 1 },
		time.Second, 5*time.Millisecond, "alarm at countdown zero")
	assert.Equal(t, domain.SetResting, sess.Exercises[0].Sets[0].State)

	ticks(e, 4)
	timer := e.TimerFor("set-1-1")
	assert.Equal(t, 7, timer.RestElapsed(), "stopwatch keeps running past the countdown")
	assert.Equal(t, 0, timer.RestCountdownLeft())
	assert.Equal(t, 1, alarm.count(), "alarm rings once, not every second")
}

func TestRestCountdown_Disabled(t *testing.T) {
	sess := testutil.SessionFixture(2)
	sess.Exercises[0].Sets[0].TargetRest = domain.IntPtr(3)
	alarm := &spyAlarm{}
	e := New(sess, WithAlarm(alarm), WithRestCountdown(false))

	require.NoError(t, e.StartSet("set-1-1"))
	testutil.MeasureSet(sess.Exercises[0].Sets[0], 100, 8, 2)
	require.NoError(t, e.StopSet("set-1-1"))

	timer := e.TimerFor("set-1-1")
	assert.Equal(t, 0, timer.RestCountdownLeft(), "no countdown armed when disabled")

	ticks(e, 5)
	assert.Equal(t, 5, timer.RestElapsed(), "rest stopwatch runs regardless")
	assert.Zero(t, alarm.count(), "no countdown, no alarm")
}

func TestStartSet_FinalizesRestingSetAtomically(t *testing.T) {
	sess := testutil.SessionFixture(2)
	e := New(sess)

	require.NoError(t, e.StartSet("set-1-1"))
	testutil.MeasureSet(sess.Exercises[0].Sets[0], 100, 8, 2)
	require.NoError(t, e.StopSet("set-1-1"))
	ticks(e, 7) // rest for 7 seconds

	require.NoError(t, e.StartSet("set-1-2"))

	a := sess.Exercises[0].Sets[0]
	assert.Equal(t, domain.SetCompleted, a.State, "resting set forcibly finalized")
	require.NotNil(t, a.MeasuredRest)
	assert.Equal(t, 7, *a.MeasuredRest, "rest frozen at stopwatch value when B started")

	assert.Equal(t, "set-1-2", e.Coordinator().LiveSetID())
	assert.Empty(t, e.Coordinator().RestingSetID())
	assertAtMostOneLive(t, e)
}

func TestCompleteSet_FromResting(t *testing.T) {
	sess := testutil.SessionFixture(2)
	e := New(sess)

	require.NoError(t, e.StartSet("set-1-1"))
	testutil.MeasureSet(sess.Exercises[0].Sets[0], 100, 8, 2)
	require.NoError(t, e.StopSet("set-1-1"))
	ticks(e, 12)

	require.NoError(t, e.CompleteSet("set-1-1"))
	set := sess.Exercises[0].Sets[0]
	assert.Equal(t, domain.SetCompleted, set.State)
	require.NotNil(t, set.MeasuredRest)
	assert.Equal(t, 12, *set.MeasuredRest)

	// Completing again is a no-op, not an error.
	require.NoError(t, e.CompleteSet("set-1-1"))
	assert.Equal(t, 12, *set.MeasuredRest)
}

func TestCompleteSet_FromExercisingFreezesDuration(t *testing.T) {
	sess := testutil.SessionFixture(2)
	e := New(sess)
	require.NoError(t, e.StartSet("set-1-1"))
	ticks(e, 25)

	require.NoError(t, e.CompleteSet("set-1-1"))
	set := sess.Exercises[0].Sets[0]
	assert.Equal(t, domain.SetCompleted, set.State)
	require.NotNil(t, set.MeasuredDuration)
	assert.Equal(t, 25, *set.MeasuredDuration)
	assert.Empty(t, e.Coordinator().LiveSetID())
}

func TestFocusedSet_OnlyWhileLive(t *testing.T) {
	sess := testutil.SessionFixture(2)
	e := New(sess)

	_, set := e.FocusedSet()
	assert.Nil(t, set, "nothing focused before a start")

	require.NoError(t, e.StartSet("set-1-1"))
	ex, set := e.FocusedSet()
	require.NotNil(t, set)
	assert.Equal(t, "set-1-1", set.ID)
	assert.Equal(t, "ex-1", ex.ID)

	testutil.MeasureSet(set, 100, 8, 2)
	require.NoError(t, e.StopSet(set.ID))
	_, set = e.FocusedSet()
	assert.Nil(t, set, "resting set is not focused")
}

func TestAlarmFailure_DoesNotBlockTransition(t *testing.T) {
	sess := testutil.SessionFixture(2)
	set := sess.Exercises[0].Sets[0]
	set.TargetTUT = domain.IntPtr(2)
	alarm := &spyAlarm{err: errors.New("no audio device")}
	e := New(sess, WithAlarm(alarm))

	require.NoError(t, e.StartSet(set.ID))
	ticks(e, 2)

	assert.Equal(t, domain.SetResting, set.State, "transition proceeds despite alarm failure")
	assert.Eventually(t, func() bool { return alarm.count() == 1 },
		time.Second, 5*time.Millisecond)
}

func TestAutosave_OnlyWhenEnabledAndOnTransitions(t *testing.T) {
	sess := testutil.SessionFixture(2)
	saver := &spySaver{}
	e := New(sess, WithSaver(saver))

	require.NoError(t, e.StartSet("set-1-1"))
	assert.Zero(t, saver.saves, "autosave inactive until enabled")

	e.EnableAutosave()
	assert.Equal(t, 1, saver.saves, "arming writes an initial snapshot")

	ticks(e, 5)
	assert.Equal(t, 1, saver.saves, "plain ticks do not snapshot")

	testutil.MeasureSet(sess.Exercises[0].Sets[0], 100, 8, 2)
	require.NoError(t, e.StopSet("set-1-1"))
	assert.Equal(t, 2, saver.saves, "transition snapshots")

	e.DisableAutosave()
	require.NoError(t, e.StartSet("set-1-2"))
	assert.Equal(t, 2, saver.saves, "no snapshots after submit")
}

func TestMutations_Autosave(t *testing.T) {
	sess := testutil.SessionFixture(1)
	saver := &spySaver{}
	e := New(sess, WithSaver(saver))
	e.EnableAutosave()
	base := saver.saves

	require.NoError(t, e.SetMeasuredWeight("set-1-1", domain.FloatPtr(80)))
	require.NoError(t, e.SetMeasuredReps("set-1-1", domain.IntPtr(10)))
	e.SetDefaultRest(60)
	e.SetSessionNotes("leg day")
	assert.Equal(t, base+4, saver.saves)

	set := sess.Exercises[0].Sets[0]
	require.NotNil(t, set.EstimatedOneRM, "derived values refresh on mutation")
}

func TestRemoveSet_ReleasesRoles(t *testing.T) {
	sess := testutil.SessionFixture(2)
	e := New(sess)
	require.NoError(t, e.StartSet("set-1-1"))

	e.RemoveSet("set-1-1")
	assert.Empty(t, e.Coordinator().LiveSetID())
	assert.Nil(t, e.TimerFor("set-1-1"))
	assert.Equal(t, 1, len(sess.Exercises[0].Sets))
	assert.Equal(t, 1, sess.Exercises[0].Sets[0].Ordinal, "remaining set reindexed")
}

func TestFinalizeInterrupted(t *testing.T) {
	sess := testutil.SessionFixture(3)
	sess.Exercises[0].Sets[0].State = domain.SetCompleted
	sess.Exercises[0].Sets[1].State = domain.SetExercising
	sess.Exercises[0].Sets[2].State = domain.SetResting
	e := New(sess)

	e.FinalizeInterrupted()
	for _, set := range sess.Exercises[0].Sets {
		assert.Equal(t, domain.SetCompleted, set.State)
	}
}

func TestInvariant_AtMostOneLiveThroughout(t *testing.T) {
	sess := testutil.SessionFixture(2, 1)
	e := New(sess)

	steps := []func(){
		func() { _ = e.StartSet("set-1-1") },
		func() { e.Tick() },
		func() {
			testutil.MeasureSet(sess.Exercises[0].Sets[0], 100, 8, 2)
			_ = e.StopSet("set-1-1")
		},
		func() { e.Tick() },
		func() { _ = e.StartSet("set-1-2") },
		func() {
			testutil.MeasureSet(sess.Exercises[0].Sets[1], 100, 8, 1)
			_ = e.StopSet("set-1-2")
		},
		func() { _ = e.StartSet("set-2-1") },
	}
	for _, step := range steps {
		step()
		assertAtMostOneLive(t, e)
		live, resting := e.Coordinator().LiveSetID(), e.Coordinator().RestingSetID()
		if live != "" && resting != "" {
			assert.Equal(t, live, resting, "two different sets may never hold roles at once")
		}
	}
}
