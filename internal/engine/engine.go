package engine

import (
	"io"
	"log"

	"github.com/felipeleveke/gym-sub000/internal/domain"
)

// Saver receives the full session after every meaningful mutation. Saves are
// fire-and-forget overwrites; a failing saver must not surface errors back
// into the engine.
type Saver interface {
	Autosave(s *domain.Session)
}

// Engine owns one live session: the per-set timers, the coordinator that
// keeps at most one set live, and the autosave hook. All methods are called
// from the single TUI event loop; the engine is synchronous and performs no
// blocking work of its own.
type Engine struct {
	session *domain.Session
	coord   *Coordinator
	timers  map[string]*SetTimer

	clock  Clock
	alarm  Alarm
	saver  Saver
	logger *log.Logger

	autosaveOn    bool
	restCountdown bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock injects a time source (tests use ManualClock).
func WithClock(c Clock) Option { return func(e *Engine) { e.clock = c } }

// WithAlarm injects the audible alarm effect.
func WithAlarm(a Alarm) Option { return func(e *Engine) { e.alarm = a } }

// WithSaver injects the draft autosaver.
func WithSaver(s Saver) Option { return func(e *Engine) { e.saver = s } }

// WithRestCountdown toggles the visual rest countdown. The rest stopwatch
// itself always runs; only the countdown display and its alarm are affected.
func WithRestCountdown(enabled bool) Option {
	return func(e *Engine) { e.restCountdown = enabled }
}

// WithLogger injects the logger for non-fatal side-effect failures.
func WithLogger(l *log.Logger) Option { return func(e *Engine) { e.logger = l } }

// New creates an engine around the given session. Autosave starts disabled
// and is switched on once the resume-or-discard phase has settled.
func New(session *domain.Session, opts ...Option) *Engine {
	e := &Engine{
		session:       session,
		coord:         &Coordinator{},
		timers:        make(map[string]*SetTimer),
		clock:         SystemClock(),
		alarm:         SilentAlarm{},
		logger:        log.New(io.Discard, "", 0),
		restCountdown: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Session returns the session under the engine's control.
func (e *Engine) Session() *domain.Session { return e.session }

// Coordinator exposes the live/resting roles for read-only inspection.
func (e *Engine) Coordinator() *Coordinator { return e.coord }

// TimerFor returns the timer tracking setID, or nil if the set never started.
func (e *Engine) TimerFor(setID string) *SetTimer { return e.timers[setID] }

// EnableAutosave arms draft autosaving and writes an initial snapshot.
// Called once the initial-load phase (resume prompt or clean start) is done.
func (e *Engine) EnableAutosave() {
	e.autosaveOn = true
	e.autosave()
}

// DisableAutosave stops further snapshots, e.g. after successful submission.
func (e *Engine) DisableAutosave() { e.autosaveOn = false }

func (e *Engine) autosave() {
	if e.autosaveOn && e.saver != nil {
		e.saver.Autosave(e.session)
	}
}

// restSeed is the countdown to arm when a set enters resting: the resolved
// rest seconds, or 0 when the visual countdown is disabled in config.
func (e *Engine) restSeed(ex *domain.Exercise, set *domain.Set) int {
	if !e.restCountdown {
		return 0
	}
	return e.session.RestSecondsFor(ex, set)
}

func (e *Engine) timerFor(set *domain.Set) *SetTimer {
	t, ok := e.timers[set.ID]
	if !ok {
		t = newSetTimer(set)
		e.timers[set.ID] = t
	}
	return t
}

// ── transitions ──────────────────────────────────────────────────────────────

// CanStartSet reports whether StartSet would succeed, returning the guard
// error the UI should surface next to a disabled start control.
func (e *Engine) CanStartSet(setID string) error {
	_, set := e.session.FindSet(setID)
	if set == nil {
		return guardErr(ReasonUnknownSet, setID)
	}
	if set.State != domain.SetIdle {
		return guardErr(ReasonWrongState, setID)
	}
	if w := set.EffectiveWeight(); w == nil || *w <= 0 {
		return guardErr(ReasonMissingWeight, setID)
	}
	if !e.coord.CanStart(setID) {
		return guardErr(ReasonAnotherSetLive, setID)
	}
	return nil
}

// StartSet moves an idle set into its live phase (TUT countdown when the set
// has a TUT target, stopwatch otherwise). If another set is currently
// resting, that set is finalized to completed — its rest stopwatch frozen as
// the measured rest — in the same synchronous update, so no observer ever
// sees two sets holding roles between the two changes.
func (e *Engine) StartSet(setID string) error {
	if err := e.CanStartSet(setID); err != nil {
		return err
	}
	_, set := e.session.FindSet(setID)

	if resting := e.coord.RestingSetID(); resting != "" && resting != setID {
		if rt := e.timers[resting]; rt != nil {
			rt.complete()
		}
		e.coord.OnSetComplete(resting)
	}

	if e.session.StartedAt == nil {
		now := e.clock.Now()
		e.session.StartedAt = &now
	}

	e.timerFor(set).start()
	e.coord.OnSetStart(setID)
	e.reconcile()
	e.autosave()
	return nil
}

// CanStopSet reports whether StopSet would succeed for the given set.
func (e *Engine) CanStopSet(setID string) error {
	_, set := e.session.FindSet(setID)
	if set == nil {
		return guardErr(ReasonUnknownSet, setID)
	}
	if !set.State.Live() {
		return guardErr(ReasonWrongState, setID)
	}
	if set.MeasuredReps == nil || set.MeasuredRIR == nil {
		return guardErr(ReasonMissingRepsRIR, setID)
	}
	return nil
}

// StopSet ends a set's live phase: the session's overall final set completes
// directly, any other set enters resting with a countdown seeded from the
// set's rest target, the exercise's rest-after override, or the session
// default. Requires measured reps and RIR to already be entered.
func (e *Engine) StopSet(setID string) error {
	if err := e.CanStopSet(setID); err != nil {
		return err
	}
	ex, set := e.session.FindSet(setID)
	t := e.timerFor(set)

	duration := t.Elapsed()
	if set.State == domain.SetTUTCountdown {
		duration = set.TUTSeconds() - t.TUTRemaining()
	}

	if e.session.IsFinalSet(setID) {
		d := duration
		set.MeasuredDuration = &d
		t.complete()
		e.coord.OnSetComplete(setID)
	} else {
		t.beginRest(duration, e.restSeed(ex, set))
		e.coord.OnSetRest(setID)
	}
	e.reconcile()
	e.autosave()
	return nil
}

// CompleteSet forces a set to completed from any state, freezing whatever it
// has measured so far. Used by the coordinator path (a new set starting over
// a resting one) and by explicit completion from the overlay.
func (e *Engine) CompleteSet(setID string) error {
	_, set := e.session.FindSet(setID)
	if set == nil {
		return guardErr(ReasonUnknownSet, setID)
	}
	if set.State == domain.SetCompleted {
		return nil
	}
	if t := e.timers[set.ID]; t != nil {
		t.complete()
	} else {
		set.State = domain.SetCompleted
	}
	e.coord.OnSetComplete(setID)
	e.autosave()
	return nil
}

// Tick advances every running timer by one second. TUT countdowns reaching
// zero ring the alarm, record the target TUT as the measured duration, and
// auto-transition (to resting, or straight to completed for the session's
// final set). An expiring rest countdown only rings the alarm; the rest
// stopwatch keeps running until the set is completed.
func (e *Engine) Tick() {
	transitioned := false
	for _, set := range e.session.AllSets() {
		t := e.timers[set.ID]
		if t == nil {
			continue
		}
		ev := t.tick()
		if ev.tutReachedZero {
			e.playAlarm()
			tut := set.TUTSeconds()
			ex, _ := e.session.FindSet(set.ID)
			if e.session.IsFinalSet(set.ID) {
				set.MeasuredDuration = &tut
				t.complete()
				e.coord.OnSetComplete(set.ID)
			} else {
				t.beginRest(tut, e.restSeed(ex, set))
				e.coord.OnSetRest(set.ID)
			}
			transitioned = true
		}
		if ev.restCountdownZero {
			e.playAlarm()
		}
	}
	if transitioned {
		e.reconcile()
		e.autosave()
	}
}

// FocusedSet returns the set holding the live role, with its exercise, for
// the always-on-top input overlay. Resting sets are not focused.
func (e *Engine) FocusedSet() (*domain.Exercise, *domain.Set) {
	live := e.coord.LiveSetID()
	if live == "" {
		return nil, nil
	}
	return e.session.FindSet(live)
}

// FinalizeInterrupted completes any set left live or resting by a resumed
// draft. Wall-clock timers cannot be resurrected across a crash, and
// cancellation always finalizes rather than discards, so these sets keep
// whatever they measured and close out.
func (e *Engine) FinalizeInterrupted() {
	for _, set := range e.session.AllSets() {
		if set.State.Live() || set.State == domain.SetResting {
			set.State = domain.SetCompleted
		}
	}
}

// reconcile makes timer-local state agree with the coordinator: a timer that
// still believes it is live while the coordinator has it resting is moved to
// resting synchronously. Covers stops driven from the overlay rather than the
// per-set control.
func (e *Engine) reconcile() {
	resting := e.coord.RestingSetID()
	if resting == "" {
		return
	}
	t := e.timers[resting]
	if t == nil || !t.State().Live() {
		return
	}
	ex, set := e.session.FindSet(resting)
	duration := t.Elapsed()
	if set.State == domain.SetTUTCountdown {
		duration = set.TUTSeconds() - t.TUTRemaining()
	}
	t.beginRest(duration, e.restSeed(ex, set))
}

func (e *Engine) playAlarm() {
	alarm := e.alarm
	go func() {
		if err := alarm.Play(); err != nil {
			e.logger.Printf("alarm failed: %v", err)
		}
	}()
}
