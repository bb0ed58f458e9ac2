package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/felipeleveke/gym-sub000/internal/domain"
	"github.com/felipeleveke/gym-sub000/internal/draft"
	"github.com/felipeleveke/gym-sub000/internal/engine"
	"github.com/felipeleveke/gym-sub000/internal/metrics"
	"github.com/felipeleveke/gym-sub000/internal/submit"
)

// tickMsg drives all timers. One tick per second, scheduled continuously
// while the TUI runs; the engine ignores ticks when nothing is running.
type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// submitDoneMsg reports the result of an async submission attempt.
type submitDoneMsg struct {
	err error
}

// sessionModel is the root bubbletea model for a live session: a set list
// with per-set timers, the focused-set overlay, and the finish flow.
type sessionModel struct {
	app   *App
	eng   *engine.Engine
	saver *draft.Autosaver

	cursor  int
	overlay overlayModel
	finish  finishModel

	errMsg     string
	submitting bool
	submitted  bool
	quitting   bool

	width  int
	height int
}

func newSessionModel(app *App, eng *engine.Engine, saver *draft.Autosaver) sessionModel {
	return sessionModel{
		app:     app,
		eng:     eng,
		saver:   saver,
		overlay: newOverlayModel(eng),
		finish:  newFinishModel(),
	}
}

func (m sessionModel) Init() tea.Cmd {
	return tick()
}

// flatSets is the session's sets in display order.
func (m *sessionModel) flatSets() []*domain.Set {
	return m.eng.Session().AllSets()
}

func (m *sessionModel) setUnderCursor() *domain.Set {
	sets := m.flatSets()
	if len(sets) == 0 {
		return nil
	}
	if m.cursor >= len(sets) {
		m.cursor = len(sets) - 1
	}
	return sets[m.cursor]
}

func (m sessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		if m.quitting || m.submitted {
			return m, nil
		}
		if m.submitting {
			// Keep the loop alive but freeze timers: once the payload is
			// built the session must not change under the in-flight send.
			return m, tick()
		}
		m.eng.Tick()
		return m, tick()

	case submitDoneMsg:
		m.submitting = false
		if msg.err != nil {
			// Draft is still on disk; the user can fix and retry. Turning
			// autosave back on also re-snapshots the session right away.
			m.errMsg = msg.err.Error()
			m.eng.EnableAutosave()
			return m, nil
		}
		m.submitted = true
		return m, tea.Quit

	case tea.KeyMsg:
		if m.submitting {
			if msg.String() == "ctrl+c" {
				m.quitting = true
				return m, tea.Quit
			}
			return m, nil
		}
		if m.finish.active {
			return m.updateFinish(msg)
		}
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m sessionModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// When a set is focused, printable keys belong to the overlay inputs.
	if _, focused := m.eng.FocusedSet(); focused != nil {
		switch msg.String() {
		case "enter":
			m.errMsg = ""
			if err := m.eng.StopSet(focused.ID); err != nil {
				m.errMsg = err.Error()
			}
			return m, nil
		case "tab", "shift+tab":
			m.overlay.cycleFocus(msg.String() == "shift+tab")
			return m, nil
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		default:
			cmd := m.overlay.handleKey(msg, focused)
			return m, cmd
		}
	}

	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.flatSets())-1 {
			m.cursor++
		}

	case "s", "enter":
		m.errMsg = ""
		if set := m.setUnderCursor(); set != nil {
			if err := m.eng.StartSet(set.ID); err != nil {
				m.errMsg = err.Error()
			} else {
				m.overlay.focusInputs(set)
			}
		}

	case "c":
		m.errMsg = ""
		if set := m.setUnderCursor(); set != nil {
			if err := m.eng.CompleteSet(set.ID); err != nil {
				m.errMsg = err.Error()
			}
		}

	case "a":
		if set := m.setUnderCursor(); set != nil {
			_ = m.eng.AddSet(set.ExerciseID, newSetLike(set))
		}

	case "x":
		if set := m.setUnderCursor(); set != nil {
			m.eng.RemoveSet(set.ID)
		}

	case "f":
		m.errMsg = ""
		m.finish.open(m.eng.Session())
	}

	return m, nil
}

// newSetLike plans one more set with the same kind and targets as its
// neighbor, the common "one more set of the same" case.
func newSetLike(src *domain.Set) *domain.Set {
	return &domain.Set{
		ID:           uuid.New().String(),
		Kind:         src.Kind,
		TargetWeight: src.TargetWeight,
		TargetReps:   src.TargetReps,
		TargetRIR:    src.TargetRIR,
		TargetRPE:    src.TargetRPE,
		TargetTUT:    src.TargetTUT,
		TargetRest:   src.TargetRest,
		State:        domain.SetIdle,
	}
}

func (m sessionModel) updateFinish(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.finish.active = false
		return m, nil
	case "enter":
		notes, tags := m.finish.values()
		m.eng.SetSessionNotes(notes)
		m.eng.SetTags(tags)
		m.finish.active = false
		// Build here, on the event loop, so the end timestamp is stamped and
		// the session flattened before the send goroutine ever sees it.
		payload, err := submit.Build(m.eng.Session(), time.Now())
		if err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.eng.DisableAutosave()
		m.submitting = true
		return m, m.submitCmd(payload)
	case "tab", "shift+tab":
		m.finish.cycleFocus()
		return m, nil
	default:
		return m, m.finish.handleKey(msg)
	}
}

func (m *sessionModel) submitCmd(payload *submit.Payload) tea.Cmd {
	id := m.eng.Session().ID
	svc := m.app.Submit
	return func() tea.Msg {
		return submitDoneMsg{err: svc.Deliver(context.Background(), id, payload)}
	}
}

// ── view ─────────────────────────────────────────────────────────────────────

func (m sessionModel) View() string {
	if m.submitted {
		return styleGreen.Render("Session submitted.") + "\n"
	}

	var b strings.Builder
	sess := m.eng.Session()

	b.WriteString(styleHeader.Render("gym · live session"))
	b.WriteString("  " + styleDim.Render(m.savedIndicator()))
	b.WriteString("\n\n")

	cursorSet := m.setUnderCursor()
	for _, ex := range sess.Exercises {
		b.WriteString(styleBold.Render(ex.Name))
		if vol := metrics.ExerciseVolume(ex); vol > 0 {
			b.WriteString(styleDim.Render(fmt.Sprintf("  %.0f vol", vol)))
		}
		b.WriteString("\n")
		for _, set := range ex.Sets {
			b.WriteString(m.renderSetRow(set, set == cursorSet))
		}
		b.WriteString("\n")
	}

	if len(sess.Exercises) == 0 {
		b.WriteString(styleDim.Render("No exercises yet. Start with --routine or --from-last.") + "\n\n")
	}

	if _, focused := m.eng.FocusedSet(); focused != nil {
		b.WriteString(m.overlay.view(focused))
		b.WriteString("\n")
	}

	if m.finish.active {
		b.WriteString(m.finish.view())
		b.WriteString("\n")
	}

	if m.submitting {
		b.WriteString(styleYellow.Render("Submitting…") + "\n")
	}
	if m.errMsg != "" {
		b.WriteString(styleRed.Render("✗ "+m.errMsg) + "\n")
	}

	b.WriteString("\n" + styleDim.Render(m.helpLine()))
	return b.String()
}

func (m sessionModel) renderSetRow(set *domain.Set, underCursor bool) string {
	marker := "  "
	if underCursor {
		marker = styleCursor.Render("› ")
	}

	label := stateStyle(set.State).Render(stateLabel(set.State))
	row := fmt.Sprintf("%s%-7s #%d %-9s %s", marker, label, set.Ordinal, set.Kind, describeSet(set))

	if t := m.eng.TimerFor(set.ID); t != nil {
		switch set.State {
		case domain.SetTUTCountdown:
			row += styleGreen.Render(fmt.Sprintf("  TUT %ds", t.TUTRemaining()))
		case domain.SetExercising:
			row += styleGreen.Render(fmt.Sprintf("  %s", formatSeconds(t.Elapsed())))
		case domain.SetResting:
			row += styleYellow.Render(fmt.Sprintf("  rest %s", formatSeconds(t.RestElapsed())))
			if left := t.RestCountdownLeft(); left > 0 {
				row += styleDim.Render(fmt.Sprintf(" (%s left)", formatSeconds(left)))
			}
		}
	}

	return row + "\n"
}

// describeSet renders targets and, once measured, actuals with the derived 1RM.
func describeSet(set *domain.Set) string {
	if set.MeasuredWeight != nil || set.MeasuredReps != nil {
		part := fmt.Sprintf("%s × %s", formatFloatPtr(set.MeasuredWeight), formatIntPtr(set.MeasuredReps))
		if set.MeasuredRIR != nil {
			part += fmt.Sprintf(" @%d RIR", *set.MeasuredRIR)
		}
		if set.EstimatedOneRM != nil {
			part += styleDim.Render(fmt.Sprintf("  e1RM %.2f (%.2f%%)", *set.EstimatedOneRM, *set.PercentOfOneRM))
		}
		return part
	}
	return styleDim.Render(fmt.Sprintf("plan %s × %s", formatFloatPtr(set.TargetWeight), formatIntPtr(set.TargetReps)))
}

func (m sessionModel) savedIndicator() string {
	if m.saver == nil {
		return ""
	}
	if m.saver.Degraded() {
		return "autosave off"
	}
	if at := m.saver.LastSavedAt(); !at.IsZero() {
		return "saved " + at.Local().Format("15:04:05")
	}
	return ""
}

func (m sessionModel) helpLine() string {
	if _, focused := m.eng.FocusedSet(); focused != nil {
		return "type to record · tab fields · enter stop set · ctrl+c quit"
	}
	return "↑/↓ move · s start · c complete · a/x add/remove set · f finish & submit · q quit (draft kept)"
}

func formatSeconds(s int) string {
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}

func formatFloatPtr(v *float64) string {
	if v == nil {
		return "—"
	}
	return fmt.Sprintf("%.4g", *v)
}

func formatIntPtr(v *int) string {
	if v == nil {
		return "—"
	}
	return fmt.Sprintf("%d", *v)
}
