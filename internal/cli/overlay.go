package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/felipeleveke/gym-sub000/internal/domain"
	"github.com/felipeleveke/gym-sub000/internal/engine"
)

// overlayModel is the always-on-top input surface for the focused (live)
// set. It has no state of its own beyond input widgets: every keystroke
// writes through the engine into the focused set's fields, and its single
// action (enter, handled by the parent model) stops the set.
type overlayModel struct {
	eng *engine.Engine

	weight textinput.Model
	reps   textinput.Model
	rir    textinput.Model
	notes  textinput.Model

	focusIdx int
	bar      progress.Model
}

func newOverlayModel(eng *engine.Engine) overlayModel {
	mk := func(placeholder string, width int) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.CharLimit = 32
		ti.Width = width
		return ti
	}
	o := overlayModel{
		eng:    eng,
		weight: mk("kg", 6),
		reps:   mk("reps", 5),
		rir:    mk("RIR", 4),
		notes:  mk("notes", 28),
		bar:    progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
	o.bar.Width = 30
	return o
}

func (o *overlayModel) inputs() []*textinput.Model {
	return []*textinput.Model{&o.weight, &o.reps, &o.rir, &o.notes}
}

// focusInputs seeds the widgets from the newly focused set.
func (o *overlayModel) focusInputs(set *domain.Set) {
	o.weight.SetValue(formatEditableFloat(set.EffectiveWeight()))
	o.reps.SetValue(formatEditableInt(set.MeasuredReps))
	o.rir.SetValue(formatEditableInt(set.MeasuredRIR))
	o.notes.SetValue(set.Notes)
	o.focusIdx = 1 // reps first: weight is usually known before starting
	o.applyFocus()
}

func (o *overlayModel) cycleFocus(backward bool) {
	n := len(o.inputs())
	if backward {
		o.focusIdx = (o.focusIdx + n - 1) % n
	} else {
		o.focusIdx = (o.focusIdx + 1) % n
	}
	o.applyFocus()
}

func (o *overlayModel) applyFocus() {
	for i, in := range o.inputs() {
		if i == o.focusIdx {
			in.Focus()
		} else {
			in.Blur()
		}
	}
}

// handleKey forwards the keystroke to the focused widget and writes the
// parsed value straight into the focused set.
func (o *overlayModel) handleKey(msg tea.KeyMsg, set *domain.Set) tea.Cmd {
	in := o.inputs()[o.focusIdx]
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)

	switch o.focusIdx {
	case 0:
		_ = o.eng.SetMeasuredWeight(set.ID, parseFloatPtr(o.weight.Value()))
	case 1:
		_ = o.eng.SetMeasuredReps(set.ID, parseIntPtr(o.reps.Value()))
	case 2:
		_ = o.eng.SetMeasuredRIR(set.ID, parseIntPtr(o.rir.Value()))
	case 3:
		_ = o.eng.SetSetNotes(set.ID, o.notes.Value())
	}
	return cmd
}

func (o *overlayModel) view(set *domain.Set) string {
	t := o.eng.TimerFor(set.ID)

	var header string
	switch {
	case t != nil && set.State == domain.SetTUTCountdown:
		total := set.TUTSeconds()
		header = fmt.Sprintf("TUT  %s  %s",
			formatSeconds(t.TUTRemaining()),
			o.bar.ViewAs(countdownFraction(t.TUTRemaining(), total)))
	case t != nil:
		header = "exercising  " + styleGreen.Render(formatSeconds(t.Elapsed()))
	}

	var b strings.Builder
	b.WriteString(styleBold.Render(fmt.Sprintf("Set #%d", set.Ordinal)))
	b.WriteString("  " + header + "\n")
	b.WriteString(fmt.Sprintf("weight %s  reps %s  RIR %s\nnotes %s",
		o.weight.View(), o.reps.View(), o.rir.View(), o.notes.View()))

	if err := o.eng.CanStopSet(set.ID); err != nil {
		var g *engine.GuardError
		if errors.As(err, &g) {
			b.WriteString("\n" + styleDim.Render("stop disabled: "+g.Error()))
		}
	}

	return styleOverlay.Render(b.String())
}

func countdownFraction(remaining, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(total-remaining) / float64(total)
}

func parseFloatPtr(s string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseIntPtr(s string) *int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &v
}

func formatEditableFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatEditableInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
