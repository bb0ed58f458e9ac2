package cli

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/felipeleveke/gym-sub000/internal/domain"
)

// finishModel collects session notes and tags before submission.
type finishModel struct {
	active   bool
	notes    textinput.Model
	tags     textinput.Model
	focusIdx int
}

func newFinishModel() finishModel {
	notes := textinput.New()
	notes.Placeholder = "session notes"
	notes.CharLimit = 280
	notes.Width = 40

	tags := textinput.New()
	tags.Placeholder = "tags, comma separated"
	tags.CharLimit = 120
	tags.Width = 40

	return finishModel{notes: notes, tags: tags}
}

func (f *finishModel) open(sess *domain.Session) {
	f.active = true
	f.notes.SetValue(sess.Notes)
	f.tags.SetValue(strings.Join(sess.Tags, ", "))
	f.focusIdx = 0
	f.notes.Focus()
	f.tags.Blur()
}

func (f *finishModel) cycleFocus() {
	f.focusIdx = (f.focusIdx + 1) % 2
	if f.focusIdx == 0 {
		f.notes.Focus()
		f.tags.Blur()
	} else {
		f.notes.Blur()
		f.tags.Focus()
	}
}

func (f *finishModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	if f.focusIdx == 0 {
		f.notes, cmd = f.notes.Update(msg)
	} else {
		f.tags, cmd = f.tags.Update(msg)
	}
	return cmd
}

func (f *finishModel) values() (notes string, tags []string) {
	notes = f.notes.Value()
	for _, t := range strings.Split(f.tags.Value(), ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return notes, tags
}

func (f *finishModel) view() string {
	var b strings.Builder
	b.WriteString(styleBold.Render("Finish session") + "\n")
	b.WriteString("notes " + f.notes.View() + "\n")
	b.WriteString("tags  " + f.tags.View() + "\n")
	b.WriteString(styleDim.Render("enter submit · tab switch · esc back"))
	return styleOverlay.Render(b.String())
}
