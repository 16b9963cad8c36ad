package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// form is a vertical stack of labelled single-line inputs.
type form struct {
	labels []string
	inputs []textinput.Model
	focus  int
}

func newForm(labels ...string) *form {
	f := &form{labels: labels, inputs: make([]textinput.Model, len(labels))}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 512
		ti.Cursor.SetMode(cursor.CursorStatic)
		f.inputs[i] = ti
	}
	f.setFocus(0)
	return f
}

func (f *form) setFocus(i int) {
	f.focus = i
	for j := range f.inputs {
		if j == i {
			f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
}

func (f *form) set(i int, v string) {
	f.inputs[i].SetValue(v)
}

func (f *form) value(i int) string {
	return strings.TrimSpace(f.inputs[i].Value())
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, keys.NextField):
			f.setFocus((f.focus + 1) % len(f.inputs))
			return nil
		case key.Matches(km, keys.PrevField):
			f.setFocus((f.focus + len(f.inputs) - 1) % len(f.inputs))
			return nil
		}
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *form) view(width int) string {
	rows := make([]string, len(f.inputs))
	for i := range f.inputs {
		in := f.inputs[i]
		in.Width = max(10, width-14)
		label := f.labels[i]
		if i == f.focus {
			label = keyStyle.Render(label)
		}
		rows[i] = field(label, in.View())
	}
	return strings.Join(rows, "\n")
}
