package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Quit      key.Binding
	Back      key.Binding
	Home      key.Binding
	Jump      key.Binding
	Up        key.Binding
	Down      key.Binding
	Open      key.Binding
	Retry     key.Binding
	Reload    key.Binding
	New       key.Binding
	Edit      key.Binding
	Delete    key.Binding
	Save      key.Binding
	NextField key.Binding
	PrevField key.Binding
}

var keys = keyMap{
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Home:      key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "home")),
	Jump:      key.NewBinding(key.WithKeys("ctrl+k", "/"), key.WithHelp("/", "jump")),
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Open:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	Retry:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retry")),
	Reload:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "fetch")),
	New:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
	Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
	Delete:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Save:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
	NextField: key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
	PrevField: key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
}

// capturing keys are typed into a focused input, so only ctrl and esc
// bindings apply globally.
func capturable(k string) bool {
	return strings.HasPrefix(k, "ctrl+") || k == "esc"
}

func renderHelp(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		parts = append(parts, keyStyle.Render(h.Key)+" "+helpDescStyle.Render(h.Desc))
	}
	return strings.Join(parts, helpDescStyle.Render("  "))
}
