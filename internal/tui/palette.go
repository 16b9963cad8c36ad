package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/appshell/internal/nav"
	"github.com/jask/appshell/internal/route"
)

const paletteLimit = 8

// palette is the jump overlay: fuzzy search over top-level destinations.
type palette struct {
	input   textinput.Model
	results []route.Route
	cursor  int
}

func newPalette() *palette {
	ti := textinput.New()
	ti.Placeholder = "Jump to…"
	ti.Prompt = "› "
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.Focus()
	return &palette{input: ti, results: route.Search("", paletteLimit)}
}

// update returns the command to run and whether the palette should close.
func (p *palette) update(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, keys.Back):
		return nil, true
	case msg.Type == tea.KeyEnter:
		if len(p.results) == 0 {
			return nil, true
		}
		return nav.NavigateCmd(p.results[p.cursor]), true
	case msg.Type == tea.KeyUp || msg.Type == tea.KeyCtrlP:
		p.cursor = moveCursor(p.cursor, -1, len(p.results))
		return nil, false
	case msg.Type == tea.KeyDown || msg.Type == tea.KeyCtrlN:
		p.cursor = moveCursor(p.cursor, 1, len(p.results))
		return nil, false
	}
	var cmd tea.Cmd
	before := p.input.Value()
	p.input, cmd = p.input.Update(msg)
	if p.input.Value() != before {
		p.results = route.Search(p.input.Value(), paletteLimit)
		p.cursor = 0
	}
	return cmd, false
}

func (p *palette) view(width int) string {
	rows := make([]string, len(p.results))
	for i, r := range p.results {
		rows[i] = r.Title()
	}
	body := mutedStyle.Render("No matches")
	if len(rows) > 0 {
		body = renderList(rows, p.cursor, width-4, paletteLimit)
	}
	return paletteStyle.Width(max(20, width-4)).Render(strings.Join([]string{p.input.View(), "", body}, "\n"))
}
