// Package filters provides the tab that edits the filter selection.
package filters

import (
	"slices"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/truckdash/internal/app"
	"github.com/j-veylop/truckdash/internal/models"
)

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextField key.Binding
	PrevField key.Binding
	Toggle    key.Binding
	Only      key.Binding
	Clear     key.Binding
	ClearAll  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		NextField: key.NewBinding(
			key.WithKeys("n", "]"),
			key.WithHelp("n/]", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("p", "["),
			key.WithHelp("p/[", "prev field"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle value"),
		),
		Only: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "only this value"),
		),
		Clear: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear field"),
		),
		ClearAll: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear all"),
		),
	}
}

// Model is the filters tab.
type Model struct {
	state *app.State
	keys  keyMap

	// selection is applied locally first so fast key presses build on each other
	// before the app round trip completes.
	selection models.FilterSelection
	field     int
	cursors   map[models.Field]int

	width  int
	height int
}

// New creates a filters tab bound to the shared state.
func New(state *app.State) *Model {
	return &Model{
		state:     state,
		keys:      defaultKeyMap(),
		selection: state.Selection(),
		cursors:   make(map[models.Field]int),
	}
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	switch msg := msg.(type) {
	case app.ResultUpdatedMsg:
		m.selection = m.state.Selection()
		m.clampCursor()
	case tea.KeyMsg:
		return m, m.handleKeyMsg(msg)
	}
	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	field := m.currentField()
	values := m.values(field)

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursors[field] > 0 {
			m.cursors[field]--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursors[field] < len(values)-1 {
			m.cursors[field]++
		}
	case key.Matches(msg, m.keys.NextField):
		m.field = (m.field + 1) % len(models.FilterableFields)
		m.clampCursor()
	case key.Matches(msg, m.keys.PrevField):
		m.field = (m.field - 1 + len(models.FilterableFields)) % len(models.FilterableFields)
		m.clampCursor()
	case key.Matches(msg, m.keys.Toggle):
		v, ok := m.selected(field, values)
		if !ok {
			return nil
		}
		return m.apply(m.selection.Toggle(field, v))
	case key.Matches(msg, m.keys.Only):
		v, ok := m.selected(field, values)
		if !ok {
			return nil
		}
		return m.apply(m.selection.With(field, v))
	case key.Matches(msg, m.keys.Clear):
		if !m.selection.Restricts(field) {
			return nil
		}
		return m.apply(m.selection.Clear(field))
	case key.Matches(msg, m.keys.ClearAll):
		if m.selection.IsEmpty() {
			return nil
		}
		return m.apply(models.FilterSelection{})
	}
	return nil
}

// apply stores the selection locally and asks the app to requery. Unchecking a stale
// value shrinks the list, so cursors are clamped before the next key press.
func (m *Model) apply(sel models.FilterSelection) tea.Cmd {
	m.selection = sel
	m.clampCursor()
	return app.SetSelection(sel)
}

// selected returns the value under the field's cursor.
func (m *Model) selected(f models.Field, values []string) (string, bool) {
	i := m.cursors[f]
	if i < 0 || i >= len(values) {
		return "", false
	}
	return values[i], true
}

func (m *Model) currentField() models.Field {
	return models.FilterableFields[m.field]
}

// values lists the dataset's distinct values for a field followed by any selected
// values that no longer exist in the data, so they can still be unchecked.
func (m *Model) values(f models.Field) []string {
	opts := m.state.Options(f)
	out := slices.Clone(opts)
	for _, v := range m.selection.Values(f) {
		if !slices.Contains(opts, v) {
			out = append(out, v)
		}
	}
	return out
}

func (m *Model) isStale(f models.Field, v string) bool {
	return !slices.Contains(m.state.Options(f), v)
}

func (m *Model) clampCursor() {
	for _, f := range models.FilterableFields {
		n := len(m.values(f))
		switch {
		case n == 0:
			m.cursors[f] = 0
		case m.cursors[f] >= n:
			m.cursors[f] = n - 1
		}
	}
}

// SetSize sets the available size for the tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{
		m.keys.NextField,
		m.keys.Toggle,
		m.keys.Only,
		m.keys.Clear,
		m.keys.ClearAll,
	}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Up, m.keys.Down},
		{m.keys.NextField, m.keys.PrevField},
		{m.keys.Toggle, m.keys.Only, m.keys.Clear, m.keys.ClearAll},
	}
}
