// Package trips provides the table of filtered trip rows.
package trips

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/truckdash/internal/app"
	"github.com/j-veylop/truckdash/internal/models"
	"github.com/j-veylop/truckdash/internal/ui/components"
	"github.com/j-veylop/truckdash/internal/ui/styles"
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
	Export key.Binding
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
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "first trip"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "last trip"),
		),
		// Handled by the app so export works from every tab.
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export these trips"),
		),
	}
}

// column is one table column and how to render a trip into it.
type column struct {
	title    string
	width    int
	optional bool
	cell     func(r *models.TripRecord) string
}

var columns = []column{
	{title: "Date", width: 10, cell: func(r *models.TripRecord) string { return r.Date.Format("2006-01-02") }},
	{title: "Driver", width: 16, cell: func(r *models.TripRecord) string { return r.DriverName }},
	{title: "Truck", width: 10, optional: true, cell: func(r *models.TripRecord) string { return r.TruckPlate }},
	{title: "Product", width: 12, cell: func(r *models.TripRecord) string { return r.Product }},
	{title: "Destination", width: 14, optional: true, cell: func(r *models.TripRecord) string { return r.Destination }},
	{title: "Km", width: 9, cell: func(r *models.TripRecord) string { return components.FormatNumber(r.DistanceKm, 1) }},
	{title: "Fuel L", width: 8, cell: func(r *models.TripRecord) string { return components.FormatNumber(r.FuelUsedLiters, 1) }},
	{title: "Net kg", width: 10, cell: func(r *models.TripRecord) string { return components.FormatNumber(r.NetWeightKg, 0) }},
	{title: "km/l", width: 6, cell: func(r *models.TripRecord) string { return components.FormatNumber(r.FuelEfficiencyKmPerLiter, 2) }},
}

// cellPadding is the horizontal padding the table adds around every cell.
const cellPadding = 2

// visibleColumns drops optional columns when the table would not fit.
func visibleColumns(width int) []column {
	total := 0
	for _, c := range columns {
		total += c.width + cellPadding
	}
	if width <= 0 || total <= width {
		return columns
	}
	out := make([]column, 0, len(columns))
	for _, c := range columns {
		if !c.optional {
			out = append(out, c)
		}
	}
	return out
}

// Model is the trips tab.
type Model struct {
	state    *app.State
	keys     keyMap
	table    table.Model
	cols     []column
	width    int
	height   int
	revision int
}

// New creates a trips tab bound to the shared state.
func New(state *app.State) *Model {
	t := table.New(table.WithFocused(true))

	s := table.DefaultStyles()
	s.Header = styles.TableHeaderStyle
	s.Selected = styles.TableSelectedStyle
	t.SetStyles(s)

	m := &Model{
		state:    state,
		keys:     defaultKeyMap(),
		table:    t,
		revision: -1,
	}
	m.sync()
	return m
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	switch msg := msg.(type) {
	case app.ResultUpdatedMsg:
		m.sync()
	case tea.KeyMsg:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

// sync rebuilds the table rows when the query result changed.
func (m *Model) sync() {
	rev := m.state.Revision()
	if rev == m.revision {
		return
	}
	m.revision = rev
	m.rebuild()
}

func (m *Model) rebuild() {
	m.cols = visibleColumns(m.width)

	cols := make([]table.Column, len(m.cols))
	for i, c := range m.cols {
		cols[i] = table.Column{Title: c.title, Width: c.width}
	}

	result := m.state.Result()
	rows := make([]table.Row, len(result.Rows))
	for i := range result.Rows {
		r := &result.Rows[i]
		row := make(table.Row, len(m.cols))
		for j, c := range m.cols {
			row[j] = c.cell(r)
		}
		rows[i] = row
	}

	// Rows must be cleared before the column count changes.
	m.table.SetRows(nil)
	m.table.SetColumns(cols)
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

// SetSize sets the available size for the tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	// Title, footer and margins take eight rows.
	m.table.SetHeight(max(height-8, 3))
	m.table.SetWidth(max(width-6, 0))
	m.rebuild()
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{
		m.keys.Up,
		m.keys.Down,
		m.keys.Top,
		m.keys.Bottom,
		m.keys.Export,
	}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Up, m.keys.Down, m.keys.Top, m.keys.Bottom},
		{m.keys.Export},
	}
}
