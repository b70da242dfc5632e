// Package dashboard provides the KPI and chart overview tab.
package dashboard

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/truckdash/internal/app"
	"github.com/j-veylop/truckdash/internal/ui/components"
)

// Model shows the KPI row and charts for the current result.
type Model struct {
	state    *app.State
	spinner  components.Spinner
	keys     components.ScrollKeys
	viewport viewport.Model
	width    int
	height   int
	revision int
}

func New(state *app.State) *Model {
	return &Model{
		state:    state,
		spinner:  components.NewSpinner("Loading trips..."),
		keys:     components.NewScrollKeys(),
		viewport: viewport.New(0, 0),
	}
}

func (m *Model) Init() tea.Cmd { return m.spinner.Tick }

// Update re-renders on result changes and scrolls on keys. The spinner only runs until
// the first dataset arrives.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case app.ResultUpdatedMsg:
		m.revision = msg.Revision
		m.refresh()

	case tea.KeyMsg:
		cmds = append(cmds, m.keys.Scroll(&m.viewport, msg))

	case spinner.TickMsg:
		if m.state.IsInitialLoading() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	// DocStyle adds a margin of 1 row and 2 columns plus 1 column of padding.
	m.viewport.Width = max(width-6, 0)
	m.viewport.Height = max(height-2, 0)
	m.refresh()
}

// refresh re-renders the content into the viewport, keeping the scroll offset
// when it is still in range.
func (m *Model) refresh() {
	if m.state.IsInitialLoading() {
		return
	}
	m.viewport.SetContent(m.renderContent())
}

func (m *Model) ShortHelp() []key.Binding { return m.keys.ShortHelp() }

func (m *Model) FullHelp() [][]key.Binding { return m.keys.FullHelp() }
