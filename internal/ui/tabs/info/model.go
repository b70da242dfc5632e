// Package info provides the dataset, configuration and version tab.
package info

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/truckdash/internal/app"
	"github.com/j-veylop/truckdash/internal/config"
	"github.com/j-veylop/truckdash/internal/ui/components"
)

// Watcher reports whether the data file is being watched for changes.
type Watcher interface {
	Watching() bool
}

// Model is the info tab.
type Model struct {
	state    *app.State
	config   *config.Config
	watcher  Watcher
	keys     components.ScrollKeys
	viewport viewport.Model
	width    int
	height   int
}

// New creates a new info tab model. watcher may be nil.
func New(state *app.State, cfg *config.Config, watcher Watcher) *Model {
	return &Model{
		state:    state,
		config:   cfg,
		watcher:  watcher,
		keys:     components.NewScrollKeys(),
		viewport: viewport.New(0, 0),
	}
}

func (m *Model) Init() tea.Cmd { return nil }

// Update scrolls on keys. The content is rendered on every View, so result updates need no handling.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		return m, m.keys.Scroll(&m.viewport, msg)
	}
	return m, nil
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = max(width-6, 0)
	m.viewport.Height = max(height-2, 0)
}

func (m *Model) ShortHelp() []key.Binding { return m.keys.ShortHelp() }

func (m *Model) FullHelp() [][]key.Binding { return m.keys.FullHelp() }
