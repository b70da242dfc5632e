package app

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize/english"

	"github.com/j-veylop/truckdash/internal/services"
	"github.com/j-veylop/truckdash/internal/ui/components"
	"github.com/j-veylop/truckdash/internal/ui/styles"
)

// chromeHeight is the number of rows reserved for the tab bar and its margins.
const chromeHeight = 5

// Model is the root model. It handles global keys and data messages, and forwards
// everything else to the active tab.
type Model struct {
	state    *State
	services *services.Manager
	events   <-chan services.ServiceEvent

	tabs      []Tab
	activeTab TabID

	keys     KeyMap
	help     help.Model
	spinner  components.Spinner
	showHelp bool

	width  int
	height int
}

// NewModel creates the root model. A nil manager gives a model without data, which
// is only useful in tests.
func NewModel(mgr *services.Manager) *Model {
	h := help.New()
	h.ShowAll = true
	h.Styles.FullKey = styles.HelpKeyStyle
	h.Styles.FullDesc = styles.HelpDescStyle
	h.Styles.FullSeparator = styles.HelpStyle

	return &Model{
		state:    NewState(),
		services: mgr,
		keys:     DefaultKeyMap(),
		help:     h,
		spinner:  components.NewSpinner(""),
	}
}

// State returns the state shared with the tabs.
func (m *Model) State() *State {
	return m.state
}

// SetTabs installs the tabs in tab bar order.
func (m *Model) SetTabs(tabs []Tab) {
	m.tabs = tabs
	if m.width > 0 && m.height > 0 {
		m.resizeTabs()
	}
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick}
	if m.services != nil {
		m.events = m.services.Subscribe()
		cmds = append(cmds, waitForEvent(m.events), initialDataCmd(m.services))
	}
	for _, tab := range m.tabs {
		cmds = append(cmds, tab.Init())
	}
	return tea.Batch(cmds...)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resizeTabs()

	case tea.KeyMsg:
		if cmd, handled := m.handleKey(msg); handled {
			return m, cmd
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case serviceEventMsg:
		cmds = append(cmds, m.handleServiceEvent(msg.event)...)
		if m.events != nil {
			cmds = append(cmds, waitForEvent(m.events))
		}

	case DatasetLoadedMsg:
		cmds = append(cmds, m.installDataset(msg)...)

	case SelectionChangedMsg:
		m.state.SetSelection(msg.Selection)
		cmds = append(cmds, m.broadcastResult()...)

	case ReloadResultMsg:
		m.state.SetBusy(ActivityReload, false)
		if msg.Err != nil {
			cmds = append(cmds, m.toast(LevelError, "Reload failed: "+msg.Err.Error()))
		}

	case ExportResultMsg:
		cmds = append(cmds, m.finishExport(msg))

	case dismissToastMsg:
		m.state.DismissToast(msg.id)
	}

	cmds = append(cmds, m.updateActiveTab(msg))
	return m, tea.Batch(cmds...)
}

// handleKey runs global bindings. Keys it does not handle go to the active tab.
// While the help overlay is open every key is swallowed.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit, true
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
	case m.showHelp:
		if key.Matches(msg, m.keys.Close) {
			m.showHelp = false
		}
	case key.Matches(msg, m.keys.NextTab):
		m.switchTab(m.activeTab + 1)
	case key.Matches(msg, m.keys.PrevTab):
		m.switchTab(m.activeTab - 1)
	case key.Matches(msg, m.keys.Reload):
		return m.startReload(), true
	case key.Matches(msg, m.keys.Export):
		return m.startExport(), true
	default:
		for i, b := range m.keys.Tabs {
			if key.Matches(msg, b) && i < len(m.tabs) {
				m.switchTab(TabID(i))
				return nil, true
			}
		}
		return nil, false
	}
	return nil, true
}

// switchTab selects a tab, wrapping around at either end.
func (m *Model) switchTab(id TabID) {
	n := len(m.tabs)
	if n == 0 {
		return
	}
	m.activeTab = TabID((int(id)%n + n) % n)
}

func (m *Model) active() Tab {
	if int(m.activeTab) < len(m.tabs) {
		return m.tabs[m.activeTab]
	}
	return nil
}

func (m *Model) updateActiveTab(msg tea.Msg) tea.Cmd {
	tab := m.active()
	if tab == nil {
		return nil
	}
	var cmd tea.Cmd
	m.tabs[m.activeTab], cmd = tab.Update(msg)
	return cmd
}

func (m *Model) resizeTabs() {
	h := max(m.height-chromeHeight, 0)
	for _, tab := range m.tabs {
		tab.SetSize(m.width, h)
	}
}

func (m *Model) handleServiceEvent(ev services.ServiceEvent) []tea.Cmd {
	switch e := ev.(type) {
	case services.DatasetLoadedEvent:
		return m.installDataset(DatasetLoadedMsg{Dataset: e.Dataset, Reload: true})
	case services.ErrorEvent:
		return []tea.Cmd{m.toast(LevelError, fmt.Sprintf("Automatic reload failed: %v", e.Error))}
	}
	return nil
}

func (m *Model) installDataset(msg DatasetLoadedMsg) []tea.Cmd {
	if msg.Dataset == nil {
		return nil
	}
	m.state.SetDataset(msg.Dataset)

	cmds := m.broadcastResult()
	if msg.Reload {
		cmds = append(cmds, m.toast(LevelInfo, "Reloaded "+english.Plural(msg.Dataset.Len(), "trip", "")))
	}
	return cmds
}

// broadcastResult tells every tab, not just the active one, that the result changed.
func (m *Model) broadcastResult() []tea.Cmd {
	msg := ResultUpdatedMsg{Revision: m.state.Revision()}
	cmds := make([]tea.Cmd, 0, len(m.tabs))
	for i, tab := range m.tabs {
		var cmd tea.Cmd
		m.tabs[i], cmd = tab.Update(msg)
		cmds = append(cmds, cmd)
	}
	return cmds
}

func (m *Model) startReload() tea.Cmd {
	if m.services == nil {
		return nil
	}
	m.state.SetBusy(ActivityReload, true)
	return reloadCmd(m.services)
}

func (m *Model) startExport() tea.Cmd {
	if m.services == nil {
		return nil
	}
	ds := m.state.Dataset()
	if ds == nil {
		return m.toast(LevelWarning, "Nothing to export yet")
	}
	m.state.SetBusy(ActivityExport, true)
	return exportCmd(m.services, ds, m.state.Result())
}

func (m *Model) finishExport(msg ExportResultMsg) tea.Cmd {
	m.state.SetBusy(ActivityExport, false)
	if msg.Err != nil {
		return m.toast(LevelError, "Export failed: "+msg.Err.Error())
	}
	m.state.SetLastExport(msg.Path)
	return m.toast(LevelSuccess, fmt.Sprintf("Exported %s to %s", english.Plural(msg.Rows, "trip", ""), msg.Path))
}

// toast shows a message and schedules its removal.
func (m *Model) toast(level Level, text string) tea.Cmd {
	id := m.state.PushToast(level, text)
	return tea.Tick(level.lifetime(), func(time.Time) tea.Msg {
		return dismissToastMsg{id: id}
	})
}
