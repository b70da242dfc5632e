// Package app is the root Bubble Tea model: it owns the tab bar, global keys, toasts
// and the shared State every tab renders from.
package app

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// TabID identifies a tab by its position in the tab bar.
type TabID int

const (
	TabDashboard TabID = iota
	TabFilters
	TabTrips
	TabInfo
)

var tabTitles = [...]string{"Dashboard", "Filters", "Trips", "Info"}

func (t TabID) String() string {
	if t < 0 || int(t) >= len(tabTitles) {
		return "Unknown"
	}
	return tabTitles[t]
}

// Tab is one screen of the application. Tabs read from the shared State and receive
// ResultUpdatedMsg whenever the filtered result changes, even while hidden.
type Tab interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Tab, tea.Cmd)
	View() string
	SetSize(width, height int)
	ShortHelp() []key.Binding
	FullHelp() [][]key.Binding
}
