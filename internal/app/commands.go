package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/truckdash/internal/models"
	"github.com/j-veylop/truckdash/internal/services"
)

// SetSelection returns a command that replaces the filter selection.
func SetSelection(sel models.FilterSelection) tea.Cmd {
	return func() tea.Msg {
		return SelectionChangedMsg{Selection: sel}
	}
}

func initialDataCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		return DatasetLoadedMsg{Dataset: mgr.Dataset()}
	}
}

func reloadCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		return ReloadResultMsg{Err: mgr.Reload()}
	}
}

func exportCmd(mgr *services.Manager, ds *models.Dataset, result models.QueryResult) tea.Cmd {
	return func() tea.Msg {
		path, err := mgr.Export(ds, result.Rows, result.Selection)
		return ExportResultMsg{Path: path, Rows: len(result.Rows), Err: err}
	}
}

// waitForEvent yields the next service event. A closed channel ends the subscription.
func waitForEvent(ch <-chan services.ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return serviceEventMsg{event: ev}
	}
}
