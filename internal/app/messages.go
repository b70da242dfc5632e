package app

import (
	"github.com/j-veylop/truckdash/internal/models"
	"github.com/j-veylop/truckdash/internal/services"
)

// DatasetLoadedMsg carries a dataset snapshot to install into the state.
type DatasetLoadedMsg struct {
	Dataset *models.Dataset
	Reload  bool
}

// SelectionChangedMsg replaces the filter selection.
type SelectionChangedMsg struct {
	Selection models.FilterSelection
}

// ResultUpdatedMsg is sent to every tab after the query result was recomputed.
type ResultUpdatedMsg struct {
	Revision int
}

// ReloadResultMsg is the outcome of a manual reload. The snapshot itself arrives
// separately through the service subscription.
type ReloadResultMsg struct {
	Err error
}

// ExportResultMsg is the outcome of an export.
type ExportResultMsg struct {
	Path string
	Rows int
	Err  error
}

type (
	serviceEventMsg struct{ event services.ServiceEvent }
	dismissToastMsg struct{ id int }
)
