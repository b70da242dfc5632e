package app

import (
	"sync"

	"github.com/j-veylop/truckdash/internal/engine"
	"github.com/j-veylop/truckdash/internal/models"
)

// State is the per-session view of the data: one dataset snapshot, the user's filter
// selection and the query result derived from both. The result is recomputed whenever
// either input changes.
type State struct {
	mu sync.RWMutex

	dataset   *models.Dataset
	selection models.FilterSelection
	result    models.QueryResult
	options   map[models.Field][]string
	revision  int

	lastExport string

	busy     map[Activity]bool
	toasts   []Toast
	toastSeq int
}

// NewState creates an empty state waiting for its first dataset.
func NewState() *State {
	return &State{
		selection: models.FilterSelection{},
		options:   make(map[models.Field][]string),
		busy:      make(map[Activity]bool),
	}
}

// SetDataset swaps in a new snapshot. The current selection is kept; values that no
// longer exist simply match nothing.
func (s *State) SetDataset(ds *models.Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dataset = ds
	s.options = make(map[models.Field][]string, len(models.FilterableFields))
	for _, f := range models.FilterableFields {
		s.options[f] = engine.DistinctValues(ds.Rows(), f)
	}
	s.requeryLocked()
}

// SetSelection replaces the filter selection and recomputes the result.
func (s *State) SetSelection(sel models.FilterSelection) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.selection = sel.Clone()
	s.requeryLocked()
}

func (s *State) requeryLocked() {
	s.result = engine.Query(s.dataset, s.selection)
	s.revision++
}

// Dataset returns the current snapshot, nil before the first load.
func (s *State) Dataset() *models.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dataset
}

// IsInitialLoading reports whether no dataset has arrived yet.
func (s *State) IsInitialLoading() bool {
	return s.Dataset() == nil
}

// Selection returns a copy of the current selection.
func (s *State) Selection() models.FilterSelection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selection.Clone()
}

// Result returns the latest query result. Its slices must be treated as read-only.
func (s *State) Result() models.QueryResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.result
}

// Revision increases every time the result is recomputed.
func (s *State) Revision() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// Options returns the distinct values of a field across the whole dataset.
func (s *State) Options(f models.Field) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.options[f]
}

func (s *State) SetLastExport(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastExport = path
}

// LastExport is the path of the most recent successful export, empty if none.
func (s *State) LastExport() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastExport
}
