package app

import "time"

// Level grades a toast.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarning
	LevelError
)

// lifetime is how long a toast of this level stays on screen.
func (l Level) lifetime() time.Duration {
	switch l {
	case LevelInfo:
		return 3 * time.Second
	case LevelError:
		return 10 * time.Second
	default:
		return 5 * time.Second
	}
}

// Toast is a short message stacked in the top-right corner.
type Toast struct {
	ID    int
	Level Level
	Text  string
}

const maxToasts = 5

// Activity is a background operation shown as a spinner toast while it runs.
type Activity int

const (
	ActivityReload Activity = iota
	ActivityExport
)

func (a Activity) label() string {
	if a == ActivityExport {
		return "Exporting..."
	}
	return "Reloading..."
}

// PushToast appends a toast and returns its id. Only the newest maxToasts are kept.
func (s *State) PushToast(level Level, text string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.toastSeq++
	s.toasts = append(s.toasts, Toast{ID: s.toastSeq, Level: level, Text: text})
	if n := len(s.toasts); n > maxToasts {
		s.toasts = append([]Toast(nil), s.toasts[n-maxToasts:]...)
	}
	return s.toastSeq
}

// DismissToast removes a toast. Unknown ids are ignored.
func (s *State) DismissToast(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.toasts {
		if t.ID == id {
			s.toasts = append(s.toasts[:i:i], s.toasts[i+1:]...)
			return
		}
	}
}

// Toasts returns the visible toasts, oldest first.
func (s *State) Toasts() []Toast {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Toast(nil), s.toasts...)
}

// SetBusy marks an activity as running or finished.
func (s *State) SetBusy(a Activity, on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if on {
		s.busy[a] = true
	} else {
		delete(s.busy, a)
	}
}

// BusyLabel describes what is running, or returns "" when idle.
func (s *State) BusyLabel() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch {
	case s.busy[ActivityExport]:
		return ActivityExport.label()
	case s.busy[ActivityReload]:
		return ActivityReload.label()
	}
	return ""
}
