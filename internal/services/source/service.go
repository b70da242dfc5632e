// Package source loads the trip spreadsheet and reloads it when the file changes on disk.
package source

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/j-veylop/truckdash/internal/logger"
	"github.com/j-veylop/truckdash/internal/models"
	"github.com/j-veylop/truckdash/internal/tabular"
)

// EventType distinguishes snapshot events from failures.
type EventType int

const (
	// EventDatasetLoaded carries a freshly loaded snapshot.
	EventDatasetLoaded EventType = iota
	// EventError reports a reload or watcher failure nobody asked for.
	EventError
)

// Event is published on the service's event channel.
type Event struct {
	Type    EventType
	Dataset *models.Dataset
	Error   error
}

// Options configures a Service.
type Options struct {
	Path     string
	Sheet    string
	Watch    bool
	Debounce time.Duration
}

const (
	defaultDebounce = 250 * time.Millisecond
	eventBuffer     = 16
)

// Service holds the latest dataset snapshot for one spreadsheet file.
type Service struct {
	opts Options

	mu       sync.RWMutex
	current  *models.Dataset
	watching bool

	events chan Event
	done   chan struct{}
	wg     sync.WaitGroup

	closeOnce sync.Once
	closeErr  error
	watcher   *fsnotify.Watcher
}

// New loads the file once and, if requested, starts watching it.
// A file that cannot be loaded is an error: there is nothing to show without it.
func New(opts Options) (*Service, error) {
	if opts.Path == "" {
		return nil, errors.New("no data file configured")
	}
	if opts.Debounce <= 0 {
		opts.Debounce = defaultDebounce
	}
	if abs, err := filepath.Abs(opts.Path); err == nil {
		opts.Path = abs
	}

	ds, err := tabular.LoadFile(opts.Path, opts.Sheet)
	if err != nil {
		return nil, err
	}

	s := &Service{
		opts:    opts,
		current: ds,
		events:  make(chan Event, eventBuffer),
		done:    make(chan struct{}),
	}

	if opts.Watch {
		if err := s.watch(); err != nil {
			return nil, fmt.Errorf("failed to start file watcher: %w", err)
		}
	}

	s.publish(Event{Type: EventDatasetLoaded, Dataset: ds})
	return s, nil
}

// Events delivers new snapshots and unsolicited failures.
func (s *Service) Events() <-chan Event {
	return s.events
}

// Current returns the most recently loaded snapshot.
func (s *Service) Current() *models.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Path returns the absolute path of the data file.
func (s *Service) Path() string {
	return s.opts.Path
}

// Watching reports whether file changes currently trigger reloads.
func (s *Service) Watching() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.watching
}

// Reload reads the file again on request. On failure the previous snapshot stays current
// and the error is returned to the caller only.
func (s *Service) Reload() error {
	return s.load()
}

func (s *Service) load() error {
	ds, err := tabular.LoadFile(s.opts.Path, s.opts.Sheet)
	if err != nil {
		logger.Warn("Reload failed", "path", s.opts.Path, "error", err)
		return err
	}

	s.mu.Lock()
	s.current = ds
	s.mu.Unlock()

	s.publish(Event{Type: EventDatasetLoaded, Dataset: ds})
	return nil
}

// watch follows the file's directory so editors that save by rename are still seen.
func (s *Service) watch() error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(s.opts.Path)); err != nil {
		_ = w.Close()
		return err
	}

	s.watcher = w
	s.mu.Lock()
	s.watching = true
	s.mu.Unlock()

	s.wg.Add(1)
	go s.watchLoop(w)
	return nil
}

// watchLoop coalesces bursts of writes into one reload per quiet period.
func (s *Service) watchLoop(w *fsnotify.Watcher) {
	defer s.wg.Done()
	defer func() {
		s.mu.Lock()
		s.watching = false
		s.mu.Unlock()
	}()

	name := filepath.Base(s.opts.Path)
	var quiet <-chan time.Time

	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) == name && ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				quiet = time.After(s.opts.Debounce)
			}

		case <-quiet:
			quiet = nil
			s.reloadChanged()

		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			s.publish(Event{Type: EventError, Error: err})

		case <-s.done:
			return
		}
	}
}

// reloadChanged reloads after a change on disk. Nobody is waiting on the result, so
// failures are published instead of returned.
func (s *Service) reloadChanged() {
	// Spreadsheet tools write in several steps; a missing file mid-save is not an error yet.
	if _, err := os.Stat(s.opts.Path); errors.Is(err, os.ErrNotExist) {
		logger.Debug("Source file missing, waiting for it to reappear", "path", s.opts.Path)
		return
	}

	logger.Info("Source file changed, reloading", "path", s.opts.Path)
	if err := s.load(); err != nil {
		s.publish(Event{Type: EventError, Error: err})
	}
}

// publish never blocks. When the buffer is full the oldest event is dropped, since a
// newer snapshot supersedes it.
func (s *Service) publish(ev Event) {
	for {
		select {
		case s.events <- ev:
			return
		default:
		}
		select {
		case <-s.events:
		default:
		}
	}
}

// Close stops watching. It is safe to call more than once.
func (s *Service) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
		if s.watcher != nil {
			s.closeErr = s.watcher.Close()
		}
		s.wg.Wait()
	})
	return s.closeErr
}
