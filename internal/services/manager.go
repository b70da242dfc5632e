// Package services wires the data source, exports and desktop notifications together.
package services

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gen2brain/beeep"

	"github.com/j-veylop/truckdash/internal/config"
	"github.com/j-veylop/truckdash/internal/engine"
	"github.com/j-veylop/truckdash/internal/logger"
	"github.com/j-veylop/truckdash/internal/models"
	"github.com/j-veylop/truckdash/internal/services/source"
)

type (
	// DatasetLoadedEvent is emitted when a new dataset snapshot is available.
	DatasetLoadedEvent struct {
		Dataset *models.Dataset
	}

	// ErrorEvent reports a failure that no caller is waiting on, such as a reload
	// triggered by a file change.
	ErrorEvent struct {
		Service string
		Error   error
	}
)

// ServiceEvent is the interface implemented by all service events.
type ServiceEvent interface {
	isServiceEvent()
}

func (DatasetLoadedEvent) isServiceEvent() {}
func (ErrorEvent) isServiceEvent()         {}

// Notifier sends desktop notifications.
type Notifier func(title, message string) error

func beeepNotifier(title, message string) error {
	return beeep.Notify(title, message, "")
}

const (
	subscriberBuffer = 50
	maxExportSuffix  = 999
)

// Manager owns the data source and fans its events out to subscribers.
type Manager struct {
	cfg    *config.Config
	source *source.Service
	notify Notifier
	now    func() time.Time

	mu          sync.RWMutex
	subscribers []chan ServiceEvent

	// exportMu serializes exports so two of them never pick the same free name.
	exportMu  sync.Mutex
	stop      chan struct{}
	closeOnce sync.Once
}

// NewManager loads the configured data file and starts routing its events.
func NewManager(cfg *config.Config) (*Manager, error) {
	src, err := source.New(source.Options{
		Path:     cfg.DataFile,
		Sheet:    cfg.Sheet,
		Watch:    cfg.Watch,
		Debounce: cfg.ReloadDebounce,
	})
	if err != nil {
		return nil, err
	}

	m := &Manager{
		cfg:    cfg,
		source: src,
		now:    time.Now,
		stop:   make(chan struct{}),
	}
	if cfg.Notify {
		m.notify = beeepNotifier
	}

	// The initial snapshot is served through Dataset(); only reloads are routed.
	select {
	case <-src.Events():
	default:
	}

	go m.route()

	return m, nil
}

func (m *Manager) route() {
	for {
		select {
		case ev := <-m.source.Events():
			m.handleSourceEvent(ev)
		case <-m.stop:
			return
		}
	}
}

// handleSourceEvent forwards snapshots and unsolicited failures. Failures of a manual
// Reload never arrive here; the caller gets them as a return value.
func (m *Manager) handleSourceEvent(ev source.Event) {
	switch ev.Type {
	case source.EventDatasetLoaded:
		m.broadcast(DatasetLoadedEvent{Dataset: ev.Dataset})
	case source.EventError:
		m.broadcast(ErrorEvent{Service: "source", Error: ev.Error})
		m.desktopNotify("Reload failed", ev.Error.Error())
	}
}

func (m *Manager) broadcast(ev ServiceEvent) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, sub := range m.subscribers {
		select {
		case sub <- ev:
		default:
			logger.Debug("Subscriber full, dropping event", "event", fmt.Sprintf("%T", ev))
		}
	}
}

// Subscribe returns a channel that receives every event until the manager is closed.
func (m *Manager) Subscribe() <-chan ServiceEvent {
	ch := make(chan ServiceEvent, subscriberBuffer)

	m.mu.Lock()
	m.subscribers = append(m.subscribers, ch)
	m.mu.Unlock()

	return ch
}

// Dataset returns the latest dataset snapshot.
func (m *Manager) Dataset() *models.Dataset {
	return m.source.Current()
}

// Source returns the underlying data source.
func (m *Manager) Source() *source.Service {
	return m.source
}

// Reload re-reads the data file. The error goes to the caller only.
func (m *Manager) Reload() error {
	return m.source.Reload()
}

// Export encodes rows with the dataset's layout and writes them into the export directory,
// naming the file after the selection. It returns the written path.
func (m *Manager) Export(ds *models.Dataset, rows []models.TripRecord, sel models.FilterSelection) (string, error) {
	if ds == nil {
		return "", errors.New("no dataset loaded")
	}

	format := ds.Layout.Format
	override := m.cfg.ExportOverride()
	if override != nil {
		format = *override
	}

	payload, err := engine.Export(ds, rows, override)
	if err != nil {
		return "", fmt.Errorf("failed to encode export: %w", err)
	}

	m.exportMu.Lock()
	path, err := writeExport(filepath.Join(m.cfg.ExportDir, engine.ExportFileName(sel, format, m.now())), payload)
	m.exportMu.Unlock()
	if err != nil {
		return "", err
	}

	logger.Info("Export written", "path", path, "rows", len(rows), "format", format.String())
	m.desktopNotify("Export complete", fmt.Sprintf("%d trips written to %s", len(rows), filepath.Base(path)))

	return path, nil
}

// writeExport writes data next to path and moves it to the first free name among
// path, path-2, path-3 and so on. Existing exports are never replaced.
func writeExport(path string, data []byte) (string, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".export-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err := os.Remove(tmpName); err != nil && !errors.Is(err, fs.ErrNotExist) {
			logger.Error("failed to remove temp file", "error", err)
		}
	}()

	_, err = tmp.Write(data)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}

	for n := 1; n <= maxExportSuffix; n++ {
		candidate := numbered(path, n)
		// A hard link fails instead of replacing an existing file.
		err := os.Link(tmpName, candidate)
		if err == nil {
			return candidate, nil
		}
		if errors.Is(err, fs.ErrExist) {
			continue
		}

		// Some filesystems have no hard links.
		if _, statErr := os.Stat(candidate); statErr == nil {
			continue
		}
		if err := os.Rename(tmpName, candidate); err != nil {
			return "", fmt.Errorf("failed to move export into place: %w", err)
		}
		return candidate, nil
	}

	return "", fmt.Errorf("no free export name for %s", filepath.Base(path))
}

// numbered inserts "-n" before the extension for n > 1.
func numbered(path string, n int) string {
	if n <= 1 {
		return path
	}
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "-" + strconv.Itoa(n) + ext
}

func (m *Manager) desktopNotify(title, body string) {
	if m.notify == nil {
		return
	}
	if err := m.notify("truckdash: "+title, body); err != nil {
		logger.Debug("desktop notification failed", "error", err)
	}
}

// Close stops routing, closes every subscriber channel and the data source.
func (m *Manager) Close() error {
	var err error
	m.closeOnce.Do(func() {
		close(m.stop)

		m.mu.Lock()
		for _, sub := range m.subscribers {
			close(sub)
		}
		m.subscribers = nil
		m.mu.Unlock()

		err = m.source.Close()
	})
	return err
}
