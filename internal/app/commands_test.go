package app

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/j-veylop/truckdash/internal/config"
	"github.com/j-veylop/truckdash/internal/engine"
	"github.com/j-veylop/truckdash/internal/models"
	"github.com/j-veylop/truckdash/internal/services"
)

const testCSV = "Date,Driver Name,Product,Destination,Distance (km),Fuel Used (liters),Net Weight (kg)\n" +
	"2025-08-01,A,Gravel,North,100,20,1000\n" +
	"2025-08-01,B,Sand,South,50,10,500\n"

func newTestManager(t *testing.T) (*services.Manager, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "trips.csv")
	if err := os.WriteFile(path, []byte(testCSV), 0o600); err != nil {
		t.Fatalf("write data file: %v", err)
	}

	exportDir := filepath.Join(dir, "exports")
	mgr, err := services.NewManager(&config.Config{
		DataFile:     path,
		ExportDir:    exportDir,
		ExportFormat: "same",
	})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	t.Cleanup(func() { _ = mgr.Close() })
	return mgr, exportDir
}

func TestSetSelection(t *testing.T) {
	sel := models.FilterSelection{}.With(models.FieldProduct, "Gravel")
	msg := SetSelection(sel)()

	changed, ok := msg.(SelectionChangedMsg)
	if !ok {
		t.Fatalf("Expected SelectionChangedMsg, got %T", msg)
	}
	if !changed.Selection.Has(models.FieldProduct, "Gravel") {
		t.Error("selection not carried")
	}
}

func TestInitialDataCmd(t *testing.T) {
	mgr, _ := newTestManager(t)

	loaded, ok := initialDataCmd(mgr)().(DatasetLoadedMsg)
	if !ok {
		t.Fatal("Expected DatasetLoadedMsg")
	}
	if loaded.Dataset.Len() != 2 {
		t.Errorf("rows = %d, want 2", loaded.Dataset.Len())
	}
	if loaded.Reload {
		t.Error("initial load should not be flagged as reload")
	}
}

func TestExportCmd(t *testing.T) {
	mgr, exportDir := newTestManager(t)
	ds := mgr.Dataset()
	result := engine.Query(ds, models.FilterSelection{}.With(models.FieldDriver, "A"))

	res, ok := exportCmd(mgr, ds, result)().(ExportResultMsg)
	if !ok {
		t.Fatal("Expected ExportResultMsg")
	}
	if res.Err != nil {
		t.Fatalf("export failed: %v", res.Err)
	}
	if res.Rows != 1 {
		t.Errorf("Rows = %d, want 1", res.Rows)
	}
	if filepath.Dir(res.Path) != exportDir {
		t.Errorf("Path = %s, want file in %s", res.Path, exportDir)
	}

	data, err := os.ReadFile(res.Path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.Contains(string(data), "Gravel") || strings.Contains(string(data), "Sand") {
		t.Errorf("export should contain only the filtered row:\n%s", data)
	}
}

func TestReloadCmd(t *testing.T) {
	mgr, _ := newTestManager(t)

	res, ok := reloadCmd(mgr)().(ReloadResultMsg)
	if !ok {
		t.Fatal("Expected ReloadResultMsg")
	}
	if res.Err != nil {
		t.Errorf("reload failed: %v", res.Err)
	}
}

func TestWaitForEvent_Closed(t *testing.T) {
	ch := make(chan services.ServiceEvent)
	close(ch)
	if msg := waitForEvent(ch)(); msg != nil {
		t.Errorf("closed channel should yield nil, got %T", msg)
	}
}

func TestWaitForEvent(t *testing.T) {
	ch := make(chan services.ServiceEvent, 1)
	ch <- services.ErrorEvent{Service: "source", Error: errors.New("boom")}

	msg, ok := waitForEvent(ch)().(serviceEventMsg)
	if !ok {
		t.Fatal("Expected serviceEventMsg")
	}
	if _, ok := msg.event.(services.ErrorEvent); !ok {
		t.Errorf("unexpected event %T", msg.event)
	}
}
