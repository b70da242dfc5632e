package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/j-veylop/truckdash/internal/models"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range configFields {
		t.Setenv(EnvPrefix+"_"+name, "")
		os.Unsetenv(EnvPrefix + "_" + name)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.ExportFormat != "same" {
		t.Errorf("ExportFormat = %q, want same", cfg.ExportFormat)
	}
	if !cfg.Watch {
		t.Error("Watch should default to true")
	}
	if !cfg.Notify {
		t.Error("Notify should default to true")
	}
	if cfg.ReloadDebounce != 250*time.Millisecond {
		t.Errorf("ReloadDebounce = %v, want 250ms", cfg.ReloadDebounce)
	}
	if cfg.ExportDir != "." {
		t.Errorf("ExportDir = %q, want .", cfg.ExportDir)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.LogFile == "" {
		t.Error("LogFile should have a default")
	}
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	t.Setenv("TRUCKDASH_DATA_FILE", "/data/trips.xlsx")
	t.Setenv("TRUCKDASH_SHEET", "August")
	t.Setenv("TRUCKDASH_EXPORT_FORMAT", "CSV")
	t.Setenv("TRUCKDASH_WATCH", "false")
	t.Setenv("TRUCKDASH_RELOAD_DEBOUNCE", "1s")
	t.Setenv("TRUCKDASH_LOG_LEVEL", "Debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.DataFile != "/data/trips.xlsx" {
		t.Errorf("DataFile = %q", cfg.DataFile)
	}
	if cfg.Sheet != "August" {
		t.Errorf("Sheet = %q", cfg.Sheet)
	}
	if cfg.ExportFormat != "csv" {
		t.Errorf("ExportFormat = %q, want csv", cfg.ExportFormat)
	}
	if cfg.Watch {
		t.Error("Watch should be false")
	}
	if cfg.ReloadDebounce != time.Second {
		t.Errorf("ReloadDebounce = %v", cfg.ReloadDebounce)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() failed: %v", err)
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("TRUCKDASH_RELOAD_DEBOUNCE", "soon")

	if _, err := Load(); err == nil {
		t.Error("Load() should reject an unparsable duration")
	}
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Chdir(dir)

	content := "TRUCKDASH_DATA_FILE=from-dotenv.csv\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("TRUCKDASH_DATA_FILE") })

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.DataFile != "from-dotenv.csv" {
		t.Errorf("DataFile = %q, want from-dotenv.csv", cfg.DataFile)
	}
}

func TestValidate(t *testing.T) {
	valid := Config{DataFile: "trips.csv", ExportFormat: "same", LogLevel: "info"}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"missing data file", func(c *Config) { c.DataFile = "" }, "TRUCKDASH_DATA_FILE is required"},
		{"bad export format", func(c *Config) { c.ExportFormat = "pdf" }, "TRUCKDASH_EXPORT_FORMAT must be one of"},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "TRUCKDASH_LOG_LEVEL"},
		{"negative debounce", func(c *Config) { c.ReloadDebounce = -time.Second }, "TRUCKDASH_RELOAD_DEBOUNCE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestExportOverride(t *testing.T) {
	tests := []struct {
		format string
		want   *models.Format
	}{
		{"same", nil},
		{"xlsx", formatPtr(models.FormatXLSX)},
		{"csv", formatPtr(models.FormatCSV)},
	}

	for _, tt := range tests {
		cfg := Config{ExportFormat: tt.format}
		got := cfg.ExportOverride()
		switch {
		case tt.want == nil && got != nil:
			t.Errorf("ExportOverride(%q) = %v, want nil", tt.format, *got)
		case tt.want != nil && (got == nil || *got != *tt.want):
			t.Errorf("ExportOverride(%q) = %v, want %v", tt.format, got, *tt.want)
		}
	}
}

func formatPtr(f models.Format) *models.Format { return &f }

func TestEnsureDirs(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := Config{
		ExportDir: filepath.Join(tmpDir, "exports", "nested"),
		LogFile:   filepath.Join(tmpDir, "logs", "truckdash.log"),
	}

	if err := cfg.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs() failed: %v", err)
	}

	for _, dir := range []string{cfg.ExportDir, filepath.Dir(cfg.LogFile)} {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			t.Errorf("directory %s was not created", dir)
		}
	}

	if err := ensureDir(""); err != nil {
		t.Error("ensureDir(\"\") should not error")
	}
}

func TestGetEnvPaths(t *testing.T) {
	paths := getEnvPaths()
	if len(paths) == 0 {
		t.Fatal("expected at least one .env candidate")
	}
	for _, p := range paths {
		if filepath.Base(p) != ".env" {
			t.Errorf("unexpected candidate %q", p)
		}
	}
}
