// Package config contains everything related to configuration
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/j-veylop/truckdash/internal/models"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "TRUCKDASH"

// Config holds the application configuration.
type Config struct {
	DataFile       string        `envconfig:"DATA_FILE" validate:"required"`
	Sheet          string        `envconfig:"SHEET"`
	ExportDir      string        `envconfig:"EXPORT_DIR"`
	ExportFormat   string        `envconfig:"EXPORT_FORMAT" default:"same" validate:"oneof=same xlsx csv"`
	Watch          bool          `envconfig:"WATCH" default:"true"`
	ReloadDebounce time.Duration `envconfig:"RELOAD_DEBOUNCE" default:"250ms" validate:"gte=0"`
	Notify         bool          `envconfig:"NOTIFY" default:"true"`
	LogLevel       string        `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn warning error"`
	LogFile        string        `envconfig:"LOG_FILE"`
}

// Load reads configuration from .env files and environment variables.
// It does not validate; call Validate once command line overrides are applied.
func Load() (*Config, error) {
	// Try loading .env from multiple locations
	for _, path := range getEnvPaths() {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			break
		}
	}

	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("invalid environment: %w", err)
	}

	cfg.ExportFormat = strings.ToLower(strings.TrimSpace(cfg.ExportFormat))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))

	if cfg.ExportDir == "" {
		cfg.ExportDir = "."
	}
	if cfg.LogFile == "" {
		cfg.LogFile = getDefaultLogPath()
	}

	return &cfg, nil
}

// Validate checks required settings and enumerations.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	err := v.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		name := envName(fe.StructField())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, name+" is required")
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s], got %q", name, fe.Param(), fe.Value()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid (%s)", name, fe.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}

// ExportOverride returns the format exports are forced to, or nil to keep the source format.
func (c *Config) ExportOverride() *models.Format {
	var f models.Format
	switch c.ExportFormat {
	case "xlsx":
		f = models.FormatXLSX
	case "csv":
		f = models.FormatCSV
	default:
		return nil
	}
	return &f
}

// EnsureDirs creates the export and log directories.
func (c *Config) EnsureDirs() error {
	if err := ensureDir(c.ExportDir); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	if err := ensureDir(filepath.Dir(c.LogFile)); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	return nil
}

// envName maps a Config field to its environment variable.
func envName(field string) string {
	if sf, ok := configFields[field]; ok {
		return EnvPrefix + "_" + sf
	}
	return field
}

var configFields = map[string]string{
	"DataFile":       "DATA_FILE",
	"Sheet":          "SHEET",
	"ExportDir":      "EXPORT_DIR",
	"ExportFormat":   "EXPORT_FORMAT",
	"Watch":          "WATCH",
	"ReloadDebounce": "RELOAD_DEBOUNCE",
	"Notify":         "NOTIFY",
	"LogLevel":       "LOG_LEVEL",
	"LogFile":        "LOG_FILE",
}

// getEnvPaths returns a list of paths to check for .env files.
func getEnvPaths() []string {
	var paths []string

	// Current directory
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "truckdash", ".env"))
	}

	// Parent directory, handy when running from a data subfolder
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(filepath.Dir(cwd), ".env"))
	}

	return paths
}

// getDefaultLogPath returns the default path for the log file.
func getDefaultLogPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "truckdash.log"
	}
	return filepath.Join(home, ".config", "truckdash", "truckdash.log")
}

// ensureDir creates a directory and all parent directories if they don't exist.
func ensureDir(path string) error {
	if path == "" || path == "." {
		return nil
	}
	return os.MkdirAll(path, 0o750)
}
