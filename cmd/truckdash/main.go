// Package main is the entry point for truckdash.
// It loads configuration, opens the trip dataset and runs the Bubble Tea program.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/truckdash/internal/app"
	"github.com/j-veylop/truckdash/internal/config"
	"github.com/j-veylop/truckdash/internal/logger"
	"github.com/j-veylop/truckdash/internal/services"
	"github.com/j-veylop/truckdash/internal/ui/tabs/dashboard"
	"github.com/j-veylop/truckdash/internal/ui/tabs/filters"
	"github.com/j-veylop/truckdash/internal/ui/tabs/info"
	"github.com/j-veylop/truckdash/internal/ui/tabs/trips"
	"github.com/j-veylop/truckdash/internal/version"
)

func main() {
	args := os.Args[1:]

	if len(args) > 0 {
		switch args[0] {
		case "-v", "--version":
			fmt.Println(version.Info())
			os.Exit(0)
		case "-h", "--help":
			printUsage()
			os.Exit(0)
		case "summary":
			if err := runSummary(args[1:], os.Stdout); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			os.Exit(0)
		}
	}

	if err := run(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the environment and applies a data file given on the command line.
func loadConfig(file string) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if file != "" {
		cfg.DataFile = file
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.EnsureDirs(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// run starts the interactive dashboard.
func run(args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("unexpected argument %q", args[1])
	}
	var file string
	if len(args) == 1 {
		file = args[0]
	}

	cfg, err := loadConfig(file)
	if err != nil {
		return err
	}

	// Logs go to a file; stderr would corrupt the alternate screen.
	logFile, err := logger.SetupFile(cfg.LogFile, logger.ParseLevel(cfg.LogLevel))
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	logger.Info("Starting truckdash", "version", version.GetVersion(), "file", cfg.DataFile)

	svcManager, err := services.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", cfg.DataFile, err)
	}
	defer func() {
		if closeErr := svcManager.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: error closing services: %v\n", closeErr)
		}
	}()

	model := app.NewModel(svcManager)

	state := model.State()
	model.SetTabs([]app.Tab{
		dashboard.New(state),
		filters.New(state),
		trips.New(state),
		info.New(state, cfg, svcManager.Source()),
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	go func() {
		<-sigChan
		p.Send(tea.Quit())
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

// printUsage prints the command-line usage information.
func printUsage() {
	fmt.Println(`truckdash - Truck logistics trip dashboard

Usage:
  truckdash [file]                       Open the dashboard for an .xlsx or .csv file
  truckdash summary [file] [filters]     Print KPIs without starting the dashboard

Flags:
  -h, --help      Show this help message
  -v, --version   Show version information

Summary filters (repeatable):
  --driver NAME   --product NAME   --destination NAME   --truck PLATE
  --export        Also write the filtered trips to the export directory

Keyboard Shortcuts:
  1-4             Switch between tabs (Dashboard, Filters, Trips, Info)
  Tab/Shift+Tab   Navigate between tabs
  j/k, Up/Down    Navigate lists
  Space           Toggle a filter value
  e               Export the filtered trips
  r               Reload the data file
  ?               Toggle help
  q, Ctrl+C       Quit

Environment Variables:
  TRUCKDASH_DATA_FILE        Data file used when none is given
  TRUCKDASH_SHEET            Worksheet to read (default: first sheet)
  TRUCKDASH_EXPORT_DIR       Export directory (default: current directory)
  TRUCKDASH_EXPORT_FORMAT    same, xlsx or csv (default: same)
  TRUCKDASH_WATCH            Reload when the file changes (default: true)
  TRUCKDASH_RELOAD_DEBOUNCE  Delay before reloading (default: 250ms)
  TRUCKDASH_NOTIFY           Desktop notifications (default: true)
  TRUCKDASH_LOG_LEVEL        debug, info, warn or error (default: info)
  TRUCKDASH_LOG_FILE         Log file (default: ~/.config/truckdash/truckdash.log)

Configuration:
  The application looks for .env files in the following locations:
  - Current directory
  - ~/.config/truckdash/.env
  - Parent directory`)
}
