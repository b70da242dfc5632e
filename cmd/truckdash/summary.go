package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/j-veylop/truckdash/internal/engine"
	"github.com/j-veylop/truckdash/internal/logger"
	"github.com/j-veylop/truckdash/internal/models"
	"github.com/j-veylop/truckdash/internal/services"
	"github.com/j-veylop/truckdash/internal/ui/components"
)

// summaryArgs are the parsed arguments of the summary command.
type summaryArgs struct {
	file      string
	selection models.FilterSelection
	export    bool
}

// parseSummaryArgs accepts an optional file followed by --field value (or --field=value) pairs.
func parseSummaryArgs(args []string) (summaryArgs, error) {
	out := summaryArgs{selection: models.FilterSelection{}}

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if !strings.HasPrefix(arg, "--") {
			if out.file != "" {
				return out, fmt.Errorf("unexpected argument %q", arg)
			}
			out.file = arg
			continue
		}

		name, value, hasValue := strings.Cut(strings.TrimPrefix(arg, "--"), "=")
		if name == "export" {
			if hasValue {
				return out, fmt.Errorf("--export takes no value")
			}
			out.export = true
			continue
		}

		field, ok := models.ParseField(name)
		if !ok {
			return out, fmt.Errorf("unknown flag %q", arg)
		}
		if !hasValue {
			if i+1 >= len(args) {
				return out, fmt.Errorf("flag %q needs a value", arg)
			}
			i++
			value = args[i]
		}
		if !out.selection.Has(field, value) {
			out.selection = out.selection.Toggle(field, value)
		}
	}

	return out, nil
}

// runSummary loads the data file once, applies the filters and prints the KPIs.
func runSummary(args []string, w io.Writer) error {
	parsed, err := parseSummaryArgs(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(parsed.file)
	if err != nil {
		return err
	}
	cfg.Watch = false
	cfg.Notify = false

	logger.Setup(os.Stderr, logger.ParseLevel(cfg.LogLevel))

	mgr, err := services.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", cfg.DataFile, err)
	}
	defer mgr.Close()

	ds := mgr.Dataset()
	res := engine.Query(ds, parsed.selection)
	writeSummary(w, ds, res)

	if parsed.export {
		path, err := mgr.Export(ds, res.Rows, res.Selection)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "\nExported %d trips to %s\n", len(res.Rows), path)
	}
	return nil
}

func writeSummary(w io.Writer, ds *models.Dataset, res models.QueryResult) {
	fmt.Fprintf(w, "%s\n", ds.Source)
	fmt.Fprintf(w, "filter: %s (%d of %d trips)\n\n", res.Selection.String(), len(res.Rows), ds.Len())

	for _, kpi := range components.KPIs(res.KPIs) {
		value := kpi.Value
		if kpi.Unit != "" {
			value += " " + kpi.Unit
		}
		fmt.Fprintf(w, "%-18s %s\n", kpi.Label+":", value)
	}

	if len(res.DistanceByDriver.Groups) > 0 {
		fmt.Fprintf(w, "\nDistance by driver:\n")
		for _, g := range res.DistanceByDriver.Groups {
			fmt.Fprintf(w, "  %-16s %s km\n", g.Key, components.FormatNumber(g.Value, 1))
		}
	}
}
