// Package tabular reads and writes trip spreadsheets (xlsx and csv).
package tabular

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"

	"github.com/j-veylop/truckdash/internal/logger"
	"github.com/j-veylop/truckdash/internal/models"
)

var (
	// ErrUnsupportedFormat is returned for file extensions other than .xlsx and .csv.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrEmptySheet is returned when the input has no header row.
	ErrEmptySheet = errors.New("no header row found")
)

// SchemaError reports a required column that is missing from the header row.
type SchemaError struct {
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required column %q", e.Column)
}

// RowError reports a cell that could not be parsed or validated.
// Row is the 1-based row number as shown by spreadsheet software.
type RowError struct {
	Row    int
	Column string
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d, column %q: %v", e.Row, e.Column, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (models.Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return models.FormatXLSX, nil
	case ".csv":
		return models.FormatCSV, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// ParseFormat parses "xlsx" or "csv".
func ParseFormat(s string) (models.Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "xlsx":
		return models.FormatXLSX, nil
	case "csv":
		return models.FormatCSV, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// DefaultColumns is the canonical column order used when a layout carries none.
var DefaultColumns = []models.Column{
	models.ColumnDate,
	models.ColumnDriverName,
	models.ColumnTruckPlate,
	models.ColumnProduct,
	models.ColumnDestination,
	models.ColumnDistance,
	models.ColumnFuelUsed,
	models.ColumnNetWeight,
	models.ColumnTruckWeight,
	models.ColumnFuelEfficiency,
}

var requiredColumns = []models.Column{
	models.ColumnDate,
	models.ColumnDriverName,
	models.ColumnProduct,
	models.ColumnDistance,
	models.ColumnFuelUsed,
	models.ColumnNetWeight,
}

// Alternative spellings seen in the wild, on top of Column.Header().
var columnAliases = map[models.Column][]string{
	models.ColumnDriverName:     {"Driver"},
	models.ColumnFuelUsed:       {"Fuel Used (L)", "Fuel Used"},
	models.ColumnTruckWeight:    {"Total Weight (kg)", "Total Weight"},
	models.ColumnFuelEfficiency: {"Fuel Efficiency"},
}

var headerLookup = buildHeaderLookup()

func buildHeaderLookup() map[string]models.Column {
	lookup := make(map[string]models.Column)
	for _, col := range DefaultColumns {
		lookup[normalizeHeader(col.Header())] = col
		for _, alias := range columnAliases[col] {
			lookup[normalizeHeader(alias)] = col
		}
	}
	return lookup
}

// normalizeHeader folds case and drops whitespace so "driver name" matches "Driver Name".
func normalizeHeader(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	s = strings.Join(strings.Fields(s), "")
	return cases.Fold().String(s)
}

// resolveHeader maps a header row onto known columns. Unknown columns are skipped.
// It returns the layout in source order and each column's cell index.
func resolveHeader(header []string) (models.Layout, map[models.Column]int, error) {
	var layout models.Layout
	index := make(map[models.Column]int)

	for i, raw := range header {
		col, ok := headerLookup[normalizeHeader(raw)]
		if !ok {
			if strings.TrimSpace(raw) != "" {
				logger.Debug("Ignoring unknown column", "header", raw)
			}
			continue
		}
		if _, dup := index[col]; dup {
			logger.Warn("Duplicate column, keeping first", "header", raw)
			continue
		}
		index[col] = i
		layout.Columns = append(layout.Columns, col)
		layout.Headers = append(layout.Headers, strings.TrimSpace(strings.TrimPrefix(raw, "\ufeff")))
	}

	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return models.Layout{}, nil, &SchemaError{Column: col.Header()}
		}
	}

	return layout, index, nil
}

// headerFor returns the source spelling of a column, or its canonical header.
func headerFor(layout models.Layout, col models.Column) string {
	for i, c := range layout.Columns {
		if c == col && i < len(layout.Headers) {
			return layout.Headers[i]
		}
	}
	return col.Header()
}
