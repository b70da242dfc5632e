package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/j-veylop/truckdash/internal/logger"
	"github.com/j-veylop/truckdash/internal/models"
)

// Decode reads trips from r. For xlsx input, sheet selects the worksheet; empty means the
// first one. The returned layout records the columns found, in source order.
func Decode(r io.Reader, format models.Format, sheet string) (models.Layout, []models.TripRecord, error) {
	var (
		grid [][]string
		err  error
	)

	switch format {
	case models.FormatXLSX:
		sheet, grid, err = readXLSX(r, sheet)
	case models.FormatCSV:
		sheet = ""
		grid, err = readCSV(r)
	default:
		return models.Layout{}, nil, ErrUnsupportedFormat
	}
	if err != nil {
		return models.Layout{}, nil, err
	}

	skipped := 0
	for skipped < len(grid) && isBlankRow(grid[skipped]) {
		skipped++
	}
	grid = grid[skipped:]
	if len(grid) == 0 {
		return models.Layout{}, nil, ErrEmptySheet
	}

	layout, index, err := resolveHeader(grid[0])
	if err != nil {
		return models.Layout{}, nil, err
	}
	layout.Format = format
	layout.Sheet = sheet

	rows := make([]models.TripRecord, 0, len(grid)-1)
	for i, cells := range grid[1:] {
		if isBlankRow(cells) {
			continue
		}
		rec, err := parseRecord(cells, layout, index, skipped+i+2)
		if err != nil {
			return models.Layout{}, nil, err
		}
		rows = append(rows, rec)
	}

	return layout, rows, nil
}

// LoadFile reads a spreadsheet from disk into a fresh dataset snapshot.
func LoadFile(path, sheet string) (*models.Dataset, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	layout, rows, err := Decode(f, format, sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	ds := models.NewDataset(uuid.NewString(), path, layout, rows, time.Now())
	logger.Info("Dataset loaded", "path", path, "rows", len(rows), "columns", len(layout.Columns), "id", ds.ID)
	return ds, nil
}

func readXLSX(r io.Reader, sheet string) (string, [][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return "", nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", nil, ErrEmptySheet
	}
	if sheet == "" {
		sheet = sheets[0]
	} else if !slices.Contains(sheets, sheet) {
		return "", nil, fmt.Errorf("sheet %q not found (have %s)", sheet, strings.Join(sheets, ", "))
	}

	grid, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return "", nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return sheet, grid, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	grid, err := cr.ReadAll()
	if err != nil {
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			return nil, &RowError{Row: perr.Line, Err: perr.Err}
		}
		return nil, err
	}
	return grid, nil
}

func isBlankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
