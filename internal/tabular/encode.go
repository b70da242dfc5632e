package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/j-veylop/truckdash/internal/models"
)

const defaultSheet = "Trips"

// Encode writes rows in the layout's format, with the layout's columns and header text
// in the same order. An empty row set produces a header-only payload.
func Encode(w io.Writer, layout models.Layout, rows []models.TripRecord) error {
	columns, headers := layoutColumns(layout)

	switch layout.Format {
	case models.FormatXLSX:
		return encodeXLSX(w, layout.Sheet, columns, headers, rows)
	case models.FormatCSV:
		return encodeCSV(w, columns, headers, rows)
	default:
		return ErrUnsupportedFormat
	}
}

func layoutColumns(layout models.Layout) ([]models.Column, []string) {
	if len(layout.Columns) == 0 {
		headers := make([]string, len(DefaultColumns))
		for i, col := range DefaultColumns {
			headers[i] = col.Header()
		}
		return DefaultColumns, headers
	}

	headers := make([]string, len(layout.Columns))
	for i, col := range layout.Columns {
		if i < len(layout.Headers) && layout.Headers[i] != "" {
			headers[i] = layout.Headers[i]
		} else {
			headers[i] = col.Header()
		}
	}
	return layout.Columns, headers
}

func encodeXLSX(w io.Writer, sheet string, columns []models.Column, headers []string, rows []models.TripRecord) error {
	if sheet == "" {
		sheet = defaultSheet
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if first := f.GetSheetName(0); first != sheet {
		if err := f.SetSheetName(first, sheet); err != nil {
			return fmt.Errorf("failed to name sheet: %w", err)
		}
	}

	header := make([]interface{}, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i := range rows {
		values := make([]interface{}, len(columns))
		for j, col := range columns {
			values[j] = cellValue(&rows[i], col)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func encodeCSV(w io.Writer, columns []models.Column, headers []string, rows []models.TripRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(headers); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	record := make([]string, len(columns))
	for i := range rows {
		for j, col := range columns {
			switch v := cellValue(&rows[i], col).(type) {
			case string:
				record[j] = v
			case float64:
				record[j] = strconv.FormatFloat(v, 'f', -1, 64)
			}
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// cellValue returns a string for text and date columns and a float64 for measures.
func cellValue(r *models.TripRecord, col models.Column) interface{} {
	switch col {
	case models.ColumnDate:
		return formatDate(r.Date)
	case models.ColumnDriverName:
		return r.DriverName
	case models.ColumnProduct:
		return r.Product
	case models.ColumnDestination:
		return r.Destination
	case models.ColumnTruckPlate:
		return r.TruckPlate
	case models.ColumnDistance:
		return r.DistanceKm
	case models.ColumnFuelUsed:
		return r.FuelUsedLiters
	case models.ColumnNetWeight:
		return r.NetWeightKg
	case models.ColumnTruckWeight:
		return r.TruckWeightKg
	case models.ColumnFuelEfficiency:
		return r.FuelEfficiencyKmPerLiter
	default:
		return ""
	}
}
