package tabular

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/xuri/excelize/v2"

	"github.com/j-veylop/truckdash/internal/models"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)

var dateLayouts = []string{
	dateLayout,
	dateTimeLayout,
	"2006-01-02T15:04:05",
	time.RFC3339,
	"01/02/2006",
	"2006/01/02",
	"02.01.2006",
}

var (
	errBlank        = errors.New("value is required")
	errNegative     = errors.New("must not be negative")
	errInvalidDate  = errors.New("not a recognised date")
	errInvalidValue = errors.New("not a number")
)

// validate is safe for concurrent use once built.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Struct fields checked by validator, mapped back to the column that feeds them.
var fieldColumns = map[string]models.Column{
	"DriverName":     models.ColumnDriverName,
	"Product":        models.ColumnProduct,
	"DistanceKm":     models.ColumnDistance,
	"FuelUsedLiters": models.ColumnFuelUsed,
	"NetWeightKg":    models.ColumnNetWeight,
	"TruckWeightKg":  models.ColumnTruckWeight,
}

// parseRecord converts one data row into a trip. rowNum is the 1-based sheet row.
func parseRecord(cells []string, layout models.Layout, index map[models.Column]int, rowNum int) (models.TripRecord, error) {
	var rec models.TripRecord

	cell := func(col models.Column) (string, bool) {
		i, ok := index[col]
		if !ok {
			return "", false
		}
		if i >= len(cells) {
			return "", true
		}
		return strings.TrimSpace(cells[i]), true
	}
	fail := func(col models.Column, err error) error {
		return &RowError{Row: rowNum, Column: headerFor(layout, col), Err: err}
	}

	raw, _ := cell(models.ColumnDate)
	date, err := parseDate(raw)
	if err != nil {
		return rec, fail(models.ColumnDate, err)
	}
	rec.Date = date

	rec.DriverName, _ = cell(models.ColumnDriverName)
	rec.Product, _ = cell(models.ColumnProduct)
	rec.Destination, _ = cell(models.ColumnDestination)
	rec.TruckPlate, _ = cell(models.ColumnTruckPlate)

	numbers := []struct {
		col      models.Column
		dst      *float64
		required bool
	}{
		{models.ColumnDistance, &rec.DistanceKm, true},
		{models.ColumnFuelUsed, &rec.FuelUsedLiters, true},
		{models.ColumnNetWeight, &rec.NetWeightKg, true},
		{models.ColumnTruckWeight, &rec.TruckWeightKg, false},
	}
	for _, n := range numbers {
		raw, _ := cell(n.col)
		if n.required && isBlankNumber(raw) {
			return rec, fail(n.col, errBlank)
		}
		v, err := parseNumber(raw)
		if err != nil {
			return rec, fail(n.col, err)
		}
		*n.dst = v
	}

	if err := validate.Struct(&rec); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			cause := errNegative
			if fe.Tag() == "required" {
				cause = errBlank
			}
			return rec, fail(fieldColumns[fe.StructField()], cause)
		}
		return rec, &RowError{Row: rowNum, Err: err}
	}

	raw, present := cell(models.ColumnFuelEfficiency)
	if present && raw != "" {
		v, err := parseNumber(raw)
		if err != nil {
			return rec, fail(models.ColumnFuelEfficiency, err)
		}
		rec.FuelEfficiencyKmPerLiter = v
	} else {
		rec.FuelEfficiencyKmPerLiter = models.FuelEfficiency(rec.DistanceKm, rec.FuelUsedLiters)
	}

	return rec, nil
}

// parseDate accepts Excel serial numbers and common textual layouts.
// Times are rounded to the second.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, errBlank
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %v", errInvalidDate, err)
		}
		return t.Round(time.Second).UTC(), nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Round(time.Second).UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", errInvalidDate, s)
}

// parseNumber reads a plain or thousands-separated number. Blank is zero;
// callers reading a required measure check isBlankNumber first.
func parseNumber(s string) (float64, error) {
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", errInvalidValue, s)
	}
	return v, nil
}

func isBlankNumber(s string) bool {
	return strings.Trim(s, ", ") == ""
}

// formatDate is the inverse of parseDate for values written by Encode.
func formatDate(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
		return t.Format(dateLayout)
	}
	return t.Format(dateTimeLayout)
}
