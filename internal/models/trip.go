// Package models defines data structures and domain types.
package models

import (
	"time"
)

// Field identifies a categorical trip attribute that can be filtered or grouped on.
type Field int

const (
	// FieldDriver is the driver name.
	FieldDriver Field = iota
	// FieldProduct is the hauled product.
	FieldProduct
	// FieldDestination is the delivery destination.
	FieldDestination
	// FieldTruckPlate is the truck licence plate.
	FieldTruckPlate
)

// FilterableFields lists the fields a FilterSelection may restrict, in display order.
var FilterableFields = []Field{FieldDriver, FieldProduct, FieldDestination, FieldTruckPlate}

// String returns the display name for a field.
func (f Field) String() string {
	switch f {
	case FieldDriver:
		return "Driver"
	case FieldProduct:
		return "Product"
	case FieldDestination:
		return "Destination"
	case FieldTruckPlate:
		return "Truck Plate"
	default:
		return "Unknown"
	}
}

// Slug returns the short lowercase token used in file names and CLI flags.
func (f Field) Slug() string {
	switch f {
	case FieldDriver:
		return "driver"
	case FieldProduct:
		return "product"
	case FieldDestination:
		return "destination"
	case FieldTruckPlate:
		return "truck"
	default:
		return "unknown"
	}
}

// ParseField resolves a slug such as "driver" or "truck" to a Field.
func ParseField(s string) (Field, bool) {
	for _, f := range FilterableFields {
		if f.Slug() == s {
			return f, true
		}
	}
	return 0, false
}

// Measure identifies a numeric trip attribute that can be aggregated.
type Measure int

const (
	// MeasureDistance is the trip distance in kilometres.
	MeasureDistance Measure = iota
	// MeasureFuel is the fuel used in litres.
	MeasureFuel
	// MeasureNetWeight is the net load weight in kilograms.
	MeasureNetWeight
	// MeasureTruckWeight is the truck weight in kilograms.
	MeasureTruckWeight
	// MeasureFuelEfficiency is kilometres per litre.
	MeasureFuelEfficiency
)

// String returns the display name for a measure, including its unit.
func (m Measure) String() string {
	switch m {
	case MeasureDistance:
		return "Distance (km)"
	case MeasureFuel:
		return "Fuel Used (L)"
	case MeasureNetWeight:
		return "Net Weight (kg)"
	case MeasureTruckWeight:
		return "Truck Weight (kg)"
	case MeasureFuelEfficiency:
		return "Fuel Efficiency (km/l)"
	default:
		return "Unknown"
	}
}

// TripRecord is one row of the dataset: a single truck delivery trip.
type TripRecord struct {
	Date                     time.Time
	DriverName               string  `validate:"required"`
	TruckPlate               string
	Product                  string  `validate:"required"`
	Destination              string
	DistanceKm               float64 `validate:"gte=0"`
	FuelUsedLiters           float64 `validate:"gte=0"`
	NetWeightKg              float64 `validate:"gte=0"`
	TruckWeightKg            float64 `validate:"gte=0"`
	FuelEfficiencyKmPerLiter float64
}

// Value returns the record's value for a categorical field.
func (r *TripRecord) Value(f Field) string {
	switch f {
	case FieldDriver:
		return r.DriverName
	case FieldProduct:
		return r.Product
	case FieldDestination:
		return r.Destination
	case FieldTruckPlate:
		return r.TruckPlate
	default:
		return ""
	}
}

// Measure returns the record's value for a numeric measure.
func (r *TripRecord) Measure(m Measure) float64 {
	switch m {
	case MeasureDistance:
		return r.DistanceKm
	case MeasureFuel:
		return r.FuelUsedLiters
	case MeasureNetWeight:
		return r.NetWeightKg
	case MeasureTruckWeight:
		return r.TruckWeightKg
	case MeasureFuelEfficiency:
		return r.FuelEfficiencyKmPerLiter
	default:
		return 0
	}
}

// FuelEfficiency derives km per litre. Zero fuel yields 0 rather than Inf or NaN.
func FuelEfficiency(distanceKm, fuelLiters float64) float64 {
	if fuelLiters == 0 {
		return 0
	}
	return distanceKm / fuelLiters
}

// Format is the tabular file format a dataset was read from.
type Format int

const (
	// FormatXLSX is an Office Open XML spreadsheet.
	FormatXLSX Format = iota
	// FormatCSV is comma separated values.
	FormatCSV
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatXLSX:
		return "xlsx"
	case FormatCSV:
		return "csv"
	default:
		return "unknown"
	}
}

// Ext returns the file extension including the dot.
func (f Format) Ext() string {
	return "." + f.String()
}

// Column identifies one recognised spreadsheet column.
type Column int

const (
	ColumnDate Column = iota
	ColumnDriverName
	ColumnProduct
	ColumnDestination
	ColumnTruckPlate
	ColumnDistance
	ColumnFuelUsed
	ColumnNetWeight
	ColumnTruckWeight
	ColumnFuelEfficiency
)

// Header returns the canonical header text for the column.
func (c Column) Header() string {
	switch c {
	case ColumnDate:
		return "Date"
	case ColumnDriverName:
		return "Driver Name"
	case ColumnProduct:
		return "Product"
	case ColumnDestination:
		return "Destination"
	case ColumnTruckPlate:
		return "Truck Plate"
	case ColumnDistance:
		return "Distance (km)"
	case ColumnFuelUsed:
		return "Fuel Used (liters)"
	case ColumnNetWeight:
		return "Net Weight (kg)"
	case ColumnTruckWeight:
		return "Truck Weight (kg)"
	case ColumnFuelEfficiency:
		return "Fuel Efficiency (km/l)"
	default:
		return ""
	}
}

// Layout records how a dataset was laid out on disk so exports can reproduce it.
type Layout struct {
	Format  Format
	Sheet   string
	Columns []Column
	// Headers holds the header text as spelled in the source, parallel to Columns.
	Headers []string
}

// Has reports whether the layout contains the column.
func (l Layout) Has(c Column) bool {
	for _, col := range l.Columns {
		if col == c {
			return true
		}
	}
	return false
}

// Dataset is an immutable snapshot of trips loaded at a point in time.
type Dataset struct {
	ID       string
	Source   string
	LoadedAt time.Time
	Layout   Layout
	rows     []TripRecord
}

// NewDataset wraps rows into a snapshot. The slice is copied so later edits by the caller
// cannot leak into the snapshot.
func NewDataset(id, source string, layout Layout, rows []TripRecord, loadedAt time.Time) *Dataset {
	owned := make([]TripRecord, len(rows))
	copy(owned, rows)
	return &Dataset{
		ID:       id,
		Source:   source,
		LoadedAt: loadedAt,
		Layout:   layout,
		rows:     owned,
	}
}

// Rows returns the snapshot rows. Callers must treat the result as read-only.
func (d *Dataset) Rows() []TripRecord {
	if d == nil {
		return nil
	}
	return d.rows
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.rows)
}
