package engine

import (
	"github.com/j-veylop/truckdash/internal/models"
)

// Query runs the full dashboard computation for one selection. A nil dataset yields an
// empty result.
func Query(ds *models.Dataset, sel models.FilterSelection) models.QueryResult {
	rows := Filter(ds.Rows(), sel)

	return models.QueryResult{
		Selection:               sel.Clone(),
		Rows:                    rows,
		KPIs:                    Aggregate(rows),
		DistanceByDriver:        GroupBy(rows, models.FieldDriver, models.MeasureDistance, models.AggregationSum),
		DistanceByDriverProduct: GroupByNested(rows, models.FieldDriver, models.FieldProduct, models.MeasureDistance, models.AggregationSum),
		WeightByProduct:         GroupBy(rows, models.FieldProduct, models.MeasureNetWeight, models.AggregationSum),
		FuelOverTime:            TimeSeries(rows, models.FieldDriver, models.MeasureFuel),
	}
}
