package models

import "time"

// Aggregation is the reduction applied to a measure within a group.
type Aggregation int

const (
	// AggregationSum adds values.
	AggregationSum Aggregation = iota
	// AggregationMean averages values; an empty group yields 0.
	AggregationMean
	// AggregationCount counts rows and ignores the measure.
	AggregationCount
)

// String returns the aggregation name.
func (a Aggregation) String() string {
	switch a {
	case AggregationSum:
		return "sum"
	case AggregationMean:
		return "mean"
	case AggregationCount:
		return "count"
	default:
		return "unknown"
	}
}

// KPISet holds the headline aggregates over a set of trips. Values are raw; formatting
// belongs to the presentation layer.
type KPISet struct {
	TotalDistanceKm       float64
	TotalFuelLiters       float64
	TotalNetWeightKg      float64
	TripCount             int
	AverageFuelEfficiency float64
}

// Group is one bucket of a grouped series.
type Group struct {
	Key       string
	Value     float64
	Count     int
	SubGroups []Group
}

// GroupedSeries is a categorical breakdown of a measure. Groups are ordered by the
// first appearance of their key in the input rows.
type GroupedSeries struct {
	Field       Field
	SubField    *Field
	Measure     Measure
	Aggregation Aggregation
	Groups      []Group
}

// Total sums the top-level group values.
func (g GroupedSeries) Total() float64 {
	var total float64
	for _, grp := range g.Groups {
		total += grp.Value
	}
	return total
}

// Keys returns the top-level group keys in order.
func (g GroupedSeries) Keys() []string {
	keys := make([]string, len(g.Groups))
	for i, grp := range g.Groups {
		keys[i] = grp.Key
	}
	return keys
}

// Lookup returns the group with the given key.
func (g GroupedSeries) Lookup(key string) (Group, bool) {
	for _, grp := range g.Groups {
		if grp.Key == key {
			return grp, true
		}
	}
	return Group{}, false
}

// SeriesPoint is one dated value in a time series.
type SeriesPoint struct {
	Date  time.Time
	Value float64
}

// Series is a named, date-ordered sequence of points.
type Series struct {
	Name   string
	Points []SeriesPoint
}

// Values returns the point values in date order.
func (s Series) Values() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Value
	}
	return out
}

// TimeSeries is a measure split into one series per category, ordered by date.
type TimeSeries struct {
	Field   Field
	Measure Measure
	Series  []Series
}

// QueryResult is everything the dashboard renders for one filter selection.
type QueryResult struct {
	Selection               FilterSelection
	Rows                    []TripRecord
	KPIs                    KPISet
	DistanceByDriver        GroupedSeries
	DistanceByDriverProduct GroupedSeries
	WeightByProduct         GroupedSeries
	FuelOverTime            TimeSeries
}
