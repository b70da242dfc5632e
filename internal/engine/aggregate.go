package engine

import (
	"sort"
	"time"

	"github.com/j-veylop/truckdash/internal/models"
)

// Aggregate computes the headline KPIs. Every value is zero for an empty input.
func Aggregate(rows []models.TripRecord) models.KPISet {
	var kpis models.KPISet
	if len(rows) == 0 {
		return kpis
	}

	var efficiency float64
	for i := range rows {
		kpis.TotalDistanceKm += rows[i].DistanceKm
		kpis.TotalFuelLiters += rows[i].FuelUsedLiters
		kpis.TotalNetWeightKg += rows[i].NetWeightKg
		efficiency += rows[i].FuelEfficiencyKmPerLiter
	}
	kpis.TripCount = len(rows)
	kpis.AverageFuelEfficiency = efficiency / float64(len(rows))

	return kpis
}

// accumulator tracks one group while rows are scanned.
type accumulator struct {
	key   string
	sum   float64
	count int
	inner *grouper
}

func (a *accumulator) value(kind models.Aggregation) float64 {
	switch kind {
	case models.AggregationMean:
		if a.count == 0 {
			return 0
		}
		return a.sum / float64(a.count)
	case models.AggregationCount:
		return float64(a.count)
	default:
		return a.sum
	}
}

// grouper buckets rows by key, remembering first-seen key order.
type grouper struct {
	order []*accumulator
	index map[string]*accumulator
}

func newGrouper() *grouper {
	return &grouper{index: make(map[string]*accumulator)}
}

func (g *grouper) get(key string) *accumulator {
	acc, ok := g.index[key]
	if !ok {
		acc = &accumulator{key: key}
		g.index[key] = acc
		g.order = append(g.order, acc)
	}
	return acc
}

func (g *grouper) groups(kind models.Aggregation) []models.Group {
	out := make([]models.Group, len(g.order))
	for i, acc := range g.order {
		out[i] = models.Group{
			Key:   acc.key,
			Value: acc.value(kind),
			Count: acc.count,
		}
		if acc.inner != nil {
			out[i].SubGroups = acc.inner.groups(kind)
		}
	}
	return out
}

// GroupBy partitions rows by a field and reduces the measure within each group.
// Groups appear in the order their key is first seen; each row lands in exactly one group.
func GroupBy(rows []models.TripRecord, field models.Field, measure models.Measure, kind models.Aggregation) models.GroupedSeries {
	g := newGrouper()
	for i := range rows {
		acc := g.get(rows[i].Value(field))
		acc.sum += rows[i].Measure(measure)
		acc.count++
	}

	return models.GroupedSeries{
		Field:       field,
		Measure:     measure,
		Aggregation: kind,
		Groups:      g.groups(kind),
	}
}

// GroupByNested groups by outer, then by inner within each outer group.
// Top-level values aggregate the whole outer group, not the sub-group values.
func GroupByNested(rows []models.TripRecord, outer, inner models.Field, measure models.Measure, kind models.Aggregation) models.GroupedSeries {
	g := newGrouper()
	for i := range rows {
		v := rows[i].Measure(measure)

		acc := g.get(rows[i].Value(outer))
		acc.sum += v
		acc.count++

		if acc.inner == nil {
			acc.inner = newGrouper()
		}
		sub := acc.inner.get(rows[i].Value(inner))
		sub.sum += v
		sub.count++
	}

	return models.GroupedSeries{
		Field:       outer,
		SubField:    &inner,
		Measure:     measure,
		Aggregation: kind,
		Groups:      g.groups(kind),
	}
}

// TimeSeries sums a measure per calendar date, one series per value of field.
// Series appear in first-seen order; points within a series are ordered by date.
func TimeSeries(rows []models.TripRecord, field models.Field, measure models.Measure) models.TimeSeries {
	type bucket struct {
		name   string
		totals map[time.Time]float64
	}

	var order []*bucket
	index := make(map[string]*bucket)

	for i := range rows {
		name := rows[i].Value(field)
		b, ok := index[name]
		if !ok {
			b = &bucket{name: name, totals: make(map[time.Time]float64)}
			index[name] = b
			order = append(order, b)
		}
		b.totals[calendarDay(rows[i].Date)] += rows[i].Measure(measure)
	}

	ts := models.TimeSeries{Field: field, Measure: measure}
	for _, b := range order {
		s := models.Series{Name: b.name, Points: make([]models.SeriesPoint, 0, len(b.totals))}
		for d, v := range b.totals {
			s.Points = append(s.Points, models.SeriesPoint{Date: d, Value: v})
		}
		sort.Slice(s.Points, func(i, j int) bool {
			return s.Points[i].Date.Before(s.Points[j].Date)
		})
		ts.Series = append(ts.Series, s)
	}
	return ts
}

func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
