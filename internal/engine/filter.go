// Package engine filters trip rows and reduces them to KPIs and chart series.
// Every function is pure: inputs are never mutated and no state is kept between calls.
package engine

import (
	"github.com/j-veylop/truckdash/internal/models"
)

// Filter keeps the rows whose value for every restricted field is one of the allowed
// values. Unrestricted fields pass everything. Source order is preserved.
func Filter(rows []models.TripRecord, sel models.FilterSelection) []models.TripRecord {
	allowed := make(map[models.Field]map[string]struct{})
	for _, f := range models.FilterableFields {
		vals := sel[f]
		if len(vals) == 0 {
			continue
		}
		set := make(map[string]struct{}, len(vals))
		for _, v := range vals {
			set[v] = struct{}{}
		}
		allowed[f] = set
	}

	out := make([]models.TripRecord, 0, len(rows))
	for i := range rows {
		if matches(&rows[i], allowed) {
			out = append(out, rows[i])
		}
	}
	return out
}

func matches(r *models.TripRecord, allowed map[models.Field]map[string]struct{}) bool {
	for f, set := range allowed {
		if _, ok := set[r.Value(f)]; !ok {
			return false
		}
	}
	return true
}

// DistinctValues returns the non-empty values of a field in first-seen order.
func DistinctValues(rows []models.TripRecord, field models.Field) []string {
	seen := make(map[string]struct{})
	var out []string
	for i := range rows {
		v := rows[i].Value(field)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
