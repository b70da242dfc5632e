package models

import "testing"

func TestGroupedSeries_Helpers(t *testing.T) {
	gs := GroupedSeries{
		Groups: []Group{
			{Key: "Gravel", Value: 100, Count: 1},
			{Key: "Sand", Value: 50, Count: 2},
		},
	}

	if gs.Total() != 150 {
		t.Errorf("Total() = %v, want 150", gs.Total())
	}

	keys := gs.Keys()
	if len(keys) != 2 || keys[0] != "Gravel" || keys[1] != "Sand" {
		t.Errorf("Keys() = %v", keys)
	}

	g, ok := gs.Lookup("Sand")
	if !ok || g.Count != 2 {
		t.Errorf("Lookup(Sand) = %+v, %v", g, ok)
	}
	if _, ok := gs.Lookup("Clay"); ok {
		t.Error("Lookup(Clay) should miss")
	}
}

func TestAggregation_String(t *testing.T) {
	if AggregationSum.String() != "sum" || AggregationMean.String() != "mean" || AggregationCount.String() != "count" {
		t.Error("unexpected aggregation names")
	}
}
