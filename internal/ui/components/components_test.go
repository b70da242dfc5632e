package components

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/j-veylop/truckdash/internal/models"
)

func TestSpinner(t *testing.T) {
	s := NewSpinner("Loading trips...")

	if !strings.Contains(s.View(), "Loading trips...") {
		t.Error("View should include the label")
	}

	s.Label = ""
	if ansi.StringWidth(s.View()) != ansi.StringWidth(s.Model.View()) {
		t.Error("View without a label should be the bare spinner")
	}

	tick, ok := s.Tick().(spinner.TickMsg)
	if !ok {
		t.Fatal("Tick should produce a spinner.TickMsg")
	}
	next, cmd := s.Update(tick)
	if cmd == nil {
		t.Error("Update should schedule the next tick")
	}
	if next.Label != s.Label {
		t.Error("Update must keep the label")
	}
}

func TestRenderSpinnerCentered(t *testing.T) {
	view := RenderSpinnerCentered(NewSpinner("Loading..."), 20, 5)
	if !strings.Contains(view, "Loading...") {
		t.Error("RenderSpinnerCentered should include the label")
	}
	if lipgloss.Height(view) != 5 {
		t.Errorf("height = %d, want 5", lipgloss.Height(view))
	}
}

func day(d int) time.Time {
	return time.Date(2025, 8, d, 0, 0, 0, 0, time.UTC)
}

func fuelSeries() models.TimeSeries {
	return models.TimeSeries{
		Field:   models.FieldDriver,
		Measure: models.MeasureFuel,
		Series: []models.Series{
			{Name: "A", Points: []models.SeriesPoint{{Date: day(1), Value: 20}, {Date: day(3), Value: 16}}},
			{Name: "B", Points: []models.SeriesPoint{{Date: day(2), Value: 10}, {Date: day(3), Value: 5}}},
		},
	}
}

func TestAlignTimeSeries(t *testing.T) {
	dates, rows := AlignTimeSeries(fuelSeries())

	wantDates := []string{"2025-08-01", "2025-08-02", "2025-08-03"}
	if strings.Join(dates, ",") != strings.Join(wantDates, ",") {
		t.Fatalf("dates = %v, want %v", dates, wantDates)
	}

	want := [][]float64{{20, 0, 16}, {0, 10, 5}}
	for i := range want {
		for j := range want[i] {
			if rows[i][j] != want[i][j] {
				t.Errorf("rows[%d][%d] = %v, want %v", i, j, rows[i][j], want[i][j])
			}
		}
	}
}

func TestRenderTimeSeriesChart(t *testing.T) {
	out := RenderTimeSeriesChart(fuelSeries(), 80, 8)
	plain := ansi.Strip(out)
	if !strings.Contains(plain, "2025-08-01 → 2025-08-03") {
		t.Error("caption should span the date range")
	}
	if !strings.Contains(plain, "■ A") || !strings.Contains(plain, "■ B") {
		t.Error("legend should list every series")
	}
}

func TestRenderTimeSeriesChart_SingleDay(t *testing.T) {
	ts := models.TimeSeries{Series: []models.Series{
		{Name: "A", Points: []models.SeriesPoint{{Date: day(1), Value: 20}}},
		{Name: "B", Points: []models.SeriesPoint{{Date: day(1), Value: 10}}},
	}}
	out := ansi.Strip(RenderTimeSeriesChart(ts, 80, 5))
	if !strings.Contains(out, "2025-08-01") {
		t.Error("single day chart should still render")
	}
}

func TestRenderTimeSeriesChart_Narrow(t *testing.T) {
	out := ansi.Strip(RenderTimeSeriesChart(fuelSeries(), 30, 8))
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("narrow chart should render one sparkline per series, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "A ") {
		t.Errorf("line should start with the series name: %q", lines[0])
	}
}

func TestRenderTimeSeriesChart_Empty(t *testing.T) {
	if out := RenderTimeSeriesChart(models.TimeSeries{}, 80, 8); !strings.Contains(out, "No data") {
		t.Error("empty series should say no data")
	}
}

func stackedSeries() models.GroupedSeries {
	product := models.FieldProduct
	return models.GroupedSeries{
		Field:    models.FieldDriver,
		SubField: &product,
		Measure:  models.MeasureDistance,
		Groups: []models.Group{
			{Key: "A", Value: 180, Count: 2, SubGroups: []models.Group{{Key: "Gravel", Value: 100}, {Key: "Sand", Value: 80}}},
			{Key: "B", Value: 50, Count: 1, SubGroups: []models.Group{{Key: "Sand", Value: 50}}},
		},
	}
}

func TestRenderStackedBars(t *testing.T) {
	out := ansi.Strip(RenderStackedBars(stackedSeries(), 60))
	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("want 2 bars, a blank line and a legend, got %d lines:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "180") || !strings.Contains(lines[1], "50") {
		t.Error("bars should carry totals")
	}
	if strings.Count(lines[0], barRune) <= strings.Count(lines[1], barRune) {
		t.Error("A should have the longer bar")
	}
	if lines[3] != "■ Gravel  ■ Sand" {
		t.Errorf("legend = %q", lines[3])
	}
}

func TestRenderStackedBars_SegmentsFillBar(t *testing.T) {
	out := ansi.Strip(RenderStackedBars(stackedSeries(), 60))
	first := strings.Split(out, "\n")[0]
	// 60 - 1 label - 14 = 45 cells for the largest bar.
	if got := strings.Count(first, barRune); got != 45 {
		t.Errorf("largest bar = %d cells, want 45", got)
	}
}

func TestRenderStackedBars_Empty(t *testing.T) {
	if out := RenderStackedBars(models.GroupedSeries{}, 60); !strings.Contains(out, "No data") {
		t.Error("empty series should say no data")
	}
}

func TestRenderShareBars(t *testing.T) {
	series := models.GroupedSeries{Groups: []models.Group{
		{Key: "Gravel", Value: 1000},
		{Key: "Sand", Value: 3000},
	}}
	out := ansi.Strip(RenderShareBars(series, 60))
	if !strings.Contains(out, "25.0%") || !strings.Contains(out, "75.0%") {
		t.Errorf("shares missing:\n%s", out)
	}

	if out := RenderShareBars(models.GroupedSeries{Groups: []models.Group{{Key: "x"}}}, 60); !strings.Contains(out, "No data") {
		t.Error("zero total should say no data")
	}
}

func TestLabelsAreTruncated(t *testing.T) {
	long := strings.Repeat("x", 40)
	series := models.GroupedSeries{Groups: []models.Group{{Key: long, Value: 1}}}
	out := ansi.Strip(RenderShareBars(series, 80))
	if strings.Contains(out, long) {
		t.Error("long labels should be truncated")
	}
	if !strings.Contains(out, "…") {
		t.Error("truncated label should end with an ellipsis")
	}
}

func TestRenderSparkline(t *testing.T) {
	s := RenderSparkline([]float64{0, 1, 2, 3}, 10)
	if s != "▁▃▅█" {
		t.Errorf("RenderSparkline = %q", s)
	}
	if RenderSparkline(nil, 10) != "" {
		t.Error("empty input should render nothing")
	}
}

func TestRenderLegend(t *testing.T) {
	items := []LegendItem{
		{Label: "A", Color: lipgloss.Color("#ffffff")},
		{Label: "B", Color: lipgloss.Color("#000000")},
	}
	if s := ansi.Strip(RenderLegend(items)); s != "■ A  ■ B" {
		t.Errorf("RenderLegend = %q", s)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		v        float64
		decimals int
		want     string
	}{
		{1234567, 0, "1,234,567"},
		{1234.5, 1, "1,234.5"},
		{0, 2, "0"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.v, tt.decimals); got != tt.want {
			t.Errorf("FormatNumber(%v, %d) = %q, want %q", tt.v, tt.decimals, got, tt.want)
		}
	}
}

func TestKPIs(t *testing.T) {
	kpis := KPIs(models.KPISet{
		TotalDistanceKm:       150,
		TotalFuelLiters:       30,
		TotalNetWeightKg:      1500,
		TripCount:             2,
		AverageFuelEfficiency: 5,
	})
	if len(kpis) != 5 {
		t.Fatalf("want 5 KPIs, got %d", len(kpis))
	}
	if kpis[2].Value != "1,500" || kpis[2].Unit != "kg" {
		t.Errorf("net weight KPI = %+v", kpis[2])
	}
	if kpis[3].Value != "2" {
		t.Errorf("trip count KPI = %+v", kpis[3])
	}
}

func TestRenderKPIRow(t *testing.T) {
	kpis := KPIs(models.KPISet{TripCount: 3})

	wide := ansi.Strip(RenderKPIRow(kpis, 150))
	if !strings.Contains(wide, "Total Distance") || !strings.Contains(wide, "Avg Efficiency") {
		t.Error("all cards should render")
	}
	wideLines := len(strings.Split(wide, "\n"))

	narrow := RenderKPIRow(kpis, 40)
	if len(strings.Split(narrow, "\n")) <= wideLines {
		t.Error("narrow layout should wrap onto more rows")
	}

	if RenderKPIRow(nil, 80) != "" {
		t.Error("no KPIs should render nothing")
	}
}
