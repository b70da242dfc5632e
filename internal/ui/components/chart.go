// Package components provides reusable UI components for the TUI.
package components

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/guptarohit/asciigraph"

	"github.com/j-veylop/truckdash/internal/models"
	"github.com/j-veylop/truckdash/internal/ui/styles"
)

const (
	minChartWidth  = 20
	minChartHeight = 3
	maxLabelWidth  = 18
	barRune        = "█"
)

var sparkChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

func noData() string {
	return styles.HelpStyle.Render("No data available")
}

// AlignTimeSeries puts every series on the union of dates, filling days a series
// has no trips with zero. It returns the sorted date labels and one row per series.
func AlignTimeSeries(ts models.TimeSeries) ([]string, [][]float64) {
	seen := make(map[string]bool)
	var dates []string
	for _, s := range ts.Series {
		for _, p := range s.Points {
			d := p.Date.Format("2006-01-02")
			if !seen[d] {
				seen[d] = true
				dates = append(dates, d)
			}
		}
	}
	// ISO dates sort lexically.
	slices.Sort(dates)
	index := make(map[string]int, len(dates))
	for i, d := range dates {
		index[d] = i
	}

	rows := make([][]float64, len(ts.Series))
	for i, s := range ts.Series {
		row := make([]float64, len(dates))
		for _, p := range s.Points {
			row[index[p.Date.Format("2006-01-02")]] += p.Value
		}
		rows[i] = row
	}
	return dates, rows
}

// RenderTimeSeriesChart plots one line per series with a colored legend underneath.
// Narrow terminals get one sparkline per series instead.
func RenderTimeSeriesChart(ts models.TimeSeries, width, height int) string {
	dates, rows := AlignTimeSeries(ts)
	if len(dates) == 0 {
		return noData()
	}

	legend := make([]LegendItem, len(ts.Series))
	for i, s := range ts.Series {
		legend[i] = LegendItem{Label: s.Name, Color: styles.SeriesColor(i)}
	}

	if width < 40 {
		return renderSparklineRows(ts, rows, width)
	}

	// asciigraph needs at least two points to draw a line.
	if len(dates) == 1 {
		for i := range rows {
			rows[i] = append(rows[i], rows[i][0])
		}
	}

	colors := make([]asciigraph.AnsiColor, len(rows))
	for i := range rows {
		colors[i] = styles.SeriesGraphColor(i)
	}

	caption := dates[0]
	if len(dates) > 1 {
		caption = dates[0] + " → " + dates[len(dates)-1]
	}

	// Leave room for the y-axis labels.
	plotWidth := max(width-12, minChartWidth)
	graph := asciigraph.PlotMany(rows,
		asciigraph.Height(max(height, minChartHeight)),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(colors...),
	)

	return graph + "\n\n" + RenderLegend(legend)
}

func renderSparklineRows(ts models.TimeSeries, rows [][]float64, width int) string {
	labelWidth := 0
	for _, s := range ts.Series {
		labelWidth = max(labelWidth, lipgloss.Width(s.Name))
	}
	labelWidth = min(labelWidth, maxLabelWidth)
	sparkWidth := max(width-labelWidth-1, 5)

	lines := make([]string, len(rows))
	for i, row := range rows {
		label := padRight(ansi.Truncate(ts.Series[i].Name, labelWidth, "…"), labelWidth)
		spark := lipgloss.NewStyle().Foreground(styles.SeriesColor(i)).Render(RenderSparkline(row, sparkWidth))
		lines[i] = label + " " + spark
	}
	return strings.Join(lines, "\n")
}

// RenderStackedBars draws one horizontal bar per outer group, split into colored
// segments per sub-group. Sub-group colors are stable across bars so the legend
// applies to every row.
func RenderStackedBars(series models.GroupedSeries, width int) string {
	if len(series.Groups) == 0 {
		return noData()
	}

	colorIndex := make(map[string]int)
	var legend []LegendItem
	for _, g := range series.Groups {
		for _, sub := range g.SubGroups {
			if _, ok := colorIndex[sub.Key]; !ok {
				colorIndex[sub.Key] = len(legend)
				legend = append(legend, LegendItem{Label: sub.Key, Color: styles.SeriesColor(len(legend))})
			}
		}
	}

	maxVal := 0.0
	for _, g := range series.Groups {
		maxVal = max(maxVal, g.Value)
	}
	if maxVal == 0 {
		maxVal = 1
	}

	labelWidth := labelColumnWidth(series.Keys())
	barWidth := max(width-labelWidth-14, 10)

	lines := make([]string, 0, len(series.Groups)+2)
	for _, g := range series.Groups {
		var bar strings.Builder
		if len(g.SubGroups) == 0 {
			bar.WriteString(strings.Repeat(barRune, scaled(g.Value, maxVal, barWidth)))
		}
		// Accumulate before rounding so the segments add up to the bar length.
		var acc float64
		drawn := 0
		for _, sub := range g.SubGroups {
			acc += sub.Value
			end := scaled(acc, maxVal, barWidth)
			if n := end - drawn; n > 0 {
				style := lipgloss.NewStyle().Foreground(legend[colorIndex[sub.Key]].Color)
				bar.WriteString(style.Render(strings.Repeat(barRune, n)))
			}
			drawn = max(drawn, end)
		}
		lines = append(lines, fmt.Sprintf("%s │%s %s", padLeft(fitLabel(g.Key, labelWidth), labelWidth), bar.String(), FormatNumber(g.Value, 1)))
	}

	if len(legend) > 0 {
		lines = append(lines, "", RenderLegend(legend))
	}
	return strings.Join(lines, "\n")
}

// RenderShareBars shows each group's share of the total as a bar and percentage.
func RenderShareBars(series models.GroupedSeries, width int) string {
	total := series.Total()
	if len(series.Groups) == 0 || total == 0 {
		return noData()
	}

	labelWidth := labelColumnWidth(series.Keys())
	barWidth := max(width-labelWidth-24, 10)

	lines := make([]string, 0, len(series.Groups))
	for i, g := range series.Groups {
		share := g.Value / total
		style := lipgloss.NewStyle().Foreground(styles.SeriesColor(i))
		bar := style.Render(strings.Repeat(barRune, scaled(g.Value, total, barWidth)))
		lines = append(lines, fmt.Sprintf("%s │%s %5.1f%% %s",
			padLeft(fitLabel(g.Key, labelWidth), labelWidth), bar, share*100, styles.HelpStyle.Render(FormatNumber(g.Value, 0))))
	}
	return strings.Join(lines, "\n")
}

func scaled(v, maxVal float64, width int) int {
	if maxVal <= 0 || v <= 0 {
		return 0
	}
	return min(int(math.Round(v/maxVal*float64(width))), width)
}

func labelColumnWidth(labels []string) int {
	w := 0
	for _, l := range labels {
		w = max(w, lipgloss.Width(l))
	}
	return min(w, maxLabelWidth)
}

func fitLabel(s string, width int) string {
	return ansi.Truncate(s, width, "…")
}

func padLeft(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return strings.Repeat(" ", gap) + s
	}
	return s
}

func padRight(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// RenderSparkline creates a compact inline sparkline chart.
func RenderSparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}

	maxVal := 0.0
	for _, v := range values {
		maxVal = max(maxVal, v)
	}
	if maxVal == 0 {
		maxVal = 1
	}

	// Sample values to fit width
	var result strings.Builder
	step := max(float64(len(values))/float64(width), 1)

	for i := 0; i < width && int(float64(i)*step) < len(values); i++ {
		val := values[int(float64(i)*step)]
		normalized := int((val / maxVal) * float64(len(sparkChars)-1))
		normalized = min(max(normalized, 0), len(sparkChars)-1)
		result.WriteRune(sparkChars[normalized])
	}

	return result.String()
}

// RenderLegend creates a chart legend.
func RenderLegend(items []LegendItem) string {
	var parts []string
	for _, item := range items {
		colorBox := lipgloss.NewStyle().Foreground(item.Color).Render("■")
		parts = append(parts, fmt.Sprintf("%s %s", colorBox, item.Label))
	}
	return strings.Join(parts, "  ")
}

// LegendItem represents a single legend entry.
type LegendItem struct {
	Label string
	Color lipgloss.Color
}
