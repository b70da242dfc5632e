package components

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/j-veylop/truckdash/internal/models"
	"github.com/j-veylop/truckdash/internal/ui/styles"
)

// KPI is one headline figure ready for display.
type KPI struct {
	Label string
	Value string
	Unit  string
}

// FormatNumber renders v rounded to at most decimals fraction digits, with thousands
// separators and without trailing zeros.
func FormatNumber(v float64, decimals int) string {
	scale := math.Pow10(max(decimals, 0))
	return humanize.CommafWithDigits(math.Round(v*scale)/scale, decimals)
}

// KPIs converts raw aggregates into the five dashboard cards.
func KPIs(k models.KPISet) []KPI {
	return []KPI{
		{Label: "Total Distance", Value: FormatNumber(k.TotalDistanceKm, 1), Unit: "km"},
		{Label: "Total Fuel", Value: FormatNumber(k.TotalFuelLiters, 1), Unit: "L"},
		{Label: "Total Net Weight", Value: FormatNumber(k.TotalNetWeightKg, 0), Unit: "kg"},
		{Label: "Trips", Value: humanize.Comma(int64(k.TripCount))},
		{Label: "Avg Efficiency", Value: FormatNumber(k.AverageFuelEfficiency, 2), Unit: "km/l"},
	}
}

// RenderKPICard renders a single bordered KPI card of the given outer width.
func RenderKPICard(kpi KPI, width int) string {
	value := styles.KPIValueStyle.Render(kpi.Value)
	if kpi.Unit != "" {
		value += " " + styles.KPIUnitStyle.Render(kpi.Unit)
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.KPILabelStyle.Render(kpi.Label),
		value,
	)

	style := styles.KPICardStyle
	if width > 0 {
		// Width excludes the border and margin.
		style = style.Width(max(width-3, lipgloss.Width(content)+2))
	}
	return style.Render(content)
}

// RenderKPIRow lays cards out left to right, wrapping onto new rows when the
// terminal is too narrow to fit them all.
func RenderKPIRow(kpis []KPI, totalWidth int) string {
	if len(kpis) == 0 {
		return ""
	}

	perRow := len(kpis)
	const minCard = 20
	if totalWidth > 0 {
		perRow = max(min(totalWidth/minCard, len(kpis)), 1)
	}
	cardWidth := 0
	if totalWidth > 0 {
		cardWidth = totalWidth / perRow
	}

	var rows []string
	for start := 0; start < len(kpis); start += perRow {
		end := min(start+perRow, len(kpis))
		cards := make([]string, 0, end-start)
		for _, k := range kpis[start:end] {
			cards = append(cards, RenderKPICard(k, cardWidth))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return strings.Join(rows, "\n")
}
