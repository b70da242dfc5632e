package trips

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/truckdash/internal/models"
	"github.com/j-veylop/truckdash/internal/ui/components"
	"github.com/j-veylop/truckdash/internal/ui/styles"
)

// View renders the trips tab.
func (m *Model) View() string {
	if m.state.IsInitialLoading() {
		return styles.DocStyle.Render(styles.HelpStyle.Render("Waiting for data..."))
	}
	m.sync()

	res := m.state.Result()
	title := styles.TitleStyle.Render("Trips")

	var body string
	if len(res.Rows) == 0 {
		body = styles.WarningTextStyle.Render("No trips match the current filters")
	} else {
		body = m.table.View()
	}

	return styles.DocStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, body, "", m.renderFooter()))
}

func (m *Model) renderFooter() string {
	res := m.state.Result()

	pos := ""
	if n := len(res.Rows); n > 0 {
		pos = fmt.Sprintf("Trip %d of %d · ", m.table.Cursor()+1, n)
	}
	summary := fmt.Sprintf("%s%s km · %s L · filter: %s",
		pos,
		components.FormatNumber(res.KPIs.TotalDistanceKm, 1),
		components.FormatNumber(res.KPIs.TotalFuelLiters, 1),
		res.Selection.String(),
	)

	line := styles.HelpStyle.Render(summary)
	if current := m.renderCurrent(res); current != "" {
		line += "\n" + current
	}
	if last := m.state.LastExport(); last != "" {
		line += "\n" + styles.SuccessTextStyle.Render("Last export: "+last)
	}
	return line
}

// renderCurrent grades the highlighted trip's km/l against the filtered average.
func (m *Model) renderCurrent(res models.QueryResult) string {
	i := m.table.Cursor()
	if i < 0 || i >= len(res.Rows) {
		return ""
	}
	r := &res.Rows[i]
	avg := res.KPIs.AverageFuelEfficiency

	eff := styles.GetEfficiencyStyle(r.FuelEfficiencyKmPerLiter, avg).
		Render(components.FormatNumber(r.FuelEfficiencyKmPerLiter, 2) + " km/l")
	return fmt.Sprintf("%s %s %s %s",
		styles.HelpStyle.Render(r.Date.Format("2006-01-02")),
		styles.HelpStyle.Render(r.DriverName+" ·"),
		eff,
		styles.HelpStyle.Render("(avg "+components.FormatNumber(avg, 2)+")"),
	)
}
