package dashboard

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/truckdash/internal/models"
	"github.com/j-veylop/truckdash/internal/ui/components"
	"github.com/j-veylop/truckdash/internal/ui/styles"
)

// sideBySideWidth is the content width from which the two bar charts share a row.
const sideBySideWidth = 120

// View renders the dashboard component.
func (m *Model) View() string {
	if m.state.IsInitialLoading() {
		return m.renderLoading()
	}

	if m.revision != m.state.Revision() {
		m.revision = m.state.Revision()
		m.refresh()
	}

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

// renderLoading renders the loading state.
func (m *Model) renderLoading() string {
	return components.RenderSpinnerCentered(m.spinner, m.width, m.height)
}

func (m *Model) renderContent() string {
	res := m.state.Result()
	width := max(m.viewport.Width, 40)

	sections := []string{
		m.renderTitle(res),
		components.RenderKPIRow(components.KPIs(res.KPIs), width),
		"",
	}

	if len(res.Rows) == 0 {
		sections = append(sections, m.renderEmpty(width))
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	if width >= sideBySideWidth {
		half := width / 2
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top,
			m.renderDistanceCard(res, half),
			m.renderWeightCard(res, width-half),
		))
	} else {
		sections = append(sections,
			m.renderDistanceCard(res, width),
			m.renderWeightCard(res, width),
		)
	}
	sections = append(sections, m.renderFuelCard(res, width))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderTitle renders the dashboard title and the current scope.
func (m *Model) renderTitle(res models.QueryResult) string {
	title := styles.TitleStyle.Render("Truck Logistics Dashboard")

	ds := m.state.Dataset()
	scope := fmt.Sprintf("%d of %d trips", len(res.Rows), ds.Len())
	if ds != nil {
		scope = filepath.Base(ds.Source) + " · " + scope
	}
	subtitle := styles.HelpStyle.Render(scope + " · filter: " + res.Selection.String())

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) renderEmpty(width int) string {
	msg := styles.WarningTextStyle.Render("No trips match the current filters")
	hint := styles.HelpStyle.Render("Press 2 to adjust filters, x there clears them all")
	return styles.CardStyle.Width(max(width-2, 20)).Render(lipgloss.JoinVertical(lipgloss.Left, msg, "", hint))
}

func card(title, body string, width int) string {
	header := styles.CardTitleStyle.Render(title)
	// CardStyle has a border and horizontal padding of 2.
	return styles.CardStyle.Width(max(width-2, 20)).Render(lipgloss.JoinVertical(lipgloss.Left, header, body))
}

func (m *Model) renderDistanceCard(res models.QueryResult, width int) string {
	body := components.RenderStackedBars(res.DistanceByDriverProduct, width-8)
	return card("Distance by Driver & Product (km)", body, width)
}

func (m *Model) renderWeightCard(res models.QueryResult, width int) string {
	body := components.RenderShareBars(res.WeightByProduct, width-8)
	return card("Weight Distribution by Product", body, width)
}

func (m *Model) renderFuelCard(res models.QueryResult, width int) string {
	height := max(m.viewport.Height/3, 6)
	body := components.RenderTimeSeriesChart(res.FuelOverTime, width-8, height)
	return card("Fuel Consumption Over Time (L)", body, width)
}
